// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for language-generation services used
// in MentorMatch.
//
// The package defines the Completer interface, the single capability the
// recommendation pipeline needs from an LLM: turn one prompt into one
// block of response text. Consumers depend on the abstraction rather
// than on a concrete provider, so the reranking stage can run against a
// production model, a local server, or a test double without changes.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//     (OpenRouter, Ollama, vLLM and similar)
//   - ai/mock: test double for unit testing without external services
//
// A Completer is always optional to the pipeline. When none is wired, or
// a call fails, callers degrade to deterministic behavior instead of
// surfacing the failure.
package ai
