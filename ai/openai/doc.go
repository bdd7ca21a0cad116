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


// Package openai provides an ai.Completer implementation for
// OpenAI-compatible chat completion APIs.
//
// The client is built on langchaingo and works against any endpoint that
// speaks the OpenAI wire protocol: OpenRouter, the OpenAI API itself, or
// local servers such as Ollama and vLLM. Every completion is bounded by
// the timeout carried in ai.Config so a stalled provider cannot stall
// the recommendation pipeline.
package openai
