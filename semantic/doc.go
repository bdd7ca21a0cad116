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


// Package semantic is the HTTP client for the external vector search
// service.
//
// The service maintains one index per profile kind and exposes three
// endpoints: POST /embedding for text vectorization, POST /{kind}/search
// for similarity queries, and POST /{kind}/index for upserts. Every
// failure is wrapped in the matching recoverable sentinel from core
// (ErrEmbeddingUnavailable or ErrRetrievalUnavailable), so the pipeline
// can treat an outage as a degradation signal rather than a hard error.
package semantic
