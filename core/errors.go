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


package core

import "errors"

// Pipeline error taxonomy. Only ErrSubjectNotFound is fatal to a
// recommendation request; the remaining errors are recoverable and are caught
// at the boundary of the component that produced them, logged, and converted
// into an empty result for that stage.
var (
	// ErrSubjectNotFound indicates the subject profile could not be resolved.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrEmbeddingUnavailable indicates the embedding endpoint timed out,
	// returned a non-2xx status, or omitted the vector field.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRetrievalUnavailable indicates a vector-index search call failed.
	ErrRetrievalUnavailable = errors.New("retrieval service unavailable")

	// ErrRerankUnavailable indicates the language-generation call failed or
	// its response contained no usable ranking.
	ErrRerankUnavailable = errors.New("rerank service unavailable")

	// ErrCacheUnavailable indicates a cache store operation failed.
	ErrCacheUnavailable = errors.New("cache store unavailable")

	// ErrInvalidKind indicates an unknown population name.
	ErrInvalidKind = errors.New("invalid population kind")
)
