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


// Package cache defines the key/value cache capability used by the
// recommendation pipeline for ranked result sets and memoized embeddings.
//
// Store is a generic TTL cache with explicit delete. The Memory
// implementation serves tests and single-process deployments without
// behavior change; the badger subpackage provides the persistent
// implementation.
package cache
