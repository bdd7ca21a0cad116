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


package recommend

import "errors"

var (
	// ErrProfileStoreRequired is returned when a profile store is not provided.
	ErrProfileStoreRequired = errors.New("profile store required")

	// ErrCacheStoreRequired is returned when a cache store is not provided.
	ErrCacheStoreRequired = errors.New("cache store required")
)
