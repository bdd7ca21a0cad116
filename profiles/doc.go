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


// Package profiles defines read access to student and mentor profiles.
//
// The Store interface is the recommendation pipeline's only view of
// profile data: point lookups by kind and id, plus paged listings of
// active profiles for the keyword and popularity fallbacks. Memory is
// the bundled implementation, loadable from a JSON fixture; systems
// with their own profile database implement Store against it.
package profiles
