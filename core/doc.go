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


// Package core defines the typed domain records shared by the matching
// pipeline: populations, profiles, search criteria, candidate matches, and
// ranked recommendation sets, together with the pipeline error taxonomy.
//
// The package has no dependencies on the pipeline packages; every stage
// consumes and produces these records so that weights, dimensions, and scores
// stay statically checkable.
package core
