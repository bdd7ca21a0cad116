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


// Package recommend implements the mentorship matching pipeline.
//
// A request flows through six stages:
//
//  1. Criteria building: the subject profile becomes a weighted list of
//     text queries, one per populated semantic dimension.
//  2. Aggregation: each criterion fans out to the vector index on a
//     bounded worker pool; weighted similarity scores accumulate per
//     candidate and dimension.
//  3. Deterministic scoring: heuristic bonuses computed from structured
//     profile attributes join the per-dimension map and the clipped
//     total.
//  4. Reranking: a language model reorders the shortlist and writes one
//     rationale per pick; any failure keeps the deterministic order
//     with template rationales.
//  5. Caching: the finished set is stored with a TTL and served on
//     subsequent requests until invalidated.
//  6. Fallback: when retrieval yields nothing or is not wired, keyword
//     overlap matching answers instead, and popularity ordering backs
//     that up.
//
// The only request-fatal condition is a missing subject profile
// (core.ErrSubjectNotFound). Every collaborator outage degrades to a
// lower tier, reported on the result set so callers can flag low
// confidence.
package recommend
