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

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/mentormatch/core"
)

// Retriever is the similarity search capability the aggregator fans out
// over. semantic.Client satisfies it.
type Retriever interface {
	Search(ctx context.Context, kind core.Kind, query string, topK int) ([]core.SimilarityHit, error)
}

// Aggregator runs one retrieval call per criterion on a bounded worker
// pool and merges the weighted hits into per-candidate accumulators.
type Aggregator struct {
	retriever Retriever
	pool      *ants.Pool
	cfg       *ScoringConfig
	logger    *slog.Logger
}

// NewAggregator creates an aggregator running on the given pool. The
// pool is shared with the engine and released by it, not here.
func NewAggregator(retriever Retriever, pool *ants.Pool, cfg *ScoringConfig) *Aggregator {
	return &Aggregator{
		retriever: retriever,
		pool:      pool,
		cfg:       cfg,
		logger:    slog.Default().With("component", "aggregator"),
	}
}

// Aggregate fans the criteria out to retrieval and merges results. For
// every hit, similarityScore * criterion.weight is added to that
// candidate's accumulator under the criterion's dimension. A failed or
// timed-out criterion contributes nothing; the error is logged and the
// remaining criteria still count. An empty map means every criterion
// came back empty and the caller should escalate to a fallback.
func (a *Aggregator) Aggregate(ctx context.Context, kind core.Kind, criteria []core.SearchCriterion) map[int64]*core.CandidateMatch {
	matches := make(map[int64]*core.CandidateMatch)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, criterion := range criteria {
		criterion := criterion
		wg.Add(1)
		task := func() {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, a.cfg.RetrievalTimeout)
			defer cancel()

			hits, err := a.retriever.Search(callCtx, kind, criterion.Query, a.cfg.TopK)
			if err != nil {
				a.logger.Warn("criterion retrieval failed",
					"dimension", criterion.Dimension,
					"err", err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for _, hit := range hits {
				match, ok := matches[hit.CandidateID]
				if !ok {
					match = core.NewCandidateMatch(hit.CandidateID)
					matches[hit.CandidateID] = match
				}
				match.AddScore(criterion.Dimension, hit.Score*criterion.Weight)
			}
		}

		if err := a.pool.Submit(task); err != nil {
			// Pool exhausted or released; run on the caller instead of
			// dropping the criterion.
			a.logger.Warn("pool submit failed, running inline", "err", err)
			task()
		}
	}

	wg.Wait()

	for _, match := range matches {
		match.TotalScore = match.Sum()
	}
	return matches
}
