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
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/mentormatch/ai"
	"github.com/poiesic/mentormatch/cache"
	"github.com/poiesic/mentormatch/core"
	"github.com/poiesic/mentormatch/profiles"
)

// DefaultLimit is how many recommendations a request gets when it does
// not ask for a specific count.
const DefaultLimit = 10

// Engine runs the full recommendation pipeline: criteria building,
// semantic fan-out, deterministic scoring, reranking, caching, and the
// fallback chain. The profile store and cache store are required; the
// retrieval, embedding, and completion collaborators are optional and
// their absence simply pins the engine to the matching degradation
// path.
type Engine struct {
	profiles  profiles.Store
	cache     cache.Store
	retriever Retriever
	embedder  Embedder
	indexer   Indexer
	completer ai.Completer
	cfg       *ScoringConfig
	poolSize  int

	pool       *ants.Pool
	aggregator *Aggregator
	scorer     *Scorer
	reranker   *Reranker
	fallback   *Fallback
	memo       *ProfileEmbedder
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithRetriever wires the similarity search client. Without it the
// engine always serves from the keyword tier.
func WithRetriever(r Retriever) Option {
	return func(e *Engine) error {
		e.retriever = r
		return nil
	}
}

// WithEmbedder wires the text embedding client used when syncing
// profiles into the vector index.
func WithEmbedder(emb Embedder) Option {
	return func(e *Engine) error {
		e.embedder = emb
		return nil
	}
}

// WithIndexer wires the vector index upsert client.
func WithIndexer(idx Indexer) Option {
	return func(e *Engine) error {
		e.indexer = idx
		return nil
	}
}

// WithCompleter wires the language model used for reranking. Without it
// results keep deterministic order with template rationales.
func WithCompleter(c ai.Completer) Option {
	return func(e *Engine) error {
		e.completer = c
		return nil
	}
}

// WithScoringConfig replaces the default scoring parameters.
func WithScoringConfig(cfg *ScoringConfig) Option {
	return func(e *Engine) error {
		if cfg == nil {
			return errors.New("scoring config must not be nil")
		}
		e.cfg = cfg
		return nil
	}
}

// WithPoolSize sets the worker pool size for the retrieval fan-out.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		e.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "engine")
		return nil
	}
}

// NewEngine creates a recommendation engine.
func NewEngine(profileStore profiles.Store, cacheStore cache.Store, opts ...Option) (*Engine, error) {
	if profileStore == nil {
		return nil, ErrProfileStoreRequired
	}
	if cacheStore == nil {
		return nil, ErrCacheStoreRequired
	}

	e := &Engine{
		profiles: profileStore,
		cache:    cacheStore,
		cfg:      DefaultScoringConfig(),
		poolSize: runtime.NumCPU(),
		logger:   slog.Default().With("component", "engine"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.poolSize < 1 {
		e.poolSize = 1
	}

	pool, err := ants.NewPool(e.poolSize)
	if err != nil {
		return nil, err
	}
	e.pool = pool

	e.scorer = NewScorer(e.cfg)
	e.reranker = NewReranker(e.completer)
	e.fallback = NewFallback(e.profiles, e.scorer, e.cfg)
	if e.retriever != nil {
		e.aggregator = NewAggregator(e.retriever, e.pool, e.cfg)
	}
	if e.embedder != nil {
		e.memo = NewProfileEmbedder(e.embedder, e.cache, e.cfg)
	}

	return e, nil
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.pool.Release()
}

func recommendKey(kind core.Kind, id int64) string {
	return fmt.Sprintf("recommend:%s:%d", kind, id)
}

// Recommend produces the ranked counterpart list for one subject.
// semanticMode=false skips retrieval entirely and serves the keyword
// tier. The only error a caller sees is core.ErrSubjectNotFound; every
// downstream failure degrades through the fallback chain instead.
func (e *Engine) Recommend(ctx context.Context, kind core.Kind, id int64, limit int, semanticMode bool) (*core.RecommendationSet, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := recommendKey(kind, id)
	if cached := e.readCache(ctx, key, limit); cached != nil {
		return cached, nil
	}

	subject, err := e.profiles.Get(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %d", core.ErrSubjectNotFound, kind, id)
	}

	var set *core.RecommendationSet
	if semanticMode && e.aggregator != nil {
		set = e.semanticSet(ctx, subject, limit)
	}
	if set == nil {
		set = e.fallbackSet(ctx, subject, limit)
	}

	e.writeCache(ctx, key, set)
	return set, nil
}

// semanticSet runs the full pipeline. Returns nil when retrieval
// produced no usable candidates so the caller can escalate.
func (e *Engine) semanticSet(ctx context.Context, subject *core.Profile, limit int) *core.RecommendationSet {
	criteria := BuildCriteria(subject, e.cfg)
	matches := e.aggregator.Aggregate(ctx, subject.Kind.Counterpart(), criteria)
	if len(matches) == 0 {
		e.logger.Info("semantic retrieval empty, escalating to fallback",
			"kind", subject.Kind.String(), "id", subject.ID)
		return nil
	}

	shortlist := make([]ScoredCandidate, 0, len(matches))
	for candidateID, match := range matches {
		candidate, err := e.profiles.Get(ctx, subject.Kind.Counterpart(), candidateID)
		if err != nil || !candidate.Active {
			continue
		}
		e.scorer.Apply(match, candidate, subject)
		shortlist = append(shortlist, ScoredCandidate{Profile: candidate, Match: match})
	}
	if len(shortlist) == 0 {
		return nil
	}

	sort.SliceStable(shortlist, func(i, j int) bool {
		return shortlist[i].Match.TotalScore > shortlist[j].Match.TotalScore
	})
	if len(shortlist) > e.cfg.ShortlistSize {
		shortlist = shortlist[:e.cfg.ShortlistSize]
	}

	items := e.reranker.Rerank(ctx, subject, shortlist, limit)
	return &core.RecommendationSet{
		Items:       items,
		Tier:        core.TierSemantic,
		GeneratedAt: time.Now().UTC(),
	}
}

// fallbackSet walks the degradation chain: keyword overlap first, then
// popularity ordering. A failure of both yields an empty popularity-tier
// set rather than an error.
func (e *Engine) fallbackSet(ctx context.Context, subject *core.Profile, limit int) *core.RecommendationSet {
	items, err := e.fallback.Keyword(ctx, subject, limit)
	if err == nil {
		return &core.RecommendationSet{
			Items:       items,
			Tier:        core.TierKeyword,
			GeneratedAt: time.Now().UTC(),
		}
	}
	e.logger.Warn("keyword fallback failed, escalating to popularity",
		"kind", subject.Kind.String(), "id", subject.ID, "err", err)

	items, err = e.fallback.Popularity(ctx, subject, limit)
	if err != nil {
		e.logger.Error("popularity fallback failed, returning empty set",
			"kind", subject.Kind.String(), "id", subject.ID, "err", err)
		items = []core.Recommendation{}
	}
	return &core.RecommendationSet{
		Items:       items,
		Tier:        core.TierPopularity,
		GeneratedAt: time.Now().UTC(),
	}
}

// readCache returns a cached set truncated to limit, or nil on miss.
// Cache failures are logged and treated as misses.
func (e *Engine) readCache(ctx context.Context, key string, limit int) *core.RecommendationSet {
	data, found, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("cache read failed",
			"key", key, "err", fmt.Errorf("%w: %v", core.ErrCacheUnavailable, err))
		return nil
	}
	if !found {
		return nil
	}

	var set core.RecommendationSet
	if err := json.Unmarshal(data, &set); err != nil {
		e.logger.Warn("cache entry corrupt, ignoring", "key", key, "err", err)
		return nil
	}
	if len(set.Items) > limit {
		set.Items = set.Items[:limit]
	}
	return &set
}

// writeCache stores a set. Failures are logged, never surfaced.
func (e *Engine) writeCache(ctx context.Context, key string, set *core.RecommendationSet) {
	data, err := json.Marshal(set)
	if err != nil {
		e.logger.Warn("cache marshal failed", "key", key, "err", err)
		return
	}
	if err := e.cache.Put(ctx, key, data, e.cfg.CacheTTL); err != nil {
		e.logger.Warn("cache write failed",
			"key", key, "err", fmt.Errorf("%w: %v", core.ErrCacheUnavailable, err))
	}
}

// Invalidate drops the cached recommendation set for a subject.
func (e *Engine) Invalidate(ctx context.Context, kind core.Kind, id int64) error {
	return e.cache.Delete(ctx, recommendKey(kind, id))
}

// SyncProfile refreshes a profile's presence in the vector index and
// drops its cached artifacts. Embedding failures do not block the index
// update; the document text alone still lands in the index.
func (e *Engine) SyncProfile(ctx context.Context, kind core.Kind, id int64) error {
	subject, err := e.profiles.Get(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("%w: %s %d", core.ErrSubjectNotFound, kind, id)
	}

	if e.indexer != nil {
		var vector []float32
		if e.memo != nil {
			if err := e.memo.Invalidate(ctx, kind, id); err != nil {
				e.logger.Warn("embedding invalidation failed",
					"kind", kind.String(), "id", id, "err", err)
			}
			if v, err := e.memo.Vector(ctx, subject); err == nil {
				vector = v
			} else {
				e.logger.Warn("embedding unavailable during sync",
					"kind", kind.String(), "id", id, "err", err)
			}
		}
		if err := e.indexer.Index(ctx, kind, id, FeatureText(subject), vector); err != nil {
			return err
		}
	}

	return e.Invalidate(ctx, kind, id)
}
