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
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"

	"github.com/poiesic/mentormatch/cache"
	"github.com/poiesic/mentormatch/core"
)

// Embedder turns text into a vector. semantic.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Indexer upserts a profile document into the vector index.
// semantic.Client satisfies it.
type Indexer interface {
	Index(ctx context.Context, kind core.Kind, id int64, text string, vector []float32) error
}

// ProfileEmbedder memoizes profile vectors in the cache store, keyed by
// profile identity and guarded by a content fingerprint so a stale
// vector is never served for an edited profile.
type ProfileEmbedder struct {
	embedder Embedder
	store    cache.Store
	cfg      *ScoringConfig
	logger   *slog.Logger
}

// NewProfileEmbedder creates an embedder memoizing into store.
func NewProfileEmbedder(embedder Embedder, store cache.Store, cfg *ScoringConfig) *ProfileEmbedder {
	return &ProfileEmbedder{
		embedder: embedder,
		store:    store,
		cfg:      cfg,
		logger:   slog.Default().With("component", "profile-embedder"),
	}
}

type embeddingEntry struct {
	Fingerprint uint64    `json:"fingerprint"`
	Vector      []float32 `json:"vector"`
}

// FeatureText assembles the deterministic document embedded and indexed
// for a profile. Labeled lines keep the output stable across runs so
// the fingerprint only changes when the content does.
func FeatureText(p *core.Profile) string {
	var b strings.Builder
	write := func(label, value string) {
		if value != "" {
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}

	write("name", p.Name)
	write("institution", p.Institution)
	write("department", p.Department)
	write("keywords", p.Keywords)
	write("bio", p.Bio)

	switch p.Kind {
	case core.KindStudent:
		write("major", p.Major)
		write("research interests", p.ResearchInterests)
		write("desired direction", p.ExpectedDirection)
		write("personal strengths", p.PersonalAbilities)
		write("technical skills", p.ProgrammingSkills)
		write("preferences", p.PreferenceSummary)
		write("project experience", p.ProjectExperience)
	case core.KindMentor:
		write("title", p.Title)
		write("research areas", p.ResearchAreas)
		write("group direction", p.GroupDirection)
		write("expected qualities", p.ExpectedQualities)
		write("mentoring style", p.MentoringStyle)
	}

	return b.String()
}

func embeddingKey(kind core.Kind, id int64) string {
	return fmt.Sprintf("embedding:%s:%d", kind, id)
}

// Vector returns the profile's embedding, reusing the memoized vector
// when the profile content has not changed. Cache failures degrade to a
// fresh embedding call; embedding failures wrap
// core.ErrEmbeddingUnavailable via the underlying client.
func (e *ProfileEmbedder) Vector(ctx context.Context, p *core.Profile) ([]float32, error) {
	text := FeatureText(p)
	fingerprint := core.Fingerprint(text)
	key := embeddingKey(p.Kind, p.ID)

	if data, found, err := e.store.Get(ctx, key); err != nil {
		e.logger.Warn("embedding cache read failed", "key", key, "err", err)
	} else if found {
		var entry embeddingEntry
		if err := json.Unmarshal(data, &entry); err == nil && entry.Fingerprint == fingerprint {
			return entry.Vector, nil
		}
	}

	vector, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(embeddingEntry{Fingerprint: fingerprint, Vector: vector})
	if err == nil {
		if err := e.store.Put(ctx, key, payload, e.cfg.EmbeddingTTL); err != nil {
			e.logger.Warn("embedding cache write failed", "key", key, "err", err)
		}
	}
	return vector, nil
}

// Invalidate drops the memoized vector for a profile.
func (e *ProfileEmbedder) Invalidate(ctx context.Context, kind core.Kind, id int64) error {
	return e.store.Delete(ctx, embeddingKey(kind, id))
}
