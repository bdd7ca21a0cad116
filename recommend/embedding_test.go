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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mentormatch/cache"
	"github.com/poiesic/mentormatch/core"
)

// stubEmbedder is an Embedder double that counts calls.
type stubEmbedder struct {
	EmbedFunc func(ctx context.Context, text string) ([]float32, error)

	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.EmbedFunc != nil {
		return s.EmbedFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// stubIndexer is an Indexer double that records the last upsert.
type stubIndexer struct {
	IndexFunc func(ctx context.Context, kind core.Kind, id int64, text string, vector []float32) error

	calls      int
	lastID     int64
	lastText   string
	lastVector []float32
}

func (s *stubIndexer) Index(ctx context.Context, kind core.Kind, id int64, text string, vector []float32) error {
	s.calls++
	s.lastID = id
	s.lastText = text
	s.lastVector = vector
	if s.IndexFunc != nil {
		return s.IndexFunc(ctx, kind, id, text, vector)
	}
	return nil
}

// failingCacheStore is a cache.Store double whose reads always error.
type failingCacheStore struct {
	inner cache.Store
}

func (f *failingCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("cache offline")
}

func (f *failingCacheStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return f.inner.Put(ctx, key, value, ttl)
}

func (f *failingCacheStore) Delete(ctx context.Context, key string) error {
	return f.inner.Delete(ctx, key)
}

func (f *failingCacheStore) Close() error {
	return f.inner.Close()
}

func TestProfileEmbedderVector(t *testing.T) {
	newStudent := func() *core.Profile {
		return &core.Profile{
			ID: 1, Kind: core.KindStudent, Name: "Wei", Active: true,
			ResearchInterests: "machine learning, NLP",
		}
	}

	t.Run("unchanged content reuses the memoized vector", func(t *testing.T) {
		embedder := &stubEmbedder{}
		memo := NewProfileEmbedder(embedder, cache.NewMemory(), DefaultScoringConfig())
		subject := newStudent()

		first, err := memo.Vector(context.Background(), subject)
		require.NoError(t, err)
		second, err := memo.Vector(context.Background(), subject)
		require.NoError(t, err)

		assert.Equal(t, 1, embedder.calls)
		assert.Equal(t, first, second)
	})

	t.Run("profile edit misses the memo", func(t *testing.T) {
		embedder := &stubEmbedder{}
		memo := NewProfileEmbedder(embedder, cache.NewMemory(), DefaultScoringConfig())
		subject := newStudent()

		_, err := memo.Vector(context.Background(), subject)
		require.NoError(t, err)

		subject.ResearchInterests = "computer vision"
		_, err = memo.Vector(context.Background(), subject)
		require.NoError(t, err)

		assert.Equal(t, 2, embedder.calls)
	})

	t.Run("invalidate forces a fresh embedding", func(t *testing.T) {
		embedder := &stubEmbedder{}
		memo := NewProfileEmbedder(embedder, cache.NewMemory(), DefaultScoringConfig())
		subject := newStudent()

		_, err := memo.Vector(context.Background(), subject)
		require.NoError(t, err)
		require.NoError(t, memo.Invalidate(context.Background(), subject.Kind, subject.ID))

		_, err = memo.Vector(context.Background(), subject)
		require.NoError(t, err)

		assert.Equal(t, 2, embedder.calls)
	})

	t.Run("cache read failure degrades to a fresh embedding", func(t *testing.T) {
		embedder := &stubEmbedder{}
		store := &failingCacheStore{inner: cache.NewMemory()}
		memo := NewProfileEmbedder(embedder, store, DefaultScoringConfig())
		subject := newStudent()

		vec, err := memo.Vector(context.Background(), subject)
		require.NoError(t, err)
		assert.NotEmpty(t, vec)

		_, err = memo.Vector(context.Background(), subject)
		require.NoError(t, err)
		assert.Equal(t, 2, embedder.calls, "unreadable memo means every call embeds")
	})

	t.Run("embedding failure propagates", func(t *testing.T) {
		embedder := &stubEmbedder{
			EmbedFunc: func(ctx context.Context, text string) ([]float32, error) {
				return nil, core.ErrEmbeddingUnavailable
			},
		}
		memo := NewProfileEmbedder(embedder, cache.NewMemory(), DefaultScoringConfig())

		_, err := memo.Vector(context.Background(), newStudent())
		assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
	})
}

func TestFeatureText(t *testing.T) {
	t.Run("deterministic and content sensitive", func(t *testing.T) {
		a := &core.Profile{Kind: core.KindStudent, Name: "Wei", ResearchInterests: "NLP"}
		b := &core.Profile{Kind: core.KindStudent, Name: "Wei", ResearchInterests: "NLP"}
		assert.Equal(t, FeatureText(a), FeatureText(b))

		b.ResearchInterests = "robotics"
		assert.NotEqual(t, FeatureText(a), FeatureText(b))
	})

	t.Run("empty fields are omitted", func(t *testing.T) {
		p := &core.Profile{Kind: core.KindMentor, Name: "Prof. A"}
		text := FeatureText(p)
		assert.Contains(t, text, "name: Prof. A")
		assert.NotContains(t, text, "research areas")
	})
}
