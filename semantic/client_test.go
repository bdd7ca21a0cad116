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


package semantic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mentormatch/core"
)

func TestClientEmbed(t *testing.T) {
	t.Run("returns vector", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/embedding", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var req embedRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "machine learning", req.Text)

			json.NewEncoder(w).Encode(embedResponse{Vector: []float32{0.1, 0.2, 0.3}})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		vec, err := client.Embed(context.Background(), "machine learning")

		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	})

	t.Run("empty vector is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(embedResponse{})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.Embed(context.Background(), "anything")

		assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
	})

	t.Run("server error wraps sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.Embed(context.Background(), "anything")

		assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
	})
}

func TestClientSearch(t *testing.T) {
	t.Run("returns hits in order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/mentor/search", r.URL.Path)

			var req searchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "distributed systems", req.Query)
			assert.Equal(t, 30, req.TopK)

			w.Write([]byte(`{"results":[{"id":7,"score":0.91},{"id":3,"score":0.74}]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		hits, err := client.Search(context.Background(), core.KindMentor, "distributed systems", 30)

		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, int64(7), hits[0].CandidateID)
		assert.Equal(t, 0.91, hits[0].Score)
		assert.Equal(t, int64(3), hits[1].CandidateID)
	})

	t.Run("unreachable service wraps sentinel", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", WithTimeout(200*time.Millisecond))
		_, err := client.Search(context.Background(), core.KindMentor, "anything", 10)

		assert.ErrorIs(t, err, core.ErrRetrievalUnavailable)
	})

	t.Run("timeout wraps sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
		_, err := client.Search(context.Background(), core.KindStudent, "anything", 10)

		assert.ErrorIs(t, err, core.ErrRetrievalUnavailable)
	})
}

func TestClientIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/student/index", r.URL.Path)

		var req indexRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.ID)
		assert.NotEmpty(t, req.Text)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Index(context.Background(), core.KindStudent, 42, "profile text", nil)

	require.NoError(t, err)
}
