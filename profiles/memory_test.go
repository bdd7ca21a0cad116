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


package profiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mentormatch/core"
)

func TestMemoryGet(t *testing.T) {
	store := NewMemory()
	store.Put(&core.Profile{ID: 1, Kind: core.KindMentor, Name: "Prof. Chen", Active: true})

	t.Run("found", func(t *testing.T) {
		p, err := store.Get(context.Background(), core.KindMentor, 1)
		require.NoError(t, err)
		assert.Equal(t, "Prof. Chen", p.Name)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := store.Get(context.Background(), core.KindMentor, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := store.Get(context.Background(), core.KindStudent, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryListActive(t *testing.T) {
	store := NewMemory()
	store.Put(&core.Profile{ID: 3, Kind: core.KindMentor, Active: true})
	store.Put(&core.Profile{ID: 1, Kind: core.KindMentor, Active: true})
	store.Put(&core.Profile{ID: 2, Kind: core.KindMentor, Active: false})
	store.Put(&core.Profile{ID: 4, Kind: core.KindMentor, Active: true})

	t.Run("skips inactive and orders by id", func(t *testing.T) {
		page, err := store.ListActive(context.Background(), core.KindMentor, 0, 10)
		require.NoError(t, err)
		require.Len(t, page, 3)
		assert.Equal(t, int64(1), page[0].ID)
		assert.Equal(t, int64(3), page[1].ID)
		assert.Equal(t, int64(4), page[2].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := store.ListActive(context.Background(), core.KindMentor, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, int64(3), page[0].ID)
	})

	t.Run("offset past end", func(t *testing.T) {
		page, err := store.ListActive(context.Background(), core.KindMentor, 10, 5)
		require.NoError(t, err)
		assert.Empty(t, page)
	})
}

func TestMemoryLoadFile(t *testing.T) {
	fixture := `{
		"students": [
			{"id": 1, "name": "Wei Zhang", "major": "Computer Science", "active": true}
		],
		"mentors": [
			{"id": 10, "name": "Prof. Liu", "acceptingStudents": true, "active": true},
			{"id": 11, "name": "Prof. Park", "active": true}
		]
	}`
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	store := NewMemory()
	require.NoError(t, store.LoadFile(path))

	assert.Equal(t, 1, store.Len(core.KindStudent))
	assert.Equal(t, 2, store.Len(core.KindMentor))

	// Kind is corrected from the array the profile came from.
	p, err := store.Get(context.Background(), core.KindStudent, 1)
	require.NoError(t, err)
	assert.Equal(t, core.KindStudent, p.Kind)
}
