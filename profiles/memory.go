package profiles

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/poiesic/mentormatch/core"
)

// Memory is an in-process Store backed by maps. It serves tests and
// fixture-driven deployments where profiles are loaded from a file at
// startup.
type Memory struct {
	mu       sync.RWMutex
	byKind   map[core.Kind]map[int64]*core.Profile
	ordering map[core.Kind][]int64
}

// NewMemory creates an empty in-memory profile store.
func NewMemory() *Memory {
	return &Memory{
		byKind:   make(map[core.Kind]map[int64]*core.Profile),
		ordering: make(map[core.Kind][]int64),
	}
}

// Put inserts or replaces a profile. The profile's Kind field decides
// which collection it lands in.
func (m *Memory) Put(p *core.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind := p.Kind
	if m.byKind[kind] == nil {
		m.byKind[kind] = make(map[int64]*core.Profile)
	}
	if _, exists := m.byKind[kind][p.ID]; !exists {
		m.ordering[kind] = append(m.ordering[kind], p.ID)
		sort.Slice(m.ordering[kind], func(i, j int) bool {
			return m.ordering[kind][i] < m.ordering[kind][j]
		})
	}
	m.byKind[kind][p.ID] = p
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, kind core.Kind, id int64) (*core.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byKind[kind][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	return p, nil
}

// ListActive implements Store. Inactive profiles are skipped before
// offset and limit are applied, so pagination stays stable as long as
// the store does not change between pages.
func (m *Memory) ListActive(ctx context.Context, kind core.Kind, offset, limit int) ([]*core.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		return []*core.Profile{}, nil
	}

	active := make([]*core.Profile, 0, len(m.ordering[kind]))
	for _, id := range m.ordering[kind] {
		p := m.byKind[kind][id]
		if p != nil && p.Active {
			active = append(active, p)
		}
	}

	if offset >= len(active) {
		return []*core.Profile{}, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}

	page := make([]*core.Profile, end-offset)
	copy(page, active[offset:end])
	return page, nil
}

// Len returns how many profiles of the given kind are stored.
func (m *Memory) Len(kind core.Kind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byKind[kind])
}

type fixtureFile struct {
	Students []*core.Profile `json:"students"`
	Mentors  []*core.Profile `json:"mentors"`
}

// LoadFile populates the store from a JSON fixture with top-level
// "students" and "mentors" arrays. Kind fields on the profiles are
// overwritten to match the array they came from.
func (m *Memory) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profile fixture: %w", err)
	}

	var fixture fixtureFile
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parsing profile fixture: %w", err)
	}

	for _, p := range fixture.Students {
		p.Kind = core.KindStudent
		m.Put(p)
	}
	for _, p := range fixture.Mentors {
		p.Kind = core.KindMentor
		m.Put(p)
	}
	return nil
}
