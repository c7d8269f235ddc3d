package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nouraliman/kunuz/internal/services"
)

func newID() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] }

// memoryStore is the default backing store: good for dev and tests, contents
// vanish on restart. All records are copied on the way in and out so callers
// never share mutable state with the store.
type memoryStore struct {
	mu           sync.RWMutex
	participants map[string]*services.Participant
	reflections  map[string]*services.Reflection
	duaas        map[string]*services.Duaa
}

var _ Store = (*memoryStore)(nil)

func NewMemoryStore() Store {
	return &memoryStore{
		participants: map[string]*services.Participant{},
		reflections:  map[string]*services.Reflection{},
		duaas:        map[string]*services.Duaa{},
	}
}

func (s *memoryStore) InsertParticipant(p *services.Participant) (*services.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.ID = newID()
	s.participants[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memoryStore) GetParticipant(id string) (*services.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.participants[id]
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) InsertReflection(r *services.Reflection) (*services.Reflection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	cp.ID = newID()
	s.reflections[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memoryStore) GetReflection(id string) (*services.Reflection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.reflections[id]
	if r == nil {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *memoryStore) UpdateReflection(id string, patch services.ReflectionPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.reflections[id]
	if r == nil {
		return false, nil
	}
	if patch.IsFeatured != nil {
		r.IsFeatured = *patch.IsFeatured
	}
	return true, nil
}

func (s *memoryStore) DeleteReflection(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reflections[id]; !ok {
		return false, nil
	}
	delete(s.reflections, id)
	return true, nil
}

func (s *memoryStore) ListReflections() ([]*services.Reflection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Reflection, 0, len(s.reflections))
	for _, r := range s.reflections {
		cp := *r
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(r *services.Reflection) (string, int64) { return r.ID, r.CreatedAt.UnixNano() })
	return out, nil
}

func (s *memoryStore) InsertDuaa(d *services.Duaa) (*services.Duaa, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	cp.ID = newID()
	s.duaas[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memoryStore) GetDuaa(id string) (*services.Duaa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.duaas[id]
	if d == nil {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (s *memoryStore) UpdateDuaa(id string, patch services.DuaaPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.duaas[id]
	if d == nil {
		return false, nil
	}
	if patch.IsApproved != nil {
		d.IsApproved = *patch.IsApproved
	}
	if patch.IsFeatured != nil {
		d.IsFeatured = *patch.IsFeatured
	}
	return true, nil
}

func (s *memoryStore) DeleteDuaa(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.duaas[id]; !ok {
		return false, nil
	}
	delete(s.duaas, id)
	return true, nil
}

func (s *memoryStore) ListDuaas() ([]*services.Duaa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Duaa, 0, len(s.duaas))
	for _, d := range s.duaas {
		cp := *d
		out = append(out, &cp)
	}
	sortNewestFirst(out, func(d *services.Duaa) (string, int64) { return d.ID, d.CreatedAt.UnixNano() })
	return out, nil
}

// sortNewestFirst orders by timestamp descending, id as a stable tiebreaker
// so same-instant records keep a deterministic order.
func sortNewestFirst[T any](xs []T, key func(T) (string, int64)) {
	sort.Slice(xs, func(i, j int) bool {
		idI, tI := key(xs[i])
		idJ, tJ := key(xs[j])
		if tI != tJ {
			return tI > tJ
		}
		return idI > idJ
	})
}
