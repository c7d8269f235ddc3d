package services

import (
	"errors"
	"fmt"
	"sort"
)

var errSentinel = errors.New("backend unavailable")

// stubStore is an in-memory fake covering every store interface the services
// declare. failWith, when set, makes every call return that error.
type stubStore struct {
	participants []*Participant
	reflections  []*Reflection
	duaas        []*Duaa
	nextID       int
	failWith     error
}

func (s *stubStore) genID() string {
	s.nextID++
	return fmt.Sprintf("id-%d", s.nextID)
}

func (s *stubStore) InsertParticipant(p *Participant) (*Participant, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	cp := *p
	cp.ID = s.genID()
	s.participants = append(s.participants, &cp)
	return &cp, nil
}

func (s *stubStore) GetParticipant(id string) (*Participant, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, p := range s.participants {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) InsertReflection(r *Reflection) (*Reflection, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	cp := *r
	cp.ID = s.genID()
	s.reflections = append(s.reflections, &cp)
	return &cp, nil
}

func (s *stubStore) GetReflection(id string) (*Reflection, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, r := range s.reflections {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) UpdateReflection(id string, patch ReflectionPatch) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, r := range s.reflections {
		if r.ID == id {
			if patch.IsFeatured != nil {
				r.IsFeatured = *patch.IsFeatured
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) DeleteReflection(id string) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	for i, r := range s.reflections {
		if r.ID == id {
			s.reflections = append(s.reflections[:i], s.reflections[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) ListReflections() ([]*Reflection, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]*Reflection, len(s.reflections))
	for i, r := range s.reflections {
		cp := *r
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubStore) InsertDuaa(d *Duaa) (*Duaa, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	cp := *d
	cp.ID = s.genID()
	s.duaas = append(s.duaas, &cp)
	return &cp, nil
}

func (s *stubStore) GetDuaa(id string) (*Duaa, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, d := range s.duaas {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) UpdateDuaa(id string, patch DuaaPatch) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, d := range s.duaas {
		if d.ID == id {
			if patch.IsApproved != nil {
				d.IsApproved = *patch.IsApproved
			}
			if patch.IsFeatured != nil {
				d.IsFeatured = *patch.IsFeatured
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) DeleteDuaa(id string) (bool, error) {
	if s.failWith != nil {
		return false, s.failWith
	}
	for i, d := range s.duaas {
		if d.ID == id {
			s.duaas = append(s.duaas[:i], s.duaas[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) ListDuaas() ([]*Duaa, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]*Duaa, len(s.duaas))
	for i, d := range s.duaas {
		cp := *d
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
