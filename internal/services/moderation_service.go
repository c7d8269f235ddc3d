package services

import "sort"

// ModerationStore is the slice of the record store the moderation state
// machine needs. Update/delete report false when the id does not exist;
// any other failure is a store fault.
type ModerationStore interface {
	GetDuaa(id string) (*Duaa, error)
	UpdateDuaa(id string, patch DuaaPatch) (bool, error)
	DeleteDuaa(id string) (bool, error)
	ListDuaas() ([]*Duaa, error)

	GetReflection(id string) (*Reflection, error)
	UpdateReflection(id string, patch ReflectionPatch) (bool, error)
	DeleteReflection(id string) (bool, error)
	ListReflections() ([]*Reflection, error)
}

// ModerationService governs the duaa lifecycle (pending → approved, or
// deletion) and the featured flag on both entity kinds. Rejection is a hard
// delete with no persisted trace; there is deliberately no Rejected state.
type ModerationService struct {
	store ModerationStore
}

func NewModerationService(store ModerationStore) *ModerationService {
	return &ModerationService{store: store}
}

// ApproveDuaa moves a pending duaa to the approved state. Approving an
// already-approved duaa is a no-op, not an error.
func (s *ModerationService) ApproveDuaa(id string) error {
	d, err := s.store.GetDuaa(id)
	if err != nil {
		return storeFailure(err)
	}
	if d == nil {
		return NewNotFoundError("duaa not found")
	}
	if d.State() == DuaaApproved {
		return nil
	}
	approved := true
	ok, err := s.store.UpdateDuaa(id, DuaaPatch{IsApproved: &approved})
	if err != nil {
		return storeFailure(err)
	}
	if !ok {
		return NewNotFoundError("duaa not found")
	}
	return nil
}

// RejectDuaa removes a duaa regardless of its state. Rejection and deletion
// are the same operation.
func (s *ModerationService) RejectDuaa(id string) error {
	return s.DeleteDuaa(id)
}

func (s *ModerationService) DeleteDuaa(id string) error {
	ok, err := s.store.DeleteDuaa(id)
	if err != nil {
		return storeFailure(err)
	}
	if !ok {
		return NewNotFoundError("duaa not found")
	}
	return nil
}

// ToggleDuaaFeatured flips the featured flag and returns the new value.
// Valid in any state; whether unapproved content should be featurable is a
// policy question for the UI, not enforced here.
func (s *ModerationService) ToggleDuaaFeatured(id string) (bool, error) {
	d, err := s.store.GetDuaa(id)
	if err != nil {
		return false, storeFailure(err)
	}
	if d == nil {
		return false, NewNotFoundError("duaa not found")
	}
	next := !d.IsFeatured
	ok, err := s.store.UpdateDuaa(id, DuaaPatch{IsFeatured: &next})
	if err != nil {
		return false, storeFailure(err)
	}
	if !ok {
		return false, NewNotFoundError("duaa not found")
	}
	return next, nil
}

// ToggleReflectionFeatured flips the featured flag on a reflection. There is
// no approval gate on reflections at all.
func (s *ModerationService) ToggleReflectionFeatured(id string) (bool, error) {
	r, err := s.store.GetReflection(id)
	if err != nil {
		return false, storeFailure(err)
	}
	if r == nil {
		return false, NewNotFoundError("reflection not found")
	}
	next := !r.IsFeatured
	ok, err := s.store.UpdateReflection(id, ReflectionPatch{IsFeatured: &next})
	if err != nil {
		return false, storeFailure(err)
	}
	if !ok {
		return false, NewNotFoundError("reflection not found")
	}
	return next, nil
}

func (s *ModerationService) DeleteReflection(id string) error {
	ok, err := s.store.DeleteReflection(id)
	if err != nil {
		return storeFailure(err)
	}
	if !ok {
		return NewNotFoundError("reflection not found")
	}
	return nil
}

// ListReflections returns every reflection, newest first. Used by both the
// public gallery and the moderator dashboard; reflections have no approval
// gate.
func (s *ModerationService) ListReflections() ([]*Reflection, error) {
	rs, err := s.store.ListReflections()
	if err != nil {
		return nil, storeFailure(err)
	}
	return rs, nil
}

// PendingDuaas returns the moderation queue, newest first.
func (s *ModerationService) PendingDuaas() ([]*Duaa, error) {
	return s.listDuaas(DuaaPending)
}

// ApprovedDuaas returns published duaas for the moderator view, newest first.
func (s *ModerationService) ApprovedDuaas() ([]*Duaa, error) {
	return s.listDuaas(DuaaApproved)
}

// PublicDuaas is the listing shown to visitors: approved only, featured
// items first, then newest first.
func (s *ModerationService) PublicDuaas() ([]*Duaa, error) {
	ds, err := s.listDuaas(DuaaApproved)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].IsFeatured != ds[j].IsFeatured {
			return ds[i].IsFeatured
		}
		return ds[i].CreatedAt.After(ds[j].CreatedAt)
	})
	return ds, nil
}

func (s *ModerationService) listDuaas(state DuaaState) ([]*Duaa, error) {
	ds, err := s.store.ListDuaas()
	if err != nil {
		return nil, storeFailure(err)
	}
	out := make([]*Duaa, 0, len(ds))
	for _, d := range ds {
		if d.State() == state {
			out = append(out, d)
		}
	}
	return out, nil
}
