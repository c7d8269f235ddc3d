package services

import (
	"testing"
	"time"
)

func seedDuaa(t *testing.T, store *stubStore, text string, approved, featured bool, at time.Time) *Duaa {
	t.Helper()
	d, err := store.InsertDuaa(&Duaa{Text: text, IsApproved: approved, IsFeatured: featured, CreatedAt: at})
	if err != nil {
		t.Fatalf("seed duaa: %v", err)
	}
	return d
}

func TestApproveDuaa(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	d := seedDuaa(t, store, "اللهم اجعلنا من أهل الكهف في الثبات", false, false, time.Now())

	if err := svc.ApproveDuaa(d.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ := store.GetDuaa(d.ID)
	if !got.IsApproved {
		t.Fatal("duaa not approved")
	}

	// Approving again is a no-op, not an error.
	if err := svc.ApproveDuaa(d.ID); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
}

func TestApproveDuaaNotFound(t *testing.T) {
	svc := NewModerationService(&stubStore{})
	err := svc.ApproveDuaa("missing")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRejectDuaaDeletes(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	d := seedDuaa(t, store, "دعاء", false, false, time.Now())

	if err := svc.RejectDuaa(d.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got, _ := store.GetDuaa(d.ID); got != nil {
		t.Fatal("rejected duaa still present")
	}
	// Rejecting a second time reports not_found: nothing was kept around.
	err := svc.RejectDuaa(d.ID)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestToggleDuaaFeatured(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	d := seedDuaa(t, store, "دعاء", true, false, time.Now())

	on, err := svc.ToggleDuaaFeatured(d.ID)
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	off, err := svc.ToggleDuaaFeatured(d.ID)
	if err != nil || off {
		t.Fatalf("second toggle: on=%v err=%v", off, err)
	}
}

func TestPublicDuaasOrdering(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	oldPlain := seedDuaa(t, store, "old plain", true, false, base)
	newPlain := seedDuaa(t, store, "new plain", true, false, base.Add(2*time.Hour))
	featured := seedDuaa(t, store, "featured", true, true, base.Add(time.Hour))
	seedDuaa(t, store, "pending", false, true, base.Add(3*time.Hour))

	ds, err := svc.PublicDuaas()
	if err != nil {
		t.Fatalf("public: %v", err)
	}
	if len(ds) != 3 {
		t.Fatalf("expected 3 public duaas, got %d", len(ds))
	}
	want := []string{featured.ID, newPlain.ID, oldPlain.ID}
	for i, id := range want {
		if ds[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, ds[i].ID)
		}
	}
}

func TestPendingAndApprovedQueues(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	now := time.Now()
	seedDuaa(t, store, "a", false, false, now)
	seedDuaa(t, store, "b", true, false, now)
	seedDuaa(t, store, "c", false, false, now)

	pending, err := svc.PendingDuaas()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	approved, err := svc.ApprovedDuaas()
	if err != nil {
		t.Fatalf("approved: %v", err)
	}
	if len(approved) != 1 {
		t.Fatalf("expected 1 approved, got %d", len(approved))
	}
}

func TestToggleReflectionFeatured(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	r, err := store.InsertReflection(&Reflection{AyahNumber: 9, SymbolicTitle: "كنز", ReflectionText: "نص التأمل هنا", CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	on, err := svc.ToggleReflectionFeatured(r.ID)
	if err != nil || !on {
		t.Fatalf("toggle: on=%v err=%v", on, err)
	}
	if _, err := svc.ToggleReflectionFeatured("missing"); err == nil {
		t.Fatal("expected not_found for unknown id")
	}
}

func TestDeleteReflection(t *testing.T) {
	store := &stubStore{}
	svc := NewModerationService(store)
	r, _ := store.InsertReflection(&Reflection{AyahNumber: 9, SymbolicTitle: "كنز", ReflectionText: "نص التأمل هنا", CreatedAt: time.Now()})

	if err := svc.DeleteReflection(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := svc.DeleteReflection(r.ID)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestModerationWrapsStoreFailures(t *testing.T) {
	svc := NewModerationService(&stubStore{failWith: errSentinel})
	err := svc.ApproveDuaa("x")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorStore {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.PublicDuaas(); err == nil {
		t.Fatal("expected store error from listing")
	}
}
