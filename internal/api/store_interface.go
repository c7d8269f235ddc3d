package api

import "github.com/nouraliman/kunuz/internal/services"

// Store is the persistence contract shared by the in-memory store and the
// SQLite store. Insert methods assign the id and return the stored record.
// Update and delete report (false, nil) for an unknown id; list methods
// return newest first. The interface is the union of the narrow per-service
// interfaces declared in services, so either implementation can back every
// service directly.
type Store interface {
	InsertParticipant(p *services.Participant) (*services.Participant, error)
	GetParticipant(id string) (*services.Participant, error)

	InsertReflection(r *services.Reflection) (*services.Reflection, error)
	GetReflection(id string) (*services.Reflection, error)
	UpdateReflection(id string, patch services.ReflectionPatch) (bool, error)
	DeleteReflection(id string) (bool, error)
	ListReflections() ([]*services.Reflection, error)

	InsertDuaa(d *services.Duaa) (*services.Duaa, error)
	GetDuaa(id string) (*services.Duaa, error)
	UpdateDuaa(id string, patch services.DuaaPatch) (bool, error)
	DeleteDuaa(id string) (bool, error)
	ListDuaas() ([]*services.Duaa, error)
}
