package services

import "time"

// Participant is the optional identity attached to a reflection. It is
// created implicitly when a submitter supplies a name and is never updated
// or deleted by this service layer.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Reflection is a verse-linked submission. AyahText is a denormalized copy
// of the verse at submission time so historical display stays stable even if
// the verse dataset changes; it is set together with AyahNumber at creation
// and never re-derived. Reflections are public immediately; only duaas go
// through approval.
type Reflection struct {
	ID             string    `json:"id,omitempty"`
	AyahNumber     int       `json:"ayah_number"`
	AyahText       string    `json:"ayah_text"`
	SymbolicTitle  string    `json:"symbolic_title"`
	ReflectionText string    `json:"reflection_text"`
	ParticipantID  *string   `json:"participant_id,omitempty"`
	IsFeatured     bool      `json:"is_featured"`
	CreatedAt      time.Time `json:"created_at"`
}

// Duaa is a free-text prayer or message, not tied to a verse. It stays
// hidden from public listings until a moderator approves it. Rejection is a
// hard delete, not a status flip.
type Duaa struct {
	ID         string    `json:"id,omitempty"`
	Text       string    `json:"text"`
	AuthorName *string   `json:"author_name,omitempty"`
	IsApproved bool      `json:"is_approved"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// DuaaState is the tagged view of the two persisted booleans. The stored
// shape stays {is_approved, is_featured}; this exists so callers can reason
// about the lifecycle without re-deriving it from flags.
type DuaaState int

const (
	DuaaPending DuaaState = iota
	DuaaApproved
)

func (d *Duaa) State() DuaaState {
	if d.IsApproved {
		return DuaaApproved
	}
	return DuaaPending
}

// ReflectionPatch is a partial update for a stored reflection. Nil fields
// are left untouched.
type ReflectionPatch struct {
	IsFeatured *bool
}

// DuaaPatch is a partial update for a stored duaa.
type DuaaPatch struct {
	IsApproved *bool
	IsFeatured *bool
}
