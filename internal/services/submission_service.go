package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nouraliman/kunuz/internal/kahf"
)

// MinReflectionLen is the minimum number of characters (codepoints, counted
// before any trimming) a reflection text must have.
const MinReflectionLen = 10

// SubmissionStore abstracts the inserts needed by the submit workflows.
// Identifiers are generated by the store.
type SubmissionStore interface {
	InsertParticipant(p *Participant) (*Participant, error)
	InsertReflection(r *Reflection) (*Reflection, error)
	InsertDuaa(d *Duaa) (*Duaa, error)
}

// ReflectionInput is the candidate payload from the submit form.
type ReflectionInput struct {
	AyahNumber      int    `json:"ayah_number"`
	AyahText        string `json:"ayah_text"`
	SymbolicTitle   string `json:"symbolic_title"`
	ReflectionText  string `json:"reflection_text"`
	ParticipantName string `json:"name,omitempty"`
}

// DuaaInput is the candidate payload for a prayer submission.
type DuaaInput struct {
	Text       string `json:"text"`
	AuthorName string `json:"author_name,omitempty"`
}

// ValidateReflection checks the payload and returns a normalized record
// (trimmed strings, no id, no timestamp) for the caller to persist. It never
// touches storage. A whitespace-only participant name means "no name
// supplied", not an error.
func ValidateReflection(in ReflectionInput) (*Reflection, error) {
	if !kahf.Valid(in.AyahNumber) {
		return nil, NewInvalidError("ayah_number must reference a verse of the surah")
	}
	if strings.TrimSpace(in.AyahText) == "" {
		return nil, NewInvalidError("ayah_text required")
	}
	if strings.TrimSpace(in.SymbolicTitle) == "" {
		return nil, NewInvalidError("symbolic_title required")
	}
	// Length counts codepoints of the raw text; trimming only happens after
	// the check, matching the submit form's rule.
	if utf8.RuneCountInString(in.ReflectionText) < MinReflectionLen {
		return nil, NewInvalidError("reflection_text must be at least 10 characters")
	}
	return &Reflection{
		AyahNumber:     in.AyahNumber,
		AyahText:       strings.TrimSpace(in.AyahText),
		SymbolicTitle:  strings.TrimSpace(in.SymbolicTitle),
		ReflectionText: strings.TrimSpace(in.ReflectionText),
	}, nil
}

// ValidateDuaa checks a duaa payload and returns the normalized record. The
// author name is optional; empty after trimming becomes absent.
func ValidateDuaa(in DuaaInput) (*Duaa, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, NewInvalidError("text required")
	}
	d := &Duaa{Text: text}
	if name := strings.TrimSpace(in.AuthorName); name != "" {
		d.AuthorName = &name
	}
	return d, nil
}

// SubmissionService gates writes into the record store: it validates and
// normalizes payloads, creates the implicit participant when a name was
// given, and inserts records in their default unapproved/unfeatured state.
type SubmissionService struct {
	store SubmissionStore
	now   func() time.Time
}

func NewSubmissionService(store SubmissionStore) *SubmissionService {
	return &SubmissionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *SubmissionService) SubmitReflection(in ReflectionInput) (*Reflection, error) {
	r, err := ValidateReflection(in)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.ParticipantName); name != "" {
		p, err := s.store.InsertParticipant(&Participant{Name: name, CreatedAt: s.now()})
		if err != nil {
			return nil, storeFailure(err)
		}
		r.ParticipantID = &p.ID
	}
	r.CreatedAt = s.now()
	stored, err := s.store.InsertReflection(r)
	if err != nil {
		return nil, storeFailure(err)
	}
	return stored, nil
}

func (s *SubmissionService) SubmitDuaa(in DuaaInput) (*Duaa, error) {
	d, err := ValidateDuaa(in)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = s.now()
	stored, err := s.store.InsertDuaa(d)
	if err != nil {
		return nil, storeFailure(err)
	}
	return stored, nil
}
