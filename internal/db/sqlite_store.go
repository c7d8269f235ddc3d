package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nouraliman/kunuz/internal/api"
	"github.com/nouraliman/kunuz/internal/services"
)

// SQLiteStore is the durable backing store. Timestamps are stored as RFC3339
// UTC text, booleans as 0/1.
type SQLiteStore struct {
	db *sql.DB
}

var _ api.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

func newID() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] }

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toNullString(p *string) sql.NullString {
	if p == nil || strings.TrimSpace(*p) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func (s *SQLiteStore) InsertParticipant(p *services.Participant) (*services.Participant, error) {
	cp := *p
	cp.ID = newID()
	_, err := s.db.Exec(
		`INSERT INTO participants (id, name, created_at) VALUES (?, ?, ?)`,
		cp.ID, cp.Name, encodeTime(cp.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	return &cp, nil
}

func (s *SQLiteStore) GetParticipant(id string) (*services.Participant, error) {
	var (
		p       services.Participant
		created string
	)
	err := s.db.QueryRow(`SELECT id, name, created_at FROM participants WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	p.CreatedAt = decodeTime(created)
	return &p, nil
}

func (s *SQLiteStore) InsertReflection(r *services.Reflection) (*services.Reflection, error) {
	cp := *r
	cp.ID = newID()
	_, err := s.db.Exec(
		`INSERT INTO reflections (id, ayah_number, ayah_text, symbolic_title, reflection_text, participant_id, is_featured, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.AyahNumber, cp.AyahText, cp.SymbolicTitle, cp.ReflectionText,
		toNullString(cp.ParticipantID), boolToInt64(cp.IsFeatured), encodeTime(cp.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert reflection: %w", err)
	}
	return &cp, nil
}

func (s *SQLiteStore) GetReflection(id string) (*services.Reflection, error) {
	row := s.db.QueryRow(
		`SELECT id, ayah_number, ayah_text, symbolic_title, reflection_text, participant_id, is_featured, created_at
		 FROM reflections WHERE id = ?`, id)
	r, err := scanReflection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reflection: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) UpdateReflection(id string, patch services.ReflectionPatch) (bool, error) {
	if patch.IsFeatured == nil {
		return s.exists("reflections", id)
	}
	res, err := s.db.Exec(`UPDATE reflections SET is_featured = ? WHERE id = ?`, boolToInt64(*patch.IsFeatured), id)
	if err != nil {
		return false, fmt.Errorf("update reflection: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) DeleteReflection(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM reflections WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete reflection: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) ListReflections() ([]*services.Reflection, error) {
	rows, err := s.db.Query(
		`SELECT id, ayah_number, ayah_text, symbolic_title, reflection_text, participant_id, is_featured, created_at
		 FROM reflections ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	defer rows.Close()
	var out []*services.Reflection
	for rows.Next() {
		r, err := scanReflection(rows)
		if err != nil {
			return nil, fmt.Errorf("list reflections: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertDuaa(d *services.Duaa) (*services.Duaa, error) {
	cp := *d
	cp.ID = newID()
	_, err := s.db.Exec(
		`INSERT INTO duaas (id, text, author_name, is_approved, is_featured, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.Text, toNullString(cp.AuthorName),
		boolToInt64(cp.IsApproved), boolToInt64(cp.IsFeatured), encodeTime(cp.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert duaa: %w", err)
	}
	return &cp, nil
}

func (s *SQLiteStore) GetDuaa(id string) (*services.Duaa, error) {
	row := s.db.QueryRow(
		`SELECT id, text, author_name, is_approved, is_featured, created_at FROM duaas WHERE id = ?`, id)
	d, err := scanDuaa(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get duaa: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) UpdateDuaa(id string, patch services.DuaaPatch) (bool, error) {
	sets := []string{}
	args := []any{}
	if patch.IsApproved != nil {
		sets = append(sets, "is_approved = ?")
		args = append(args, boolToInt64(*patch.IsApproved))
	}
	if patch.IsFeatured != nil {
		sets = append(sets, "is_featured = ?")
		args = append(args, boolToInt64(*patch.IsFeatured))
	}
	if len(sets) == 0 {
		return s.exists("duaas", id)
	}
	args = append(args, id)
	res, err := s.db.Exec(`UPDATE duaas SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, fmt.Errorf("update duaa: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) DeleteDuaa(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM duaas WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete duaa: %w", err)
	}
	return affected(res)
}

func (s *SQLiteStore) ListDuaas() ([]*services.Duaa, error) {
	rows, err := s.db.Query(
		`SELECT id, text, author_name, is_approved, is_featured, created_at
		 FROM duaas ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list duaas: %w", err)
	}
	defer rows.Close()
	var out []*services.Duaa
	for rows.Next() {
		d, err := scanDuaa(rows)
		if err != nil {
			return nil, fmt.Errorf("list duaas: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReflection(row rowScanner) (*services.Reflection, error) {
	var (
		r        services.Reflection
		pid      sql.NullString
		featured int64
		created  string
	)
	if err := row.Scan(&r.ID, &r.AyahNumber, &r.AyahText, &r.SymbolicTitle, &r.ReflectionText, &pid, &featured, &created); err != nil {
		return nil, err
	}
	r.ParticipantID = fromNullString(pid)
	r.IsFeatured = int64ToBool(featured)
	r.CreatedAt = decodeTime(created)
	return &r, nil
}

func scanDuaa(row rowScanner) (*services.Duaa, error) {
	var (
		d        services.Duaa
		author   sql.NullString
		approved int64
		featured int64
		created  string
	)
	if err := row.Scan(&d.ID, &d.Text, &author, &approved, &featured, &created); err != nil {
		return nil, err
	}
	d.AuthorName = fromNullString(author)
	d.IsApproved = int64ToBool(approved)
	d.IsFeatured = int64ToBool(featured)
	d.CreatedAt = decodeTime(created)
	return &d, nil
}

func (s *SQLiteStore) exists(table, id string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return true, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
