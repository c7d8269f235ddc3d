package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ImportStore is the write slice the importer needs. Import is insert-only;
// it never updates or deletes existing records.
type ImportStore interface {
	InsertReflection(r *Reflection) (*Reflection, error)
}

// ImportService restores reflections from a previously exported JSON or CSV
// file. Imported records get fresh ids and timestamps; any id or created_at
// carried in the file is discarded so an import can never collide with or
// overwrite live data.
type ImportService struct {
	store ImportStore
	now   func() time.Time
}

func NewImportService(store ImportStore) *ImportService {
	return &ImportService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ImportReflections dispatches on the filename extension (case-insensitive)
// and returns the number of records inserted. Anything other than .json or
// .csv is an unsupported_format error.
func (s *ImportService) ImportReflections(filename string, data []byte) (int, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return s.importJSON(data)
	case ".csv":
		return s.importCSV(data)
	default:
		return 0, NewUnsupportedFormatError("unsupported import file type: " + filename)
	}
}

// importJSON trusts the file shape: records are decoded and inserted as-is
// (minus id and timestamp). A JSON export is assumed to have been valid when
// it was written.
func (s *ImportService) importJSON(data []byte) (int, error) {
	var rs []Reflection
	if err := json.Unmarshal(data, &rs); err != nil {
		return 0, NewInvalidError("malformed JSON: " + err.Error())
	}
	count := 0
	for i := range rs {
		r := rs[i]
		r.ID = ""
		r.ParticipantID = nil
		r.CreatedAt = s.now()
		if _, err := s.store.InsertReflection(&r); err != nil {
			return count, storeFailure(err)
		}
		count++
	}
	return count, nil
}

// importCSV parses with a real CSV reader (quoted fields, embedded commas and
// newlines all handled), maps columns by header name, coerces the typed
// columns, and runs each row through the submit-time validator. A row that
// fails validation aborts the import with its row number; rows already
// inserted stay.
func (s *ImportService) importCSV(data []byte) (int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, NewInvalidError("malformed CSV: missing header row")
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	count := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, NewInvalidError(fmt.Sprintf("malformed CSV at line %d: %v", line, err))
		}
		// Atoi failure coerces to 0, which the validator then rejects as an
		// out-of-range verse.
		ayah, _ := strconv.Atoi(strings.TrimSpace(field(row, "ayah_number")))
		r, err := ValidateReflection(ReflectionInput{
			AyahNumber:     ayah,
			AyahText:       field(row, "ayah_text"),
			SymbolicTitle:  field(row, "symbolic_title"),
			ReflectionText: field(row, "reflection_text"),
		})
		if err != nil {
			return count, NewInvalidError(fmt.Sprintf("row %d: %v", line, err))
		}
		r.IsFeatured = field(row, "is_featured") == "true"
		r.CreatedAt = s.now()
		if _, err := s.store.InsertReflection(r); err != nil {
			return count, storeFailure(err)
		}
		count++
	}
	return count, nil
}
