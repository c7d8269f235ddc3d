package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Fixed CSV column orders. The reflection columns mirror the original
// record-store shape and must not be reordered.
var (
	reflectionCSVHeader = []string{"ayah_number", "ayah_text", "symbolic_title", "reflection_text", "is_featured", "created_at"}
	duaaCSVHeader       = []string{"text", "author_name", "is_approved", "is_featured", "created_at"}
)

// ExportFilename stamps an export artifact with the current date, e.g.
// kahf-reflections-2026-08-28.csv.
func ExportFilename(entity, ext string, now time.Time) string {
	return "kahf-" + entity + "-" + now.UTC().Format("2006-01-02") + "." + ext
}

// ExportReflectionsJSON renders the record set pretty-printed with 2-space
// indentation.
func ExportReflectionsJSON(rs []*Reflection) ([]byte, error) {
	if rs == nil {
		rs = []*Reflection{}
	}
	return json.MarshalIndent(rs, "", "  ")
}

func ExportDuaasJSON(ds []*Duaa) ([]byte, error) {
	if ds == nil {
		ds = []*Duaa{}
	}
	return json.MarshalIndent(ds, "", "  ")
}

// ExportReflectionsCSV renders the fixed-column CSV. Every string-typed
// value is wrapped in double quotes with internal quotes doubled, whether or
// not it contains a delimiter. Numbers and booleans stay bare.
func ExportReflectionsCSV(rs []*Reflection) []byte {
	rows := make([]string, 0, len(rs)+1)
	rows = append(rows, strings.Join(reflectionCSVHeader, ","))
	for _, r := range rs {
		rows = append(rows, strings.Join([]string{
			strconv.Itoa(r.AyahNumber),
			csvQuote(r.AyahText),
			csvQuote(r.SymbolicTitle),
			csvQuote(r.ReflectionText),
			strconv.FormatBool(r.IsFeatured),
			csvQuote(r.CreatedAt.UTC().Format(time.RFC3339)),
		}, ","))
	}
	return []byte(strings.Join(rows, "\n"))
}

func ExportDuaasCSV(ds []*Duaa) []byte {
	rows := make([]string, 0, len(ds)+1)
	rows = append(rows, strings.Join(duaaCSVHeader, ","))
	for _, d := range ds {
		author := ""
		if d.AuthorName != nil {
			author = *d.AuthorName
		}
		rows = append(rows, strings.Join([]string{
			csvQuote(d.Text),
			csvQuote(author),
			strconv.FormatBool(d.IsApproved),
			strconv.FormatBool(d.IsFeatured),
			csvQuote(d.CreatedAt.UTC().Format(time.RFC3339)),
		}, ","))
	}
	return []byte(strings.Join(rows, "\n"))
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
