package services

import "time"

// Export entities and formats, as they appear in the query string.
const (
	EntityReflections = "reflections"
	EntityDuaas       = "duaas"

	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// ExportStore is the read slice the exporter needs. GetParticipant resolves
// author names for the PDF rendering; nil means the participant is gone.
type ExportStore interface {
	ListReflections() ([]*Reflection, error)
	ListDuaas() ([]*Duaa, error)
	GetParticipant(id string) (*Participant, error)
}

type ExportParams struct {
	Entity string
	Format string
}

// ExportResult is a ready-to-serve artifact.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService turns the current record set into downloadable artifacts.
type ExportService struct {
	store       ExportStore
	now         func() time.Time
	pdfFontPath string
}

func NewExportService(store ExportStore, pdfFontPath string) *ExportService {
	return &ExportService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		pdfFontPath: pdfFontPath,
	}
}

// Export renders the requested entity in the requested format. Unknown
// entity/format combinations yield an unsupported_format error; the duaa set
// has no PDF rendering.
func (s *ExportService) Export(p ExportParams) (*ExportResult, error) {
	switch p.Entity {
	case EntityReflections:
		return s.exportReflections(p.Format)
	case EntityDuaas:
		return s.exportDuaas(p.Format)
	default:
		return nil, NewUnsupportedFormatError("unknown export entity: " + p.Entity)
	}
}

func (s *ExportService) exportReflections(format string) (*ExportResult, error) {
	rs, err := s.store.ListReflections()
	if err != nil {
		return nil, storeFailure(err)
	}
	switch format {
	case FormatJSON:
		data, err := ExportReflectionsJSON(rs)
		if err != nil {
			return nil, NewStoreError(err.Error())
		}
		return s.result(EntityReflections, "json", "application/json", data), nil
	case FormatCSV:
		return s.result(EntityReflections, "csv", "text/csv; charset=utf-8", ExportReflectionsCSV(rs)), nil
	case FormatPDF:
		blocks, err := s.pdfBlocks(rs)
		if err != nil {
			return nil, err
		}
		data, err := BuildReflectionsPDF(blocks, s.now(), s.pdfFontPath)
		if err != nil {
			return nil, NewStoreError(err.Error())
		}
		return s.result(EntityReflections, "pdf", "application/pdf", data), nil
	default:
		return nil, NewUnsupportedFormatError("unknown export format: " + format)
	}
}

func (s *ExportService) exportDuaas(format string) (*ExportResult, error) {
	ds, err := s.store.ListDuaas()
	if err != nil {
		return nil, storeFailure(err)
	}
	switch format {
	case FormatJSON:
		data, err := ExportDuaasJSON(ds)
		if err != nil {
			return nil, NewStoreError(err.Error())
		}
		return s.result(EntityDuaas, "json", "application/json", data), nil
	case FormatCSV:
		return s.result(EntityDuaas, "csv", "text/csv; charset=utf-8", ExportDuaasCSV(ds)), nil
	default:
		return nil, NewUnsupportedFormatError("unknown export format: " + format)
	}
}

// pdfBlocks resolves participant names; a dangling participant id renders as
// anonymous rather than failing the whole document.
func (s *ExportService) pdfBlocks(rs []*Reflection) ([]PDFReflection, error) {
	names := map[string]string{}
	blocks := make([]PDFReflection, 0, len(rs))
	for _, r := range rs {
		author := ""
		if r.ParticipantID != nil {
			id := *r.ParticipantID
			name, seen := names[id]
			if !seen {
				p, err := s.store.GetParticipant(id)
				if err != nil {
					return nil, storeFailure(err)
				}
				if p != nil {
					name = p.Name
				}
				names[id] = name
			}
			author = name
		}
		blocks = append(blocks, PDFReflection{
			Title:      r.SymbolicTitle,
			AyahNumber: r.AyahNumber,
			AyahText:   r.AyahText,
			Author:     author,
			Text:       r.ReflectionText,
		})
	}
	return blocks, nil
}

func (s *ExportService) result(entity, ext, contentType string, data []byte) *ExportResult {
	return &ExportResult{
		Filename:    ExportFilename(entity, ext, s.now()),
		ContentType: contentType,
		Data:        data,
	}
}
