package services

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFReflection is one block of the decorative reflections document, with
// the participant name already resolved.
type PDFReflection struct {
	Title      string
	AyahNumber int
	AyahText   string
	Author     string
	Text       string
}

const (
	pdfMargin     = 10.0
	pdfYStart     = 60.0
	pdfYBreak     = 250.0
	pdfYAfterPage = 30.0
)

// BuildReflectionsPDF renders the reflections as a right-to-left A4 document:
// gold double border, title header, then one block per reflection (title,
// verse number, verse text, author if present, reflection text), starting a
// new page whenever a block would run past the vertical limit. fontPath may
// point at a UTF-8 TTF (e.g. Amiri) for proper Arabic glyphs; without it the
// built-in font is used.
func BuildReflectionsPDF(rs []PDFReflection, exportedAt time.Time, fontPath string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	family := "Helvetica"
	utf8Font := fontPath != ""
	if utf8Font {
		family = "Amiri"
		pdf.AddUTF8Font(family, "", fontPath)
	}
	pdf.RTL()
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*(pdfMargin+10)
	drawBorder(pdf)

	pdf.SetFont(family, "", 28)
	pdf.SetTextColor(139, 69, 19)
	pdf.SetXY(pdfMargin, 24)
	pdf.CellFormat(pageW-2*pdfMargin, 10, "كنوز سورة الكهف", "", 0, "C", false, 0, "")

	pdf.SetFont(family, "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(pdfMargin, 36)
	pdf.CellFormat(pageW-2*pdfMargin, 8, "تاريخ التصدير: "+exportedAt.UTC().Format("2006-01-02"), "", 0, "C", false, 0, "")

	y := pdfYStart
	// Line wrapping needs per-rune glyph metrics, which only the registered
	// TTF provides; with the built-in font each value stays on one line.
	wrap := func(text string) []string {
		if utf8Font {
			return pdf.SplitText(text, contentW)
		}
		return []string{text}
	}
	line := func(size float64, r, g, b int, text string, lineH float64) {
		pdf.SetFont(family, "", size)
		pdf.SetTextColor(r, g, b)
		for _, ln := range wrap(text) {
			if y > pdfYBreak {
				pdf.AddPage()
				drawBorder(pdf)
				y = pdfYAfterPage
			}
			pdf.SetXY(pdfMargin+10, y)
			pdf.CellFormat(contentW, lineH, ln, "", 0, "R", false, 0, "")
			y += lineH
		}
	}

	for i, r := range rs {
		if y > pdfYBreak {
			pdf.AddPage()
			drawBorder(pdf)
			y = pdfYAfterPage
		}
		line(16, 139, 69, 19, strconv.Itoa(i+1)+". "+r.Title, 10)
		line(12, 0, 0, 0, "آية رقم: "+strconv.Itoa(r.AyahNumber), 8)
		line(12, 0, 102, 102, r.AyahText, 7)
		if r.Author != "" {
			line(12, 100, 100, 100, "بقلم: "+r.Author, 8)
		}
		line(12, 0, 0, 0, r.Text, 6)
		y += 10
		pdf.SetDrawColor(218, 165, 32)
		pdf.SetLineWidth(0.2)
		pdf.Line(30, y-5, pageW-30, y-5)
		y += 15
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawBorder(pdf *fpdf.Fpdf) {
	pageW, pageH := pdf.GetPageSize()
	pdf.SetDrawColor(218, 165, 32)
	pdf.SetLineWidth(0.5)
	pdf.Rect(pdfMargin, pdfMargin, pageW-2*pdfMargin, pageH-2*pdfMargin, "D")
	pdf.SetLineWidth(0.2)
	pdf.Rect(pdfMargin+3, pdfMargin+3, pageW-2*(pdfMargin+3), pageH-2*(pdfMargin+3), "D")
}
