package pagination

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture writes one A4 page per text; an empty text leaves the page
// blank.
func writeFixture(t *testing.T, pages ...string) string {
	t.Helper()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetCompression(false)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.SetFont("Helvetica", "", 12)
			doc.Text(72, 100, text)
		}
	}
	path := filepath.Join(t.TempDir(), "final.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

// textWidth measures s the way the fixture draws it.
func textWidth(s string) float64 {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	return doc.GetStringWidth(s)
}

// stampRecorder passes edits through and keeps the stamps it saw.
type stampRecorder struct {
	*PDFDocument
	stamps map[int][]Stamp
}

func (r *stampRecorder) AddStamp(i int, s Stamp) {
	r.stamps[i] = append(r.stamps[i], s)
	r.PDFDocument.AddStamp(i, s)
}

func validate(t *testing.T, path string) int {
	t.Helper()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	require.NoError(t, pdfapi.ValidateFile(path, conf))

	n, err := pdfapi.PageCountFile(path)
	require.NoError(t, err)
	return n
}

func TestOpenPDFMissingFile(t *testing.T) {
	t.Parallel()

	_, err := OpenPDF(filepath.Join(t.TempDir(), "missing.pdf"), nil)
	require.ErrorIs(t, err, ErrOpen)
}

func TestOpenPDFNotAPDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "final.pdf")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	_, err := OpenPDF(path, nil)
	require.ErrorIs(t, err, ErrOpen)
}

func TestPDFDocumentText(t *testing.T) {
	t.Parallel()

	doc, err := OpenPDF(writeFixture(t, "Cover Page", "", "Contents {{[8.1]_page}}"), nil)
	require.NoError(t, err)
	require.Equal(t, 3, doc.NumPages())

	text, err := doc.Text(0)
	require.NoError(t, err)
	assert.Equal(t, "Cover Page", text)

	text, err = doc.Text(1)
	require.NoError(t, err)
	assert.Empty(t, text)

	text, err = doc.Text(2)
	require.NoError(t, err)
	assert.Contains(t, text, "{{[8.1]_page}}")

	_, err = doc.Text(3)
	require.ErrorIs(t, err, ErrPageRange)
	_, err = doc.Text(-1)
	require.ErrorIs(t, err, ErrPageRange)
}

func TestPDFDocumentSize(t *testing.T) {
	t.Parallel()

	doc, err := OpenPDF(writeFixture(t, "page"), nil)
	require.NoError(t, err)

	size, err := doc.Size(0)
	require.NoError(t, err)
	assert.InDelta(t, 595.28, size.W, 1)
	assert.InDelta(t, 841.89, size.H, 1)
}

func TestPDFDocumentFind(t *testing.T) {
	t.Parallel()

	doc, err := OpenPDF(writeFixture(t, "Cover", "Contents {{[8.1]_page}}"), nil)
	require.NoError(t, err)

	_, ok, err := doc.Find(0, "{{[8.1]_page}}")
	require.NoError(t, err)
	assert.False(t, ok)

	box, ok, err := doc.Find(1, "{{[8.1]_page}}")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 72+textWidth("Contents "), box.X, 0.5)
	assert.InDelta(t, textWidth("{{[8.1]_page}}"), box.W, 0.5)
	assert.Positive(t, box.H)
}

func TestPDFDocumentDeletePages(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "one", "", "three", "")
	doc, err := OpenPDF(path, nil)
	require.NoError(t, err)

	require.NoError(t, doc.DeletePages([]int{1, 3}))
	require.Equal(t, 2, doc.NumPages())

	text, err := doc.Text(1)
	require.NoError(t, err)
	assert.Equal(t, "three", text)

	require.NoError(t, doc.Save())
	assert.Equal(t, 2, validate(t, path))
}

func TestResolvePDF(t *testing.T) {
	t.Parallel()

	path := writeFixture(t,
		"Security Review",
		"",
		"Contents 8.1. High Findings {{[8.1]_page}}",
		"8.1. High Findings",
	)
	opened, err := OpenPDF(path, nil)
	require.NoError(t, err)
	doc := &stampRecorder{PDFDocument: opened, stamps: make(map[int][]Stamp)}

	out, err := NewResolver().Resolve(doc, []string{"8.1. High Findings"})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, out.Deleted)
	assert.Equal(t, []Match{{Heading: "8.1. High Findings", Page: 2}}, out.Matches)
	assert.Equal(t, []string{"{{[8.1]_page}}"}, out.Rewritten)
	assert.Equal(t, 3, validate(t, path))

	var cover *Stamp
	for _, st := range doc.stamps[1] {
		if st.Cover {
			cover = &st
		}
	}
	require.NotNil(t, cover)
	assert.Equal(t, "2", cover.Text)
	tokenX := 72 + textWidth("Contents 8.1. High Findings ")
	assert.InDelta(t, tokenX, cover.Box.X, 0.5)
	assert.InDelta(t, textWidth("{{[8.1]_page}}"), cover.Box.W, 0.5)

	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteOverlay(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "overlay.pdf")
	err := writeOverlay(path, Size{W: 595, H: 842}, []Stamp{
		{Box: Rect{W: 595, H: 842.0 / 25}, Text: "4", FontSize: 14, Color: "#212529"},
		{Box: Rect{X: 480, Y: 700, W: 90, H: 16}, Text: "12", FontSize: 20, Color: "#212529", Align: AlignRight, Cover: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, validate(t, path))

	err = writeOverlay(path, Size{W: 595, H: 842}, []Stamp{{Text: "1", FontSize: 14, Color: "red"}})
	require.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	r, g, b, err := parseHexColor("#212529")
	require.NoError(t, err)
	assert.Equal(t, []int{0x21, 0x25, 0x29}, []int{r, g, b})

	_, _, _, err = parseHexColor("#21252")
	require.Error(t, err)
	_, _, _, err = parseHexColor("#zzzzzz")
	require.Error(t, err)
}

func TestJoinGlyphs(t *testing.T) {
	t.Parallel()

	glyphs := []pdf.Text{
		{X: 10, Y: 100, W: 6, FontSize: 12, S: "A"},
		{X: 16, Y: 100, W: 6, FontSize: 12, S: "B"},
		{X: 40, Y: 100, W: 6, FontSize: 12, S: "C"},
		{X: 10, Y: 80, W: 6, FontSize: 12, S: "D"},
	}
	assert.Equal(t, "AB C\nD", joinGlyphs(glyphs))
}

func TestPlaceGlyphs(t *testing.T) {
	t.Parallel()

	line := "Contents {{[8.1]_page}}"
	var glyphs []pdf.Text
	for _, r := range line {
		glyphs = append(glyphs, pdf.Text{Font: "Helvetica", FontSize: 12, X: 72, Y: 700, S: string(r)})
	}
	glyphs = append(glyphs,
		pdf.Text{Font: "Helvetica", FontSize: 12, X: 300, Y: 700, S: "A"},
		pdf.Text{Font: "Helvetica", FontSize: 12, X: 72, Y: 680, S: "B"},
		pdf.Text{Font: "Helvetica", FontSize: 12, X: 400, Y: 680, W: 7, S: "C"},
	)

	placed := placeGlyphs(glyphs)
	require.Len(t, placed, len(glyphs))
	assert.InDelta(t, 72, placed[0].X, 0.001)
	assert.InDelta(t, 72+textWidth("Contents "), placed[len("Contents ")].X, 0.001)
	assert.InDelta(t, textWidth("{"), placed[len("Contents ")].W, 0.001)

	n := len(line)
	assert.InDelta(t, 300, placed[n].X, 0.001, "explicit reposition keeps its position")
	assert.InDelta(t, 72, placed[n+1].X, 0.001, "new baseline starts a new run")
	assert.Equal(t, glyphs[n+2], placed[n+2], "glyphs with widths are untouched")
	assert.Zero(t, glyphs[0].W, "input is not modified")

	box, ok := findBox(placed, "{{[8.1]_page}}")
	require.True(t, ok)
	assert.InDelta(t, 72+textWidth("Contents "), box.X, 0.001)
	assert.InDelta(t, textWidth("{{[8.1]_page}}"), box.W, 0.001)
}

func TestFindBox(t *testing.T) {
	t.Parallel()

	glyphs := []pdf.Text{
		{X: 10, Y: 100, W: 6, FontSize: 12, S: "x"},
		{X: 20, Y: 100, W: 6, FontSize: 12, S: "{"},
		{X: 26, Y: 100, W: 6, FontSize: 12, S: " "},
		{X: 32, Y: 100, W: 6, FontSize: 12, S: "}"},
	}
	box, ok := findBox(glyphs, "{}")
	require.True(t, ok)
	assert.InDelta(t, 20, box.X, 0.001)
	assert.InDelta(t, 18, box.W, 0.001)
	assert.InDelta(t, 97, box.Y, 0.001)
	assert.InDelta(t, 14.4, box.H, 0.001)

	_, ok = findBox(glyphs, "{x")
	assert.False(t, ok)
	_, ok = findBox(glyphs, "  ")
	assert.False(t, ok)
}
