package pagination

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// overlayDesc places a same-size overlay page exactly over its target.
const overlayDesc = "pos:c, scale:1 abs, rot:0"

// PDFDocument is a Document backed by a PDF file. Text comes from
// ledongthuc/pdf; edits go through pdfcpu and are written back to the same
// path by Save.
type PDFDocument struct {
	path   string
	data   []byte
	reader *pdf.Reader
	stamps map[int][]Stamp
	conf   *model.Configuration
	logger *zap.Logger
}

// OpenPDF reads the PDF at path.
func OpenPDF(path string, logger *zap.Logger) (*PDFDocument, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	d := &PDFDocument{path: path, conf: conf, logger: logger, stamps: make(map[int][]Stamp)}
	if err := d.load(data); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *PDFDocument) load(data []byte) error {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, d.path, err)
	}
	d.data = data
	d.reader = r
	return nil
}

// NumPages implements Document.
func (d *PDFDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *PDFDocument) page(i int) (pdf.Page, error) {
	if i < 0 || i >= d.NumPages() {
		return pdf.Page{}, fmt.Errorf("%w: %d of %d", ErrPageRange, i, d.NumPages())
	}
	p := d.reader.Page(i + 1)
	if p.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("%w: page %d has no dictionary", ErrOpen, i)
	}
	return p, nil
}

// glyphs returns the positioned text runs of page i. The reader panics on
// some malformed content streams; those pages read as empty.
func (d *PDFDocument) glyphs(i int) (text []pdf.Text, err error) {
	p, err := d.page(i)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Warn("unreadable page content", zap.Int("page", i), zap.Any("panic", rec))
			text = nil
		}
	}()
	return p.Content().Text, nil
}

// Text implements Document.
func (d *PDFDocument) Text(i int) (string, error) {
	glyphs, err := d.glyphs(i)
	if err != nil {
		return "", err
	}
	return normalizeText(joinGlyphs(glyphs)), nil
}

// Size implements Document.
func (d *PDFDocument) Size(i int) (Size, error) {
	p, err := d.page(i)
	if err != nil {
		return Size{}, err
	}
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return Size{
				W: box.Index(2).Float64() - box.Index(0).Float64(),
				H: box.Index(3).Float64() - box.Index(1).Float64(),
			}, nil
		}
	}
	return Size{}, fmt.Errorf("%w: page %d has no media box", ErrOpen, i)
}

// Find implements Document.
func (d *PDFDocument) Find(i int, needle string) (Rect, bool, error) {
	glyphs, err := d.glyphs(i)
	if err != nil {
		return Rect{}, false, err
	}
	box, ok := findBox(placeGlyphs(glyphs), needle)
	return box, ok, nil
}

// DeletePages implements Document. Queued stamps are dropped, as their
// page indexes no longer apply.
func (d *PDFDocument) DeletePages(pages []int) error {
	if len(pages) == 0 {
		return nil
	}
	selected := make([]string, len(pages))
	for i, p := range pages {
		selected[i] = strconv.Itoa(p + 1)
	}

	var buf bytes.Buffer
	if err := api.RemovePages(bytes.NewReader(d.data), &buf, selected, d.conf); err != nil {
		return fmt.Errorf("%w: remove pages %v: %w", ErrEdit, selected, err)
	}
	clear(d.stamps)
	return d.load(buf.Bytes())
}

// AddStamp implements Document.
func (d *PDFDocument) AddStamp(i int, s Stamp) {
	d.stamps[i] = append(d.stamps[i], s)
}

// Save implements Document. Each page with stamps gets one overlay page,
// drawn with fpdf and stamped on top by pdfcpu.
func (d *PDFDocument) Save() error {
	if len(d.stamps) > 0 {
		data, err := d.applyStamps()
		if err != nil {
			return err
		}
		if err := d.load(data); err != nil {
			return err
		}
		clear(d.stamps)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, d.data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("replace %s: %w", d.path, err)
	}
	return nil
}

func (d *PDFDocument) applyStamps() ([]byte, error) {
	dir, err := os.MkdirTemp("", "compiloor-overlay-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	pages := make([]int, 0, len(d.stamps))
	for p := range d.stamps {
		pages = append(pages, p)
	}
	slices.Sort(pages)

	marks := make(map[int]*model.Watermark, len(pages))
	for _, p := range pages {
		size, err := d.Size(p)
		if err != nil {
			return nil, err
		}
		overlay := filepath.Join(dir, fmt.Sprintf("page-%d.pdf", p+1))
		if err := writeOverlay(overlay, size, d.stamps[p]); err != nil {
			return nil, err
		}
		wm, err := api.PDFWatermark(overlay, overlayDesc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: overlay for page %d: %w", ErrEdit, p, err)
		}
		marks[p+1] = wm
	}

	var buf bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(d.data), &buf, marks, d.conf); err != nil {
		return nil, fmt.Errorf("%w: apply overlays: %w", ErrEdit, err)
	}
	d.logger.Debug("applied overlays", zap.Int("pages", len(pages)))
	return buf.Bytes(), nil
}

// joinGlyphs concatenates text runs, starting a new line when the baseline
// moves and inserting a space where runs are visibly apart.
func joinGlyphs(glyphs []pdf.Text) string {
	var sb strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			fs := math.Max(prev.FontSize, 1)
			switch {
			case math.Abs(g.Y-prev.Y) > fs*0.5:
				sb.WriteByte('\n')
			case prev.W > 0 && g.X-(prev.X+prev.W) > fs*0.2:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.S)
	}
	return sb.String()
}

// findBox locates needle in the glyph stream, ignoring whitespace, and
// returns the union of the matched glyph boxes.
func findBox(glyphs []pdf.Text, needle string) (Rect, bool) {
	target := []rune(strings.Join(strings.Fields(needle), ""))
	if len(target) == 0 {
		return Rect{}, false
	}

	var stream []rune
	var owner []int
	for gi, g := range glyphs {
		for _, r := range g.S {
			if unicode.IsSpace(r) {
				continue
			}
			stream = append(stream, r)
			owner = append(owner, gi)
		}
	}

	start := indexRunes(stream, target)
	if start < 0 {
		return Rect{}, false
	}
	first, last := owner[start], owner[start+len(target)-1]

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	size := 0.0
	for _, g := range glyphs[first : last+1] {
		minX = math.Min(minX, g.X)
		maxX = math.Max(maxX, g.X+g.W)
		minY = math.Min(minY, g.Y)
		maxY = math.Max(maxY, g.Y)
		size = math.Max(size, g.FontSize)
	}
	width := maxX - minX
	if width < 1 {
		// Fonts without width tables report zero advances.
		width = float64(len(target)) * size * 0.5
	}
	return Rect{
		X: minX,
		Y: minY - size*0.25,
		W: width,
		H: maxY - minY + size*1.2,
	}, true
}

// placeGlyphs fills in positions for fonts without a width table. The reader
// reports their glyphs with zero width and without advancing X, so every
// glyph of a run sits at the run start. Advances are measured with the
// overlay font's metrics instead. A glyph continues the run while its
// reported X stays within one font size of the previous one, which keeps
// kerning adjustments and drops the offset on an explicit reposition.
func placeGlyphs(glyphs []pdf.Text) []pdf.Text {
	out := slices.Clone(glyphs)
	var meter *fpdf.Fpdf
	var prevRaw, prevY, offset float64
	inRun := false
	for i := range out {
		g := &out[i]
		if g.W > 0 {
			inRun = false
			continue
		}
		if meter == nil {
			meter = fpdf.New("P", "pt", "A4", "")
			meter.SetFont(overlayFont, "", 12)
		}
		fs := math.Max(g.FontSize, 1)
		raw := g.X
		if !inRun || math.Abs(g.Y-prevY) > fs*0.5 || math.Abs(raw-prevRaw) > fs {
			offset = 0
		}
		meter.SetFontSize(fs)
		g.X = raw + offset
		g.W = meter.GetStringWidth(g.S)
		offset = g.X + g.W - raw
		prevRaw, prevY, inRun = raw, g.Y, true
	}
	return out
}

func indexRunes(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if slices.Equal(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
