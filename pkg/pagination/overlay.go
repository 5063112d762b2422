package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// overlayFont is a core font, so no font files are needed.
const overlayFont = "Helvetica"

// writeOverlay draws stamps on a single transparent page of the given size
// and writes it to path.
func writeOverlay(path string, size Size, stamps []Stamp) error {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.W, Ht: size.H},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	for _, s := range stamps {
		if err := drawStamp(doc, size, s); err != nil {
			return err
		}
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: write overlay: %w", ErrEdit, err)
	}
	return nil
}

func drawStamp(doc *fpdf.Fpdf, page Size, s Stamp) error {
	r, g, b, err := parseHexColor(s.Color)
	if err != nil {
		return err
	}

	// fpdf measures from the top-left corner.
	top := page.H - (s.Box.Y + s.Box.H)

	if s.Cover {
		doc.SetFillColor(255, 255, 255)
		doc.Rect(s.Box.X, top, s.Box.W, s.Box.H, "F")
	}

	doc.SetFont(overlayFont, "", s.FontSize)
	doc.SetTextColor(r, g, b)

	width := doc.GetStringWidth(s.Text)
	x := s.Box.X + (s.Box.W-width)/2
	if s.Align == AlignRight {
		x = s.Box.X + s.Box.W - width
	}
	baseline := top + s.Box.H/2 + s.FontSize*0.35
	doc.Text(x, baseline, s.Text)
	return doc.Error()
}

// parseHexColor parses #rrggbb.
func parseHexColor(hex string) (int, int, int, error) {
	v := strings.TrimPrefix(hex, "#")
	if len(v) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff), nil
}
