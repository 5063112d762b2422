package pagination

// Rect is an axis-aligned box in PDF user space: points, origin at the
// bottom-left corner of the page.
type Rect struct {
	X, Y, W, H float64
}

// Size is a page size in points.
type Size struct {
	W, H float64
}

// Align is the horizontal alignment of stamped text within its box.
type Align int

const (
	AlignCenter Align = iota
	AlignRight
)

// Stamp is text drawn onto a page when the document is saved.
type Stamp struct {
	Box      Rect
	Text     string
	FontSize float64
	// Color is #rrggbb.
	Color string
	Align Align
	// Cover paints the box white before drawing, hiding what was there.
	Cover bool
}

// Document is a paginated PDF that can be searched and edited. Page
// indexes are 0-based.
type Document interface {
	NumPages() int

	// Text returns the page's text with whitespace collapsed.
	Text(page int) (string, error)

	Size(page int) (Size, error)

	// Find returns the box of the first occurrence of needle on the page.
	Find(page int, needle string) (Rect, bool, error)

	// DeletePages removes the given pages. Indexes refer to the document
	// before the call.
	DeletePages(pages []int) error

	// AddStamp queues s for the page. Stamps are applied by Save.
	AddStamp(page int, s Stamp)

	Save() error
}
