package pagination

import "errors"

var (
	// ErrOpen indicates the PDF could not be read.
	ErrOpen = errors.New("pagination: cannot open pdf")

	// ErrPageRange indicates a page index outside the document.
	ErrPageRange = errors.New("pagination: page out of range")

	// ErrEdit indicates pdfcpu failed to edit the document.
	ErrEdit = errors.New("pagination: cannot edit pdf")
)
