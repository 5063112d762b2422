// Package pagination post-processes the rasterized report: it removes blank
// pages, stamps page numbers in the footer, finds the page each section
// heading landed on and writes those page numbers over the legend's
// placeholders.
//
// The algorithm works on the Document interface. PDFDocument implements it
// on top of github.com/ledongthuc/pdf for positioned text and pdfcpu for
// page removal and stamping; tests use an in-memory document.
package pagination
