// Package report assembles the report HTML from the template, the
// configuration and the findings.
//
// The package is organized by logical concern across multiple files:
//
// # Findings Section (sections.go)
//
// BuildFindings renders the per-severity finding sections and the ordered
// list of section headings that the pagination pass later searches for in
// the rendered PDF.
//
// # Assembly (assembler.go, stages.go)
//
// Assembler runs an explicit, ordered list of named Stages over a
// BuildContext. The legend stage must run before the tables stage: the
// tables link findings by the section indexes the legend assigns, and the
// tables stage fails with ErrStageOrder when they are missing.
package report
