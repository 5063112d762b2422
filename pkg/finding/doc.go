// Package finding provides the audit finding model shared by every stage of
// report compilation.
//
// A finding lives on disk as a Markdown document named after its identifier,
// for example "[H-01].md":
//
//	# [H-01] Reentrancy in withdraw
//
//	## Severity
//	...
//
//	## _STATUS_=Resolved
//
// The first line carries the identifier and the title. The optional status
// marker line records the resolution status and is stripped from the body
// before rendering.
package finding
