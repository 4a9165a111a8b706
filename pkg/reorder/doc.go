// Package reorder moves Markdown list and task items, together with their
// nested descendants, one position up or down within a document.
//
// The list structure is never stored. Every request classifies the lines of
// a text snapshot, infers parents, sections and blocks from indentation and
// heading markers, and answers with at most one two-edit transaction.
// Boundary conditions are ordinary results, not errors: a Result reports
// whether the request was handled and, if not moved, why.
package reorder
