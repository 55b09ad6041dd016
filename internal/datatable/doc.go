// Package datatable is the generic tabular data engine behind every list page
// of the storefront portals.
//
// A [Table] takes caller-owned records, a set of [Column] descriptors and a
// [Config], and derives the visible rows on every state change:
//
//	records -> filter -> sort -> paginate -> View
//
// Each table owns one sort state, one pagination state and one [Selection].
// Row [Action] callbacks receive the full record and their errors are
// returned to the caller unchanged.
//
// # Sorting
//
// Sorting is stable and compares the raw field value of the column (never the
// rendered text). Strings compare case-sensitively unless the column asks for
// natural ordering; numbers, decimals, dates and booleans compare by value.
// Missing values (nil, nil pointers, NaN) always sort last, whichever the
// direction.
//
// # Selection scope
//
// [Selection.SelectAll] is additive. A table exposes the two scopes callers
// can pick from explicitly: [Table.SelectVisible] adds the current page and
// [Table.SelectFiltered] adds every record passing the active filters.
// Navigating between pages never drops earlier selections.
//
// # Concurrency
//
// A Table is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package datatable
