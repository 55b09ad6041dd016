package datatable

import (
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection parses "asc" or "desc" (case-insensitive). Anything else is
// ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortState is the active sort. A zero Key means records keep their
// original order.
type SortState struct {
	Key string    `json:"key,omitempty"`
	Dir Direction `json:"dir,omitempty"`
}

// IsZero reports whether no sort is active.
func (s SortState) IsZero() bool {
	return s.Key == ""
}

// SortRecords returns a stably sorted copy of records ordered by column col.
// The input slice is never modified. When the column has no value accessor
// the copy keeps the input order.
func SortRecords[R any](records []R, col Column[R], dir Direction) []R {
	value := col.Value
	if value == nil {
		value, _ = fieldAccessor[R](col.Key)
	}
	return sortBy(records, value, dir, col.Natural)
}

// keyed pairs a record with its precomputed sort key.
type keyed[R any] struct {
	rec R
	key any
}

func sortBy[R any](records []R, value func(R) any, dir Direction, natural bool) []R {
	if value == nil {
		return slices.Clone(records)
	}

	rows := make([]keyed[R], len(records))
	for i, r := range records {
		rows[i] = keyed[R]{rec: r, key: value(r)}
	}

	slices.SortStableFunc(rows, func(a, b keyed[R]) int {
		return compareKeys(a.key, b.key, dir, natural)
	})

	out := make([]R, len(rows))
	for i, row := range rows {
		out[i] = row.rec
	}
	return out
}
