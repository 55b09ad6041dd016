package datatable

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// FieldType tells the engine which filter operators a column supports and
// how the renderer should align and edit its values.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
)

// String returns the lowercase name of the field type.
func (ft FieldType) String() string {
	switch ft {
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldBool:
		return "bool"
	default:
		return "text"
	}
}

// Column declares how one field of a record is labeled, sorted, filtered and
// rendered. Columns are immutable once handed to a Table.
type Column[R any] struct {
	Key      string    // Field identifier, unique per table
	Header   i18n.Text // Display label
	Sortable bool
	Natural  bool      // Natural string ordering ("item2" < "item10")
	Type     FieldType // Filter operators and alignment

	// Value returns the raw value used for sorting and filtering. When nil
	// the struct field matching Key is used: first by `table` tag, then by
	// `json` tag, then by case-insensitive field name.
	Value func(R) any

	// Render returns the displayed text. When nil the raw value is coerced
	// to text.
	Render func(R, i18n.Locale) string

	MinWidth string // Layout hint for the renderer, e.g. "8rem"
}

// resolvedColumn is a validated column with its value accessor bound.
type resolvedColumn[R any] struct {
	Column[R]
	value func(R) any // nil when the column is render-only
}

// cell renders the column for record r in locale l.
func (c resolvedColumn[R]) cell(r R, l i18n.Locale) string {
	if c.Render != nil {
		return c.Render(r, l)
	}
	if c.value == nil {
		return ""
	}
	return FormatValue(c.value(r), l)
}

// resolveColumns validates descriptors and binds value accessors.
func resolveColumns[R any](columns []Column[R]) ([]resolvedColumn[R], map[string]int, error) {
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("%w: table needs at least one column", ErrInvalidColumn)
	}

	resolved := make([]resolvedColumn[R], len(columns))
	byKey := make(map[string]int, len(columns))

	for i, col := range columns {
		if strings.TrimSpace(col.Key) == "" {
			return nil, nil, fmt.Errorf("%w: column %d has no key", ErrInvalidColumn, i)
		}
		if _, dup := byKey[col.Key]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidColumn, col.Key)
		}

		value := col.Value
		if value == nil {
			value, _ = fieldAccessor[R](col.Key)
		}

		if col.Sortable && value == nil {
			return nil, nil, fmt.Errorf("%w: sortable column %q has no value accessor and no matching field", ErrInvalidColumn, col.Key)
		}
		if value == nil && col.Render == nil {
			return nil, nil, fmt.Errorf("%w: column %q has neither a render function nor a matching field", ErrInvalidColumn, col.Key)
		}

		resolved[i] = resolvedColumn[R]{Column: col, value: value}
		byKey[col.Key] = i
	}

	return resolved, byKey, nil
}

// fieldAccessor returns a function reading the struct field of R that
// matches key. R may be a struct or a pointer to a struct.
func fieldAccessor[R any](key string) (func(R) any, bool) {
	t := reflect.TypeFor[R]()
	isPtr := false
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		isPtr = true
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}

	index, ok := findField(t, key)
	if !ok {
		return nil, false
	}

	return func(r R) any {
		v := reflect.ValueOf(r)
		if isPtr {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		f, err := v.FieldByIndexErr(index)
		if err != nil {
			return nil
		}
		return f.Interface()
	}, true
}

// findField looks up an exported field by table tag, json tag, then name.
func findField(t reflect.Type, key string) ([]int, bool) {
	fields := reflect.VisibleFields(t)

	for _, f := range fields {
		if f.IsExported() && tagName(f.Tag.Get("table")) == key {
			return f.Index, true
		}
	}
	for _, f := range fields {
		if f.IsExported() && tagName(f.Tag.Get("json")) == key {
			return f.Index, true
		}
	}
	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && strings.EqualFold(f.Name, key) {
			return f.Index, true
		}
	}
	return nil, false
}

// tagName returns the name part of a struct tag value ("name,omitempty").
func tagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
