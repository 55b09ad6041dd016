package datatable

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// SortKeyer is implemented by values whose ordering differs from their
// display form, such as calendar dates wrapping a time.Time.
type SortKeyer interface {
	SortKey() any
}

// maxUnwrap bounds pointer and SortKey unwrapping.
const maxUnwrap = 8

// normalize unwraps pointers and SortKeyer values and reports whether the
// result is present. nil, nil pointers and NaN are missing.
func normalize(v any) (any, bool) {
	for range maxUnwrap {
		if v == nil {
			return nil, false
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return nil, false
			}
		case reflect.Float32, reflect.Float64:
			if math.IsNaN(rv.Float()) {
				return nil, false
			}
		}

		if sk, ok := v.(SortKeyer); ok {
			v = sk.SortKey()
			continue
		}
		if rv.Kind() == reflect.Pointer {
			v = rv.Elem().Interface()
			continue
		}
		return v, true
	}
	return v, v != nil
}

// compareValues orders two present values ascending. Values of unrelated
// types fall back to comparing their formatted text.
func compareValues(a, b any, natural bool) int {
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)

	switch {
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return compareStrings(av.String(), bv.String(), natural)
	case av.Kind() == reflect.Bool && bv.Kind() == reflect.Bool:
		return compareBools(av.Bool(), bv.Bool())
	}

	if c, ok := compareNumbers(av, bv); ok {
		return c
	}

	return compareStrings(fmt.Sprint(a), fmt.Sprint(b), natural)
}

func compareStrings(a, b string, natural bool) int {
	if !natural {
		return strings.Compare(a, b)
	}
	switch {
	case sortorder.NaturalLess(a, b):
		return -1
	case sortorder.NaturalLess(b, a):
		return 1
	default:
		return 0
	}
}

// compareBools orders false before true.
func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareNumbers(a, b reflect.Value) (int, bool) {
	switch {
	case isInt(a) && isInt(b):
		return cmp.Compare(a.Int(), b.Int()), true
	case isUint(a) && isUint(b):
		return cmp.Compare(a.Uint(), b.Uint()), true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, false
	}
	return cmp.Compare(af, bf), true
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toFloat(v reflect.Value) (float64, bool) {
	switch {
	case isInt(v):
		return float64(v.Int()), true
	case isUint(v):
		return float64(v.Uint()), true
	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// compareKeys orders two raw column values in direction dir. Missing values
// sort after present ones in both directions.
func compareKeys(a, b any, dir Direction, natural bool) int {
	av, aok := normalize(a)
	bv, bok := normalize(b)

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	c := compareValues(av, bv, natural)
	if dir == Descending {
		return -c
	}
	return c
}

// FormatValue coerces a raw column value to display text:
//
//   - nil and nil pointers render empty
//   - time.Time renders as 2006-01-02 (zero time renders empty)
//   - bool renders as the localized yes/no
//   - decimal.Decimal renders with two places
//   - i18n.Text renders in locale l
//   - fmt.Stringer renders via String
func FormatValue(v any, l i18n.Locale) string {
	for range maxUnwrap {
		if v == nil {
			return ""
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer {
			break
		}
		if rv.IsNil() {
			return ""
		}
		v = rv.Elem().Interface()
	}

	switch x := v.(type) {
	case string:
		return x
	case i18n.Text:
		return x.In(l)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	case bool:
		if x {
			return i18n.Lookup(l, "value.yes")
		}
		return i18n.Lookup(l, "value.no")
	case decimal.Decimal:
		return x.StringFixed(2)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return ""
		}
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
