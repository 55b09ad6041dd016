package datatable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Operator is a comparison operator for column filters.
type Operator string

const (
	OpContains   Operator = "contains"
	OpEquals     Operator = "eq"
	OpStartsWith Operator = "starts"
	OpEndsWith   Operator = "ends"
	OpGreaterEq  Operator = "gte"
	OpLessEq     Operator = "lte"
	OpGreater    Operator = "gt"
	OpLess       Operator = "lt"
	OpIn         Operator = "in"
)

// Filter restricts a table to records whose column value satisfies Op.
type Filter struct {
	Key   string   `json:"key"`
	Op    Operator `json:"op"`
	Value string   `json:"value"`
}

// String returns the "op:value" form used in query strings.
func (f Filter) String() string {
	return string(f.Op) + ":" + f.Value
}

// ParseFilter parses "op:value" for column key.
func ParseFilter(key, s string) (Filter, bool) {
	op, val, ok := strings.Cut(s, ":")
	if !ok || val == "" {
		return Filter{}, false
	}
	return Filter{Key: key, Op: Operator(op), Value: val}, true
}

// ValidOperator reports whether op applies to columns of type ft.
func ValidOperator(op Operator, ft FieldType) bool {
	switch ft {
	case FieldText:
		switch op {
		case OpContains, OpEquals, OpStartsWith, OpEndsWith:
			return true
		}
	case FieldNumeric:
		switch op {
		case OpEquals, OpGreaterEq, OpLessEq, OpGreater, OpLess:
			return true
		}
	case FieldDate:
		switch op {
		case OpEquals, OpGreaterEq, OpLessEq:
			return true
		}
	case FieldBool:
		return op == OpEquals
	case FieldEnum:
		switch op {
		case OpEquals, OpIn:
			return true
		}
	}
	return false
}

// Operators lists the operators a column of type ft accepts, in display order.
func Operators(ft FieldType) []Operator {
	switch ft {
	case FieldNumeric:
		return []Operator{OpEquals, OpGreaterEq, OpLessEq, OpGreater, OpLess}
	case FieldDate:
		return []Operator{OpEquals, OpGreaterEq, OpLessEq}
	case FieldBool:
		return []Operator{OpEquals}
	case FieldEnum:
		return []Operator{OpEquals, OpIn}
	default:
		return []Operator{OpContains, OpEquals, OpStartsWith, OpEndsWith}
	}
}

// validateFilter checks f against the table's columns.
func validateFilter[R any](f Filter, columns []resolvedColumn[R], byKey map[string]int) error {
	i, ok := byKey[f.Key]
	if !ok {
		return fmt.Errorf("%w: unknown column %q", ErrInvalidFilter, f.Key)
	}
	col := columns[i]
	if col.value == nil {
		return fmt.Errorf("%w: column %q has no filterable value", ErrInvalidFilter, f.Key)
	}
	if !ValidOperator(f.Op, col.Type) {
		return fmt.Errorf("%w: operator %q not supported for %s column %q", ErrInvalidFilter, f.Op, col.Type, f.Key)
	}
	if strings.TrimSpace(f.Value) == "" {
		return fmt.Errorf("%w: empty value for column %q", ErrInvalidFilter, f.Key)
	}
	return nil
}

// matchFilter reports whether raw satisfies f for a column of type ft.
// Missing values never match.
func matchFilter(raw any, f Filter, ft FieldType, l i18n.Locale) bool {
	v, ok := normalize(raw)
	if !ok {
		return false
	}

	switch ft {
	case FieldNumeric:
		return matchNumeric(v, f)
	case FieldDate:
		return matchDate(v, f)
	case FieldBool:
		return matchBool(v, f)
	default:
		return matchText(FormatValue(raw, l), f)
	}
}

func matchText(s string, f Filter) bool {
	s = strings.ToLower(s)
	want := strings.ToLower(strings.TrimSpace(f.Value))

	switch f.Op {
	case OpContains:
		return strings.Contains(s, want)
	case OpEquals:
		return s == want
	case OpStartsWith:
		return strings.HasPrefix(s, want)
	case OpEndsWith:
		return strings.HasSuffix(s, want)
	case OpIn:
		for _, part := range strings.Split(want, ",") {
			if s == strings.TrimSpace(part) {
				return true
			}
		}
	}
	return false
}

func matchNumeric(v any, f Filter) bool {
	want, err := decimal.NewFromString(strings.TrimSpace(f.Value))
	if err != nil {
		return false
	}
	got, ok := toDecimal(v)
	if !ok {
		return false
	}
	return compareOp(got.Cmp(want), f.Op)
}

func matchDate(v any, f Filter) bool {
	t, ok := v.(time.Time)
	if !ok {
		return false
	}
	want, err := time.Parse("2006-01-02", strings.TrimSpace(f.Value))
	if err != nil {
		return false
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return compareOp(day.Compare(want), f.Op)
}

func matchBool(v any, f Filter) bool {
	b, ok := v.(bool)
	if !ok {
		return false
	}
	want, ok := parseBool(f.Value)
	return ok && b == want
}

func compareOp(c int, op Operator) bool {
	switch op {
	case OpEquals:
		return c == 0
	case OpGreaterEq:
		return c >= 0
	case OpLessEq:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpLess:
		return c < 0
	}
	return false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "نعم":
		return true, true
	case "no", "n", "لا":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return b, err == nil
}
