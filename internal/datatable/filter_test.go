package datatable

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storefront/internal/i18n"
)

func TestValidOperator(t *testing.T) {
	tests := []struct {
		op   Operator
		ft   FieldType
		want bool
	}{
		{OpContains, FieldText, true},
		{OpGreater, FieldText, false},
		{OpGreater, FieldNumeric, true},
		{OpContains, FieldNumeric, false},
		{OpGreaterEq, FieldDate, true},
		{OpGreater, FieldDate, false},
		{OpEquals, FieldBool, true},
		{OpIn, FieldBool, false},
		{OpIn, FieldEnum, true},
		{OpStartsWith, FieldEnum, false},
	}

	for _, tt := range tests {
		if got := ValidOperator(tt.op, tt.ft); got != tt.want {
			t.Errorf("ValidOperator(%s, %s) = %v, want %v", tt.op, tt.ft, got, tt.want)
		}
		// Operators must agree with ValidOperator.
		listed := false
		for _, op := range Operators(tt.ft) {
			if op == tt.op {
				listed = true
			}
		}
		if listed != tt.want {
			t.Errorf("Operators(%s) lists %s = %v, want %v", tt.ft, tt.op, listed, tt.want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	f, ok := ParseFilter("status", "in:pending,shipped")
	if !ok {
		t.Fatal("expected filter to parse")
	}
	if f != (Filter{Key: "status", Op: OpIn, Value: "pending,shipped"}) {
		t.Errorf("unexpected filter %+v", f)
	}
	if f.String() != "in:pending,shipped" {
		t.Errorf("unexpected String() %q", f.String())
	}

	for _, bad := range []string{"", "eq", "eq:"} {
		if _, ok := ParseFilter("status", bad); ok {
			t.Errorf("ParseFilter(%q) should fail", bad)
		}
	}
}

func TestMatchFilter_Enum(t *testing.T) {
	f := Filter{Key: "status", Op: OpIn, Value: "Pending, shipped"}
	if !matchFilter("shipped", f, FieldEnum, i18n.English) {
		t.Error("expected shipped to match")
	}
	if matchFilter("returned", f, FieldEnum, i18n.English) {
		t.Error("expected returned not to match")
	}
	if matchFilter(nil, f, FieldEnum, i18n.English) {
		t.Error("missing value must never match")
	}
}

func TestMatchFilter_LocalizedText(t *testing.T) {
	v := i18n.T("Shipping", "الشحن")
	f := Filter{Key: "category", Op: OpContains, Value: "الشحن"}

	if !matchFilter(v, f, FieldText, i18n.Arabic) {
		t.Error("expected Arabic rendition to match in Arabic locale")
	}
	if matchFilter(v, f, FieldText, i18n.English) {
		t.Error("expected no match against the English rendition")
	}
}

func TestFormatValue(t *testing.T) {
	d := decimal.RequireFromString("7.5")
	var nilTime *time.Time

	tests := []struct {
		name string
		in   any
		l    i18n.Locale
		want string
	}{
		{"nil", nil, i18n.English, ""},
		{"nil pointer", nilTime, i18n.English, ""},
		{"decimal", d, i18n.English, "7.50"},
		{"decimal pointer", &d, i18n.English, "7.50"},
		{"bool arabic", true, i18n.Arabic, "نعم"},
		{"bool english", false, i18n.English, "No"},
		{"time", time.Date(2025, time.May, 9, 13, 0, 0, 0, time.UTC), i18n.English, "2025-05-09"},
		{"zero time", time.Time{}, i18n.English, ""},
		{"float", 2.5, i18n.English, "2.5"},
		{"int", 42, i18n.English, "42"},
		{"text", i18n.T("Yes", "نعم"), i18n.Arabic, "نعم"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.in, tt.l); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
