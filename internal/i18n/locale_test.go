package i18n

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{"ar", Arabic},
		{"ar-EG", Arabic},
		{"en", English},
		{"en-US", English},
		{"fr", English},
		{"", English},
		{"!!!", English},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Locale
	}{
		{"empty header", "", English},
		{"arabic preferred", "ar-SA,ar;q=0.9,en;q=0.8", Arabic},
		{"english preferred", "en-GB,en;q=0.9,ar;q=0.1", English},
		{"unsupported only", "de-DE", English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.header); got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestLocaleDir(t *testing.T) {
	if got := Arabic.Dir(); got != "rtl" {
		t.Errorf("Arabic.Dir() = %q, want rtl", got)
	}
	if got := English.Dir(); got != "ltr" {
		t.Errorf("English.Dir() = %q, want ltr", got)
	}
}

func TestTextIn(t *testing.T) {
	txt := T("Discounts", "الخصومات")
	if got := txt.In(Arabic); got != "الخصومات" {
		t.Errorf("In(Arabic) = %q", got)
	}
	if got := txt.In(English); got != "Discounts" {
		t.Errorf("In(English) = %q", got)
	}

	// Missing Arabic falls back to English
	if got := T("Only English", "").In(Arabic); got != "Only English" {
		t.Errorf("fallback = %q, want English rendition", got)
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup(Arabic, "page.next"); got != "التالي" {
		t.Errorf("Lookup(Arabic, page.next) = %q", got)
	}
	if got := Lookup(English, "no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q, want key echoed", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(English, 1234567); got != "1,234,567" {
		t.Errorf("FormatNumber(English) = %q, want 1,234,567", got)
	}
}
