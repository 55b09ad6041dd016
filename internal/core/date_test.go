package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-03-15", "2024-03-15", false},
		{" 2024-03-15 ", "2024-03-15", false},
		{"2024-03-15T23:30:00+02:00", "2024-03-15", false},
		{"15/03/2024", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	type row struct {
		Due  Date  `json:"due"`
		Sent *Date `json:"sent"`
	}

	var r row
	if err := json.Unmarshal([]byte(`{"due":"2024-01-31","sent":null}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !r.Due.Equal(NewDate(2024, time.January, 31).Time) {
		t.Errorf("expected 2024-01-31, got %v", r.Due)
	}
	if r.Sent != nil {
		t.Errorf("expected nil sent, got %v", r.Sent)
	}

	out, err := json.Marshal(row{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"due":null,"sent":null}` {
		t.Errorf("unexpected encoding %s", out)
	}

	if err := json.Unmarshal([]byte(`{"due":"soon"}`), &r); err == nil {
		t.Error("expected error for invalid date")
	}
	if err := json.Unmarshal([]byte(`{"due":""}`), &r); err != nil || !r.Due.IsZero() {
		t.Errorf("expected empty string to decode as zero date, got %v, %v", r.Due, err)
	}
}

func TestDate_SortKey(t *testing.T) {
	a, b := NewDate(2024, time.May, 1), NewDate(2024, time.April, 30)
	if !b.SortKey().(time.Time).Before(a.SortKey().(time.Time)) {
		t.Error("expected April 30 to sort before May 1")
	}
}
