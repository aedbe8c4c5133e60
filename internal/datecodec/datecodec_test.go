package datecodec

import (
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Parts
		wantOK bool
	}{
		{"date and time", "15/11/2025 14:30", Parts{Date: "2025-11-15", Time: "14:30"}, true},
		{"date only", "01/02/2026", Parts{Date: "2026-02-01"}, true},
		{"multiple spaces", "01/02/2026   08:05", Parts{Date: "2026-02-01", Time: "08:05"}, true},
		{"impossible date still decodes", "31/02/2026 10:00", Parts{Date: "2026-02-31", Time: "10:00"}, true},
		{"single digit day", "1/02/2026", Parts{}, false},
		{"iso date", "2026-02-01", Parts{}, false},
		{"trailing garbage", "01/02/2026 10:00x", Parts{}, false},
		{"time without space", "01/02/202610:00", Parts{}, false},
		{"partial time", "01/02/2026 10", Parts{}, false},
		{"empty", "", Parts{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Decode(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		date, time, want string
	}{
		{"2025-11-15", "14:30:00", "15/11/2025 14:30"},
		{"2025-11-15", "14:30", "15/11/2025 14:30"},
		{"2026-01-05", "", "05/01/2026 00:00"},
		{"2026-1-5", "10:00", ""},
	}

	for _, tt := range tests {
		if got := Encode(tt.date, tt.time); got != tt.want {
			t.Errorf("Encode(%q, %q) = %q, want %q", tt.date, tt.time, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"15/11/2025 14:30",
		"01/01/2000 00:00",
		"29/02/2024 23:59",
		"31/12/1999 12:01",
		"31/02/2026 10:00",
	}

	for _, s := range inputs {
		p, ok := Decode(s)
		if !ok {
			t.Fatalf("Decode(%q) failed", s)
		}
		if got := Encode(p.Date, p.Time); got != s {
			t.Errorf("Encode(Decode(%q)) = %q", s, got)
		}

		// Repeated cycles must be stable.
		again, _ := Decode(Encode(p.Date, p.Time))
		if again != p {
			t.Errorf("second decode of %q = %+v, want %+v", s, again, p)
		}
	}
}

func TestToWire(t *testing.T) {
	date, tm, ok := ToWire("15/11/2025 14:30")
	if !ok || date != "2025-11-15" || tm != "14:30:00" {
		t.Errorf("ToWire() = (%q, %q, %v), want (2025-11-15, 14:30:00, true)", date, tm, ok)
	}

	if _, _, ok := ToWire("15/11/2025"); ok {
		t.Error("ToWire() without a time should not produce wire values")
	}
	if _, _, ok := ToWire("tomorrow"); ok {
		t.Error("ToWire() of garbage should fail")
	}
}

func TestFromWire(t *testing.T) {
	date := "2025-11-15"
	tm := "14:30:00"

	if got := FromWire(&date, &tm); got != "15/11/2025 14:30" {
		t.Errorf("FromWire() = %q, want %q", got, "15/11/2025 14:30")
	}
	if got := FromWire(&date, nil); got != "15/11/2025 00:00" {
		t.Errorf("FromWire(no time) = %q, want %q", got, "15/11/2025 00:00")
	}
	if got := FromWire(nil, &tm); got != "" {
		t.Errorf("FromWire(no date) = %q, want empty", got)
	}
	empty := ""
	if got := FromWire(&empty, &tm); got != "" {
		t.Errorf("FromWire(empty date) = %q, want empty", got)
	}
}

func TestParse(t *testing.T) {
	loc := time.UTC

	got, ok := Parse("15/11/2025 14:30", loc)
	if !ok {
		t.Fatal("Parse() failed for valid input")
	}
	want := time.Date(2025, time.November, 15, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}

	got, ok = Parse("15/11/2025", loc)
	if !ok || got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("Parse(date only) = %v, %v; want midnight", got, ok)
	}

	if _, ok := Parse("31/02/2026 10:00", loc); ok {
		t.Error("Parse() should reject 31/02")
	}
	if _, ok := Parse("10/02/2026 24:00", loc); ok {
		t.Error("Parse() should reject hour 24")
	}
	if _, ok := Parse("", loc); ok {
		t.Error("Parse() should reject empty input")
	}
}

func TestFormat(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 8, 5, 0, 0, time.UTC)
	if got := Format(ts); got != "07/03/2026 08:05" {
		t.Errorf("Format() = %q, want %q", got, "07/03/2026 08:05")
	}
}

func TestValid(t *testing.T) {
	if !Valid("07/03/2026 08:05") {
		t.Error("Valid() = false for a complete value")
	}
	if Valid("07/03/2026") {
		t.Error("Valid() = true for a date without time")
	}
	if Valid("30/02/2026 08:05") {
		t.Error("Valid() = true for an impossible date")
	}
}
