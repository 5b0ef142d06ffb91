package etl

import (
	"testing"
	"time"
)

func TestDateOfDiscardsClock(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 23, 59, 58, 999999999, time.FixedZone("X", -5*3600))
	d := DateOf(ts)

	if d.Year != 2024 || d.Month != time.March || d.Day != 15 {
		t.Errorf("DateOf = %v, want 2024-03-15", d)
	}
	if d.String() != "2024-03-15" {
		t.Errorf("String = %q", d.String())
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-01-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d != (Date{Year: 2023, Month: time.January, Day: 1}) {
		t.Errorf("ParseDate = %v", d)
	}

	if _, err := ParseDate("01/01/2023"); err == nil {
		t.Error("Expected error for malformed date, got nil")
	}
}

func TestDateNextCrossesMonthAndYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-02-28", "2024-02-29"}, // leap year
		{"2023-02-28", "2023-03-01"},
		{"2023-12-31", "2024-01-01"},
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if got := d.Next().String(); got != tt.want {
			t.Errorf("Next(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayTruncatesSeconds(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 14, 37, 59, 123456789, time.UTC)
	tod := TimeOfDayOf(ts)

	if tod != (TimeOfDay{Hour: 14, Minute: 37}) {
		t.Errorf("TimeOfDayOf = %v, want 14:37", tod)
	}
	if tod.String() != "14:37" {
		t.Errorf("String = %q", tod.String())
	}

	// Two timestamps differing only below the minute normalize equal,
	// so a seconds mismatch can never produce a false non-match.
	other := TimeOfDayOf(time.Date(2020, time.January, 1, 14, 37, 1, 0, time.UTC))
	if tod != other {
		t.Error("Normalized times differ despite equal hour and minute")
	}
}

func TestCombine(t *testing.T) {
	d := Date{Year: 2024, Month: time.June, Day: 2}
	tod := TimeOfDay{Hour: 9, Minute: 5}

	got := Combine(d, tod)
	want := time.Date(2024, time.June, 2, 9, 5, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}
