package appointment

import (
	"testing"
	"time"
)

var ref = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestParseDateTimeNaturalLanguage(t *testing.T) {
	parsed, err := parseDateTime("tomorrow at 2pm", ref)
	if err != nil {
		t.Fatalf("parseDateTime: %v", err)
	}
	if !parsed.After(ref) {
		t.Errorf("expected a future instant, got %v", parsed)
	}
	if parsed.Day() != 11 || parsed.Hour() != 14 {
		t.Errorf("expected March 11 at 14:00, got %v", parsed)
	}
}

func TestParseDateTimeStrictFallback(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2025-06-01T10:30:00Z", time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)},
		{"2025-06-01 10:30", time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		parsed, err := parseDateTime(tc.input, ref)
		if err != nil {
			t.Errorf("parseDateTime(%q): %v", tc.input, err)
			continue
		}
		if !parsed.Equal(tc.want) {
			t.Errorf("parseDateTime(%q) = %v, want %v", tc.input, parsed, tc.want)
		}
	}
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	if _, err := parseDateTime("not a date at all honestly", ref); err == nil {
		t.Error("expected an error for unparsable input")
	}
}
