package timezone_test

import (
	"testing"
	"time"

	"dwell/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("expected converted time to have a location")
	}

	if !appTime.Equal(utcTime) {
		t.Error("expected conversion to preserve the instant")
	}
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2026-01-15")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if parsed.Year() != 2026 || parsed.Month() != time.January || parsed.Day() != 15 {
		t.Errorf("unexpected parsed date %v", parsed)
	}

	if _, err := timezone.Parse("2006-01-02", "not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}

	formatted := timezone.Format(parsed, "2006-01-02")
	if formatted != "2026-01-15" {
		t.Errorf("expected 2026-01-15, got %s", formatted)
	}
}
