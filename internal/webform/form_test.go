package webform

import (
	"testing"
	"time"
)

func TestFilterPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"clean ten digits", "9876543210", "9876543210"},
		{"strips non-digits", "98-76 54(32)10", "9876543210"},
		{"caps at ten digits", "98765432109999", "9876543210"},
		{"non-digits then overflow", "+91 98765 43210", "9198765432"},
		{"letters dropped", "call me 98", "98"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterPhone(tt.raw); got != tt.want {
				t.Errorf("FilterPhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMinEventDate(t *testing.T) {
	now := time.Date(2024, 12, 25, 23, 59, 0, 0, time.UTC)
	if got := MinEventDate(now); got != "2024-12-25" {
		t.Fatalf("expected 2024-12-25, got %s", got)
	}
}

func TestValuesBuild(t *testing.T) {
	now := time.Date(2024, 12, 25, 13, 0, 5, 0, time.UTC)

	rec := Values{
		Name:       "Asha Rao",
		Phone:      "+91 98765 43210 ext 2",
		EventDate:  "2025-02-14",
		GuestCount: "100-300",
		Budget:     "₹5L - ₹10L",
		Venue:      "Kohima",
	}.Build(now)

	if rec.Name != "Asha Rao" {
		t.Errorf("unexpected name %q", rec.Name)
	}
	if rec.Phone != "9198765432" {
		t.Errorf("expected filtered phone, got %q", rec.Phone)
	}
	if rec.Timestamp == "" {
		t.Error("expected timestamp stamped at build time")
	}
	if rec.Budget != "₹5L - ₹10L" {
		t.Errorf("budget must pass through untouched, got %q", rec.Budget)
	}
}
