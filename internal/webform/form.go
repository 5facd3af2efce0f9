// Package webform plays the contact form's part of the pipeline: it collects
// raw field values, applies the form's input filtering, and submits the
// finished record to the intake endpoint.
package webform

import (
	"strings"
	"time"

	"github.com/adlweddings/wedding-lead-platform/internal/leads"
)

// maxPhoneDigits caps the phone control's value, matching the form's input
// filter.
const maxPhoneDigits = 10

// FilterPhone strips every non-digit from raw and keeps the first ten digits.
func FilterPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == maxPhoneDigits {
			break
		}
	}
	return b.String()
}

// MinEventDate is the earliest date the event-date picker accepts: today.
func MinEventDate(now time.Time) string {
	return now.Format("2006-01-02")
}

// Values are the raw form control values read at submit time.
type Values struct {
	Name       string
	Phone      string
	EventDate  string
	GuestCount string
	Budget     string
	Venue      string
}

// Build assembles the lead record from the current control values, filtering
// the phone and stamping the submission timestamp.
func (v Values) Build(now time.Time) *leads.Record {
	return &leads.Record{
		Timestamp:  leads.FormatTimestamp(now),
		Name:       v.Name,
		Phone:      FilterPhone(v.Phone),
		EventDate:  v.EventDate,
		GuestCount: v.GuestCount,
		Budget:     v.Budget,
		Venue:      v.Venue,
	}
}
