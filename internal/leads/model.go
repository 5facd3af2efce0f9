package leads

import (
	"time"
)

// Sheet column order. Both Append and Resort hard-code these positions, so
// the order is contractual.
const (
	ColTimestamp = iota
	ColName
	ColPhone
	ColEventDate
	ColGuestCount
	ColBudget
	ColVenue

	ColumnCount = 7
)

// Header is the fixed first row of the lead sheet.
var Header = [ColumnCount]string{
	"Timestamp", "Name", "Phone", "Event Date", "Guest Count", "Budget", "Venue Location",
}

// Record is one wedding inquiry as submitted by the contact form. Every field
// is a display string; numeric and date values are never parsed server-side.
type Record struct {
	Timestamp  string `json:"timestamp"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	EventDate  string `json:"eventDate"`
	GuestCount string `json:"guestCount"`
	Budget     string `json:"budget"`
	Venue      string `json:"venue"`
}

// timestampLayout matches the en-IN locale string the web form produces,
// e.g. "25/12/2024, 6:30:05 pm".
const timestampLayout = "02/01/2006, 3:04:05 pm"

var indiaTZ = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// FormatTimestamp renders t the way the original form does: en-IN locale
// format in the Asia/Kolkata time zone.
func FormatTimestamp(t time.Time) string {
	return t.In(indiaTZ).Format(timestampLayout)
}

// Normalize fills the server-side timestamp fallback. Absent JSON fields
// already decode to "", which is exactly the persisted representation the
// sheet expects; no field is ever null.
func (r *Record) Normalize(now func() time.Time) {
	if r.Timestamp == "" {
		r.Timestamp = FormatTimestamp(now())
	}
}

// Cells returns the record in fixed column order.
func (r *Record) Cells() [ColumnCount]string {
	return [ColumnCount]string{
		r.Timestamp,
		r.Name,
		r.Phone,
		r.EventDate,
		r.GuestCount,
		r.Budget,
		r.Venue,
	}
}
