package pricing

import "time"

// DateLayout is the wire format of offer window dates.
const DateLayout = "2006-01-02"

// DateOf drops the time of day of t, keeping the calendar date as seen in
// t's own location. The result is midnight UTC so dates compare directly.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}
