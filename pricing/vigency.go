package pricing

import "time"

// Vigency is the usability state of an offer on a given day.
type Vigency string

const (
	Vigent     Vigency = "vigent"
	Inactive   Vigency = "inactive"
	Expired    Vigency = "expired"
	NotStarted Vigency = "not_started"
)

// VigencyOn classifies the offer for today. A disabled offer is Inactive
// whatever its dates.
func (o Offer) VigencyOn(today time.Time) Vigency {
	if !o.active {
		return Inactive
	}
	day := DateOf(today)
	if o.endDate.Before(day) {
		return Expired
	}
	if o.startDate.After(day) {
		return NotStarted
	}
	return Vigent
}

// IsVigent reports whether the offer is enabled and today falls inside its
// inclusive window.
func (o Offer) IsVigent(today time.Time) bool {
	return o.VigencyOn(today) == Vigent
}

// VigencyReport lists the offers that cannot be used, by reason.
type VigencyReport struct {
	Expired    []Offer
	Inactive   []Offer
	NotStarted []Offer
}

// OK reports whether every checked offer was vigent.
func (r VigencyReport) OK() bool {
	return len(r.Expired) == 0 && len(r.Inactive) == 0 && len(r.NotStarted) == 0
}

// CheckVigency partitions offers into the ones that are no longer (or not
// yet) usable on today. Vigent offers appear in no bucket.
func CheckVigency(offers []Offer, today time.Time) VigencyReport {
	var report VigencyReport
	for _, o := range offers {
		switch o.VigencyOn(today) {
		case Inactive:
			report.Inactive = append(report.Inactive, o)
		case Expired:
			report.Expired = append(report.Expired, o)
		case NotStarted:
			report.NotStarted = append(report.NotStarted, o)
		}
	}
	return report
}
