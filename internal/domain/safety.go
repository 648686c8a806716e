package domain

// SafetyStatusGood is the only report status treated as safe.
const SafetyStatusGood = "GOOD"

// SafetyReport is the verdict returned by the safety-report feed for a
// pair address. The zero value (empty status) is deliberately unsafe:
// absence of a clean report fails closed.
type SafetyReport struct {
	Status string `json:"status"` // "GOOD" or anything else
}

// Safe reports whether the pair passed the safety check.
func (r SafetyReport) Safe() bool {
	return r.Status == SafetyStatusGood
}
