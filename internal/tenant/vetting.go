package tenant

// CreditReport reveals an applicant's payment reliability.
type CreditReport struct {
	ReliabilityScore int    `json:"reliability_score"`
	Recommendation   string `json:"recommendation"`
}

// BackgroundReport reveals an applicant's neighbour behaviour.
type BackgroundReport struct {
	BehaviorScore int    `json:"behavior_score"`
	HistoryNotes  string `json:"history_notes"`
}

// CreditCheck reveals reliability. False if it was already revealed; the
// caller charges for the check.
func (a *Application) CreditCheck() (CreditReport, bool) {
	if a.RevealedReliability {
		return CreditReport{}, false
	}
	a.RevealedReliability = true

	score := a.Tenant.RentReliability
	var rec string
	switch {
	case score >= 90:
		rec = "Excellent credit history. Highly recommended."
	case score >= 75:
		rec = "Good credit standing. No major concerns."
	case score >= 60:
		rec = "Average credit. Has some missed payments."
	case score >= 40:
		rec = "Below average. High risk of late rent."
	default:
		rec = "Poor credit history. Default risk high."
	}
	return CreditReport{ReliabilityScore: score, Recommendation: rec}, true
}

// BackgroundCheck reveals behaviour. False if it was already revealed.
func (a *Application) BackgroundCheck() (BackgroundReport, bool) {
	if a.RevealedBehavior {
		return BackgroundReport{}, false
	}
	a.RevealedBehavior = true

	score := a.Tenant.BehaviorScore
	var notes string
	switch {
	case score >= 90:
		notes = "Quiet, respectful, keeps unit in perfect condition."
	case score >= 75:
		notes = "Generally good tenant. No noise complaints."
	case score >= 60:
		notes = "Occasional minor complaints but pays for damages."
	case score >= 40:
		notes = "History of noise complaints and minor damage."
	default:
		notes = "Evicted from previous apartment for disturbance."
	}
	return BackgroundReport{BehaviorScore: score, HistoryNotes: notes}, true
}
