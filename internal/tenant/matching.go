package tenant

import (
	"fmt"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

// MatchResult is how attractive an apartment is to an applicant.
type MatchResult struct {
	Score        int      `json:"score"` // 0–100
	MeetsMinimum bool     `json:"meets_minimum"`
	Reasons      []string `json:"reasons"`
}

// CalculateMatchScore rates apt for t. A unit failing the hard gate scores 0
// and is not scored further.
func CalculateMatchScore(t *Tenant, apt *building.Apartment, cfg *config.Config) MatchResult {
	if !MeetsMinimum(t, apt, cfg) {
		return MatchResult{Score: 0, MeetsMinimum: false, Reasons: []string{"Does not meet requirements"}}
	}

	m := cfg.Matching
	p := ProfileFor(cfg, t.Archetype)
	score := m.BaseScore
	var reasons []string

	gap := p.IdealRentMax - apt.RentPrice
	switch {
	case gap > m.RentGreatThreshold:
		score += m.RentGreatBonus
		reasons = append(reasons, "Great price")
	case gap > 0:
		score += m.RentFairBonus
		reasons = append(reasons, "Fair price")
	case gap > m.RentSlightBand:
		score += m.RentSlightPenalty
		reasons = append(reasons, "Slightly expensive")
	default:
		score += m.RentUnaffordablePenalty
		reasons = append(reasons, "Over budget")
	}

	switch {
	case apt.Condition >= m.ConditionExcellentThreshold:
		score += int(float64(m.ConditionExcellentBonus) * p.ConditionSensitivity)
		reasons = append(reasons, "Excellent condition")
	case apt.Condition >= m.ConditionGoodThreshold:
		score += int(float64(m.ConditionGoodBonus) * p.ConditionSensitivity)
		reasons = append(reasons, "Good condition")
	case apt.Condition < m.ConditionPoorThreshold:
		score -= int(float64(m.ConditionPoorPenalty) * p.ConditionSensitivity)
		reasons = append(reasons, "Poor condition")
	}

	if apt.EffectiveNoise() == building.NoiseHigh {
		score -= int(float64(m.NoiseLoudPenalty) * p.NoiseSensitivity)
		reasons = append(reasons, "Too noisy")
	} else if p.PrefersQuiet {
		score += int(float64(m.NoiseQuietBonus) * p.NoiseSensitivity)
		reasons = append(reasons, "Nice and quiet")
	}

	if p.Prefers(apt.Design) {
		score += int(float64(m.DesignPreferredBonus) * p.DesignSensitivity)
		reasons = append(reasons, fmt.Sprintf("Loves the %s style", apt.Design))
	}

	if apt.Size == building.SizeMedium {
		score += m.SizeMediumBonus
		reasons = append(reasons, "Good space")
	}

	return MatchResult{Score: bounds.Percent(score), MeetsMinimum: true, Reasons: reasons}
}

// FindBestMatch picks the highest-scoring available apartment that passes the
// gate. Ties go to the first one in slice order, which is lowest id for a
// building's apartment list.
func FindBestMatch(t *Tenant, apartments []*building.Apartment, cfg *config.Config) (*building.Apartment, MatchResult, bool) {
	var (
		best   *building.Apartment
		result MatchResult
	)
	for _, apt := range apartments {
		if !apt.IsAvailable() {
			continue
		}
		r := CalculateMatchScore(t, apt, cfg)
		if !r.MeetsMinimum {
			continue
		}
		if best == nil || r.Score > result.Score {
			best, result = apt, r
		}
	}
	return best, result, best != nil
}
