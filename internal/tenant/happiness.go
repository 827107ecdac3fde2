package tenant

import (
	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

// RelationshipSource supplies the summed neighbour modifier for a tenant.
// The relationship network implements it; nil means no neighbours.
type RelationshipSource interface {
	HappinessModifierFor(tenantID int) int
}

// Factors is the breakdown of a tenant's happiness.
type Factors struct {
	Base         int `json:"base"`
	Rent         int `json:"rent"`
	Condition    int `json:"condition"`
	Noise        int `json:"noise"`
	Design       int `json:"design"`
	Hallway      int `json:"hallway"`
	Tenure       int `json:"tenure"`
	Relationship int `json:"relationship"`
}

// Total clamps the sum of all factors to 0–100.
func (f Factors) Total() int {
	return bounds.Percent(f.Base + f.Rent + f.Condition + f.Noise + f.Design + f.Hallway + f.Tenure + f.Relationship)
}

// CalculateHappiness scores how a tenant feels about their home. Pure.
func CalculateHappiness(t *Tenant, apt *building.Apartment, b *building.Building, rel RelationshipSource, cfg *config.Config) Factors {
	h := cfg.Happiness
	p := ProfileFor(cfg, t.Archetype)

	f := Factors{
		Base:      h.Base,
		Rent:      rentFactor(apt.RentPrice, p, h),
		Condition: conditionFactor(apt.Condition, p, h),
		Noise:     noiseFactor(apt.EffectiveNoise(), t.NoiseTolerance, p, h),
		Design:    designFactor(apt.Design, p, h),
		Hallway:   int(float64(b.HallwayCondition-h.HallwayBaseline) * h.HallwayMultiplier),
		Tenure:    min(t.MonthsResiding, h.TenureBonusMax),
	}
	if rel != nil {
		f.Relationship = bounds.Clamp(rel.HappinessModifierFor(t.ID), -h.RelationshipBonusCap, h.RelationshipBonusCap)
	}
	return f
}

func rentFactor(rent int, p Profile, h config.HappinessConfig) int {
	diff := p.IdealRentMax - rent
	if diff >= 0 {
		return min(int(float64(diff)*h.RentBonusMultiplier*p.RentSensitivity), h.RentBonusCap)
	}
	return max(int(float64(diff)*h.RentPenaltyMultiplier*p.RentSensitivity), h.RentPenaltyCap)
}

func conditionFactor(condition int, p Profile, h config.HappinessConfig) int {
	if condition >= p.MinCondition {
		excess := condition - p.MinCondition
		return min(int(float64(excess)*h.ConditionBonusMultiplier*p.ConditionSensitivity), h.ConditionBonusCap)
	}
	deficit := p.MinCondition - condition
	return -min(int(float64(deficit)*h.ConditionPenaltyMultiplier*p.ConditionSensitivity), h.ConditionPenaltyCap)
}

func noiseFactor(noise building.NoiseLevel, tolerance int, p Profile, h config.HappinessConfig) int {
	if noise == building.NoiseLow {
		if p.PrefersQuiet {
			return int(float64(h.QuietBonus) * p.NoiseSensitivity)
		}
		return 0
	}
	mod := int(float64(tolerance) * h.NoiseToleranceMultiplier)
	return int(float64(h.NoisePenaltyBase+mod) * p.NoiseSensitivity)
}

func designFactor(d building.DesignType, p Profile, h config.HappinessConfig) int {
	factor := h.DesignStyleModifiers[d.Key()]
	if p.Prefers(d) {
		factor += h.DesignPreferredBonus
	}
	if p.Hates(d) {
		factor += h.DesignHatedPenalty
	}
	return int(float64(factor) * p.DesignSensitivity)
}

// MeetsMinimum is the hard gate: a tenant never rents a unit that fails it.
func MeetsMinimum(t *Tenant, apt *building.Apartment, cfg *config.Config) bool {
	p := ProfileFor(cfg, t.Archetype)
	switch {
	case apt.Condition < p.MinCondition:
		return false
	case apt.RentPrice > t.RentTolerance:
		return false
	case p.Hates(apt.Design):
		return false
	case p.PrefersQuiet && apt.EffectiveNoise() == building.NoiseHigh && t.NoiseTolerance < cfg.Happiness.QuietGateTolerance:
		return false
	}
	return true
}
