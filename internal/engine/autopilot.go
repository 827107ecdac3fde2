package engine

import (
	"maps"
	"slices"

	"github.com/talgya/tenement/internal/building"
)

// autopilotReserve is cash the autopilot never spends.
const autopilotReserve = 1000

// repairTarget is the condition the autopilot restores worn units to.
const repairTarget = 70

// Autopilot proposes this month's intents for an absentee landlord: repair
// whatever has slipped below the poor threshold while cash allows, then take
// the best applicant for each apartment. Rule based and deterministic; it
// never ends the turn itself.
func (s *Simulation) Autopilot() []Intent {
	var out []Intent
	budget := s.Funds.Balance - autopilotReserve
	ec := s.cfg.Economy
	poor := s.cfg.Thresholds.PoorCondition

	afford := func(b *building.Building, a building.UpgradeAction) bool {
		cost, ok := a.Cost(b, ec)
		if !ok || cost > budget {
			return false
		}
		budget -= cost
		return true
	}

	for _, b := range s.City.Buildings {
		if b.HallwayCondition < poor {
			amount := repairTarget - b.HallwayCondition
			if afford(b, building.RepairHallway(amount)) {
				out = append(out, RepairHallway(b.ID, amount))
			}
		}
		for _, apt := range b.Apartments {
			if apt.IsCondo || apt.Condition >= poor {
				continue
			}
			amount := repairTarget - apt.Condition
			if afford(b, building.RepairApartment(apt.ID, amount)) {
				out = append(out, RepairApartment(b.ID, apt.ID, amount))
			}
		}
	}

	// One acceptance per apartment, the highest score winning and the
	// earlier application winning ties.
	type unit struct{ building, apartment int }
	best := make(map[unit]int)
	for i, app := range s.Applications {
		if app.Match.Score < s.cfg.Matching.BaseScore {
			continue
		}
		k := unit{app.BuildingID, app.ApartmentID}
		if j, ok := best[k]; ok && s.Applications[j].Match.Score >= app.Match.Score {
			continue
		}
		best[k] = i
	}
	// Highest index first so each acceptance leaves the others in place.
	picks := slices.Sorted(maps.Values(best))
	slices.Reverse(picks)
	for _, i := range picks {
		out = append(out, AcceptApplication(i))
	}
	return out
}
