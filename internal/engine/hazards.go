package engine

import (
	"fmt"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/economy"
	"github.com/talgya/tenement/internal/entropy"
)

// applyStaff runs the monthly effect of hired staff. The janitor touches up
// anything between 50 and 90; security and the manager lift moods.
func (s *Simulation) applyStaff(b *building.Building) {
	if b.Staff.Janitor {
		for _, a := range b.Apartments {
			if a.Condition > 50 && a.Condition < 90 {
				a.Repair(1)
			}
		}
		if b.HallwayCondition > 50 && b.HallwayCondition < 90 {
			b.RepairHallway(1)
		}
	}

	boost := 0
	if b.Staff.Security {
		boost += 2
	}
	if b.Staff.Manager {
		boost++
	}
	if boost == 0 {
		return
	}
	for _, t := range s.Residents(b.ID) {
		t.SetHappiness(t.Happiness + boost)
	}
}

// criticalFailures rolls for a boiler breakdown and a structural fault.
// Security halves the odds. An unaffordable boiler repair leaves every
// resident cold; an unaffordable structural repair wrecks the hallway.
func (s *Simulation) criticalFailures(b *building.Building, tick uint64) {
	ec := s.cfg.Economy
	p := ec.CriticalFailureChance
	if b.Staff.Security {
		p *= 0.5
	}

	if entropy.Chance(s.rng, p) {
		cost := ec.BoilerRepairCost
		tx := economy.Expense(economy.CriticalFailure, cost, fmt.Sprintf("%s: boiler emergency repair", b.Name), tick)
		if s.Funds.DeductExpense(tx) {
			s.emit(tick, CategoryBuilding, "%s: the boiler failed, emergency repair cost $%d", b.Name, cost)
		} else {
			for _, t := range s.Residents(b.ID) {
				t.SetHappiness(t.Happiness - 30)
			}
			s.emit(tick, CategoryBuilding, "%s: the boiler failed and there is no money to fix it ($%d needed)", b.Name, cost)
		}
	}

	if entropy.Chance(s.rng, p) {
		cost := ec.StructuralRepairCost
		tx := economy.Expense(economy.CriticalFailure, cost, fmt.Sprintf("%s: structural reinforcement", b.Name), tick)
		if s.Funds.DeductExpense(tx) {
			s.emit(tick, CategoryBuilding, "%s: foundation crack repaired for $%d", b.Name, cost)
		} else {
			b.DecayHallway(20)
			s.emit(tick, CategoryBuilding, "%s: foundation crack left unrepaired, hallway down to %d%%", b.Name, b.HallwayCondition)
		}
	}
}

// randomEvents rolls the monthly chance events for one building.
func (s *Simulation) randomEvents(b *building.Building, tick uint64) {
	rc := s.cfg.RandomEvents

	if entropy.Percent(s.rng, rc.HeatwaveChance) {
		s.emit(tick, CategoryBuilding, "%s: a heatwave hits the city", b.Name)
	}

	if entropy.Percent(s.rng, rc.PipeBurstChance) {
		if apt, ok := entropy.Pick(s.rng, b.Apartments); ok && apt.Condition > 0 {
			apt.Decay(rc.PipeBurstDamage)
			s.emit(tick, CategoryBuilding, "%s: a pipe burst in Unit %s (-%d condition)", b.Name, apt.UnitNumber, rc.PipeBurstDamage)
		}
	}

	if entropy.Permille(s.rng, rc.GentrificationPermille) {
		if n, ok := s.City.NeighborhoodFor(b.ID); ok {
			n.AddPressure(rc.GentrificationPressure)
			s.emit(tick, CategoryCity, "Developers are moving into %s", n.Name)
		}
	}

	appeal := b.Appeal()
	chance := rc.InspectionChance
	if appeal < rc.InspectionAppealMin {
		chance = rc.InspectionChanceLowAppeal
	}
	if entropy.Percent(s.rng, chance) {
		if appeal >= rc.InspectionAppealMin {
			s.emit(tick, CategoryCompliance, "%s passed a surprise inspection", b.Name)
			return
		}
		s.Funds.ChargeFine(economy.Expense(economy.Fine, rc.InspectionFine, fmt.Sprintf("%s: failed surprise inspection", b.Name), tick))
		s.emit(tick, CategoryCompliance, "%s failed a surprise inspection (appeal %d), fined $%d", b.Name, appeal, rc.InspectionFine)
	}
}

// complianceTick runs the regulation calendar and bills its fines.
func (s *Simulation) complianceTick(tick uint64) {
	rep := s.Compliance.Tick(tick, s.City.Building, s.cfg.Compliance)
	if rep.Fines > 0 {
		s.Funds.ChargeFine(economy.Expense(economy.Fine, rep.Fines, "Code compliance fines", tick))
	}
	s.emitAll(tick, CategoryCompliance, rep.Events)
}

// decay wears the building down and reports units crossing the critical or
// poor thresholds, and a hallway sliding into poor shape.
func (s *Simulation) decay(b *building.Building, tick uint64) {
	th := s.cfg.Thresholds
	before := make([]int, len(b.Apartments))
	for i, a := range b.Apartments {
		before[i] = a.Condition
	}
	hallway := b.HallwayCondition

	b.ApplyMonthlyDecay(s.cfg.Decay.ApartmentPerTick, s.cfg.Decay.HallwayPerTick)

	for i, a := range b.Apartments {
		switch old := before[i]; {
		case old >= th.CriticalCondition && a.Condition < th.CriticalCondition:
			s.emit(tick, CategoryBuilding, "%s: Unit %s is in critical condition (%d%%)", b.Name, a.UnitNumber, a.Condition)
		case old >= th.PoorCondition && a.Condition < th.PoorCondition:
			s.emit(tick, CategoryBuilding, "%s: Unit %s is in poor condition (%d%%)", b.Name, a.UnitNumber, a.Condition)
		}
	}
	if hallway >= th.PoorCondition && b.HallwayCondition < th.PoorCondition {
		s.emit(tick, CategoryBuilding, "%s: the hallway is deteriorating (%d%%)", b.Name, b.HallwayCondition)
	}
}
