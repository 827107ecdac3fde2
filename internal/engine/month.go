package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/city"
	"github.com/talgya/tenement/internal/consequences"
	"github.com/talgya/tenement/internal/economy"
	"github.com/talgya/tenement/internal/tenant"
)

// TickResult summarises one processed month.
type TickResult struct {
	Tick            uint64                `json:"tick"`
	RentCollected   int                   `json:"rent_collected"`
	MovedOut        []string              `json:"moved_out"`
	NewApplications int                   `json:"new_applications"`
	Outcome         *Outcome              `json:"outcome,omitempty"`
	Events          []Event               `json:"events"`
	Report          economy.MonthlyReport `json:"report"`
}

// Tick advances the campaign one month. The phases always run in the same
// order and none aborts the month. A finished campaign does not advance.
func (s *Simulation) Tick() TickResult {
	if s.Ended() {
		return TickResult{Tick: s.LastTick, Outcome: s.Outcome}
	}

	s.LastTick++
	tick := s.LastTick
	s.reseed(tick)
	start := len(s.Events)
	res := TickResult{Tick: tick}

	// 1. Money in, money out, staff and breakdowns.
	rent := s.collectRent(tick, &res)
	for _, b := range s.City.Buildings {
		s.chargeBuilding(b, rent.ByBuilding[b.ID], tick)
		s.payObligations(b, rent.ByBuilding[b.ID], tick)
		s.countdownOpenHouse(b, tick)
		s.applyStaff(b)
		s.criticalFailures(b, tick)
	}

	// 2. Chance events and inspectors.
	for _, b := range s.City.Buildings {
		s.randomEvents(b, tick)
	}
	s.complianceTick(tick)

	// 3. Wear and tear.
	for _, b := range s.City.Buildings {
		s.decay(b, tick)
		if hoa := b.CollectHOA(); hoa > 0 {
			slog.Debug("hoa collected", "building", b.Name, "amount", hoa, "reserve", b.Ownership.Board.ReserveFund)
		}
	}

	// 4. Neighbours and moods.
	s.emitAll(tick, CategorySocial, s.Network.Tick(s.rng, s.Tenants, s.lookup, s.cfg.Relationships))
	s.updateHappiness(tick)

	// 5. Move-outs.
	s.processDepartures(tick, &res)

	// 6-7. Applicants.
	var purged int
	s.Applications, purged = tenant.PurgeExpired(s.Applications, tick, s.cfg.Applications.ExpireAfterTicks)
	if purged > 0 {
		slog.Debug("applications expired", "tick", tick, "count", purged)
	}
	s.generateApplications(tick, &res)

	// 8. Books, neighbourhood change, the city and the verdict.
	res.Report = s.Ledger.GenerateReport(tick, s.Funds.TransactionsForTick(tick), s.Funds.Balance)
	s.emit(tick, CategoryEconomy, "%s closed: income $%s, net $%s, balance $%s",
		SimTime(tick), humanize.Comma(int64(res.Report.RentIncome+res.Report.OtherIncome)),
		humanize.Comma(int64(res.Report.Net)), humanize.Comma(int64(res.Report.EndingBalance)))

	s.emitAll(tick, CategorySocial, s.Gentrification.Tick(tick, s.City.Buildings, s.Residents,
		s.Network, s.cfg.Happiness.UnhappyThreshold, s.cfg.Gentrification))

	for _, l := range s.City.Tick(s.rng, s.cfg.City) {
		s.emit(tick, CategoryCity, "New listing: %s", l.Summary())
	}

	s.updateStats()
	if o := Evaluate(s.Standing(), s.cfg); o != nil {
		s.Outcome = o
		res.Outcome = o
		s.emit(tick, CategoryGame, "Game over: %s", o)
		slog.Info("campaign ended", "tick", tick, "outcome", o.Kind, "score", o.Score)
	}

	res.Events = append([]Event(nil), s.Events[start:]...)
	s.trimEvents()

	slog.Info("monthly report",
		"tick", tick,
		"time", SimTime(tick),
		"rent", res.RentCollected,
		"net", res.Report.Net,
		"balance", s.Funds.Balance,
		"tenants", s.Stats.Tenants,
		"vacancies", s.Stats.Vacancies,
		"avg_happiness", s.Stats.AvgHappiness,
		"moved_out", len(res.MovedOut),
		"applications", res.NewApplications,
		"gentrification", s.Gentrification.Score,
	)
	return res
}

// Advance runs up to n months, stopping early when the campaign ends.
func (s *Simulation) Advance(n int) []TickResult {
	var out []TickResult
	for i := 0; i < n && !s.Ended(); i++ {
		out = append(out, s.Tick())
	}
	return out
}

func (s *Simulation) collectRent(tick uint64, res *TickResult) economy.RentCollection {
	rc := economy.CollectRent(s.rng, s.Tenants, s.lookup, s.Funds, tick, s.cfg)
	res.RentCollected = rc.Total
	for _, p := range rc.Payments {
		slog.Debug("rent paid", "tenant", p.TenantName, "unit", p.Unit, "amount", p.Amount)
	}
	for _, p := range rc.Missed {
		s.emit(tick, CategoryRent, "%s missed rent on Unit %s ($%d)", p.TenantName, p.Unit, p.Amount)
	}
	if rc.Total > 0 {
		s.emit(tick, CategoryRent, "Collected $%s rent from %d tenants", humanize.Comma(int64(rc.Total)), len(rc.Payments))
	}
	return rc
}

func (s *Simulation) chargeBuilding(b *building.Building, rent int, tick uint64) {
	op := economy.ChargeOperatingCosts(b, rent, s.Funds, tick, s.cfg)
	if op.MarketingCancelled {
		s.emit(tick, CategoryEconomy, "%s: marketing campaign cancelled due to lack of funds", b.Name)
	}
	for _, l := range op.Lines {
		if !l.Paid {
			s.emit(tick, CategoryEconomy, "%s: could not pay %s ($%d)", b.Name, l.Label, l.Amount)
		}
	}
}

// payObligations settles the building's mortgage instalments and investor
// shares. They are contractual, so they are taken even into overdraft.
func (s *Simulation) payObligations(b *building.Building, rent int, tick uint64) {
	for _, o := range append([]*city.Obligation(nil), s.City.Obligations...) {
		if o.BuildingID != b.ID {
			continue
		}
		due := o.Due(rent)
		if due > 0 {
			kind := economy.LoanPayment
			if o.Kind == city.InvestorObligation {
				kind = economy.InvestorPayout
			}
			s.Funds.Charge(economy.Expense(kind, due, fmt.Sprintf("%s: %s", b.Name, o.Lender), tick))
		}
		s.City.SettleObligation(o)
		if o.Kind == city.LoanObligation && o.RemainingMonths <= 0 {
			s.emit(tick, CategoryEconomy, "%s: mortgage paid off", b.Name)
		}
	}
}

func (s *Simulation) countdownOpenHouse(b *building.Building, tick uint64) {
	if b.OpenHouseRemaining <= 0 {
		return
	}
	b.OpenHouseRemaining--
	if b.OpenHouseRemaining == 0 {
		s.emit(tick, CategoryBuilding, "%s: open house has ended", b.Name)
	}
}

func (s *Simulation) updateHappiness(tick uint64) {
	h := s.cfg.Happiness
	rel := s.Network.View(s.cfg.Relationships)
	for _, t := range s.Tenants {
		if apt, ok := s.lookup(t); ok {
			if b, ok := s.City.Building(t.BuildingID); ok {
				f := tenant.CalculateHappiness(t, apt, b, rel, s.cfg)
				old := t.Happiness
				t.SetHappiness(f.Total())

				if t.Happiness < h.UnhappyThreshold && old >= h.UnhappyThreshold {
					s.emit(tick, CategoryTenant, "%s is unhappy (%d%%)", t.Name, t.Happiness)
				}
				if f.Noise < h.NoiseComplaintThreshold {
					s.emit(tick, CategoryTenant, "Noise complaint from %s", t.Name)
				}
				if f.Condition < h.ConditionComplaintLimit {
					s.emit(tick, CategoryTenant, "%s complained about Unit %s condition", t.Name, apt.UnitNumber)
				}
			}
		}
		t.AddMonth()
	}
}

func (s *Simulation) processDepartures(tick uint64, res *TickResult) {
	kept, departed, notes := tenant.ProcessDepartures(s.Tenants, s.lookup, s.cfg.Happiness.UnhappyThreshold)
	s.Tenants = kept
	s.emitAll(tick, CategoryTenant, notes)

	for _, d := range departed {
		t := d.Tenant
		res.MovedOut = append(res.MovedOut, t.Name)
		if d.RentPrice > t.RentTolerance {
			s.displace(t, d.BuildingID, d.RentPrice, consequences.RentIncrease, tick)
		}
		s.Network.Remove(t.ID)
		s.Network.RecordMoveOut(t.ID)
	}

	// Feuds make a tenant a flight risk before plain unhappiness does.
	th := s.cfg.Happiness.UnhappyThreshold
	for _, t := range s.Tenants {
		if !t.IsHoused() || t.IsUnhappy(th) {
			continue
		}
		if st := s.Network.StabilityModifierFor(t.ID); st < 1 && float64(t.Happiness)*st < float64(th) {
			s.emit(tick, CategoryTenant, "%s is at odds with the neighbours and may leave soon", t.Name)
		}
	}
}

// displace records a tenant pushed out of their home.
func (s *Simulation) displace(t *tenant.Tenant, buildingID, rent int, reason consequences.DisplacementReason, tick uint64) {
	d := consequences.Displacement{
		TenantName:    t.Name,
		Archetype:     t.Archetype,
		OriginalRent:  rent,
		FinalRent:     rent,
		MonthsResided: t.MonthsResiding,
		Reason:        reason,
		Tick:          tick,
	}
	if rec, ok := s.Network.MarkDisplaced(t.ID, string(reason)); ok {
		d.OriginalRent = rec.OriginalRent
	}
	if b, ok := s.City.Building(buildingID); ok {
		d.BuildingName = b.Name
	}
	if n, ok := s.City.NeighborhoodFor(buildingID); ok {
		d.Neighborhood = n.Name
	}
	s.Gentrification.RecordDisplacement(d, s.cfg.Gentrification)
	s.emit(tick, CategorySocial, "%s was displaced (%s)", t.Name, reason)
}

func (s *Simulation) generateApplications(tick uint64, res *TickResult) {
	for _, b := range s.City.Buildings {
		apps := tenant.GenerateApplications(s.rng, b, s.Applications, tick, &s.NextTenantID, s.City.RentDemand(b.ID), s.cfg)
		for _, a := range apps {
			unit := ""
			if apt, ok := b.Apartment(a.ApartmentID); ok {
				unit = apt.UnitNumber
			}
			s.emit(tick, CategoryTenant, "%s (%s) applied for Unit %s at %s", a.Tenant.Name, a.Tenant.Archetype.Label(), unit, b.Name)
		}
		s.Applications = append(s.Applications, apps...)
		res.NewApplications += len(apps)
	}
}
