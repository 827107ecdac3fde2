package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/economy"
	"github.com/talgya/tenement/internal/tenant"
)

// quiet switches off every chance event.
func quiet(rc *config.RandomEventsConfig) {
	rc.HeatwaveChance = 0
	rc.PipeBurstChance = 0
	rc.GentrificationPermille = 0
	rc.InspectionChance = 0
	rc.InspectionChanceLowAppeal = 0
}

func countEvents(s *Simulation, substr string) int {
	n := 0
	for _, e := range s.Events {
		if strings.Contains(e.Description, substr) {
			n++
		}
	}
	return n
}

func TestJanitorTouchesUpMidRangeUnits(t *testing.T) {
	s := newTestSim(t)
	b := s.City.Buildings[0]
	b.Staff.Janitor = true
	b.Apartments[0].Condition = 60
	b.Apartments[1].Condition = 95
	b.Apartments[2].Condition = 50
	b.HallwayCondition = 60

	s.applyStaff(b)
	assert.Equal(t, 61, b.Apartments[0].Condition)
	assert.Equal(t, 95, b.Apartments[1].Condition)
	assert.Equal(t, 50, b.Apartments[2].Condition)
	assert.Equal(t, 61, b.HallwayCondition)
}

func TestSecurityAndManagerLiftResidents(t *testing.T) {
	s := newTestSim(t)
	b := s.City.Buildings[0]
	tn := house(t, s, 3)
	tn.SetHappiness(70)
	b.Staff.Security = true
	b.Staff.Manager = true

	s.applyStaff(b)
	assert.Equal(t, 73, tn.Happiness)
}

func TestUnaffordableCriticalFailures(t *testing.T) {
	s := newTestSim(t)
	s.cfg.Economy.CriticalFailureChance = 1
	s.Funds = economy.NewFunds(100)
	b := s.City.Buildings[0]
	tn := house(t, s, 3)
	tn.SetHappiness(70)

	s.criticalFailures(b, 1)
	assert.Equal(t, 40, tn.Happiness)
	assert.Equal(t, 40, b.HallwayCondition)
	assert.Equal(t, 100, s.Funds.Balance)
	assert.Equal(t, 1, countEvents(s, "no money to fix it"))
	assert.Equal(t, 1, countEvents(s, "left unrepaired"))
}

func TestAffordableCriticalFailures(t *testing.T) {
	s := newTestSim(t)
	s.cfg.Economy.CriticalFailureChance = 1
	s.Funds = economy.NewFunds(100000)
	b := s.City.Buildings[0]

	s.criticalFailures(b, 1)
	ec := s.cfg.Economy
	assert.Equal(t, 100000-ec.BoilerRepairCost-ec.StructuralRepairCost, s.Funds.Balance)
	assert.Equal(t, 60, b.HallwayCondition)
	for _, tx := range s.Funds.Transactions {
		assert.Equal(t, economy.CriticalFailure, tx.Type)
	}
}

func TestFailedSurpriseInspection(t *testing.T) {
	s := newTestSim(t)
	quiet(&s.cfg.RandomEvents)
	s.cfg.RandomEvents.InspectionChanceLowAppeal = 100
	b := s.City.Buildings[0]
	for _, a := range b.Apartments {
		a.Condition = 10
	}
	b.HallwayCondition = 10

	s.randomEvents(b, 1)
	assert.Equal(t, 5000-s.cfg.RandomEvents.InspectionFine, s.Funds.Balance)
	txs := s.Funds.TransactionsForTick(1)
	require.Len(t, txs, 1)
	assert.Equal(t, economy.Fine, txs[0].Type)
}

func TestPassedSurpriseInspection(t *testing.T) {
	s := newTestSim(t)
	quiet(&s.cfg.RandomEvents)
	s.cfg.RandomEvents.InspectionChance = 100
	b := s.City.Buildings[0]

	s.randomEvents(b, 1)
	assert.Equal(t, 5000, s.Funds.Balance)
	assert.Equal(t, 1, countEvents(s, "passed a surprise inspection"))
}

func TestPipeBurstDamagesAUnit(t *testing.T) {
	s := newTestSim(t)
	quiet(&s.cfg.RandomEvents)
	s.cfg.RandomEvents.PipeBurstChance = 100
	b := s.City.Buildings[0]

	s.randomEvents(b, 1)
	damaged := 0
	for _, a := range b.Apartments {
		if a.Condition == 50-s.cfg.RandomEvents.PipeBurstDamage {
			damaged++
		}
	}
	assert.Equal(t, 1, damaged)
}

func TestDecayReportsThresholdCrossings(t *testing.T) {
	s := newTestSim(t)
	b := s.City.Buildings[0]
	b.Apartments[0].Condition = 21
	b.Apartments[1].Condition = 41
	b.Apartments[2].Condition = 19
	b.HallwayCondition = 40

	s.decay(b, 1)
	assert.Equal(t, 1, countEvents(s, "critical condition"))
	assert.Equal(t, 1, countEvents(s, "poor condition"))
	assert.Equal(t, 1, countEvents(s, "hallway is deteriorating"))
	assert.Equal(t, 17, b.Apartments[2].Condition)
}

func TestAutopilot(t *testing.T) {
	s := newTestSim(t)
	b := s.City.Buildings[0]
	b.HallwayCondition = 30
	b.Apartments[2].Condition = 30
	s.Applications = []*tenant.Application{
		applicant(s, 0, 1, tenant.Student),
		applicant(s, 0, 1, tenant.Family),
		applicant(s, 0, 3, tenant.Family),
	}
	s.Applications[0].Match.Score = 60
	s.Applications[1].Match.Score = 70
	s.Applications[2].Match.Score = 40

	got := s.Autopilot()
	assert.Equal(t, []Intent{
		RepairHallway(0, 40),
		RepairApartment(0, 2, 40),
		AcceptApplication(1),
	}, got)

	s.Queue(got...)
	for _, r := range s.Drain() {
		require.NoError(t, r.Err)
	}
	assert.Equal(t, 70, b.HallwayCondition)
	assert.Equal(t, 70, b.Apartments[2].Condition)
	assert.Len(t, s.Tenants, 1)
}

func TestAutopilotKeepsReserve(t *testing.T) {
	s := newTestSim(t)
	s.Funds = economy.NewFunds(1500)
	s.Applications = nil
	b := s.City.Buildings[0]
	b.HallwayCondition = 30
	b.Apartments[2].Condition = 30

	// The hallway needs $600, more than the $500 above the reserve.
	assert.Equal(t, []Intent{RepairApartment(0, 2, 40)}, s.Autopilot())
}
