package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/consequences"
	"github.com/talgya/tenement/internal/economy"
	"github.com/talgya/tenement/internal/tenant"
)

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := NewSimulation(config.Default(), 42)
	require.NoError(t, err)
	return s
}

// applicant builds an application for a specific apartment.
func applicant(s *Simulation, buildingID, aptID int, a tenant.Archetype) *tenant.Application {
	tn := tenant.New(s.NextTenantID, "Test Applicant", a, tenant.ProfileFor(s.cfg, a), s.cfg.Happiness.Starting)
	s.NextTenantID++
	return &tenant.Application{Tenant: tn, BuildingID: buildingID, ApartmentID: aptID, CreatedTick: s.LastTick}
}

// house signs a fresh tenant into an apartment of the starter building.
func house(t *testing.T, s *Simulation, aptID int) *tenant.Tenant {
	t.Helper()
	s.Applications = []*tenant.Application{applicant(s, 0, aptID, tenant.Family)}
	_, err := s.Apply(AcceptApplication(0))
	require.NoError(t, err)
	return s.Tenants[len(s.Tenants)-1]
}

// requireOccupancyConsistent checks both sides of every lease: a unit names a
// tenant exactly when that tenant names the unit back.
func requireOccupancyConsistent(t *testing.T, s *Simulation) {
	t.Helper()
	byID := make(map[int]*tenant.Tenant, len(s.Tenants))
	for _, tn := range s.Tenants {
		require.NotContains(t, byID, tn.ID, "tenant %d listed twice", tn.ID)
		byID[tn.ID] = tn
	}

	claimed := make(map[int]bool)
	for _, b := range s.City.Buildings {
		for _, apt := range b.Apartments {
			if apt.TenantID == nil {
				continue
			}
			require.False(t, apt.IsCondo, "%s unit %s is a condo with a tenant", b.Name, apt.UnitNumber)
			tn, ok := byID[*apt.TenantID]
			require.True(t, ok, "%s unit %s names unknown tenant %d", b.Name, apt.UnitNumber, *apt.TenantID)
			require.NotNil(t, tn.ApartmentID, "%s is not housed but holds unit %s", tn.Name, apt.UnitNumber)
			require.Equal(t, b.ID, tn.BuildingID)
			require.Equal(t, apt.ID, *tn.ApartmentID)
			require.False(t, claimed[tn.ID], "%s holds two units", tn.Name)
			claimed[tn.ID] = true
		}
	}
	for _, tn := range s.Tenants {
		if tn.ApartmentID != nil {
			require.True(t, claimed[tn.ID], "%s points at a unit that does not point back", tn.Name)
		}
	}
}

func TestNewSimulation(t *testing.T) {
	s := newTestSim(t)

	require.Len(t, s.City.Buildings, 1)
	b := s.City.Buildings[0]
	assert.Equal(t, "Sunset Apartments", b.Name)
	assert.Len(t, b.Apartments, 6)
	assert.Equal(t, 5000, s.Funds.Balance)
	assert.Equal(t, uint64(0), s.LastTick)
	assert.Empty(t, s.Tenants)
	assert.False(t, s.Ended())

	// Six vacancies and appeal 55 call for four applicants.
	assert.Equal(t, 5, s.NextTenantID)
	assert.LessOrEqual(t, len(s.Applications), 4)
	for _, a := range s.Applications {
		assert.Equal(t, 0, a.BuildingID)
		assert.True(t, a.Match.MeetsMinimum)
	}

	assert.Len(t, s.Compliance.Regulations[0], 5)
	assert.NotEmpty(t, s.City.Market.Listings)
	assert.Equal(t, 6, s.Stats.Units)
	assert.Equal(t, 6, s.Stats.Vacancies)
}

func TestSeedZeroPicksOne(t *testing.T) {
	s, err := NewSimulation(nil, 0)
	require.NoError(t, err)
	assert.NotZero(t, s.Seed)
	assert.NotNil(t, s.Config())
}

func TestCampaignKeepsBooksBalanced(t *testing.T) {
	s := newTestSim(t)

	for i := 0; i < 36 && !s.Ended(); i++ {
		s.Queue(s.Autopilot()...)
		s.Queue(EndTurn())
		results := s.Drain()
		last := results[len(results)-1]
		require.NotNil(t, last.Tick)

		assert.True(t, s.Funds.Reconciles(), "month %d", last.Tick.Tick)
		assert.Equal(t, s.Funds.Balance, last.Tick.Report.EndingBalance)
		assert.Equal(t, s.LastTick, last.Tick.Tick)
		assert.LessOrEqual(t, len(s.Events), maxEvents)
		requireOccupancyConsistent(t, s)
	}
	assert.True(t, s.WasEverOccupied)
	assert.NotEmpty(t, s.Tenants)
}

func TestSameSeedSameCampaign(t *testing.T) {
	play := func() *Simulation {
		s := newTestSim(t)
		for i := 0; i < 12 && !s.Ended(); i++ {
			s.Queue(s.Autopilot()...)
			s.Queue(EndTurn())
			s.Drain()
		}
		return s
	}
	a, b := play(), play()

	assert.Equal(t, a.LastTick, b.LastTick)
	assert.Equal(t, a.Funds.Balance, b.Funds.Balance)
	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, len(a.Events), len(b.Events))
	assert.Equal(t, a.NextTenantID, b.NextTenantID)
	assert.Equal(t, a.Gentrification.Score, b.Gentrification.Score)
}

func TestRestoredCampaignContinuesIdentically(t *testing.T) {
	s := newTestSim(t)
	house(t, s, 3)
	s.Advance(4)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var loaded Simulation
	require.NoError(t, json.Unmarshal(raw, &loaded))
	loaded.Restore(config.Default())

	assert.Equal(t, s.LastTick, loaded.LastTick)
	assert.Equal(t, s.Funds.Balance, loaded.Funds.Balance)

	s.Advance(4)
	loaded.Advance(4)
	assert.Equal(t, s.LastTick, loaded.LastTick)
	assert.Equal(t, s.Funds.Balance, loaded.Funds.Balance)
	assert.Equal(t, s.Stats, loaded.Stats)
	assert.Equal(t, len(s.Applications), len(loaded.Applications))
}

func TestBankruptcyEndsCampaign(t *testing.T) {
	s := newTestSim(t)
	s.Funds.ChargeFine(economy.Expense(economy.Fine, 100000, "test", 0))

	r := s.Tick()
	require.NotNil(t, r.Outcome)
	assert.Equal(t, Bankruptcy, r.Outcome.Kind)
	assert.True(t, s.Ended())

	// A finished campaign neither advances nor takes orders.
	again := s.Tick()
	assert.Equal(t, uint64(1), again.Tick)
	assert.Equal(t, uint64(1), s.LastTick)
	_, err := s.Apply(SetRent(0, 0, 500))
	assert.ErrorIs(t, err, ErrGameOver)

	s.Queue(EndTurn())
	res := s.Drain()
	require.Len(t, res, 1)
	assert.ErrorIs(t, res[0].Err, ErrGameOver)
}

func TestAdvanceStopsAtOutcome(t *testing.T) {
	s := newTestSim(t)
	s.Funds.ChargeFine(economy.Expense(economy.Fine, 100000, "test", 0))
	results := s.Advance(10)
	assert.Len(t, results, 1)
}

func TestTickResultCarriesMonthEvents(t *testing.T) {
	s := newTestSim(t)
	r := s.Tick()
	require.NotEmpty(t, r.Events)
	for _, e := range r.Events {
		assert.Equal(t, uint64(1), e.Tick)
	}
	assert.Equal(t, r.Events, s.EventsSince(0))
}

func TestDepartureRecordsDisplacement(t *testing.T) {
	s := newTestSim(t)
	tn := house(t, s, 3)
	require.True(t, s.WasEverOccupied)
	b := s.City.Buildings[0]
	apt, _ := b.Apartment(3)

	tn.RentTolerance = apt.RentPrice - 1
	tn.SetHappiness(0)
	var res TickResult
	s.processDepartures(1, &res)

	assert.Equal(t, []string{tn.Name}, res.MovedOut)
	assert.Empty(t, s.Tenants)
	assert.Nil(t, apt.TenantID)
	require.Len(t, s.Gentrification.Displacements, 1)
	d := s.Gentrification.Displacements[0]
	assert.Equal(t, tn.Name, d.TenantName)
	assert.Equal(t, b.Name, d.BuildingName)
	assert.Equal(t, "Central District", d.Neighborhood)
	assert.Equal(t, 1, s.Network.DisplacedCount())
	requireOccupancyConsistent(t, s)
}

func TestDepartureWithinBudgetIsNotDisplacement(t *testing.T) {
	s := newTestSim(t)
	tn := house(t, s, 3)
	tn.SetHappiness(0)

	var res TickResult
	s.processDepartures(1, &res)
	assert.Len(t, res.MovedOut, 1)
	assert.Empty(t, s.Gentrification.Displacements)
	requireOccupancyConsistent(t, s)
	require.Len(t, s.Network.Records, 1)
	assert.True(t, s.Network.Records[0].MovedOut)
	assert.Zero(t, s.Network.LongTermCount(40, 12))
}

func TestFeudingTenantIsFlaggedBeforeUnhappy(t *testing.T) {
	s := newTestSim(t)
	a := house(t, s, 2)
	b := house(t, s, 3)
	c := house(t, s, 4)
	s.Network.Add(a.ID, b.ID, consequences.Hostile, 50)
	a.SetHappiness(35) // 35 × 0.8 = 28, under the unhappy line
	b.SetHappiness(40) // 40 × 0.8 = 32
	c.SetHappiness(31) // no bonds

	before := len(s.Events)
	var res TickResult
	s.processDepartures(2, &res)

	assert.Empty(t, res.MovedOut)
	var flagged []string
	for _, e := range s.Events[before:] {
		if strings.Contains(e.Description, "at odds with the neighbours") {
			flagged = append(flagged, e.Description)
		}
	}
	require.Len(t, flagged, 1)
	assert.Contains(t, flagged[0], a.Name)
}

func TestApplicationsForBuilding(t *testing.T) {
	s := newTestSim(t)
	s.Applications = []*tenant.Application{
		applicant(s, 0, 1, tenant.Student),
		applicant(s, 1, 0, tenant.Artist),
		applicant(s, 0, 4, tenant.Elderly),
	}

	got := s.ApplicationsFor(0)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ApartmentID)
	assert.Equal(t, 4, got[1].ApartmentID)
	assert.Empty(t, s.ApplicationsFor(7))
}

func TestEventsSinceAndRecent(t *testing.T) {
	s := newTestSim(t)
	s.Events = nil
	for tick := uint64(1); tick <= 4; tick++ {
		s.emit(tick, CategoryGame, "month %d", tick)
	}

	since := s.EventsSince(2)
	require.Len(t, since, 2)
	assert.Equal(t, "month 3", since[0].Description)
	assert.Len(t, s.EventsSince(0), 4)

	recent := s.RecentEvents(1)
	require.Len(t, recent, 1)
	assert.Equal(t, uint64(4), recent[0].Tick)
	assert.Len(t, s.RecentEvents(0), 4)
}
