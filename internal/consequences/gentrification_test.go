package consequences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/tenant"
)

func TestRentIncreasesRaiseScore(t *testing.T) {
	cfg := config.Default().Gentrification
	g := NewGentrificationTracker()

	assert.Equal(t, 8, g.RecordRentChange(0, 1, 500, 700, cfg))
	assert.Zero(t, g.RecordRentChange(0, 2, 1000, 1050, cfg))
	assert.Zero(t, g.RecordRentChange(0, 3, 1000, 1100, cfg), "exactly the threshold does not count")
	assert.Zero(t, g.RecordRentChange(0, 4, 1000, 800, cfg))
	assert.Zero(t, g.RecordRentChange(0, 5, 0, 800, cfg))
	assert.Equal(t, 8, g.Score)
	assert.Len(t, g.RentHistory[0], 5)

	g.RecordRentChange(1, 6, 100, 1000, cfg)
	assert.Equal(t, 100, g.Score, "capped")
}

func TestDisplacementLowersScore(t *testing.T) {
	cfg := config.Default().Gentrification
	g := NewGentrificationTracker()
	g.Score = 30

	g.RecordDisplacement(Displacement{TenantName: "A", Reason: RentIncrease}, cfg)
	assert.Equal(t, 20, g.Score)
	g.RecordDisplacement(Displacement{TenantName: "B", Reason: Eviction}, cfg)
	assert.Zero(t, g.Score)
	g.RecordDisplacement(Displacement{TenantName: "C", Reason: BuildingSold}, cfg)
	assert.Zero(t, g.Score, "floored at zero")
	assert.Len(t, g.Displacements, 3)
}

func TestAffordableUnitsAndDiversity(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "A", 3, 2, cfg.Economy.BaseRent)
	g := NewGentrificationTracker()

	g.UpdateAffordableUnits([]*building.Building{b}, cfg.Gentrification)
	assert.Equal(t, 3, g.AffordableUnits)

	residents := []*tenant.Tenant{
		resident(t, cfg, b, 1, 0, tenant.Student),
		resident(t, cfg, b, 2, 1, tenant.Student),
		resident(t, cfg, b, 3, 2, tenant.Artist),
		resident(t, cfg, b, 4, 3, tenant.Family),
	}
	s := g.TakeSnapshot(b, 5, residents)
	assert.Equal(t, 2, s.Counts[tenant.Student])
	assert.Equal(t, 60, s.DiversityScore())
	assert.Equal(t, 750, s.AverageRent)
}

func TestCouncilLifecycle(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "A", 3, 2, cfg.Economy.BaseRent)
	g := NewGentrificationTracker()
	residents := []*tenant.Tenant{
		resident(t, cfg, b, 1, 0, tenant.Student),
		resident(t, cfg, b, 2, 1, tenant.Student),
		resident(t, cfg, b, 3, 2, tenant.Artist),
		resident(t, cfg, b, 4, 3, tenant.Family),
	}
	residents[0].SetHappiness(10)

	_, changed := g.CheckCouncil(b, 1, residents, 30, cfg.Gentrification)
	assert.False(t, changed, "25% is not enough")

	residents[1].SetHappiness(29)
	msg, changed := g.CheckCouncil(b, 2, residents, 30, cfg.Gentrification)
	require.True(t, changed)
	assert.Contains(t, msg, "formed a tenant council")
	assert.Equal(t, []int{0}, g.CouncilBuildings())

	_, changed = g.CheckCouncil(b, 3, residents, 30, cfg.Gentrification)
	assert.False(t, changed)

	residents[0].SetHappiness(80)
	residents[1].SetHappiness(80)
	msg, changed = g.CheckCouncil(b, 4, residents, 30, cfg.Gentrification)
	require.True(t, changed)
	assert.Contains(t, msg, "disbanded")
	assert.Empty(t, g.CouncilBuildings())
}

func TestCouncilNeedsQuorum(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "A", 3, 2, cfg.Economy.BaseRent)
	g := NewGentrificationTracker()
	residents := []*tenant.Tenant{resident(t, cfg, b, 1, 0, tenant.Student), resident(t, cfg, b, 2, 1, tenant.Student)}
	for _, r := range residents {
		r.SetHappiness(5)
	}
	_, changed := g.CheckCouncil(b, 1, residents, 30, cfg.Gentrification)
	assert.False(t, changed)
}

func TestGentrificationTick(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "A", 3, 2, cfg.Economy.BaseRent)
	g := NewGentrificationTracker()
	veteran := resident(t, cfg, b, 1, 0, tenant.Elderly)
	newcomer := resident(t, cfg, b, 2, 1, tenant.Student)
	leaver := tenant.New(3, "Lee M.", tenant.Artist, tenant.ProfileFor(cfg, tenant.Artist), 70)
	pushed := tenant.New(4, "Kim O.", tenant.Family, tenant.ProfileFor(cfg, tenant.Family), 70)

	n := NewTenantNetwork()
	for _, r := range []*tenant.Tenant{veteran, leaver, pushed} {
		n.RecordMoveIn(r, 700, 0)
	}
	n.RecordMoveIn(newcomer, 700, 10)
	n.RecordMoveOut(leaver.ID)
	n.MarkDisplaced(pushed.ID, string(RentIncrease))

	events := g.Tick(18, []*building.Building{b}, func(int) []*tenant.Tenant {
		return []*tenant.Tenant{veteran, newcomer}
	}, n, 30, cfg.Gentrification)
	assert.Empty(t, events)
	assert.Equal(t, 1, g.TenantsPreserved, "only the veteran is a housed long-term tenant")
	assert.Equal(t, 1, g.TenantsDisplaced)
	assert.Equal(t, 3, g.AffordableUnits)
	assert.Equal(t, uint64(18), g.Snapshots[0].Tick)
}
