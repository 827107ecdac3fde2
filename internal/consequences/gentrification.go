package consequences

import (
	"fmt"
	"maps"
	"slices"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/tenant"
)

// DisplacementReason values double as config keys for their impact.
type DisplacementReason string

const (
	RentIncrease               DisplacementReason = "rent_increase"
	UnitConversion             DisplacementReason = "unit_conversion"
	Renovation                 DisplacementReason = "renovation"
	Eviction                   DisplacementReason = "eviction"
	NeighborhoodGentrification DisplacementReason = "neighborhood_gentrification"
	BuildingSold               DisplacementReason = "building_sold"
)

// Displacement records a tenant pushed out of their home.
type Displacement struct {
	TenantName    string             `json:"tenant_name"`
	Archetype     tenant.Archetype   `json:"archetype"`
	OriginalRent  int                `json:"original_rent"`
	FinalRent     int                `json:"final_rent"`
	MonthsResided int                `json:"months_resided"`
	Reason        DisplacementReason `json:"reason"`
	Tick          uint64             `json:"tick"`
	BuildingName  string             `json:"building_name"`
	Neighborhood  string             `json:"neighborhood"`
}

type RentChange struct {
	Tick       uint64 `json:"tick"`
	OldAverage int    `json:"old_average"`
	NewAverage int    `json:"new_average"`
}

// DemographicSnapshot counts housed tenants per archetype.
type DemographicSnapshot struct {
	Tick        uint64                   `json:"tick"`
	Counts      map[tenant.Archetype]int `json:"counts"`
	AverageRent int                      `json:"average_rent"`
}

// DiversityScore is 20 points per archetype present.
func (d DemographicSnapshot) DiversityScore() int {
	n := 0
	for _, c := range d.Counts {
		if c > 0 {
			n++
		}
	}
	return n * 20
}

// TenantCouncil is an organised group of unhappy tenants in one building.
type TenantCouncil struct {
	BuildingID int    `json:"building_id"`
	FormedTick uint64 `json:"formed_tick"`
	Members    int    `json:"members"`
}

// GentrificationTracker accumulates a 0..MaxScore pressure score.
type GentrificationTracker struct {
	Displacements    []Displacement              `json:"displacements"`
	RentHistory      map[int][]RentChange        `json:"rent_history"`
	Snapshots        map[int]DemographicSnapshot `json:"snapshots"`
	Councils         map[int]*TenantCouncil      `json:"councils"`
	Score            int                         `json:"score"`
	TenantsPreserved int                         `json:"tenants_preserved"`
	TenantsDisplaced int                         `json:"tenants_displaced"`
	AffordableUnits  int                         `json:"affordable_units"`
}

func NewGentrificationTracker() *GentrificationTracker {
	return &GentrificationTracker{
		RentHistory: make(map[int][]RentChange),
		Snapshots:   make(map[int]DemographicSnapshot),
		Councils:    make(map[int]*TenantCouncil),
	}
}

// RecordRentChange logs a change of a building's average rent. Increases above
// the threshold raise the score by percent/divisor.
func (g *GentrificationTracker) RecordRentChange(buildingID int, tick uint64, oldAvg, newAvg int, cfg config.GentrificationConfig) int {
	g.RentHistory[buildingID] = append(g.RentHistory[buildingID], RentChange{Tick: tick, OldAverage: oldAvg, NewAverage: newAvg})
	if oldAvg <= 0 || cfg.RentIncreaseScoreDivisor <= 0 {
		return 0
	}
	pct := int(float64(newAvg-oldAvg) / float64(oldAvg) * 100)
	if pct <= cfg.RentIncreaseThresholdPercent {
		return 0
	}
	before := g.Score
	g.Score = min(g.Score+pct/cfg.RentIncreaseScoreDivisor, cfg.MaxScore)
	return g.Score - before
}

// RecordDisplacement logs d and lowers the score by its reason's impact,
// never below zero.
func (g *GentrificationTracker) RecordDisplacement(d Displacement, cfg config.GentrificationConfig) {
	g.Displacements = append(g.Displacements, d)
	g.Score = max(g.Score-cfg.DisplacementImpacts[string(d.Reason)], 0)
}

// UpdateAffordableUnits counts rentals at or under the affordable threshold.
func (g *GentrificationTracker) UpdateAffordableUnits(buildings []*building.Building, cfg config.GentrificationConfig) {
	n := 0
	for _, b := range buildings {
		for _, a := range b.Apartments {
			if !a.IsCondo && a.RentPrice <= cfg.AffordableThreshold {
				n++
			}
		}
	}
	g.AffordableUnits = n
}

// TakeSnapshot stores the current demographics of a building.
func (g *GentrificationTracker) TakeSnapshot(b *building.Building, tick uint64, residents []*tenant.Tenant) DemographicSnapshot {
	s := DemographicSnapshot{Tick: tick, Counts: make(map[tenant.Archetype]int), AverageRent: b.AverageRent()}
	for _, t := range residents {
		s.Counts[t.Archetype]++
	}
	g.Snapshots[b.ID] = s
	return s
}

// CheckCouncil forms a council when enough of a building's tenants are
// unhappy, and dissolves it once they are not.
func (g *GentrificationTracker) CheckCouncil(b *building.Building, tick uint64, residents []*tenant.Tenant, unhappyBelow int, cfg config.GentrificationConfig) (string, bool) {
	unhappy := 0
	for _, t := range residents {
		if t.IsUnhappy(unhappyBelow) {
			unhappy++
		}
	}
	organised := len(residents) >= cfg.CouncilMinTenants &&
		float64(unhappy)/float64(len(residents)) >= cfg.CouncilFormationThreshold

	c, exists := g.Councils[b.ID]
	switch {
	case organised && !exists:
		g.Councils[b.ID] = &TenantCouncil{BuildingID: b.ID, FormedTick: tick, Members: unhappy}
		return fmt.Sprintf("Tenants of %s formed a tenant council (%d members)", b.Name, unhappy), true
	case organised:
		c.Members = unhappy
	case exists:
		delete(g.Councils, b.ID)
		return fmt.Sprintf("The tenant council of %s disbanded", b.Name), true
	}
	return "", false
}

// Residents groups tenants by building.
type Residents func(buildingID int) []*tenant.Tenant

// Tick refreshes affordable units, snapshots and councils for every building,
// and takes the preserved and displaced tallies from the network's records.
func (g *GentrificationTracker) Tick(tick uint64, buildings []*building.Building, residents Residents, network *TenantNetwork, unhappyBelow int, cfg config.GentrificationConfig) []string {
	var events []string
	g.UpdateAffordableUnits(buildings, cfg)

	for _, b := range buildings {
		rs := residents(b.ID)
		g.TakeSnapshot(b, tick, rs)
		if msg, ok := g.CheckCouncil(b, tick, rs, unhappyBelow, cfg); ok {
			events = append(events, msg)
		}
	}
	g.TenantsPreserved = network.LongTermCount(tick, cfg.LongTermMonths)
	g.TenantsDisplaced = network.DisplacedCount()
	return events
}

// CouncilBuildings lists buildings with an active council in id order.
func (g *GentrificationTracker) CouncilBuildings() []int {
	return slices.Sorted(maps.Keys(g.Councils))
}
