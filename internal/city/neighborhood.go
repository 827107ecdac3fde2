// Package city models the wider market the landlord operates in:
// neighborhoods, the property market, financing and the business cycle.
package city

import (
	"math/rand"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/entropy"
)

// NeighborhoodType is one of the four fixed districts.
type NeighborhoodType uint8

const (
	Downtown NeighborhoodType = iota
	Suburbs
	Industrial
	Historic
)

var AllNeighborhoodTypes = []NeighborhoodType{Downtown, Suburbs, Industrial, Historic}

// Key is the config key of the district.
func (t NeighborhoodType) Key() string {
	switch t {
	case Suburbs:
		return "suburbs"
	case Industrial:
		return "industrial"
	case Historic:
		return "historic"
	}
	return "downtown"
}

func (t NeighborhoodType) String() string {
	switch t {
	case Suburbs:
		return "Suburbs"
	case Industrial:
		return "Industrial District"
	case Historic:
		return "Historic Quarter"
	}
	return "Downtown"
}

// Stats drift every month.
type Stats struct {
	CrimeLevel     int     `json:"crime_level"`
	TransitAccess  int     `json:"transit_access"`
	Walkability    int     `json:"walkability"`
	SchoolQuality  int     `json:"school_quality"`
	Services       int     `json:"services"`
	RentDemand     float64 `json:"rent_demand"`
	Gentrification int     `json:"gentrification"`
}

// StatsFor reads a district's starting stats, falling back to the defaults.
func StatsFor(t NeighborhoodType, cfg config.CityConfig) Stats {
	nc, ok := cfg.Neighborhoods[t.Key()]
	if !ok {
		nc = config.Default().City.Neighborhoods[t.Key()]
	}
	return Stats{
		CrimeLevel:     nc.CrimeLevel,
		TransitAccess:  nc.TransitAccess,
		Walkability:    nc.Walkability,
		SchoolQuality:  nc.SchoolQuality,
		Services:       nc.Services,
		RentDemand:     nc.RentDemand,
		Gentrification: nc.Gentrification,
	}
}

// Tick applies one month of drift. Industrial districts slowly gentrify.
func (s *Stats) Tick(rng *rand.Rand, t NeighborhoodType) {
	if t == Industrial && s.Gentrification < 100 && entropy.Percent(rng, 10) {
		s.Gentrification = min(s.Gentrification+1, 100)
		s.RentDemand = min(s.RentDemand+0.01, 1.5)
	}
	s.CrimeLevel = bounds.Clamp(s.CrimeLevel+entropy.Between(rng, -2, 2), 5, 95)
	s.RentDemand = bounds.Clamp(s.RentDemand+float64(entropy.Between(rng, -5, 5))/100, 0.5, 2.0)
}

// Neighborhood is a district holding up to AvailableSlots owned buildings.
type Neighborhood struct {
	ID             int              `json:"id"`
	Type           NeighborhoodType `json:"type"`
	Name           string           `json:"name"`
	Stats          Stats            `json:"stats"`
	BuildingIDs    []int            `json:"building_ids"`
	AvailableSlots int              `json:"available_slots"`
	Reputation     int              `json:"reputation"`
}

func NewNeighborhood(id int, t NeighborhoodType, name string, cfg config.CityConfig) *Neighborhood {
	return &Neighborhood{
		ID:             id,
		Type:           t,
		Name:           name,
		Stats:          StatsFor(t, cfg),
		AvailableSlots: cfg.SlotsPerNeighborhood,
		Reputation:     cfg.StartingReputation,
	}
}

// CanAddBuilding reports a free slot.
func (n *Neighborhood) CanAddBuilding() bool {
	return len(n.BuildingIDs) < n.AvailableSlots
}

func (n *Neighborhood) addBuilding(id int) {
	for _, b := range n.BuildingIDs {
		if b == id {
			return
		}
	}
	n.BuildingIDs = append(n.BuildingIDs, id)
}

// Owns reports whether the building sits in this district.
func (n *Neighborhood) Owns(buildingID int) bool {
	for _, b := range n.BuildingIDs {
		if b == buildingID {
			return true
		}
	}
	return false
}

// AddPressure raises gentrification, as when a developer moves in.
func (n *Neighborhood) AddPressure(points int) {
	n.Stats.Gentrification = bounds.Clamp(n.Stats.Gentrification+points, 0, 100)
}

func (n *Neighborhood) Tick(rng *rand.Rand) {
	n.Stats.Tick(rng, n.Type)
}
