package city

import (
	"errors"
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/entropy"
)

// ErrNoCapacity is returned when a district has no free building slot.
var ErrNoCapacity = errors.New("neighborhood at capacity")

// ObligationKind is a recurring payment attached to a financed building.
type ObligationKind uint8

const (
	LoanObligation ObligationKind = iota
	InvestorObligation
)

// Obligation is a mortgage instalment or an investor's share of rent.
type Obligation struct {
	BuildingID      int            `json:"building_id"`
	Kind            ObligationKind `json:"kind"`
	Lender          string         `json:"lender"`
	MonthlyPayment  int            `json:"monthly_payment,omitempty"`
	RemainingMonths int            `json:"remaining_months,omitempty"`
	ProfitShare     float64        `json:"profit_share,omitempty"`
}

// Due is what the obligation costs this month given the building's rent.
func (o *Obligation) Due(rentCollected int) int {
	if o.Kind == InvestorObligation {
		return int(float64(max(rentCollected, 0)) * o.ProfitShare)
	}
	if o.RemainingMonths <= 0 {
		return 0
	}
	return o.MonthlyPayment
}

// City is the world around the player's buildings.
type City struct {
	Name                  string               `json:"name"`
	Neighborhoods         []*Neighborhood      `json:"neighborhoods"`
	Buildings             []*building.Building `json:"buildings"`
	Market                *PropertyMarket      `json:"market"`
	EconomyHealth         float64              `json:"economy_health"`
	EconomyTrend          float64              `json:"economy_trend"`
	InterestRate          float64              `json:"interest_rate"`
	InflationRate         float64              `json:"inflation_rate"`
	TotalMonths           int                  `json:"total_months"`
	TotalBuildingsManaged int                  `json:"total_buildings_managed"`
	Obligations           []*Obligation        `json:"obligations"`
	CycleSeed             int64                `json:"cycle_seed"`

	cycle opensimplex.Noise
}

// NewCity creates the four fixed districts with no buildings.
func NewCity(name string, seed int64, cfg config.CityConfig) *City {
	return &City{
		Name: name,
		Neighborhoods: []*Neighborhood{
			NewNeighborhood(0, Downtown, "Central District", cfg),
			NewNeighborhood(1, Suburbs, "Greenfield Heights", cfg),
			NewNeighborhood(2, Industrial, "Old Docks", cfg),
			NewNeighborhood(3, Historic, "Heritage Row", cfg),
		},
		Market:        NewPropertyMarket(),
		EconomyHealth: 1.0,
		EconomyTrend:  1.0,
		InterestRate:  0.05,
		InflationRate: 0.02,
		CycleSeed:     seed,
	}
}

func (c *City) Neighborhood(id int) (*Neighborhood, bool) {
	for _, n := range c.Neighborhoods {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Building finds a building by id. Ids are slice indices and never reused.
func (c *City) Building(id int) (*building.Building, bool) {
	if id < 0 || id >= len(c.Buildings) {
		return nil, false
	}
	return c.Buildings[id], true
}

// AddBuilding places b in a district and assigns its id.
func (c *City) AddBuilding(b *building.Building, neighborhoodID int) (int, error) {
	n, ok := c.Neighborhood(neighborhoodID)
	if !ok {
		return 0, fmt.Errorf("neighborhood %d: %w", neighborhoodID, building.ErrNotFound)
	}
	if !n.CanAddBuilding() {
		return 0, fmt.Errorf("%s: %w", n.Name, ErrNoCapacity)
	}
	id := len(c.Buildings)
	b.ID = id
	c.Buildings = append(c.Buildings, b)
	n.addBuilding(id)
	c.TotalBuildingsManaged++
	return id, nil
}

// NeighborhoodFor finds the district of a building.
func (c *City) NeighborhoodFor(buildingID int) (*Neighborhood, bool) {
	for _, n := range c.Neighborhoods {
		if n.Owns(buildingID) {
			return n, true
		}
	}
	return nil, false
}

// RentDemand is the demand multiplier of the building's district, 1 when unknown.
func (c *City) RentDemand(buildingID int) float64 {
	if n, ok := c.NeighborhoodFor(buildingID); ok {
		return n.Stats.RentDemand
	}
	return 1.0
}

// EstimateBuildingValue prices a building from size, appeal and upgrades.
func EstimateBuildingValue(b *building.Building) int {
	base := 50000 * len(b.Apartments)
	upgrades := 0
	for _, a := range b.Apartments {
		upgrades += a.Design.AppealScore() * 500
		if a.HasSoundproofing {
			upgrades += 2000
		}
	}
	return int(float64(base)*float64(b.Appeal())/100) + upgrades
}

func (c *City) TotalPropertyValue() int {
	total := 0
	for _, b := range c.Buildings {
		total += EstimateBuildingValue(b)
	}
	return total
}

// AddObligation attaches a recurring payment.
func (c *City) AddObligation(o *Obligation) {
	c.Obligations = append(c.Obligations, o)
}

// SettleObligation records a paid month and drops finished loans.
func (c *City) SettleObligation(o *Obligation) {
	if o.Kind != LoanObligation {
		return
	}
	o.RemainingMonths--
	if o.RemainingMonths > 0 {
		return
	}
	kept := c.Obligations[:0]
	for _, x := range c.Obligations {
		if x != o {
			kept = append(kept, x)
		}
	}
	c.Obligations = kept
}

// MonthlyDebt sums the fixed loan instalments.
func (c *City) MonthlyDebt() int {
	total := 0
	for _, o := range c.Obligations {
		if o.Kind == LoanObligation {
			total += o.Due(0)
		}
	}
	return total
}

// Tick advances the city by a month: district drift, listing ageing, a
// market refresh every few months and the economy update. It returns the
// listings that came onto the market.
func (c *City) Tick(rng *rand.Rand, cfg config.CityConfig) []*PropertyListing {
	c.TotalMonths++
	for _, n := range c.Neighborhoods {
		n.Tick(rng)
	}
	c.Market.Tick(cfg)

	var added []*PropertyListing
	if cfg.MarketRefreshEvery > 0 && c.TotalMonths%cfg.MarketRefreshEvery == 0 {
		added = c.Market.Refresh(rng, c.Neighborhoods, cfg)
	}
	c.updateEconomy(rng, cfg)
	return added
}

// businessCycle samples smooth noise in [-1, 1] for the current month.
func (c *City) businessCycle(cfg config.CityConfig) float64 {
	if c.cycle == nil {
		c.cycle = opensimplex.NewNormalized(c.CycleSeed)
	}
	return c.cycle.Eval2(float64(c.TotalMonths)*cfg.BusinessCycleScale, 0)*2 - 1
}

func (c *City) updateEconomy(rng *rand.Rand, cfg config.CityConfig) {
	walk := float64(entropy.Between(rng, -5, 5)) / 100
	c.EconomyTrend = bounds.Clamp(c.EconomyTrend+walk, 0.5, 1.5)
	c.EconomyHealth = bounds.Clamp(c.EconomyTrend+c.businessCycle(cfg)*cfg.BusinessCycleAmp, 0.5, 1.5)

	target := 0.08 - (c.EconomyHealth-1.0)*0.05
	c.InterestRate = bounds.Clamp(c.InterestRate+(target-c.InterestRate)*0.1, 0.02, 0.15)
	c.InflationRate = (c.EconomyHealth - 0.7) * 0.05
}
