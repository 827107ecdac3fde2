package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/city"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/consequences"
	"github.com/talgya/tenement/internal/economy"
	"github.com/talgya/tenement/internal/entropy"
	"github.com/talgya/tenement/internal/tenant"
)

// Simulation holds the complete campaign state. Everything exported is
// persisted; config, randomness and the intent queue are rebuilt by Restore.
type Simulation struct {
	Seed            int64                               `json:"seed"`
	LastTick        uint64                              `json:"tick"` // Last month processed
	City            *city.City                          `json:"city"`
	Tenants         []*tenant.Tenant                    `json:"tenants"`
	Applications    []*tenant.Application               `json:"applications"`
	Funds           *economy.PlayerFunds                `json:"funds"`
	Ledger          *economy.Ledger                     `json:"ledger"`
	Events          []Event                             `json:"events"`
	NextTenantID    int                                 `json:"next_tenant_id"`
	Compliance      *consequences.ComplianceSystem      `json:"compliance"`
	Network         *consequences.TenantNetwork         `json:"network"`
	Gentrification  *consequences.GentrificationTracker `json:"gentrification"`
	WasEverOccupied bool                                `json:"was_ever_occupied"`
	Outcome         *Outcome                            `json:"outcome,omitempty"`
	Stats           SimStats                            `json:"stats"`

	cfg   *config.Config
	rng   *rand.Rand
	queue []Intent
}

// SimStats is the headline summary refreshed every month.
type SimStats struct {
	Buildings     int `json:"buildings"`
	Units         int `json:"units"`
	Tenants       int `json:"tenants"`
	Vacancies     int `json:"vacancies"`
	AvgHappiness  int `json:"avg_happiness"`
	Balance       int `json:"balance"`
	PropertyValue int `json:"property_value"`
	Reputation    int `json:"reputation"`
}

// NewSimulation starts a campaign with the configured starter building and a
// first batch of applicants. Seed 0 picks one from the clock; the chosen seed
// is kept so the campaign can be replayed.
func NewSimulation(cfg *config.Config, seed int64) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	st := cfg.Starting

	s := &Simulation{
		Seed:           seed,
		City:           city.NewCity(st.CityName, seed, cfg.City),
		Funds:          economy.NewFunds(st.PlayerMoney),
		Ledger:         &economy.Ledger{},
		NextTenantID:   1,
		Compliance:     consequences.NewComplianceSystem(cfg.Compliance),
		Network:        consequences.NewTenantNetwork(),
		Gentrification: consequences.NewGentrificationTracker(),
		cfg:            cfg,
	}
	s.reseed(0)

	b := building.New(0, st.BuildingName, st.Floors, st.UnitsPerFloor, cfg.Economy.BaseRent)
	id, err := s.City.AddBuilding(b, st.Neighborhood)
	if err != nil {
		return nil, fmt.Errorf("place starter building: %w", err)
	}
	n, _ := s.City.Neighborhood(st.Neighborhood)
	s.Compliance.InitBuilding(id, n.Type.Key(), cfg.Compliance)

	s.City.Market.Refresh(s.rng, s.City.Neighborhoods, cfg.City)
	for _, b := range s.City.Buildings {
		apps := tenant.GenerateApplications(s.rng, b, s.Applications, 0, &s.NextTenantID, s.City.RentDemand(b.ID), cfg)
		s.Applications = append(s.Applications, apps...)
	}
	s.updateStats()

	slog.Info("campaign created",
		"seed", seed,
		"city", s.City.Name,
		"building", b.Name,
		"neighborhood", n.Name,
		"units", len(b.Apartments),
		"applications", len(s.Applications),
	)
	return s, nil
}

// Restore reattaches config and randomness after the state was decoded.
func (s *Simulation) Restore(cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}
	s.cfg = cfg
	if s.Ledger == nil {
		s.Ledger = &economy.Ledger{}
	}
	if s.Compliance == nil {
		s.Compliance = consequences.NewComplianceSystem(cfg.Compliance)
	}
	if s.Network == nil {
		s.Network = consequences.NewTenantNetwork()
	}
	if s.Gentrification == nil {
		s.Gentrification = consequences.NewGentrificationTracker()
	}
	s.queue = nil
	s.reseed(s.LastTick)
}

// Config returns the tuning the simulation runs with.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// reseed derives the generator for a month from the campaign seed, so a
// month's draws depend only on the state it starts from.
func (s *Simulation) reseed(tick uint64) {
	seed := s.Seed + int64(tick)*1_000_003
	if seed == 0 {
		seed = 1
	}
	s.rng = entropy.NewSource(seed)
}

// Ended reports whether the campaign has an outcome.
func (s *Simulation) Ended() bool {
	return s.Outcome != nil
}

// month is the month in progress, the one player actions are booked against.
func (s *Simulation) month() uint64 {
	return s.LastTick + 1
}

func (s *Simulation) Building(id int) (*building.Building, bool) {
	return s.City.Building(id)
}

// Tenant finds a housed tenant.
func (s *Simulation) Tenant(id int) (*tenant.Tenant, bool) {
	for _, t := range s.Tenants {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// lookup resolves a tenant's apartment through the city.
func (s *Simulation) lookup(t *tenant.Tenant) (*building.Apartment, bool) {
	return economy.Lookup(s.City.Building)(t)
}

// Residents lists the housed tenants of a building in roster order.
func (s *Simulation) Residents(buildingID int) []*tenant.Tenant {
	var out []*tenant.Tenant
	for _, t := range s.Tenants {
		if t.IsHoused() && t.BuildingID == buildingID {
			out = append(out, t)
		}
	}
	return out
}

// ApplicationsFor lists pending applications for a building.
func (s *Simulation) ApplicationsFor(buildingID int) []*tenant.Application {
	var out []*tenant.Application
	for _, a := range s.Applications {
		if a.BuildingID == buildingID {
			out = append(out, a)
		}
	}
	return out
}

// removeTenant drops a tenant from the roster. The lease must already be ended.
func (s *Simulation) removeTenant(id int) {
	s.Tenants = slices.DeleteFunc(s.Tenants, func(t *tenant.Tenant) bool { return t.ID == id })
}

// dropApplicationsFor discards pending applications for an apartment.
func (s *Simulation) dropApplicationsFor(buildingID, aptID int) {
	s.Applications = slices.DeleteFunc(s.Applications, func(a *tenant.Application) bool {
		return a.BuildingID == buildingID && a.ApartmentID == aptID
	})
}

// Vacancies counts rentable empty units across every building.
func (s *Simulation) Vacancies() int {
	n := 0
	for _, b := range s.City.Buildings {
		n += b.VacancyCount()
	}
	return n
}

// Standing captures what the win/loss rules evaluate.
func (s *Simulation) Standing() Standing {
	st := Standing{
		Tick:            s.LastTick,
		Balance:         s.Funds.Balance,
		TotalIncome:     s.Funds.TotalIncome,
		Vacancies:       s.Vacancies(),
		WasEverOccupied: s.WasEverOccupied,
	}
	for _, t := range s.Tenants {
		if t.IsHoused() {
			st.Happiness = append(st.Happiness, t.Happiness)
		}
	}
	return st
}

func (s *Simulation) updateStats() {
	st := SimStats{
		Buildings:     len(s.City.Buildings),
		Balance:       s.Funds.Balance,
		PropertyValue: s.City.TotalPropertyValue(),
		Reputation:    s.Compliance.Reputation,
	}
	for _, b := range s.City.Buildings {
		st.Units += len(b.Apartments)
		st.Vacancies += b.VacancyCount()
	}
	total := 0
	for _, t := range s.Tenants {
		if t.IsHoused() {
			st.Tenants++
			total += t.Happiness
		}
	}
	if st.Tenants > 0 {
		st.AvgHappiness = total / st.Tenants
	}
	s.Stats = st
}
