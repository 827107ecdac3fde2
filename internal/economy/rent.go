package economy

import (
	"fmt"
	"math/rand"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/entropy"
	"github.com/talgya/tenement/internal/tenant"
)

// RentPayment is one tenant's paid or missed rent.
type RentPayment struct {
	TenantID   int
	TenantName string
	BuildingID int
	Unit       string
	Amount     int
}

// RentCollection is the outcome of one month's collection.
type RentCollection struct {
	Total      int
	ByBuilding map[int]int
	Payments   []RentPayment
	Missed     []RentPayment
}

// CollectRent bills every housed tenant in roster order. Very unhappy tenants
// may skip the month.
func CollectRent(rng *rand.Rand, tenants []*tenant.Tenant, lookup tenant.ApartmentLookup, funds *PlayerFunds, tick uint64, cfg *config.Config) RentCollection {
	rc := RentCollection{ByBuilding: make(map[int]int)}
	ec := cfg.Economy

	for _, t := range tenants {
		if !t.IsHoused() {
			continue
		}
		apt, ok := lookup(t)
		if !ok {
			continue
		}
		p := RentPayment{TenantID: t.ID, TenantName: t.Name, BuildingID: t.BuildingID, Unit: apt.UnitNumber, Amount: apt.RentPrice}

		if t.Happiness < ec.MissedRentHappiness && entropy.Percent(rng, ec.MissedRentChance) {
			rc.Missed = append(rc.Missed, p)
			continue
		}

		funds.AddIncome(Income(RentIncome, apt.RentPrice, fmt.Sprintf("Rent from %s (Unit %s)", t.Name, apt.UnitNumber), tick))
		rc.Payments = append(rc.Payments, p)
		rc.Total += apt.RentPrice
		rc.ByBuilding[t.BuildingID] += apt.RentPrice
	}
	return rc
}

// Lookup adapts a set of buildings into a tenant.ApartmentLookup.
func Lookup(buildings func(id int) (*building.Building, bool)) tenant.ApartmentLookup {
	return func(t *tenant.Tenant) (*building.Apartment, bool) {
		if t.ApartmentID == nil {
			return nil, false
		}
		b, ok := buildings(t.BuildingID)
		if !ok {
			return nil, false
		}
		return b.Apartment(*t.ApartmentID)
	}
}
