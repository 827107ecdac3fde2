package tenant

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/entropy"
)

// Application is a prospective tenant's request for one apartment.
type Application struct {
	Tenant              *Tenant     `json:"tenant"`
	BuildingID          int         `json:"building_id"`
	ApartmentID         int         `json:"apartment_id"`
	Match               MatchResult `json:"match"`
	CreatedTick         uint64      `json:"created_tick"`
	RevealedReliability bool        `json:"revealed_reliability"`
	RevealedBehavior    bool        `json:"revealed_behavior"`
}

// IsExpired reports whether the application is older than the expiry window.
func (a *Application) IsExpired(now uint64, expireAfter int) bool {
	return now > a.CreatedTick+uint64(expireAfter)
}

// PurgeExpired drops stale applications, keeping order.
func PurgeExpired(apps []*Application, now uint64, expireAfter int) ([]*Application, int) {
	kept := apps[:0]
	for _, a := range apps {
		if !a.IsExpired(now, expireAfter) {
			kept = append(kept, a)
		}
	}
	return kept, len(apps) - len(kept)
}

func duplicate(apps []*Application, buildingID, aptID int, a Archetype) bool {
	for _, app := range apps {
		if app.BuildingID == buildingID && app.ApartmentID == aptID && app.Tenant.Archetype == a {
			return true
		}
	}
	return false
}

// ApplicationTarget is how many applicants a building attracts this month:
// ceil(vacancies×base) + appeal/divisor, scaled by marketing and open house,
// then clamped to [1, vacancies]. Neighbourhood demand only counts when
// ScaleByDemand is set. Zero when nothing is available.
func ApplicationTarget(b *building.Building, rentDemand float64, cfg *config.Config) int {
	vacancies := len(b.Available())
	if vacancies == 0 {
		return 0
	}
	ac := cfg.Applications

	target := math.Ceil(float64(vacancies)*ac.BasePerVacancy) + float64(b.Appeal()/max(ac.AppealBonusDivisor, 1))
	if mult, ok := ac.MarketingMultipliers[string(b.Marketing)]; ok {
		target *= mult
	}
	if b.OpenHouseRemaining > 0 {
		target *= ac.OpenHouseMultiplier
	}
	if ac.ScaleByDemand && rentDemand > 0 {
		target *= rentDemand
	}
	return min(max(int(target), 1), vacancies)
}

// PickArchetype draws an applicant archetype using the campaign's weights.
func PickArchetype(rng *rand.Rand, m building.MarketingType, cfg *config.Config) Archetype {
	weights := cfg.Marketing.Weights[string(m)]
	if len(weights) == 0 {
		weights = cfg.Marketing.Weights[string(building.MarketingNone)]
	}
	w := make(map[Archetype]int, len(weights))
	for k, v := range weights {
		w[Archetype(k)] = v
	}
	if a, ok := entropy.Weighted(rng, AllArchetypes, w); ok {
		return a
	}
	return Student
}

// GenerateApplications produces this month's new applicants for b. Each draw
// consumes a tenant id; draws with no acceptable unit, or duplicating a
// pending (building, apartment, archetype) triple, are discarded.
func GenerateApplications(rng *rand.Rand, b *building.Building, existing []*Application, tick uint64, nextID *int, rentDemand float64, cfg *config.Config) []*Application {
	target := ApplicationTarget(b, rentDemand, cfg)
	if target == 0 {
		return nil
	}

	available := b.Available()
	var out []*Application
	for i := 0; i < target; i++ {
		arch := PickArchetype(rng, b.Marketing, cfg)
		t := Generate(rng, *nextID, arch, ProfileFor(cfg, arch), cfg.Happiness.Starting)
		*nextID++

		apt, match, ok := FindBestMatch(t, available, cfg)
		if !ok {
			continue
		}
		if duplicate(existing, b.ID, apt.ID, arch) || duplicate(out, b.ID, apt.ID, arch) {
			continue
		}
		out = append(out, &Application{
			Tenant:      t,
			BuildingID:  b.ID,
			ApartmentID: apt.ID,
			Match:       match,
			CreatedTick: tick,
		})
	}
	return out
}

// Departure is a tenant who left this month.
type Departure struct {
	Tenant      *Tenant
	BuildingID  int
	ApartmentID int
	RentPrice   int
}

// ApartmentLookup resolves a tenant's home.
type ApartmentLookup func(t *Tenant) (*building.Apartment, bool)

// ProcessDepartures removes tenants at zero happiness, vacating both sides of
// the lease, and warns about the merely unhappy.
func ProcessDepartures(tenants []*Tenant, lookup ApartmentLookup, unhappyBelow int) ([]*Tenant, []Departure, []string) {
	var (
		kept     = tenants[:0]
		departed []Departure
		notes    []string
	)
	for _, t := range tenants {
		if !t.WillLeave() {
			if t.IsHoused() && t.IsUnhappy(unhappyBelow) {
				notes = append(notes, fmt.Sprintf("%s is unhappy and may leave soon!", t.Name))
			}
			kept = append(kept, t)
			continue
		}

		d := Departure{Tenant: t, BuildingID: t.BuildingID}
		apt, ok := lookup(t)
		if ok {
			d.ApartmentID = apt.ID
			d.RentPrice = apt.RentPrice
		}
		EndLease(t, apt)
		departed = append(departed, d)
		notes = append(notes, fmt.Sprintf("%s has moved out!", t.Name))
	}
	return kept, departed, notes
}
