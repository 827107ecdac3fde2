package tenant

import (
	"fmt"
	"math/rand"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/entropy"
)

var lastInitials = []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P", "R", "S", "T", "W"}

// Tenant is a renter, either housed or still applying.
type Tenant struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Archetype      Archetype `json:"archetype"`
	Happiness      int       `json:"happiness"` // 0–100
	MonthsResiding int       `json:"months_residing"`
	BuildingID     int       `json:"building_id"`
	ApartmentID    *int      `json:"apartment_id,omitempty"`

	RentTolerance  int `json:"rent_tolerance"`  // max rent they will sign for
	NoiseTolerance int `json:"noise_tolerance"` // 0–100, higher copes better

	// Hidden until vetted.
	RentReliability int `json:"rent_reliability"`
	BehaviorScore   int `json:"behavior_score"`

	LandlordOpinion int `json:"landlord_opinion"` // -100..100
}

// New builds a tenant with the archetype's baseline stats.
func New(id int, name string, a Archetype, p Profile, happiness int) *Tenant {
	noise := 70
	if p.PrefersQuiet {
		noise = 30
	}
	return &Tenant{
		ID:              id,
		Name:            name,
		Archetype:       a,
		Happiness:       happiness,
		RentTolerance:   p.IdealRentMax,
		NoiseTolerance:  noise,
		RentReliability: p.BaseReliability,
		BehaviorScore:   p.BaseBehavior,
	}
}

// Generate rolls a fresh applicant: ±15% on tolerances, ±20% on the hidden
// stats and a small random opinion of the landlord.
func Generate(rng *rand.Rand, id int, a Archetype, p Profile, happiness int) *Tenant {
	t := New(id, randomName(rng, p.Names), a, p, happiness)

	t.RentTolerance += spread(rng, int(float64(t.RentTolerance)*0.15))
	t.NoiseTolerance = bounds.Percent(t.NoiseTolerance + spread(rng, int(float64(t.NoiseTolerance)*0.15)))
	t.LandlordOpinion = entropy.Between(rng, -5, 5)
	t.RentReliability = bounds.Percent(t.RentReliability + spread(rng, int(float64(t.RentReliability)*0.2)))
	t.BehaviorScore = bounds.Percent(t.BehaviorScore + spread(rng, int(float64(t.BehaviorScore)*0.2)))
	return t
}

// spread returns a value in [-v, v).
func spread(rng *rand.Rand, v int) int {
	if v <= 0 {
		return 0
	}
	return rng.Intn(2*v) - v
}

func randomName(rng *rand.Rand, pool []string) string {
	first, ok := entropy.Pick(rng, pool)
	if !ok {
		first = "Pat"
	}
	last, _ := entropy.Pick(rng, lastInitials)
	return fmt.Sprintf("%s %s.", first, last)
}

// IsHoused reports whether the tenant holds a lease.
func (t *Tenant) IsHoused() bool {
	return t.ApartmentID != nil
}

// IsUnhappy is the early-warning band below threshold.
func (t *Tenant) IsUnhappy(threshold int) bool {
	return t.Happiness < threshold
}

// WillLeave is true only at exactly zero happiness.
func (t *Tenant) WillLeave() bool {
	return t.Happiness == 0
}

// SetHappiness stores a clamped value.
func (t *Tenant) SetHappiness(h int) {
	t.Happiness = bounds.Percent(h)
}

func (t *Tenant) AddMonth() {
	t.MonthsResiding++
}

// MoveInto starts a lease. Use SignLease so the apartment side stays in sync.
func (t *Tenant) MoveInto(buildingID, aptID int) {
	id := aptID
	t.BuildingID = buildingID
	t.ApartmentID = &id
	t.MonthsResiding = 0
}

// MoveOut ends the tenant's side of a lease.
func (t *Tenant) MoveOut() {
	t.ApartmentID = nil
}

// NegotiationLeverage grows with loyalty and with a poor opinion of the landlord.
func (t *Tenant) NegotiationLeverage() int {
	loyalty := min(t.MonthsResiding, 24)
	return bounds.Percent(loyalty - t.LandlordOpinion/5)
}
