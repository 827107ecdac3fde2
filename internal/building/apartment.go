// Package building provides apartments, buildings, condo ownership and the
// upgrade actions a landlord can perform on them.
package building

import (
	"fmt"

	"github.com/talgya/tenement/internal/bounds"
)

// DesignType is the interior finish level. Levels are ordered.
type DesignType uint8

const (
	DesignBare      DesignType = iota
	DesignPractical
	DesignCozy
)

// AllDesigns lists designs from lowest to highest.
var AllDesigns = []DesignType{DesignBare, DesignPractical, DesignCozy}

func (d DesignType) String() string {
	switch d {
	case DesignPractical:
		return "Practical"
	case DesignCozy:
		return "Cozy"
	default:
		return "Bare"
	}
}

// Key is the lowercase name used in config tables.
func (d DesignType) Key() string {
	switch d {
	case DesignPractical:
		return "practical"
	case DesignCozy:
		return "cozy"
	default:
		return "bare"
	}
}

// AppealScore is the design contribution to apartment quality.
func (d DesignType) AppealScore() int {
	switch d {
	case DesignPractical:
		return 20
	case DesignCozy:
		return 40
	default:
		return 0
	}
}

// NextUpgrade returns the following level; false at Cozy.
func (d DesignType) NextUpgrade() (DesignType, bool) {
	if d >= DesignCozy {
		return d, false
	}
	return d + 1, true
}

// ParseDesign maps a config key to a design. An empty key is not a design.
func ParseDesign(key string) (DesignType, bool) {
	for _, d := range AllDesigns {
		if d.Key() == key {
			return d, true
		}
	}
	return DesignBare, false
}

// ApartmentSize is the floor-plan class.
type ApartmentSize uint8

const (
	SizeSmall ApartmentSize = iota
	SizeMedium
)

func (s ApartmentSize) String() string {
	if s == SizeMedium {
		return "Medium"
	}
	return "Small"
}

// Key is the lowercase name used in the base rent table.
func (s ApartmentSize) Key() string {
	if s == SizeMedium {
		return "medium"
	}
	return "small"
}

// SpaceBonus is the size contribution to apartment quality.
func (s ApartmentSize) SpaceBonus() int {
	if s == SizeMedium {
		return 15
	}
	return 0
}

// NoiseLevel is how loud a unit is.
type NoiseLevel uint8

const (
	NoiseLow NoiseLevel = iota
	NoiseHigh
)

func (n NoiseLevel) String() string {
	if n == NoiseHigh {
		return "High"
	}
	return "Low"
}

// Penalty is the noise contribution to apartment quality.
func (n NoiseLevel) Penalty() int {
	if n == NoiseHigh {
		return -20
	}
	return 0
}

// MaxKitchenLevel is Luxury. 0 is Basic, 1 Renovated.
const MaxKitchenLevel = 2

// Apartment is a single rentable unit.
type Apartment struct {
	ID               int           `json:"id"`
	UnitNumber       string        `json:"unit_number"`
	Floor            int           `json:"floor"`
	Condition        int           `json:"condition"` // 0–100
	Design           DesignType    `json:"design"`
	Size             ApartmentSize `json:"size"`
	BaseNoise        NoiseLevel    `json:"base_noise"` // street-facing, ground floor
	HasSoundproofing bool          `json:"has_soundproofing"`
	KitchenLevel     int           `json:"kitchen_level"`
	RentPrice        int           `json:"rent_price"`
	TenantID         *int          `json:"tenant_id,omitempty"`
	IsListed         bool          `json:"is_listed"`
	IsCondo          bool          `json:"is_condo"`
}

// NewApartment creates a bare, half-worn, listed unit at its base rent.
func NewApartment(id int, unit string, floor int, size ApartmentSize, noise NoiseLevel, baseRent int) *Apartment {
	return &Apartment{
		ID:         id,
		UnitNumber: unit,
		Floor:      floor,
		Condition:  50,
		Design:     DesignBare,
		Size:       size,
		BaseNoise:  noise,
		RentPrice:  baseRent,
		IsListed:   true,
	}
}

// EffectiveNoise accounts for soundproofing.
func (a *Apartment) EffectiveNoise() NoiseLevel {
	if a.HasSoundproofing {
		return NoiseLow
	}
	return a.BaseNoise
}

// QualityScore combines condition, design, noise, size and kitchen into 0–100.
func (a *Apartment) QualityScore() int {
	score := a.Condition +
		a.Design.AppealScore() +
		a.EffectiveNoise().Penalty() +
		a.Size.SpaceBonus() +
		a.KitchenLevel*15
	return bounds.Percent(score)
}

// Decay lowers condition, never below 0. Negative amounts do nothing.
func (a *Apartment) Decay(amount int) {
	if amount <= 0 {
		return
	}
	a.Condition = bounds.Percent(a.Condition - amount)
}

// Repair raises condition, never above 100. Negative amounts do nothing.
func (a *Apartment) Repair(amount int) {
	if amount <= 0 {
		return
	}
	a.Condition = bounds.Percent(a.Condition + amount)
}

// UpgradeDesign moves to the next design level. False at Cozy.
func (a *Apartment) UpgradeDesign() bool {
	next, ok := a.Design.NextUpgrade()
	if !ok {
		return false
	}
	a.Design = next
	return true
}

// AddSoundproofing installs soundproofing. False if already present.
func (a *Apartment) AddSoundproofing() bool {
	if a.HasSoundproofing {
		return false
	}
	a.HasSoundproofing = true
	return true
}

// UpgradeKitchen raises the kitchen one level. False at Luxury.
func (a *Apartment) UpgradeKitchen() bool {
	if a.KitchenLevel >= MaxKitchenLevel {
		return false
	}
	a.KitchenLevel++
	return true
}

// MoveIn records the tenant. Callers keep the tenant's side in sync.
func (a *Apartment) MoveIn(tenantID int) error {
	if a.IsCondo {
		return fmt.Errorf("unit %s is a condo: %w", a.UnitNumber, ErrNotApplicable)
	}
	if a.TenantID != nil {
		return fmt.Errorf("unit %s: %w", a.UnitNumber, ErrOccupied)
	}
	id := tenantID
	a.TenantID = &id
	return nil
}

// MoveOut clears the occupant and returns who left.
func (a *Apartment) MoveOut() (int, bool) {
	if a.TenantID == nil {
		return 0, false
	}
	id := *a.TenantID
	a.TenantID = nil
	return id, true
}

// IsVacant is true for empty rental units. Sold condos are never vacant.
func (a *Apartment) IsVacant() bool {
	return a.TenantID == nil && !a.IsCondo
}

// IsAvailable is a vacant unit that is listed for applicants.
func (a *Apartment) IsAvailable() bool {
	return a.IsVacant() && a.IsListed
}

// MarketValue is the condo sale price of the unit.
func (a *Apartment) MarketValue() int {
	v := a.RentPrice*20 + a.Condition*50 + a.Design.AppealScore()*100
	if a.HasSoundproofing {
		v += 2000
	}
	return v
}
