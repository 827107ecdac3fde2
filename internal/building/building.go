package building

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every layer that validates player intents.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotApplicable = errors.New("not applicable")
	ErrOccupied      = errors.New("unit occupied")
)

// MarketingType is the active advertising campaign. Values double as config keys.
type MarketingType string

const (
	MarketingNone           MarketingType = "none"
	MarketingSocialMedia    MarketingType = "social_media"
	MarketingLocalNewspaper MarketingType = "local_newspaper"
	MarketingPremiumAgency  MarketingType = "premium_agency"
)

// AllMarketing lists campaigns in display order.
var AllMarketing = []MarketingType{MarketingNone, MarketingSocialMedia, MarketingLocalNewspaper, MarketingPremiumAgency}

// Label is the display name of a campaign.
func (m MarketingType) Label() string {
	switch m {
	case MarketingSocialMedia:
		return "Social Media"
	case MarketingLocalNewspaper:
		return "Local Newspaper"
	case MarketingPremiumAgency:
		return "Premium Agency"
	default:
		return "None"
	}
}

// ParseMarketing validates a campaign key.
func ParseMarketing(key string) (MarketingType, bool) {
	for _, m := range AllMarketing {
		if string(m) == key {
			return m, true
		}
	}
	return MarketingNone, false
}

// StaffRole is a hireable position. Values double as config keys.
type StaffRole string

const (
	StaffJanitor  StaffRole = "janitor"
	StaffSecurity StaffRole = "security"
	StaffManager  StaffRole = "manager"
)

// AllStaff lists roles in payroll order.
var AllStaff = []StaffRole{StaffJanitor, StaffSecurity, StaffManager}

// ParseStaff validates a role key.
func ParseStaff(key string) (StaffRole, bool) {
	for _, r := range AllStaff {
		if string(r) == key {
			return r, true
		}
	}
	return "", false
}

// Staff records which roles are on payroll.
type Staff struct {
	Janitor  bool `json:"janitor"`
	Security bool `json:"security"`
	Manager  bool `json:"manager"`
}

// Has reports whether the role is employed.
func (s Staff) Has(r StaffRole) bool {
	switch r {
	case StaffJanitor:
		return s.Janitor
	case StaffSecurity:
		return s.Security
	case StaffManager:
		return s.Manager
	}
	return false
}

// Set hires or fires a role.
func (s *Staff) Set(r StaffRole, on bool) {
	switch r {
	case StaffJanitor:
		s.Janitor = on
	case StaffSecurity:
		s.Security = on
	case StaffManager:
		s.Manager = on
	}
}

// Employed lists hired roles in payroll order.
func (s Staff) Employed() []StaffRole {
	var out []StaffRole
	for _, r := range AllStaff {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Building is a set of apartments sharing a hallway, amenities and staff.
type Building struct {
	ID                 int           `json:"id"`
	Name               string        `json:"name"`
	Apartments         []*Apartment  `json:"apartments"`
	HallwayCondition   int           `json:"hallway_condition"`
	HasLaundry         bool          `json:"has_laundry"`
	Marketing          MarketingType `json:"marketing"`
	OpenHouseRemaining int           `json:"open_house_remaining"`
	Staff              Staff         `json:"staff"`
	Ownership          Ownership     `json:"ownership"`
}

// New builds floors×unitsPerFloor apartments with ids from 0. Sizes alternate;
// ground-floor and street-facing (A) units are noisy.
func New(id int, name string, floors, unitsPerFloor int, baseRent map[string]int) *Building {
	b := &Building{
		ID:               id,
		Name:             name,
		HallwayCondition: 60,
		Marketing:        MarketingNone,
	}

	aptID := 0
	for floor := 1; floor <= floors; floor++ {
		for unit := 0; unit < unitsPerFloor; unit++ {
			size := SizeMedium
			if (floor+unit)%2 == 0 {
				size = SizeSmall
			}
			noise := NoiseLow
			if floor == 1 || unit == 0 {
				noise = NoiseHigh
			}
			number := fmt.Sprintf("%d%c", floor, rune('A'+unit))
			b.Apartments = append(b.Apartments, NewApartment(aptID, number, floor, size, noise, baseRent[size.Key()]))
			aptID++
		}
	}
	return b
}

// Apartment looks up a unit by id.
func (b *Building) Apartment(id int) (*Apartment, bool) {
	for _, a := range b.Apartments {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// ApartmentOf finds the unit a tenant lives in.
func (b *Building) ApartmentOf(tenantID int) (*Apartment, bool) {
	for _, a := range b.Apartments {
		if a.TenantID != nil && *a.TenantID == tenantID {
			return a, true
		}
	}
	return nil, false
}

// Vacant returns empty rental units in id order.
func (b *Building) Vacant() []*Apartment {
	var out []*Apartment
	for _, a := range b.Apartments {
		if a.IsVacant() {
			out = append(out, a)
		}
	}
	return out
}

// Available returns vacant, listed units in id order.
func (b *Building) Available() []*Apartment {
	var out []*Apartment
	for _, a := range b.Apartments {
		if a.IsAvailable() {
			out = append(out, a)
		}
	}
	return out
}

func (b *Building) VacancyCount() int {
	n := 0
	for _, a := range b.Apartments {
		if a.IsVacant() {
			n++
		}
	}
	return n
}

func (b *Building) OccupiedCount() int {
	n := 0
	for _, a := range b.Apartments {
		if a.TenantID != nil {
			n++
		}
	}
	return n
}

// AverageCondition is the integer mean over all units; 0 for an empty building.
func (b *Building) AverageCondition() int {
	if len(b.Apartments) == 0 {
		return 0
	}
	total := 0
	for _, a := range b.Apartments {
		total += a.Condition
	}
	return total / len(b.Apartments)
}

// AverageRent is the integer mean asking rent over all units.
func (b *Building) AverageRent() int {
	if len(b.Apartments) == 0 {
		return 0
	}
	total := 0
	for _, a := range b.Apartments {
		total += a.RentPrice
	}
	return total / len(b.Apartments)
}

// Appeal drives application volume: half the hallway plus half the average
// unit condition, +10 with laundry, capped at 100.
func (b *Building) Appeal() int {
	score := b.HallwayCondition/2 + b.AverageCondition()/2
	if b.HasLaundry {
		score += 10
	}
	return min(score, 100)
}

// RepairHallway raises the hallway, never above 100.
func (b *Building) RepairHallway(amount int) {
	if amount <= 0 {
		return
	}
	b.HallwayCondition = min(b.HallwayCondition+amount, 100)
}

// DecayHallway lowers the hallway, never below 0.
func (b *Building) DecayHallway(amount int) {
	if amount <= 0 {
		return
	}
	b.HallwayCondition = max(b.HallwayCondition-amount, 0)
}

// ApplyMonthlyDecay wears every unit and the hallway.
func (b *Building) ApplyMonthlyDecay(apartmentRate, hallwayRate int) {
	for _, a := range b.Apartments {
		a.Decay(apartmentRate)
	}
	b.DecayHallway(hallwayRate)
}

// TotalRent is the asking rent of every occupied unit.
func (b *Building) TotalRent() int {
	total := 0
	for _, a := range b.Apartments {
		if a.TenantID != nil {
			total += a.RentPrice
		}
	}
	return total
}
