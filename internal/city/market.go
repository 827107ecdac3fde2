package city

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/entropy"
)

// ConditionClass grades a building for sale.
type ConditionClass uint8

const (
	Condemned ConditionClass = iota
	Poor
	Fair
	Good
	Excellent
)

func (c ConditionClass) String() string {
	switch c {
	case Condemned:
		return "Condemned"
	case Poor:
		return "Poor"
	case Good:
		return "Good"
	case Excellent:
		return "Excellent"
	}
	return "Fair"
}

func (c ConditionClass) PriceMultiplier() float64 {
	switch c {
	case Condemned:
		return 0.3
	case Poor:
		return 0.6
	case Good:
		return 1.3
	case Excellent:
		return 1.6
	}
	return 1.0
}

// StartingCondition is the apartment condition a class is built around.
func (c ConditionClass) StartingCondition() int {
	switch c {
	case Condemned:
		return 10
	case Poor:
		return 30
	case Good:
		return 70
	case Excellent:
		return 90
	}
	return 50
}

// classFromRoll maps a 0..99 roll onto the condition bands.
func classFromRoll(roll int) ConditionClass {
	switch {
	case roll <= 20:
		return Condemned
	case roll <= 40:
		return Poor
	case roll <= 70:
		return Fair
	case roll <= 90:
		return Good
	}
	return Excellent
}

// FinancingKind selects how a purchase is paid for.
type FinancingKind uint8

const (
	Cash FinancingKind = iota
	Mortgage
	Investor
)

// FinancingOption is one way to pay for a listing.
type FinancingOption struct {
	Kind               FinancingKind `json:"kind"`
	DownPaymentPercent float64       `json:"down_payment_percent,omitempty"`
	InterestRate       float64       `json:"interest_rate,omitempty"`
	TermMonths         int           `json:"term_months,omitempty"`
	InvestmentPercent  float64       `json:"investment_percent,omitempty"`
	ProfitSharePercent float64       `json:"profit_share_percent,omitempty"`
}

func (f FinancingOption) Name() string {
	switch f.Kind {
	case Mortgage:
		return "Bank Mortgage"
	case Investor:
		return "Investor Partner"
	}
	return "Cash Purchase"
}

func (f FinancingOption) Description() string {
	switch f.Kind {
	case Mortgage:
		return fmt.Sprintf("%.0f%% down, %.1f%% APR, %d month term", f.DownPaymentPercent*100, f.InterestRate*100, f.TermMonths)
	case Investor:
		return fmt.Sprintf("Investor covers %.0f%%, takes %.0f%% of profits", f.InvestmentPercent*100, f.ProfitSharePercent*100)
	}
	return "Pay the full amount upfront"
}

// UpfrontCost is what the buyer pays at closing.
func (f FinancingOption) UpfrontCost(price int) int {
	switch f.Kind {
	case Mortgage:
		return int(float64(price) * f.DownPaymentPercent)
	case Investor:
		return int(float64(price) * (1 - f.InvestmentPercent))
	}
	return price
}

// MonthlyPayment is the amortised mortgage instalment. Cash and investor
// deals have none.
func (f FinancingOption) MonthlyPayment(price int) int {
	if f.Kind != Mortgage || f.TermMonths <= 0 {
		return 0
	}
	principal := float64(price) * (1 - f.DownPaymentPercent)
	r := f.InterestRate / 12
	if r == 0 {
		return int(principal / float64(f.TermMonths))
	}
	growth := math.Pow(1+r, float64(f.TermMonths))
	return int(principal * r * growth / (growth - 1))
}

// PropertyListing is a building for sale.
type PropertyListing struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	NeighborhoodID  int               `json:"neighborhood_id"`
	Condition       ConditionClass    `json:"condition"`
	Floors          int               `json:"floors"`
	UnitsPerFloor   int               `json:"units_per_floor"`
	AskingPrice     int               `json:"asking_price"`
	ExistingTenants int               `json:"existing_tenants"`
	MonthsOnMarket  int               `json:"months_on_market"`
	Financing       []FinancingOption `json:"financing"`
	Notes           []string          `json:"notes,omitempty"`
}

func (l *PropertyListing) TotalUnits() int {
	return l.Floors * l.UnitsPerFloor
}

// Summary is a one-line description for listings output.
func (l *PropertyListing) Summary() string {
	return fmt.Sprintf("%s: %d units, %s, $%s", l.Name, l.TotalUnits(), l.Condition, humanize.Comma(int64(l.AskingPrice)))
}

// Tick ages the listing. After the grace period the price drops on every
// even month.
func (l *PropertyListing) Tick(cfg config.CityConfig) {
	l.MonthsOnMarket++
	if l.MonthsOnMarket > cfg.PriceDropAfter && l.MonthsOnMarket%2 == 0 {
		l.AskingPrice = int(float64(l.AskingPrice) * cfg.PriceDropRate)
	}
}

var (
	namePrefixes = map[NeighborhoodType][]string{
		Downtown:   {"Metro", "City", "Central", "Tower", "Urban", "Sky"},
		Suburbs:    {"Green", "Oak", "Maple", "Willow", "Pine", "Garden"},
		Industrial: {"Brick", "Steel", "Dock", "Foundry", "Mill", "Factory"},
		Historic:   {"Heritage", "Colonial", "Victorian", "Classic", "Grand", "Royal"},
	}
	nameSuffixes = []string{"Apartments", "Place", "Court", "Terrace", "Manor", "House", "Arms", "Lodge"}
)

func buildingName(rng *rand.Rand, t NeighborhoodType) string {
	prefix, ok := entropy.Pick(rng, namePrefixes[t])
	if !ok {
		prefix = "The"
	}
	suffix, _ := entropy.Pick(rng, nameSuffixes)
	return prefix + " " + suffix
}

// GenerateListing builds a random listing priced for n.
func GenerateListing(rng *rand.Rand, id int, n *Neighborhood, cfg config.CityConfig) *PropertyListing {
	l := &PropertyListing{
		ID:             id,
		NeighborhoodID: n.ID,
		Floors:         entropy.Between(rng, 2, 4),
		UnitsPerFloor:  entropy.Between(rng, 2, 3),
		Condition:      classFromRoll(rng.Intn(100)),
	}
	l.AskingPrice = int(float64(cfg.BaseUnitPrices[n.Type.Key()]) *
		float64(l.TotalUnits()) *
		l.Condition.PriceMultiplier() *
		n.Stats.RentDemand)

	if l.Condition != Condemned {
		l.ExistingTenants = entropy.Between(rng, 0, l.TotalUnits()/2)
	}
	l.Name = buildingName(rng, n.Type)

	l.Financing = []FinancingOption{{Kind: Cash}}
	if m := cfg.Mortgage; l.AskingPrice > m.MinPrice {
		l.Financing = append(l.Financing, FinancingOption{
			Kind:               Mortgage,
			DownPaymentPercent: m.DownPaymentPercent,
			InterestRate:       m.InterestRate,
			TermMonths:         m.TermMonths,
		})
	}
	if inv := cfg.Investor; l.AskingPrice > inv.MinPrice {
		l.Financing = append(l.Financing, FinancingOption{
			Kind:               Investor,
			InvestmentPercent:  inv.InvestmentPercent,
			ProfitSharePercent: inv.ProfitSharePercent,
		})
	}

	if l.Condition == Condemned {
		l.Notes = append(l.Notes, "Major renovation required")
	}
	if l.ExistingTenants > 0 {
		l.Notes = append(l.Notes, fmt.Sprintf("%d existing tenants with leases", l.ExistingTenants))
	}
	if n.Type == Historic {
		l.Notes = append(l.Notes, "Historic preservation restrictions apply")
	}
	if n.Stats.Gentrification > 70 {
		l.Notes = append(l.Notes, "Area rapidly gentrifying")
	}
	return l
}

// ToBuilding materialises the listing. Apartments scatter ±10 around the
// class's starting condition; the hallway sits exactly on it.
func (l *PropertyListing) ToBuilding(rng *rand.Rand, id int, baseRent map[string]int) *building.Building {
	b := building.New(id, l.Name, l.Floors, l.UnitsPerFloor, baseRent)
	target := l.Condition.StartingCondition()
	for _, a := range b.Apartments {
		a.Condition = bounds.Percent(target + entropy.Between(rng, -10, 10))
	}
	b.HallwayCondition = target
	return b
}

// PropertyMarket holds the current listings.
type PropertyMarket struct {
	Listings      []*PropertyListing `json:"listings"`
	NextListingID int                `json:"next_listing_id"`
}

func NewPropertyMarket() *PropertyMarket {
	return &PropertyMarket{}
}

// Refresh adds one or two listings, each in a random district with a free
// slot, then trims the oldest beyond the cap.
func (m *PropertyMarket) Refresh(rng *rand.Rand, neighborhoods []*Neighborhood, cfg config.CityConfig) []*PropertyListing {
	var open []*Neighborhood
	for _, n := range neighborhoods {
		if n.CanAddBuilding() {
			open = append(open, n)
		}
	}

	var added []*PropertyListing
	count := entropy.Between(rng, 1, 2)
	for i := 0; i < count; i++ {
		n, ok := entropy.Pick(rng, open)
		if !ok {
			break
		}
		l := GenerateListing(rng, m.NextListingID, n, cfg)
		m.NextListingID++
		m.Listings = append(m.Listings, l)
		added = append(added, l)
	}

	if over := len(m.Listings) - cfg.MaxListings; over > 0 {
		m.Listings = m.Listings[over:]
	}
	return added
}

// Tick ages every listing and drops the stale ones.
func (m *PropertyMarket) Tick(cfg config.CityConfig) {
	kept := m.Listings[:0]
	for _, l := range m.Listings {
		l.Tick(cfg)
		if l.MonthsOnMarket < cfg.ListingMaxAge {
			kept = append(kept, l)
		}
	}
	m.Listings = kept
}

func (m *PropertyMarket) Listing(id int) (*PropertyListing, bool) {
	for _, l := range m.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Remove takes a sold listing off the market.
func (m *PropertyMarket) Remove(id int) bool {
	for i, l := range m.Listings {
		if l.ID == id {
			m.Listings = append(m.Listings[:i], m.Listings[i+1:]...)
			return true
		}
	}
	return false
}

// ForNeighborhood lists the listings in one district.
func (m *PropertyMarket) ForNeighborhood(id int) []*PropertyListing {
	var out []*PropertyListing
	for _, l := range m.Listings {
		if l.NeighborhoodID == id {
			out = append(out, l)
		}
	}
	return out
}
