package building

import "fmt"

// OwnershipType describes who owns the units of a building.
type OwnershipType uint8

const (
	FullRental     OwnershipType = iota // landlord owns and rents every unit
	MixedOwnership                      // some units sold as condos
	FullCondo                           // every unit sold; landlord manages
)

func (o OwnershipType) String() string {
	switch o {
	case MixedOwnership:
		return "Mixed Ownership"
	case FullCondo:
		return "Full Condo"
	default:
		return "Full Rental"
	}
}

// CondoUnit is a sold apartment.
type CondoUnit struct {
	ApartmentID   int    `json:"apartment_id"`
	OwnerName     string `json:"owner_name"`
	MonthlyHOA    int    `json:"monthly_hoa"`
	PurchasePrice int    `json:"purchase_price"`
	Satisfaction  int    `json:"owner_satisfaction"`
}

// CondoBoard is the owners' association. HOA fees go to its reserve, not
// to the landlord.
type CondoBoard struct {
	Units       []CondoUnit `json:"units"`
	ReserveFund int         `json:"reserve_fund"`
}

// Ownership is the building's ownership model and its board.
type Ownership struct {
	Type  OwnershipType `json:"type"`
	Board CondoBoard    `json:"board"`
}

// Unit finds the condo record for an apartment.
func (o *Ownership) Unit(aptID int) (CondoUnit, bool) {
	for _, u := range o.Board.Units {
		if u.ApartmentID == aptID {
			return u, true
		}
	}
	return CondoUnit{}, false
}

// Convertible returns the rental unit aptID if it could be sold as a condo
// once vacated. Nothing is changed.
func (b *Building) Convertible(aptID int) (*Apartment, error) {
	apt, ok := b.Apartment(aptID)
	if !ok {
		return nil, fmt.Errorf("apartment %d: %w", aptID, ErrNotFound)
	}
	if apt.IsCondo {
		return nil, fmt.Errorf("unit %s already sold: %w", apt.UnitNumber, ErrNotApplicable)
	}
	return apt, nil
}

// ConvertToCondo sells a vacant rental unit. The apartment leaves the rental pool.
func (b *Building) ConvertToCondo(aptID int, owner string, price, hoa int) error {
	apt, err := b.Convertible(aptID)
	if err != nil {
		return err
	}
	if apt.TenantID != nil {
		return fmt.Errorf("unit %s: %w", apt.UnitNumber, ErrOccupied)
	}

	apt.IsCondo = true
	apt.IsListed = false
	b.Ownership.Board.Units = append(b.Ownership.Board.Units, CondoUnit{
		ApartmentID:   aptID,
		OwnerName:     owner,
		MonthlyHOA:    hoa,
		PurchasePrice: price,
		Satisfaction:  50,
	})
	b.refreshOwnership()
	return nil
}

// BuybackPrice quotes returning a sold unit to the rental pool: the original
// sale price times markup.
func (b *Building) BuybackPrice(aptID int, markup float64) (int, error) {
	idx := -1
	for i, u := range b.Ownership.Board.Units {
		if u.ApartmentID == aptID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("apartment %d is not a condo: %w", aptID, ErrNotFound)
	}
	return int(float64(b.Ownership.Board.Units[idx].PurchasePrice) * markup), nil
}

// BuybackCondo removes the condo record once the landlord has paid and
// relists the unit.
func (b *Building) BuybackCondo(aptID int) {
	units := b.Ownership.Board.Units[:0]
	for _, u := range b.Ownership.Board.Units {
		if u.ApartmentID != aptID {
			units = append(units, u)
		}
	}
	b.Ownership.Board.Units = units
	if apt, ok := b.Apartment(aptID); ok {
		apt.IsCondo = false
		apt.IsListed = true
	}
	b.refreshOwnership()
}

// CollectHOA moves each owner's monthly fee into the board reserve.
func (b *Building) CollectHOA() int {
	total := 0
	for _, u := range b.Ownership.Board.Units {
		total += u.MonthlyHOA
	}
	b.Ownership.Board.ReserveFund += total
	return total
}

func (b *Building) refreshOwnership() {
	switch sold := len(b.Ownership.Board.Units); {
	case sold == 0:
		b.Ownership.Type = FullRental
	case sold >= len(b.Apartments):
		b.Ownership.Type = FullCondo
	default:
		b.Ownership.Type = MixedOwnership
	}
}
