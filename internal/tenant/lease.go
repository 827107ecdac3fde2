package tenant

import (
	"fmt"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

// LeaseOffer is what the landlord proposes when accepting an applicant.
type LeaseOffer struct {
	RentPrice             int `json:"rent_price"`
	SecurityDepositMonths int `json:"security_deposit_months"`
	DurationMonths        int `json:"duration_months"`
	CleaningFee           int `json:"cleaning_fee"`
}

// NewLeaseOffer fills the standard terms from config.
func NewLeaseOffer(rent int, lc config.LeaseConfig) LeaseOffer {
	return LeaseOffer{
		RentPrice:             rent,
		SecurityDepositMonths: lc.SecurityDepositMonths,
		DurationMonths:        lc.DurationMonths,
		CleaningFee:           lc.CleaningFee,
	}
}

// EvaluateLeaseOffer is the probability, 0–1, that t signs offer.
func EvaluateLeaseOffer(t *Tenant, offer LeaseOffer, cfg *config.Config) float64 {
	if offer.RentPrice > t.RentTolerance {
		return 0
	}
	lc := cfg.Lease
	p := ProfileFor(cfg, t.Archetype)
	prob := 1.0

	switch {
	case offer.SecurityDepositMonths == 2:
		prob -= lc.Deposit2MonthPenalty * p.RentSensitivity
	case offer.SecurityDepositMonths > 2:
		prob -= lc.Deposit3MonthPenalty * p.RentSensitivity
	}

	if t.Archetype == Student || t.Archetype == Artist {
		if offer.DurationMonths == 6 {
			prob += lc.ShortLeaseBonus
		} else if offer.DurationMonths > 12 {
			prob -= lc.ShortLeaseBonus
		}
	} else if offer.DurationMonths < 12 {
		prob -= lc.LongLeasePenalty
	}

	if offer.CleaningFee > 0 && offer.RentPrice > 0 {
		prob -= float64(offer.CleaningFee) / float64(offer.RentPrice) * p.RentSensitivity
	}

	gap := p.IdealRentMax - offer.RentPrice
	if gap < 0 {
		prob -= lc.ExpensivePenalty
	} else if gap > 100 {
		prob += lc.GoodDealBonus
	}
	return bounds.Clamp(prob, 0, 1)
}

// SignLease houses t in apt, updating both sides of the link.
func SignLease(t *Tenant, b *building.Building, apt *building.Apartment) error {
	if t.IsHoused() {
		return fmt.Errorf("%s already has a lease: %w", t.Name, building.ErrNotApplicable)
	}
	if err := apt.MoveIn(t.ID); err != nil {
		return err
	}
	t.MoveInto(b.ID, apt.ID)
	return nil
}

// EndLease clears both sides of the link.
func EndLease(t *Tenant, apt *building.Apartment) {
	if apt != nil && apt.TenantID != nil && *apt.TenantID == t.ID {
		apt.MoveOut()
	}
	t.MoveOut()
}
