package economy

import (
	"fmt"
	"math"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

// CostLine is one charged or unpaid operating expense.
type CostLine struct {
	Type   TransactionType
	Amount int
	Label  string
	Paid   bool
}

// OperatingResult summarises a building's monthly bills.
type OperatingResult struct {
	Lines              []CostLine
	Paid               int
	Unpaid             int
	MarketingCancelled bool
}

// PropertyTaxDue is rate × rent collected, truncated.
func PropertyTaxDue(rentCollected int, cfg config.OperatingCostsConfig) int {
	return int(math.Floor(float64(rentCollected) * cfg.PropertyTaxRate))
}

// InsurancePremium applies the good-condition discount.
func InsurancePremium(b *building.Building, cfg config.OperatingCostsConfig) int {
	premium := cfg.InsuranceBaseRate
	if b.AverageCondition() >= cfg.InsuranceDiscountThreshold {
		premium -= cfg.InsuranceDiscount
	}
	return max(premium, 0)
}

// ChargeOperatingCosts bills marketing, property tax, utilities, insurance and
// staff for one building. An unaffordable campaign is cancelled; other bills
// that cannot be paid are skipped and reported as unpaid.
func ChargeOperatingCosts(b *building.Building, rentCollected int, funds *PlayerFunds, tick uint64, cfg *config.Config) OperatingResult {
	var res OperatingResult

	charge := func(t TransactionType, amount int, label string) bool {
		if amount <= 0 {
			return true
		}
		ok := funds.DeductExpense(Expense(t, amount, fmt.Sprintf("%s: %s", b.Name, label), tick))
		res.Lines = append(res.Lines, CostLine{Type: t, Amount: amount, Label: label, Paid: ok})
		if ok {
			res.Paid += amount
		} else {
			res.Unpaid += amount
		}
		return ok
	}

	if b.Marketing != building.MarketingNone {
		cost := cfg.Marketing.Costs[string(b.Marketing)]
		if !charge(Marketing, cost, b.Marketing.Label()+" campaign") {
			b.Marketing = building.MarketingNone
			res.MarketingCancelled = true
		}
	}

	oc := cfg.OperatingCosts
	charge(PropertyTax, PropertyTaxDue(rentCollected, oc), "Property tax")
	charge(Utilities, oc.UtilityCostPerUnit*len(b.Apartments), "Utilities")
	charge(Insurance, InsurancePremium(b, oc), "Insurance")

	for _, role := range b.Staff.Employed() {
		charge(StaffSalary, cfg.Economy.StaffCosts[string(role)], string(role)+" salary")
	}
	return res
}
