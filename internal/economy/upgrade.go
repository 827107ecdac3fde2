package economy

import (
	"fmt"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

func upgradeTransaction(k building.UpgradeKind) TransactionType {
	switch k {
	case building.UpgradeRepairApartment:
		return RepairCost
	case building.UpgradeRepairHallway:
		return HallwayRepair
	}
	return UpgradeCost
}

// ProcessUpgrade validates, prices, pays for and applies an upgrade. On any
// error neither the building nor the funds change.
func ProcessUpgrade(action building.UpgradeAction, b *building.Building, funds *PlayerFunds, tick uint64, costs config.EconomyConfig) (int, error) {
	cost, ok := action.Cost(b, costs)
	if !ok {
		return 0, fmt.Errorf("%s: %w", action.Label(b), building.ErrNotApplicable)
	}
	if !funds.CanAfford(cost) {
		return 0, fmt.Errorf("%s costs %d, balance %d: %w", action.Label(b), cost, funds.Balance, ErrInsufficientFunds)
	}

	desc := action.Label(b)
	if !funds.DeductExpense(Expense(upgradeTransaction(action.Kind), cost, desc, tick)) {
		return 0, ErrInsufficientFunds
	}
	action.Apply(b, costs)
	return cost, nil
}
