// Package economy provides the player's funds, the transaction ledger, rent
// collection, monthly operating costs and paid upgrades.
package economy

import "errors"

// ErrInsufficientFunds is returned when an expense would overdraw the balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// TransactionType categorises ledger entries.
type TransactionType uint8

const (
	RentIncome TransactionType = iota
	RepairCost
	UpgradeCost
	HallwayRepair
	BuildingPurchase
	AssetSale
	PropertyTax
	Utilities
	Insurance
	StaffSalary
	CriticalFailure
	Grant
	Fine
	Marketing
	Vetting
	LoanPayment
	InvestorPayout
)

var transactionNames = [...]string{
	RentIncome:       "rent_income",
	RepairCost:       "repair_cost",
	UpgradeCost:      "upgrade_cost",
	HallwayRepair:    "hallway_repair",
	BuildingPurchase: "building_purchase",
	AssetSale:        "asset_sale",
	PropertyTax:      "property_tax",
	Utilities:        "utilities",
	Insurance:        "insurance",
	StaffSalary:      "staff_salary",
	CriticalFailure:  "critical_failure",
	Grant:            "grant",
	Fine:             "fine",
	Marketing:        "marketing",
	Vetting:          "vetting",
	LoanPayment:      "loan_payment",
	InvestorPayout:   "investor_payout",
}

func (t TransactionType) String() string {
	if int(t) < len(transactionNames) {
		return transactionNames[t]
	}
	return "unknown"
}

// Transaction is an immutable ledger entry. Income is positive, expenses negative.
type Transaction struct {
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"`
	Description string          `json:"description"`
	Tick        uint64          `json:"tick"`
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Income builds a positive entry.
func Income(t TransactionType, amount int, desc string, tick uint64) Transaction {
	return Transaction{Type: t, Amount: abs(amount), Description: desc, Tick: tick}
}

// Expense builds a negative entry.
func Expense(t TransactionType, amount int, desc string, tick uint64) Transaction {
	return Transaction{Type: t, Amount: -abs(amount), Description: desc, Tick: tick}
}

// PlayerFunds is the landlord's cash position. Balance always equals
// StartingBalance + TotalIncome - TotalExpenses.
type PlayerFunds struct {
	Balance         int           `json:"balance"`
	StartingBalance int           `json:"starting_balance"`
	TotalIncome     int           `json:"total_income"`
	TotalExpenses   int           `json:"total_expenses"`
	Transactions    []Transaction `json:"transactions"`
}

func NewFunds(starting int) *PlayerFunds {
	return &PlayerFunds{Balance: starting, StartingBalance: starting}
}

// CanAfford reports whether cost can be paid without going negative.
func (f *PlayerFunds) CanAfford(cost int) bool {
	return f.Balance >= cost
}

// AddIncome credits the balance and logs the entry.
func (f *PlayerFunds) AddIncome(t Transaction) {
	amount := abs(t.Amount)
	t.Amount = amount
	f.Balance += amount
	f.TotalIncome += amount
	f.Transactions = append(f.Transactions, t)
}

// DeductExpense pays an expense. It fails without side effects when the
// balance cannot cover it.
func (f *PlayerFunds) DeductExpense(t Transaction) bool {
	cost := abs(t.Amount)
	if f.Balance < cost {
		return false
	}
	f.debit(t, cost)
	return true
}

// ChargeFine always applies, even into a negative balance.
func (f *PlayerFunds) ChargeFine(t Transaction) {
	f.debit(t, abs(t.Amount))
}

// Charge takes a contractual payment such as a loan instalment. Like a fine it
// cannot be declined.
func (f *PlayerFunds) Charge(t Transaction) {
	f.debit(t, abs(t.Amount))
}

func (f *PlayerFunds) debit(t Transaction, cost int) {
	t.Amount = -cost
	f.Balance -= cost
	f.TotalExpenses += cost
	f.Transactions = append(f.Transactions, t)
}

func (f *PlayerFunds) IsBankrupt() bool {
	return f.Balance < 0
}

// TransactionsForTick returns the entries logged at tick, in order.
func (f *PlayerFunds) TransactionsForTick(tick uint64) []Transaction {
	var out []Transaction
	for _, t := range f.Transactions {
		if t.Tick == tick {
			out = append(out, t)
		}
	}
	return out
}

// Reconciles checks the balance identity and that the log sums to it.
func (f *PlayerFunds) Reconciles() bool {
	if f.Balance != f.StartingBalance+f.TotalIncome-f.TotalExpenses {
		return false
	}
	sum := 0
	for _, t := range f.Transactions {
		sum += t.Amount
	}
	return f.StartingBalance+sum == f.Balance
}
