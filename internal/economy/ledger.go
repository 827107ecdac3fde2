package economy

// MonthlyReport summarises one tick of transactions.
type MonthlyReport struct {
	Tick           uint64 `json:"tick"`
	RentIncome     int    `json:"rent_income"`
	OtherIncome    int    `json:"other_income"`
	RepairCosts    int    `json:"repair_costs"`
	UpgradeCosts   int    `json:"upgrade_costs"`
	OperatingCosts int    `json:"operating_costs"`
	Fines          int    `json:"fines"`
	Net            int    `json:"net"`
	EndingBalance  int    `json:"ending_balance"`
}

// Ledger keeps every monthly report.
type Ledger struct {
	Reports []MonthlyReport `json:"reports"`
}

// GenerateReport buckets txs by category, appends and returns the report.
func (l *Ledger) GenerateReport(tick uint64, txs []Transaction, endingBalance int) MonthlyReport {
	r := MonthlyReport{Tick: tick, EndingBalance: endingBalance}
	for _, t := range txs {
		amount := abs(t.Amount)
		switch t.Type {
		case RentIncome:
			r.RentIncome += amount
		case AssetSale, Grant:
			r.OtherIncome += amount
		case RepairCost, HallwayRepair, CriticalFailure:
			r.RepairCosts += amount
		case UpgradeCost, BuildingPurchase:
			r.UpgradeCosts += amount
		case Fine:
			r.Fines += amount
		default:
			r.OperatingCosts += amount
		}
	}
	r.Net = r.RentIncome + r.OtherIncome - r.RepairCosts - r.UpgradeCosts - r.OperatingCosts - r.Fines
	l.Reports = append(l.Reports, r)
	return r
}

// Latest returns the most recent report.
func (l *Ledger) Latest() (MonthlyReport, bool) {
	if len(l.Reports) == 0 {
		return MonthlyReport{}, false
	}
	return l.Reports[len(l.Reports)-1], true
}
