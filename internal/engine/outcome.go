package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tenement/internal/bounds"
	"github.com/talgya/tenement/internal/config"
)

// OutcomeKind is how a campaign ended.
type OutcomeKind string

const (
	Bankruptcy     OutcomeKind = "bankruptcy"
	AllTenantsLeft OutcomeKind = "all_tenants_left"
	Victory        OutcomeKind = "victory"
	Completed      OutcomeKind = "completed"
)

// Outcome is the terminal state of a campaign.
type Outcome struct {
	Kind        OutcomeKind `json:"kind"`
	Tick        uint64      `json:"tick"`
	Score       int         `json:"score,omitempty"`
	TotalIncome int         `json:"total_income,omitempty"`
	Debt        int         `json:"debt,omitempty"`
}

// Won reports a good ending.
func (o *Outcome) Won() bool {
	return o.Kind == Victory || o.Kind == Completed
}

func (o *Outcome) String() string {
	switch o.Kind {
	case Bankruptcy:
		return fmt.Sprintf("Bankrupt after %d months, $%s in debt", o.Tick, humanize.Comma(int64(o.Debt)))
	case AllTenantsLeft:
		return fmt.Sprintf("Every tenant left after %d months", o.Tick)
	case Victory:
		return fmt.Sprintf("Full house of happy tenants in %d months (score %d)", o.Tick, o.Score)
	}
	return fmt.Sprintf("Ran the buildings for %d months (score %d)", o.Tick, o.Score)
}

// Standing is what the win/loss rules look at.
type Standing struct {
	Tick            uint64
	Balance         int
	TotalIncome     int
	Happiness       []int // one per housed tenant
	Vacancies       int
	WasEverOccupied bool
}

func (s Standing) averageHappiness() int {
	if len(s.Happiness) == 0 {
		return 0
	}
	return bounds.Sum(s.Happiness) / len(s.Happiness)
}

// Score = average happiness×5 + income/100 + 100 for a full house + 10 per tenant.
func (s Standing) Score() int {
	score := s.averageHappiness()*5 + s.TotalIncome/100 + 10*len(s.Happiness)
	if s.Vacancies == 0 {
		score += 100
	}
	return score
}

// Evaluate applies the end-of-month rules in priority order: bankruptcy, an
// emptied building, the early-game grace period, victory, then the time limit.
// Nil means play continues.
func Evaluate(s Standing, cfg *config.Config) *Outcome {
	if s.Balance < 0 {
		return &Outcome{Kind: Bankruptcy, Tick: s.Tick, Debt: -s.Balance, TotalIncome: s.TotalIncome}
	}
	if len(s.Happiness) == 0 && s.WasEverOccupied && s.Tick > uint64(cfg.Thresholds.AllLeftCheckTick) {
		return &Outcome{Kind: AllTenantsLeft, Tick: s.Tick, TotalIncome: s.TotalIncome}
	}
	if s.Tick < uint64(cfg.Win.MinTicksForVictory) {
		return nil
	}
	if s.Vacancies == 0 && len(s.Happiness) > 0 && s.averageHappiness() >= cfg.Happiness.MinForVictory {
		return &Outcome{Kind: Victory, Tick: s.Tick, Score: s.Score(), TotalIncome: s.TotalIncome}
	}
	if cfg.Win.GameDurationTicks > 0 && s.Tick >= uint64(cfg.Win.GameDurationTicks) {
		return &Outcome{Kind: Completed, Tick: s.Tick, Score: s.Score(), TotalIncome: s.TotalIncome}
	}
	return nil
}
