// Package consequences holds the slow-moving systems that react to how the
// landlord runs a building: code compliance, the tenant relationship network
// and neighborhood gentrification.
package consequences

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

// RegulationType values double as config keys.
type RegulationType string

const (
	FireSafety           RegulationType = "fire_safety"
	Electrical           RegulationType = "electrical"
	Plumbing             RegulationType = "plumbing"
	Structural           RegulationType = "structural"
	HistoricPreservation RegulationType = "historic_preservation"
	HealthSanitation     RegulationType = "health_sanitation"
)

// baseRegulations apply to every building.
var baseRegulations = []RegulationType{FireSafety, Electrical, Plumbing, Structural, HealthSanitation}

// Violated reports whether the building's average unit condition is below
// the regulation's threshold.
func (r RegulationType) Violated(b *building.Building, threshold int) bool {
	return b.AverageCondition() < threshold
}

// Regulation is one rule enforced on one building.
type Regulation struct {
	Type                  RegulationType `json:"type"`
	Compliant             bool           `json:"compliant"`
	Violations            int            `json:"violations"`
	MonthsUntilInspection int            `json:"months_until_inspection"`
}

// Fine is the penalty for the next violation. It steps up by the base fine
// for every two prior violations.
func (r *Regulation) Fine(base int) int {
	return base * (1 + r.Violations/2)
}

type InspectionResult struct {
	Regulation RegulationType `json:"regulation"`
	Passed     bool           `json:"passed"`
	Measured   int            `json:"measured"`
	Threshold  int            `json:"threshold"`
	Fine       int            `json:"fine"`
	Deadline   uint64         `json:"deadline,omitempty"`
}

type Inspection struct {
	BuildingID int                `json:"building_id"`
	Tick       uint64             `json:"tick"`
	Results    []InspectionResult `json:"results"`
	TotalFines int                `json:"total_fines"`
}

// Passed reports whether every regulation checked passed.
func (in Inspection) Passed() bool {
	return in.TotalFines == 0
}

// Violation is an open remediation order.
type Violation struct {
	BuildingID int            `json:"building_id"`
	Regulation RegulationType `json:"regulation"`
	Opened     uint64         `json:"opened"`
	Deadline   uint64         `json:"deadline"`
}

// ComplianceSystem tracks regulations, inspections and open violations per
// building. Fines are returned to the caller, who charges them.
type ComplianceSystem struct {
	Regulations map[int][]*Regulation `json:"regulations"`
	History     []Inspection          `json:"history"`
	Pending     []Violation           `json:"pending"`
	Reputation  int                   `json:"reputation"`
	TotalFines  int                   `json:"total_fines"`
}

func NewComplianceSystem(cfg config.ComplianceConfig) *ComplianceSystem {
	return &ComplianceSystem{
		Regulations: make(map[int][]*Regulation),
		Reputation:  cfg.StartingReputation,
	}
}

// InitBuilding assigns the regulation set for a building in the named
// neighborhood. Historic districts add preservation rules.
func (c *ComplianceSystem) InitBuilding(buildingID int, neighborhood string, cfg config.ComplianceConfig) {
	types := slices.Clone(baseRegulations)
	if neighborhood == "historic" {
		types = append(types, HistoricPreservation)
	}

	regs := make([]*Regulation, 0, len(types))
	for _, t := range types {
		rc, ok := cfg.Regulations[string(t)]
		if !ok {
			continue
		}
		regs = append(regs, &Regulation{Type: t, Compliant: true, MonthsUntilInspection: rc.InspectionInterval})
	}
	c.Regulations[buildingID] = regs
}

// HasViolations reports open orders against a building.
func (c *ComplianceSystem) HasViolations(buildingID int) bool {
	for _, v := range c.Pending {
		if v.BuildingID == buildingID {
			return true
		}
	}
	return false
}

func (c *ComplianceSystem) pending(buildingID int, t RegulationType) (int, bool) {
	for i, v := range c.Pending {
		if v.BuildingID == buildingID && v.Regulation == t {
			return i, true
		}
	}
	return -1, false
}

// InspectBuilding checks every regulation of b.
func (c *ComplianceSystem) InspectBuilding(b *building.Building, tick uint64, cfg config.ComplianceConfig) Inspection {
	return c.inspect(b, c.Regulations[b.ID], tick, cfg)
}

func (c *ComplianceSystem) inspect(b *building.Building, regs []*Regulation, tick uint64, cfg config.ComplianceConfig) Inspection {
	in := Inspection{BuildingID: b.ID, Tick: tick}

	for _, r := range regs {
		rc := cfg.Regulations[string(r.Type)]
		res := InspectionResult{Regulation: r.Type, Measured: b.AverageCondition(), Threshold: rc.Threshold, Passed: true}

		if r.Type.Violated(b, rc.Threshold) {
			res.Passed = false
			res.Fine = r.Fine(rc.BaseFine)
			res.Deadline = tick + uint64(cfg.GracePeriodTicks)
			r.Violations++
			r.Compliant = false
			in.TotalFines += res.Fine

			if i, ok := c.pending(b.ID, r.Type); ok {
				c.Pending[i].Deadline = res.Deadline
			} else {
				c.Pending = append(c.Pending, Violation{BuildingID: b.ID, Regulation: r.Type, Opened: tick, Deadline: res.Deadline})
			}
		} else {
			r.Compliant = true
		}
		r.MonthsUntilInspection = rc.InspectionInterval
		in.Results = append(in.Results, res)
	}

	c.TotalFines += in.TotalFines
	c.History = append(c.History, in)
	if in.TotalFines > 0 {
		slog.Info("inspection failed", "building", b.Name, "fines", in.TotalFines)
	}
	return in
}

// ComplianceReport is everything one monthly pass did.
type ComplianceReport struct {
	Inspections []Inspection
	Remediated  []Violation
	Overdue     []Violation
	Fines       int
	Events      []string
}

// Tick remediates recovered violations, penalises overdue ones and runs
// inspections whose countdown reached zero. Buildings are visited in id order.
func (c *ComplianceSystem) Tick(tick uint64, lookup func(id int) (*building.Building, bool), cfg config.ComplianceConfig) ComplianceReport {
	var rep ComplianceReport

	kept := c.Pending[:0]
	for _, v := range c.Pending {
		b, ok := lookup(v.BuildingID)
		if !ok {
			continue
		}
		threshold := cfg.Regulations[string(v.Regulation)].Threshold
		if !v.Regulation.Violated(b, threshold) {
			c.markCompliant(v)
			rep.Remediated = append(rep.Remediated, v)
			rep.Events = append(rep.Events, fmt.Sprintf("%s: %s violation resolved", b.Name, v.Regulation))
			continue
		}
		if tick >= v.Deadline {
			rep.Overdue = append(rep.Overdue, v)
			rep.Fines += cfg.MissedDeadlineFine
			c.TotalFines += cfg.MissedDeadlineFine
			c.Reputation = max(c.Reputation-cfg.MissedDeadlineReputation, 0)
			rep.Events = append(rep.Events, fmt.Sprintf("%s: missed %s deadline, fined $%d", b.Name, v.Regulation, cfg.MissedDeadlineFine))
			v.Deadline = tick + uint64(cfg.GracePeriodTicks)
		}
		kept = append(kept, v)
	}
	c.Pending = kept

	for _, id := range slices.Sorted(maps.Keys(c.Regulations)) {
		b, ok := lookup(id)
		if !ok {
			continue
		}
		var due []*Regulation
		for _, r := range c.Regulations[id] {
			if r.MonthsUntilInspection > 0 {
				r.MonthsUntilInspection--
			}
			if r.MonthsUntilInspection == 0 {
				due = append(due, r)
			}
		}
		if len(due) == 0 {
			continue
		}
		in := c.inspect(b, due, tick, cfg)
		rep.Inspections = append(rep.Inspections, in)
		rep.Fines += in.TotalFines
		if in.Passed() {
			rep.Events = append(rep.Events, fmt.Sprintf("%s passed a scheduled inspection", b.Name))
		} else {
			rep.Events = append(rep.Events, fmt.Sprintf("%s failed a scheduled inspection, fined $%d", b.Name, in.TotalFines))
		}
	}
	return rep
}

func (c *ComplianceSystem) markCompliant(v Violation) {
	for _, r := range c.Regulations[v.BuildingID] {
		if r.Type == v.Regulation {
			r.Compliant = true
		}
	}
}
