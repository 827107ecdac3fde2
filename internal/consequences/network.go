package consequences

import (
	"math/rand"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/entropy"
	"github.com/talgya/tenement/internal/tenant"
)

// RelationshipType is the tone of a bond between two tenants.
type RelationshipType uint8

const (
	Friendly RelationshipType = iota
	Neutral
	Hostile
	Romantic
	FamilyTie
)

// Key is the config key of the happiness modifier.
func (r RelationshipType) Key() string {
	switch r {
	case Friendly:
		return "friendly"
	case Hostile:
		return "hostile"
	case Romantic:
		return "romantic"
	case FamilyTie:
		return "family"
	}
	return "neutral"
}

func (r RelationshipType) String() string { return r.Key() }

// StabilityModifier scales how likely a tenant is to stay put.
func (r RelationshipType) StabilityModifier() float64 {
	switch r {
	case Friendly:
		return 1.1
	case Hostile:
		return 0.8
	case Romantic:
		return 1.3
	case FamilyTie:
		return 1.2
	}
	return 1.0
}

// Relationship is an unordered pair of tenants.
type Relationship struct {
	A              int              `json:"a"`
	B              int              `json:"b"`
	Type           RelationshipType `json:"type"`
	Strength       int              `json:"strength"`
	DurationMonths int              `json:"duration_months"`
	RecentEvents   []string         `json:"recent_events,omitempty"`
}

func (r *Relationship) Involves(id int) bool {
	return r.A == id || r.B == id
}

// Other returns the partner of id.
func (r *Relationship) Other(id int) (int, bool) {
	switch id {
	case r.A:
		return r.B, true
	case r.B:
		return r.A, true
	}
	return 0, false
}

// AddEvent records an interaction, keeping at most limit entries.
func (r *Relationship) AddEvent(event string, limit int) {
	r.RecentEvents = append(r.RecentEvents, event)
	if over := len(r.RecentEvents) - limit; limit > 0 && over > 0 {
		r.RecentEvents = r.RecentEvents[over:]
	}
}

func (r *Relationship) drift(rng *rand.Rand, cfg config.RelationshipsConfig) (cooled bool) {
	r.DurationMonths++
	if r.Type != Hostile && r.DurationMonths > cfg.StrengthenAfterMonths {
		r.Strength = min(r.Strength+1, 100)
	}
	if r.Type == Hostile && entropy.Percent(rng, cfg.HostileCooldownChance) {
		r.Strength = max(r.Strength-cfg.HostileStrengthDecay, 0)
		if r.Strength < cfg.HostileTransitionThreshold {
			r.Type = Neutral
			r.AddEvent("Conflict cooled down", cfg.MaxRecentEvents)
			cooled = true
		}
	}
	if over := len(r.RecentEvents) - cfg.MaxRecentEvents; over > 0 {
		r.RecentEvents = r.RecentEvents[over:]
	}
	return cooled
}

// LongTermRecord follows a tenant from move-in for displacement tracking.
type LongTermRecord struct {
	TenantID     int              `json:"tenant_id"`
	TenantName   string           `json:"tenant_name"`
	Archetype    tenant.Archetype `json:"archetype"`
	MoveInTick   uint64           `json:"move_in_tick"`
	OriginalRent int              `json:"original_rent"`
	CurrentRent  int              `json:"current_rent"`
	Displaced    bool             `json:"displaced"`
	Reason       string           `json:"reason,omitempty"`
	MovedOut     bool             `json:"moved_out,omitempty"`
}

// TenantNetwork holds every relationship plus long-term tenant records.
type TenantNetwork struct {
	Relationships []*Relationship   `json:"relationships"`
	Records       []*LongTermRecord `json:"records"`
}

func NewTenantNetwork() *TenantNetwork {
	return &TenantNetwork{}
}

// RelationshipsFor lists the bonds involving id.
func (n *TenantNetwork) RelationshipsFor(id int) []*Relationship {
	var out []*Relationship
	for _, r := range n.Relationships {
		if r.Involves(id) {
			out = append(out, r)
		}
	}
	return out
}

// Between finds the bond of a pair in either order.
func (n *TenantNetwork) Between(a, b int) (*Relationship, bool) {
	for _, r := range n.Relationships {
		if (r.A == a && r.B == b) || (r.A == b && r.B == a) {
			return r, true
		}
	}
	return nil, false
}

// Add creates a bond unless the pair is already related.
func (n *TenantNetwork) Add(a, b int, t RelationshipType, initialStrength int) bool {
	if a == b {
		return false
	}
	if _, ok := n.Between(a, b); ok {
		return false
	}
	n.Relationships = append(n.Relationships, &Relationship{A: a, B: b, Type: t, Strength: initialStrength})
	return true
}

// Remove drops every bond involving id.
func (n *TenantNetwork) Remove(id int) int {
	kept := n.Relationships[:0]
	removed := 0
	for _, r := range n.Relationships {
		if r.Involves(id) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	n.Relationships = kept
	return removed
}

// HappinessModifierFor sums the configured modifiers of id's bonds.
func (n *TenantNetwork) HappinessModifierFor(id int, mods map[string]int) int {
	total := 0
	for _, r := range n.RelationshipsFor(id) {
		total += mods[r.Type.Key()]
	}
	return total
}

// StabilityModifierFor multiplies the stability of id's bonds.
func (n *TenantNetwork) StabilityModifierFor(id int) float64 {
	total := 1.0
	for _, r := range n.RelationshipsFor(id) {
		total *= r.Type.StabilityModifier()
	}
	return total
}

type modifierView struct {
	n    *TenantNetwork
	mods map[string]int
}

func (v modifierView) HappinessModifierFor(id int) int {
	return v.n.HappinessModifierFor(id, v.mods)
}

// View binds the network to configured modifiers for the happiness engine.
func (n *TenantNetwork) View(cfg config.RelationshipsConfig) tenant.RelationshipSource {
	return modifierView{n: n, mods: cfg.Modifiers}
}

// Locator resolves a tenant's apartment.
type Locator = tenant.ApartmentLookup

// Tick drifts existing bonds, then gives every unrelated pair of housed
// neighbours in the same building a chance to form one. Pairs are visited in
// roster order.
func (n *TenantNetwork) Tick(rng *rand.Rand, tenants []*tenant.Tenant, locate Locator, cfg config.RelationshipsConfig) []string {
	var events []string
	names := make(map[int]string, len(tenants))
	for _, t := range tenants {
		names[t.ID] = t.Name
	}

	for _, r := range n.Relationships {
		if r.drift(rng, cfg) {
			events = append(events, names[r.A]+" and "+names[r.B]+" settled their differences")
		}
	}

	for i, a := range tenants {
		aptA, ok := locate(a)
		if !ok {
			continue
		}
		for _, b := range tenants[i+1:] {
			if a.BuildingID != b.BuildingID {
				continue
			}
			aptB, ok := locate(b)
			if !ok || aptA.ID == aptB.ID {
				continue
			}
			if _, related := n.Between(a.ID, b.ID); related {
				continue
			}
			if !entropy.Percent(rng, cfg.FormationChance) {
				continue
			}
			t := initialType(rng, a, b, aptA, aptB, cfg)
			n.Add(a.ID, b.ID, t, cfg.InitialStrength)
			switch t {
			case Hostile:
				events = append(events, a.Name+" and "+b.Name+" are feuding over noise")
			case Friendly:
				events = append(events, a.Name+" and "+b.Name+" became friends")
			}
		}
	}
	return events
}

func initialType(rng *rand.Rand, a, b *tenant.Tenant, aptA, aptB *building.Apartment, cfg config.RelationshipsConfig) RelationshipType {
	conflict := tenant.NoiseConflict(a.Archetype, b.Archetype) || entropy.Percent(rng, cfg.MixedConflictChance)
	if conflict && abs(aptA.Floor-aptB.Floor) <= 1 && entropy.Percent(rng, cfg.AdjacentHostileChance) {
		return Hostile
	}
	if a.Archetype == b.Archetype && entropy.Percent(rng, cfg.SameArchetypeFriendlyChance) {
		return Friendly
	}
	if a.Archetype == tenant.Family && b.Archetype == tenant.Family {
		return Friendly
	}
	return Neutral
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RecordMoveIn starts a long-term record for a fresh tenant.
func (n *TenantNetwork) RecordMoveIn(t *tenant.Tenant, rent int, tick uint64) {
	if t.MonthsResiding != 0 {
		return
	}
	if _, ok := n.record(t.ID); ok {
		return
	}
	n.Records = append(n.Records, &LongTermRecord{
		TenantID:     t.ID,
		TenantName:   t.Name,
		Archetype:    t.Archetype,
		MoveInTick:   tick,
		OriginalRent: rent,
		CurrentRent:  rent,
	})
}

func (n *TenantNetwork) record(id int) (*LongTermRecord, bool) {
	for _, r := range n.Records {
		if r.TenantID == id {
			return r, true
		}
	}
	return nil, false
}

// UpdateRent tracks a rent change for a recorded tenant.
func (n *TenantNetwork) UpdateRent(id, rent int) {
	if r, ok := n.record(id); ok {
		r.CurrentRent = rent
	}
}

// RecordMoveOut closes the record of a tenant who left.
func (n *TenantNetwork) RecordMoveOut(id int) {
	if r, ok := n.record(id); ok {
		r.MovedOut = true
	}
}

// MarkDisplaced flags a recorded tenant as pushed out.
func (n *TenantNetwork) MarkDisplaced(id int, reason string) (*LongTermRecord, bool) {
	r, ok := n.record(id)
	if !ok {
		return nil, false
	}
	r.Displaced = true
	r.Reason = reason
	return r, true
}

func (n *TenantNetwork) DisplacedCount() int {
	c := 0
	for _, r := range n.Records {
		if r.Displaced {
			c++
		}
	}
	return c
}

// LongTermCount counts tenants still in residence who moved in at least
// months ago.
func (n *TenantNetwork) LongTermCount(now uint64, months int) int {
	c := 0
	for _, r := range n.Records {
		if !r.Displaced && !r.MovedOut && now >= r.MoveInTick && now-r.MoveInTick >= uint64(months) {
			c++
		}
	}
	return c
}
