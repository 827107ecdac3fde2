// Package tenant models renters: their archetype preferences, happiness,
// how they match apartments, the applications they file and the leases
// they sign.
package tenant

import (
	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

// Archetype is a renter template. Values double as config keys.
type Archetype string

const (
	Student      Archetype = "student"
	Professional Archetype = "professional"
	Artist       Archetype = "artist"
	Family       Archetype = "family"
	Elderly      Archetype = "elderly"
)

// AllArchetypes fixes the iteration order wherever archetypes are drawn.
var AllArchetypes = []Archetype{Student, Professional, Artist, Family, Elderly}

// Label is the display name.
func (a Archetype) Label() string {
	switch a {
	case Student:
		return "Student"
	case Professional:
		return "Professional"
	case Artist:
		return "Artist"
	case Family:
		return "Family"
	case Elderly:
		return "Elderly"
	}
	return string(a)
}

// ParseArchetype validates a config key.
func ParseArchetype(key string) (Archetype, bool) {
	for _, a := range AllArchetypes {
		if string(a) == key {
			return a, true
		}
	}
	return "", false
}

// Profile is the preference table of one archetype.
type Profile struct {
	RentSensitivity      float64
	ConditionSensitivity float64
	NoiseSensitivity     float64
	DesignSensitivity    float64
	IdealRentMax         int
	MinCondition         int
	PrefersQuiet         bool
	Preferred            *building.DesignType
	Hated                *building.DesignType
	BaseReliability      int
	BaseBehavior         int
	Names                []string
}

// Prefers reports whether d is the archetype's favourite design.
func (p Profile) Prefers(d building.DesignType) bool {
	return p.Preferred != nil && *p.Preferred == d
}

// Hates reports whether d is a deal-breaker design.
func (p Profile) Hates(d building.DesignType) bool {
	return p.Hated != nil && *p.Hated == d
}

func profileFrom(c config.ArchetypeConfig) Profile {
	p := Profile{
		RentSensitivity:      c.RentSensitivity,
		ConditionSensitivity: c.ConditionSensitivity,
		NoiseSensitivity:     c.NoiseSensitivity,
		DesignSensitivity:    c.DesignSensitivity,
		IdealRentMax:         c.IdealRentMax,
		MinCondition:         c.MinCondition,
		PrefersQuiet:         c.PrefersQuiet,
		BaseReliability:      c.Reliability,
		BaseBehavior:         c.Behavior,
		Names:                c.Names,
	}
	if d, ok := building.ParseDesign(c.PreferredDesign); ok {
		p.Preferred = &d
	}
	if d, ok := building.ParseDesign(c.HatedDesign); ok {
		p.Hated = &d
	}
	return p
}

// ProfileFor reads an archetype's profile from cfg, falling back to the
// shipped defaults when the archetype is missing.
func ProfileFor(cfg *config.Config, a Archetype) Profile {
	if c, ok := cfg.Archetypes[string(a)]; ok {
		return profileFrom(c)
	}
	return profileFrom(config.Default().Archetypes[string(a)])
}

// NoiseConflict reports whether a loud lifestyle meets a quiet one, in
// either order.
func NoiseConflict(a, b Archetype) bool {
	loud := func(x Archetype) bool { return x == Student || x == Artist }
	quiet := func(x Archetype) bool { return x == Professional || x == Elderly || x == Family }
	return (loud(a) && quiet(b)) || (loud(b) && quiet(a))
}
