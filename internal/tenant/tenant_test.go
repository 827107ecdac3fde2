package tenant

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

type fixedRelations map[int]int

func (f fixedRelations) HappinessModifierFor(id int) int { return f[id] }

func newTenant(cfg *config.Config, id int, a Archetype) *Tenant {
	return New(id, "Test T.", a, ProfileFor(cfg, a), cfg.Happiness.Starting)
}

func apartment(id, rent, condition int, noise building.NoiseLevel, size building.ApartmentSize) *building.Apartment {
	apt := building.NewApartment(id, "1A", 1, size, noise, rent)
	apt.Condition = condition
	return apt
}

func TestProfilesFromDefaults(t *testing.T) {
	cfg := config.Default()

	artist := ProfileFor(cfg, Artist)
	assert.True(t, artist.Prefers(building.DesignCozy))
	assert.True(t, artist.Hates(building.DesignBare))
	assert.Equal(t, 900, artist.IdealRentMax)

	family := ProfileFor(cfg, Family)
	assert.True(t, family.Prefers(building.DesignPractical))
	assert.Nil(t, family.Hated)
	assert.True(t, family.PrefersQuiet)

	delete(cfg.Archetypes, "elderly")
	assert.Equal(t, 800, ProfileFor(cfg, Elderly).IdealRentMax)
}

func TestNewTenantBaseline(t *testing.T) {
	cfg := config.Default()
	pro := newTenant(cfg, 1, Professional)
	assert.Equal(t, 70, pro.Happiness)
	assert.Equal(t, 1200, pro.RentTolerance)
	assert.Equal(t, 30, pro.NoiseTolerance)
	assert.Equal(t, 90, pro.RentReliability)

	student := newTenant(cfg, 2, Student)
	assert.Equal(t, 70, student.NoiseTolerance)
}

func TestGenerateStaysInRange(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		for _, a := range AllArchetypes {
			p := ProfileFor(cfg, a)
			tn := Generate(rng, i, a, p, 70)
			assert.InDelta(t, p.IdealRentMax, tn.RentTolerance, float64(p.IdealRentMax)*0.15+1)
			assert.GreaterOrEqual(t, tn.NoiseTolerance, 0)
			assert.LessOrEqual(t, tn.NoiseTolerance, 100)
			assert.GreaterOrEqual(t, tn.LandlordOpinion, -5)
			assert.LessOrEqual(t, tn.LandlordOpinion, 5)
			assert.Regexp(t, `^.+ [A-Z]\.$`, tn.Name)
		}
	}
}

func TestHappinessClampAndLeave(t *testing.T) {
	cfg := config.Default()
	tn := newTenant(cfg, 1, Student)

	tn.SetHappiness(150)
	assert.Equal(t, 100, tn.Happiness)
	tn.SetHappiness(-10)
	assert.Equal(t, 0, tn.Happiness)
	assert.True(t, tn.WillLeave())

	tn.SetHappiness(1)
	assert.False(t, tn.WillLeave())
	assert.True(t, tn.IsUnhappy(30))
	tn.SetHappiness(30)
	assert.False(t, tn.IsUnhappy(30))
}

func TestCalculateHappinessStudent(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "B", 3, 2, cfg.Economy.BaseRent)
	apt := apartment(9, 600, 50, building.NoiseLow, building.SizeSmall)
	tn := newTenant(cfg, 1, Student)

	f := CalculateHappiness(tn, apt, b, nil, cfg)
	assert.Equal(t, 50, f.Base)
	assert.Equal(t, 2, f.Rent)      // 150×0.02×0.9
	assert.Equal(t, 1, f.Condition) // 20×0.3×0.3
	assert.Equal(t, 0, f.Noise)
	assert.Equal(t, -1, f.Design) // bare −5 × 0.2
	assert.Equal(t, 1, f.Hallway) // (60−50)×0.1
	assert.Equal(t, 0, f.Tenure)
	assert.Equal(t, 53, f.Total())
}

func TestHappinessPenaltiesAreCapped(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "B", 3, 2, cfg.Economy.BaseRent)
	apt := apartment(0, 5000, 0, building.NoiseHigh, building.SizeSmall)
	tn := newTenant(cfg, 1, Family)
	tn.MonthsResiding = 40

	f := CalculateHappiness(tn, apt, b, fixedRelations{1: -50}, cfg)
	assert.Equal(t, -30, f.Rent)
	assert.Equal(t, -17, f.Condition) // 50×0.5×0.7 = 17.5
	assert.Equal(t, 12, f.Tenure)
	assert.Equal(t, -20, f.Relationship)
	assert.Equal(t, 0, f.Total())
}

func TestRelationshipBonusCapped(t *testing.T) {
	cfg := config.Default()
	b := building.New(0, "B", 3, 2, cfg.Economy.BaseRent)
	apt := apartment(0, 600, 50, building.NoiseLow, building.SizeSmall)
	tn := newTenant(cfg, 3, Student)

	f := CalculateHappiness(tn, apt, b, fixedRelations{3: 35}, cfg)
	assert.Equal(t, 20, f.Relationship)
}

func TestMeetsMinimumGate(t *testing.T) {
	cfg := config.Default()

	student := newTenant(cfg, 1, Student)
	assert.False(t, MeetsMinimum(student, apartment(0, 1200, 20, building.NoiseLow, building.SizeSmall), cfg))
	assert.False(t, MeetsMinimum(student, apartment(0, 600, 29, building.NoiseLow, building.SizeSmall), cfg))
	assert.True(t, MeetsMinimum(student, apartment(0, 600, 30, building.NoiseLow, building.SizeSmall), cfg))

	artist := newTenant(cfg, 2, Artist)
	bare := apartment(0, 700, 60, building.NoiseLow, building.SizeSmall)
	assert.False(t, MeetsMinimum(artist, bare, cfg))
	bare.Design = building.DesignPractical
	assert.True(t, MeetsMinimum(artist, bare, cfg))

	pro := newTenant(cfg, 3, Professional)
	loud := apartment(0, 1000, 70, building.NoiseHigh, building.SizeSmall)
	assert.False(t, MeetsMinimum(pro, loud, cfg))
	pro.NoiseTolerance = 40
	assert.True(t, MeetsMinimum(pro, loud, cfg))
	pro.NoiseTolerance = 30
	loud.HasSoundproofing = true
	assert.True(t, MeetsMinimum(pro, loud, cfg))
}

func TestMatchScoreGateFailureIsZero(t *testing.T) {
	cfg := config.Default()
	student := newTenant(cfg, 1, Student)

	r := CalculateMatchScore(student, apartment(0, 1200, 20, building.NoiseLow, building.SizeSmall), cfg)
	assert.Equal(t, 0, r.Score)
	assert.False(t, r.MeetsMinimum)
}

func TestMatchScoreBands(t *testing.T) {
	cfg := config.Default()

	student := newTenant(cfg, 1, Student)
	r := CalculateMatchScore(student, apartment(0, 600, 50, building.NoiseLow, building.SizeSmall), cfg)
	assert.True(t, r.MeetsMinimum)
	assert.Equal(t, 58, r.Score)
	assert.Contains(t, r.Reasons, "Fair price")

	pro := newTenant(cfg, 2, Professional)
	apt := apartment(1, 1000, 80, building.NoiseLow, building.SizeMedium)
	apt.Design = building.DesignPractical
	r = CalculateMatchScore(pro, apt, cfg)
	assert.Equal(t, 85, r.Score) // 50 +8 +12 +10 +5
	assert.Contains(t, r.Reasons, "Nice and quiet")
	assert.Contains(t, r.Reasons, "Good space")
}

func TestFindBestMatch(t *testing.T) {
	cfg := config.Default()
	student := newTenant(cfg, 1, Student)

	bad := apartment(0, 1200, 20, building.NoiseLow, building.SizeSmall)
	tieA := apartment(1, 600, 50, building.NoiseLow, building.SizeSmall)
	tieB := apartment(2, 600, 50, building.NoiseLow, building.SizeSmall)
	occupied := apartment(3, 500, 90, building.NoiseLow, building.SizeMedium)
	require.NoError(t, occupied.MoveIn(99))

	apt, r, ok := FindBestMatch(student, []*building.Apartment{bad, tieA, tieB, occupied}, cfg)
	require.True(t, ok)
	assert.Equal(t, 1, apt.ID)
	assert.Equal(t, 58, r.Score)

	_, _, ok = FindBestMatch(student, []*building.Apartment{bad}, cfg)
	assert.False(t, ok)
}

func TestNegotiationLeverage(t *testing.T) {
	cfg := config.Default()
	tn := newTenant(cfg, 1, Student)
	tn.MonthsResiding = 30
	tn.LandlordOpinion = -20
	assert.Equal(t, 28, tn.NegotiationLeverage())

	tn.MonthsResiding = 0
	tn.LandlordOpinion = 50
	assert.Equal(t, 0, tn.NegotiationLeverage())
}
