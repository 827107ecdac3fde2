package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsValidateAgainstSchema(t *testing.T) {
	raw, err := json.Marshal(Default())
	require.NoError(t, err)
	require.NoError(t, Validate(raw))
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5000, cfg.Starting.PlayerMoney)
	assert.Equal(t, 3, cfg.Starting.Floors)
	assert.Equal(t, 2, cfg.Starting.UnitsPerFloor)
	assert.Equal(t, 10, cfg.Economy.RepairCostPerPoint)
	assert.Equal(t, 36, cfg.Win.GameDurationTicks)
	assert.Len(t, cfg.Archetypes, 5)
	assert.Len(t, cfg.Compliance.Regulations, 6)
	assert.Equal(t, 750, cfg.Archetypes["student"].IdealRentMax)
}

func TestDefaultReturnsFreshMaps(t *testing.T) {
	a := Default()
	a.Economy.BaseRent["small"] = 1
	b := Default()
	assert.Equal(t, 600, b.Economy.BaseRent["small"])
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"starting": {"player_money": 12000}, "economy": {"base_rent": {"small": 650}}}`))
	require.NoError(t, err)

	assert.Equal(t, 12000, cfg.Starting.PlayerMoney)
	assert.Equal(t, "Sunset Apartments", cfg.Starting.BuildingName)
	assert.Equal(t, 650, cfg.Economy.BaseRent["small"])
	assert.Equal(t, 900, cfg.Economy.BaseRent["medium"])
	assert.Equal(t, 2, cfg.Decay.ApartmentPerTick)
}

func TestParseKeepsDefaultsOfPartialRows(t *testing.T) {
	cfg, err := Parse([]byte(`{
		"archetypes": {"student": {"ideal_rent_max": 800, "min_acceptable_condition": 30, "names": ["A"]}},
		"compliance": {"regulations": {"plumbing": {"base_fine": 1200, "inspection_interval": 12, "threshold": 45}}},
		"city": {"neighborhoods": {"suburbs": {"rent_demand": 1.1}}}
	}`))
	require.NoError(t, err)
	def := Default()

	student := cfg.Archetypes["student"]
	assert.Equal(t, 800, student.IdealRentMax)
	assert.Equal(t, []string{"A"}, student.Names)
	assert.Equal(t, def.Archetypes["student"].RentSensitivity, student.RentSensitivity)
	assert.Equal(t, def.Archetypes["student"].ConditionSensitivity, student.ConditionSensitivity)
	assert.Equal(t, def.Archetypes["student"].Reliability, student.Reliability)
	assert.Equal(t, def.Archetypes["student"].Behavior, student.Behavior)
	assert.NotZero(t, student.Reliability)
	assert.Equal(t, def.Archetypes["artist"], cfg.Archetypes["artist"])

	assert.Equal(t, 1200, cfg.Compliance.Regulations["plumbing"].BaseFine)
	assert.Equal(t, def.Compliance.Regulations["fire_safety"], cfg.Compliance.Regulations["fire_safety"])

	suburbs := cfg.City.Neighborhoods["suburbs"]
	assert.Equal(t, 1.1, suburbs.RentDemand)
	assert.Equal(t, def.City.Neighborhoods["suburbs"].SchoolQuality, suburbs.SchoolQuality)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown section": `{"weather": {}}`,
		"wrong type":      `{"starting": {"floors": "three"}}`,
		"out of range":    `{"happiness": {"starting": 140}}`,
		"bad design":      `{"archetypes": {"student": {"ideal_rent_max": 700, "min_acceptable_condition": 30, "names": ["A"], "preferred_design": "gothic"}}}`,
		"missing fields":  `{"compliance": {"regulations": {"fire_safety": {"base_fine": 10}}}}`,
		"not json":        `{starting`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "tenement.json", `{"version": "2.0", "decay": {"apartment_per_tick": 3}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0", cfg.Version)
	assert.Equal(t, 3, cfg.Decay.ApartmentPerTick)
	assert.Equal(t, 1, cfg.Decay.HallwayPerTick)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "tenement.yaml", `
starting:
  building_name: Maple Court
  floors: 4
marketing:
  costs:
    social_media: 75
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Maple Court", cfg.Starting.BuildingName)
	assert.Equal(t, 4, cfg.Starting.Floors)
	assert.Equal(t, 75, cfg.Marketing.Costs["social_media"])
	assert.Equal(t, 500, cfg.Marketing.Costs["premium_agency"])
}

func TestLoadEmptyYAMLIsDefault(t *testing.T) {
	path := writeFile(t, "empty.yml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	path := writeFile(t, "broken.json", `{"starting": {"floors": 0}}`)

	cfg := LoadOrDefault(path)
	assert.Equal(t, Default(), cfg)

	assert.Equal(t, Default(), LoadOrDefault(""))
}
