package city

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/config"
)

func TestNewCity(t *testing.T) {
	cfg := config.Default().City
	c := NewCity("Metropolis", 7, cfg)

	require.Len(t, c.Neighborhoods, 4)
	assert.Equal(t, "Central District", c.Neighborhoods[0].Name)
	assert.Equal(t, Historic, c.Neighborhoods[3].Type)
	assert.Equal(t, 3, c.Neighborhoods[1].AvailableSlots)
	assert.Equal(t, 50, c.Neighborhoods[1].Reputation)
	assert.Equal(t, 1.2, c.Neighborhoods[0].Stats.RentDemand)
	assert.Equal(t, 1.0, c.EconomyHealth)
	assert.Empty(t, c.Buildings)
}

func TestAddBuildingRespectsSlots(t *testing.T) {
	full := config.Default()
	c := NewCity("M", 1, full.City)

	for i := 0; i < 3; i++ {
		id, err := c.AddBuilding(building.New(99, "B", 1, 1, full.Economy.BaseRent), 2)
		require.NoError(t, err)
		assert.Equal(t, i, id)
		assert.Equal(t, i, c.Buildings[i].ID)
	}
	_, err := c.AddBuilding(building.New(0, "B", 1, 1, full.Economy.BaseRent), 2)
	assert.ErrorIs(t, err, ErrNoCapacity)
	_, err = c.AddBuilding(building.New(0, "B", 1, 1, full.Economy.BaseRent), 9)
	assert.ErrorIs(t, err, building.ErrNotFound)

	n, ok := c.NeighborhoodFor(1)
	require.True(t, ok)
	assert.Equal(t, Industrial, n.Type)
	_, ok = c.NeighborhoodFor(5)
	assert.False(t, ok)
	assert.Equal(t, 1.0, c.RentDemand(5))
	assert.Equal(t, 3, c.TotalBuildingsManaged)

	_, ok = c.Building(3)
	assert.False(t, ok)
}

func TestNeighborhoodDriftStaysInBounds(t *testing.T) {
	cfg := config.Default().City
	rng := rand.New(rand.NewSource(21))
	for _, typ := range AllNeighborhoodTypes {
		n := NewNeighborhood(0, typ, typ.String(), cfg)
		last := n.Stats.Gentrification
		for i := 0; i < 500; i++ {
			n.Tick(rng)
			assert.GreaterOrEqual(t, n.Stats.CrimeLevel, 5)
			assert.LessOrEqual(t, n.Stats.CrimeLevel, 95)
			assert.GreaterOrEqual(t, n.Stats.RentDemand, 0.5)
			assert.LessOrEqual(t, n.Stats.RentDemand, 2.0)
			assert.GreaterOrEqual(t, n.Stats.Gentrification, last)
			last = n.Stats.Gentrification
		}
		if typ != Industrial {
			assert.Equal(t, StatsFor(typ, cfg).Gentrification, n.Stats.Gentrification)
		}
	}
}

func TestAddPressureCaps(t *testing.T) {
	n := NewNeighborhood(0, Downtown, "D", config.Default().City)
	n.AddPressure(50)
	assert.Equal(t, 100, n.Stats.Gentrification)
}

func TestFinancing(t *testing.T) {
	cfg := config.Default().City
	mortgage := FinancingOption{Kind: Mortgage, DownPaymentPercent: cfg.Mortgage.DownPaymentPercent, InterestRate: cfg.Mortgage.InterestRate, TermMonths: cfg.Mortgage.TermMonths}
	assert.Equal(t, 20000, mortgage.UpfrontCost(100000))
	assert.InDelta(t, 888, mortgage.MonthlyPayment(100000), 1)
	assert.Equal(t, "20% down, 6.0% APR, 120 month term", mortgage.Description())

	free := mortgage
	free.InterestRate = 0
	assert.Equal(t, 666, free.MonthlyPayment(100000))

	investor := FinancingOption{Kind: Investor, InvestmentPercent: 0.5, ProfitSharePercent: 0.3}
	assert.Equal(t, 50000, investor.UpfrontCost(100000))
	assert.Zero(t, investor.MonthlyPayment(100000))

	cash := FinancingOption{Kind: Cash}
	assert.Equal(t, 100000, cash.UpfrontCost(100000))
	assert.Equal(t, "Cash Purchase", cash.Name())
}

func TestConditionBands(t *testing.T) {
	cases := map[int]ConditionClass{0: Condemned, 20: Condemned, 21: Poor, 40: Poor, 41: Fair, 70: Fair, 71: Good, 90: Good, 91: Excellent, 99: Excellent}
	for roll, want := range cases {
		assert.Equal(t, want, classFromRoll(roll), "roll %d", roll)
	}
	assert.Equal(t, 0.3, Condemned.PriceMultiplier())
	assert.Equal(t, 90, Excellent.StartingCondition())
}

func TestGenerateListingInvariants(t *testing.T) {
	cfg := config.Default().City
	rng := rand.New(rand.NewSource(8))
	for _, typ := range AllNeighborhoodTypes {
		n := NewNeighborhood(int(typ), typ, typ.String(), cfg)
		for i := 0; i < 100; i++ {
			l := GenerateListing(rng, i, n, cfg)
			assert.GreaterOrEqual(t, l.Floors, 2)
			assert.LessOrEqual(t, l.Floors, 4)
			assert.GreaterOrEqual(t, l.UnitsPerFloor, 2)
			assert.LessOrEqual(t, l.UnitsPerFloor, 3)

			want := int(float64(cfg.BaseUnitPrices[typ.Key()]) * float64(l.TotalUnits()) * l.Condition.PriceMultiplier() * n.Stats.RentDemand)
			assert.Equal(t, want, l.AskingPrice)
			assert.LessOrEqual(t, l.ExistingTenants, l.TotalUnits()/2)
			if l.Condition == Condemned {
				assert.Zero(t, l.ExistingTenants)
			}

			assert.Equal(t, Cash, l.Financing[0].Kind)
			assert.Equal(t, 1+btoi(l.AskingPrice > 50000)+btoi(l.AskingPrice > 100000), len(l.Financing))
			assert.NotEmpty(t, l.Name)
			assert.Equal(t, n.ID, l.NeighborhoodID)
		}
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestListingPriceDrops(t *testing.T) {
	cfg := config.Default().City
	l := &PropertyListing{AskingPrice: 100000}
	for i := 0; i < 3; i++ {
		l.Tick(cfg)
	}
	assert.Equal(t, 100000, l.AskingPrice)
	l.Tick(cfg)
	assert.InDelta(t, 98000, l.AskingPrice, 1)
	l.Tick(cfg)
	assert.InDelta(t, 98000, l.AskingPrice, 1)
	l.Tick(cfg)
	assert.InDelta(t, 96040, l.AskingPrice, 2)
}

func TestMarketTickRemovesStaleListings(t *testing.T) {
	cfg := config.Default().City
	m := NewPropertyMarket()
	m.Listings = []*PropertyListing{{ID: 0, MonthsOnMarket: 11}, {ID: 1, MonthsOnMarket: 2}}
	m.Tick(cfg)
	require.Len(t, m.Listings, 1)
	assert.Equal(t, 1, m.Listings[0].ID)

	_, ok := m.Listing(1)
	assert.True(t, ok)
	assert.True(t, m.Remove(1))
	assert.False(t, m.Remove(1))
}

func TestRefreshCapsAndSkipsFullDistricts(t *testing.T) {
	cfg := config.Default().City
	rng := rand.New(rand.NewSource(4))
	c := NewCity("M", 1, cfg)

	for i := 0; i < 10; i++ {
		c.Market.Refresh(rng, c.Neighborhoods, cfg)
		assert.LessOrEqual(t, len(c.Market.Listings), cfg.MaxListings)
	}
	assert.Len(t, c.Market.Listings, cfg.MaxListings)
	assert.Equal(t, c.Market.NextListingID-cfg.MaxListings, c.Market.Listings[0].ID)

	for _, n := range c.Neighborhoods {
		n.AvailableSlots = 0
	}
	added := c.Market.Refresh(rng, c.Neighborhoods, cfg)
	assert.Empty(t, added)
}

func TestRefreshOnlyUsesOpenDistricts(t *testing.T) {
	cfg := config.Default().City
	rng := rand.New(rand.NewSource(12))
	c := NewCity("M", 1, cfg)
	for _, n := range c.Neighborhoods[:3] {
		n.AvailableSlots = 0
	}
	for i := 0; i < 5; i++ {
		for _, l := range c.Market.Refresh(rng, c.Neighborhoods, cfg) {
			assert.Equal(t, 3, l.NeighborhoodID)
			assert.Contains(t, l.Notes, "Historic preservation restrictions apply")
		}
	}
	assert.Len(t, c.Market.ForNeighborhood(3), len(c.Market.Listings))
}

func TestToBuilding(t *testing.T) {
	full := config.Default()
	l := &PropertyListing{Name: "Oak Court", Condition: Poor, Floors: 3, UnitsPerFloor: 3}
	b := l.ToBuilding(rand.New(rand.NewSource(2)), 4, full.Economy.BaseRent)

	assert.Equal(t, 4, b.ID)
	assert.Equal(t, "Oak Court", b.Name)
	assert.Len(t, b.Apartments, 9)
	assert.Equal(t, 30, b.HallwayCondition)
	for _, a := range b.Apartments {
		assert.GreaterOrEqual(t, a.Condition, 20)
		assert.LessOrEqual(t, a.Condition, 40)
	}
}

func TestCityTickEconomyBounds(t *testing.T) {
	cfg := config.Default().City
	c := NewCity("M", 99, cfg)
	rng := rand.New(rand.NewSource(5))

	listed := 0
	for month := 1; month <= 120; month++ {
		listed += len(c.Tick(rng, cfg))
		assert.Equal(t, month, c.TotalMonths)
		assert.GreaterOrEqual(t, c.EconomyHealth, 0.5)
		assert.LessOrEqual(t, c.EconomyHealth, 1.5)
		assert.GreaterOrEqual(t, c.InterestRate, 0.02)
		assert.LessOrEqual(t, c.InterestRate, 0.15)
		assert.InDelta(t, (c.EconomyHealth-0.7)*0.05, c.InflationRate, 1e-12)
	}
	assert.Positive(t, listed)
}

func TestCityTickIsDeterministic(t *testing.T) {
	cfg := config.Default().City
	run := func() *City {
		c := NewCity("M", 3, cfg)
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 24; i++ {
			c.Tick(rng, cfg)
		}
		return c
	}
	a, b := run(), run()
	assert.Equal(t, a.EconomyHealth, b.EconomyHealth)
	assert.Equal(t, a.InterestRate, b.InterestRate)
	assert.Equal(t, len(a.Market.Listings), len(b.Market.Listings))
}

func TestObligations(t *testing.T) {
	c := NewCity("M", 1, config.Default().City)
	loan := &Obligation{BuildingID: 1, Kind: LoanObligation, MonthlyPayment: 888, RemainingMonths: 2}
	share := &Obligation{BuildingID: 1, Kind: InvestorObligation, ProfitShare: 0.3}
	c.AddObligation(loan)
	c.AddObligation(share)

	assert.Equal(t, 888, c.MonthlyDebt())
	assert.Equal(t, 450, share.Due(1500))
	assert.Zero(t, share.Due(-10))

	c.SettleObligation(loan)
	assert.Len(t, c.Obligations, 2)
	c.SettleObligation(loan)
	require.Len(t, c.Obligations, 1)
	assert.Same(t, share, c.Obligations[0])
	c.SettleObligation(share)
	assert.Len(t, c.Obligations, 1)
}

func TestEstimateBuildingValue(t *testing.T) {
	full := config.Default()
	b := building.New(0, "B", 3, 2, full.Economy.BaseRent)
	assert.Equal(t, 165000, EstimateBuildingValue(b))

	b.Apartments[0].Design = building.DesignCozy
	b.Apartments[0].HasSoundproofing = true
	assert.Equal(t, 165000+40*500+2000, EstimateBuildingValue(b))
}
