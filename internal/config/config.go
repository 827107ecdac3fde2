// Package config holds every tunable constant of the simulation.
// Defaults mirror the shipped balance; files overlay them field by field.
package config

// Config is the full set of injected tuning values.
type Config struct {
	Version        string                     `json:"version"`
	Starting       StartingConfig             `json:"starting"`
	Economy        EconomyConfig              `json:"economy"`
	Decay          DecayConfig                `json:"decay"`
	Happiness      HappinessConfig            `json:"happiness"`
	Win            WinConfig                  `json:"win"`
	Applications   ApplicationConfig          `json:"applications"`
	Matching       MatchingConfig             `json:"matching"`
	Lease          LeaseConfig                `json:"lease"`
	Thresholds     ThresholdsConfig           `json:"thresholds"`
	OperatingCosts OperatingCostsConfig       `json:"operating_costs"`
	Vetting        VettingConfig              `json:"vetting"`
	Marketing      MarketingConfig            `json:"marketing"`
	RandomEvents   RandomEventsConfig         `json:"random_events"`
	Relationships  RelationshipsConfig        `json:"relationships"`
	Gentrification GentrificationConfig       `json:"gentrification"`
	Compliance     ComplianceConfig           `json:"compliance"`
	City           CityConfig                 `json:"city"`
	Archetypes     map[string]ArchetypeConfig `json:"archetypes"`
}

// StartingConfig describes a new game.
type StartingConfig struct {
	PlayerMoney   int    `json:"player_money"`
	CityName      string `json:"city_name"`
	BuildingName  string `json:"building_name"`
	Floors        int    `json:"floors"`
	UnitsPerFloor int    `json:"units_per_floor"`
	Neighborhood  int    `json:"neighborhood"`
}

type EconomyConfig struct {
	RepairCostPerPoint        int            `json:"repair_cost_per_point"`
	HallwayRepairCostPerPoint int            `json:"hallway_repair_cost_per_point"`
	DesignUpgradeCosts        map[string]int `json:"design_upgrade_costs"` // keyed by the design being upgraded from
	SoundproofingCost         int            `json:"soundproofing_cost"`
	KitchenUpgradeCost        int            `json:"kitchen_upgrade_cost"`
	LaundryCost               int            `json:"laundry_cost"`
	BaseRent                  map[string]int `json:"base_rent"`
	StaffCosts                map[string]int `json:"staff_costs"`
	CondoHOA                  int            `json:"condo_hoa"`
	CondoBuybackMarkup        float64        `json:"condo_buyback_markup"`
	OpenHouseCost             int            `json:"open_house_cost"`
	OpenHouseMonths           int            `json:"open_house_months"`
	MissedRentHappiness       int            `json:"missed_rent_happiness"`
	MissedRentChance          int            `json:"missed_rent_chance"`
	CriticalFailureChance     float64        `json:"critical_failure_chance"`
	BoilerRepairCost          int            `json:"boiler_repair_cost"`
	StructuralRepairCost      int            `json:"structural_repair_cost"`
}

type DecayConfig struct {
	ApartmentPerTick int `json:"apartment_per_tick"`
	HallwayPerTick   int `json:"hallway_per_tick"`
}

type HappinessConfig struct {
	Base                       int            `json:"base"`
	Starting                   int            `json:"starting"`
	MinForVictory              int            `json:"min_for_victory"`
	LeaveThreshold             int            `json:"leave_threshold"`
	UnhappyThreshold           int            `json:"unhappy_threshold"`
	TenureBonusMax             int            `json:"tenure_bonus_max"`
	RentBonusMultiplier        float64        `json:"rent_bonus_multiplier"`
	RentBonusCap               int            `json:"rent_bonus_cap"`
	RentPenaltyMultiplier      float64        `json:"rent_penalty_multiplier"`
	RentPenaltyCap             int            `json:"rent_penalty_cap"`
	ConditionBonusMultiplier   float64        `json:"condition_bonus_multiplier"`
	ConditionBonusCap          int            `json:"condition_bonus_cap"`
	ConditionPenaltyMultiplier float64        `json:"condition_penalty_multiplier"`
	ConditionPenaltyCap        int            `json:"condition_penalty_cap"`
	QuietBonus                 int            `json:"quiet_bonus"`
	NoisePenaltyBase           int            `json:"noise_penalty_base"`
	NoiseToleranceMultiplier   float64        `json:"noise_tolerance_multiplier"`
	QuietGateTolerance         int            `json:"quiet_gate_tolerance"`
	DesignPreferredBonus       int            `json:"design_preferred_bonus"`
	DesignHatedPenalty         int            `json:"design_hated_penalty"`
	DesignStyleModifiers       map[string]int `json:"design_style_modifiers"`
	HallwayBaseline            int            `json:"hallway_baseline"`
	HallwayMultiplier          float64        `json:"hallway_multiplier"`
	RelationshipBonusCap       int            `json:"relationship_bonus_cap"`
	NoiseComplaintThreshold    int            `json:"noise_complaint_threshold"`
	ConditionComplaintLimit    int            `json:"condition_complaint_threshold"`
}

type WinConfig struct {
	MinTicksForVictory int `json:"min_ticks_for_victory"`
	GameDurationTicks  int `json:"game_duration_ticks"`
}

type ApplicationConfig struct {
	ExpireAfterTicks     int                `json:"expire_after_ticks"`
	BasePerVacancy       float64            `json:"base_per_vacancy"`
	AppealBonusDivisor   int                `json:"appeal_bonus_divisor"`
	OpenHouseMultiplier  float64            `json:"open_house_multiplier"`
	MarketingMultipliers map[string]float64 `json:"marketing_multipliers"`
	// ScaleByDemand multiplies the target by neighbourhood rent demand.
	ScaleByDemand bool `json:"scale_by_demand"`
}

type MatchingConfig struct {
	BaseScore                   int `json:"base_score"`
	RentGreatThreshold          int `json:"rent_great_threshold"`
	RentGreatBonus              int `json:"rent_great_bonus"`
	RentFairBonus               int `json:"rent_fair_bonus"`
	RentSlightBand              int `json:"rent_slight_band"`
	RentSlightPenalty           int `json:"rent_slight_penalty"`
	RentUnaffordablePenalty     int `json:"rent_unaffordable_penalty"`
	ConditionExcellentThreshold int `json:"condition_excellent_threshold"`
	ConditionExcellentBonus     int `json:"condition_excellent_bonus"`
	ConditionGoodThreshold      int `json:"condition_good_threshold"`
	ConditionGoodBonus          int `json:"condition_good_bonus"`
	ConditionPoorThreshold      int `json:"condition_poor_threshold"`
	ConditionPoorPenalty        int `json:"condition_poor_penalty"`
	NoiseQuietBonus             int `json:"noise_quiet_bonus"`
	NoiseLoudPenalty            int `json:"noise_loud_penalty"`
	DesignPreferredBonus        int `json:"design_preferred_bonus"`
	SizeMediumBonus             int `json:"size_medium_bonus"`
}

type LeaseConfig struct {
	SecurityDepositMonths int     `json:"security_deposit_months"`
	DurationMonths        int     `json:"duration_months"`
	CleaningFee           int     `json:"cleaning_fee"`
	Deposit2MonthPenalty  float64 `json:"deposit_2_month_penalty"`
	Deposit3MonthPenalty  float64 `json:"deposit_3_month_penalty"`
	ShortLeaseBonus       float64 `json:"short_lease_bonus"`
	LongLeasePenalty      float64 `json:"long_lease_penalty"`
	GoodDealBonus         float64 `json:"good_deal_bonus"`
	ExpensivePenalty      float64 `json:"expensive_penalty"`
}

type ThresholdsConfig struct {
	PoorCondition     int `json:"poor_condition"`
	CriticalCondition int `json:"critical_condition"`
	AllLeftCheckTick  int `json:"all_left_check_tick"`
}

type OperatingCostsConfig struct {
	PropertyTaxRate            float64 `json:"property_tax_rate"`
	UtilityCostPerUnit         int     `json:"utility_cost_per_unit"`
	InsuranceBaseRate          int     `json:"insurance_base_rate"`
	InsuranceDiscount          int     `json:"insurance_good_condition_discount"`
	InsuranceDiscountThreshold int     `json:"insurance_good_condition_threshold"`
}

type VettingConfig struct {
	CreditCheckCost     int `json:"credit_check_cost"`
	BackgroundCheckCost int `json:"background_check_cost"`
}

type MarketingConfig struct {
	Costs map[string]int `json:"costs"`
	// Weights maps a marketing type to per-archetype draw weights.
	Weights map[string]map[string]int `json:"archetype_weights"`
}

type RandomEventsConfig struct {
	HeatwaveChance            int `json:"heatwave_chance"`
	PipeBurstChance           int `json:"pipe_burst_chance"`
	PipeBurstDamage           int `json:"pipe_burst_damage"`
	GentrificationPermille    int `json:"gentrification_permille"`
	GentrificationPressure    int `json:"gentrification_pressure"`
	InspectionChance          int `json:"inspection_chance"`
	InspectionChanceLowAppeal int `json:"inspection_chance_low_appeal"`
	InspectionAppealMin       int `json:"inspection_appeal_min"`
	InspectionFine            int `json:"inspection_fine"`
}

type RelationshipsConfig struct {
	Modifiers                   map[string]int `json:"happiness_modifiers"`
	InitialStrength             int            `json:"initial_strength"`
	FormationChance             int            `json:"formation_chance"`
	HostileCooldownChance       int            `json:"hostile_cooldown_chance"`
	HostileStrengthDecay        int            `json:"hostile_strength_decay"`
	HostileTransitionThreshold  int            `json:"hostile_transition_threshold"`
	SameArchetypeFriendlyChance int            `json:"same_archetype_friendly_chance"`
	AdjacentHostileChance       int            `json:"adjacent_hostile_chance"`
	MixedConflictChance         int            `json:"mixed_conflict_chance"`
	StrengthenAfterMonths       int            `json:"strengthen_after_months"`
	MaxRecentEvents             int            `json:"max_recent_events"`
}

type GentrificationConfig struct {
	AffordableThreshold          int            `json:"affordable_threshold"`
	RentIncreaseThresholdPercent int            `json:"rent_increase_threshold_percent"`
	RentIncreaseScoreDivisor     int            `json:"rent_increase_score_divisor"`
	MaxScore                     int            `json:"max_gentrification_score"`
	CouncilFormationThreshold    float64        `json:"council_formation_threshold"`
	CouncilMinTenants            int            `json:"council_min_tenants"`
	LongTermMonths               int            `json:"long_term_months"`
	DisplacementImpacts          map[string]int `json:"displacement_impacts"`
}

type ComplianceConfig struct {
	GracePeriodTicks         int                         `json:"grace_period_ticks"`
	MissedDeadlineFine       int                         `json:"missed_deadline_fine"`
	MissedDeadlineReputation int                         `json:"missed_deadline_reputation_penalty"`
	StartingReputation       int                         `json:"starting_reputation"`
	Regulations              map[string]RegulationConfig `json:"regulations"`
}

// RegulationConfig is one row of the regulation table. Threshold is a
// minimum condition for most regulations and a maximum average rent for
// rent control.
type RegulationConfig struct {
	BaseFine           int `json:"base_fine"`
	InspectionInterval int `json:"inspection_interval"`
	Threshold          int `json:"threshold"`
}

type CityConfig struct {
	Neighborhoods        map[string]NeighborhoodConfig `json:"neighborhoods"`
	SlotsPerNeighborhood int                           `json:"slots_per_neighborhood"`
	StartingReputation   int                           `json:"starting_reputation"`
	MarketRefreshEvery   int                           `json:"market_refresh_every"`
	MaxListings          int                           `json:"max_listings"`
	ListingMaxAge        int                           `json:"listing_max_age"`
	PriceDropAfter       int                           `json:"price_drop_after"`
	PriceDropRate        float64                       `json:"price_drop_rate"`
	BaseUnitPrices       map[string]int                `json:"base_unit_prices"`
	BusinessCycleScale   float64                       `json:"business_cycle_scale"`
	BusinessCycleAmp     float64                       `json:"business_cycle_amplitude"`
	Mortgage             MortgageConfig                `json:"mortgage"`
	Investor             InvestorConfig                `json:"investor"`
}

type NeighborhoodConfig struct {
	CrimeLevel     int     `json:"crime_level"`
	TransitAccess  int     `json:"transit_access"`
	Walkability    int     `json:"walkability"`
	SchoolQuality  int     `json:"school_quality"`
	Services       int     `json:"services"`
	RentDemand     float64 `json:"rent_demand"`
	Gentrification int     `json:"gentrification"`
}

type MortgageConfig struct {
	DownPaymentPercent float64 `json:"down_payment_percent"`
	InterestRate       float64 `json:"interest_rate"`
	TermMonths         int     `json:"term_months"`
	MinPrice           int     `json:"min_price"`
}

type InvestorConfig struct {
	InvestmentPercent  float64 `json:"investment_percent"`
	ProfitSharePercent float64 `json:"profit_share_percent"`
	MinPrice           int     `json:"min_price"`
}

// ArchetypeConfig is the preference profile and name pool of one tenant archetype.
type ArchetypeConfig struct {
	RentSensitivity      float64  `json:"rent_sensitivity"`
	ConditionSensitivity float64  `json:"condition_sensitivity"`
	NoiseSensitivity     float64  `json:"noise_sensitivity"`
	DesignSensitivity    float64  `json:"design_sensitivity"`
	IdealRentMax         int      `json:"ideal_rent_max"`
	MinCondition         int      `json:"min_acceptable_condition"`
	PrefersQuiet         bool     `json:"prefers_quiet"`
	PreferredDesign      string   `json:"preferred_design,omitempty"`
	HatedDesign          string   `json:"hated_design,omitempty"`
	Reliability          int      `json:"base_reliability"`
	Behavior             int      `json:"base_behavior"`
	Names                []string `json:"names"`
}
