package config

// Default returns the shipped balance. Every call builds fresh maps so callers
// may mutate the result freely.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Starting: StartingConfig{
			PlayerMoney:   5000,
			CityName:      "Metropolis",
			BuildingName:  "Sunset Apartments",
			Floors:        3,
			UnitsPerFloor: 2,
			Neighborhood:  0,
		},
		Economy: EconomyConfig{
			RepairCostPerPoint:        10,
			HallwayRepairCostPerPoint: 15,
			DesignUpgradeCosts: map[string]int{
				"bare":      500,
				"practical": 1000,
			},
			SoundproofingCost:  300,
			KitchenUpgradeCost: 800,
			LaundryCost:        2000,
			BaseRent: map[string]int{
				"small":  600,
				"medium": 900,
			},
			StaffCosts: map[string]int{
				"janitor":  200,
				"security": 400,
				"manager":  600,
			},
			CondoHOA:              200,
			CondoBuybackMarkup:    1.1,
			OpenHouseCost:         200,
			OpenHouseMonths:       2,
			MissedRentHappiness:   20,
			MissedRentChance:      30,
			CriticalFailureChance: 0.005,
			BoilerRepairCost:      1500,
			StructuralRepairCost:  2500,
		},
		Decay: DecayConfig{
			ApartmentPerTick: 2,
			HallwayPerTick:   1,
		},
		Happiness: HappinessConfig{
			Base:                       50,
			Starting:                   70,
			MinForVictory:              60,
			LeaveThreshold:             0,
			UnhappyThreshold:           30,
			TenureBonusMax:             12,
			RentBonusMultiplier:        0.02,
			RentBonusCap:               15,
			RentPenaltyMultiplier:      0.05,
			RentPenaltyCap:             -30,
			ConditionBonusMultiplier:   0.3,
			ConditionBonusCap:          20,
			ConditionPenaltyMultiplier: 0.5,
			ConditionPenaltyCap:        40,
			QuietBonus:                 10,
			NoisePenaltyBase:           -25,
			NoiseToleranceMultiplier:   0.3,
			QuietGateTolerance:         40,
			DesignPreferredBonus:       20,
			DesignHatedPenalty:         -25,
			DesignStyleModifiers: map[string]int{
				"bare":      -5,
				"practical": 5,
				"cozy":      10,
			},
			HallwayBaseline:         50,
			HallwayMultiplier:       0.1,
			RelationshipBonusCap:    20,
			NoiseComplaintThreshold: -10,
			ConditionComplaintLimit: -15,
		},
		Win: WinConfig{
			MinTicksForVictory: 6,
			GameDurationTicks:  36,
		},
		Applications: ApplicationConfig{
			ExpireAfterTicks:    3,
			BasePerVacancy:      0.5,
			AppealBonusDivisor:  50,
			OpenHouseMultiplier: 2.0,
			MarketingMultipliers: map[string]float64{
				"none":            1.0,
				"social_media":    2.0,
				"local_newspaper": 1.5,
				"premium_agency":  0.8,
			},
		},
		Matching: MatchingConfig{
			BaseScore:                   50,
			RentGreatThreshold:          200,
			RentGreatBonus:              15,
			RentFairBonus:               8,
			RentSlightBand:              -100,
			RentSlightPenalty:           -5,
			RentUnaffordablePenalty:     -20,
			ConditionExcellentThreshold: 80,
			ConditionExcellentBonus:     15,
			ConditionGoodThreshold:      60,
			ConditionGoodBonus:          8,
			ConditionPoorThreshold:      50,
			ConditionPoorPenalty:        10,
			NoiseQuietBonus:             12,
			NoiseLoudPenalty:            15,
			DesignPreferredBonus:        18,
			SizeMediumBonus:             5,
		},
		Lease: LeaseConfig{
			SecurityDepositMonths: 1,
			DurationMonths:        12,
			CleaningFee:           0,
			Deposit2MonthPenalty:  0.15,
			Deposit3MonthPenalty:  0.35,
			ShortLeaseBonus:       0.1,
			LongLeasePenalty:      0.15,
			GoodDealBonus:         0.1,
			ExpensivePenalty:      0.1,
		},
		Thresholds: ThresholdsConfig{
			PoorCondition:     40,
			CriticalCondition: 20,
			AllLeftCheckTick:  3,
		},
		OperatingCosts: OperatingCostsConfig{
			PropertyTaxRate:            0.10,
			UtilityCostPerUnit:         50,
			InsuranceBaseRate:          150,
			InsuranceDiscount:          50,
			InsuranceDiscountThreshold: 80,
		},
		Vetting: VettingConfig{
			CreditCheckCost:     25,
			BackgroundCheckCost: 10,
		},
		Marketing: MarketingConfig{
			Costs: map[string]int{
				"none":            0,
				"social_media":    50,
				"local_newspaper": 150,
				"premium_agency":  500,
			},
			Weights: map[string]map[string]int{
				"none":            {"student": 35, "professional": 25, "family": 15, "elderly": 10, "artist": 15},
				"social_media":    {"student": 50, "artist": 30, "professional": 10, "family": 10},
				"local_newspaper": {"student": 15, "professional": 15, "family": 30, "elderly": 30, "artist": 10},
				"premium_agency":  {"student": 5, "professional": 60, "family": 20, "elderly": 10, "artist": 5},
			},
		},
		RandomEvents: RandomEventsConfig{
			HeatwaveChance:            2,
			PipeBurstChance:           3,
			PipeBurstDamage:           30,
			GentrificationPermille:    5,
			GentrificationPressure:    5,
			InspectionChance:          1,
			InspectionChanceLowAppeal: 5,
			InspectionAppealMin:       40,
			InspectionFine:            500,
		},
		Relationships: RelationshipsConfig{
			Modifiers: map[string]int{
				"friendly": 5,
				"neutral":  0,
				"hostile":  -10,
				"romantic": 8,
				"family":   10,
			},
			InitialStrength:             50,
			FormationChance:             5,
			HostileCooldownChance:       5,
			HostileStrengthDecay:        5,
			HostileTransitionThreshold:  20,
			SameArchetypeFriendlyChance: 60,
			AdjacentHostileChance:       30,
			MixedConflictChance:         20,
			StrengthenAfterMonths:       6,
			MaxRecentEvents:             5,
		},
		Gentrification: GentrificationConfig{
			AffordableThreshold:          700,
			RentIncreaseThresholdPercent: 10,
			RentIncreaseScoreDivisor:     5,
			MaxScore:                     100,
			CouncilFormationThreshold:    0.4,
			CouncilMinTenants:            4,
			LongTermMonths:               12,
			DisplacementImpacts: map[string]int{
				"rent_increase":               10,
				"unit_conversion":             15,
				"renovation":                  8,
				"eviction":                    20,
				"neighborhood_gentrification": 5,
				"building_sold":               12,
			},
		},
		Compliance: ComplianceConfig{
			GracePeriodTicks:         3,
			MissedDeadlineFine:       500,
			MissedDeadlineReputation: 15,
			StartingReputation:       100,
			Regulations: map[string]RegulationConfig{
				"fire_safety":           {BaseFine: 2000, InspectionInterval: 12, Threshold: 40},
				"electrical":            {BaseFine: 1500, InspectionInterval: 24, Threshold: 35},
				"plumbing":              {BaseFine: 1000, InspectionInterval: 18, Threshold: 45},
				"structural":            {BaseFine: 3000, InspectionInterval: 36, Threshold: 30},
				"historic_preservation": {BaseFine: 5000, InspectionInterval: 6, Threshold: 55},
				"health_sanitation":     {BaseFine: 1000, InspectionInterval: 6, Threshold: 35},
			},
		},
		City: CityConfig{
			Neighborhoods: map[string]NeighborhoodConfig{
				"downtown":   {CrimeLevel: 40, TransitAccess: 95, Walkability: 90, SchoolQuality: 50, Services: 95, RentDemand: 1.2, Gentrification: 80},
				"suburbs":    {CrimeLevel: 15, TransitAccess: 40, Walkability: 30, SchoolQuality: 85, Services: 60, RentDemand: 1.0, Gentrification: 20},
				"industrial": {CrimeLevel: 50, TransitAccess: 60, Walkability: 50, SchoolQuality: 35, Services: 45, RentDemand: 0.9, Gentrification: 60},
				"historic":   {CrimeLevel: 25, TransitAccess: 70, Walkability: 75, SchoolQuality: 65, Services: 80, RentDemand: 1.1, Gentrification: 40},
			},
			SlotsPerNeighborhood: 3,
			StartingReputation:   50,
			MarketRefreshEvery:   3,
			MaxListings:          8,
			ListingMaxAge:        12,
			PriceDropAfter:       3,
			PriceDropRate:        0.98,
			BaseUnitPrices: map[string]int{
				"downtown":   80000,
				"suburbs":    60000,
				"industrial": 40000,
				"historic":   70000,
			},
			BusinessCycleScale: 0.08,
			BusinessCycleAmp:   0.1,
			Mortgage: MortgageConfig{
				DownPaymentPercent: 0.2,
				InterestRate:       0.06,
				TermMonths:         120,
				MinPrice:           50000,
			},
			Investor: InvestorConfig{
				InvestmentPercent:  0.5,
				ProfitSharePercent: 0.3,
				MinPrice:           100000,
			},
		},
		Archetypes: map[string]ArchetypeConfig{
			"student": {
				RentSensitivity: 0.9, ConditionSensitivity: 0.3, NoiseSensitivity: 0.4, DesignSensitivity: 0.2,
				IdealRentMax: 750, MinCondition: 30, PrefersQuiet: false,
				Reliability: 55, Behavior: 50,
				Names: []string{"Alex", "Jordan", "Casey", "Riley", "Morgan", "Sam", "Taylor", "Jamie", "Quinn", "Avery"},
			},
			"professional": {
				RentSensitivity: 0.4, ConditionSensitivity: 0.8, NoiseSensitivity: 0.9, DesignSensitivity: 0.5,
				IdealRentMax: 1200, MinCondition: 60, PrefersQuiet: true,
				Reliability: 90, Behavior: 85,
				Names: []string{"Michael", "Sarah", "David", "Jennifer", "Robert", "Lisa", "James", "Amanda", "William", "Elizabeth"},
			},
			"artist": {
				RentSensitivity: 0.6, ConditionSensitivity: 0.5, NoiseSensitivity: 0.5, DesignSensitivity: 0.95,
				IdealRentMax: 900, MinCondition: 40, PrefersQuiet: false,
				PreferredDesign: "cozy", HatedDesign: "bare",
				Reliability: 60, Behavior: 70,
				Names: []string{"Luna", "River", "Sky", "Echo", "Rain", "Ash", "Sage", "Raven", "Nova", "Orion", "Willow", "Jasper"},
			},
			"family": {
				RentSensitivity: 0.7, ConditionSensitivity: 0.7, NoiseSensitivity: 1.0, DesignSensitivity: 0.4,
				IdealRentMax: 1100, MinCondition: 50, PrefersQuiet: true,
				PreferredDesign: "practical",
				Reliability: 80, Behavior: 75,
				Names: []string{"The Smiths", "The Garcias", "The Kims", "The Patels", "The Joneses", "The Wangs", "The Johnsons", "The Millers"},
			},
			"elderly": {
				RentSensitivity: 0.8, ConditionSensitivity: 0.6, NoiseSensitivity: 0.9, DesignSensitivity: 0.3,
				IdealRentMax: 800, MinCondition: 45, PrefersQuiet: true,
				HatedDesign: "bare",
				Reliability: 95, Behavior: 90,
				Names: []string{"Mrs. Higgins", "Mr. Abernathy", "Betty", "Harold", "Martha", "Walter", "Ethel", "Arthur"},
			},
		},
	}
}
