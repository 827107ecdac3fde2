package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/city"
	"github.com/talgya/tenement/internal/consequences"
	"github.com/talgya/tenement/internal/economy"
	"github.com/talgya/tenement/internal/tenant"
)

// Errors returned by rejected intents. Lookups and validation reuse the
// sentinels of the packages that own the data.
var (
	ErrNotFound          = building.ErrNotFound
	ErrNotApplicable     = building.ErrNotApplicable
	ErrInsufficientFunds = economy.ErrInsufficientFunds
	ErrInvalidIndex      = errors.New("invalid application index")
	ErrGameOver          = errors.New("campaign is over")
)

// IntentKind is one thing the player can ask for.
type IntentKind uint8

const (
	IntentRepairApartment IntentKind = iota
	IntentUpgradeDesign
	IntentAddSoundproofing
	IntentRepairHallway
	IntentUpgradeKitchen
	IntentInstallLaundry
	IntentSetRent
	IntentSetListed
	IntentAcceptApplication
	IntentRejectApplication
	IntentCreditCheck
	IntentBackgroundCheck
	IntentSetMarketing
	IntentStartOpenHouse
	IntentHireStaff
	IntentFireStaff
	IntentSellCondo
	IntentBuybackCondo
	IntentPurchaseBuilding
	IntentEndTurn
)

var intentNames = [...]string{
	IntentRepairApartment:   "repair_apartment",
	IntentUpgradeDesign:     "upgrade_design",
	IntentAddSoundproofing:  "add_soundproofing",
	IntentRepairHallway:     "repair_hallway",
	IntentUpgradeKitchen:    "upgrade_kitchen",
	IntentInstallLaundry:    "install_laundry",
	IntentSetRent:           "set_rent",
	IntentSetListed:         "set_listed",
	IntentAcceptApplication: "accept_application",
	IntentRejectApplication: "reject_application",
	IntentCreditCheck:       "credit_check",
	IntentBackgroundCheck:   "background_check",
	IntentSetMarketing:      "set_marketing",
	IntentStartOpenHouse:    "start_open_house",
	IntentHireStaff:         "hire_staff",
	IntentFireStaff:         "fire_staff",
	IntentSellCondo:         "sell_condo",
	IntentBuybackCondo:      "buyback_condo",
	IntentPurchaseBuilding:  "purchase_building",
	IntentEndTurn:           "end_turn",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return "unknown"
}

// Intent is a queued player request. Only the fields its kind reads are set.
type Intent struct {
	Kind        IntentKind             `json:"kind"`
	BuildingID  int                    `json:"building_id,omitempty"`
	ApartmentID int                    `json:"apartment_id,omitempty"`
	Index       int                    `json:"index,omitempty"`  // position in Applications
	Amount      int                    `json:"amount,omitempty"` // repair points or rent
	Listed      bool                   `json:"listed,omitempty"`
	Marketing   building.MarketingType `json:"marketing,omitempty"`
	Staff       building.StaffRole     `json:"staff,omitempty"`
	ListingID   int                    `json:"listing_id,omitempty"`
	Financing   city.FinancingKind     `json:"financing,omitempty"`
}

func RepairApartment(buildingID, aptID, amount int) Intent {
	return Intent{Kind: IntentRepairApartment, BuildingID: buildingID, ApartmentID: aptID, Amount: amount}
}

func UpgradeDesign(buildingID, aptID int) Intent {
	return Intent{Kind: IntentUpgradeDesign, BuildingID: buildingID, ApartmentID: aptID}
}

func AddSoundproofing(buildingID, aptID int) Intent {
	return Intent{Kind: IntentAddSoundproofing, BuildingID: buildingID, ApartmentID: aptID}
}

func RepairHallway(buildingID, amount int) Intent {
	return Intent{Kind: IntentRepairHallway, BuildingID: buildingID, Amount: amount}
}

func UpgradeKitchen(buildingID, aptID int) Intent {
	return Intent{Kind: IntentUpgradeKitchen, BuildingID: buildingID, ApartmentID: aptID}
}

func InstallLaundry(buildingID int) Intent {
	return Intent{Kind: IntentInstallLaundry, BuildingID: buildingID}
}

func SetRent(buildingID, aptID, rent int) Intent {
	return Intent{Kind: IntentSetRent, BuildingID: buildingID, ApartmentID: aptID, Amount: rent}
}

func SetListed(buildingID, aptID int, listed bool) Intent {
	return Intent{Kind: IntentSetListed, BuildingID: buildingID, ApartmentID: aptID, Listed: listed}
}

func AcceptApplication(index int) Intent {
	return Intent{Kind: IntentAcceptApplication, Index: index}
}

func RejectApplication(index int) Intent {
	return Intent{Kind: IntentRejectApplication, Index: index}
}

func CreditCheck(index int) Intent {
	return Intent{Kind: IntentCreditCheck, Index: index}
}

func BackgroundCheck(index int) Intent {
	return Intent{Kind: IntentBackgroundCheck, Index: index}
}

func SetMarketing(buildingID int, m building.MarketingType) Intent {
	return Intent{Kind: IntentSetMarketing, BuildingID: buildingID, Marketing: m}
}

func StartOpenHouse(buildingID int) Intent {
	return Intent{Kind: IntentStartOpenHouse, BuildingID: buildingID}
}

func HireStaff(buildingID int, role building.StaffRole) Intent {
	return Intent{Kind: IntentHireStaff, BuildingID: buildingID, Staff: role}
}

func FireStaff(buildingID int, role building.StaffRole) Intent {
	return Intent{Kind: IntentFireStaff, BuildingID: buildingID, Staff: role}
}

func SellCondo(buildingID, aptID int) Intent {
	return Intent{Kind: IntentSellCondo, BuildingID: buildingID, ApartmentID: aptID}
}

func BuybackCondo(buildingID, aptID int) Intent {
	return Intent{Kind: IntentBuybackCondo, BuildingID: buildingID, ApartmentID: aptID}
}

func PurchaseBuilding(listingID int, financing city.FinancingKind) Intent {
	return Intent{Kind: IntentPurchaseBuilding, ListingID: listingID, Financing: financing}
}

func EndTurn() Intent {
	return Intent{Kind: IntentEndTurn}
}

// IntentResult is the outcome of one drained intent.
type IntentResult struct {
	Intent  Intent
	Message string
	Err     error
	Tick    *TickResult // set by EndTurn
}

// Queue appends intents for the next Drain.
func (s *Simulation) Queue(in ...Intent) {
	s.queue = append(s.queue, in...)
}

// Pending reports how many intents are waiting.
func (s *Simulation) Pending() int {
	return len(s.queue)
}

// Drain applies queued intents in FIFO order. A rejected intent does not stop
// the ones after it.
func (s *Simulation) Drain() []IntentResult {
	q := s.queue
	s.queue = nil
	out := make([]IntentResult, 0, len(q))
	for _, in := range q {
		r := IntentResult{Intent: in}
		if in.Kind == IntentEndTurn {
			if s.Ended() {
				r.Err = ErrGameOver
			} else {
				tr := s.Tick()
				r.Tick = &tr
				r.Message = fmt.Sprintf("Advanced to %s", SimTime(tr.Tick))
			}
		} else {
			r.Message, r.Err = s.Apply(in)
		}
		out = append(out, r)
	}
	return out
}

// Apply executes one intent immediately. A rejected intent changes nothing
// but the event log.
func (s *Simulation) Apply(in Intent) (string, error) {
	if s.Ended() {
		return "", ErrGameOver
	}
	msg, err := s.apply(in)
	if err != nil {
		s.emit(s.month(), CategoryAction, "Could not %s: %v", in.Kind, err)
		slog.Debug("intent rejected", "kind", in.Kind, "error", err)
		return "", err
	}
	s.emit(s.month(), CategoryAction, "%s", msg)
	s.updateStats()
	return msg, nil
}

func (s *Simulation) apply(in Intent) (string, error) {
	switch in.Kind {
	case IntentRepairApartment:
		return s.upgrade(in.BuildingID, building.RepairApartment(in.ApartmentID, in.Amount))
	case IntentUpgradeDesign:
		return s.upgrade(in.BuildingID, building.UpgradeDesign(in.ApartmentID))
	case IntentAddSoundproofing:
		return s.upgrade(in.BuildingID, building.AddSoundproofing(in.ApartmentID))
	case IntentRepairHallway:
		return s.upgrade(in.BuildingID, building.RepairHallway(in.Amount))
	case IntentUpgradeKitchen:
		return s.upgrade(in.BuildingID, building.UpgradeKitchenLevel(in.ApartmentID))
	case IntentInstallLaundry:
		return s.upgrade(in.BuildingID, building.InstallLaundry())
	case IntentSetRent:
		return s.setRent(in.BuildingID, in.ApartmentID, in.Amount)
	case IntentSetListed:
		return s.setListed(in.BuildingID, in.ApartmentID, in.Listed)
	case IntentAcceptApplication:
		return s.acceptApplication(in.Index)
	case IntentRejectApplication:
		return s.rejectApplication(in.Index)
	case IntentCreditCheck:
		return s.creditCheck(in.Index)
	case IntentBackgroundCheck:
		return s.backgroundCheck(in.Index)
	case IntentSetMarketing:
		return s.setMarketing(in.BuildingID, in.Marketing)
	case IntentStartOpenHouse:
		return s.startOpenHouse(in.BuildingID)
	case IntentHireStaff:
		return s.setStaff(in.BuildingID, in.Staff, true)
	case IntentFireStaff:
		return s.setStaff(in.BuildingID, in.Staff, false)
	case IntentSellCondo:
		return s.sellCondo(in.BuildingID, in.ApartmentID)
	case IntentBuybackCondo:
		return s.buybackCondo(in.BuildingID, in.ApartmentID)
	case IntentPurchaseBuilding:
		return s.purchaseBuilding(in.ListingID, in.Financing)
	case IntentEndTurn:
		tr := s.Tick()
		return fmt.Sprintf("Advanced to %s", SimTime(tr.Tick)), nil
	}
	return "", fmt.Errorf("intent %d: %w", in.Kind, ErrNotApplicable)
}

func (s *Simulation) findBuilding(id int) (*building.Building, error) {
	b, ok := s.City.Building(id)
	if !ok {
		return nil, fmt.Errorf("building %d: %w", id, ErrNotFound)
	}
	return b, nil
}

func (s *Simulation) findApartment(buildingID, aptID int) (*building.Building, *building.Apartment, error) {
	b, err := s.findBuilding(buildingID)
	if err != nil {
		return nil, nil, err
	}
	apt, ok := b.Apartment(aptID)
	if !ok {
		return nil, nil, fmt.Errorf("%s apartment %d: %w", b.Name, aptID, ErrNotFound)
	}
	return b, apt, nil
}

func (s *Simulation) application(index int) (*tenant.Application, error) {
	if index < 0 || index >= len(s.Applications) {
		return nil, fmt.Errorf("%d of %d: %w", index, len(s.Applications), ErrInvalidIndex)
	}
	return s.Applications[index], nil
}

func (s *Simulation) upgrade(buildingID int, action building.UpgradeAction) (string, error) {
	b, err := s.findBuilding(buildingID)
	if err != nil {
		return "", err
	}
	label := action.Label(b)
	cost, err := economy.ProcessUpgrade(action, b, s.Funds, s.month(), s.cfg.Economy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s for $%s", b.Name, label, humanize.Comma(int64(cost))), nil
}

func (s *Simulation) setRent(buildingID, aptID, rent int) (string, error) {
	b, apt, err := s.findApartment(buildingID, aptID)
	if err != nil {
		return "", err
	}
	if rent <= 0 {
		return "", fmt.Errorf("rent $%d: %w", rent, ErrNotApplicable)
	}
	if apt.IsCondo {
		return "", fmt.Errorf("unit %s is a condo: %w", apt.UnitNumber, ErrNotApplicable)
	}
	old := apt.RentPrice
	apt.RentPrice = rent
	if old != rent {
		s.Gentrification.RecordRentChange(b.ID, s.month(), old, rent, s.cfg.Gentrification)
	}
	if apt.TenantID != nil {
		s.Network.UpdateRent(*apt.TenantID, rent)
	}
	return fmt.Sprintf("%s: Unit %s rent set to $%d (was $%d)", b.Name, apt.UnitNumber, rent, old), nil
}

func (s *Simulation) setListed(buildingID, aptID int, listed bool) (string, error) {
	b, apt, err := s.findApartment(buildingID, aptID)
	if err != nil {
		return "", err
	}
	if apt.IsCondo {
		return "", fmt.Errorf("unit %s is a condo: %w", apt.UnitNumber, ErrNotApplicable)
	}
	apt.IsListed = listed
	if listed {
		return fmt.Sprintf("%s: Unit %s listed for rent", b.Name, apt.UnitNumber), nil
	}
	return fmt.Sprintf("%s: Unit %s taken off the market", b.Name, apt.UnitNumber), nil
}

// acceptApplication signs the applicant into the apartment they applied for.
func (s *Simulation) acceptApplication(index int) (string, error) {
	app, err := s.application(index)
	if err != nil {
		return "", err
	}
	b, apt, err := s.findApartment(app.BuildingID, app.ApartmentID)
	if err != nil {
		return "", err
	}
	if !apt.IsAvailable() {
		return "", fmt.Errorf("unit %s is not available: %w", apt.UnitNumber, ErrNotApplicable)
	}

	t := app.Tenant
	offer := tenant.NewLeaseOffer(apt.RentPrice, s.cfg.Lease)
	slog.Debug("lease offer",
		"tenant", t.Name,
		"rent", offer.RentPrice,
		"accept_probability", tenant.EvaluateLeaseOffer(t, offer, s.cfg),
		"leverage", t.NegotiationLeverage(),
	)

	if err := tenant.SignLease(t, b, apt); err != nil {
		return "", err
	}
	s.Applications = slices.Delete(s.Applications, index, index+1)
	s.Tenants = append(s.Tenants, t)
	s.WasEverOccupied = true
	s.Network.RecordMoveIn(t, apt.RentPrice, s.month())
	return fmt.Sprintf("%s moved into Unit %s at %s", t.Name, apt.UnitNumber, b.Name), nil
}

func (s *Simulation) rejectApplication(index int) (string, error) {
	app, err := s.application(index)
	if err != nil {
		return "", err
	}
	s.Applications = slices.Delete(s.Applications, index, index+1)
	return fmt.Sprintf("Rejected %s's application", app.Tenant.Name), nil
}

func (s *Simulation) creditCheck(index int) (string, error) {
	app, err := s.application(index)
	if err != nil {
		return "", err
	}
	if app.RevealedReliability {
		return "", fmt.Errorf("credit already checked: %w", ErrNotApplicable)
	}
	cost := s.cfg.Vetting.CreditCheckCost
	tx := economy.Expense(economy.Vetting, cost, "Credit check: "+app.Tenant.Name, s.month())
	if !s.Funds.DeductExpense(tx) {
		return "", fmt.Errorf("credit check costs $%d: %w", cost, ErrInsufficientFunds)
	}
	r, _ := app.CreditCheck()
	return fmt.Sprintf("Credit check on %s: %d. %s", app.Tenant.Name, r.ReliabilityScore, r.Recommendation), nil
}

func (s *Simulation) backgroundCheck(index int) (string, error) {
	app, err := s.application(index)
	if err != nil {
		return "", err
	}
	if app.RevealedBehavior {
		return "", fmt.Errorf("background already checked: %w", ErrNotApplicable)
	}
	cost := s.cfg.Vetting.BackgroundCheckCost
	tx := economy.Expense(economy.Vetting, cost, "Background check: "+app.Tenant.Name, s.month())
	if !s.Funds.DeductExpense(tx) {
		return "", fmt.Errorf("background check costs $%d: %w", cost, ErrInsufficientFunds)
	}
	r, _ := app.BackgroundCheck()
	return fmt.Sprintf("Background check on %s: %d. %s", app.Tenant.Name, r.BehaviorScore, r.HistoryNotes), nil
}

func (s *Simulation) setMarketing(buildingID int, m building.MarketingType) (string, error) {
	b, err := s.findBuilding(buildingID)
	if err != nil {
		return "", err
	}
	if !slices.Contains(building.AllMarketing, m) {
		return "", fmt.Errorf("marketing %q: %w", m, ErrNotFound)
	}
	if b.Marketing == m {
		return "", fmt.Errorf("%s already runs %s: %w", b.Name, m.Label(), ErrNotApplicable)
	}
	b.Marketing = m
	return fmt.Sprintf("%s: marketing set to %s ($%d/month)", b.Name, m.Label(), s.cfg.Marketing.Costs[string(m)]), nil
}

func (s *Simulation) startOpenHouse(buildingID int) (string, error) {
	b, err := s.findBuilding(buildingID)
	if err != nil {
		return "", err
	}
	if b.OpenHouseRemaining > 0 {
		return "", fmt.Errorf("%s open house already running: %w", b.Name, ErrNotApplicable)
	}
	ec := s.cfg.Economy
	tx := economy.Expense(economy.Marketing, ec.OpenHouseCost, b.Name+": open house", s.month())
	if !s.Funds.DeductExpense(tx) {
		return "", fmt.Errorf("open house costs $%d: %w", ec.OpenHouseCost, ErrInsufficientFunds)
	}
	b.OpenHouseRemaining = ec.OpenHouseMonths
	return fmt.Sprintf("%s: open house for %d months", b.Name, ec.OpenHouseMonths), nil
}

func (s *Simulation) setStaff(buildingID int, role building.StaffRole, hire bool) (string, error) {
	b, err := s.findBuilding(buildingID)
	if err != nil {
		return "", err
	}
	if !slices.Contains(building.AllStaff, role) {
		return "", fmt.Errorf("staff role %q: %w", role, ErrNotFound)
	}
	if b.Staff.Has(role) == hire {
		return "", fmt.Errorf("%s %s: %w", b.Name, role, ErrNotApplicable)
	}
	b.Staff.Set(role, hire)
	if hire {
		return fmt.Sprintf("%s: hired a %s ($%d/month)", b.Name, role, s.cfg.Economy.StaffCosts[string(role)]), nil
	}
	return fmt.Sprintf("%s: let the %s go", b.Name, role), nil
}

// sellCondo sells a unit at market value. A sitting tenant is displaced, but
// only once the unit is known to be sellable.
func (s *Simulation) sellCondo(buildingID, aptID int) (string, error) {
	b, apt, err := s.findApartment(buildingID, aptID)
	if err != nil {
		return "", err
	}
	if _, err := b.Convertible(apt.ID); err != nil {
		return "", err
	}
	price := apt.MarketValue()
	month := s.month()

	if apt.TenantID != nil {
		if t, ok := s.Tenant(*apt.TenantID); ok {
			s.displace(t, b.ID, apt.RentPrice, consequences.UnitConversion, month)
			s.Network.Remove(t.ID)
			s.Network.RecordMoveOut(t.ID)
			tenant.EndLease(t, apt)
			s.removeTenant(t.ID)
		} else {
			apt.MoveOut()
		}
	}
	if err := b.ConvertToCondo(apt.ID, "Private owner", price, s.cfg.Economy.CondoHOA); err != nil {
		return "", err
	}
	s.dropApplicationsFor(b.ID, apt.ID)
	s.Funds.AddIncome(economy.Income(economy.AssetSale, price, fmt.Sprintf("%s: condo sale of Unit %s", b.Name, apt.UnitNumber), month))
	return fmt.Sprintf("%s: sold Unit %s as a condo for $%s", b.Name, apt.UnitNumber, humanize.Comma(int64(price))), nil
}

func (s *Simulation) buybackCondo(buildingID, aptID int) (string, error) {
	b, apt, err := s.findApartment(buildingID, aptID)
	if err != nil {
		return "", err
	}
	price, err := b.BuybackPrice(aptID, s.cfg.Economy.CondoBuybackMarkup)
	if err != nil {
		return "", err
	}
	tx := economy.Expense(economy.BuildingPurchase, price, fmt.Sprintf("%s: condo buyback of Unit %s", b.Name, apt.UnitNumber), s.month())
	if !s.Funds.DeductExpense(tx) {
		return "", fmt.Errorf("buyback costs $%d: %w", price, ErrInsufficientFunds)
	}
	b.BuybackCondo(aptID)
	return fmt.Sprintf("%s: bought back Unit %s for $%s", b.Name, apt.UnitNumber, humanize.Comma(int64(price))), nil
}

// purchaseBuilding closes on a listing with the chosen financing. The
// existing tenants come with the building.
func (s *Simulation) purchaseBuilding(listingID int, kind city.FinancingKind) (string, error) {
	l, ok := s.City.Market.Listing(listingID)
	if !ok {
		return "", fmt.Errorf("listing %d: %w", listingID, ErrNotFound)
	}
	idx := slices.IndexFunc(l.Financing, func(f city.FinancingOption) bool { return f.Kind == kind })
	if idx < 0 {
		return "", fmt.Errorf("%s cannot be bought that way: %w", l.Name, ErrNotApplicable)
	}
	opt := l.Financing[idx]
	n, ok := s.City.Neighborhood(l.NeighborhoodID)
	if !ok {
		return "", fmt.Errorf("neighborhood %d: %w", l.NeighborhoodID, ErrNotFound)
	}
	if !n.CanAddBuilding() {
		return "", fmt.Errorf("%s: %w", n.Name, city.ErrNoCapacity)
	}
	upfront := opt.UpfrontCost(l.AskingPrice)
	if !s.Funds.CanAfford(upfront) {
		return "", fmt.Errorf("%s needs $%s upfront: %w", l.Name, humanize.Comma(int64(upfront)), ErrInsufficientFunds)
	}

	month := s.month()
	b := l.ToBuilding(s.rng, len(s.City.Buildings), s.cfg.Economy.BaseRent)
	id, err := s.City.AddBuilding(b, n.ID)
	if err != nil {
		return "", err
	}
	s.Funds.DeductExpense(economy.Expense(economy.BuildingPurchase, upfront, fmt.Sprintf("%s: %s", l.Name, opt.Name()), month))
	s.Compliance.InitBuilding(id, n.Type.Key(), s.cfg.Compliance)

	switch opt.Kind {
	case city.Mortgage:
		s.City.AddObligation(&city.Obligation{
			BuildingID:      id,
			Kind:            city.LoanObligation,
			Lender:          "Bank mortgage",
			MonthlyPayment:  opt.MonthlyPayment(l.AskingPrice),
			RemainingMonths: opt.TermMonths,
		})
	case city.Investor:
		s.City.AddObligation(&city.Obligation{
			BuildingID:  id,
			Kind:        city.InvestorObligation,
			Lender:      "Investor partner",
			ProfitShare: opt.ProfitSharePercent,
		})
	}

	housed := s.houseExistingTenants(b, l.ExistingTenants, month)
	s.City.Market.Remove(l.ID)
	slog.Info("building purchased", "building", b.Name, "neighborhood", n.Name, "price", l.AskingPrice, "financing", opt.Name(), "tenants", housed)
	return fmt.Sprintf("Bought %s in %s for $%s (%s), %d sitting tenants",
		b.Name, n.Name, humanize.Comma(int64(l.AskingPrice)), opt.Name(), housed), nil
}

// houseExistingTenants moves sitting tenants into a newly bought building.
// They already hold leases, so no minimum gate applies; each takes the best
// matching vacant unit, or the first one when none scores.
func (s *Simulation) houseExistingTenants(b *building.Building, count int, month uint64) int {
	housed := 0
	for i := 0; i < count; i++ {
		vacant := b.Vacant()
		if len(vacant) == 0 {
			break
		}
		arch := tenant.PickArchetype(s.rng, building.MarketingNone, s.cfg)
		t := tenant.Generate(s.rng, s.NextTenantID, arch, tenant.ProfileFor(s.cfg, arch), s.cfg.Happiness.Starting)
		s.NextTenantID++

		apt, _, ok := tenant.FindBestMatch(t, vacant, s.cfg)
		if !ok {
			apt = vacant[0]
		}
		t.RentTolerance = max(t.RentTolerance, apt.RentPrice)
		if err := tenant.SignLease(t, b, apt); err != nil {
			continue
		}
		s.Tenants = append(s.Tenants, t)
		s.Network.RecordMoveIn(t, apt.RentPrice, month)
		housed++
	}
	if housed > 0 {
		s.WasEverOccupied = true
	}
	return housed
}
