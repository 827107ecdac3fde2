package building

import (
	"fmt"

	"github.com/talgya/tenement/internal/config"
)

// UpgradeKind enumerates the closed set of improvements.
type UpgradeKind uint8

const (
	UpgradeRepairApartment UpgradeKind = iota
	UpgradeApartmentDesign
	UpgradeSoundproofing
	UpgradeRepairHallway
	UpgradeKitchen
	UpgradeLaundry
)

func (k UpgradeKind) String() string {
	switch k {
	case UpgradeRepairApartment:
		return "repair_apartment"
	case UpgradeApartmentDesign:
		return "upgrade_design"
	case UpgradeSoundproofing:
		return "add_soundproofing"
	case UpgradeRepairHallway:
		return "repair_hallway"
	case UpgradeKitchen:
		return "upgrade_kitchen"
	case UpgradeLaundry:
		return "install_laundry"
	}
	return "unknown"
}

// UpgradeAction is one improvement on a building. ApartmentID is ignored by
// building-wide kinds; Amount only matters for repairs.
type UpgradeAction struct {
	Kind        UpgradeKind `json:"kind"`
	ApartmentID int         `json:"apartment_id,omitempty"`
	Amount      int         `json:"amount,omitempty"`
}

func RepairApartment(aptID, amount int) UpgradeAction {
	return UpgradeAction{Kind: UpgradeRepairApartment, ApartmentID: aptID, Amount: amount}
}

func UpgradeDesign(aptID int) UpgradeAction {
	return UpgradeAction{Kind: UpgradeApartmentDesign, ApartmentID: aptID}
}

func AddSoundproofing(aptID int) UpgradeAction {
	return UpgradeAction{Kind: UpgradeSoundproofing, ApartmentID: aptID}
}

func RepairHallway(amount int) UpgradeAction {
	return UpgradeAction{Kind: UpgradeRepairHallway, Amount: amount}
}

func UpgradeKitchenLevel(aptID int) UpgradeAction {
	return UpgradeAction{Kind: UpgradeKitchen, ApartmentID: aptID}
}

func InstallLaundry() UpgradeAction {
	return UpgradeAction{Kind: UpgradeLaundry}
}

func (u UpgradeAction) targetsApartment() bool {
	switch u.Kind {
	case UpgradeRepairApartment, UpgradeApartmentDesign, UpgradeSoundproofing, UpgradeKitchen:
		return true
	}
	return false
}

// Cost prices the action against the building's current state. The bool is
// false when the action cannot be applied: unknown apartment, non-positive
// repair, already at maximum, or an unknown kind.
func (u UpgradeAction) Cost(b *Building, costs config.EconomyConfig) (int, bool) {
	var apt *Apartment
	if u.targetsApartment() {
		a, ok := b.Apartment(u.ApartmentID)
		if !ok {
			return 0, false
		}
		apt = a
	}

	switch u.Kind {
	case UpgradeRepairApartment:
		if u.Amount <= 0 || apt.Condition >= 100 {
			return 0, false
		}
		return u.Amount * costs.RepairCostPerPoint, true
	case UpgradeApartmentDesign:
		if _, ok := apt.Design.NextUpgrade(); !ok {
			return 0, false
		}
		cost, ok := costs.DesignUpgradeCosts[apt.Design.Key()]
		return cost, ok
	case UpgradeSoundproofing:
		if apt.HasSoundproofing {
			return 0, false
		}
		return costs.SoundproofingCost, true
	case UpgradeKitchen:
		if apt.KitchenLevel >= MaxKitchenLevel {
			return 0, false
		}
		return costs.KitchenUpgradeCost, true
	case UpgradeRepairHallway:
		if u.Amount <= 0 || b.HallwayCondition >= 100 {
			return 0, false
		}
		return u.Amount * costs.HallwayRepairCostPerPoint, true
	case UpgradeLaundry:
		if b.HasLaundry {
			return 0, false
		}
		return costs.LaundryCost, true
	}
	return 0, false
}

// Apply recomputes the cost and mutates the building only when the action is
// applicable. Paying for it is the caller's job.
func (u UpgradeAction) Apply(b *Building, costs config.EconomyConfig) (int, bool) {
	cost, ok := u.Cost(b, costs)
	if !ok {
		return 0, false
	}

	switch u.Kind {
	case UpgradeRepairApartment:
		apt, _ := b.Apartment(u.ApartmentID)
		apt.Repair(u.Amount)
	case UpgradeApartmentDesign:
		apt, _ := b.Apartment(u.ApartmentID)
		apt.UpgradeDesign()
	case UpgradeSoundproofing:
		apt, _ := b.Apartment(u.ApartmentID)
		apt.AddSoundproofing()
	case UpgradeKitchen:
		apt, _ := b.Apartment(u.ApartmentID)
		apt.UpgradeKitchen()
	case UpgradeRepairHallway:
		b.RepairHallway(u.Amount)
	case UpgradeLaundry:
		b.HasLaundry = true
	}
	return cost, true
}

// Label is a short human description.
func (u UpgradeAction) Label(b *Building) string {
	unit := fmt.Sprintf("#%d", u.ApartmentID)
	if apt, ok := b.Apartment(u.ApartmentID); ok {
		unit = apt.UnitNumber
	}

	switch u.Kind {
	case UpgradeRepairApartment:
		return fmt.Sprintf("Repair %s +%d", unit, u.Amount)
	case UpgradeApartmentDesign:
		if apt, ok := b.Apartment(u.ApartmentID); ok {
			if next, ok := apt.Design.NextUpgrade(); ok {
				return fmt.Sprintf("Upgrade %s to %s", unit, next)
			}
		}
		return fmt.Sprintf("%s is at max design", unit)
	case UpgradeSoundproofing:
		return fmt.Sprintf("Soundproof %s", unit)
	case UpgradeKitchen:
		return fmt.Sprintf("Renovate kitchen in %s", unit)
	case UpgradeRepairHallway:
		return fmt.Sprintf("Repair hallway +%d", u.Amount)
	case UpgradeLaundry:
		return "Install laundry room"
	}
	return "Unknown upgrade"
}

// AvailableUpgrades lists the applicable actions for one apartment, with
// repairs sized to at most 10 points.
func AvailableUpgrades(b *Building, apt *Apartment, costs config.EconomyConfig) []UpgradeAction {
	candidates := []UpgradeAction{
		RepairApartment(apt.ID, min(100-apt.Condition, 10)),
		UpgradeDesign(apt.ID),
		AddSoundproofing(apt.ID),
		UpgradeKitchenLevel(apt.ID),
	}
	var out []UpgradeAction
	for _, c := range candidates {
		if _, ok := c.Cost(b, costs); ok {
			out = append(out, c)
		}
	}
	return out
}
