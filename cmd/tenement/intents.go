package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/city"
	"github.com/talgya/tenement/internal/engine"
	"github.com/talgya/tenement/internal/tenant"
)

// verb describes one player order on the command line.
type verb struct {
	args  []string
	build func(n []int, words []string) (engine.Intent, error)
}

// verbs maps the words typed after `tenement act` to intents. Numeric
// arguments are parsed up front; words stay as typed.
var verbs = map[string]verb{
	"repair": {[]string{"building", "apartment", "points"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.RepairApartment(n[0], n[1], n[2]), nil
	}},
	"design": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.UpgradeDesign(n[0], n[1]), nil
	}},
	"soundproof": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.AddSoundproofing(n[0], n[1]), nil
	}},
	"hallway": {[]string{"building", "points"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.RepairHallway(n[0], n[1]), nil
	}},
	"kitchen": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.UpgradeKitchen(n[0], n[1]), nil
	}},
	"laundry": {[]string{"building"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.InstallLaundry(n[0]), nil
	}},
	"rent": {[]string{"building", "apartment", "amount"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.SetRent(n[0], n[1], n[2]), nil
	}},
	"list": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.SetListed(n[0], n[1], true), nil
	}},
	"unlist": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.SetListed(n[0], n[1], false), nil
	}},
	"accept": {[]string{"application"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.AcceptApplication(n[0]), nil
	}},
	"reject": {[]string{"application"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.RejectApplication(n[0]), nil
	}},
	"credit": {[]string{"application"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.CreditCheck(n[0]), nil
	}},
	"background": {[]string{"application"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.BackgroundCheck(n[0]), nil
	}},
	"marketing": {[]string{"building", "campaign"}, func(n []int, w []string) (engine.Intent, error) {
		return engine.SetMarketing(n[0], building.MarketingType(w[1])), nil
	}},
	"openhouse": {[]string{"building"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.StartOpenHouse(n[0]), nil
	}},
	"hire": {[]string{"building", "role"}, func(n []int, w []string) (engine.Intent, error) {
		return engine.HireStaff(n[0], building.StaffRole(w[1])), nil
	}},
	"fire": {[]string{"building", "role"}, func(n []int, w []string) (engine.Intent, error) {
		return engine.FireStaff(n[0], building.StaffRole(w[1])), nil
	}},
	"sell": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.SellCondo(n[0], n[1]), nil
	}},
	"buyback": {[]string{"building", "apartment"}, func(n []int, _ []string) (engine.Intent, error) {
		return engine.BuybackCondo(n[0], n[1]), nil
	}},
	"buy": {[]string{"listing", "financing"}, func(n []int, w []string) (engine.Intent, error) {
		kind, err := parseFinancing(w[1])
		if err != nil {
			return engine.Intent{}, err
		}
		return engine.PurchaseBuilding(n[0], kind), nil
	}},
	"end": {nil, func([]int, []string) (engine.Intent, error) {
		return engine.EndTurn(), nil
	}},
}

// wordArgs are taken as text rather than numbers.
var wordArgs = map[string]bool{"campaign": true, "role": true, "financing": true}

func parseFinancing(s string) (city.FinancingKind, error) {
	switch strings.ToLower(s) {
	case "cash":
		return city.Cash, nil
	case "mortgage":
		return city.Mortgage, nil
	case "investor":
		return city.Investor, nil
	}
	return 0, fmt.Errorf("unknown financing %q (cash, mortgage, investor)", s)
}

// parseArchetype accepts an archetype key in any case.
func parseArchetype(s string) (tenant.Archetype, error) {
	a, ok := tenant.ParseArchetype(strings.ToLower(s))
	if !ok {
		keys := make([]string, len(tenant.AllArchetypes))
		for i, a := range tenant.AllArchetypes {
			keys[i] = string(a)
		}
		return "", fmt.Errorf("unknown archetype %q (%s)", s, strings.Join(keys, ", "))
	}
	return a, nil
}

// parseIntent turns `verb arg...` into an intent.
func parseIntent(args []string) (engine.Intent, error) {
	if len(args) == 0 {
		return engine.Intent{}, fmt.Errorf("missing order")
	}
	v, ok := verbs[strings.ToLower(args[0])]
	if !ok {
		return engine.Intent{}, fmt.Errorf("unknown order %q", args[0])
	}
	rest := args[1:]
	if len(rest) != len(v.args) {
		return engine.Intent{}, fmt.Errorf("%s takes %d arguments: %s", args[0], len(v.args), strings.Join(v.args, " "))
	}

	nums := make([]int, len(rest))
	for i, s := range rest {
		if wordArgs[v.args[i]] {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return engine.Intent{}, fmt.Errorf("%s: %s must be a number, got %q", args[0], v.args[i], s)
		}
		nums[i] = n
	}
	return v.build(nums, rest)
}

// usage lists every order with its arguments.
func usage() string {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(verbs)) {
		fmt.Fprintf(&b, "  %s", name)
		for _, a := range verbs[name].args {
			fmt.Fprintf(&b, " <%s>", a)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
