package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/talgya/tenement/internal/engine"
	"github.com/talgya/tenement/internal/persistence"
	"github.com/talgya/tenement/internal/tenant"
)

func money(v int) string {
	return "$" + humanize.Comma(int64(v))
}

func (a *app) newCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Start a campaign with the starter building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = seedFromEnv()
			}
			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			sim, err := engine.NewSimulation(a.config(), seed)
			if err != nil {
				return err
			}
			id, err := db.CreateGame(args[0], sim)
			if err != nil {
				return err
			}
			if err := db.SetMeta(lastGameKey, id); err != nil {
				return err
			}
			fmt.Printf("Started %q (%s), seed %d\n", args[0], id, sim.Seed)
			printStatus(sim)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (TENEMENT_SEED, 0 picks one)")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()

			games, err := db.ListGames()
			if err != nil {
				return err
			}
			if len(games) == 0 {
				fmt.Println("No campaigns yet.")
				return nil
			}
			fmt.Printf("%-36s  %-20s  %-22s  %12s  %-16s  %s\n", "ID", "Name", "Month", "Balance", "Outcome", "Saved")
			for _, g := range games {
				fmt.Printf("%-36s  %-20s  %-22s  %12s  %-16s  %s\n",
					g.ID, g.Name, engine.SimTime(uint64(g.Tick)), money(g.Balance), g.Outcome, humanize.Time(g.Updated()))
			}
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	var (
		events    int
		archetype string
	)
	cmd := &cobra.Command{
		Use:   "status [game]",
		Short: "Show buildings, tenants, applicants and recent events",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only tenant.Archetype
			if archetype != "" {
				var err error
				if only, err = parseArchetype(archetype); err != nil {
					return err
				}
			}
			db, g, sim, err := a.load(args)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Printf("%s (%s)\n", g.Name, g.ID)
			printStatus(sim)
			printApplications(sim, only)
			printListings(sim)

			if events > 0 {
				recent, err := db.RecentEvents(g.ID, events)
				if err != nil {
					return err
				}
				fmt.Println("\nRecent events:")
				for i := len(recent) - 1; i >= 0; i-- {
					e := recent[i]
					fmt.Printf("  [%s] %-10s %s\n", engine.SimTime(e.Tick), e.Category, e.Description)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&events, "events", "n", 15, "recent events to show")
	cmd.Flags().StringVar(&archetype, "archetype", "", "only show applicants of this archetype")
	return cmd
}

func (a *app) eventsCmd() *cobra.Command {
	var (
		limit    int
		since    uint64
		category string
	)
	cmd := &cobra.Command{
		Use:   "events [game]",
		Short: "Show the campaign's event log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, sim, err := a.load(args)
			if err != nil {
				return err
			}
			defer db.Close()

			var log []engine.Event
			if cmd.Flags().Changed("since") {
				log = sim.EventsSince(since)
			} else {
				log = sim.RecentEvents(limit)
			}
			for _, e := range log {
				if category != "" && e.Category != category {
					continue
				}
				fmt.Printf("[%s] %-10s %s\n", engine.SimTime(e.Tick), e.Category, e.Description)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 30, "newest events to show (0 for all kept)")
	cmd.Flags().Uint64Var(&since, "since", 0, "show events after this month number")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show one category (rent, tenant, compliance, ...)")
	return cmd
}

func (a *app) actCmd() *cobra.Command {
	var game string
	cmd := &cobra.Command{
		Use:   "act <order> [args...]",
		Short: "Give an order for the month in progress",
		Long:  "Give an order for the month in progress. Orders:\n" + usage(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseIntent(args)
			if err != nil {
				return err
			}
			db, g, sim, err := a.load(optional(game))
			if err != nil {
				return err
			}
			defer db.Close()

			sim.Queue(in)
			failed := printResults(sim.Drain())
			if err := db.SaveGame(g.ID, g.Name, sim); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("order %s rejected", in.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&game, "game", "g", "", "campaign id or name (default: last used)")
	return cmd
}

func (a *app) advanceCmd() *cobra.Command {
	var (
		months int
		auto   bool
	)
	cmd := &cobra.Command{
		Use:   "advance [game]",
		Short: "Close out one or more months",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, g, sim, err := a.load(args)
			if err != nil {
				return err
			}
			defer db.Close()

			for i := 0; i < months && !sim.Ended(); i++ {
				if auto {
					sim.Queue(sim.Autopilot()...)
				}
				sim.Queue(engine.EndTurn())
				printResults(sim.Drain())
				// The in-memory log is capped; flush it to the store every year.
				if sim.LastTick%12 == 0 {
					if err := db.SaveGame(g.ID, g.Name, sim); err != nil {
						return err
					}
				}
			}
			if err := db.SaveGame(g.ID, g.Name, sim); err != nil {
				return err
			}
			printStatus(sim)
			return nil
		},
	}
	cmd.Flags().IntVarP(&months, "months", "m", 1, "months to advance")
	cmd.Flags().BoolVar(&auto, "auto", false, "let the autopilot repair and take tenants each month")
	return cmd
}

func (a *app) runCmd() *cobra.Command {
	var (
		interval time.Duration
		speed    float64
		autosave string
		auto     bool
	)
	cmd := &cobra.Command{
		Use:   "run [game]",
		Short: "Advance months in real time until the campaign ends or Ctrl+C",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, g, sim, err := a.load(args)
			if err != nil {
				return err
			}
			defer db.Close()
			if sim.Ended() {
				fmt.Println(sim.Outcome)
				return nil
			}

			var mu sync.Mutex
			save := func(reason string) {
				mu.Lock()
				defer mu.Unlock()
				if err := db.SaveGame(g.ID, g.Name, sim); err != nil {
					slog.Error("save failed", "reason", reason, "error", err)
				}
			}

			eng := engine.NewEngine(sim.LastTick)
			eng.Interval = interval
			eng.Speed = speed
			eng.OnMonth = func(uint64) {
				mu.Lock()
				defer mu.Unlock()
				if auto {
					sim.Queue(sim.Autopilot()...)
				}
				sim.Queue(engine.EndTurn())
				printResults(sim.Drain())
				if sim.Ended() {
					eng.Stop()
				}
			}
			eng.OnYear = func(tick uint64) {
				slog.Info("year closed", "time", engine.SimTime(tick), "score", sim.Standing().Score())
			}

			c := cron.New()
			if _, err := c.AddFunc(autosave, func() { save("autosave") }); err != nil {
				return fmt.Errorf("autosave schedule %q: %w", autosave, err)
			}
			c.Start()
			defer c.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				sig, ok := <-sigCh
				if ok {
					slog.Info("received signal, shutting down", "signal", sig)
					eng.Stop()
				}
			}()

			fmt.Printf("Running %s from %s, one month every %s (Ctrl+C to stop)\n",
				g.Name, engine.SimTime(sim.LastTick), time.Duration(float64(interval)/speed))
			eng.Run()

			save("shutdown")
			printStatus(sim)
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "wall time of one month at speed 1")
	cmd.Flags().Float64Var(&speed, "speed", 1, "speed multiplier")
	cmd.Flags().StringVar(&autosave, "autosave", "@every 30s", "cron schedule for autosaves")
	cmd.Flags().BoolVar(&auto, "auto", true, "let the autopilot manage the buildings")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <game> <file>",
		Short: "Write a campaign to a save file (.zst to compress)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, g, sim, err := a.load(args[:1])
			if err != nil {
				return err
			}
			defer db.Close()

			if err := persistence.WriteSave(args[1], g.Name, sim); err != nil {
				return err
			}
			fmt.Printf("Exported %s at %s to %s\n", g.Name, engine.SimTime(sim.LastTick), args[1])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a save file as a new campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := persistence.ReadSave(args[0], a.config())
			if err != nil {
				return err
			}
			if name == "" {
				name = save.Name
			}
			if name == "" {
				name = strings.TrimSuffix(strings.TrimSuffix(args[0], ".zst"), ".json")
			}

			db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()
			id, err := db.CreateGame(name, save.Sim)
			if err != nil {
				return err
			}
			if err := db.SetMeta(lastGameKey, id); err != nil {
				return err
			}
			fmt.Printf("Imported %q as %s (%s)\n", name, id, engine.SimTime(save.Sim.LastTick))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "campaign name (default: from the save)")
	return cmd
}

func optional(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// printResults reports drained intents and returns how many were rejected.
func printResults(results []engine.IntentResult) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Printf("  ✗ %s: %v\n", r.Intent.Kind, r.Err)
		case r.Tick != nil:
			printMonth(*r.Tick)
		default:
			fmt.Printf("  ✓ %s\n", r.Message)
		}
	}
	return failed
}

func printMonth(r engine.TickResult) {
	rep := r.Report
	fmt.Printf("\n== %s ==\n", engine.SimTime(r.Tick))
	for _, e := range r.Events {
		fmt.Printf("  %-10s %s\n", e.Category, e.Description)
	}
	income := rep.RentIncome + rep.OtherIncome
	fmt.Printf("  Income %s, expenses %s, net %s, balance %s\n",
		money(income), money(income-rep.Net), money(rep.Net), money(rep.EndingBalance))
	if r.Outcome != nil {
		fmt.Printf("\n*** %s ***\n", r.Outcome)
	}
}

func printStatus(sim *engine.Simulation) {
	st := sim.Stats
	fmt.Printf("\n%s in %s: balance %s, property worth %s, reputation %d\n",
		engine.SimTime(sim.LastTick), sim.City.Name, money(st.Balance), money(st.PropertyValue), st.Reputation)
	fmt.Printf("%d tenants in %d units (%d vacant), average happiness %d%%, gentrification %d\n",
		st.Tenants, st.Units, st.Vacancies, st.AvgHappiness, sim.Gentrification.Score)

	for _, b := range sim.City.Buildings {
		n, _ := sim.City.NeighborhoodFor(b.ID)
		where := ""
		if n != nil {
			where = n.Name
		}
		flags := ""
		if apps := len(sim.ApplicationsFor(b.ID)); apps > 0 {
			flags += fmt.Sprintf(", %d applying", apps)
		}
		if sim.Compliance.HasViolations(b.ID) {
			flags += ", open code violations"
		}
		fmt.Printf("\n[%d] %s, %s (hallway %d%%, appeal %d%s)\n", b.ID, b.Name, where, b.HallwayCondition, b.Appeal(), flags)
		for _, apt := range b.Apartments {
			who := "vacant"
			switch {
			case apt.IsCondo:
				who = "condo"
			case apt.TenantID != nil:
				if t, ok := sim.Tenant(*apt.TenantID); ok {
					who = fmt.Sprintf("%s (%s, %d%%)", t.Name, t.Archetype.Label(), t.Happiness)
				}
			case !apt.IsListed:
				who = "off market"
			}
			fmt.Printf("  %d %-4s %-7s %s  cond %3d%%  %s\n", apt.ID, apt.UnitNumber, apt.Size, money(apt.RentPrice), apt.Condition, who)
		}
	}
	if sim.Outcome != nil {
		fmt.Printf("\n*** %s ***\n", sim.Outcome)
	}
}

// printApplications lists pending applications, optionally of one archetype.
// Numbers are the indexes accepted by `act accept`.
func printApplications(sim *engine.Simulation, only tenant.Archetype) {
	if len(sim.Applications) == 0 {
		return
	}
	fmt.Println("\nApplications:")
	for i, app := range sim.Applications {
		if only != "" && app.Tenant.Archetype != only {
			continue
		}
		fmt.Printf("  %d. %s (%s) for building %d unit %d, match %d\n",
			i, app.Tenant.Name, app.Tenant.Archetype.Label(), app.BuildingID, app.ApartmentID, app.Match.Score)
	}
}

func printListings(sim *engine.Simulation) {
	if len(sim.City.Market.Listings) == 0 {
		return
	}
	fmt.Println("\nFor sale:")
	for _, l := range sim.City.Market.Listings {
		opts := make([]string, 0, len(l.Financing))
		for _, f := range l.Financing {
			opts = append(opts, fmt.Sprintf("%s %s upfront", f.Name(), money(f.UpfrontCost(l.AskingPrice))))
		}
		fmt.Printf("  #%d %s (%s)\n", l.ID, l.Summary(), strings.Join(opts, ", "))
	}
}
