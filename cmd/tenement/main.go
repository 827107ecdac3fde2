// Command tenement runs landlord campaigns: create a game, issue orders,
// advance months by hand or let the clock run them.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/engine"
	"github.com/talgya/tenement/internal/persistence"
)

const lastGameKey = "last_game"

// app carries what every command shares.
type app struct {
	dbPath     string
	configPath string
	verbose    bool
}

func main() {
	_ = godotenv.Load()

	a := &app{
		dbPath:     envOr("TENEMENT_DB", "data/tenement.db"),
		configPath: os.Getenv("TENEMENT_CONFIG"),
	}

	rootCmd := &cobra.Command{
		Use:           "tenement",
		Short:         "Run a small-time landlord through three years of the rental market",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", a.dbPath, "campaign database (TENEMENT_DB)")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "tuning file, JSON or YAML (TENEMENT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		a.newCmd(),
		a.listCmd(),
		a.statusCmd(),
		a.eventsCmd(),
		a.actCmd(),
		a.advanceCmd(),
		a.runCmd(),
		a.exportCmd(),
		a.importCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// seedFromEnv reads TENEMENT_SEED; zero lets the simulation pick one.
func seedFromEnv() int64 {
	s := os.Getenv("TENEMENT_SEED")
	if s == "" {
		return 0
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		slog.Warn("ignoring TENEMENT_SEED", "value", s, "error", err)
		return 0
	}
	return seed
}

func (a *app) config() *config.Config {
	return config.LoadOrDefault(a.configPath)
}

func (a *app) open() (*persistence.DB, error) {
	if dir := filepath.Dir(a.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return persistence.Open(a.dbPath)
}

// resolve picks the game named by args, or the last one touched.
func (a *app) resolve(db *persistence.DB, args []string) (persistence.GameInfo, error) {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	} else {
		last, err := db.GetMeta(lastGameKey)
		if err != nil {
			return persistence.GameInfo{}, errors.New("no game given and no recent game; start one with `tenement new`")
		}
		ref = last
	}
	g, err := db.FindGame(ref)
	if err != nil {
		return g, err
	}
	if err := db.SetMeta(lastGameKey, g.ID); err != nil {
		slog.Warn("could not remember game", "error", err)
	}
	return g, nil
}

// load opens the database and the selected game. The caller closes db.
func (a *app) load(args []string) (*persistence.DB, persistence.GameInfo, *engine.Simulation, error) {
	db, err := a.open()
	if err != nil {
		return nil, persistence.GameInfo{}, nil, err
	}
	g, err := a.resolve(db, args)
	if err != nil {
		db.Close()
		return nil, g, nil, err
	}
	sim, err := db.LoadGame(g.ID, a.config())
	if err != nil {
		db.Close()
		return nil, g, nil, err
	}
	return db, g, sim, nil
}
