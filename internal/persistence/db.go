// Package persistence stores campaigns: a SQLite database of games and their
// event logs, and standalone save files.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tenement/internal/config"
	"github.com/talgya/tenement/internal/engine"
)

// ErrGameNotFound is returned when no stored game matches.
var ErrGameNotFound = errors.New("game not found")

// DB wraps a SQLite connection for campaign storage.
type DB struct {
	conn *sqlx.DB
}

// GameInfo is the listing row of a stored game.
type GameInfo struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Seed      int64  `db:"seed"`
	Tick      int64  `db:"tick"`
	Balance   int    `db:"balance"`
	Outcome   string `db:"outcome"`
	CreatedAt int64  `db:"created_at"` // unix seconds
	UpdatedAt int64  `db:"updated_at"`
}

func (g GameInfo) Updated() time.Time {
	return time.Unix(g.UpdatedAt, 0)
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		tick INTEGER NOT NULL,
		balance INTEGER NOT NULL,
		outcome TEXT NOT NULL DEFAULT '',
		state BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_game_tick ON events(game_id, tick);
	CREATE INDEX IF NOT EXISTS idx_games_name ON games(name);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateGame stores a new campaign under a fresh id.
func (db *DB) CreateGame(name string, sim *engine.Simulation) (string, error) {
	id := uuid.NewString()
	if err := db.SaveGame(id, name, sim); err != nil {
		return "", err
	}
	return id, nil
}

// SaveGame writes the full campaign state and appends the events of every
// month completed since the last save.
func (db *DB) SaveGame(id, name string, sim *engine.Simulation) error {
	raw, err := json.Marshal(sim)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", id, err)
	}
	state := compress(raw)

	outcome := ""
	if sim.Outcome != nil {
		outcome = string(sim.Outcome.Kind)
	}
	now := time.Now().Unix()

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO games
		(id, name, seed, tick, balance, outcome, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			tick = excluded.tick,
			balance = excluded.balance,
			outcome = excluded.outcome,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		id, name, sim.Seed, int64(sim.LastTick), sim.Funds.Balance, outcome, state, now, now,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}

	var stored int64
	if err := tx.Get(&stored, "SELECT COALESCE(MAX(tick), 0) FROM events WHERE game_id = ?", id); err != nil {
		return fmt.Errorf("event watermark: %w", err)
	}
	n := 0
	for _, e := range sim.Events {
		// Events of the month in progress are saved once it closes.
		if int64(e.Tick) <= stored || e.Tick > sim.LastTick {
			continue
		}
		_, err := tx.Exec(
			"INSERT INTO events (game_id, tick, description, category) VALUES (?, ?, ?, ?)",
			id, int64(e.Tick), e.Description, e.Category,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game saved", "id", id, "name", name, "tick", sim.LastTick, "bytes", len(state), "events", n)
	return nil
}

// LoadGame decodes a stored campaign and reattaches cfg.
func (db *DB) LoadGame(id string, cfg *config.Config) (*engine.Simulation, error) {
	var state []byte
	err := db.conn.Get(&state, "SELECT state FROM games WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrGameNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	raw, err := decompress(state)
	if err != nil {
		return nil, fmt.Errorf("decompress game %s: %w", id, err)
	}
	var sim engine.Simulation
	if err := json.Unmarshal(raw, &sim); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	sim.Restore(cfg)
	return &sim, nil
}

// FindGame resolves a game by id or, failing that, by name. The most
// recently saved game wins a name clash.
func (db *DB) FindGame(ref string) (GameInfo, error) {
	var g GameInfo
	err := db.conn.Get(&g, `SELECT id, name, seed, tick, balance, outcome, created_at, updated_at
		FROM games WHERE id = ? OR name = ?
		ORDER BY (id = ?) DESC, updated_at DESC LIMIT 1`, ref, ref, ref)
	if errors.Is(err, sql.ErrNoRows) {
		return g, fmt.Errorf("%q: %w", ref, ErrGameNotFound)
	}
	return g, err
}

// ListGames returns every stored game, most recently saved first.
func (db *DB) ListGames() ([]GameInfo, error) {
	var games []GameInfo
	err := db.conn.Select(&games, `SELECT id, name, seed, tick, balance, outcome, created_at, updated_at
		FROM games ORDER BY updated_at DESC, name`)
	return games, err
}

// DeleteGame removes a game and its events.
func (db *DB) DeleteGame(id string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrGameNotFound)
	}
	if _, err := tx.Exec("DELETE FROM events WHERE game_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// RecentEvents returns up to limit of a game's newest stored events, newest
// first.
func (db *DB) RecentEvents(id string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		id, limit,
	)
	return events, err
}

// SetMeta stores a key-value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
