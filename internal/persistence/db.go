// Package persistence provides SQLite-based snapshot storage so a
// simulation can stop and resume. One snapshot is the full World plus the
// active mission list; the event log appends across runs.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/warmarch/internal/mission"
	"github.com/talgya/warmarch/internal/report"
	"github.com/talgya/warmarch/internal/world"
)

// DB wraps a SQLite connection for snapshot persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
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
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS factions (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		human INTEGER NOT NULL,
		gold INTEGER NOT NULL,
		negotiates_neutrals INTEGER NOT NULL,
		personality_json TEXT NOT NULL,
		strategic_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		faction INTEGER NOT NULL,
		fortification INTEGER NOT NULL,
		population INTEGER NOT NULL,
		stability INTEGER NOT NULL,
		city INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roads (
		id INTEGER PRIMARY KEY,
		loc_a INTEGER NOT NULL,
		loc_b INTEGER NOT NULL,
		stages_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS units (
		id INTEGER PRIMARY KEY,
		faction INTEGER NOT NULL,
		strength INTEGER NOT NULL,
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leaders (
		id INTEGER PRIMARY KEY,
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS missions (
		id TEXT PRIMARY KEY,
		faction INTEGER NOT NULL,
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		faction INTEGER NOT NULL,
		global INTEGER NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasSnapshot reports whether a saved world exists.
func (db *DB) HasSnapshot() bool {
	var count int
	if err := db.conn.Get(&count, `SELECT COUNT(*) FROM locations`); err != nil {
		return false
	}
	return count > 0
}

// SaveSnapshot replaces the stored world and mission list with the current
// state. Events are appended, not replaced.
func (db *DB) SaveSnapshot(w *world.World, missions []*mission.Mission) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"factions", "locations", "roads", "units", "leaders", "missions"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('turn', ?)`, fmt.Sprint(w.Turn)); err != nil {
		return fmt.Errorf("save turn: %w", err)
	}

	for _, f := range w.Factions {
		pj, _ := json.Marshal(f.Personality)
		sj, _ := json.Marshal(f.StrategicLocations)
		if _, err := tx.Exec(
			`INSERT INTO factions (id, name, human, gold, negotiates_neutrals, personality_json, strategic_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Human, f.Gold, f.NegotiatesNeutrals, string(pj), string(sj),
		); err != nil {
			return fmt.Errorf("save faction %d: %w", f.ID, err)
		}
	}
	for _, l := range w.Locations {
		if _, err := tx.Exec(
			`INSERT INTO locations (id, name, faction, fortification, population, stability, city)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Name, l.Faction, l.Fortification, l.Population, l.Stability, l.City,
		); err != nil {
			return fmt.Errorf("save location %d: %w", l.ID, err)
		}
	}
	for _, r := range w.Roads {
		sj, _ := json.Marshal(r.Stages)
		if _, err := tx.Exec(
			`INSERT INTO roads (id, loc_a, loc_b, stages_json) VALUES (?, ?, ?, ?)`,
			r.ID, r.A, r.B, string(sj),
		); err != nil {
			return fmt.Errorf("save road %d: %w", r.ID, err)
		}
	}
	for _, u := range w.Units {
		sj, _ := json.Marshal(u)
		if _, err := tx.Exec(
			`INSERT INTO units (id, faction, strength, state_json) VALUES (?, ?, ?, ?)`,
			u.ID, u.Faction, u.Strength, string(sj),
		); err != nil {
			return fmt.Errorf("save unit %d: %w", u.ID, err)
		}
	}
	for _, l := range w.Leaders {
		sj, _ := json.Marshal(l)
		if _, err := tx.Exec(
			`INSERT INTO leaders (id, state_json) VALUES (?, ?)`, l.ID, string(sj),
		); err != nil {
			return fmt.Errorf("save leader %d: %w", l.ID, err)
		}
	}
	for _, m := range missions {
		sj, _ := json.Marshal(m)
		if _, err := tx.Exec(
			`INSERT INTO missions (id, faction, state_json) VALUES (?, ?, ?)`,
			m.ID.String(), m.Faction, string(sj),
		); err != nil {
			return fmt.Errorf("save mission %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	slog.Debug("snapshot saved", "turn", w.Turn, "units", len(w.Units), "missions", len(missions))
	return nil
}

// LoadSnapshot restores the stored world and mission list.
func (db *DB) LoadSnapshot() (*world.World, []*mission.Mission, error) {
	var factions []*world.Faction
	rows, err := db.conn.Queryx(`SELECT id, name, human, gold, negotiates_neutrals, personality_json, strategic_json FROM factions ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("load factions: %w", err)
	}
	for rows.Next() {
		var (
			f      world.Faction
			pj, sj string
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Human, &f.Gold, &f.NegotiatesNeutrals, &pj, &sj); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan faction: %w", err)
		}
		if err := json.Unmarshal([]byte(pj), &f.Personality); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("faction %d personality: %w", f.ID, err)
		}
		if err := json.Unmarshal([]byte(sj), &f.StrategicLocations); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("faction %d strategic: %w", f.ID, err)
		}
		factions = append(factions, &f)
	}
	rows.Close()

	var locations []*world.Location
	rows, err = db.conn.Queryx(`SELECT id, name, faction, fortification, population, stability, city FROM locations ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("load locations: %w", err)
	}
	for rows.Next() {
		var l world.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Faction, &l.Fortification, &l.Population, &l.Stability, &l.City); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, &l)
	}
	rows.Close()

	var roads []*world.Road
	rows, err = db.conn.Queryx(`SELECT id, loc_a, loc_b, stages_json FROM roads ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("load roads: %w", err)
	}
	for rows.Next() {
		var (
			r  world.Road
			sj string
		)
		if err := rows.Scan(&r.ID, &r.A, &r.B, &sj); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan road: %w", err)
		}
		if err := json.Unmarshal([]byte(sj), &r.Stages); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("road %d stages: %w", r.ID, err)
		}
		roads = append(roads, &r)
	}
	rows.Close()

	units, err := loadJSONRows[world.Unit](db, `SELECT state_json FROM units ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("load units: %w", err)
	}
	leaders, err := loadJSONRows[world.Leader](db, `SELECT state_json FROM leaders ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("load leaders: %w", err)
	}
	missions, err := loadJSONRows[mission.Mission](db, `SELECT state_json FROM missions ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("load missions: %w", err)
	}

	w := world.New(factions, locations, roads, units, leaders)
	var turnStr string
	if err := db.conn.Get(&turnStr, `SELECT value FROM meta WHERE key = 'turn'`); err == nil {
		fmt.Sscanf(turnStr, "%d", &w.Turn)
	}
	return w, missions, nil
}

// loadJSONRows reads a single-column json table into typed values.
func loadJSONRows[T any](db *DB, query string) ([]*T, error) {
	var raw []string
	if err := db.conn.Select(&raw, query); err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(raw))
	for _, blob := range raw {
		var v T
		if err := json.Unmarshal([]byte(blob), &v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

// AppendEvents persists new event-log entries.
func (db *DB) AppendEvents(events []report.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin events: %w", err)
	}
	defer tx.Rollback()
	for _, e := range events {
		if _, err := tx.Exec(
			`INSERT INTO events (turn, faction, global, category, message) VALUES (?, ?, ?, ?, ?)`,
			e.Turn, e.Faction, e.Global, string(e.Category), e.Message,
		); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
	}
	return tx.Commit()
}
