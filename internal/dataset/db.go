package dataset

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB holds the player-statistics dataset the reference executor runs
// accepted filter trees against. The engine itself never touches it.
type DB struct {
	conn *sql.DB
	path string
}

// statColumns are the numeric per-player columns, keyed by the canonical
// statistic/attribute id the engine emits.
var statColumns = []string{
	"age", "disposals", "kicks", "handballs", "marks", "tackles",
	"goals", "contested_possessions", "clearances", "goal_accuracy",
}

// Open opens or creates the dataset at path
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `CREATE TABLE IF NOT EXISTS players (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	team TEXT NOT NULL,
	position TEXT NOT NULL,
	league TEXT NOT NULL DEFAULT 'afl',
	season INTEGER NOT NULL DEFAULT 2025,
	age REAL NOT NULL DEFAULT 0,
	disposals REAL NOT NULL DEFAULT 0,
	kicks REAL NOT NULL DEFAULT 0,
	handballs REAL NOT NULL DEFAULT 0,
	marks REAL NOT NULL DEFAULT 0,
	tackles REAL NOT NULL DEFAULT 0,
	goals REAL NOT NULL DEFAULT 0,
	contested_possessions REAL NOT NULL DEFAULT 0,
	clearances REAL NOT NULL DEFAULT 0,
	goal_accuracy REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_players_team ON players(team);
CREATE INDEX IF NOT EXISTS idx_players_position ON players(position);
CREATE INDEX IF NOT EXISTS idx_players_season ON players(season);`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// ImportCSV loads player rows from a CSV file with a header row. Required
// columns: name, team, position. Recognized numeric columns follow the
// canonical statistic ids (age, disposals, clearances, ...); unknown
// columns are ignored.
func (db *DB) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"name", "team", "position"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("csv missing required column %q", required)
		}
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	columns := []string{"name", "team", "position", "league", "season"}
	columns = append(columns, statColumns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO players (%s) VALUES (%s)",
		strings.Join(columns, ", "), placeholders))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv row %d: %w", count+2, err)
		}

		get := func(name, fallback string) string {
			if i, ok := col[name]; ok && i < len(record) {
				return record[i]
			}
			return fallback
		}
		num := func(name string) float64 {
			v, _ := strconv.ParseFloat(get(name, "0"), 64)
			return v
		}
		season, _ := strconv.Atoi(get("season", "2025"))
		if season == 0 {
			season = 2025
		}

		args := []any{
			get("name", ""), get("team", ""), get("position", ""),
			get("league", "afl"), season,
		}
		for _, stat := range statColumns {
			args = append(args, num(stat))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", count+2, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return count, nil
}
