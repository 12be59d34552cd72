package voter

// #region imports
import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"
)

// #endregion

// #region schema

const trustSchema = `
CREATE TABLE IF NOT EXISTS neuron_weights (
    source      TEXT PRIMARY KEY,
    weight      REAL NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS outcome_log (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    source         TEXT NOT NULL,
    outcome        REAL NOT NULL,
    weight_before  REAL NOT NULL,
    weight_after   REAL NOT NULL,
    created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outcome_log_source
ON outcome_log(source, created_at);
`

// #endregion schema

// #region store

// Store persists the trust table and an append-only outcome log in
// SQLite, so trust survives process restarts without ever being
// silently reset.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(trustSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection (shared with the decision
// log) and runs migrations.
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(trustSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region load-weights

// LoadWeights reads the persisted trust table.
func (s *Store) LoadWeights() (map[string]float32, error) {
	rows, err := s.db.Query(`SELECT source, weight FROM neuron_weights`)
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}
	defer rows.Close()

	weights := make(map[string]float32)
	for rows.Next() {
		var source string
		var weight float64
		if err := rows.Scan(&source, &weight); err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		weights[source] = float32(weight)
	}
	return weights, rows.Err()
}

// #endregion load-weights

// #region record-outcome

// RecordOutcome appends an outcome row and upserts the source's weight.
func (s *Store) RecordOutcome(source string, outcome, before, after float32) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.Exec(`
		INSERT INTO outcome_log (source, outcome, weight_before, weight_after, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		source, outcome, before, after, now,
	)
	if err != nil {
		return fmt.Errorf("log outcome: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO neuron_weights (source, weight, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET weight = excluded.weight, updated_at = excluded.updated_at`,
		source, after, now,
	)
	if err != nil {
		return fmt.Errorf("upsert weight: %w", err)
	}
	return nil
}

// #endregion record-outcome

// #region reliability

// SourceReliability returns the decay-weighted mean outcome for a source
// over its logged history (half-life 7 days), plus the sample count.
// Returns (0, 0, nil) for sources with no history.
func (s *Store) SourceReliability(source string) (float64, int, error) {
	rows, err := s.db.Query(`
		SELECT outcome, created_at FROM outcome_log WHERE source = ?`,
		source,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("reliability query: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	halfLife := 7.0 * 24.0 // hours

	var weightedSum, totalWeight float64
	count := 0

	for rows.Next() {
		var outcome float64
		var createdAtStr string
		if err := rows.Scan(&outcome, &createdAtStr); err != nil {
			return 0, 0, fmt.Errorf("scan outcome: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			continue
		}
		ageHours := now.Sub(createdAt).Hours()
		w := math.Exp(-ageHours / halfLife)
		weightedSum += outcome * w
		totalWeight += w
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}

	if totalWeight == 0 {
		return 0, count, nil
	}
	return weightedSum / totalWeight, count, nil
}

// #endregion reliability
