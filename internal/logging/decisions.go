package logging

// #region imports
import (
	"database/sql"
	"fmt"
	"time"
)

// #endregion

// #region schema

const decisionSchema = `
CREATE TABLE IF NOT EXISTS decision_log (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    cycle_id          TEXT NOT NULL,
    method            TEXT NOT NULL,
    reached           INTEGER NOT NULL,
    winner_source     TEXT,
    winner_confidence REAL,
    cluster_count     INTEGER NOT NULL DEFAULT 0,
    member_count      INTEGER NOT NULL DEFAULT 0,
    proposal_count    INTEGER NOT NULL DEFAULT 0,
    score             REAL NOT NULL DEFAULT 0,
    reason            TEXT,
    created_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decision_log_created
ON decision_log(created_at);
`

// EnsureSchema creates the decision_log table if missing.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(decisionSchema); err != nil {
		return fmt.Errorf("migrate decision_log: %w", err)
	}
	return nil
}

// #endregion schema

// #region log-decision

// LogDecision writes one decision provenance row.
func LogDecision(db *sql.DB, entry DecisionEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	reached := 0
	if entry.Reached {
		reached = 1
	}

	_, err := db.Exec(
		`INSERT INTO decision_log
		 (cycle_id, method, reached, winner_source, winner_confidence,
		  cluster_count, member_count, proposal_count, score, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.CycleID,
		entry.Method,
		reached,
		nullIfEmpty(entry.WinnerSource),
		entry.WinnerConfidence,
		entry.ClusterCount,
		entry.MemberCount,
		entry.ProposalCount,
		entry.Score,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region recent

// RecentDecisions returns the latest n decision rows, newest first.
func RecentDecisions(db *sql.DB, n int) ([]DecisionEntry, error) {
	rows, err := db.Query(`
		SELECT cycle_id, method, reached, COALESCE(winner_source, ''),
		       COALESCE(winner_confidence, 0), cluster_count, member_count,
		       proposal_count, score, COALESCE(reason, ''), created_at
		FROM decision_log
		ORDER BY id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent decisions: %w", err)
	}
	defer rows.Close()

	var entries []DecisionEntry
	for rows.Next() {
		var e DecisionEntry
		var reached int
		var createdAt string
		if err := rows.Scan(&e.CycleID, &e.Method, &reached, &e.WinnerSource,
			&e.WinnerConfidence, &e.ClusterCount, &e.MemberCount,
			&e.ProposalCount, &e.Score, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		e.Reached = reached == 1
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
