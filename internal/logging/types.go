package logging

import "time"

// #region decision-entry
// DecisionEntry is a single row in the decision_log table: the
// provenance of one resolved cycle, kept for post-hoc auditing of which
// neurons drove which decisions.
type DecisionEntry struct {
	CycleID          string
	Method           string // "fast" | "full"
	Reached          bool
	WinnerSource     string
	WinnerConfidence float32
	ClusterCount     int
	MemberCount      int // size of the winning cluster (0 when not reached)
	ProposalCount    int // working set size at resolve time
	Score            float64
	Reason           string
	CreatedAt        time.Time
}

// #endregion decision-entry
