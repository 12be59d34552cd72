package dispatch

// #region method

// Method is the resolution path chosen for a decision cycle.
type Method string

const (
	// MethodFast skips clustering and takes the best trust-weighted
	// proposal directly. The reflexive path.
	MethodFast Method = "fast"
	// MethodFull runs the complete embed/cluster/score pipeline.
	MethodFull Method = "full"
)

// #endregion method

// #region context

// Context carries the routing inputs observed at resolve time.
type Context struct {
	ProposalCount int
	MaxConfidence float32
	Urgency       float32 // 0 = none; set by callers with a deadline
}

// #endregion context

// #region config

// Config holds the routing thresholds.
type Config struct {
	FastConfidence   float32 // min MaxConfidence for the fast path
	FastMaxProposals int     // fast path only below this proposal count
	UrgencyThreshold float32 // urgency above this forces the fast path
}

// DefaultConfig returns the standard routing thresholds.
func DefaultConfig() Config {
	return Config{
		FastConfidence:   0.85,
		FastMaxProposals: 3,
		UrgencyThreshold: 0.8,
	}
}

// #endregion config

// #region select-method

// SelectMethod routes a decision cycle to the fast or full path. Pure
// function, no side effects: high urgency always goes fast; otherwise a
// small batch with a very confident proposal goes fast and everything
// else gets the full clustering treatment. An explicit caller-supplied
// mode bypasses this entirely (handled by the consensus selector).
func SelectMethod(ctx Context, cfg Config) Method {
	if ctx.Urgency > cfg.UrgencyThreshold {
		return MethodFast
	}
	if ctx.MaxConfidence >= cfg.FastConfidence && ctx.ProposalCount <= cfg.FastMaxProposals {
		return MethodFast
	}
	return MethodFull
}

// #endregion select-method
