package replay

import (
	"fmt"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/consensus"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/dispatch"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/voter"
)

// #region types

// Proposal is a single recorded submission for replay.
type Proposal struct {
	Source     string
	Content    string
	Confidence float32
}

// Cycle is one accumulate-then-resolve round, with optional trust
// feedback applied after resolution.
type Cycle struct {
	CycleID   string
	Mode      consensus.Mode
	Urgency   float32
	Proposals []Proposal
	Outcomes  map[string]float32
}

// CycleResult captures the outcome of replaying one cycle.
type CycleResult struct {
	CycleID string
	Result  consensus.Result
	// Weights is the trust snapshot after this cycle's outcomes were
	// applied, so weight drift across cycles can be asserted.
	Weights map[string]float32
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalCycles int
	Reached     int
	NoConsensus int
	FastCycles  int
}

// #endregion types

// #region replay

// Replay runs the recorded cycles through a fresh colosseum and trust
// ledger, entirely in-memory. Each cycle submits its proposals in
// recorded order, resolves, then applies its outcomes to the ledger, so
// later cycles see the trust state earlier cycles produced.
func Replay(config consensus.Config, cycles []Cycle) ([]CycleResult, error) {
	v := voter.New(voter.DefaultConfig())
	col := consensus.New(config, v)

	results := make([]CycleResult, 0, len(cycles))
	for _, cy := range cycles {
		for _, p := range cy.Proposals {
			if err := col.SubmitProposal(p.Source, p.Content, p.Confidence); err != nil {
				return nil, fmt.Errorf("cycle %s: submit from %s: %w", cy.CycleID, p.Source, err)
			}
		}

		res, err := col.ResolveWithUrgency(cy.Mode, cy.Urgency)
		if err != nil {
			return nil, fmt.Errorf("cycle %s: resolve: %w", cy.CycleID, err)
		}

		for source, outcome := range cy.Outcomes {
			v.RecordOutcome(source, outcome)
		}

		results = append(results, CycleResult{
			CycleID: cy.CycleID,
			Result:  res,
			Weights: v.Snapshot(),
		})
	}
	return results, nil
}

// Summarize folds cycle results into aggregate stats.
func Summarize(results []CycleResult) Summary {
	s := Summary{TotalCycles: len(results)}
	for _, r := range results {
		if r.Result.Reached {
			s.Reached++
		} else {
			s.NoConsensus++
		}
		if r.Result.MethodUsed == dispatch.MethodFast {
			s.FastCycles++
		}
	}
	return s
}

// #endregion replay
