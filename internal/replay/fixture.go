package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/consensus"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string            `json:"description"`
	Config      FixtureConfig     `json:"config"`
	Cycles      []FixtureCycle    `json:"cycles"`
	Expected    []FixtureExpected `json:"expected"`
}

// FixtureConfig mirrors consensus.Config with JSON tags. Zero values
// fall back to the defaults, so fixtures only spell out what they tune.
type FixtureConfig struct {
	MaxCapacity      int     `json:"max_capacity"`
	EmbeddingDim     int     `json:"embedding_dim"`
	Eps              float64 `json:"eps"`
	MinPoints        int     `json:"min_points"`
	FastConfidence   float32 `json:"fast_confidence"`
	FastMaxProposals int     `json:"fast_max_proposals"`
	UrgencyThreshold float32 `json:"urgency_threshold"`
}

// FixtureProposal is one recorded submission.
type FixtureProposal struct {
	Source     string  `json:"source"`
	Content    string  `json:"content"`
	Confidence float32 `json:"confidence"`
}

// FixtureCycle is one accumulate-then-resolve round.
type FixtureCycle struct {
	CycleID   string            `json:"cycle_id"`
	Mode      string            `json:"mode"` // "auto" | "fast" | "full"
	Urgency   float32           `json:"urgency"`
	Proposals []FixtureProposal `json:"proposals"`
	// Outcomes fed back to the trust ledger after the cycle resolves,
	// keyed by source. Applied before the next cycle runs.
	Outcomes map[string]float32 `json:"outcomes"`
}

// FixtureExpected captures the expected resolution per cycle.
type FixtureExpected struct {
	CycleID       string `json:"cycle_id"`
	Reached       bool   `json:"reached"`
	WinnerSource  string `json:"winner_source"`
	WinnerContent string `json:"winner_content"`
	Method        string `json:"method"`
	MemberCount   int    `json:"member_count"`
}

// #endregion fixture-types

// #region conversion

// ToConfig converts a fixture config to a consensus.Config, filling
// unset knobs from DefaultConfig.
func (fc FixtureConfig) ToConfig() consensus.Config {
	cfg := consensus.DefaultConfig()
	if fc.MaxCapacity > 0 {
		cfg.MaxCapacity = fc.MaxCapacity
	}
	if fc.EmbeddingDim > 0 {
		cfg.EmbeddingDim = fc.EmbeddingDim
	}
	if fc.Eps > 0 {
		cfg.Cluster.Eps = fc.Eps
	}
	if fc.MinPoints > 0 {
		cfg.Cluster.MinPoints = fc.MinPoints
	}
	if fc.FastConfidence > 0 {
		cfg.Dispatch.FastConfidence = fc.FastConfidence
	}
	if fc.FastMaxProposals > 0 {
		cfg.Dispatch.FastMaxProposals = fc.FastMaxProposals
	}
	if fc.UrgencyThreshold > 0 {
		cfg.Dispatch.UrgencyThreshold = fc.UrgencyThreshold
	}
	return cfg
}

// ToCycle converts a fixture cycle to a domain Cycle.
func (fc FixtureCycle) ToCycle() Cycle {
	c := Cycle{
		CycleID:  fc.CycleID,
		Mode:     consensus.Mode(fc.Mode),
		Urgency:  fc.Urgency,
		Outcomes: fc.Outcomes,
	}
	if c.Mode == "" {
		c.Mode = consensus.ModeAuto
	}
	for _, p := range fc.Proposals {
		c.Proposals = append(c.Proposals, Proposal{
			Source:     p.Source,
			Content:    p.Content,
			Confidence: p.Confidence,
		})
	}
	return c
}

// #endregion conversion

// #region load

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Cycles) == 0 {
		return nil, fmt.Errorf("fixture %s has no cycles", path)
	}
	return &f, nil
}

// #endregion load
