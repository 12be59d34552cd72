package replay

import (
	"testing"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/consensus"
)

// helper: a cycle where two sources agree and one dissents.
func agreementCycle(id string) Cycle {
	return Cycle{
		CycleID: id,
		Mode:    consensus.ModeFull,
		Proposals: []Proposal{
			{Source: "scout_a", Content: "retreat, high danger", Confidence: 0.8},
			{Source: "scout_b", Content: "retreat immediately", Confidence: 0.7},
			{Source: "contrarian", Content: "identify the object", Confidence: 0.9},
		},
	}
}

// 1. Basic replay: agreement wins, the working set resets between cycles.
func TestReplay_AgreementAcrossCycles(t *testing.T) {
	cycles := []Cycle{agreementCycle("turn-1"), agreementCycle("turn-2")}

	results, err := Replay(consensus.DefaultConfig(), cycles)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Result.Reached {
			t.Fatalf("cycle %s: expected consensus (reason: %s)", r.CycleID, r.Result.Reason)
		}
		if r.Result.Winning.Source != "scout_a" {
			t.Errorf("cycle %s: expected scout_a to win, got %s", r.CycleID, r.Result.Winning.Source)
		}
		if r.Result.ProposalCount != 3 {
			t.Errorf("cycle %s: expected 3 proposals, got %d (working set leaked)",
				r.CycleID, r.Result.ProposalCount)
		}
	}
}

// 2. Outcomes carry forward: a cycle's feedback shifts the next cycle's weights.
func TestReplay_OutcomesCarryForward(t *testing.T) {
	first := agreementCycle("turn-1")
	first.Outcomes = map[string]float32{"scout_a": 1.0, "contrarian": -1.0}
	cycles := []Cycle{first, agreementCycle("turn-2")}

	results, err := Replay(consensus.DefaultConfig(), cycles)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	w1 := results[0].Weights
	if w1["scout_a"] <= 1.0 {
		t.Errorf("scout_a weight after reward: got %v, want > 1.0", w1["scout_a"])
	}
	if w1["contrarian"] >= 1.0 {
		t.Errorf("contrarian weight after penalty: got %v, want < 1.0", w1["contrarian"])
	}

	// The second cycle applied no outcomes, so weights must hold steady.
	w2 := results[1].Weights
	if w2["scout_a"] != w1["scout_a"] {
		t.Errorf("scout_a weight drifted without feedback: %v -> %v", w1["scout_a"], w2["scout_a"])
	}
}

// 3. An invalid recorded proposal stops the replay with context.
func TestReplay_InvalidProposal(t *testing.T) {
	cycles := []Cycle{{
		CycleID:   "turn-1",
		Mode:      consensus.ModeFull,
		Proposals: []Proposal{{Source: "", Content: "ghost", Confidence: 0.5}},
	}}

	if _, err := Replay(consensus.DefaultConfig(), cycles); err == nil {
		t.Error("expected an error for an empty source")
	}
}

// 4. Summarize counts outcomes and method usage.
func TestSummarize(t *testing.T) {
	cycles := []Cycle{
		agreementCycle("turn-1"),
		{
			CycleID: "turn-2",
			Mode:    consensus.ModeFast,
			Proposals: []Proposal{
				{Source: "scout_a", Content: "hold position", Confidence: 0.9},
			},
		},
		{
			CycleID: "turn-3",
			Mode:    consensus.ModeFull,
			Proposals: []Proposal{
				{Source: "scout_a", Content: "resume patrol route", Confidence: 0.8},
			},
		},
	}

	results, err := Replay(consensus.DefaultConfig(), cycles)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	s := Summarize(results)
	if s.TotalCycles != 3 {
		t.Errorf("total: got %d, want 3", s.TotalCycles)
	}
	if s.Reached != 2 {
		t.Errorf("reached: got %d, want 2", s.Reached)
	}
	if s.NoConsensus != 1 {
		t.Errorf("no consensus: got %d, want 1", s.NoConsensus)
	}
	if s.FastCycles != 1 {
		t.Errorf("fast cycles: got %d, want 1", s.FastCycles)
	}
}
