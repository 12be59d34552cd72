package consensus

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/dispatch"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/logging"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/voter"
)

func mustSubmitAt(t *testing.T, c *Colosseum, source, content string, conf float32, ts time.Time) {
	t.Helper()
	m, err := message.NewAt(source, content, conf, ts)
	if err != nil {
		t.Fatalf("message %s: %v", source, err)
	}
	if err := c.Submit(m); err != nil {
		t.Fatalf("submit %s: %v", source, err)
	}
}

func TestSubmit_EmptySource(t *testing.T) {
	c := New(DefaultConfig(), nil)
	err := c.Submit(message.Message{Content: "x", Confidence: 0.5})
	if !errors.Is(err, message.ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
	if c.Size() != 0 {
		t.Error("rejected proposal entered the working set")
	}
}

func TestResolve_EmptyWorkingSet(t *testing.T) {
	c := New(DefaultConfig(), nil)

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("empty resolve must not error: %v", err)
	}
	if result.Reached {
		t.Error("empty set reported consensus")
	}
	if result.Fallback != nil {
		t.Error("empty set has no fallback proposal")
	}
}

// The amygdala scenario: two agreeing retreat proposals must
// outscore the unrelated singleton, and the higher-confidence retreat
// proposal wins within the pair.
func TestResolve_AgreementWins(t *testing.T) {
	c := New(DefaultConfig(), nil)
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mustSubmitAt(t, c, "Amygdala_Threat", "retreat, high danger", 0.9, t0)
	mustSubmitAt(t, c, "Logic_Classifier", "identify object first", 0.4, t0.Add(time.Second))
	mustSubmitAt(t, c, "Amygdala_Backup", "retreat immediately", 0.85, t0.Add(2*time.Second))

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !result.Reached {
		t.Fatalf("expected consensus, got none (%s)", result.Reason)
	}
	if result.Winning.Source != "Amygdala_Threat" {
		t.Errorf("winner: got %s, want Amygdala_Threat (highest confidence in pair)", result.Winning.Source)
	}
	if len(result.Members) != 2 {
		t.Errorf("winning cluster size: got %d, want 2", len(result.Members))
	}
	for _, m := range result.Members {
		if m.Source == "Logic_Classifier" {
			t.Error("unrelated proposal landed in the winning cluster")
		}
	}
}

func TestResolve_DuplicateContentClusters(t *testing.T) {
	c := New(DefaultConfig(), nil)
	t0 := time.Now().UTC()

	for i := 0; i < 4; i++ {
		mustSubmitAt(t, c, fmt.Sprintf("neuron_%d", i), "open the airlock slowly", 0.7, t0.Add(time.Duration(i)*time.Millisecond))
	}
	mustSubmitAt(t, c, "contrarian", "seal everything and wait", 0.95, t0.Add(time.Second))

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !result.Reached {
		t.Fatalf("expected consensus, got none (%s)", result.Reason)
	}
	if got := len(result.Members); got != 4 {
		t.Errorf("winning cluster should contain all 4 duplicates, got %d", got)
	}
	if result.Winning.Content != "open the airlock slowly" {
		t.Errorf("winner content: got %q", result.Winning.Content)
	}
}

func TestResolve_AllNoise(t *testing.T) {
	c := New(DefaultConfig(), nil)
	t0 := time.Now().UTC()

	mustSubmitAt(t, c, "a", "paint the fence green", 0.6, t0)
	mustSubmitAt(t, c, "b", "feed the orbital cat", 0.7, t0.Add(time.Second))
	mustSubmitAt(t, c, "c", "recompile stellar engine", 0.8, t0.Add(2*time.Second))

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Reached {
		t.Fatalf("dissimilar singletons must not reach consensus: %+v", result)
	}
	if result.Fallback == nil {
		t.Fatal("no-consensus result must surface a fallback")
	}
	if result.Fallback.Source != "c" {
		t.Errorf("fallback should be highest confidence, got %s", result.Fallback.Source)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	run := func() Result {
		c := New(DefaultConfig(), nil)
		mustSubmitAt(t, c, "Amygdala_Threat", "retreat, high danger", 0.9, t0)
		mustSubmitAt(t, c, "Logic_Classifier", "identify object first", 0.4, t0.Add(time.Second))
		mustSubmitAt(t, c, "Amygdala_Backup", "retreat immediately", 0.85, t0.Add(2*time.Second))
		r, err := c.Resolve(ModeFull)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		return r
	}

	first := run()
	for i := 0; i < 5; i++ {
		again := run()
		if again.Reached != first.Reached ||
			again.Winning != first.Winning ||
			again.Score != first.Score ||
			again.ClusterCount != first.ClusterCount ||
			len(again.Members) != len(first.Members) {
			t.Fatalf("non-deterministic resolve:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

// Adding one more agreeing proposal at or above the cluster's mean
// confidence never lowers the cluster's score relative to rivals.
func TestResolve_Monotonicity(t *testing.T) {
	t0 := time.Now().UTC()

	build := func(extra bool) (Result, error) {
		c := New(DefaultConfig(), nil)
		mustSubmitAt(t, c, "a1", "retreat, high danger", 0.8, t0)
		mustSubmitAt(t, c, "a2", "retreat, high danger", 0.8, t0.Add(time.Millisecond))
		mustSubmitAt(t, c, "b1", "identify object first", 0.9, t0.Add(2*time.Millisecond))
		mustSubmitAt(t, c, "b2", "identify object first", 0.9, t0.Add(3*time.Millisecond))
		if extra {
			mustSubmitAt(t, c, "a3", "retreat, high danger", 0.9, t0.Add(4*time.Millisecond))
		}
		return c.Resolve(ModeFull)
	}

	before, err := build(false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	after, err := build(true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !after.Reached {
		t.Fatal("expected consensus after reinforcement")
	}
	// The reinforced retreat cluster (3 members) must now win over the
	// identify cluster regardless of who won before.
	if after.Winning.Content != "retreat, high danger" {
		t.Errorf("reinforced cluster lost: winner %q (before: %q)", after.Winning.Content, before.Winning.Content)
	}
}

func TestResolve_ResetsWorkingSet(t *testing.T) {
	c := New(DefaultConfig(), nil)
	t0 := time.Now().UTC()

	mustSubmitAt(t, c, "a", "anything at all", 0.5, t0)
	mustSubmitAt(t, c, "b", "something else", 0.5, t0)

	for _, mode := range []Mode{ModeFull, ModeFast, ModeAuto} {
		if _, err := c.Resolve(mode); err != nil {
			t.Fatalf("resolve %s: %v", mode, err)
		}
		if c.Size() != 0 {
			t.Fatalf("working set not cleared after %s resolve: %d", mode, c.Size())
		}
		mustSubmitAt(t, c, "a", "next cycle", 0.5, t0)
	}
}

func TestSubmit_CapacityEvictsOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCapacity = 3
	c := New(cfg, nil)
	t0 := time.Now().UTC()

	for i := 0; i < 5; i++ {
		mustSubmitAt(t, c, fmt.Sprintf("n%d", i), "payload", 0.5, t0.Add(time.Duration(i)*time.Second))
	}

	if c.Size() != 3 {
		t.Fatalf("size: got %d, want 3", c.Size())
	}
	st := c.State()
	if st.Evictions != 2 {
		t.Errorf("evictions: got %d, want 2", st.Evictions)
	}
	// Oldest two are gone; newest three remain in order.
	want := []string{"n2", "n3", "n4"}
	for i, s := range st.Sources {
		if s != want[i] {
			t.Errorf("source %d: got %s, want %s", i, s, want[i])
		}
	}
}

func TestResolve_FastMode(t *testing.T) {
	v := voter.New(voter.DefaultConfig())
	// Distrust the loud neuron, trust the quiet one.
	for i := 0; i < 100; i++ {
		v.RecordOutcome("loud", -1.0)
		v.RecordOutcome("quiet", 1.0)
	}

	c := New(DefaultConfig(), v)
	t0 := time.Now().UTC()
	mustSubmitAt(t, c, "loud", "do the flashy thing", 0.9, t0)
	mustSubmitAt(t, c, "quiet", "do the careful thing", 0.6, t0.Add(time.Second))

	result, err := c.Resolve(ModeFast)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !result.Reached {
		t.Fatal("fast path on non-empty set must reach a decision")
	}
	if result.MethodUsed != dispatch.MethodFast {
		t.Errorf("method: got %s", result.MethodUsed)
	}
	// 0.6 * ~2.0 beats 0.9 * ~0.1.
	if result.Winning.Source != "quiet" {
		t.Errorf("trust weighting ignored: winner %s", result.Winning.Source)
	}
}

func TestResolve_AutoRouting(t *testing.T) {
	t0 := time.Now().UTC()

	// Small, confident batch routes fast.
	c := New(DefaultConfig(), nil)
	mustSubmitAt(t, c, "a", "go left", 0.95, t0)
	mustSubmitAt(t, c, "b", "go right", 0.3, t0)

	result, err := c.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.MethodUsed != dispatch.MethodFast {
		t.Errorf("confident small batch: got %s, want fast", result.MethodUsed)
	}

	// Large uncertain batch routes full.
	c = New(DefaultConfig(), nil)
	for i := 0; i < 10; i++ {
		mustSubmitAt(t, c, fmt.Sprintf("n%d", i), "uncertain idea", 0.4, t0)
	}
	result, err = c.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.MethodUsed != dispatch.MethodFull {
		t.Errorf("uncertain batch: got %s, want full", result.MethodUsed)
	}

	// Urgency forces the fast path even for a large uncertain batch.
	c = New(DefaultConfig(), nil)
	for i := 0; i < 10; i++ {
		mustSubmitAt(t, c, fmt.Sprintf("n%d", i), "uncertain idea", 0.4, t0)
	}
	result, err = c.ResolveWithUrgency(ModeAuto, 0.95)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.MethodUsed != dispatch.MethodFast {
		t.Errorf("urgent batch: got %s, want fast", result.MethodUsed)
	}
}

func TestResolve_BlendedScoringFlipsWinner(t *testing.T) {
	t0 := time.Now().UTC()

	submitAll := func(c *Colosseum) {
		mustSubmitAt(t, c, "crowd_1", "take the bridge", 0.6, t0)
		mustSubmitAt(t, c, "crowd_2", "take the bridge", 0.6, t0.Add(time.Millisecond))
		mustSubmitAt(t, c, "expert_1", "crawl through tunnel", 0.75, t0.Add(2*time.Millisecond))
		mustSubmitAt(t, c, "expert_2", "crawl through tunnel", 0.75, t0.Add(3*time.Millisecond))
	}

	// Without trust, the higher-confidence tunnel cluster wins.
	plain := New(DefaultConfig(), nil)
	submitAll(plain)
	result, err := plain.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Winning.Content != "crawl through tunnel" {
		t.Fatalf("plain winner: got %q", result.Winning.Content)
	}

	// With the experts heavily distrusted, the bridge cluster wins.
	v := voter.New(voter.DefaultConfig())
	for i := 0; i < 100; i++ {
		v.RecordOutcome("expert_1", -1.0)
		v.RecordOutcome("expert_2", -1.0)
	}
	blended := New(DefaultConfig(), v)
	submitAll(blended)
	result, err = blended.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Winning.Content != "take the bridge" {
		t.Errorf("blended winner: got %q, trust should have flipped it", result.Winning.Content)
	}
}

func TestSubmit_ConcurrentProducers(t *testing.T) {
	c := New(DefaultConfig(), nil)

	var wg sync.WaitGroup
	for p := 0; p < 10; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if err := c.SubmitProposal(fmt.Sprintf("producer_%d", p), "parallel proposal", 0.5); err != nil {
					t.Errorf("submit: %v", err)
				}
			}
		}(p)
	}
	wg.Wait()

	if c.Size() != 100 {
		t.Errorf("size after concurrent submits: got %d, want 100", c.Size())
	}

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !result.Reached || len(result.Members) != 100 {
		t.Errorf("identical concurrent proposals should form one full cluster: reached=%v members=%d",
			result.Reached, len(result.Members))
	}
}

func TestResolve_DecisionLogWritten(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "col.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	c := New(DefaultConfig(), nil)
	if err := c.SetDecisionLog(db); err != nil {
		t.Fatalf("decision log: %v", err)
	}

	t0 := time.Now().UTC()
	mustSubmitAt(t, c, "a", "retreat now", 0.9, t0)
	mustSubmitAt(t, c, "b", "retreat now", 0.8, t0.Add(time.Second))

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	entries, err := logging.RecentDecisions(db, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("rows: got %d, want 1", len(entries))
	}
	if entries[0].CycleID != result.CycleID {
		t.Errorf("cycle id: got %s, want %s", entries[0].CycleID, result.CycleID)
	}
	if !entries[0].Reached || entries[0].WinnerSource != result.Winning.Source {
		t.Errorf("logged row mismatch: %+v", entries[0])
	}
}

func TestResolve_SingletonIsNoConsensus(t *testing.T) {
	c := New(DefaultConfig(), nil)
	mustSubmitAt(t, c, "solo", "the only idea", 0.99, time.Now().UTC())

	result, err := c.Resolve(ModeFull)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Reached {
		t.Error("a single proposal cannot satisfy the density bar")
	}
	if result.Fallback == nil || result.Fallback.Source != "solo" {
		t.Error("the lone proposal should surface as fallback")
	}
}

func TestTrustTable_Delegation(t *testing.T) {
	v := voter.New(voter.DefaultConfig())
	c := New(DefaultConfig(), v)

	c.RecordOutcome("scout", 1.0)
	table := c.TrustTable()
	if w := table["scout"]; w <= 1.0 {
		t.Errorf("scout weight after reward: got %v, want > 1.0", w)
	}

	// Snapshot is a copy, not a window into voter state.
	table["scout"] = 99
	if w := v.Weight("scout"); w == 99 {
		t.Error("mutating the snapshot leaked into the voter")
	}
}

func TestTrustTable_NilVoter(t *testing.T) {
	c := New(DefaultConfig(), nil)
	c.RecordOutcome("scout", 1.0)
	if c.TrustTable() != nil {
		t.Error("expected nil trust table without a voter")
	}
}
