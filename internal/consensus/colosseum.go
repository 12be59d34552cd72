package consensus

// #region imports
import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/cluster"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/dispatch"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/embed"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/logging"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/voter"
)

// #endregion

// #region colosseum

// Colosseum is the consensus selector: a working set of proposals from
// parallel LLM-neurons that one Resolve call collapses into a single
// decision. The cycle is perpetual: accumulate, resolve, reset.
//
// Submit is safe from concurrent producers. Resolve serializes state
// transitions: it snapshots and clears the working set under the lock,
// then does all embedding/clustering work outside it, so a slow resolve
// never blocks the next cycle's submissions.
type Colosseum struct {
	mu      sync.Mutex
	working []message.Message

	config   Config
	embedder *embed.Embedder
	voter    *voter.Voter // nil = plain scoring, no trust blending

	db *sql.DB // optional decision provenance; nil = not logged

	cycleCount int
	evictions  int
}

// New creates a Colosseum. v may be nil to disable trust-weighted
// scoring; each colosseum owns whichever voter it is given, so
// independent instances never share trust state implicitly.
func New(config Config, v *voter.Voter) *Colosseum {
	if config.MaxCapacity <= 0 {
		config.MaxCapacity = DefaultConfig().MaxCapacity
	}
	return &Colosseum{
		config:   config,
		embedder: embed.NewEmbedder(config.EmbeddingDim),
		voter:    v,
	}
}

// SetDecisionLog enables decision provenance rows in the given database.
func (c *Colosseum) SetDecisionLog(db *sql.DB) error {
	if err := logging.EnsureSchema(db); err != nil {
		return err
	}
	c.db = db
	return nil
}

// #endregion colosseum

// #region submit

// Submit appends a proposal to the working set. Returns
// message.ErrEmptySource for a proposal without an origin. At capacity
// the oldest record is evicted so the set never grows unbounded; the
// same policy holds for the whole cycle.
func (c *Colosseum) Submit(m message.Message) error {
	if m.Source == "" {
		return message.ErrEmptySource
	}
	m.Confidence = message.ClampConfidence(m.Confidence)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.working) >= c.config.MaxCapacity {
		evicted := c.working[0]
		c.working = c.working[1:]
		c.evictions++
		log.Printf("[COL] at capacity (%d), evicted oldest proposal from %s", c.config.MaxCapacity, evicted.Source)
	}
	c.working = append(c.working, m)
	return nil
}

// SubmitProposal stamps and submits a proposal in one call.
func (c *Colosseum) SubmitProposal(source, content string, confidence float32) error {
	m, err := message.New(source, content, confidence)
	if err != nil {
		return err
	}
	return c.Submit(m)
}

// #endregion submit

// #region resolve

// Resolve collapses the current working set into one decision and
// resets the set for the next cycle. The reset is unconditional: stale
// proposals never leak across cycles, even when no consensus is
// reached or clustering fails.
//
// An empty set or an all-noise clustering yields Reached=false with a
// nil error; only internal computation errors (embedding dimension
// mismatch, clusterer invariant violations) return a non-nil error,
// and they abort this cycle only.
func (c *Colosseum) Resolve(mode Mode) (Result, error) {
	return c.ResolveWithUrgency(mode, 0)
}

// ResolveWithUrgency is Resolve with an urgency hint for the
// dispatcher's auto-routing. Urgency only matters in ModeAuto.
func (c *Colosseum) ResolveWithUrgency(mode Mode, urgency float32) (Result, error) {
	c.mu.Lock()
	snapshot := c.working
	c.working = nil
	c.cycleCount++
	c.mu.Unlock()

	result, err := c.resolveSnapshot(snapshot, mode, urgency)
	if err != nil {
		return Result{}, err
	}

	c.logDecision(result)
	return result, nil
}

// resolveSnapshot runs the pipeline over an already-detached snapshot.
// Pure with respect to colosseum state apart from the embedded voter
// reads; the working set is untouched.
func (c *Colosseum) resolveSnapshot(snapshot []message.Message, mode Mode, urgency float32) (Result, error) {
	result := Result{
		CycleID:       uuid.New().String(),
		ProposalCount: len(snapshot),
	}

	if len(snapshot) == 0 {
		result.MethodUsed = dispatch.MethodFull
		result.Reason = "empty working set"
		log.Printf("[COL] resolve on empty working set, no consensus")
		return result, nil
	}

	method := c.routeMethod(snapshot, mode, urgency)
	result.MethodUsed = method

	switch method {
	case dispatch.MethodFast:
		c.resolveFast(snapshot, &result)
		return result, nil
	default:
		if err := c.resolveFull(snapshot, &result); err != nil {
			return Result{}, err
		}
		return result, nil
	}
}

// routeMethod applies an explicit caller mode, or asks the dispatcher.
func (c *Colosseum) routeMethod(snapshot []message.Message, mode Mode, urgency float32) dispatch.Method {
	switch mode {
	case ModeFast:
		return dispatch.MethodFast
	case ModeFull:
		return dispatch.MethodFull
	}

	var maxConf float32
	for _, m := range snapshot {
		if m.Confidence > maxConf {
			maxConf = m.Confidence
		}
	}
	return dispatch.SelectMethod(dispatch.Context{
		ProposalCount: len(snapshot),
		MaxConfidence: maxConf,
		Urgency:       urgency,
	}, c.config.Dispatch)
}

// #endregion resolve

// #region fast-path

// resolveFast takes the best trust-weighted proposal directly, skipping
// clustering. The reflexive path for urgent or already-confident cycles.
func (c *Colosseum) resolveFast(snapshot []message.Message, result *Result) {
	best := snapshot[0]
	bestScore := c.trustWeighted(best)

	for _, m := range snapshot[1:] {
		s := c.trustWeighted(m)
		if s > bestScore || (s == bestScore && m.After(best)) {
			best = m
			bestScore = s
		}
	}

	result.Reached = true
	result.Winning = best
	result.Members = []message.Message{best}
	result.Score = bestScore
	result.Reason = "fast path: trust-weighted argmax"

	log.Printf("[COL] fast consensus: %s (confidence=%.2f, weighted=%.3f)",
		best.Source, best.Confidence, bestScore)
}

// trustWeighted returns confidence x trust for one proposal.
func (c *Colosseum) trustWeighted(m message.Message) float64 {
	w := 1.0
	if c.voter != nil {
		w = float64(c.voter.Weight(m.Source))
	}
	return float64(m.Confidence) * w
}

// #endregion fast-path

// #region full-path

// resolveFull runs embed, DBSCAN, cluster scoring, winner selection.
func (c *Colosseum) resolveFull(snapshot []message.Message, result *Result) error {
	vectors := make([][]float32, len(snapshot))
	for i, m := range snapshot {
		vectors[i] = c.embedder.Embed(m.Content)
	}

	assignment, err := cluster.Run(vectors, c.config.Cluster)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}
	result.ClusterCount = assignment.Count

	if assignment.Count == 0 {
		fb := topMember(snapshot)
		result.Fallback = &fb
		result.Reason = "all proposals classified as noise"
		log.Printf("[COL] no consensus: %d proposals, all noise", len(snapshot))
		return nil
	}

	// Score every non-noise cluster; ties go to the cluster whose top
	// member has the most recent timestamp.
	var winnerID int
	var winnerScore float64
	var winnerTop message.Message
	var winnerMembers []message.Message

	for id := 0; id < assignment.Count; id++ {
		members := c.clusterMembers(snapshot, assignment, id)
		score := c.scoreCluster(members)
		top := topMember(members)

		if winnerMembers == nil || score > winnerScore ||
			(score == winnerScore && top.After(winnerTop)) {
			winnerID = id
			winnerScore = score
			winnerTop = top
			winnerMembers = members
		}
	}

	result.Reached = true
	result.Winning = winnerTop
	result.Members = winnerMembers
	result.Score = winnerScore
	result.Reason = fmt.Sprintf("cluster %d of %d won (size=%d)", winnerID, assignment.Count, len(winnerMembers))

	log.Printf("[COL] consensus: %s (confidence=%.2f, cluster size=%d, score=%.3f)",
		winnerTop.Source, winnerTop.Confidence, len(winnerMembers), winnerScore)
	return nil
}

// clusterMembers collects the messages of one cluster in input order.
func (c *Colosseum) clusterMembers(snapshot []message.Message, a cluster.Assignment, id int) []message.Message {
	var members []message.Message
	for _, idx := range a.Members(id) {
		members = append(members, snapshot[idx])
	}
	return members
}

// scoreCluster picks blended or plain scoring depending on the voter.
func (c *Colosseum) scoreCluster(members []message.Message) float64 {
	if c.voter != nil {
		return c.voter.BlendedScore(members)
	}
	return clusterScore(members)
}

// #endregion full-path

// #region observability

// Size returns the current working set size.
func (c *Colosseum) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.working)
}

// State returns a diagnostic snapshot.
func (c *Colosseum) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	sources := make([]string, len(c.working))
	for i, m := range c.working {
		sources[i] = m.Source
	}
	return State{
		WorkingSetSize: len(c.working),
		MaxCapacity:    c.config.MaxCapacity,
		CycleCount:     c.cycleCount,
		Evictions:      c.evictions,
		Sources:        sources,
	}
}

// RecordOutcome feeds post-hoc success/failure of an executed decision
// back to the owned voter. A no-op without one.
func (c *Colosseum) RecordOutcome(source string, outcome float32) {
	if c.voter == nil {
		return
	}
	c.voter.RecordOutcome(source, outcome)
}

// TrustTable returns a read-only snapshot of the owned voter's trust
// weights, or nil without one.
func (c *Colosseum) TrustTable() map[string]float32 {
	if c.voter == nil {
		return nil
	}
	return c.voter.Snapshot()
}

// logDecision writes the provenance row when a log db is wired.
func (c *Colosseum) logDecision(result Result) {
	if c.db == nil {
		return
	}
	entry := logging.DecisionEntry{
		CycleID:       result.CycleID,
		Method:        string(result.MethodUsed),
		Reached:       result.Reached,
		ClusterCount:  result.ClusterCount,
		MemberCount:   len(result.Members),
		ProposalCount: result.ProposalCount,
		Score:         result.Score,
		Reason:        result.Reason,
	}
	if result.Reached {
		entry.WinnerSource = result.Winning.Source
		entry.WinnerConfidence = result.Winning.Confidence
	}
	if err := logging.LogDecision(c.db, entry); err != nil {
		log.Printf("[COL] failed to log decision %s: %v", result.CycleID, err)
	}
}

// #endregion observability
