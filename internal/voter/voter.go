package voter

// #region imports
import (
	"log"
	"sync"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
)

// #endregion

// #region config

// Config holds the trust learning parameters.
type Config struct {
	LearningRate float32 // how fast trust moves toward the outcome target
	Neutral      float32 // weight assigned to sources never seen before
	MinWeight    float32 // floor: a losing streak never fully silences a source
	MaxWeight    float32 // cap: a winning streak never gains veto power
}

// DefaultConfig returns the standard trust parameters.
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.1,
		Neutral:      1.0,
		MinWeight:    0.1,
		MaxWeight:    3.0,
	}
}

// #endregion config

// #region voter

// Voter maintains a per-source trust weight learned from decision
// outcomes. Reads (score lookups during resolve) are concurrent; writes
// (outcome updates) are serialized. The table is owned state, not a
// process-wide singleton: independent colosseums run independent voters.
type Voter struct {
	mu      sync.RWMutex
	weights map[string]float32
	config  Config
	store   *Store // nil = in-memory only
}

// New creates a Voter with an empty trust table.
func New(config Config) *Voter {
	return &Voter{
		weights: make(map[string]float32),
		config:  config,
	}
}

// NewWithStore creates a Voter whose trust table is rehydrated from and
// persisted to the given store.
func NewWithStore(config Config, store *Store) (*Voter, error) {
	v := New(config)
	v.store = store

	loaded, err := store.LoadWeights()
	if err != nil {
		return nil, err
	}
	v.weights = loaded

	log.Printf("[VOTE] trust table loaded (%d sources)", len(loaded))
	return v, nil
}

// #endregion voter

// #region weight

// Weight returns the current trust weight for a source. Unseen sources
// get the neutral default.
func (v *Voter) Weight(source string) float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if w, ok := v.weights[source]; ok {
		return w
	}
	return v.config.Neutral
}

// Snapshot returns a copy of the full trust table, including only
// sources that have received at least one outcome.
func (v *Voter) Snapshot() map[string]float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]float32, len(v.weights))
	for k, w := range v.weights {
		out[k] = w
	}
	return out
}

// #endregion weight

// #region record-outcome

// RecordOutcome applies one success/failure signal for a source.
// outcome is clamped to [-1, 1]; the trust weight moves a LearningRate
// fraction of the way toward Neutral+outcome, then is clamped to
// [MinWeight, MaxWeight]. A single outcome can therefore never zero out
// or crown a source.
func (v *Voter) RecordOutcome(source string, outcome float32) {
	if source == "" {
		return
	}
	if outcome < -1 {
		outcome = -1
	}
	if outcome > 1 {
		outcome = 1
	}

	v.mu.Lock()
	old, ok := v.weights[source]
	if !ok {
		old = v.config.Neutral
	}

	target := v.config.Neutral + outcome
	next := old + v.config.LearningRate*(target-old)
	if next < v.config.MinWeight {
		next = v.config.MinWeight
	}
	if next > v.config.MaxWeight {
		next = v.config.MaxWeight
	}
	v.weights[source] = next
	v.mu.Unlock()

	log.Printf("[VOTE] trust %s: %.3f -> %.3f (outcome=%.2f)", source, old, next, outcome)

	if v.store != nil {
		if err := v.store.RecordOutcome(source, outcome, old, next); err != nil {
			log.Printf("[VOTE] failed to persist outcome for %s: %v", source, err)
		}
	}
}

// #endregion record-outcome

// #region blended-score

// BlendedScore ranks a cluster by size times the mean trust-weighted
// confidence of its members. With an all-neutral table it degrades to
// the plain size x mean(confidence) score.
func (v *Voter) BlendedScore(members []message.Message) float64 {
	if len(members) == 0 {
		return 0
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	var sum float64
	for _, m := range members {
		w, ok := v.weights[m.Source]
		if !ok {
			w = v.config.Neutral
		}
		sum += float64(m.Confidence) * float64(w)
	}
	return float64(len(members)) * sum / float64(len(members))
}

// #endregion blended-score
