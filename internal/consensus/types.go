package consensus

// #region imports
import (
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/cluster"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/dispatch"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/embed"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
)

// #endregion

// #region mode

// Mode selects the resolution path for one Resolve call.
type Mode string

const (
	// ModeAuto lets the hierarchical dispatcher route the cycle.
	ModeAuto Mode = "auto"
	// ModeFast forces the direct trust-weighted argmax path.
	ModeFast Mode = "fast"
	// ModeFull forces the embed/cluster/score pipeline.
	ModeFull Mode = "full"
)

// #endregion mode

// #region config

// Config holds the working-set and pipeline parameters.
type Config struct {
	// MaxCapacity bounds the working set. When a submit would exceed it,
	// the oldest record is evicted (ring-buffer policy; the set is never
	// implicitly resolved or wholesale reset mid-cycle).
	MaxCapacity  int
	EmbeddingDim int
	Cluster      cluster.Config
	Dispatch     dispatch.Config
}

// DefaultConfig returns the standard colosseum parameters.
func DefaultConfig() Config {
	return Config{
		MaxCapacity:  100,
		EmbeddingDim: embed.DefaultDim,
		Cluster:      cluster.DefaultConfig(),
		Dispatch:     dispatch.DefaultConfig(),
	}
}

// #endregion config

// #region result

// Result is the outcome of one decision cycle.
//
// Reached=false is the expected no-consensus outcome, not an error: the
// caller must decide the fallback (Fallback carries the highest raw
// confidence proposal to make that decision cheap). Winning is only
// meaningful when Reached is true.
type Result struct {
	CycleID       string
	Reached       bool
	Winning       message.Message
	Members       []message.Message // winning cluster, input order, for audit
	MethodUsed    dispatch.Method
	ClusterCount  int
	ProposalCount int
	Score         float64
	Fallback      *message.Message // highest-confidence proposal when !Reached
	Reason        string
}

// #endregion result

// #region state

// State is a diagnostic snapshot of the colosseum.
type State struct {
	WorkingSetSize int
	MaxCapacity    int
	CycleCount     int
	Evictions      int
	Sources        []string
}

// #endregion state
