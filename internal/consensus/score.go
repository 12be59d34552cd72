package consensus

// #region imports
import (
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
)

// #endregion

// #region cluster-score

// clusterScore ranks a cluster by size times mean member confidence.
// A large low-confidence cluster and a small certain one land on the
// same scale, rewarding agreement and certainty together. Noise points
// never get here.
func clusterScore(members []message.Message) float64 {
	if len(members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range members {
		sum += float64(m.Confidence)
	}
	return float64(len(members)) * sum / float64(len(members))
}

// #endregion cluster-score

// #region top-member

// topMember returns the highest-confidence member; confidence ties go
// to the most recent timestamp, which together with input-ordered
// members makes the choice deterministic.
func topMember(members []message.Message) message.Message {
	best := members[0]
	for _, m := range members[1:] {
		if m.Confidence > best.Confidence ||
			(m.Confidence == best.Confidence && m.After(best)) {
			best = m
		}
	}
	return best
}

// #endregion top-member
