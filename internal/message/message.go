package message

// #region imports
import (
	"errors"
	"time"
)

// #endregion

// #region errors

// ErrEmptySource rejects proposals with no originating neuron.
var ErrEmptySource = errors.New("proposal source cannot be empty")

// #endregion errors

// #region message

// Message is a single proposal from an LLM-neuron: the atomic unit the
// consensus core operates on. It is a value type: two messages with
// identical fields are interchangeable for clustering, but are still
// counted separately if both were submitted.
type Message struct {
	Source     string    `json:"source"`
	Content    string    `json:"content"`
	Confidence float32   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// #endregion message

// #region constructors

// New builds a Message stamped with the current UTC time.
// Confidence outside [0,1] is clamped, never rejected.
// Returns ErrEmptySource for an empty source.
func New(source, content string, confidence float32) (Message, error) {
	return NewAt(source, content, confidence, time.Now().UTC())
}

// NewAt builds a Message with an explicit timestamp. Used by transports
// that carry the original submission time and by replay fixtures.
func NewAt(source, content string, confidence float32, ts time.Time) (Message, error) {
	if source == "" {
		return Message{}, ErrEmptySource
	}
	return Message{
		Source:     source,
		Content:    content,
		Confidence: ClampConfidence(confidence),
		Timestamp:  ts,
	}, nil
}

// #endregion constructors

// #region clamp

// ClampConfidence forces a confidence value into [0, 1].
func ClampConfidence(c float32) float32 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// #endregion clamp

// #region after

// After reports whether m's timestamp is strictly later than other's.
// Tie-breaking helper used by winner selection.
func (m Message) After(other Message) bool {
	return m.Timestamp.After(other.Timestamp)
}

// #endregion after
