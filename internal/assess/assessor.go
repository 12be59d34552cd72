package assess

// #region imports
import (
	"log"
	"strings"
)

// #endregion

// #region types

// ActionKind classifies what the executed decision actually did.
type ActionKind string

const (
	ActionReadFile   ActionKind = "read_file"
	ActionWriteFile  ActionKind = "write_file"
	ActionRunCommand ActionKind = "run_command"
	ActionRespond    ActionKind = "respond"
)

// ActionResult is what the executor reports back after carrying out a
// decision.
type ActionResult struct {
	Status string // "success" or anything else
	Output string
	Err    string
}

// Assessment is the outcome signal fed back into the trust table.
// Score is in [-1, 1]: negative for failures, positive for confirmed
// successes, small positive for unverifiable ones.
type Assessment struct {
	Success  bool
	Score    float32
	Feedback string
}

// #endregion types

// #region assessor

// Assessor compares an executed decision's result against expectation
// and produces the outcome score consumed by RecordOutcome. It sits
// outside the consensus core proper: the core only sees the float.
type Assessor struct{}

// NewAssessor creates an Assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess scores one executed action. expectation may be empty; when
// present it is matched case-insensitively against the output.
func (a *Assessor) Assess(kind ActionKind, result ActionResult, expectation string) Assessment {
	log.Printf("[ASSESS] assessing outcome for %s", kind)

	if result.Status != "success" {
		return Assessment{
			Success:  false,
			Score:    -0.5,
			Feedback: "action failed: " + result.Err,
		}
	}

	switch kind {
	case ActionReadFile:
		return assessRead(result)
	case ActionWriteFile:
		return Assessment{Success: true, Score: 1.0, Feedback: "write confirmed"}
	case ActionRunCommand:
		return assessCommand(result, expectation)
	}

	return Assessment{Success: true, Score: 0.5, Feedback: "action completed"}
}

// #endregion assessor

// #region heuristics

// assessRead scores a read: an empty file is technically a success but
// barely useful, so it earns a near-zero score.
func assessRead(result ActionResult) Assessment {
	if len(result.Output) == 0 {
		return Assessment{Success: true, Score: 0.1, Feedback: "read succeeded but file was empty"}
	}
	return Assessment{Success: true, Score: 0.8, Feedback: "read succeeded"}
}

// assessCommand scores a command run, rewarding output that matches the
// stated expectation.
func assessCommand(result ActionResult, expectation string) Assessment {
	if expectation != "" && strings.Contains(strings.ToLower(result.Output), strings.ToLower(expectation)) {
		return Assessment{Success: true, Score: 1.0, Feedback: "command output matched expectation"}
	}
	return Assessment{Success: true, Score: 0.7, Feedback: "command succeeded"}
}

// #endregion heuristics
