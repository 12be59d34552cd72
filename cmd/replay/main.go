package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	os.Exit(runFixture(*fixturePath))
}

// #endregion main

// #region run

func runFixture(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	cycles := make([]replay.Cycle, len(f.Cycles))
	for i := range f.Cycles {
		cycles[i] = f.Cycles[i].ToCycle()
	}

	results, err := replay.Replay(f.Config.ToConfig(), cycles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	code := printComparison(results, f.Expected)

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d cycles, %d reached, %d no-consensus, %d fast\n",
		s.TotalCycles, s.Reached, s.NoConsensus, s.FastCycles)
	return code
}

// #endregion run

// #region output

// printComparison outputs a per-cycle comparison table against the
// fixture's expected resolutions and returns the exit code (1 on any
// divergence).
func printComparison(results []replay.CycleResult, expected []replay.FixtureExpected) int {
	fmt.Printf("%-12s| %-20s| %-20s| %s\n", "Cycle", "Expected", "Replayed", "Match")
	fmt.Printf("%-12s+%-21s+%-21s+%s\n",
		"------------", "---------------------", "---------------------", "------")

	matches := 0
	total := len(results)
	if len(expected) < total {
		total = len(expected)
	}

	for i := 0; i < total; i++ {
		exp := describe(expected[i].Reached, expected[i].WinnerSource)
		r := results[i].Result
		got := describe(r.Reached, r.Winning.Source)

		match := "DIFF"
		if cyclesMatch(expected[i], results[i]) {
			match = "OK"
			matches++
		}
		fmt.Printf("%-12s| %-20s| %-20s| %s\n", results[i].CycleID, exp, got, match)
	}

	if diverge := total - matches; diverge > 0 {
		return 1
	}
	return 0
}

func describe(reached bool, winner string) string {
	if !reached {
		return "(no consensus)"
	}
	return winner
}

// cyclesMatch compares a replayed cycle against its expectation. Winner
// content and method are only checked when the fixture spells them out.
func cyclesMatch(exp replay.FixtureExpected, got replay.CycleResult) bool {
	r := got.Result
	if exp.CycleID != got.CycleID || exp.Reached != r.Reached {
		return false
	}
	if !exp.Reached {
		return true
	}
	if exp.WinnerSource != r.Winning.Source {
		return false
	}
	if exp.WinnerContent != "" && exp.WinnerContent != r.Winning.Content {
		return false
	}
	if exp.Method != "" && exp.Method != string(r.MethodUsed) {
		return false
	}
	return true
}

// #endregion output
