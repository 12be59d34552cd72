package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/logging"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/voter"
)

// #region main
func main() {
	dbPath := flag.String("db", "", "path to cortex.db")
	last := flag.Int("last", 20, "show N most recent decisions")
	source := flag.String("source", "", "show single source detail (weight + reliability)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/cortex.db [--last N] [--source id] [--json]")
		os.Exit(2)
	}

	store, err := voter.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *source != "" {
		if err := runSourceMode(store, *source, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type decisionRow struct {
	CycleID      string  `json:"cycle_id"`
	Reached      bool    `json:"reached"`
	Method       string  `json:"method"`
	WinnerSource string  `json:"winner_source,omitempty"`
	WinnerConf   float32 `json:"winner_confidence,omitempty"`
	Clusters     int     `json:"clusters"`
	Members      int     `json:"members"`
	Proposals    int     `json:"proposals"`
	Score        float64 `json:"score"`
	Reason       string  `json:"reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type weightRow struct {
	Source string  `json:"source"`
	Weight float32 `json:"weight"`
}

func runListMode(store *voter.Store, last int, jsonOut bool) error {
	entries, err := logging.RecentDecisions(store.DB(), last)
	if err != nil {
		return err
	}

	// RecentDecisions returns DESC, reverse for chronological output
	rows := make([]decisionRow, len(entries))
	for i, e := range entries {
		rows[len(entries)-1-i] = decisionRow{
			CycleID:      e.CycleID,
			Reached:      e.Reached,
			Method:       e.Method,
			WinnerSource: e.WinnerSource,
			WinnerConf:   e.WinnerConfidence,
			Clusters:     e.ClusterCount,
			Members:      e.MemberCount,
			Proposals:    e.ProposalCount,
			Score:        e.Score,
			Reason:       e.Reason,
			CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	weights, err := store.LoadWeights()
	if err != nil {
		return err
	}
	weightRows := make([]weightRow, 0, len(weights))
	for src, w := range weights {
		weightRows = append(weightRows, weightRow{Source: src, Weight: w})
	}
	sort.Slice(weightRows, func(i, j int) bool {
		if weightRows[i].Weight != weightRows[j].Weight {
			return weightRows[i].Weight > weightRows[j].Weight
		}
		return weightRows[i].Source < weightRows[j].Source
	})

	if jsonOut {
		return printJSON(map[string]interface{}{
			"decisions": rows,
			"weights":   weightRows,
		})
	}
	return printTables(rows, weightRows)
}

func printTables(rows []decisionRow, weights []weightRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no decisions found")
	} else {
		fmt.Printf("%-10s  %-4s  %-20s  %6s  %4s  %4s  %7s  %s\n",
			"Cycle", "Mode", "Winner", "Score", "Mem", "Prop", "Reached", "Time")
		fmt.Printf("%-10s+-%-4s+-%-20s+-%6s+-%4s+-%4s+-%7s+-%s\n",
			"----------", "----", "--------------------", "------", "----", "----", "-------", "--------------------")
		for _, r := range rows {
			winner := r.WinnerSource
			if !r.Reached {
				winner = "(" + r.Reason + ")"
			}
			fmt.Printf("%-10s  %-4s  %-20s  %6.3f  %4d  %4d  %7v  %s\n",
				shortID(r.CycleID), r.Method, truncate(winner, 20), r.Score,
				r.Members, r.Proposals, r.Reached, r.CreatedAt)
		}
	}

	if len(weights) > 0 {
		fmt.Println()
		fmt.Printf("%-24s  %s\n", "Source", "Weight")
		fmt.Printf("%-24s+-%s\n", "------------------------", "------")
		for _, w := range weights {
			fmt.Printf("%-24s  %.3f\n", w.Source, w.Weight)
		}
	}
	return nil
}

// #endregion list-mode

// #region source-mode

type sourceDetail struct {
	Source      string  `json:"source"`
	Weight      float32 `json:"weight"`
	Reliability float64 `json:"reliability"`
	Outcomes    int     `json:"outcomes"`
}

func runSourceMode(store *voter.Store, source string, jsonOut bool) error {
	weights, err := store.LoadWeights()
	if err != nil {
		return err
	}
	weight, ok := weights[source]
	if !ok {
		weight = voter.DefaultConfig().Neutral
	}

	reliability, n, err := store.SourceReliability(source)
	if err != nil {
		return err
	}

	detail := sourceDetail{
		Source:      source,
		Weight:      weight,
		Reliability: reliability,
		Outcomes:    n,
	}

	if jsonOut {
		return printJSON(detail)
	}
	fmt.Printf("source:      %s\n", detail.Source)
	fmt.Printf("weight:      %.3f\n", detail.Weight)
	fmt.Printf("reliability: %.3f (decay-weighted over %d outcomes)\n", detail.Reliability, detail.Outcomes)
	if !ok {
		fmt.Println("(source has no recorded weight; showing the neutral default)")
	}
	return nil
}

// #endregion source-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-1] + "…"
	}
	return s
}

// #endregion output
