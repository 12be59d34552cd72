package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/assess"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/consensus"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/neuron"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/voter"
)

// #region main
func main() {
	dbPath := envOr("CORTEX_DB", "cortex.db")
	neuronSpec := envOr("CORTEX_NEURONS", "")

	// Trust ledger and decision log share one database file
	store, err := voter.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	v, err := voter.NewWithStore(voter.DefaultConfig(), store)
	if err != nil {
		log.Fatalf("failed to load trust weights: %v", err)
	}

	col := consensus.New(consensus.DefaultConfig(), v)
	if err := col.SetDecisionLog(store.DB()); err != nil {
		log.Fatalf("failed to prepare decision log: %v", err)
	}

	// Connect to the neuron services, if any are configured
	pool, closers, err := buildPool(neuronSpec)
	if err != nil {
		log.Fatalf("failed to connect neurons: %v", err)
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	assessor := assess.NewAssessor()

	fmt.Println("Colosseum consensus core ready.")
	fmt.Printf("  DB: %s | Neurons: %d\n", dbPath, len(closers))
	fmt.Println("Commands: propose <source> <conf> <content> | ask <prompt> | resolve [auto|fast|full] | report <success|failure> [output] | state | weights | quit")

	scanner := bufio.NewScanner(os.Stdin)

	// Sources of the last winning cluster, so a report can feed the
	// outcome back to everyone who voted for the executed decision.
	var lastWinners []string

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "propose":
			if err := handlePropose(col, rest); err != nil {
				log.Printf("propose error: %v", err)
			}

		case "ask":
			if pool == nil {
				log.Printf("no neurons configured (set CORTEX_NEURONS)")
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			msgs := pool.Gather(ctx, rest)
			cancel()
			for _, m := range msgs {
				if err := col.Submit(m); err != nil {
					log.Printf("submit from %s: %v", m.Source, err)
				}
			}
			fmt.Printf("gathered %d proposals (working set: %d)\n", len(msgs), col.Size())

		case "resolve":
			winners, err := handleResolve(col, rest)
			if err != nil {
				log.Printf("resolve error: %v", err)
				continue
			}
			lastWinners = winners

		case "report":
			if len(lastWinners) == 0 {
				log.Printf("nothing to report on: no winning cluster yet")
				continue
			}
			status, output, _ := strings.Cut(rest, " ")
			a := assessor.Assess(assess.ActionRespond, assess.ActionResult{
				Status: status,
				Output: output,
			}, "")
			for _, src := range lastWinners {
				col.RecordOutcome(src, a.Score)
			}
			fmt.Printf("outcome %.2f applied to %d sources (%s)\n", a.Score, len(lastWinners), a.Feedback)
			lastWinners = nil

		case "state":
			printState(col)

		case "weights":
			printWeights(col.TrustTable())

		default:
			log.Printf("unknown command %q", cmd)
		}
	}
}

// #endregion main

// #region commands

// handlePropose parses "source confidence content..." and submits it.
func handlePropose(col *consensus.Colosseum, args string) error {
	fields := strings.SplitN(args, " ", 3)
	if len(fields) < 3 {
		return fmt.Errorf("usage: propose <source> <confidence> <content>")
	}
	conf, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return fmt.Errorf("bad confidence %q: %w", fields[1], err)
	}
	return col.SubmitProposal(fields[0], fields[2], float32(conf))
}

// handleResolve runs one decision cycle and prints the result. It
// returns the sources of the winning cluster for outcome reporting.
func handleResolve(col *consensus.Colosseum, args string) ([]string, error) {
	mode := consensus.ModeAuto
	switch strings.TrimSpace(args) {
	case "", "auto":
	case "fast":
		mode = consensus.ModeFast
	case "full":
		mode = consensus.ModeFull
	default:
		return nil, fmt.Errorf("unknown mode %q", args)
	}

	result, err := col.Resolve(mode)
	if err != nil {
		return nil, err
	}

	if !result.Reached {
		fmt.Printf("[%s] no consensus (%s)\n", result.CycleID, result.Reason)
		if result.Fallback != nil {
			fmt.Printf("  fallback: %s: %q (conf=%.2f)\n",
				result.Fallback.Source, result.Fallback.Content, result.Fallback.Confidence)
		}
		return nil, nil
	}

	fmt.Printf("\n%s\n\n", result.Winning.Content)
	fmt.Printf("[%s] winner=%s method=%s clusters=%d members=%d/%d score=%.3f\n",
		result.CycleID, result.Winning.Source, result.MethodUsed,
		result.ClusterCount, len(result.Members), result.ProposalCount, result.Score)

	winners := make([]string, 0, len(result.Members))
	seen := make(map[string]bool)
	for _, m := range result.Members {
		if !seen[m.Source] {
			seen[m.Source] = true
			winners = append(winners, m.Source)
		}
	}
	return winners, nil
}

func printState(col *consensus.Colosseum) {
	s := col.State()
	fmt.Printf("working set: %d/%d | cycles: %d | evictions: %d\n",
		s.WorkingSetSize, s.MaxCapacity, s.CycleCount, s.Evictions)
	if len(s.Sources) > 0 {
		fmt.Printf("sources: %s\n", strings.Join(s.Sources, ", "))
	}
}

func printWeights(weights map[string]float32) {
	if len(weights) == 0 {
		fmt.Println("no trust weights recorded yet")
		return
	}
	sources := make([]string, 0, len(weights))
	for src := range weights {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		fmt.Printf("  %-24s %.3f\n", src, weights[src])
	}
}

// #endregion commands

// #region helpers

// buildPool parses "id=addr,id=addr" and dials each neuron.
func buildPool(spec string) (*neuron.Pool, []*neuron.Client, error) {
	if spec == "" {
		return nil, nil, nil
	}
	clients := make(map[string]neuron.Proposer)
	var closers []*neuron.Client
	for _, entry := range strings.Split(spec, ",") {
		id, addr, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || id == "" || addr == "" {
			return nil, closers, fmt.Errorf("bad neuron entry %q (want id=addr)", entry)
		}
		c, err := neuron.NewClient(addr)
		if err != nil {
			return nil, closers, fmt.Errorf("neuron %s at %s: %w", id, addr, err)
		}
		clients[id] = c
		closers = append(closers, c)
	}
	return neuron.NewPool(clients), closers, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
