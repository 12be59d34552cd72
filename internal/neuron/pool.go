package neuron

// #region imports
import (
	"context"
	"log"
	"sync"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
)

// #endregion

// #region proposer

// Proposer abstracts the neuron RPC so Pool can be tested without gRPC.
type Proposer interface {
	Propose(ctx context.Context, prompt, neuronID string) (Proposal, error)
}

// #endregion proposer

// #region pool

// Pool fans one prompt out to a set of neurons in parallel and collects
// their proposals. A neuron that errors or times out simply did not
// submit this cycle; that is never an error of the pool itself.
type Pool struct {
	clients map[string]Proposer
}

// NewPool creates a Pool over the given neuron clients, keyed by
// neuron id.
func NewPool(clients map[string]Proposer) *Pool {
	return &Pool{clients: clients}
}

// #endregion pool

// #region gather

// Gather calls every neuron concurrently and returns the messages of
// those that answered, in no particular order. Timestamps are stamped
// on arrival, so later-arriving proposals get later timestamps.
func (p *Pool) Gather(ctx context.Context, prompt string) []message.Message {
	var (
		mu       sync.Mutex
		gathered []message.Message
		wg       sync.WaitGroup
	)

	for id, client := range p.clients {
		wg.Add(1)
		go func(id string, client Proposer) {
			defer wg.Done()

			prop, err := client.Propose(ctx, prompt, id)
			if err != nil {
				log.Printf("[NEURON] %s did not submit: %v", id, err)
				return
			}
			m, err := prop.ToMessage(id)
			if err != nil {
				log.Printf("[NEURON] %s produced an invalid proposal: %v", id, err)
				return
			}

			mu.Lock()
			gathered = append(gathered, m)
			mu.Unlock()
		}(id, client)
	}

	wg.Wait()
	return gathered
}

// #endregion gather
