package neuron

// #region imports
import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/chappy-ai/digital-cortex/go-consensus/gen/cortex"
	"github.com/chappy-ai/digital-cortex/go-consensus/internal/message"
)

// #endregion

// #region proposal

// Proposal is a neuron's answer to one prompt.
type Proposal struct {
	Content    string
	Confidence float32
}

// #endregion proposal

// #region client-struct

// Client wraps the gRPC connection to an LLM-neuron process. The neuron
// is an opaque collaborator: prompt in, text plus confidence out.
type Client struct {
	conn   *grpc.ClientConn
	client pb.NeuronServiceClient
}

// #endregion client-struct

// #region constructor

// NewClient connects to a neuron gRPC server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: pb.NewNeuronServiceClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc pb.NeuronServiceClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region propose

// Propose asks the neuron for its answer to prompt. The confidence the
// neuron reports is passed through unclamped; clamping happens when the
// proposal becomes a message.
func (c *Client) Propose(ctx context.Context, prompt, neuronID string) (Proposal, error) {
	resp, err := c.client.Propose(ctx, &pb.ProposeRequest{
		Prompt:   prompt,
		NeuronId: neuronID,
	})
	if err != nil {
		return Proposal{}, fmt.Errorf("propose rpc: %w", err)
	}
	return Proposal{
		Content:    resp.Content,
		Confidence: resp.Confidence,
	}, nil
}

// #endregion propose

// #region message

// ToMessage converts a proposal to a consensus message stamped now.
func (p Proposal) ToMessage(source string) (message.Message, error) {
	return message.New(source, p.Content, p.Confidence)
}

// #endregion message
