package balance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

const DefaultTimeout = 10 * time.Second

// Client answers a single balance query against one RPC endpoint. The
// endpoint URL, commitment level and per-request timeout are fixed at
// construction; the client holds no other state and is safe for concurrent
// use.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
}

// NewClient builds a client for the given endpoint. Commitment defaults to
// finalized and timeout to DefaultTimeout when zero values are passed.
func NewClient(endpoint string, commitment rpc.CommitmentType, timeout time.Duration) *Client {
	if commitment == "" {
		commitment = rpc.CommitmentFinalized
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		rpc:        rpc.New(endpoint),
		commitment: commitment,
		timeout:    timeout,
	}
}

// Fetch queries the balance of one wallet. It always returns a Result; every
// failure mode is captured in Result.Err rather than aborting the caller.
// Exactly one RPC call is issued per invocation, and none at all when the
// address does not parse.
func (c *Client) Fetch(ctx context.Context, address string) Result {
	address = strings.TrimSpace(address)
	if address == "" {
		return failure(address, KindAddress, "empty wallet address")
	}

	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return failure(address, KindAddress, fmt.Sprintf("invalid wallet address %q: %v", address, err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.rpc.GetBalance(ctx, pubKey, c.commitment)
	if err != nil {
		return Result{Address: address, Err: classify(err)}
	}

	return Result{Address: address, Lamports: out.Value}
}

// classify maps an RPC client error onto the failure taxonomy. The solana-go
// client surfaces JSON-RPC error objects as *jsonrpc.RPCError and non-2xx
// statuses as *jsonrpc.HTTPError; anything else is either a decode failure
// or the transport itself.
func classify(err error) *Error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return &Error{Kind: KindProtocol, Reason: fmt.Sprintf("rpc error %d: %s", rpcErr.Code, rpcErr.Message)}
	}

	var httpErr *jsonrpc.HTTPError
	if errors.As(err, &httpErr) {
		return &Error{Kind: KindProtocol, Reason: err.Error()}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		strings.Contains(err.Error(), "could not decode") {
		return &Error{Kind: KindParse, Reason: err.Error()}
	}

	return &Error{Kind: KindTransport, Reason: err.Error()}
}
