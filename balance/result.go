package balance

import "fmt"

// ErrorKind tells which stage of a balance query failed.
type ErrorKind string

const (
	// KindAddress: the wallet string is not a valid base58 public key.
	// No network call is made for these.
	KindAddress ErrorKind = "address"
	// KindTransport: the endpoint could not be reached (DNS, refused
	// connection, timeout).
	KindTransport ErrorKind = "transport"
	// KindProtocol: the endpoint answered with a JSON-RPC error object or a
	// non-success HTTP status.
	KindProtocol ErrorKind = "protocol"
	// KindParse: the response body could not be decoded.
	KindParse ErrorKind = "parse"
)

// Error is a per-wallet fetch failure.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Reason)
}

// Result is the outcome of one balance query. Err is nil on success, in
// which case Lamports holds the account balance in the smallest unit.
type Result struct {
	Address  string
	Lamports uint64
	Err      *Error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

func failure(address string, kind ErrorKind, reason string) Result {
	return Result{Address: address, Err: &Error{Kind: kind, Reason: reason}}
}
