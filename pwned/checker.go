package pwned

import "context"

// Result is the outcome of a breach-corpus lookup.
type Result struct {
	// Compromised reports whether the password appeared in the corpus.
	Compromised bool

	// Count is the number of times the password was observed in breaches,
	// when the corpus reports one (the range API does; a local corpus
	// reports 1 per hit).
	Count int
}

// Checker consults a breach corpus for a plaintext password.
//
// Checking is a post-match advisory step: run it only after the password
// has already verified against its stored hash, and treat a compromised
// result as a "please rotate" signal, never as an authentication failure.
type Checker interface {
	// Check reports whether password appears in the breach corpus.
	// Implementations backed by the network honour ctx for cancellation
	// and apply their configured failure [Policy] on lookup errors.
	Check(ctx context.Context, password string) (Result, error)
}

// Policy decides how a [Checker] behaves when the corpus lookup itself
// fails (network error, timeout, unexpected response).
type Policy int

const (
	// PolicyFailOpen treats a failed lookup as not-compromised and logs a
	// warning.  This is the default: a third-party outage must not take
	// authentication down with it.
	PolicyFailOpen Policy = iota

	// PolicyFailClosed propagates a failed lookup as [ErrLookupFailed],
	// letting the caller decide whether to block the flow.  Choose this
	// only where a missed compromised-password signal is worse than
	// coupling login availability to the corpus service.
	PolicyFailClosed
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyFailOpen:
		return "fail-open"
	case PolicyFailClosed:
		return "fail-closed"
	default:
		return "unknown"
	}
}
