package pwned

import "errors"

// Sentinel errors returned by breach-corpus lookups.
var (
	// ErrLookupFailed is returned under [PolicyFailClosed] when the corpus
	// lookup itself fails (network error, timeout, unexpected status).
	// It is an operational error about the lookup, never a statement about
	// the password.
	ErrLookupFailed = errors.New("pwned: breach-corpus lookup failed")

	// ErrCorpusMalformed is returned when loading a local corpus from a
	// reader encounters a line that is not a SHA-1 hex digest.
	ErrCorpusMalformed = errors.New("pwned: malformed corpus line")
)
