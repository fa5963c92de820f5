package pwned

import (
	"context"
	"errors"
	"fmt"
)

// Matcher verifies a plaintext password against a stored credential.
// *delegating.Encoder satisfies it.
type Matcher interface {
	Matches(password, stored string) (bool, error)
}

// Verdict is the combined outcome of password verification plus the
// post-match breach check.
//
// Compromised is a distinct advisory condition, never an authentication
// failure: when Matched is true and Compromised is true, the caller should
// let the login proceed and route the user to a password-reset flow.
type Verdict struct {
	// Matched reports whether the password verified against the stored
	// credential.
	Matched bool

	// Compromised reports whether the (matched) password appears in the
	// breach corpus.  Always false when Matched is false — the corpus is
	// only consulted after a successful match.
	Compromised bool

	// Count is the corpus observation count when Compromised is true.
	Count int
}

// Verifier composes a [Matcher] with a [Checker]: verify first, then — only
// on a successful match — consult the breach corpus.
//
// # Thread safety
//
// Verifier is immutable after construction and safe for concurrent use.
type Verifier struct {
	matcher Matcher
	checker Checker
}

// NewVerifier constructs a Verifier.  Both arguments are required; wiring a
// Verifier without a checker is pointless — use the Matcher directly.
func NewVerifier(m Matcher, c Checker) (*Verifier, error) {
	if m == nil {
		return nil, errors.New("pwned: matcher must not be nil")
	}
	if c == nil {
		return nil, errors.New("pwned: checker must not be nil")
	}
	return &Verifier{matcher: m, checker: c}, nil
}

// Verify checks password against stored and, on a successful match,
// consults the breach corpus.
//
// Errors from the Matcher (including delegating.ErrUnmappedIdentifier)
// propagate unchanged.  Errors from the Checker surface only under
// [PolicyFailClosed]; the match result is preserved in the Verdict either
// way, so a caller that chooses to tolerate a failed lookup can still
// accept the login.
func (v *Verifier) Verify(ctx context.Context, password, stored string) (Verdict, error) {
	ok, err := v.matcher.Matches(password, stored)
	if err != nil {
		return Verdict{}, err
	}
	if !ok {
		return Verdict{}, nil
	}

	res, err := v.checker.Check(ctx, password)
	if err != nil {
		return Verdict{Matched: true}, fmt.Errorf("pwned: post-match check: %w", err)
	}
	return Verdict{
		Matched:     true,
		Compromised: res.Compromised,
		Count:       res.Count,
	}, nil
}
