// Package pwned provides breach-corpus password checking as a post-match
// advisory step for the delegating credential encoder.
//
// # Components
//
// [RangeChecker] queries a Pwned-Passwords-compatible endpoint over the
// k-anonymity range protocol: only the first five hex characters of the
// password's SHA-1 digest are sent, so neither the password nor its full
// digest leaves the process.  [CorpusChecker] is the offline equivalent
// backed by a local set of SHA-1 digests.  [Verifier] glues either checker
// to a password [Matcher] (such as *delegating.Encoder) so the corpus is
// consulted only after a successful match.
//
// # Quick start
//
//	checker := pwned.NewRangeChecker(pwned.DefaultRangeOptions())
//	v, err := pwned.NewVerifier(enc, checker) // enc: *delegating.Encoder
//	if err != nil { log.Fatal(err) }
//
//	verdict, err := v.Verify(ctx, password, stored)
//	switch {
//	case err != nil:
//	    // operational failure (unmapped identifier, fail-closed lookup)
//	case !verdict.Matched:
//	    // wrong password
//	case verdict.Compromised:
//	    // correct password, but it is in a breach corpus: accept the
//	    // login and redirect to a password-reset flow
//	}
//
// # Failure policy
//
// A compromised-password check must never silently decide between blocking
// and allowing logins when the corpus is unreachable — that is a deployment
// decision.  [Policy] makes it explicit: [PolicyFailOpen] (the default)
// treats a failed lookup as not-compromised and logs a warning, keeping
// authentication available through a third-party outage; [PolicyFailClosed]
// surfaces [ErrLookupFailed] and lets the caller block.
package pwned
