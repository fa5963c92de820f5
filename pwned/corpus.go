package pwned

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// CorpusChecker checks passwords against a local, in-memory set of SHA-1
// digests.  It is an offline alternative to [RangeChecker] for deployments
// that cannot reach the public corpus, or for small deny-lists of
// organisation-specific banned passwords.
//
// Lookups never fail, so no failure [Policy] applies.
//
// # Thread safety
//
// CorpusChecker is immutable after construction and safe for concurrent use.
type CorpusChecker struct {
	digests map[string]struct{}
}

// NewCorpusChecker loads a corpus from r: one SHA-1 hex digest per line,
// case-insensitive, blank lines and '#' comment lines skipped.  A line that
// is not a 40-character hex digest aborts loading with
// [ErrCorpusMalformed].
func NewCorpusChecker(r io.Reader) (*CorpusChecker, error) {
	digests := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !isSHA1Hex(line) {
			return nil, fmt.Errorf("%w: line %d: %q", ErrCorpusMalformed, lineNo, line)
		}
		digests[strings.ToUpper(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pwned: reading corpus: %w", err)
	}
	return &CorpusChecker{digests: digests}, nil
}

// NewCorpusCheckerFromPasswords builds a corpus directly from plaintext
// passwords — convenient for small, hand-maintained deny-lists.
func NewCorpusCheckerFromPasswords(passwords []string) *CorpusChecker {
	digests := make(map[string]struct{}, len(passwords))
	for _, p := range passwords {
		digests[sha1Hex(p)] = struct{}{}
	}
	return &CorpusChecker{digests: digests}
}

// Len returns the number of digests in the corpus.
func (c *CorpusChecker) Len() int { return len(c.digests) }

// Check reports whether password's SHA-1 digest is in the corpus.
// The error is always nil; it exists to satisfy [Checker].
func (c *CorpusChecker) Check(_ context.Context, password string) (Result, error) {
	if _, ok := c.digests[sha1Hex(password)]; ok {
		return Result{Compromised: true, Count: 1}, nil
	}
	return Result{}, nil
}

// isSHA1Hex reports whether s is exactly 40 hex characters.
func isSHA1Hex(s string) bool {
	if len(s) != 40 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
