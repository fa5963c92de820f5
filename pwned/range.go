package pwned

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultRangeBaseURL is the public Pwned Passwords range endpoint.
	DefaultRangeBaseURL = "https://api.pwnedpasswords.com/range"

	// DefaultRangeTimeout bounds a single range lookup.  The check is
	// advisory, so it should never hold a login for long.
	DefaultRangeTimeout = 3 * time.Second

	// rangePrefixLen is the number of leading SHA-1 hex characters sent to
	// the server under the k-anonymity protocol.
	rangePrefixLen = 5
)

// RangeOptions configures a [RangeChecker].
type RangeOptions struct {
	// BaseURL is the range endpoint, without a trailing slash.
	// Default: [DefaultRangeBaseURL].
	BaseURL string

	// Timeout bounds each lookup.  Default: [DefaultRangeTimeout].
	Timeout time.Duration

	// Policy decides the behaviour on lookup failure.
	// Default: [PolicyFailOpen].
	Policy Policy

	// Logger receives the fail-open warning.  The zero value is a no-op
	// logger.
	Logger zerolog.Logger

	// UserAgent is sent with every request; the public endpoint requires
	// one.  Default: "go-password-encoding".
	UserAgent string

	// AddPadding asks the server to pad responses with fake entries so
	// response size does not leak the queried prefix.
	AddPadding bool
}

// DefaultRangeOptions returns RangeOptions with the documented defaults.
func DefaultRangeOptions() RangeOptions {
	return RangeOptions{
		BaseURL:   DefaultRangeBaseURL,
		Timeout:   DefaultRangeTimeout,
		Policy:    PolicyFailOpen,
		UserAgent: "go-password-encoding",
	}
}

// RangeChecker looks passwords up in a breach corpus over the k-anonymity
// range protocol: only the first five hex characters of the password's
// SHA-1 digest are transmitted, and the matching suffix is searched for in
// the returned candidate list.  Neither the password nor its full digest
// ever leaves the process.
//
// This is the only network-bound component of the module; it carries its
// own timeout and failure [Policy].
//
// # Thread safety
//
// RangeChecker is immutable after construction and safe for concurrent use.
type RangeChecker struct {
	client    *http.Client
	baseURL   string
	policy    Policy
	log       zerolog.Logger
	userAgent string
	padding   bool
}

// NewRangeChecker constructs a RangeChecker.  Zero-valued fields of opts
// take the [DefaultRangeOptions] values.
func NewRangeChecker(opts RangeOptions) *RangeChecker {
	def := DefaultRangeOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = def.BaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	return &RangeChecker{
		client:    &http.Client{Timeout: opts.Timeout},
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		policy:    opts.Policy,
		log:       opts.Logger,
		userAgent: opts.UserAgent,
		padding:   opts.AddPadding,
	}
}

// Policy returns the configured failure policy.
func (c *RangeChecker) Policy() Policy { return c.policy }

// Check reports whether password appears in the breach corpus.
//
// On lookup failure the configured [Policy] applies: fail-open returns a
// not-compromised [Result] and logs a warning; fail-closed returns an error
// wrapping [ErrLookupFailed].
func (c *RangeChecker) Check(ctx context.Context, password string) (Result, error) {
	digest := sha1Hex(password)
	prefix, suffix := digest[:rangePrefixLen], digest[rangePrefixLen:]

	count, err := c.queryRange(ctx, prefix, suffix)
	if err != nil {
		if c.policy == PolicyFailClosed {
			return Result{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
		}
		c.log.Warn().
			Err(err).
			Str("policy", c.policy.String()).
			Msg("breach-corpus lookup failed; treating password as not compromised")
		return Result{}, nil
	}
	return Result{Compromised: count > 0, Count: count}, nil
}

// queryRange fetches the candidate list for prefix and returns the breach
// count for suffix, or 0 when absent.
func (c *RangeChecker) queryRange(ctx context.Context, prefix, suffix string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+prefix, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.padding {
		req.Header.Set("Add-Padding", "true")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	// Response body: one "SUFFIX:COUNT" pair per line, suffixes uppercase.
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		cand, countStr, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if !strings.EqualFold(cand, suffix) {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return 0, fmt.Errorf("malformed count in range response: %q", line)
		}
		// Padding entries are reported with count 0; they are not hits.
		return count, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, nil
}

// sha1Hex returns the uppercase SHA-1 hex digest of s.
func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
