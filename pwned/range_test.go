package pwned_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-password-encoding/pwned"
)

// SHA-1("password") = 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8; the range
// protocol sends the first five characters and matches on the remainder.
const (
	passwordPrefix = "5BAA6"
	passwordSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"
)

// newRangeServer serves a canned range response and records the last request.
func newRangeServer(t *testing.T, body string, lastReq **http.Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastReq != nil {
			*lastReq = r
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookup
// ──────────────────────────────────────────────────────────────────────────────

func TestRangeChecker_Check_Compromised(t *testing.T) {
	var lastReq *http.Request
	body := "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n" +
		passwordSuffix + ":3861493\r\n" +
		"011053FD0102E94D6AE2F8B83D76FAF94F6:1\r\n"
	srv := newRangeServer(t, body, &lastReq)

	c := pwned.NewRangeChecker(pwned.RangeOptions{BaseURL: srv.URL})
	res, err := c.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Compromised {
		t.Error("expected compromised")
	}
	if res.Count != 3861493 {
		t.Errorf("Count = %d, want 3861493", res.Count)
	}

	// Only the five-character prefix may leave the process.
	if got := lastReq.URL.Path; got != "/"+passwordPrefix {
		t.Errorf("request path = %q, want /%s", got, passwordPrefix)
	}
	if strings.Contains(lastReq.URL.String(), passwordSuffix) {
		t.Error("full digest leaked in request URL")
	}
}

func TestRangeChecker_Check_NotCompromised(t *testing.T) {
	srv := newRangeServer(t, "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n", nil)
	c := pwned.NewRangeChecker(pwned.RangeOptions{BaseURL: srv.URL})
	res, err := c.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Compromised || res.Count != 0 {
		t.Errorf("Result = %+v, want clean", res)
	}
}

func TestRangeChecker_Check_SuffixCaseInsensitive(t *testing.T) {
	srv := newRangeServer(t, strings.ToLower(passwordSuffix)+":7\r\n", nil)
	c := pwned.NewRangeChecker(pwned.RangeOptions{BaseURL: srv.URL})
	res, err := c.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Compromised || res.Count != 7 {
		t.Errorf("Result = %+v, want compromised count 7", res)
	}
}

// TestRangeChecker_Check_PaddingEntryIsNotAHit pins the padded-response
// contract: the server reports fake entries with count 0.
func TestRangeChecker_Check_PaddingEntryIsNotAHit(t *testing.T) {
	srv := newRangeServer(t, passwordSuffix+":0\r\n", nil)
	c := pwned.NewRangeChecker(pwned.RangeOptions{BaseURL: srv.URL})
	res, err := c.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Compromised {
		t.Error("count-0 padding entry must not be a hit")
	}
}

func TestRangeChecker_RequestHeaders(t *testing.T) {
	var lastReq *http.Request
	srv := newRangeServer(t, "", &lastReq)
	c := pwned.NewRangeChecker(pwned.RangeOptions{
		BaseURL:    srv.URL,
		UserAgent:  "test-agent",
		AddPadding: true,
	})
	if _, err := c.Check(context.Background(), "password"); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got := lastReq.Header.Get("User-Agent"); got != "test-agent" {
		t.Errorf("User-Agent = %q", got)
	}
	if got := lastReq.Header.Get("Add-Padding"); got != "true" {
		t.Errorf("Add-Padding = %q", got)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Failure policy
// ──────────────────────────────────────────────────────────────────────────────

func TestRangeChecker_FailOpen_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	c := pwned.NewRangeChecker(pwned.RangeOptions{
		BaseURL: srv.URL,
		Policy:  pwned.PolicyFailOpen,
		Logger:  zerolog.New(&buf),
	})
	res, err := c.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("fail-open must not surface the error, got %v", err)
	}
	if res.Compromised {
		t.Error("fail-open must report not compromised")
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warn entry, got %q", buf.String())
	}
}

func TestRangeChecker_FailClosed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := pwned.NewRangeChecker(pwned.RangeOptions{
		BaseURL: srv.URL,
		Policy:  pwned.PolicyFailClosed,
	})
	_, err := c.Check(context.Background(), "password")
	if !errors.Is(err, pwned.ErrLookupFailed) {
		t.Errorf("expected ErrLookupFailed, got %v", err)
	}
}

func TestRangeChecker_FailClosed_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := pwned.NewRangeChecker(pwned.RangeOptions{
		BaseURL: srv.URL,
		Policy:  pwned.PolicyFailClosed,
	})
	_, err := c.Check(context.Background(), "password")
	if !errors.Is(err, pwned.ErrLookupFailed) {
		t.Errorf("expected ErrLookupFailed, got %v", err)
	}
}

func TestRangeChecker_FailClosed_MalformedCount(t *testing.T) {
	srv := newRangeServer(t, passwordSuffix+":not-a-number\r\n", nil)
	c := pwned.NewRangeChecker(pwned.RangeOptions{
		BaseURL: srv.URL,
		Policy:  pwned.PolicyFailClosed,
	})
	_, err := c.Check(context.Background(), "password")
	if !errors.Is(err, pwned.ErrLookupFailed) {
		t.Errorf("expected ErrLookupFailed, got %v", err)
	}
}

func TestRangeChecker_FailClosed_ContextCancelled(t *testing.T) {
	srv := newRangeServer(t, "", nil)
	c := pwned.NewRangeChecker(pwned.RangeOptions{
		BaseURL: srv.URL,
		Policy:  pwned.PolicyFailClosed,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Check(ctx, "password")
	if !errors.Is(err, pwned.ErrLookupFailed) {
		t.Errorf("expected ErrLookupFailed, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Defaults
// ──────────────────────────────────────────────────────────────────────────────

func TestNewRangeChecker_Defaults(t *testing.T) {
	c := pwned.NewRangeChecker(pwned.RangeOptions{})
	if c.Policy() != pwned.PolicyFailOpen {
		t.Errorf("default policy = %v, want fail-open", c.Policy())
	}
}

func TestPolicy_String(t *testing.T) {
	if got := pwned.PolicyFailOpen.String(); got != "fail-open" {
		t.Errorf("PolicyFailOpen.String() = %q", got)
	}
	if got := pwned.PolicyFailClosed.String(); got != "fail-closed" {
		t.Errorf("PolicyFailClosed.String() = %q", got)
	}
}
