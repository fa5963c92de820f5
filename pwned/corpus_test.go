package pwned_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/go-password-encoding/pwned"
)

const corpusFixture = `# organisation deny-list, one SHA-1 per line
5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8

# lowercase is accepted too
7c4a8d09ca3762af61e59520943dc26494f8941b
`

func TestNewCorpusChecker_Load(t *testing.T) {
	c, err := pwned.NewCorpusChecker(strings.NewReader(corpusFixture))
	if err != nil {
		t.Fatalf("NewCorpusChecker: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCorpusChecker_Check(t *testing.T) {
	c, err := pwned.NewCorpusChecker(strings.NewReader(corpusFixture))
	if err != nil {
		t.Fatal(err)
	}

	// "password" and "123456" are in the fixture; "s3cure-enough" is not.
	res, err := c.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Compromised || res.Count != 1 {
		t.Errorf("password: %+v, want compromised count 1", res)
	}

	res, _ = c.Check(context.Background(), "123456")
	if !res.Compromised {
		t.Error("123456 should hit the lowercase fixture line")
	}

	res, _ = c.Check(context.Background(), "s3cure-enough")
	if res.Compromised {
		t.Error("unlisted password reported compromised")
	}
}

func TestNewCorpusChecker_MalformedLine(t *testing.T) {
	inputs := []string{
		"not-a-digest",
		"5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD",   // 39 chars
		"5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8A", // 41 chars
		"ZBAA61E4C9B93F3F0682250B6CF8331B7EE68FD8",  // non-hex
	}
	for _, in := range inputs {
		_, err := pwned.NewCorpusChecker(strings.NewReader(in + "\n"))
		if !errors.Is(err, pwned.ErrCorpusMalformed) {
			t.Errorf("%q: expected ErrCorpusMalformed, got %v", in, err)
		}
	}
}

func TestNewCorpusChecker_Empty(t *testing.T) {
	c, err := pwned.NewCorpusChecker(strings.NewReader(""))
	if err != nil {
		t.Fatalf("NewCorpusChecker: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	res, err := c.Check(context.Background(), "anything")
	if err != nil || res.Compromised {
		t.Errorf("empty corpus: %+v, %v", res, err)
	}
}

func TestNewCorpusCheckerFromPasswords(t *testing.T) {
	c := pwned.NewCorpusCheckerFromPasswords([]string{"hunter2", "letmein"})
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	res, err := c.Check(context.Background(), "hunter2")
	if err != nil || !res.Compromised {
		t.Errorf("hunter2: %+v, %v", res, err)
	}
	res, err = c.Check(context.Background(), "Hunter2")
	if err != nil || res.Compromised {
		t.Errorf("case must matter for plaintext deny-lists: %+v, %v", res, err)
	}
}
