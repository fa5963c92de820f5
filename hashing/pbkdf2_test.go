package hashing_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/hasbyte1/go-password-encoding/hashing"
)

// fastPBKDF2Opts returns minimal PBKDF2 parameters for unit tests.
func fastPBKDF2Opts() hashing.PBKDF2Options {
	return hashing.PBKDF2Options{Iterations: 1000, KeyLen: 32, SaltLen: 8}
}

func newTestPBKDF2Hasher(t *testing.T) *hashing.PBKDF2Hasher {
	t.Helper()
	h, err := hashing.NewPBKDF2Hasher(fastPBKDF2Opts())
	if err != nil {
		t.Fatalf("NewPBKDF2Hasher: %v", err)
	}
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructor validation
// ──────────────────────────────────────────────────────────────────────────────

func TestNewPBKDF2Hasher_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts hashing.PBKDF2Options
	}{
		{"iterations<1000", hashing.PBKDF2Options{Iterations: 999, KeyLen: 32, SaltLen: 16}},
		{"key_len<16", hashing.PBKDF2Options{Iterations: 1000, KeyLen: 15, SaltLen: 16}},
		{"salt_len<8", hashing.PBKDF2Options{Iterations: 1000, KeyLen: 32, SaltLen: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hashing.NewPBKDF2Hasher(tt.opts)
			if !errors.Is(err, hashing.ErrInvalidOption) {
				t.Errorf("expected ErrInvalidOption, got %v", err)
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Encode / Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestPBKDF2Hasher_Encode_HexFormat(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	hash, err := h.Encode("password")
	if err != nil {
		t.Fatal(err)
	}
	// 8-byte salt + 32-byte key = 40 bytes = 80 hex characters.
	if len(hash) != 80 {
		t.Errorf("payload length = %d, want 80", len(hash))
	}
	if _, err := hex.DecodeString(hash); err != nil {
		t.Errorf("payload is not hex: %v", err)
	}
}

func TestPBKDF2Hasher_Encode_UniqueHashes(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	h1, _ := h.Encode("same")
	h2, _ := h.Encode("same")
	if h1 == h2 {
		t.Error("two Encode calls must produce different hashes (different salts)")
	}
}

func TestPBKDF2Hasher_Verify_CorrectPassword(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	hash, _ := h.Encode("secret")
	ok, err := h.Verify("secret", hash)
	if err != nil || !ok {
		t.Fatalf("Verify correct password: ok=%v err=%v", ok, err)
	}
}

func TestPBKDF2Hasher_Verify_WrongPassword(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	hash, _ := h.Encode("correct")
	ok, err := h.Verify("wrong", hash)
	if err != nil || ok {
		t.Fatalf("Verify wrong password: ok=%v err=%v", ok, err)
	}
}

func TestPBKDF2Hasher_Verify_NotHex(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	_, err := h.Verify("pw", "zz-not-hex")
	if !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

func TestPBKDF2Hasher_Verify_TooShort(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	_, err := h.Verify("pw", "abcd")
	if !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

// TestPBKDF2Hasher_Verify_DifferentIterations documents the bare-hex format
// limitation: the iteration count is not embedded, so a hasher with a
// different count cannot verify the hash.  Retuned counts roll out under a
// new storage identifier instead.
func TestPBKDF2Hasher_Verify_DifferentIterations(t *testing.T) {
	optsA := fastPBKDF2Opts()
	optsB := fastPBKDF2Opts()
	optsB.Iterations *= 2

	hA, _ := hashing.NewPBKDF2Hasher(optsA)
	hB, _ := hashing.NewPBKDF2Hasher(optsB)

	hash, _ := hA.Encode("hello")
	ok, err := hB.Verify("hello", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("hasher with a different iteration count must not verify the hash")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Info / Algorithm
// ──────────────────────────────────────────────────────────────────────────────

func TestPBKDF2Hasher_NeedsRehash_OwnHash(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	hash, _ := h.Encode("pw")
	needs, err := h.NeedsRehash(hash)
	if err != nil || needs {
		t.Errorf("NeedsRehash own hash: needs=%v err=%v", needs, err)
	}
}

func TestPBKDF2Hasher_NeedsRehash_InvalidHash(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	_, err := h.NeedsRehash("zz")
	if !errors.Is(err, hashing.ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
}

func TestPBKDF2Hasher_Info(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	hash, _ := h.Encode("pw")
	info, err := h.Info(hash)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Algorithm != hashing.AlgorithmPBKDF2 {
		t.Errorf("Algorithm = %q, want %q", info.Algorithm, hashing.AlgorithmPBKDF2)
	}
	if got := info.Params["salt_len"].(int); got != 8 {
		t.Errorf("salt_len = %d, want 8", got)
	}
	if got := info.Params["key_len"].(int); got != 32 {
		t.Errorf("key_len = %d, want 32", got)
	}
}

func TestPBKDF2Hasher_Algorithm(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	if h.Algorithm() != hashing.AlgorithmPBKDF2 {
		t.Errorf("got %q, want %q", h.Algorithm(), hashing.AlgorithmPBKDF2)
	}
}

func TestPBKDF2Hasher_SatisfiesHasherInterface(t *testing.T) {
	h := newTestPBKDF2Hasher(t)
	var _ hashing.Hasher = h
}
