package hashing

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2Options configures a [PBKDF2Hasher].
//
// Unlike the PHC-formatted backends, the PBKDF2 payload is a bare hex string
// of salt‖key and carries no parameters.  The iteration count and key length
// therefore come from the hasher's configuration at verify time: a hasher
// can only verify hashes produced with its own Iterations and KeyLen.  To
// retune, register the new configuration under a fresh identifier (or a new
// preset version) and keep the old one registered for existing hashes.
type PBKDF2Options struct {
	// Iterations is the PBKDF2 iteration count.
	// Minimum: 1000.
	Iterations int

	// KeyLen is the length of the derived key in bytes.
	// Minimum: 16.
	KeyLen int

	// SaltLen is the length of the random salt in bytes.
	// Minimum: 8.
	SaltLen int
}

func validatePBKDF2Options(opts PBKDF2Options) error {
	if opts.Iterations < 1000 {
		return fmt.Errorf("%w: pbkdf2 iterations must be ≥ 1000, got %d",
			ErrInvalidOption, opts.Iterations)
	}
	if opts.KeyLen < 16 {
		return fmt.Errorf("%w: pbkdf2 key_len must be ≥ 16, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return fmt.Errorf("%w: pbkdf2 salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// PBKDF2Hasher hashes passwords using PBKDF2 with HMAC-SHA256.
//
// Output format: hex(salt ‖ derived-key), e.g.
//
//	5d923b44a6d129f3ddf3e3c8d29412723dcbde72445e8ef6bf3b508fbf17fa4ed4d6b99ca763d8dc
//
// The salt occupies the first SaltLen bytes and is extracted from the
// payload on verify; the iteration count comes from the hasher's
// configuration (see [PBKDF2Options]).
//
// # Thread safety
//
// PBKDF2Hasher is immutable after construction and safe for concurrent use.
type PBKDF2Hasher struct {
	opts PBKDF2Options
}

// NewPBKDF2Hasher constructs a PBKDF2Hasher with the given options.
// Use [PBKDF2Preset] with [PresetLatest] for the recommended configuration.
func NewPBKDF2Hasher(opts PBKDF2Options) (*PBKDF2Hasher, error) {
	if err := validatePBKDF2Options(opts); err != nil {
		return nil, err
	}
	return &PBKDF2Hasher{opts: opts}, nil
}

// Algorithm returns [AlgorithmPBKDF2].
func (h *PBKDF2Hasher) Algorithm() Algorithm { return AlgorithmPBKDF2 }

// Options returns the current PBKDF2 parameter set.
func (h *PBKDF2Hasher) Options() PBKDF2Options { return h.opts }

// Encode hashes password with PBKDF2-HMAC-SHA256 and returns
// hex(salt ‖ key).  A fresh random salt of the configured length is
// generated for each call.
func (h *PBKDF2Hasher) Encode(password string) (string, error) {
	salt, err := randomSalt(uint32(h.opts.SaltLen))
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, h.opts.Iterations, h.opts.KeyLen, sha256.New)
	return hex.EncodeToString(salt) + hex.EncodeToString(key), nil
}

// Verify reports whether password matches the hex(salt ‖ key) hash.  The
// salt is extracted from the payload; the iteration count and key length
// must match the hasher's configuration.
func (h *PBKDF2Hasher) Verify(password, hash string) (bool, error) {
	salt, expected, err := h.split(hash)
	if err != nil {
		return false, err
	}
	computed := pbkdf2.Key([]byte(password), salt, h.opts.Iterations, h.opts.KeyLen, sha256.New)
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// NeedsRehash returns true if the payload's key length differs from the
// hasher's configuration.  A changed iteration count is not observable in
// the payload; retuned iteration counts should be rolled out under a new
// storage identifier instead (see [PBKDF2Options]).
func (h *PBKDF2Hasher) NeedsRehash(hash string) (bool, error) {
	_, expected, err := h.split(hash)
	if err != nil {
		return false, err
	}
	return len(expected) != h.opts.KeyLen, nil
}

// Info reports the observable structure of the payload.
//
// Returned [HashInfo].Params:
//   - "salt_len" → int
//   - "key_len"  → int
func (h *PBKDF2Hasher) Info(hash string) (HashInfo, error) {
	salt, expected, err := h.split(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm: AlgorithmPBKDF2,
		Params: map[string]any{
			"salt_len": len(salt),
			"key_len":  len(expected),
		},
	}, nil
}

// split hex-decodes the payload and separates salt from derived key.
func (h *PBKDF2Hasher) split(hash string) (salt, key []byte, err error) {
	raw, err := hex.DecodeString(hash)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: pbkdf2 payload is not hex: %v", ErrInvalidHash, err)
	}
	if len(raw) <= h.opts.SaltLen {
		return nil, nil, fmt.Errorf("%w: pbkdf2 payload too short (%d bytes)", ErrInvalidHash, len(raw))
	}
	return raw[:h.opts.SaltLen], raw[h.opts.SaltLen:], nil
}
