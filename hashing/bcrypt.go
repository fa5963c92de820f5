package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the bcrypt work factor (logarithmic).
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	Cost int
}

// BcryptHasher hashes passwords using the bcrypt algorithm.
//
// Bcrypt internally generates and stores a 128-bit (16-byte) random salt,
// so callers never need to manage salts explicitly.
//
// # When to use bcrypt vs Argon2id
//
// Bcrypt is the battle-tested choice with the widest ecosystem support.
// Prefer [Argon2idHasher] for new systems — it allows tuning of memory cost,
// which makes GPU/ASIC attacks significantly more expensive.
//
// # Thread safety
//
// BcryptHasher is immutable after construction and safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a BcryptHasher with the provided options.
// Use [BcryptPreset] with [PresetLatest] for the recommended configuration.
// Returns [ErrInvalidOption] if Cost is outside [bcrypt.MinCost, bcrypt.MaxCost].
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: opts.Cost}, nil
}

// Algorithm returns [AlgorithmBcrypt].
func (h *BcryptHasher) Algorithm() Algorithm { return AlgorithmBcrypt }

// Cost returns the configured bcrypt work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Encode hashes password with bcrypt and returns the Modular Crypt Format
// string (e.g., "$2b$12$...").  A fresh 128-bit random salt is generated
// internally for every call.
//
// Security note: bcrypt truncates passwords longer than 72 bytes.  If you
// need to hash longer passwords, use an Argon2 backend instead.
func (h *BcryptHasher) Encode(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the bcrypt-encoded hash.
// Returns (false, nil) on mismatch — never ErrMismatchedHashAndPassword —
// and wraps [ErrInvalidHash] when the hash has a bcrypt prefix but fails
// bcrypt's own parser.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	if !h.looksLikeBcrypt(hash) {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		// Anything else is a parse failure: truncated hash, bad cost field,
		// unknown version.
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return true, nil
}

// NeedsRehash returns true if the work factor encoded in hash differs from
// the hasher's configured cost.  A lower stored cost means the hash is less
// secure than the current configuration; a higher stored cost means the
// configuration was intentionally dialled back (rare but handled).
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	if !h.looksLikeBcrypt(hash) {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost != h.cost, nil
}

// Info extracts the work factor from a bcrypt hash string.
//
// Returned [HashInfo].Params:
//   - "cost" → int
func (h *BcryptHasher) Info(hash string) (HashInfo, error) {
	if !h.looksLikeBcrypt(hash) {
		return HashInfo{}, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return HashInfo{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return HashInfo{
		Algorithm: AlgorithmBcrypt,
		Params:    map[string]any{"cost": cost},
	}, nil
}

// looksLikeBcrypt returns true if hash has a recognised bcrypt prefix.
func (h *BcryptHasher) looksLikeBcrypt(hash string) bool {
	a, ok := DetectAlgorithm(hash)
	return ok && a == AlgorithmBcrypt
}
