package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
)

// DigestOptions configures a [DigestHasher].
type DigestOptions struct {
	// SaltLen is the length of the random salt in bytes.  Zero disables
	// salting entirely (matching the oldest unsalted deployments); any
	// other value must be ≥ 4.
	SaltLen int
}

// DigestHasher hashes passwords with a plain, fast message digest
// (MD5, SHA-1, or SHA-256), optionally salted.
//
// Deprecated: fast digests provide no resistance to offline brute-force
// attacks and must never be selected for new encodings.  DigestHasher
// exists solely so that hashes already in production remain verifiable —
// once any stored credential references a digest algorithm, that backend
// must stay registered indefinitely.  Pair it with rehash-on-login (see the
// delegating package) to migrate users to an adaptive backend.
//
// Output format:
//   - unsalted (SaltLen = 0): hex(digest(password))
//   - salted:                 hex(salt ‖ digest(salt ‖ password))
//
// # Thread safety
//
// DigestHasher is immutable after construction and safe for concurrent use.
type DigestHasher struct {
	alg     Algorithm
	newHash func() hash.Hash
	saltLen int
}

// NewDigestHasher constructs a DigestHasher for one of [AlgorithmMD5],
// [AlgorithmSHA1], or [AlgorithmSHA256].  Returns [ErrInvalidOption] for
// any other algorithm or an out-of-range salt length.
func NewDigestHasher(alg Algorithm, opts DigestOptions) (*DigestHasher, error) {
	var factory func() hash.Hash
	switch alg {
	case AlgorithmMD5:
		factory = md5.New
	case AlgorithmSHA1:
		factory = sha1.New
	case AlgorithmSHA256:
		factory = sha256.New
	default:
		return nil, fmt.Errorf("%w: %q is not a digest algorithm", ErrInvalidOption, alg)
	}
	if opts.SaltLen != 0 && opts.SaltLen < 4 {
		return nil, fmt.Errorf("%w: digest salt_len must be 0 or ≥ 4, got %d",
			ErrInvalidOption, opts.SaltLen)
	}
	return &DigestHasher{alg: alg, newHash: factory, saltLen: opts.SaltLen}, nil
}

// Algorithm returns the digest algorithm this hasher was constructed with.
func (h *DigestHasher) Algorithm() Algorithm { return h.alg }

// Encode digests password, salted when SaltLen > 0, and returns the hex
// payload.
func (h *DigestHasher) Encode(password string) (string, error) {
	if h.saltLen == 0 {
		return hex.EncodeToString(h.digest(nil, password)), nil
	}
	salt, err := randomSalt(uint32(h.saltLen))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(salt) + hex.EncodeToString(h.digest(salt, password)), nil
}

// Verify reports whether password matches the hex digest payload.
func (h *DigestHasher) Verify(password, hash string) (bool, error) {
	salt, expected, err := h.split(hash)
	if err != nil {
		return false, err
	}
	computed := h.digest(salt, password)
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// NeedsRehash always returns true for a structurally valid payload: a fast
// digest is never an acceptable resting state, so every successful login
// against this backend should trigger re-encoding with an adaptive backend.
func (h *DigestHasher) NeedsRehash(hash string) (bool, error) {
	if _, _, err := h.split(hash); err != nil {
		return false, err
	}
	return true, nil
}

// Info reports the observable structure of the payload.
//
// Returned [HashInfo].Params:
//   - "salt_len" → int
//   - "key_len"  → int
func (h *DigestHasher) Info(hash string) (HashInfo, error) {
	salt, expected, err := h.split(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm: h.alg,
		Params: map[string]any{
			"salt_len": len(salt),
			"key_len":  len(expected),
		},
	}, nil
}

// digest computes digest(salt ‖ password).
func (h *DigestHasher) digest(salt []byte, password string) []byte {
	d := h.newHash()
	d.Write(salt)
	d.Write([]byte(password))
	return d.Sum(nil)
}

// split hex-decodes the payload and separates salt from digest, validating
// the total length against the algorithm's digest size.
func (h *DigestHasher) split(payload string) (salt, digest []byte, err error) {
	raw, err := hex.DecodeString(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: digest payload is not hex: %v", ErrInvalidHash, err)
	}
	digestSize := h.newHash().Size()
	if len(raw) != h.saltLen+digestSize {
		return nil, nil, fmt.Errorf("%w: digest payload is %d bytes, want %d",
			ErrInvalidHash, len(raw), h.saltLen+digestSize)
	}
	return raw[:h.saltLen], raw[h.saltLen:], nil
}
