package hashing

import (
	"crypto/subtle"
	"fmt"
	"math"

	"golang.org/x/crypto/scrypt"
)

// ScryptOptions configures a [ScryptHasher].
//
// All parameters are encoded into the output hash string, so retuning them
// only affects newly produced hashes; existing hashes remain verifiable.
type ScryptOptions struct {
	// LogN is the base-2 logarithm of the CPU/memory cost parameter N.
	// Valid range: [1, 63]. Memory use is roughly 128·r·2^LogN bytes.
	LogN int

	// R is the block size parameter.
	// Minimum: 1.
	R int

	// P is the parallelism parameter.
	// Minimum: 1.
	P int

	// KeyLen is the length of the derived key in bytes.
	// Minimum: 16.
	KeyLen int

	// SaltLen is the length of the random salt in bytes.
	// Minimum: 8.
	SaltLen int
}

func validateScryptOptions(opts ScryptOptions) error {
	if opts.LogN < 1 || opts.LogN > 63 {
		return fmt.Errorf("%w: scrypt ln %d must be in [1, 63]", ErrInvalidOption, opts.LogN)
	}
	if opts.R < 1 {
		return fmt.Errorf("%w: scrypt r must be ≥ 1, got %d", ErrInvalidOption, opts.R)
	}
	if opts.P < 1 {
		return fmt.Errorf("%w: scrypt p must be ≥ 1, got %d", ErrInvalidOption, opts.P)
	}
	if opts.KeyLen < 16 {
		return fmt.Errorf("%w: scrypt key_len must be ≥ 16, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return fmt.Errorf("%w: scrypt salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// scryptParams holds parameters and raw values decoded from a scrypt hash.
type scryptParams struct {
	logN   int
	r      int
	p      int
	keyLen int
	salt   []byte
	hash   []byte
}

// decodeScryptPHC parses a PHC-style scrypt hash:
//
//	$scrypt$ln=15,r=8,p=1$<salt_base64>$<hash_base64>
func decodeScryptPHC(encoded string) (*scryptParams, error) {
	parts, err := phcFields(encoded, 4)
	if err != nil {
		return nil, err
	}
	if parts[0] != string(AlgorithmScrypt) {
		return nil, fmt.Errorf("%w: hash is %q, not scrypt", ErrAlgorithmMismatch, parts[0])
	}

	kvs, err := parseParams(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	logN, ok1 := kvs["ln"]
	r, ok2 := kvs["r"]
	p, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing ln/r/p in parameter segment %q", ErrInvalidHash, parts[1])
	}
	if logN < 1 || logN > 63 {
		return nil, fmt.Errorf("%w: scrypt ln %d out of range", ErrInvalidHash, logN)
	}
	if r < 1 || r > math.MaxInt32 || p < 1 || p > math.MaxInt32 {
		return nil, fmt.Errorf("%w: scrypt parameters out of range (r=%d, p=%d)", ErrInvalidHash, r, p)
	}

	salt, err := phcDecodeB64(parts[2], "salt")
	if err != nil {
		return nil, err
	}
	hash, err := phcDecodeB64(parts[3], "hash")
	if err != nil {
		return nil, err
	}
	// An empty hash segment would derive a zero-length key and compare equal
	// for every password.
	if len(hash) == 0 {
		return nil, fmt.Errorf("%w: empty scrypt hash segment", ErrInvalidHash)
	}

	return &scryptParams{
		logN:   int(logN),
		r:      int(r),
		p:      int(p),
		keyLen: len(hash),
		salt:   salt,
		hash:   hash,
	}, nil
}

// ScryptHasher hashes passwords using the scrypt algorithm.
//
// Scrypt is memory-hard like Argon2 and predates it; it remains a sound
// choice and is required when interoperating with systems that already
// store scrypt hashes.
//
// Output format: PHC-style string ($scrypt$ln=…,r=…,p=…$<salt>$<hash>)
// with all parameters self-contained, so old hashes stay verifiable after
// the work factors are raised.
//
// # Thread safety
//
// ScryptHasher is immutable after construction and safe for concurrent use.
type ScryptHasher struct {
	opts ScryptOptions
}

// NewScryptHasher constructs a ScryptHasher with the given options.
// Use [ScryptPreset] with [PresetLatest] for the recommended configuration.
func NewScryptHasher(opts ScryptOptions) (*ScryptHasher, error) {
	if err := validateScryptOptions(opts); err != nil {
		return nil, err
	}
	return &ScryptHasher{opts: opts}, nil
}

// Algorithm returns [AlgorithmScrypt].
func (h *ScryptHasher) Algorithm() Algorithm { return AlgorithmScrypt }

// Options returns the current scrypt parameter set.
func (h *ScryptHasher) Options() ScryptOptions { return h.opts }

// Encode hashes password with scrypt and returns a PHC-style string.
// A fresh random salt of the configured length is generated for each call.
func (h *ScryptHasher) Encode(password string) (string, error) {
	salt, err := randomSalt(uint32(h.opts.SaltLen))
	if err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(password), salt, 1<<h.opts.LogN, h.opts.R, h.opts.P, h.opts.KeyLen)
	if err != nil {
		return "", fmt.Errorf("hashing: scrypt: %w", err)
	}
	return phcEncode(string(AlgorithmScrypt), "",
		fmt.Sprintf("ln=%d,r=%d,p=%d", h.opts.LogN, h.opts.R, h.opts.P),
		salt, key), nil
}

// Verify reports whether password matches the scrypt hash.  The cost
// parameters are read from the hash string itself, so verification works
// correctly even when the hasher's options have changed.
func (h *ScryptHasher) Verify(password, hash string) (bool, error) {
	p, err := decodeScryptPHC(hash)
	if err != nil {
		return false, err
	}
	computed, err := scrypt.Key([]byte(password), p.salt, 1<<p.logN, p.r, p.p, p.keyLen)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from the
// hasher's current configuration.
func (h *ScryptHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodeScryptPHC(hash)
	if err != nil {
		return false, err
	}
	return p.logN != h.opts.LogN ||
		p.r != h.opts.R ||
		p.p != h.opts.P ||
		p.keyLen != h.opts.KeyLen, nil
}

// Info parses the hash string and returns the encoded parameters.
//
// Returned [HashInfo].Params:
//   - "ln"      → int
//   - "r"       → int
//   - "p"       → int
//   - "key_len" → int
func (h *ScryptHasher) Info(hash string) (HashInfo, error) {
	p, err := decodeScryptPHC(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm: AlgorithmScrypt,
		Params: map[string]any{
			"ln":      p.logN,
			"r":       p.r,
			"p":       p.p,
			"key_len": p.keyLen,
		},
	}, nil
}
