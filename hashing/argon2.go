package hashing

import (
	"crypto/subtle"
	"fmt"
	"math"

	"golang.org/x/crypto/argon2"
)

// argon2Version is the Argon2 specification version encoded in hashes.
const argon2Version = argon2.Version // 0x13 = 19

// Argon2Options configures an [Argon2iHasher] or [Argon2idHasher].
//
// All parameters are directly encoded into the output hash string (PHC
// format), so changing them only affects newly produced hashes; existing
// hashes remain verifiable indefinitely.
type Argon2Options struct {
	// Memory is the memory cost in KiB.
	// Minimum: 8 * Threads.
	Memory uint32

	// Time is the number of passes over memory (iterations).
	// Minimum: 1.
	Time uint32

	// Threads is the degree of parallelism.
	// Minimum: 1.
	Threads uint8

	// KeyLen is the length of the derived key in bytes.
	// Minimum: 4.
	KeyLen uint32

	// SaltLen is the length of the random salt in bytes.
	// Minimum: 8.
	SaltLen uint32
}

func validateArgon2Options(opts Argon2Options) error {
	if opts.Time < 1 {
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, opts.Time)
	}
	if opts.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, opts.Threads)
	}
	if opts.Memory < 8*uint32(opts.Threads) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Threads))
	}
	if opts.KeyLen < 4 {
		return fmt.Errorf("%w: argon2 key_len must be ≥ 4, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return fmt.Errorf("%w: argon2 salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// argon2Params holds parameters and raw values decoded from a PHC hash string.
type argon2Params struct {
	variant Algorithm
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	salt    []byte
	hash    []byte
}

// encodeArgon2PHC serialises an Argon2 hash in PHC String Format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func encodeArgon2PHC(variant Algorithm, opts Argon2Options, salt, hash []byte) string {
	return phcEncode(string(variant),
		fmt.Sprintf("v=%d", argon2Version),
		fmt.Sprintf("m=%d,t=%d,p=%d", opts.Memory, opts.Time, opts.Threads),
		salt, hash)
}

// decodeArgon2PHC parses an Argon2 PHC hash string and returns its components.
//
// Expected format (5 dollar-delimited segments):
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func decodeArgon2PHC(encoded string) (*argon2Params, error) {
	parts, err := phcFields(encoded, 5)
	if err != nil {
		return nil, err
	}

	// parts[0]: variant name
	var variant Algorithm
	switch parts[0] {
	case string(AlgorithmArgon2i):
		variant = AlgorithmArgon2i
	case string(AlgorithmArgon2id):
		variant = AlgorithmArgon2id
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrInvalidHash, parts[0])
	}

	// parts[1]: "v=<version>"
	version, err := parseKV(parts[1], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	// parts[2]: "m=<memory>,t=<time>,p=<threads>"
	kvs, err := parseParams(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in parameter segment %q", ErrInvalidHash, parts[2])
	}

	// Stored parameters are untrusted input: x/crypto's argon2 panics on
	// values outside its contract, so anything the key derivation would
	// reject must fail parse here instead.
	if memory > math.MaxUint32 || time > math.MaxUint32 || threads > math.MaxUint8 {
		return nil, fmt.Errorf("%w: argon2 parameter overflows its field (m=%d, t=%d, p=%d)",
			ErrInvalidHash, memory, time, threads)
	}
	if time < 1 || threads < 1 || memory < 8*threads {
		return nil, fmt.Errorf("%w: argon2 parameters out of range (m=%d, t=%d, p=%d)",
			ErrInvalidHash, memory, time, threads)
	}

	salt, err := phcDecodeB64(parts[3], "salt")
	if err != nil {
		return nil, err
	}
	hash, err := phcDecodeB64(parts[4], "hash")
	if err != nil {
		return nil, err
	}
	if len(hash) == 0 {
		return nil, fmt.Errorf("%w: empty argon2 hash segment", ErrInvalidHash)
	}

	return &argon2Params{
		variant: variant,
		version: uint32(version),
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint8(threads),
		keyLen:  uint32(len(hash)),
		salt:    salt,
		hash:    hash,
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2iHasher
// ──────────────────────────────────────────────────────────────────────────────

// Argon2iHasher hashes passwords using the Argon2i algorithm.
//
// Argon2i uses data-independent memory access, making it resistant to
// side-channel attacks but slightly more vulnerable to time-memory trade-off
// attacks compared to Argon2id.  For most password-hashing use cases, prefer
// [Argon2idHasher].
//
// Output format: PHC string ($argon2i$v=19$m=…,t=…,p=…$<salt>$<hash>).
//
// # Thread safety
//
// Argon2iHasher is immutable after construction and safe for concurrent use.
type Argon2iHasher struct {
	opts Argon2Options
}

// NewArgon2iHasher constructs an Argon2iHasher with the given options.
// Use [Argon2Preset] with [PresetLatest] for the recommended configuration.
func NewArgon2iHasher(opts Argon2Options) (*Argon2iHasher, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2iHasher{opts: opts}, nil
}

// Algorithm returns [AlgorithmArgon2i].
func (h *Argon2iHasher) Algorithm() Algorithm { return AlgorithmArgon2i }

// Options returns the current Argon2 parameter set.
func (h *Argon2iHasher) Options() Argon2Options { return h.opts }

// Encode hashes password with Argon2i and returns a PHC-formatted string.
// A fresh random salt of the configured length is generated for each call.
func (h *Argon2iHasher) Encode(password string) (string, error) {
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	key := argon2.Key(
		[]byte(password), salt,
		h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen,
	)
	return encodeArgon2PHC(AlgorithmArgon2i, h.opts, salt, key), nil
}

// Verify reports whether password matches the Argon2i PHC hash.
// The parameters (memory, time, threads) are read from the hash string
// itself, so verification works correctly even when the hasher's options
// have changed since the hash was produced.
func (h *Argon2iHasher) Verify(password, hash string) (bool, error) {
	p, err := decodeArgon2PHC(hash)
	if err != nil {
		return false, err
	}
	if p.variant != AlgorithmArgon2i {
		return false, fmt.Errorf("%w: hash is %s, not argon2i", ErrAlgorithmMismatch, p.variant)
	}
	computed := argon2.Key([]byte(password), p.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from the
// hasher's current configuration.
func (h *Argon2iHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodeArgon2PHC(hash)
	if err != nil {
		return false, err
	}
	if p.variant != AlgorithmArgon2i {
		return false, fmt.Errorf("%w: hash is %s, not argon2i", ErrAlgorithmMismatch, p.variant)
	}
	return argon2NeedsRehash(p, h.opts), nil
}

// Info parses the PHC string and returns the encoded parameters.
func (h *Argon2iHasher) Info(hash string) (HashInfo, error) {
	return argon2Info(hash, AlgorithmArgon2i)
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2idHasher
// ──────────────────────────────────────────────────────────────────────────────

// Argon2idHasher hashes passwords using the Argon2id algorithm.
//
// Argon2id is a hybrid of Argon2i and Argon2d.  It provides resistance to
// both side-channel attacks (first half of passes) and time-memory trade-off
// attacks (second half of passes), making it the recommended choice for
// password hashing according to RFC 9106 and OWASP.
//
// Output format: PHC string ($argon2id$v=19$m=…,t=…,p=…$<salt>$<hash>).
//
// # Thread safety
//
// Argon2idHasher is immutable after construction and safe for concurrent use.
type Argon2idHasher struct {
	opts Argon2Options
}

// NewArgon2idHasher constructs an Argon2idHasher with the given options.
// Use [Argon2Preset] with [PresetLatest] for the recommended configuration.
func NewArgon2idHasher(opts Argon2Options) (*Argon2idHasher, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2idHasher{opts: opts}, nil
}

// Algorithm returns [AlgorithmArgon2id].
func (h *Argon2idHasher) Algorithm() Algorithm { return AlgorithmArgon2id }

// Options returns the current Argon2 parameter set.
func (h *Argon2idHasher) Options() Argon2Options { return h.opts }

// Encode hashes password with Argon2id and returns a PHC-formatted string.
// A fresh random salt of the configured length is generated for each call.
func (h *Argon2idHasher) Encode(password string) (string, error) {
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey(
		[]byte(password), salt,
		h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen,
	)
	return encodeArgon2PHC(AlgorithmArgon2id, h.opts, salt, key), nil
}

// Verify reports whether password matches the Argon2id PHC hash.
func (h *Argon2idHasher) Verify(password, hash string) (bool, error) {
	p, err := decodeArgon2PHC(hash)
	if err != nil {
		return false, err
	}
	if p.variant != AlgorithmArgon2id {
		return false, fmt.Errorf("%w: hash is %s, not argon2id", ErrAlgorithmMismatch, p.variant)
	}
	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from the
// hasher's current configuration.
func (h *Argon2idHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodeArgon2PHC(hash)
	if err != nil {
		return false, err
	}
	if p.variant != AlgorithmArgon2id {
		return false, fmt.Errorf("%w: hash is %s, not argon2id", ErrAlgorithmMismatch, p.variant)
	}
	return argon2NeedsRehash(p, h.opts), nil
}

// Info parses the PHC string and returns the encoded parameters.
func (h *Argon2idHasher) Info(hash string) (HashInfo, error) {
	return argon2Info(hash, AlgorithmArgon2id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared helpers
// ──────────────────────────────────────────────────────────────────────────────

func argon2NeedsRehash(p *argon2Params, opts Argon2Options) bool {
	return p.memory != opts.Memory ||
		p.time != opts.Time ||
		p.threads != opts.Threads ||
		p.keyLen != opts.KeyLen
}

// argon2Info is the shared Info implementation for both Argon2 variants.
func argon2Info(hash string, expected Algorithm) (HashInfo, error) {
	p, err := decodeArgon2PHC(hash)
	if err != nil {
		return HashInfo{}, err
	}
	if p.variant != expected {
		return HashInfo{}, fmt.Errorf("%w: hash is %s, not %s", ErrAlgorithmMismatch, p.variant, expected)
	}
	return HashInfo{
		Algorithm: p.variant,
		Params: map[string]any{
			"version": int(p.version),
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": p.keyLen,
		},
	}, nil
}
