package delegating

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-password-encoding/hashing"
)

// Registry maps storage identifiers to hashing backends.
//
// Identifiers are case-sensitive and matched exactly against the {id}
// prefix of stored credentials.  A Registry is meant to be populated once
// at application startup — from configuration or from
// [NewDefaultRegistry] — and treated as a read-only dispatch table for the
// lifetime of the process.  An RWMutex serialises registration against
// concurrent lookups so startup wiring is race-free, but per-call hot paths
// only ever take the read lock.
//
// # Duplicate registration
//
// Registering an identifier that is already present overwrites the previous
// backend and logs a warning through the registry's logger.  Overwriting —
// rather than rejecting — keeps startup wiring order-insensitive for
// callers that intentionally replace a stock backend; the warning preserves
// the signal when the collision was accidental.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]hashing.Hasher
	fallback hashing.Hasher
	log      zerolog.Logger
}

// RegistryOptions configures a [Registry].
type RegistryOptions struct {
	// Logger receives the duplicate-registration warning.
	// The zero value is a no-op logger.
	Logger zerolog.Logger
}

// NewRegistry creates an empty Registry.  Backends must be registered with
// [Registry.Register] before an [Encoder] can be constructed on top.
func NewRegistry(opts RegistryOptions) *Registry {
	return &Registry{
		backends: make(map[string]hashing.Hasher),
		log:      opts.Logger,
	}
}

// NewDefaultRegistry creates a Registry with every stock backend registered
// under its canonical identifier at [hashing.PresetLatest] work factors:
// argon2id, argon2i, bcrypt, scrypt, pbkdf2, sha256, sha1 (salted legacy
// digests), and noop.
//
// This is the batteries-included starting point; pair it with
// [NewEncoder](reg, "argon2id") for the recommended setup.
func NewDefaultRegistry(opts RegistryOptions) (*Registry, error) {
	r := NewRegistry(opts)

	a2opts, err := hashing.Argon2Preset(hashing.PresetLatest)
	if err != nil {
		return nil, err
	}
	a2id, err := hashing.NewArgon2idHasher(a2opts)
	if err != nil {
		return nil, fmt.Errorf("delegating: default argon2id backend: %w", err)
	}
	a2i, err := hashing.NewArgon2iHasher(a2opts)
	if err != nil {
		return nil, fmt.Errorf("delegating: default argon2i backend: %w", err)
	}

	bcOpts, err := hashing.BcryptPreset(hashing.PresetLatest)
	if err != nil {
		return nil, err
	}
	bc, err := hashing.NewBcryptHasher(bcOpts)
	if err != nil {
		return nil, fmt.Errorf("delegating: default bcrypt backend: %w", err)
	}

	scOpts, err := hashing.ScryptPreset(hashing.PresetLatest)
	if err != nil {
		return nil, err
	}
	sc, err := hashing.NewScryptHasher(scOpts)
	if err != nil {
		return nil, fmt.Errorf("delegating: default scrypt backend: %w", err)
	}

	pbOpts, err := hashing.PBKDF2Preset(hashing.PresetLatest)
	if err != nil {
		return nil, err
	}
	pb, err := hashing.NewPBKDF2Hasher(pbOpts)
	if err != nil {
		return nil, fmt.Errorf("delegating: default pbkdf2 backend: %w", err)
	}

	sha256H, err := hashing.NewDigestHasher(hashing.AlgorithmSHA256, hashing.DigestOptions{SaltLen: 8})
	if err != nil {
		return nil, fmt.Errorf("delegating: default sha256 backend: %w", err)
	}
	sha1H, err := hashing.NewDigestHasher(hashing.AlgorithmSHA1, hashing.DigestOptions{SaltLen: 8})
	if err != nil {
		return nil, fmt.Errorf("delegating: default sha1 backend: %w", err)
	}

	for id, h := range map[string]hashing.Hasher{
		string(hashing.AlgorithmArgon2id): a2id,
		string(hashing.AlgorithmArgon2i):  a2i,
		string(hashing.AlgorithmBcrypt):   bc,
		string(hashing.AlgorithmScrypt):   sc,
		string(hashing.AlgorithmPBKDF2):   pb,
		string(hashing.AlgorithmSHA256):   sha256H,
		string(hashing.AlgorithmSHA1):     sha1H,
		string(hashing.AlgorithmNoop):     hashing.NewNoopHasher(),
	} {
		if err := r.Register(id, h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a backend under id.  Registering an id that is already
// present replaces the previous backend and logs a warning (see the type
// documentation for why overwrite was chosen over rejection).
//
// Returns [ErrEmptyIdentifier], [ErrInvalidIdentifier], or [ErrNilHasher]
// for unusable arguments.
func (r *Registry) Register(id string, h hashing.Hasher) error {
	if id == "" {
		return ErrEmptyIdentifier
	}
	if err := validateIdentifier(id); err != nil {
		return err
	}
	if h == nil {
		return ErrNilHasher
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.backends[id]; ok {
		r.log.Warn().
			Str("identifier", id).
			Str("previous", string(prev.Algorithm())).
			Str("replacement", string(h.Algorithm())).
			Msg("overwriting already-registered hashing backend")
	}
	r.backends[id] = h
	return nil
}

// SetFallback designates a backend for stored values whose identifier is
// absent or unknown.  This is a deliberate escape hatch around the strict
// [ErrUnmappedIdentifier] propagation — typically used during a migration
// from a system that stored bare, unprefixed hashes — and is never enabled
// by default.  Passing a backend for hashes it cannot parse is safe: it
// fails closed.
//
// Returns [ErrNilHasher] for a nil backend.  Call ClearFallback to remove
// a previously configured fallback.
func (r *Registry) SetFallback(h hashing.Hasher) error {
	if h == nil {
		return ErrNilHasher
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
	return nil
}

// ClearFallback removes the fallback backend, restoring strict
// [ErrUnmappedIdentifier] propagation for unmapped stored values.
func (r *Registry) ClearFallback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = nil
}

// Hasher returns the backend registered under id, or
// [ErrUnknownIdentifier].  The fallback is not consulted; use
// [Registry.Resolve] for fallback-aware dispatch.
func (r *Registry) Hasher(id string) (hashing.Hasher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.backends[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIdentifier, id)
	}
	return h, nil
}

// Has reports whether a backend is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.backends[id]
	return ok
}

// Identifiers returns the registered identifiers in unspecified order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.backends))
	for id := range r.backends {
		ids = append(ids, id)
	}
	return ids
}

// Resolve returns the backend for the identifier extracted from a stored
// value: the registered backend when the identifier is mapped, otherwise
// the fallback when one is configured.  The boolean reports whether any
// backend was found.  An empty id (no prefix on the stored value) only ever
// resolves to the fallback.
func (r *Registry) Resolve(id string) (hashing.Hasher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id != "" {
		if h, ok := r.backends[id]; ok {
			return h, true
		}
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}
