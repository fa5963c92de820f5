// Package hashing provides the password-hashing backends for the
// identifier-tagged credential encoding engine.
//
// # Architecture
//
// The central abstraction is the [Hasher] interface.  Backends fall into
// three groups:
//
//   - Adaptive: [BcryptHasher], [Argon2iHasher], [Argon2idHasher],
//     [ScryptHasher], [PBKDF2Hasher].  Tunable work factors make brute-force
//     guessing deliberately expensive.
//   - Legacy: [DigestHasher] (MD5/SHA-1/SHA-256, optionally salted).
//     Deprecated, kept forever so old stored hashes remain verifiable.
//   - [NoopHasher]: identity passthrough for non-production use.
//
// All backends implement [Hasher], so callers depend on the interface
// rather than a concrete type.  Dispatch across backends — including the
// {id}-prefixed storage format and rehash-on-login migration — lives in the
// delegating package; this package knows nothing about identifiers.
//
// # Versioned presets
//
// Default work factors are published as frozen [PresetVersion] sets rather
// than mutable package defaults:
//
//	opts, _ := hashing.Argon2Preset(hashing.PresetLatest)
//	h, err := hashing.NewArgon2idHasher(opts)
//
// A published preset is never retuned; stronger defaults arrive as a new
// version so pinned deployments keep their exact behaviour.
//
// # Hash formats
//
// The PHC-formatted backends (Argon2, scrypt) embed every parameter in the
// output string, so verification needs no external configuration:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
//	$scrypt$ln=15,r=8,p=1$<base64-salt>$<base64-hash>
//
// Bcrypt uses the Modular Crypt Format ($2b$12$…) with the same property.
// PBKDF2 and the legacy digests emit bare hex with the salt as a byte
// prefix; their remaining parameters come from the hasher's configuration,
// which is why retunings of those backends roll out under a new storage
// identifier rather than in place.
//
// # Security defaults (PresetV2)
//
//   - bcrypt:   cost 12 (≈ 250 ms on modern hardware; exceeds OWASP minimum of 10).
//   - Argon2id: m=64 MiB, t=3, p=2, 32-byte key.  Exceeds OWASP ASVS Level 2.
//   - scrypt:   N=2^15, r=8, p=1, 32-byte key.
//   - PBKDF2:   HMAC-SHA256, 310 000 iterations (OWASP recommendation).
package hashing
