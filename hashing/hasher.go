package hashing

import "strings"

// Algorithm identifies a password-hashing algorithm.
// Using a named string type prevents accidental confusion with plain strings.
type Algorithm string

const (
	// AlgorithmBcrypt is the bcrypt adaptive hash.
	AlgorithmBcrypt Algorithm = "bcrypt"
	// AlgorithmArgon2i is the Argon2i adaptive hash.
	AlgorithmArgon2i Algorithm = "argon2i"
	// AlgorithmArgon2id is the Argon2id adaptive hash (recommended for new systems).
	AlgorithmArgon2id Algorithm = "argon2id"
	// AlgorithmScrypt is the scrypt adaptive hash.
	AlgorithmScrypt Algorithm = "scrypt"
	// AlgorithmPBKDF2 is PBKDF2 with HMAC-SHA256.
	AlgorithmPBKDF2 Algorithm = "pbkdf2"

	// AlgorithmMD5 is a plain MD5 digest.
	//
	// Deprecated: fast digests offer no brute-force resistance. The digest
	// backends exist only so hashes already in production remain verifiable;
	// never select them for new encodings.
	AlgorithmMD5 Algorithm = "md5"
	// AlgorithmSHA1 is a plain SHA-1 digest.
	//
	// Deprecated: see [AlgorithmMD5].
	AlgorithmSHA1 Algorithm = "sha1"
	// AlgorithmSHA256 is a plain SHA-256 digest.
	//
	// Deprecated: see [AlgorithmMD5].
	AlgorithmSHA256 Algorithm = "sha256"

	// AlgorithmNoop stores the password verbatim.
	// Non-production use only (tests, local bootstrapping).
	AlgorithmNoop Algorithm = "noop"
)

// Hasher is the core interface satisfied by all password-hashing backends.
//
// All implementations are immutable after construction and safe for
// concurrent use by multiple goroutines. Encode and Verify block for the
// full hash computation — up to hundreds of milliseconds for the adaptive
// algorithms — and cannot be cancelled mid-computation, so run them off any
// latency-sensitive event loop.
type Hasher interface {
	// Encode hashes a plaintext password and returns the encoded payload.
	// A fresh cryptographic salt is generated for every call, so two calls
	// with the same password produce different outputs. The only exceptions
	// are the intentionally unsalted legacy digests and noop.
	Encode(password string) (string, error)

	// Verify reports whether password matches the previously encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) wrapping [ErrInvalidHash] or [ErrAlgorithmMismatch] when
	// the hash is structurally unparseable by this backend.
	//
	// Comparison is performed in constant time to prevent timing attacks.
	Verify(password, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced with parameters that are
	// weaker than — or simply different from — the hasher's current
	// configuration. Callers should re-encode the password on the next
	// successful login when this returns true.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying
	// it. Useful for auditing and migration tooling.
	Info(hash string) (HashInfo, error)

	// Algorithm returns the Algorithm implemented by this hasher.
	Algorithm() Algorithm
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Algorithm is the hashing algorithm that produced the hash.
	Algorithm Algorithm

	// Params holds algorithm-specific parameters extracted from the hash string.
	//
	// For bcrypt:
	//   "cost" → int
	//
	// For Argon2i and Argon2id:
	//   "version" → int   (Argon2 version number, typically 19)
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32 (iterations)
	//   "threads" → uint8  (degree of parallelism)
	//   "key_len" → uint32 (output key length in bytes)
	//
	// For scrypt:
	//   "ln"      → int (log2 of the CPU/memory cost N)
	//   "r"       → int (block size)
	//   "p"       → int (parallelism)
	//   "key_len" → int (output key length in bytes)
	//
	// For PBKDF2 and the legacy digests, only the observable structure:
	//   "salt_len" → int
	//   "key_len"  → int
	Params map[string]any
}

// DetectAlgorithm inspects a bare hash payload and returns the [Algorithm]
// that produced it. It is a best-effort heuristic over the self-describing
// formats (bcrypt MCF, PHC Argon2, PHC-style scrypt) and does not verify
// the hash itself.
//
// The second return value is false when the format is not recognised.
// PBKDF2, the legacy digests, and noop payloads are bare hex or plaintext
// with no distinguishing structure and are never detected; in the
// identifier-tagged storage format they are selected by their {id} prefix
// instead (see the delegating package).
func DetectAlgorithm(hash string) (Algorithm, bool) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return AlgorithmArgon2id, true
	case strings.HasPrefix(hash, "$argon2i$"):
		return AlgorithmArgon2i, true
	case strings.HasPrefix(hash, "$scrypt$"):
		return AlgorithmScrypt, true
	// bcrypt hashes start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return AlgorithmBcrypt, true
	default:
		return "", false
	}
}
