package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := hasher.Verify(password, hash)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // hash string is malformed
//	}
var (
	// ErrInvalidHash is returned when a hash string cannot be parsed because
	// it has an unrecognised format, missing fields, or invalid encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range (e.g., a bcrypt
	// cost below 4 or a zero PBKDF2 iteration count).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrAlgorithmMismatch is returned by a [Hasher]'s Verify, NeedsRehash,
	// or Info method when the hash string was produced by a different
	// algorithm than the one implemented by that hasher.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")

	// ErrUnknownPreset is returned by the preset constructors when the
	// requested [PresetVersion] has not been published.
	ErrUnknownPreset = errors.New("hashing: unknown preset version")
)
