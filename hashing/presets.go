package hashing

import "fmt"

// PresetVersion selects a published, frozen default parameter set for the
// adaptive backends.
//
// Presets are immutable once published: retuning an existing version would
// silently change the behaviour of deployments that pinned it, so stronger
// defaults are always introduced as a new version.  Callers that want the
// current recommendation pin [PresetLatest]; callers that need bit-for-bit
// stable behaviour across upgrades pin an explicit version.
type PresetVersion int

const (
	// PresetV1 is the original parameter set: bcrypt cost 10, Argon2
	// 19 MiB/t=2/p=1 (OWASP ASVS Level 2 minimum), scrypt N=2^14,
	// PBKDF2 185 000 iterations with an 8-byte salt.
	PresetV1 PresetVersion = 1

	// PresetV2 is the current parameter set: bcrypt cost 12, Argon2
	// 64 MiB/t=3/p=2, scrypt N=2^15, PBKDF2 310 000 iterations with a
	// 16-byte salt.
	PresetV2 PresetVersion = 2

	// PresetLatest always refers to the newest published preset.
	PresetLatest = PresetV2
)

// BcryptPreset returns the bcrypt options frozen under version v.
func BcryptPreset(v PresetVersion) (BcryptOptions, error) {
	switch v {
	case PresetV1:
		return BcryptOptions{Cost: 10}, nil
	case PresetV2:
		return BcryptOptions{Cost: 12}, nil
	default:
		return BcryptOptions{}, fmt.Errorf("%w: bcrypt preset v%d", ErrUnknownPreset, v)
	}
}

// Argon2Preset returns the Argon2 options frozen under version v.
// The same preset applies to both the Argon2i and Argon2id backends.
func Argon2Preset(v PresetVersion) (Argon2Options, error) {
	switch v {
	case PresetV1:
		return Argon2Options{Memory: 19 * 1024, Time: 2, Threads: 1, KeyLen: 32, SaltLen: 16}, nil
	case PresetV2:
		return Argon2Options{Memory: 64 * 1024, Time: 3, Threads: 2, KeyLen: 32, SaltLen: 16}, nil
	default:
		return Argon2Options{}, fmt.Errorf("%w: argon2 preset v%d", ErrUnknownPreset, v)
	}
}

// ScryptPreset returns the scrypt options frozen under version v.
func ScryptPreset(v PresetVersion) (ScryptOptions, error) {
	switch v {
	case PresetV1:
		return ScryptOptions{LogN: 14, R: 8, P: 1, KeyLen: 32, SaltLen: 16}, nil
	case PresetV2:
		return ScryptOptions{LogN: 15, R: 8, P: 1, KeyLen: 32, SaltLen: 16}, nil
	default:
		return ScryptOptions{}, fmt.Errorf("%w: scrypt preset v%d", ErrUnknownPreset, v)
	}
}

// PBKDF2Preset returns the PBKDF2 options frozen under version v.
//
// Note that PBKDF2 payloads do not embed their iteration count, so hashes
// produced under one preset cannot be verified by a hasher built from
// another (see [PBKDF2Options]).  Keep a hasher for every preset that ever
// produced production hashes, each under its own storage identifier.
func PBKDF2Preset(v PresetVersion) (PBKDF2Options, error) {
	switch v {
	case PresetV1:
		return PBKDF2Options{Iterations: 185_000, KeyLen: 32, SaltLen: 8}, nil
	case PresetV2:
		return PBKDF2Options{Iterations: 310_000, KeyLen: 32, SaltLen: 16}, nil
	default:
		return PBKDF2Options{}, fmt.Errorf("%w: pbkdf2 preset v%d", ErrUnknownPreset, v)
	}
}
