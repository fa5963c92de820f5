package hashing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Helpers shared by the backends that serialise hashes in the PHC string
// format ($<id>$<params>$<salt>$<hash>): Argon2i, Argon2id, and scrypt.
//
// The base64 encoding uses the standard alphabet without padding (RFC 4648
// §5 without "=") — the convention used by the Argon2 reference
// implementation and the passlib/npm ecosystems.

// phcEncode serialises a PHC hash string:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
//	$scrypt$ln=15,r=8,p=1$<salt_base64>$<hash_base64>
//
// versionSegment may be empty (scrypt carries no version segment).
func phcEncode(id, versionSegment, paramSegment string, salt, hash []byte) string {
	var b strings.Builder
	b.WriteByte('$')
	b.WriteString(id)
	if versionSegment != "" {
		b.WriteByte('$')
		b.WriteString(versionSegment)
	}
	b.WriteByte('$')
	b.WriteString(paramSegment)
	b.WriteByte('$')
	b.WriteString(base64.RawStdEncoding.EncodeToString(salt))
	b.WriteByte('$')
	b.WriteString(base64.RawStdEncoding.EncodeToString(hash))
	return b.String()
}

// phcFields splits a PHC string into its dollar-delimited segments, checking
// the expected count. The leading "$" produces an empty first element, which
// is stripped from the returned slice.
func phcFields(encoded string, want int) ([]string, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != want+1 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected %d-segment PHC string, got %d segments",
			ErrInvalidHash, want, len(parts)-1)
	}
	return parts[1:], nil
}

// phcDecodeB64 decodes a raw-std-base64 PHC segment, labelling errors.
func phcDecodeB64(segment, label string) ([]byte, error) {
	raw, err := base64.RawStdEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s base64: %v", ErrInvalidHash, label, err)
	}
	return raw, nil
}

// parseKV parses a "key=value" string and returns the uint64 value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 64)
}

// parseParams splits "m=65536,t=3,p=2" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("hashing: failed to generate salt: %w", err)
	}
	return b, nil
}
