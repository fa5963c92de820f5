package hashing

import "crypto/subtle"

// NoopHasher stores the password verbatim — the payload IS the plaintext.
//
// It exists for tests, local development, and bootstrapping flows where a
// real hash would only add friction.  Never use it in production: anyone
// with read access to the credential store can read every password.
//
// # Thread safety
//
// NoopHasher is stateless and safe for concurrent use.
type NoopHasher struct{}

// NewNoopHasher constructs a NoopHasher.
func NewNoopHasher() *NoopHasher { return &NoopHasher{} }

// Algorithm returns [AlgorithmNoop].
func (h *NoopHasher) Algorithm() Algorithm { return AlgorithmNoop }

// Encode returns password unchanged.
func (h *NoopHasher) Encode(password string) (string, error) {
	return password, nil
}

// Verify compares password and hash byte-for-byte in constant time.
func (h *NoopHasher) Verify(password, hash string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(password), []byte(hash)) == 1, nil
}

// NeedsRehash always returns true: a plaintext "hash" should be replaced
// with a real one at the first opportunity.
func (h *NoopHasher) NeedsRehash(string) (bool, error) {
	return true, nil
}

// Info reports the payload length.
func (h *NoopHasher) Info(hash string) (HashInfo, error) {
	return HashInfo{
		Algorithm: AlgorithmNoop,
		Params:    map[string]any{"key_len": len(hash)},
	}, nil
}
