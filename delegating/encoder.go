package delegating

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-password-encoding/hashing"
)

// Encoder is the delegating dispatcher: it encodes new credentials with one
// designated backend and routes verification to whichever backend the {id}
// prefix of a stored value names.
//
// # Typical login flow
//
//	ok, err := enc.Matches(password, stored)
//	switch {
//	case errors.Is(err, delegating.ErrUnmappedIdentifier):
//	    // operational problem, not a wrong password — alert and fail the
//	    // request without counting it against the user
//	case err != nil:
//	    // backend failure
//	case !ok:
//	    // wrong password
//	default:
//	    if enc.UpgradeEncoding(stored) {
//	        newHash, _ := enc.Encode(password)
//	        // persist newHash
//	    }
//	}
//
// # Thread safety
//
// Encoder is immutable after construction and safe for concurrent use.
// Encode and Matches block for the full hash computation of the selected
// backend.
type Encoder struct {
	reg      *Registry
	encodeID string
	log      zerolog.Logger
}

// EncoderOptions configures an [Encoder].
type EncoderOptions struct {
	// Logger receives a debug entry when a malformed stored payload is
	// failed closed during Matches.  The zero value is a no-op logger.
	Logger zerolog.Logger
}

// NewEncoder constructs an Encoder that produces new encodings with the
// backend registered under encodeID.  The identifier must already be
// registered: a missing encode backend is a wiring bug, so it fails here —
// at startup — with [ErrUnknownIdentifier] rather than on the first login.
func NewEncoder(reg *Registry, encodeID string, opts EncoderOptions) (*Encoder, error) {
	if reg == nil {
		return nil, errors.New("delegating: registry must not be nil")
	}
	if !reg.Has(encodeID) {
		return nil, fmt.Errorf("%w: encode identifier %q", ErrUnknownIdentifier, encodeID)
	}
	return &Encoder{reg: reg, encodeID: encodeID, log: opts.Logger}, nil
}

// EncodeIdentifier returns the identifier used for new encodings.
func (e *Encoder) EncodeIdentifier() string { return e.encodeID }

// Registry returns the registry this encoder dispatches over.
func (e *Encoder) Registry() *Registry { return e.reg }

// Encode hashes password with the designated encode backend and returns the
// stored form "{encodeID}payload".
func (e *Encoder) Encode(password string) (string, error) {
	h, err := e.reg.Hasher(e.encodeID)
	if err != nil {
		// Unreachable under the constructor invariant unless the backend
		// was never registered through this registry.
		return "", err
	}
	payload, err := h.Encode(password)
	if err != nil {
		return "", err
	}
	return Serialize(e.encodeID, payload)
}

// Matches verifies password against a stored credential.  The stored
// value's identifier prefix selects the backend; a stored value with no
// prefix, or an unknown identifier, goes to the registry's fallback when
// one is configured.
//
// When no backend can be resolved, Matches returns
// [ErrUnmappedIdentifier].  Callers must treat that as an operational
// error — a missing registration or incomplete migration — and never
// surface it as "wrong password".
//
// A payload the resolved backend cannot parse is indistinguishable from a
// wrong password to the caller, so it fails closed to (false, nil) with a
// debug log entry.
func (e *Encoder) Matches(password, stored string) (bool, error) {
	parsed := Parse(stored)
	h, ok := e.reg.Resolve(parsed.Identifier)
	if !ok {
		if parsed.HasIdentifier() {
			return false, fmt.Errorf("%w: %q", ErrUnmappedIdentifier, parsed.Identifier)
		}
		return false, fmt.Errorf("%w: stored value has no identifier and no fallback is configured",
			ErrUnmappedIdentifier)
	}

	match, err := h.Verify(password, parsed.Payload)
	if err != nil {
		if errors.Is(err, hashing.ErrInvalidHash) || errors.Is(err, hashing.ErrAlgorithmMismatch) {
			e.log.Debug().
				Str("identifier", parsed.Identifier).
				Str("algorithm", string(h.Algorithm())).
				Err(err).
				Msg("stored payload unparseable by resolved backend; failing closed")
			return false, nil
		}
		return false, err
	}
	return match, nil
}

// UpgradeEncoding reports whether a stored credential should be re-encoded
// and persisted after the next successful authentication (rehash-on-login).
//
// A stored value whose identifier differs from the encode identifier — or
// that has no identifier at all — always needs upgrading.  When the
// identifiers match, the decision is delegated to the backend's
// NeedsRehash so that parameter drift (for example a raised bcrypt cost)
// also triggers an upgrade.  Unparseable stored values report false; they
// will never verify, so re-encoding them is moot.
//
// UpgradeEncoding does not itself re-encode.
func (e *Encoder) UpgradeEncoding(stored string) bool {
	parsed := Parse(stored)
	if parsed.Identifier != e.encodeID {
		return true
	}
	h, err := e.reg.Hasher(e.encodeID)
	if err != nil {
		return false
	}
	needs, err := h.NeedsRehash(parsed.Payload)
	if err != nil {
		return false
	}
	return needs
}
