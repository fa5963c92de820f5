package delegating

import (
	"fmt"
	"strings"
)

// Encoded is the parsed form of a stored credential string.
//
// The storage format is:
//
//	{identifier}payload
//
// A stored value with no "{…}" prefix is a legacy unmarked hash: Identifier
// is empty and Payload is the whole string.  An empty prefix ("{}") is
// normalised to the same thing.  The payload is opaque — no escaping of '{'
// or '}' is attempted after the first closing brace.
type Encoded struct {
	// Identifier selects the backend that produced Payload.
	// Empty means "no identifier" (legacy unmarked hash).
	Identifier string

	// Payload is the backend-specific encoded hash.
	Payload string
}

// HasIdentifier reports whether the stored value carried a non-empty
// identifier prefix.
func (e Encoded) HasIdentifier() bool { return e.Identifier != "" }

// String re-serialises the credential; see [Serialize].
func (e Encoded) String() string {
	if e.Identifier == "" {
		return e.Payload
	}
	return "{" + e.Identifier + "}" + e.Payload
}

// Parse splits a stored credential string into identifier and payload.
//
// If stored starts with '{', the substring up to the first '}' is the
// identifier and the remainder is the payload.  A stored value that does
// not start with '{', or that has no closing '}', yields no identifier with
// the entire string as payload.  "{}" normalises to no identifier.
//
// Parse never fails: every input is some credential, even if only a legacy
// unmarked one.
func Parse(stored string) Encoded {
	if !strings.HasPrefix(stored, "{") {
		return Encoded{Payload: stored}
	}
	end := strings.IndexByte(stored, '}')
	if end < 0 {
		// Unterminated prefix — treat the whole string as an unmarked payload.
		return Encoded{Payload: stored}
	}
	return Encoded{
		Identifier: stored[1:end],
		Payload:    stored[end+1:],
	}
}

// Serialize produces the stored form "{id}payload", or payload unchanged
// when id is empty.  Returns [ErrInvalidIdentifier] if id contains '{' or
// '}', which the format cannot represent.
func Serialize(id, payload string) (string, error) {
	if err := validateIdentifier(id); err != nil {
		return "", err
	}
	if id == "" {
		return payload, nil
	}
	return "{" + id + "}" + payload, nil
}

// validateIdentifier rejects identifiers the storage format cannot carry.
// The empty identifier is valid here (it means "no prefix"); Register
// applies its own non-empty rule.
func validateIdentifier(id string) error {
	if strings.ContainsAny(id, "{}") {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return nil
}
