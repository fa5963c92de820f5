package delegating

import "errors"

// Sentinel errors returned by the delegating encoder and registry.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := enc.Matches(password, stored)
//	if errors.Is(err, delegating.ErrUnmappedIdentifier) {
//	    // configuration/migration problem — alert operators, do NOT
//	    // report this to the user as a wrong password
//	}
var (
	// ErrUnmappedIdentifier is returned by [Encoder.Matches] when the stored
	// value carries an identifier (or no identifier) that resolves to no
	// registered backend and no fallback is configured.  This is an
	// operational signal — a missing registration or an incomplete
	// migration — and is deliberately never swallowed into a false match
	// result.
	ErrUnmappedIdentifier = errors.New("delegating: no backend mapped for stored identifier")

	// ErrUnknownIdentifier is returned by [Registry.Hasher] for a lookup of
	// an unregistered identifier, and by [NewEncoder] when the designated
	// encode identifier has not been registered.  The latter is fatal at
	// construction time.
	ErrUnknownIdentifier = errors.New("delegating: identifier is not registered")

	// ErrInvalidIdentifier is returned when an identifier contains '{' or
	// '}', which the storage format cannot represent.
	ErrInvalidIdentifier = errors.New("delegating: identifier must not contain '{' or '}'")

	// ErrEmptyIdentifier is returned by [Registry.Register] when the
	// supplied identifier is an empty string.
	ErrEmptyIdentifier = errors.New("delegating: identifier must not be empty")

	// ErrNilHasher is returned by [Registry.Register] and
	// [Registry.SetFallback] when a nil backend is supplied.
	ErrNilHasher = errors.New("delegating: hasher must not be nil")
)
