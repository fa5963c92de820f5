// Package delegating implements identifier-tagged password storage: an
// encode/verify dispatcher over a registry of hashing backends, keyed by a
// short identifier embedded in every stored credential.
//
// # Storage format
//
// Stored credentials carry their backend's identifier as a prefix:
//
//	{bcrypt}$2b$12$dXJ3SW6G7P50lGmMkkmwe.20cQQubK3.HZWzG3YB1tlRy.fqvM/BG
//	{noop}password
//	{pbkdf2}5d923b44a6d129f3ddf3e3c8d29412723dcbde72445e8ef6bf3b508fbf17fa4ed4d6b99ca763d8dc
//
// A value without a "{…}" prefix is a legacy unmarked hash.  [Parse] and
// [Serialize] implement the format; identifiers are opaque, case-sensitive,
// and may not contain braces.
//
// # Components
//
// [Registry] is the identifier → [hashing.Hasher] dispatch table, built
// once at startup ([NewDefaultRegistry] wires all stock backends).
// [Encoder] is the dispatcher: Encode always uses the one designated encode
// identifier, Matches routes to whichever backend the stored prefix names,
// and UpgradeEncoding drives rehash-on-login migration.
//
// # Quick start
//
//	reg, err := delegating.NewDefaultRegistry(delegating.RegistryOptions{})
//	if err != nil { log.Fatal(err) }
//	enc, err := delegating.NewEncoder(reg, "argon2id", delegating.EncoderOptions{})
//	if err != nil { log.Fatal(err) }
//
//	stored, _ := enc.Encode("my-secret-password") // "{argon2id}$argon2id$v=19$…"
//	ok, _ := enc.Matches("my-secret-password", stored)
//
// # Error discipline
//
// A payload its backend cannot parse fails closed: Matches returns
// (false, nil), because malformed-versus-wrong-password is not a
// distinction the login flow can act on.  An identifier that resolves to no
// backend is different — it means the dispatch table is misconfigured or a
// migration is incomplete — so Matches propagates [ErrUnmappedIdentifier]
// and callers must not count it as a failed password attempt.
//
// # Migration
//
// To move a population of hashes to a stronger backend, register both
// backends, point the encode identifier at the new one, and call
// [Encoder.UpgradeEncoding] after every successful login; re-encode and
// persist when it returns true.  Legacy backends must stay registered for
// as long as any stored credential references them.
package delegating
