// Package password provides password hashing and verification for authd.
//
// It implements bcrypt hashing with a configurable cost factor and includes:
// - Configurable cost (via environment variables)
// - Password policy validation on the hashing path
// - Strict handling of stored hashes during Verify
//
// Security notes:
// - Hash strings are treated as untrusted input during Verify.
// - A mismatch is a result (false, nil), not an error; errors are reserved
//   for malformed hashes and operational failures.
package password
