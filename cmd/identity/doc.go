// Package identity exposes authd's user principal and its lookup boundary.
//
// Users are provisioned out-of-band (schema tooling owns the users table);
// this package only reads them. Password hashing lives in
// cmd/security/password and is re-exported here so callers have a single
// import for credential checks.
package identity
