// Package session implements authd's session and credential lifecycle.
//
// It owns the sessions table, the opaque token contract, the background
// reaper, and the login/logout/check orchestration exposed to the HTTP layer.
//
// Validity is decided at read time: a session is valid iff it exists and
// expires_at is still in the future. The reaper only bounds storage growth;
// it is never what rejects a stale token.
package session
