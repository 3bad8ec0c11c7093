package identity

import (
	"authd/cmd/security/password"
)

// Password hashing is delegated to cmd/security/password as the single source
// of truth for cost and policy. identity re-exports the two operations the
// rest of the service needs so login and provisioning cannot drift apart.

// HashPassword returns a bcrypt hash of the plaintext using the env-driven
// cost and policy. Used only on provisioning paths (cmd/hashgen).
func HashPassword(plain string) (string, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return "", err
	}
	return cfg.Hash(plain)
}

// VerifyPassword checks a password against a stored bcrypt hash.
// A mismatch is (false, nil); errors indicate malformed hashes or
// operational failures.
func VerifyPassword(plain string, encodedHash string) (bool, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return false, err
	}
	return cfg.Verify(encodedHash, plain)
}
