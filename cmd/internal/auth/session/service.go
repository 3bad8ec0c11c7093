package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"authd/cmd/identity"
)

// Service implements the high-level auth operations for authd.
//
// It orchestrates the credential verifier and the session store to provide
// login, logout, and session checks. It is the only surface the transport
// layer talks to; it translates store and verifier outcomes into the generic
// error categories the API is allowed to expose.
type Service struct {
	cfg      Config
	log      *slog.Logger
	users    identity.Store
	sessions Store

	// dummyHash is verified against when the username does not exist, so the
	// unknown-user path costs the same as the wrong-password path.
	dummyHash string
}

// NewService constructs a Service with the provided configuration and stores.
func NewService(cfg Config, log *slog.Logger, users identity.Store, sessions Store) (*Service, error) {
	if users == nil {
		return nil, errors.New("session: nil user store")
	}
	if sessions == nil {
		return nil, errors.New("session: nil session store")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Service{cfg: cfg, log: log, users: users, sessions: sessions}

	if hash, err := identity.HashPassword("dummy-password-for-timing-only"); err == nil {
		s.dummyHash = hash
	}

	return s, nil
}

// storeCtx bounds a store call with the configured timeout.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

// Login verifies the credential pair and mints a session on success.
//
// Unknown usernames and wrong passwords both return ErrInvalidCredentials;
// only a store or verifier failure surfaces as a distinct internal error,
// in which case the user must not be considered logged in.
func (s *Service) Login(ctx context.Context, now time.Time, username, password string) (Session, identity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, identity.User{}, ErrInvalidCredentials
	}

	lctx, cancel := s.storeCtx(ctx)
	user, err := s.users.GetByUsername(lctx, username)
	cancel()
	if err != nil {
		if identity.IsNotFound(err) {
			if s.dummyHash != "" {
				_, _ = identity.VerifyPassword(password, s.dummyHash)
			}
			return Session{}, identity.User{}, ErrInvalidCredentials
		}
		return Session{}, identity.User{}, fmt.Errorf("login user lookup: %w", err)
	}

	ok, err := identity.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return Session{}, identity.User{}, fmt.Errorf("login verify: %w", err)
	}
	if !ok {
		return Session{}, identity.User{}, ErrInvalidCredentials
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	sess, err := s.sessions.Create(cctx, now, user.ID, s.cfg.TTL)
	if err != nil {
		return Session{}, identity.User{}, fmt.Errorf("login create session: %w", err)
	}

	s.log.Info("auth.login.ok", "user_id", user.ID)
	return sess, user, nil
}

// Logout deletes the session behind the token. It is idempotent: an empty
// token, an unknown token, and a repeat logout all succeed as no-ops.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	dctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.sessions.Delete(dctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Check reports whether the token is backed by a live session.
//
// A missing, malformed, expired, or deleted token all yield
// ErrNotAuthenticated; the caller cannot distinguish the causes.
func (s *Service) Check(ctx context.Context, now time.Time, token string) (Session, identity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(token) > maxTokenLen {
		return Session{}, identity.User{}, ErrNotAuthenticated
	}

	lctx, cancel := s.storeCtx(ctx)
	sess, err := s.sessions.Lookup(lctx, token, now)
	cancel()
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Session{}, identity.User{}, ErrNotAuthenticated
		}
		return Session{}, identity.User{}, fmt.Errorf("check lookup: %w", err)
	}

	uctx, cancel := s.storeCtx(ctx)
	defer cancel()
	user, err := s.users.GetByID(uctx, sess.UserID)
	if err != nil {
		if identity.IsNotFound(err) {
			// Session outlived its user; treat like any dead token.
			return Session{}, identity.User{}, ErrNotAuthenticated
		}
		return Session{}, identity.User{}, fmt.Errorf("check user lookup: %w", err)
	}

	return sess, user, nil
}

// maxTokenLen bounds pathological inputs before they reach the store.
const maxTokenLen = 256
