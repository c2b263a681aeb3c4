package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/clock"
	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// Errors
var (
	ErrNotInitialized     = errors.New("system not initialized")
	ErrAlreadyInitialized = errors.New("system already initialized")
	ErrWrongPassword      = errors.New("wrong password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// PasswordTooShortError reports the minimum length a new password missed.
// It matches ErrPasswordTooShort with errors.Is.
type PasswordTooShortError struct {
	Min int
}

func (e *PasswordTooShortError) Error() string {
	return fmt.Sprintf("password must be at least %d characters", e.Min)
}

func (e *PasswordTooShortError) Unwrap() error {
	return ErrPasswordTooShort
}

// Config holds configuration for the auth service
type Config struct {
	TokenTTL          time.Duration
	MinPasswordLength int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL:          24 * time.Hour,
		MinPasswordLength: 6,
	}
}

// Service handles the admin bootstrap, password authentication and bearer
// tokens. It keeps no state between calls: every token is verified by
// signature and expiry alone.
type Service struct {
	storage storage.Storage
	hasher  PasswordHasher
	tokens  TokenIssuer
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// New creates a new auth Service
func New(storage storage.Storage, hasher PasswordHasher, tokens TokenIssuer, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if cfg.MinPasswordLength == 0 {
		cfg.MinPasswordLength = defaults.MinPasswordLength
	}
	return &Service{
		storage: storage,
		hasher:  hasher,
		tokens:  tokens,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
}

// NeedsInit reports whether no admin has been created yet
func (s *Service) NeedsInit(ctx context.Context) (bool, error) {
	_, err := s.storage.GetAdmin(ctx)
	if errors.Is(err, model.ErrAdminNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// InitPassword creates the admin with the given password and returns a token.
// It only succeeds while no admin exists.
func (s *Service) InitPassword(ctx context.Context, password string) (string, error) {
	needsInit, err := s.NeedsInit(ctx)
	if err != nil {
		return "", err
	}
	if !needsInit {
		s.logger.Warn("init password rejected: already initialized")
		return "", ErrAlreadyInitialized
	}

	if err := s.checkPassword(password); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now()
	admin := &model.Admin{
		ID:            uuid.NewString(),
		PasswordHash:  hash,
		IsInitialized: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.CreateAdmin(ctx, admin); err != nil {
		// Lost a race with a concurrent bootstrap
		if errors.Is(err, model.ErrAdminExists) {
			return "", ErrAlreadyInitialized
		}
		return "", err
	}

	s.logger.Info("admin initialized", slog.String("admin_id", admin.ID))
	return s.issueToken(admin)
}

// Authenticate checks password against the admin and returns a fresh token
func (s *Service) Authenticate(ctx context.Context, password string) (string, error) {
	admin, err := s.verifyPassword(ctx, password)
	if err != nil {
		s.logger.Warn("authentication failed", slog.String("reason", err.Error()))
		return "", err
	}

	s.logger.Info("admin authenticated", slog.String("admin_id", admin.ID))
	return s.issueToken(admin)
}

// ChangePassword replaces the admin password after verifying the old one and
// returns a token for the updated admin
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error) {
	if err := s.checkPassword(newPassword); err != nil {
		return "", err
	}

	admin, err := s.verifyPassword(ctx, oldPassword)
	if err != nil {
		s.logger.Warn("password change rejected", slog.String("reason", err.Error()))
		return "", err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.storage.UpdateAdminPassword(ctx, hash, s.clock.Now()); err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return "", ErrNotInitialized
		}
		return "", err
	}

	s.logger.Info("admin password changed", slog.String("admin_id", admin.ID))
	return s.issueToken(admin)
}

// ConfirmPassword re-verifies the admin password before a destructive action
func (s *Service) ConfirmPassword(ctx context.Context, password string) error {
	_, err := s.verifyPassword(ctx, password)
	return err
}

// ValidateToken verifies a bearer token and returns the admin ID it was
// issued for
func (s *Service) ValidateToken(token string) (string, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// verifyPassword loads the admin and compares password with its hash
func (s *Service) verifyPassword(ctx context.Context, password string) (*model.Admin, error) {
	admin, err := s.storage.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}

	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, ErrWrongPassword
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return admin, nil
}

// checkPassword enforces the length limits on a new password
func (s *Service) checkPassword(password string) error {
	if utf8.RuneCountInString(password) < s.cfg.MinPasswordLength {
		return &PasswordTooShortError{Min: s.cfg.MinPasswordLength}
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func (s *Service) issueToken(admin *model.Admin) (string, error) {
	token, err := s.tokens.Issue(admin.ID, s.cfg.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
