package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

const (
	// DefaultSessionTTL is how long a freshly minted session lives.
	DefaultSessionTTL = 4 * time.Hour

	// DefaultLoginDelay is the minimum response latency for failed
	// authentication attempts, blunting brute-force probing.
	DefaultLoginDelay = time.Second

	tokenBytes = 32
)

// SessionConfig configures the session manager. Secret may be the raw
// admin password or a bcrypt hash of it (detected by prefix).
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	LoginDelay time.Duration
	UserID     string
}

// SessionService issues, validates, extends and expires the bearer tokens
// gating all mutating operations.
type SessionService interface {
	Authenticate(ctx context.Context, password string) (*dto.LoginResponse, error)
	Validate(ctx context.Context, token string) (*dto.ValidateResponse, error)
	Invalidate(ctx context.Context, token string) error
	Extend(ctx context.Context, token string) (time.Time, error)
	CleanupExpired(ctx context.Context) (int64, error)
	ActiveSessions(ctx context.Context, userID string) ([]dto.SessionInfo, error)
	Stats(ctx context.Context) (*dto.SessionStats, error)

	// VerifyCredential grants mutation rights when the credential is
	// either the raw configured secret or a valid session token.
	VerifyCredential(ctx context.Context, credential string) error
}

type sessionService struct {
	repo   repository.SessionRepository
	cfg    SessionConfig
	logger *zap.Logger
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewSessionService builds the session manager. Zero config values fall
// back to the defaults above.
func NewSessionService(repo repository.SessionRepository, cfg SessionConfig, logger *zap.Logger) SessionService {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.LoginDelay <= 0 {
		cfg.LoginDelay = DefaultLoginDelay
	}
	if cfg.UserID == "" {
		cfg.UserID = "admin"
	}
	return &sessionService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// secretMatches compares the supplied password against the configured
// secret, supporting both plaintext (constant-time) and bcrypt hashes.
func (s *sessionService) secretMatches(password string) bool {
	if strings.HasPrefix(s.cfg.Secret, "$2a$") || strings.HasPrefix(s.cfg.Secret, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Secret), []byte(password)) == 1
}

// failSlow pads the elapsed time of a failed comparison up to the
// configured minimum latency before returning.
func (s *sessionService) failSlow(start time.Time) {
	if remaining := s.cfg.LoginDelay - time.Since(start); remaining > 0 {
		s.sleep(remaining)
	}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *sessionService) Authenticate(ctx context.Context, password string) (*dto.LoginResponse, error) {
	if s.cfg.Secret == "" {
		return nil, ErrUnconfigured
	}

	start := time.Now()
	if !s.secretMatches(password) {
		s.failSlow(start)
		s.logger.Warn("failed admin login attempt")
		return nil, ErrInvalidPassword
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.AdminSession{
		Token:     token,
		UserID:    s.cfg.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	if _, err := s.repo.Insert(ctx, session); err != nil {
		return nil, err
	}

	// Opportunistic sweep; expiry is otherwise evaluated lazily.
	if deleted, err := s.repo.DeleteExpired(ctx, now); err != nil {
		s.logger.Warn("expired session cleanup failed", zap.Error(err))
	} else if deleted > 0 {
		s.logger.Info("expired sessions cleaned up", zap.Int64("count", deleted))
	}

	s.logger.Info("admin session created", zap.String("userId", session.UserID))
	return &dto.LoginResponse{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*dto.ValidateResponse, error) {
	session, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &dto.ValidateResponse{Valid: false, Reason: "Session not found"}, nil
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		return &dto.ValidateResponse{Valid: false, Reason: "Session expired"}, nil
	}
	return &dto.ValidateResponse{
		Valid: true,
		Session: &dto.SessionInfo{
			UserID:    session.UserID,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
		},
	}, nil
}

func (s *sessionService) Invalidate(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}

// Extend pushes out the deadline of a still-active session without
// changing its token. An expired session cannot be resurrected.
func (s *sessionService) Extend(ctx context.Context, token string) (time.Time, error) {
	session, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, ErrSessionNotFound
		}
		return time.Time{}, err
	}
	now := s.now()
	if session.Expired(now) {
		return time.Time{}, ErrSessionExpired
	}

	newExpiresAt := now.Add(s.cfg.TTL)
	if err := s.repo.UpdateExpiry(ctx, session.ID, newExpiresAt); err != nil {
		return time.Time{}, err
	}
	return newExpiresAt, nil
}

func (s *sessionService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

func (s *sessionService) ActiveSessions(ctx context.Context, userID string) ([]dto.SessionInfo, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	infos := make([]dto.SessionInfo, 0, len(sessions))
	for i := range sessions {
		if sessions[i].Expired(now) {
			continue
		}
		infos = append(infos, dto.SessionInfo{
			UserID:    sessions[i].UserID,
			CreatedAt: sessions[i].CreatedAt,
			ExpiresAt: sessions[i].ExpiresAt,
		})
	}
	return infos, nil
}

func (s *sessionService) Stats(ctx context.Context) (*dto.SessionStats, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	stats := &dto.SessionStats{Total: len(sessions)}
	for i := range sessions {
		if sessions[i].Expired(now) {
			stats.Expired++
			continue
		}
		stats.Active++
		created := sessions[i].CreatedAt
		if stats.OldestActive == nil || created.Before(*stats.OldestActive) {
			t := created
			stats.OldestActive = &t
		}
		if stats.NewestActive == nil || created.After(*stats.NewestActive) {
			t := created
			stats.NewestActive = &t
		}
	}
	return stats, nil
}

func (s *sessionService) VerifyCredential(ctx context.Context, credential string) error {
	if s.cfg.Secret == "" {
		return ErrUnconfigured
	}
	if credential == "" {
		return ErrUnauthorized
	}
	if s.secretMatches(credential) {
		return nil
	}
	result, err := s.Validate(ctx, credential)
	if err != nil {
		return err
	}
	if !result.Valid {
		return ErrUnauthorized
	}
	return nil
}
