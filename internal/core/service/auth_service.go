package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/pkg/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates an account and logs it in. Credentials that already
// authenticate are reported as a duplicate signup.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	if _, err := s.authenticate(ctx, email, password); err == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		return "", nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrInvalidCredentials) {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		return "", nil, domain.ErrDuplicateEmail
	case err != nil:
		s.log.Error().Err(err).Str("email", email).Msg("user creation failed")
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", nil, domain.ErrUserCreation
	case created == nil || created.ID == "":
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", nil, domain.ErrUserCreation
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	return s.Login(ctx, email, password)
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return "", nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.tokens.Issue(ports.Identity{UserID: user.ID})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token signing failed")
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return token, user, nil
}

// authenticate returns domain.ErrInvalidCredentials for an unknown email or
// a wrong password; any other error comes from the directory or the hasher.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored password hash is unusable")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
