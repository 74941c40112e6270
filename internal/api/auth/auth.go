// Package auth signs users in and out and resolves bearer tokens to an
// identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/google/uuid"
)

// DefaultMinPasswordLength applies when Config leaves it zero.
const DefaultMinPasswordLength = 6

// Config holds Service dependencies.
type Config struct {
	Directory         *Directory
	Sessions          SessionStore
	Logger            *slog.Logger
	MinPasswordLength int
	Clock             func() time.Time
}

// Session is what a successful login or registration hands back.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterInput is a sign-up request.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Role            domain.Role
	CompanyName     string
}

// ProfilePatch updates the listed profile fields of the signed-in user.
type ProfilePatch struct {
	FullName    *string
	CompanyName *string
	Avatar      *string
}

type Service struct {
	directory *Directory
	sessions  SessionStore
	logger    *slog.Logger
	minPass   int
	now       func() time.Time
	newToken  func() string
}

func New(cfg *Config) *Service {
	s := &Service{
		directory: cfg.Directory,
		sessions:  cfg.Sessions,
		logger:    cfg.Logger,
		minPass:   cfg.MinPasswordLength,
		now:       cfg.Clock,
		newToken:  func() string { return uuid.New().String() },
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.minPass <= 0 {
		s.minPass = DefaultMinPasswordLength
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Login checks the credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, ok := s.directory.Verify(email, password)
	if !ok {
		s.logger.Info("Login rejected", slog.String("email", normalizeEmail(email)))
		return nil, domain.AuthFailed("Invalid email or password", nil)
	}
	return s.open(ctx, user)
}

// Register validates in, creates the account and opens a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validation("A valid email is required", nil)
	}
	if fullName == "" {
		return nil, domain.Validation("Full name is required", nil)
	}
	role, err := domain.ParseRole(string(in.Role))
	if err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.Validation("Passwords do not match", nil)
	}
	if len(in.Password) < s.minPass {
		return nil, domain.Validation(fmt.Sprintf("Password must be at least %d characters", s.minPass), nil)
	}

	user := domain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      role,
		FullName:  fullName,
		CreatedAt: s.now(),
	}
	if role == domain.RoleCompany {
		user.CompanyName = strings.TrimSpace(in.CompanyName)
		if user.CompanyName == "" {
			user.CompanyName = fullName
		}
	}

	if err := s.directory.Add(user, in.Password); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			return nil, err
		}
		return nil, domain.Submission("Registration failed. Please try again.", err)
	}

	s.logger.Info("User registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(role)),
	)
	return s.open(ctx, &user)
}

func (s *Service) open(ctx context.Context, user *domain.User) (*Session, error) {
	token := s.newToken()
	if err := s.sessions.Save(ctx, token, user); err != nil {
		s.logger.Error("Failed to persist session",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, domain.Submission("Login failed. Please try again.", err)
	}
	return &Session{Token: token, User: user}, nil
}

// Logout removes both keys of the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return domain.Submission("Logout failed. Please try again.", err)
	}
	return nil
}

// Restore resolves token to an identity. A corrupt record is cleared.
func (s *Service) Restore(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Anonymous(), domain.AuthRequired("Please login to continue.", nil)
	}

	user, err := s.sessions.Load(ctx, token)
	switch {
	case err == nil:
		return domain.Authenticated(user), nil
	case errors.Is(err, ErrNoSession):
		return domain.Anonymous(), domain.AuthRequired("Please login to continue.", nil)
	case errors.Is(err, ErrCorruptSession):
		s.logger.Warn("Discarding corrupt session", slog.String("error", err.Error()))
		if derr := s.sessions.Delete(ctx, token); derr != nil {
			s.logger.Error("Failed to delete corrupt session", slog.String("error", derr.Error()))
		}
		return domain.Anonymous(), domain.AuthRequired("Please login to continue.", err)
	default:
		return domain.Anonymous(), domain.Fetch("Failed to restore session", err)
	}
}

// UpdateProfile merges patch into the session user and the stored account.
func (s *Service) UpdateProfile(ctx context.Context, token string, patch ProfilePatch) (*domain.User, error) {
	who, err := s.Restore(ctx, token)
	if err != nil {
		return nil, err
	}
	user := *who.User

	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		if name == "" {
			return nil, domain.Validation("Full name is required", nil)
		}
		user.FullName = name
	}
	if patch.CompanyName != nil && user.Role == domain.RoleCompany {
		user.CompanyName = strings.TrimSpace(*patch.CompanyName)
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}

	if err := s.sessions.Save(ctx, token, &user); err != nil {
		return nil, domain.Submission("Failed to update profile", err)
	}
	if err := s.directory.Update(user); err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, domain.Submission("Failed to update profile", err)
	}
	return &user, nil
}
