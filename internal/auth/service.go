package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"venue-booking/internal/logger"
	"venue-booking/internal/models"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with a letter and a digit")
	ErrInvalidEmail       = errors.New("invalid email address")
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterRe = regexp.MustCompile(`[A-Za-z]`)
	digitRe  = regexp.MustCompile(`\d`)
)

type UserDBLayer interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type WelcomeMailer interface {
	SendWelcome(email, fullName string) error
}

type Service struct {
	DB       UserDBLayer
	Sessions *SessionCache
	Mailer   WelcomeMailer
	Logger   *logger.Logger
	secret   string
	tokenTTL time.Duration
}

func NewService(db UserDBLayer, sessions *SessionCache, mailer WelcomeMailer, log *logger.Logger, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		DB:       db,
		Sessions: sessions,
		Mailer:   mailer,
		Logger:   log,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Signup registers a new user with the plain user role and signs them in.
func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if !emailRe.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < 8 || !letterRe.MatchString(req.Password) || !digitRe.MatchString(req.Password) {
		return nil, ErrWeakPassword
	}

	if existing, err := s.DB.GetUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := s.DB.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Logger.LogSecurity("SIGNUP", fmt.Sprintf("new user %s", user.Email))

	if s.Mailer != nil {
		go func(email, name string) {
			if err := s.Mailer.SendWelcome(email, name); err != nil {
				s.Logger.Warn("EMAIL", fmt.Sprintf("welcome email failed for %s: %v", email, err))
			}
		}(user.Email, user.FullName)
	}

	return s.issueSession(ctx, user)
}

// Signin verifies credentials and issues a session token.
func (s *Service) Signin(ctx context.Context, req models.SigninRequest) (*models.AuthResponse, error) {
	user, err := s.DB.GetUserByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		s.Logger.LogSecurity("SIGNIN_FAILED", fmt.Sprintf("bad password for %s", req.Email))
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, *user)
}

// Profile returns the account behind an authenticated user id.
func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.DB.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}

// Signout revokes the session behind a raw token.
func (s *Service) Signout(ctx context.Context, rawToken string) error {
	claims, err := ParseToken(s.secret, rawToken)
	if err != nil {
		return err
	}
	return s.Sessions.Revoke(ctx, claims.ID)
}

func (s *Service) issueSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := IssueToken(s.secret, user.ID, user.Email, user.Role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Store(ctx, claims.ID, user.ID, expiresAt); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
