package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-shop/models"
	"go-shop/repository"
	"go-shop/utils"
)

// AuthConfig holds the knobs for the account flows.
type AuthConfig struct {
	// BaseURL is the externally reachable prefix for verification and
	// password reset links.
	BaseURL string
	// VerificationTokenTTL bounds one-shot action links.
	VerificationTokenTTL time.Duration
	// SessionTokenTTL bounds bearer tokens issued on login.
	SessionTokenTTL time.Duration
}

// AuthService covers registration, login, verification, password reset,
// logout, and profile management.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) error
}

type authService struct {
	users  repository.UserRepository
	tokens TokenService
	mailer utils.Notifier
	logger *zap.SugaredLogger
	config AuthConfig
}

// NewAuthService wires the account flows. A nil mailer disables outgoing
// mail (useful in tests); everything else behaves the same.
func NewAuthService(
	users repository.UserRepository,
	tokens TokenService,
	mailer utils.Notifier,
	logger *zap.SugaredLogger,
	config AuthConfig,
) AuthService {
	if config.VerificationTokenTTL == 0 {
		config.VerificationTokenTTL = time.Hour
	}
	if config.SessionTokenTTL == 0 {
		config.SessionTokenTTL = 24 * time.Hour
	}
	return &authService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		logger: logger,
		config: config,
	}
}

// Register creates an unverified account and mails a one-shot
// verification link. Duplicate emails fail with ErrAlreadyExists and
// mutate nothing.
func (s *authService) Register(ctx context.Context, email, password string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleUser,
		Verified:  false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return err
	}

	s.sendVerificationMail(email)
	return nil
}

// VerifyEmail consumes a one-shot verification link. Verifying an
// already verified account is a no-op.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.Verified {
		return nil
	}

	return s.users.SetVerified(ctx, email)
}

// Login checks credentials and returns a session token carrying role and
// verification state. An unverified account gets a fresh verification
// mail and ErrEmailNotVerified instead of a token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.Verified {
		s.sendVerificationMail(user.Email)
		return "", ErrEmailNotVerified
	}

	return s.tokens.Issue(user.Email, s.config.SessionTokenTTL, user.Role, true)
}

// ForgotPassword mails a one-shot reset link to a known account.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	token, err := s.tokens.Issue(email, s.config.VerificationTokenTTL, models.RoleUser, false)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/reset-password/%s", s.config.BaseURL, token)
	expiresAt := time.Now().UTC().Add(s.config.VerificationTokenTTL)
	subject, text, html := utils.PasswordResetMail(link, expiresAt)
	s.sendMail(email, subject, text, html)
	return nil
}

// ResetPassword consumes a reset link and stores a fresh hash.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.SetPassword(ctx, email, string(hash))
}

// Logout revokes the presented session token.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *authService) Profile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Password = ""
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) error {
	if update.Empty() {
		return ErrNothingToUpdate
	}

	matched, err := s.users.UpdateProfile(ctx, email, update)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (s *authService) sendVerificationMail(email string) {
	token, err := s.tokens.Issue(email, s.config.VerificationTokenTTL, models.RoleUser, false)
	if err != nil {
		s.logger.Errorw("failed to issue verification token", "email", email, "error", err)
		return
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.config.BaseURL, token)
	expiresAt := time.Now().UTC().Add(s.config.VerificationTokenTTL)
	subject, text, html := utils.VerificationMail(link, expiresAt)
	s.sendMail(email, subject, text, html)
}

// sendMail delivers asynchronously; failures are logged and never reach
// the caller.
func (s *authService) sendMail(recipient, subject, text, html string) {
	if s.mailer == nil {
		return
	}
	go func() {
		if err := s.mailer.Send(recipient, subject, text, html); err != nil {
			s.logger.Errorw("failed to send email", "recipient", recipient, "subject", subject, "error", err)
		}
	}()
}
