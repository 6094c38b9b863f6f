package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/giftlink/internal/domain/entity"
	repo "github.com/oksasatya/giftlink/internal/domain/repository"
	"github.com/oksasatya/giftlink/pkg/helpers"
	"github.com/oksasatya/giftlink/pkg/mailer"
	mailtpl "github.com/oksasatya/giftlink/pkg/mailer/templates"
	"github.com/oksasatya/giftlink/pkg/validation"
)

// AuthService owns registration, login and profile updates.
type AuthService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	BcryptCost int

	// Optional welcome email delivery.
	Mail        EmailQueue
	CompanyName string
	AppURL      string

	validate *validator.Validate
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, bcryptCost int) *AuthService {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &AuthService{
		Repo:       repo,
		JWT:        jwt,
		Logger:     logger,
		BcryptCost: bcryptCost,
		validate:   validation.New(),
	}
}

// WithWelcomeEmail enables the welcome email sent after registration.
func (s *AuthService) WithWelcomeEmail(q EmailQueue, companyName, appURL string) *AuthService {
	s.Mail = q
	s.CompanyName = companyName
	s.AppURL = appURL
	return s
}

type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"pwd"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type UpdateProfileInput struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

// AuthResult is returned by every operation that issues a session token.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Email     string
	FirstName string
}

// Register creates a user and issues a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, newValidationError(err)
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		s.Logger.WithField("email", in.Email).Warn("attempt to register with existing email")
		return nil, ErrDuplicateUser
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// lost a concurrent registration race; the unique index caught it
		if errors.Is(err, repo.ErrDuplicate) {
			s.Logger.WithField("email", in.Email).Warn("duplicate email rejected by store")
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.sendWelcome(ctx, u)
	s.Logger.WithFields(logrus.Fields{"email": u.Email, "user_id": res.UserID}).Info("user registered")
	return res, nil
}

// Login verifies email/password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithField("email", email).Error("login failed: user not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		s.Logger.WithField("email", email).Error("login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("email", email).Info("user logged in")
	return res, nil
}

// UpdateProfile renames the user identified by email and issues a fresh token.
func (s *AuthService) UpdateProfile(ctx context.Context, email, name string) (*AuthResult, error) {
	in := UpdateProfileInput{Email: email, Name: name}
	if err := s.validate.Struct(in); err != nil {
		return nil, newValidationError(err)
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithField("email", email).Error("update failed: user not found")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	u, err := s.Repo.UpdateFirstName(ctx, email, name)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithField("email", email).Error("user update failed")
			return nil, ErrUpdateFailed
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("email", email).Info("user updated")
	return res, nil
}

// UpdateOwnProfile is UpdateProfile for an authenticated caller: the email
// must belong to the user the session token was issued for.
func (s *AuthService) UpdateOwnProfile(ctx context.Context, callerID, email, name string) (*AuthResult, error) {
	in := UpdateProfileInput{Email: email, Name: name}
	if err := s.validate.Struct(in); err != nil {
		return nil, newValidationError(err)
	}
	caller, err := s.GetProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(caller.Email, email) {
		s.Logger.WithFields(logrus.Fields{"user_id": callerID, "email": email}).Warn("update rejected: email does not match session")
		return nil, ErrForbidden
	}
	return s.UpdateProfile(ctx, caller.Email, name)
}

// GetProfile returns the user a session token was issued for.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	uid := u.ID.Hex()
	token, exp, err := s.JWT.GenerateToken(uid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", uid).Error("generate token failed")
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, UserID: uid, Email: u.Email, FirstName: u.FirstName}, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.CompanyName, s.AppURL, u.FirstName, u.Email),
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}
