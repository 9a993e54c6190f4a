package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/blenbot/flight-booking/internal/auth"
	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/blenbot/flight-booking/internal/repository"
)

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const resetCodeTTL = time.Hour

type UserUseCase interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	List(ctx context.Context) ([]domain.User, error)
}

type UserService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{repo: repo, tokens: tokens, logger: logger}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleCustomer,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed access token carrying
// the user id and role. Unknown email and wrong password are both
// reported as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}
	return s.repo.UpdateProfile(ctx, userID, name, email)
}

// ForgotPassword stores a short-lived 6-digit reset code for the account.
// The code is returned to the caller here because there is no outbound
// mail integration.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := s.repo.SetResetCode(ctx, email, code, time.Now().Add(resetCodeTTL)); err != nil {
		return "", err
	}
	s.logger.Info("password reset code generated", "email", email)
	return code, nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.ResetPassword(ctx, email, code, hash)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

var _ UserUseCase = (*UserService)(nil)
