package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"moji-backend/application/ports"
	"moji-backend/domain/user"
	"moji-backend/pkg/auth"
	apperrors "moji-backend/pkg/errors"
	"moji-backend/pkg/utils"
)

const bcryptCost = 10

// AuthService handles registration, login and profile reads.
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.Service
	logger *zap.Logger
}

func NewAuthService(users ports.UserRepository, tokens *auth.Service, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// RegisterInput carries the registration fields.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Nickname string `json:"nickname" validate:"max=50"`
}

// LoginInput carries the login fields.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is the user plus their session token.
type AuthResult struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates an account. Username and email must both be unused.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if _, err := s.users.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.NewConflictError("username already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflictError("email already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password").WithCause(err)
	}

	nickname := in.Nickname
	if nickname == "" {
		nickname = in.Username
	}

	u := &user.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Nickname:     nickname,
	}
	if _, err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("user registered", zap.Int64("userId", u.ID), zap.String("username", u.Username))
	return &AuthResult{User: u, Token: token}, nil
}

// Login verifies credentials and issues a token. Wrong username and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	u, err := s.users.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorizedError("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token").WithCause(err)
	}

	return &AuthResult{User: u, Token: token}, nil
}

// Profile returns the authenticated user's account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*user.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
