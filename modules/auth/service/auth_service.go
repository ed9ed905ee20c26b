package service

import (
	"context"

	"gestimmo-api/core/config"
	"gestimmo-api/core/errors"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/utils"
	"gestimmo-api/modules/auth/dto"
	"gestimmo-api/modules/auth/entity"
	"gestimmo-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration and login.
type AuthService struct {
	repo repository.UserRepositoryInterface
	cfg  *config.Config
}

// AuthServiceInterface defines the service contract.
type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

func NewAuthService(repo repository.UserRepositoryInterface, cfg *config.Config) AuthServiceInterface {
	return &AuthService{repo: repo, cfg: cfg}
}

// Register creates a new account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check account", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Un compte existe déjà avec cette adresse email", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         entity.UserRole(req.Role),
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create account", err)
	}

	logger.Info("AuthService:Register:Success", "user_id", created.ID, "role", created.Role)
	return s.buildAuthResponse(created)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load account", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Email ou mot de passe incorrect", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Email ou mot de passe incorrect", nil)
	}

	return s.buildAuthResponse(user)
}

// Me returns the authenticated account.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load account", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Compte introuvable", nil)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, *errors.AppError) {
	token, err := utils.GenerateToken(user.ID, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to sign token", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}
