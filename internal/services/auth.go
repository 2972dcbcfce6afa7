package services

import (
	"context"
	"errors"

	"fleet-rental/internal/dto"
	"fleet-rental/internal/repositories"
	apperrors "fleet-rental/pkg/errors"
	"fleet-rental/pkg/service"
	"fleet-rental/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, req dto.LoginDTO) (*dto.LoginResponseDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("login attempt for unknown user", zap.String("username", req.Username))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("login attempt with wrong password", zap.String("username", req.Username))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponseDTO{Token: token, Username: user.Username, Role: string(user.Role)}, nil
}
