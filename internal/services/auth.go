package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	pkgservice "maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

const (
	maxLoginAttempts     = 5
	loginAttemptsWindow  = 15 * time.Minute
	tooManyAttemptsError = "слишком много попыток входа, попробуйте позже"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.ProfileDTO, error)
}

type AuthService struct {
	userRepo       repositories.UserRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	jwtService     pkgservice.JWTService
	logger         *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService pkgservice.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:       userRepo,
		technicianRepo: technicianRepo,
		cacheRepo:      cacheRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Login проверяет пару логин/пароль и выдает пару токенов.
// Счетчик неудачных попыток живет в Redis с окном в 15 минут.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, payload.Login)

	user, err := s.userRepo.FindByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("неверный логин или пароль")
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		attempts, cacheErr := s.cacheRepo.Incr(ctx, attemptsKey)
		if cacheErr == nil {
			_ = s.cacheRepo.Set(ctx, attemptsKey, attempts, loginAttemptsWindow)
			if attempts >= maxLoginAttempts {
				s.logger.Warn("Превышен лимит попыток входа", zap.String("login", payload.Login))
				return nil, apperrors.NewHttpError(429, tooManyAttemptsError, nil)
			}
		}
		return nil, apperrors.NewUnauthorizedError("неверный логин или пароль")
	}

	_ = s.cacheRepo.Del(ctx, attemptsKey)

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("не удалось выдать токены: %w", err)
	}

	s.logger.Info("Пользователь вошел в систему", zap.Uint64("user_id", user.ID))
	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Роль перечитываем из базы: она могла измениться после выдачи токена.
	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("не удалось обновить токены: %w", err)
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("пользователь не найден")
		}
		return nil, err
	}

	profile := &dto.ProfileDTO{
		ID:   user.ID,
		Fio:  user.Fio,
		Role: user.Role,
	}

	technician, err := s.technicianRepo.FindByUserID(ctx, userID)
	if err == nil {
		profile.Technician = &dto.ShortTechnicianDTO{
			ID:     technician.ID,
			TeamID: technician.TeamID,
			Name:   technician.Name,
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return profile, nil
}
