package services

import (
	"context"
	"errors"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type TechnicianServiceInterface interface {
	GetTechnicians(ctx context.Context, limit uint64, offset uint64) ([]dto.TechnicianDTO, uint64, error)
	CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (uint64, error)
	UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) error
	DeleteTechnician(ctx context.Context, id uint64) error
}

type TechnicianService struct {
	technicianRepo repositories.TechnicianRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	teamRepo       repositories.TeamRepositoryInterface
}

func NewTechnicianService(
	technicianRepo repositories.TechnicianRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
) TechnicianServiceInterface {
	return &TechnicianService{
		technicianRepo: technicianRepo,
		userRepo:       userRepo,
		teamRepo:       teamRepo,
	}
}

func (s *TechnicianService) GetTechnicians(ctx context.Context, limit uint64, offset uint64) ([]dto.TechnicianDTO, uint64, error) {
	return s.technicianRepo.GetTechnicians(ctx, limit, offset)
}

func (s *TechnicianService) CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (uint64, error) {
	if _, err := s.userRepo.FindUser(ctx, payload.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewNotFoundError("пользователь не найден")
		}
		return 0, err
	}
	if _, err := s.teamRepo.FindTeam(ctx, payload.TeamID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewNotFoundError("команда не найдена")
		}
		return 0, err
	}
	return s.technicianRepo.CreateTechnician(ctx, payload)
}

// UpdateTechnician - перевод в другую команду. Уже назначенные заявки
// остаются за техником: журнал важнее симметрии членства.
func (s *TechnicianService) UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) error {
	if payload.TeamID != nil {
		if _, err := s.teamRepo.FindTeam(ctx, *payload.TeamID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("команда не найдена")
			}
			return err
		}
	}
	if err := s.technicianRepo.UpdateTechnician(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("техник не найден")
		}
		return err
	}
	return nil
}

func (s *TechnicianService) DeleteTechnician(ctx context.Context, id uint64) error {
	if err := s.technicianRepo.DeleteTechnician(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("техник не найден")
		}
		return err
	}
	return nil
}
