package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	GetEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{equipmentRepo: equipmentRepo, logger: logger}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) GetEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("оборудование не найдено")
		}
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error) {
	newID, err := s.equipmentRepo.CreateEquipment(ctx, payload)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Оборудование создано", zap.Uint64("equipment_id", newID))
	return newID, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	if err := s.equipmentRepo.UpdateEquipment(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("оборудование не найдено")
		}
		return err
	}
	return nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("оборудование не найдено")
		}
		return err
	}
	return nil
}
