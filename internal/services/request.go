package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/events"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/filestorage"
	"maintenance-system/pkg/types"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.RequestDTO, uint64, error)
	GetRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error)
	GetRequestLogs(ctx context.Context, id uint64) ([]dto.MaintenanceLogDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, createdBy uint64) (*dto.RequestDTO, error)
	UpdateRequest(ctx context.Context, id uint64, patch dto.UpdateRequestDTO) (*dto.RequestDTO, error)
	AssignTechnician(ctx context.Context, id uint64, payload dto.AssignTechnicianDTO, actingUser uint64) (*dto.RequestDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateStatusDTO, actingUser uint64) (*dto.RequestDTO, error)
	DeleteRequest(ctx context.Context, id uint64) error
}

// RequestService - движок жизненного цикла заявки. Каждое изменение статуса
// и назначения проходит через одну транзакцию вместе с записью журнала.
type RequestService struct {
	requestRepo    repositories.RequestRepositoryInterface
	logRepo        repositories.MaintenanceLogRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	attachmentRepo repositories.AttachmentRepositoryInterface
	txManager      repositories.TxManagerInterface
	bus            *eventbus.Bus
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	logRepo repositories.MaintenanceLogRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:    requestRepo,
		logRepo:        logRepo,
		equipmentRepo:  equipmentRepo,
		technicianRepo: technicianRepo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		bus:            bus,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.RequestDTO, uint64, error) {
	return s.requestRepo.GetRequests(ctx, filter)
}

func (s *RequestService) GetRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("заявка не найдена")
		}
		return nil, err
	}
	return request, nil
}

func (s *RequestService) GetRequestLogs(ctx context.Context, id uint64) ([]dto.MaintenanceLogDTO, error) {
	if _, err := s.GetRequest(ctx, id); err != nil {
		return nil, err
	}
	return s.logRepo.FindByRequestID(ctx, id)
}

// CreateRequest копирует команду и отдел из оборудования в момент создания;
// дальше заявка за оборудованием не следует.
func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, createdBy uint64) (*dto.RequestDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("оборудование не найдено")
		}
		return nil, err
	}

	if payload.TechnicianID != nil {
		technician, err := s.technicianRepo.FindTechnician(ctx, *payload.TechnicianID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("техник не найден")
			}
			return nil, err
		}
		// Команда заявки - это команда оборудования: техник обязан быть в ней.
		if technician.TeamID != equipment.TeamID {
			return nil, apperrors.NewBadRequestError("техник не состоит в команде заявки")
		}
	}

	priority := payload.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}

	request := &entities.MaintenanceRequest{
		Subject:       payload.Subject,
		Description:   payload.Description,
		RequestType:   payload.RequestType,
		Priority:      priority,
		EquipmentID:   equipment.ID,
		DepartmentID:  equipment.DepartmentID,
		TeamID:        equipment.TeamID,
		TechnicianID:  payload.TechnicianID,
		Status:        constants.StatusNew,
		ScheduledDate: payload.ScheduledDate,
		CreatedBy:     createdBy,
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.requestRepo.CreateRequestInTx(ctx, tx, request)
		if err != nil {
			return err
		}
		newID = id

		return s.logRepo.CreateInTx(ctx, tx, &entities.MaintenanceLog{
			RequestID: newID,
			OldStatus: nil,
			NewStatus: constants.StatusNew,
			ChangedBy: &createdBy,
			Notes:     "Request created",
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заявка создана",
		zap.Uint64("request_id", newID),
		zap.Uint64("equipment_id", equipment.ID),
	)
	return s.requestRepo.FindRequest(ctx, newID)
}

// UpdateRequest - частичное редактирование полей. Записи журнала нет:
// правка полей не является изменением статуса.
func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, patch dto.UpdateRequestDTO) (*dto.RequestDTO, error) {
	if err := s.requestRepo.UpdateRequest(ctx, id, patch); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("заявка не найдена")
		}
		return nil, err
	}
	return s.requestRepo.FindRequest(ctx, id)
}

func (s *RequestService) AssignTechnician(ctx context.Context, id uint64, payload dto.AssignTechnicianDTO, actingUser uint64) (*dto.RequestDTO, error) {
	technician, err := s.technicianRepo.FindTechnician(ctx, payload.TechnicianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("техник не найден")
		}
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.requestRepo.FindForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("заявка не найдена")
			}
			return err
		}

		if request.TeamID != technician.TeamID {
			return apperrors.NewBadRequestError("техник не состоит в команде заявки")
		}

		if err := s.requestRepo.AssignTechnicianInTx(ctx, tx, id, technician.ID); err != nil {
			return err
		}

		// Событие назначения, не смены статуса: old == new.
		return s.logRepo.CreateInTx(ctx, tx, &entities.MaintenanceLog{
			RequestID: id,
			OldStatus: &request.Status,
			NewStatus: request.Status,
			ChangedBy: &actingUser,
			Notes:     fmt.Sprintf("Assigned to technician %s", technician.Name),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.requestRepo.FindRequest(ctx, id)
}

func (s *RequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateStatusDTO, actingUser uint64) (*dto.RequestDTO, error) {
	if !constants.IsValidStatus(payload.Status) {
		return nil, apperrors.NewBadRequestError("недопустимый статус заявки")
	}

	var request *entities.MaintenanceRequest
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		request, err = s.requestRepo.FindForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("заявка не найдена")
			}
			return err
		}

		var duration *float64
		if payload.Status == constants.StatusRepaired {
			duration = payload.DurationHours
		}

		if err := s.requestRepo.UpdateStatusInTx(ctx, tx, id, payload.Status, duration); err != nil {
			return err
		}

		notes := ""
		if payload.Notes != nil {
			notes = *payload.Notes
		}
		if notes == "" {
			notes = fmt.Sprintf("Status changed to %s", payload.Status)
		}
		if duration != nil {
			notes = fmt.Sprintf("%s (%.1f h)", notes, *duration)
		}

		oldStatus := request.Status
		return s.logRepo.CreateInTx(ctx, tx, &entities.MaintenanceLog{
			RequestID: id,
			OldStatus: &oldStatus,
			NewStatus: payload.Status,
			ChangedBy: &actingUser,
			Notes:     notes,
		})
	})
	if err != nil {
		return nil, err
	}

	// Побочный эффект списания публикуется строго после коммита:
	// сбой слушателя не должен откатить переход статуса.
	if payload.Status == constants.StatusScrap {
		s.bus.Publish(ctx, events.RequestScrappedEvent{
			RequestID:   id,
			EquipmentID: request.EquipmentID,
			ChangedBy:   actingUser,
		})
	}

	return s.requestRepo.FindRequest(ctx, id)
}

// DeleteRequest - жесткое удаление. Журнал и строки вложений уходят каскадом
// на уровне схемы, файлы вложений подчищаются в лучшем случае.
func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	attachments, err := s.attachmentRepo.FindByRequestID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("заявка не найдена")
		}
		return err
	}

	for _, attachment := range attachments {
		if err := s.fileStorage.Delete(attachment.FilePath); err != nil {
			s.logger.Warn("Не удалось удалить файл вложения",
				zap.String("path", attachment.FilePath),
				zap.Error(err),
			)
		}
	}
	return nil
}
