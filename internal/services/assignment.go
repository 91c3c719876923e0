package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

type AssignmentServiceInterface interface {
	AcceptRequest(ctx context.Context, userID uint64, requestID uint64) (*dto.RequestDTO, error)
	TeamQueue(ctx context.Context, userID uint64, filters dto.TeamQueueFilterDTO) ([]dto.RequestDTO, uint64, error)
	TechnicianStats(ctx context.Context, userID uint64) (*types.TechnicianStats, error)
}

// AssignmentService - self-service слой техника поверх движка заявок:
// очередь команды, самостоятельный прием заявки, личная статистика.
type AssignmentService struct {
	requestRepo    repositories.RequestRepositoryInterface
	logRepo        repositories.MaintenanceLogRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	dashboardRepo  repositories.DashboardRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewAssignmentService(
	requestRepo repositories.RequestRepositoryInterface,
	logRepo repositories.MaintenanceLogRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	dashboardRepo repositories.DashboardRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) AssignmentServiceInterface {
	return &AssignmentService{
		requestRepo:    requestRepo,
		logRepo:        logRepo,
		technicianRepo: technicianRepo,
		dashboardRepo:  dashboardRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// AcceptRequest - прием заявки техником из очереди своей команды.
// Сама заявка захватывается одним условным UPDATE: проверка "свободна или
// уже моя" и запись идут одним оператором, окна между ними нет. Повторный
// прием своей же заявки идемпотентен, но запись в журнал добавляется.
func (s *AssignmentService) AcceptRequest(ctx context.Context, userID uint64, requestID uint64) (*dto.RequestDTO, error) {
	technician, err := s.resolveTechnician(ctx, userID)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("заявка не найдена")
		}
		return nil, err
	}

	if request.Team.ID != technician.TeamID {
		return nil, apperrors.NewForbiddenError("this request belongs to a different team")
	}
	if request.Technician != nil && request.Technician.ID != technician.ID {
		return nil, apperrors.NewConflictError("already assigned to another technician")
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		claimed, err := s.requestRepo.ClaimInTx(ctx, tx, requestID, technician.ID)
		if err != nil {
			return err
		}
		if !claimed {
			// Предварительная проверка прошла, но гонку выиграл другой техник.
			return apperrors.NewConflictError("already assigned to another technician")
		}

		fresh, err := s.requestRepo.FindForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}

		return s.logRepo.CreateInTx(ctx, tx, &entities.MaintenanceLog{
			RequestID: requestID,
			OldStatus: &fresh.Status,
			NewStatus: fresh.Status,
			ChangedBy: &userID,
			Notes:     fmt.Sprintf("Accepted by technician %s", technician.Name),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Техник принял заявку",
		zap.Uint64("request_id", requestID),
		zap.Uint64("technician_id", technician.ID),
	)
	return s.requestRepo.FindRequest(ctx, requestID)
}

func (s *AssignmentService) TeamQueue(ctx context.Context, userID uint64, filters dto.TeamQueueFilterDTO) ([]dto.RequestDTO, uint64, error) {
	technician, err := s.resolveTechnician(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.requestRepo.GetTeamQueue(ctx, technician.TeamID, filters)
}

func (s *AssignmentService) TechnicianStats(ctx context.Context, userID uint64) (*types.TechnicianStats, error) {
	technician, err := s.resolveTechnician(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetTechnicianStats(ctx, technician.ID)
}

func (s *AssignmentService) resolveTechnician(ctx context.Context, userID uint64) (*entities.Technician, error) {
	technician, err := s.technicianRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("technician profile not found")
		}
		return nil, err
	}
	return technician, nil
}
