package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
)

type MaintenanceLogRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.MaintenanceLog) error
	FindByRequestID(ctx context.Context, requestID uint64) ([]dto.MaintenanceLogDTO, error)
}

// MaintenanceLogRepository пишет в append-only журнал переходов.
// UPDATE/DELETE для maintenance_logs здесь нет сознательно: записи
// не изменяются, удаление - только каскад при удалении заявки.
type MaintenanceLogRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceLogRepository(storage *pgxpool.Pool) MaintenanceLogRepositoryInterface {
	return &MaintenanceLogRepository{storage: storage}
}

func (r *MaintenanceLogRepository) CreateInTx(ctx context.Context, tx pgx.Tx, log *entities.MaintenanceLog) error {
	query := `
		INSERT INTO maintenance_logs (request_id, old_status, new_status, changed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`
	_, err := tx.Exec(ctx, query,
		log.RequestID, log.OldStatus, log.NewStatus, log.ChangedBy, log.Notes)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал заявки: %w", err)
	}
	return nil
}

func (r *MaintenanceLogRepository) FindByRequestID(ctx context.Context, requestID uint64) ([]dto.MaintenanceLogDTO, error) {
	query := `
		SELECT l.id, l.request_id, l.old_status, l.new_status, l.changed_by, u.fio, l.notes, l.created_at
		FROM maintenance_logs l
		LEFT JOIN users u ON u.id = l.changed_by
		WHERE l.request_id = $1
		ORDER BY l.created_at ASC, l.id ASC`

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала заявки: %w", err)
	}
	defer rows.Close()

	logs := make([]dto.MaintenanceLogDTO, 0)
	for rows.Next() {
		var (
			item      dto.MaintenanceLogDTO
			oldStatus sql.NullString
			changedBy sql.NullInt64
			actorFio  sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.RequestID, &oldStatus, &item.NewStatus,
			&changedBy, &actorFio, &item.Notes, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}

		if oldStatus.Valid {
			item.OldStatus = &oldStatus.String
		}
		if changedBy.Valid {
			item.ChangedBy = &dto.ShortUserDTO{ID: uint64(changedBy.Int64), Fio: actorFio.String}
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		logs = append(logs, item)
	}
	return logs, rows.Err()
}
