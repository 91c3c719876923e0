package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

type TechnicianRepositoryInterface interface {
	GetTechnicians(ctx context.Context, limit uint64, offset uint64) ([]dto.TechnicianDTO, uint64, error)
	FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error)
	FindByUserID(ctx context.Context, userID uint64) (*entities.Technician, error)
	CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (uint64, error)
	UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) error
	DeleteTechnician(ctx context.Context, id uint64) error
}

type TechnicianRepository struct {
	storage *pgxpool.Pool
}

func NewTechnicianRepository(storage *pgxpool.Pool) TechnicianRepositoryInterface {
	return &TechnicianRepository{storage: storage}
}

func (r *TechnicianRepository) GetTechnicians(ctx context.Context, limit uint64, offset uint64) ([]dto.TechnicianDTO, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM technicians`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета техников: %w", err)
	}

	query := `
		SELECT t.id, t.user_id, u.fio, t.team_id, tm.name, t.created_at
		FROM technicians t
		JOIN users u ON u.id = t.user_id
		JOIN teams tm ON tm.id = t.team_id
		ORDER BY u.fio ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка техников: %w", err)
	}
	defer rows.Close()

	technicians := make([]dto.TechnicianDTO, 0)
	for rows.Next() {
		var (
			item      dto.TechnicianDTO
			createdAt time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.User.ID, &item.User.Fio,
			&item.Team.ID, &item.Team.Name, &createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования техника: %w", err)
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		technicians = append(technicians, item)
	}
	return technicians, total, rows.Err()
}

func (r *TechnicianRepository) FindTechnician(ctx context.Context, id uint64) (*entities.Technician, error) {
	return r.findBy(ctx, "t.id", id)
}

// FindByUserID разрешает профиль техника для действующего пользователя:
// вход в self-service слой.
func (r *TechnicianRepository) FindByUserID(ctx context.Context, userID uint64) (*entities.Technician, error) {
	return r.findBy(ctx, "t.user_id", userID)
}

func (r *TechnicianRepository) findBy(ctx context.Context, column string, value uint64) (*entities.Technician, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.user_id, t.team_id, u.fio
		FROM technicians t
		JOIN users u ON u.id = t.user_id
		WHERE %s = $1`, column)

	var technician entities.Technician
	err := r.storage.QueryRow(ctx, query, value).Scan(
		&technician.ID, &technician.UserID, &technician.TeamID, &technician.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования техника: %w", err)
	}
	return &technician, nil
}

func (r *TechnicianRepository) CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (uint64, error) {
	query := `
		INSERT INTO technicians (user_id, team_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id`

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, payload.UserID, payload.TeamID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("ошибка при создании техника: %w", err)
	}
	return newID, nil
}

func (r *TechnicianRepository) UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) error {
	if payload.TeamID == nil {
		return nil
	}
	tag, err := r.storage.Exec(ctx,
		`UPDATE technicians SET team_id = $1, updated_at = NOW() WHERE id = $2`,
		*payload.TeamID, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении техника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TechnicianRepository) DeleteTechnician(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM technicians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления техника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
