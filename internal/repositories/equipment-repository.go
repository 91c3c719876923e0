package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	infradb "maintenance-system/internal/infrastructure/db"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error
	SetStatus(ctx context.Context, id uint64, status string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

var equipmentFilterMap = map[string]string{
	"status":        "eq.status",
	"team_id":       "eq.team_id",
	"department_id": "eq.department_id",
	"category_id":   "eq.category_id",
	"name":          "eq.name",
	"created_at":    "eq.created_at",
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From("equipments eq")
	countBuilder = infradb.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, equipmentFilterMap)
	countQuery, countArgs, err := countBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчета оборудования: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета оборудования: %w", err)
	}

	builder := sq.Select(
		"eq.id", "eq.name", "eq.status",
		"eq.category_id", "c.name AS category_name",
		"eq.department_id", "d.name AS department_name",
		"eq.team_id", "tm.name AS team_name",
		"eq.created_at",
	).
		From("equipments eq").
		JoinClause("JOIN equipment_categories c ON c.id = eq.category_id").
		JoinClause("JOIN departments d ON d.id = eq.department_id").
		JoinClause("JOIN teams tm ON tm.id = eq.team_id")

	builder = infradb.ApplyListParams(builder, filter, equipmentFilterMap)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("eq.created_at DESC")
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка оборудования: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка оборудования: %w", err)
	}
	defer rows.Close()

	equipments := make([]dto.EquipmentDTO, 0)
	for rows.Next() {
		var (
			item      dto.EquipmentDTO
			createdAt time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Status,
			&item.Category.ID, &item.Category.Name,
			&item.Department.ID, &item.Department.Name,
			&item.Team.ID, &item.Team.Name,
			&createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования оборудования: %w", err)
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		equipments = append(equipments, item)
	}
	return equipments, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := `
		SELECT id, name, category_id, department_id, team_id, status
		FROM equipments
		WHERE id = $1`

	var equipment entities.Equipment
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&equipment.ID, &equipment.Name, &equipment.CategoryID,
		&equipment.DepartmentID, &equipment.TeamID, &equipment.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования оборудования: %w", err)
	}
	return &equipment, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error) {
	query := `
		INSERT INTO equipments (name, category_id, department_id, team_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
		RETURNING id`

	var newID uint64
	if err := r.storage.QueryRow(ctx, query,
		payload.Name, payload.CategoryID, payload.DepartmentID, payload.TeamID,
	).Scan(&newID); err != nil {
		return 0, fmt.Errorf("ошибка при создании оборудования: %w", err)
	}
	return newID, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	builder := sq.Update("equipments").Set("updated_at", sq.Expr("NOW()"))
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
	}
	if payload.CategoryID != nil {
		builder = builder.Set("category_id", *payload.CategoryID)
	}
	if payload.TeamID != nil {
		builder = builder.Set("team_id", *payload.TeamID)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления оборудования: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetStatus - единственная запись движка в реестр оборудования:
// перевод в scrapped как побочный эффект терминального статуса заявки.
func (r *EquipmentRepository) SetStatus(ctx context.Context, id uint64, status string) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE equipments SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления оборудования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
