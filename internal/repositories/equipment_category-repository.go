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

type EquipmentCategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, limit uint64, offset uint64) ([]dto.EquipmentCategoryDTO, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (uint64, error)
	UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) error
	DeleteCategory(ctx context.Context, id uint64) error
}

type EquipmentCategoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentCategoryRepository(storage *pgxpool.Pool) EquipmentCategoryRepositoryInterface {
	return &EquipmentCategoryRepository{storage: storage}
}

func (r *EquipmentCategoryRepository) GetCategories(ctx context.Context, limit uint64, offset uint64) ([]dto.EquipmentCategoryDTO, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM equipment_categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета категорий: %w", err)
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, name, created_at FROM equipment_categories ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка категорий: %w", err)
	}
	defer rows.Close()

	categories := make([]dto.EquipmentCategoryDTO, 0)
	for rows.Next() {
		var (
			item      dto.EquipmentCategoryDTO
			createdAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.Name, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования категории: %w", err)
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		categories = append(categories, item)
	}
	return categories, total, rows.Err()
}

func (r *EquipmentCategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.EquipmentCategory, error) {
	var category entities.EquipmentCategory
	err := r.storage.QueryRow(ctx,
		`SELECT id, name FROM equipment_categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования категории: %w", err)
	}
	return &category, nil
}

func (r *EquipmentCategoryRepository) CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO equipment_categories (name, created_at, updated_at) VALUES ($1, NOW(), NOW()) RETURNING id`,
		payload.Name,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании категории: %w", err)
	}
	return newID, nil
}

func (r *EquipmentCategoryRepository) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) error {
	if payload.Name == nil {
		return nil
	}
	tag, err := r.storage.Exec(ctx,
		`UPDATE equipment_categories SET name = $1, updated_at = NOW() WHERE id = $2`,
		*payload.Name, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении категории: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentCategoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM equipment_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления категории: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
