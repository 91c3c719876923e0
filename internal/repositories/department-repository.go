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

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, limit uint64, offset uint64) ([]dto.DepartmentDTO, uint64, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (uint64, error)
	UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) error
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
}

func NewDepartmentRepository(storage *pgxpool.Pool) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage}
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, limit uint64, offset uint64) ([]dto.DepartmentDTO, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета отделов: %w", err)
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, name, created_at FROM departments ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка отделов: %w", err)
	}
	defer rows.Close()

	departments := make([]dto.DepartmentDTO, 0)
	for rows.Next() {
		var (
			item      dto.DepartmentDTO
			createdAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.Name, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования отдела: %w", err)
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		departments = append(departments, item)
	}
	return departments, total, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	var department entities.Department
	err := r.storage.QueryRow(ctx,
		`SELECT id, name FROM departments WHERE id = $1`, id,
	).Scan(&department.ID, &department.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования отдела: %w", err)
	}
	return &department, nil
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO departments (name, created_at, updated_at) VALUES ($1, NOW(), NOW()) RETURNING id`,
		payload.Name,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании отдела: %w", err)
	}
	return newID, nil
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) error {
	if payload.Name == nil {
		return nil
	}
	tag, err := r.storage.Exec(ctx,
		`UPDATE departments SET name = $1, updated_at = NOW() WHERE id = $2`,
		*payload.Name, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении отдела: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления отдела: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
