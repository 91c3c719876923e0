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
	apperrors "maintenance-system/pkg/errors"
)

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, limit uint64, offset uint64) ([]dto.TeamDTO, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (uint64, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) error
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

func (r *TeamRepository) GetTeams(ctx context.Context, limit uint64, offset uint64) ([]dto.TeamDTO, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета команд: %w", err)
	}

	query := `
		SELECT tm.id, tm.name, d.id, d.name, tm.created_at
		FROM teams tm
		JOIN departments d ON d.id = tm.department_id
		ORDER BY tm.name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка команд: %w", err)
	}
	defer rows.Close()

	teams := make([]dto.TeamDTO, 0)
	for rows.Next() {
		var (
			item      dto.TeamDTO
			createdAt time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Department.ID, &item.Department.Name, &createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования команды: %w", err)
		}
		item.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")
		teams = append(teams, item)
	}
	return teams, total, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	var team entities.Team
	err := r.storage.QueryRow(ctx,
		`SELECT id, name, department_id FROM teams WHERE id = $1`, id,
	).Scan(&team.ID, &team.Name, &team.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования команды: %w", err)
	}
	return &team, nil
}

func (r *TeamRepository) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (uint64, error) {
	query := `
		INSERT INTO teams (name, department_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id`

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, payload.Name, payload.DepartmentID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("ошибка при создании команды: %w", err)
	}
	return newID, nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) error {
	builder := sq.Update("teams").Set("updated_at", sq.Expr("NOW()"))
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
	}
	if payload.DepartmentID != nil {
		builder = builder.Set("department_id", *payload.DepartmentID)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления команды: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении команды: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления команды: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
