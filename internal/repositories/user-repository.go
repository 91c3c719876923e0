package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

type UserRepositoryInterface interface {
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	return r.findBy(ctx, "login", login)
}

func (r *UserRepository) findBy(ctx context.Context, column string, value any) (*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT id, fio, login, password_hash, role
		FROM users
		WHERE %s = $1`, column)

	var user entities.User
	err := r.storage.QueryRow(ctx, query, value).Scan(
		&user.ID, &user.Fio, &user.Login, &user.PasswordHash, &user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	query := `
		INSERT INTO users (fio, login, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		user.Fio, user.Login, user.PasswordHash, user.Role,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}
	return newID, nil
}
