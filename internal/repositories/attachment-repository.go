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

type AttachmentRepositoryInterface interface {
	Create(ctx context.Context, attachment entities.Attachment) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Attachment, error)
	FindByRequestID(ctx context.Context, requestID uint64) ([]entities.Attachment, error)
	Delete(ctx context.Context, id uint64) error
}

type AttachmentRepository struct {
	storage *pgxpool.Pool
}

func NewAttachmentRepository(storage *pgxpool.Pool) AttachmentRepositoryInterface {
	return &AttachmentRepository{storage: storage}
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment entities.Attachment) (uint64, error) {
	query := `
		INSERT INTO attachments (request_id, file_path, file_name, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`

	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		attachment.RequestID, attachment.FilePath, attachment.FileName, attachment.UploadedBy,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании вложения: %w", err)
	}
	return newID, nil
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Attachment, error) {
	query := `
		SELECT id, request_id, file_path, file_name, uploaded_by, created_at
		FROM attachments
		WHERE id = $1`

	var attachment entities.Attachment
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&attachment.ID, &attachment.RequestID, &attachment.FilePath,
		&attachment.FileName, &attachment.UploadedBy, &attachment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования вложения: %w", err)
	}
	return &attachment, nil
}

func (r *AttachmentRepository) FindByRequestID(ctx context.Context, requestID uint64) ([]entities.Attachment, error) {
	query := `
		SELECT id, request_id, file_path, file_name, uploaded_by, created_at
		FROM attachments
		WHERE request_id = $1
		ORDER BY created_at ASC`

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вложений заявки: %w", err)
	}
	defer rows.Close()

	attachments := make([]entities.Attachment, 0)
	for rows.Next() {
		var attachment entities.Attachment
		if err := rows.Scan(
			&attachment.ID, &attachment.RequestID, &attachment.FilePath,
			&attachment.FileName, &attachment.UploadedBy, &attachment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования вложения: %w", err)
		}
		attachments = append(attachments, attachment)
	}
	return attachments, rows.Err()
}

func (r *AttachmentRepository) Delete(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления вложения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
