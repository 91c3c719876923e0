package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	infradb "maintenance-system/internal/infrastructure/db"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.RequestDTO, uint64, error)
	GetTeamQueue(ctx context.Context, teamID uint64, q dto.TeamQueueFilterDTO) ([]dto.RequestDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error)
	CreateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) (uint64, error)
	FindForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id uint64, patch dto.UpdateRequestDTO) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, durationHours *float64) error
	AssignTechnicianInTx(ctx context.Context, tx pgx.Tx, id uint64, technicianID uint64) error
	ClaimInTx(ctx context.Context, tx pgx.Tx, id uint64, technicianID uint64) (bool, error)
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{
		storage: storage,
		logger:  logger,
	}
}

// requestSelectColumns - единый список колонок гидрированной заявки.
// overdue вычисляется на момент запроса и нигде не хранится.
const requestSelectColumns = `
	r.id, r.subject, r.description, r.request_type, r.priority, r.status,
	r.equipment_id, e.name AS equipment_name,
	r.department_id, d.name AS department_name,
	r.team_id, tm.name AS team_name,
	r.technician_id, t.team_id AS technician_team_id, tu.fio AS technician_fio,
	r.created_by, cu.fio AS creator_fio,
	r.scheduled_date, r.duration_hours,
	(r.scheduled_date IS NOT NULL AND r.scheduled_date < NOW()
		AND r.status NOT IN ('repaired', 'scrap')) AS overdue,
	r.created_at`

const requestFromJoins = `
	FROM maintenance_requests r
	JOIN equipments e ON e.id = r.equipment_id
	JOIN departments d ON d.id = r.department_id
	JOIN teams tm ON tm.id = r.team_id
	LEFT JOIN technicians t ON t.id = r.technician_id
	LEFT JOIN users tu ON tu.id = t.user_id
	JOIN users cu ON cu.id = r.created_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestRow(row rowScanner) (*dto.RequestDTO, error) {
	var (
		req           dto.RequestDTO
		description   sql.NullString
		technicianID  sql.NullInt64
		techTeamID    sql.NullInt64
		technicianFio sql.NullString
		scheduledDate sql.NullTime
		durationHours sql.NullFloat64
		createdAt     time.Time
	)

	err := row.Scan(
		&req.ID, &req.Subject, &description, &req.RequestType, &req.Priority, &req.Status,
		&req.Equipment.ID, &req.Equipment.Name,
		&req.Department.ID, &req.Department.Name,
		&req.Team.ID, &req.Team.Name,
		&technicianID, &techTeamID, &technicianFio,
		&req.Creator.ID, &req.Creator.Fio,
		&scheduledDate, &durationHours,
		&req.Overdue,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		req.Description = &description.String
	}
	if technicianID.Valid {
		req.Technician = &dto.ShortTechnicianDTO{
			ID:     uint64(technicianID.Int64),
			TeamID: uint64(techTeamID.Int64),
			Name:   technicianFio.String,
		}
	}
	if scheduledDate.Valid {
		s := scheduledDate.Time.Local().Format("2006-01-02 15:04:05")
		req.ScheduledDate = &s
	}
	if durationHours.Valid {
		req.DurationHours = &durationHours.Float64
	}
	req.CreatedAt = createdAt.Local().Format("2006-01-02 15:04:05")

	return &req, nil
}

// requestFilterMap - внешние имена фильтров списка заявок.
var requestFilterMap = map[string]string{
	"status":         "r.status",
	"priority":       "r.priority",
	"request_type":   "r.request_type",
	"team_id":        "r.team_id",
	"department_id":  "r.department_id",
	"equipment_id":   "r.equipment_id",
	"technician_id":  "r.technician_id",
	"created_by":     "r.created_by",
	"created_at":     "r.created_at",
	"scheduled_date": "r.scheduled_date",
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]dto.RequestDTO, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From("maintenance_requests r")
	countBuilder = infradb.ApplyListParams(countBuilder, types.Filter{Filter: filter.Filter}, requestFilterMap)

	countQuery, countArgs, err := countBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчета заявок: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}

	builder := sq.Select(requestSelectColumns).
		From("maintenance_requests r").
		JoinClause("JOIN equipments e ON e.id = r.equipment_id").
		JoinClause("JOIN departments d ON d.id = r.department_id").
		JoinClause("JOIN teams tm ON tm.id = r.team_id").
		JoinClause("LEFT JOIN technicians t ON t.id = r.technician_id").
		JoinClause("LEFT JOIN users tu ON tu.id = t.user_id").
		JoinClause("JOIN users cu ON cu.id = r.created_by")

	builder = infradb.ApplyListParams(builder, filter, requestFilterMap)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("r.created_at DESC")
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]dto.RequestDTO, 0)
	for rows.Next() {
		req, err := scanRequestRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в списке: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, total, rows.Err()
}

// GetTeamQueue - очередь команды: сортировка по рангу приоритета
// (critical > high > medium > low), затем по свежести.
func (r *RequestRepository) GetTeamQueue(ctx context.Context, teamID uint64, q dto.TeamQueueFilterDTO) ([]dto.RequestDTO, uint64, error) {
	where := sq.And{sq.Eq{"r.team_id": teamID}}
	if q.UnassignedOnly {
		where = append(where, sq.Eq{"r.technician_id": nil})
	}
	if q.Status != nil {
		where = append(where, sq.Eq{"r.status": *q.Status})
	}
	if q.RequestType != nil {
		where = append(where, sq.Eq{"r.request_type": *q.RequestType})
	}
	if q.Priority != nil {
		where = append(where, sq.Eq{"r.priority": *q.Priority})
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("maintenance_requests r").
		Where(where).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса подсчета очереди: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета очереди команды: %w", err)
	}

	builder := sq.Select(requestSelectColumns).
		From("maintenance_requests r").
		JoinClause("JOIN equipments e ON e.id = r.equipment_id").
		JoinClause("JOIN departments d ON d.id = r.department_id").
		JoinClause("JOIN teams tm ON tm.id = r.team_id").
		JoinClause("LEFT JOIN technicians t ON t.id = r.technician_id").
		JoinClause("LEFT JOIN users tu ON tu.id = t.user_id").
		JoinClause("JOIN users cu ON cu.id = r.created_by").
		Where(where).
		OrderBy(`CASE r.priority
			WHEN 'critical' THEN 4
			WHEN 'high' THEN 3
			WHEN 'medium' THEN 2
			ELSE 1 END DESC`).
		OrderBy("r.created_at DESC")

	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	builder = builder.Offset(q.Offset)

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса очереди команды: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения очереди команды: %w", err)
	}
	defer rows.Close()

	requests := make([]dto.RequestDTO, 0)
	for rows.Next() {
		req, err := scanRequestRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в очереди: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, total, rows.Err()
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	query := "SELECT " + requestSelectColumns + requestFromJoins + " WHERE r.id = $1"

	req, err := scanRequestRow(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) CreateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) (uint64, error) {
	query := `
		INSERT INTO maintenance_requests
			(subject, description, request_type, priority, equipment_id,
			 department_id, team_id, technician_id, status, scheduled_date,
			 created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := tx.QueryRow(ctx, query,
		req.Subject, req.Description, req.RequestType, req.Priority, req.EquipmentID,
		req.DepartmentID, req.TeamID, req.TechnicianID, req.Status, req.ScheduledDate,
		req.CreatedBy,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании заявки: %w", err)
	}
	return newID, nil
}

// FindForUpdate блокирует строку заявки внутри транзакции, чтобы пара
// "прочитать старый статус - записать новый" была атомарной.
func (r *RequestRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	query := `
		SELECT id, subject, description, request_type, priority, equipment_id,
		       department_id, team_id, technician_id, status, scheduled_date,
		       duration_hours, created_by
		FROM maintenance_requests
		WHERE id = $1
		FOR UPDATE`

	var (
		req           entities.MaintenanceRequest
		description   sql.NullString
		technicianID  sql.NullInt64
		scheduledDate sql.NullTime
		durationHours sql.NullFloat64
	)
	err := tx.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Subject, &description, &req.RequestType, &req.Priority, &req.EquipmentID,
		&req.DepartmentID, &req.TeamID, &technicianID, &req.Status, &scheduledDate,
		&durationHours, &req.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("не удалось найти заявку для обновления: %w", err)
	}

	if description.Valid {
		req.Description = &description.String
	}
	if technicianID.Valid {
		tid := uint64(technicianID.Int64)
		req.TechnicianID = &tid
	}
	if scheduledDate.Valid {
		t := scheduledDate.Time
		req.ScheduledDate = &t
	}
	if durationHours.Valid {
		req.DurationHours = &durationHours.Float64
	}
	return &req, nil
}

// UpdateRequest - частичное обновление разрешенных полей.
// Смена статуса и назначение техника сюда намеренно не входят:
// у них свои операции с записью в журнал.
func (r *RequestRepository) UpdateRequest(ctx context.Context, id uint64, patch dto.UpdateRequestDTO) error {
	builder := sq.Update("maintenance_requests").Set("updated_at", sq.Expr("NOW()"))

	if patch.Subject != nil {
		builder = builder.Set("subject", *patch.Subject)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}
	if patch.RequestType != nil {
		builder = builder.Set("request_type", *patch.RequestType)
	}
	if patch.Priority != nil {
		builder = builder.Set("priority", *patch.Priority)
	}
	if patch.ScheduledDate != nil {
		builder = builder.Set("scheduled_date", *patch.ScheduledDate)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления заявки: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, durationHours *float64) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if durationHours != nil {
		tag, err = tx.Exec(ctx,
			`UPDATE maintenance_requests SET status = $1, duration_hours = $2, updated_at = NOW() WHERE id = $3`,
			newStatus, *durationHours, id)
	} else {
		tag, err = tx.Exec(ctx,
			`UPDATE maintenance_requests SET status = $1, updated_at = NOW() WHERE id = $2`,
			newStatus, id)
	}
	if err != nil {
		return fmt.Errorf("ошибка при смене статуса заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) AssignTechnicianInTx(ctx context.Context, tx pgx.Tx, id uint64, technicianID uint64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE maintenance_requests SET technician_id = $1, updated_at = NOW() WHERE id = $2`,
		technicianID, id)
	if err != nil {
		return fmt.Errorf("ошибка при назначении техника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClaimInTx - атомарный self-assign: одна условная запись закрывает гонку
// "проверили, что не назначен - назначили". Повторный захват тем же
// техником идемпотентен.
func (r *RequestRepository) ClaimInTx(ctx context.Context, tx pgx.Tx, id uint64, technicianID uint64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE maintenance_requests
		 SET technician_id = $1, updated_at = NOW()
		 WHERE id = $2 AND (technician_id IS NULL OR technician_id = $1)`,
		technicianID, id)
	if err != nil {
		return false, fmt.Errorf("ошибка при захвате заявки: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteRequest - жесткое удаление; журнал и вложения уходят каскадом
// по внешним ключам (ON DELETE CASCADE).
func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
