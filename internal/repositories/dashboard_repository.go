package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"maintenance-system/pkg/types"
)

// DashboardRepositoryInterface - производные представления только на чтение.
// Ни один метод здесь не мутирует состояние.
type DashboardRepositoryInterface interface {
	GetTeamStats(ctx context.Context) ([]types.TeamStat, error)
	GetEquipmentStats(ctx context.Context) ([]types.EquipmentStat, error)
	GetOverdueRequests(ctx context.Context) ([]types.CalendarItem, error)
	GetCalendar(ctx context.Context, from, to *time.Time) ([]types.CalendarItem, error)
	GetTechnicianStats(ctx context.Context, technicianID uint64) (*types.TechnicianStats, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// GetTeamStats - по каждой команде: всего заявок и разбивка по четырем статусам.
func (r *DashboardRepository) GetTeamStats(ctx context.Context) ([]types.TeamStat, error) {
	query := `
		SELECT
			tm.id, tm.name,
			COUNT(r.id),
			COUNT(r.id) FILTER (WHERE r.status = 'new'),
			COUNT(r.id) FILTER (WHERE r.status = 'in_progress'),
			COUNT(r.id) FILTER (WHERE r.status = 'repaired'),
			COUNT(r.id) FILTER (WHERE r.status = 'scrap')
		FROM teams tm
		LEFT JOIN maintenance_requests r ON r.team_id = tm.id
		GROUP BY tm.id, tm.name
		ORDER BY tm.name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики по командам: %w", err)
	}
	defer rows.Close()

	stats := make([]types.TeamStat, 0)
	for rows.Next() {
		var s types.TeamStat
		if err := rows.Scan(
			&s.TeamID, &s.TeamName, &s.TotalCount,
			&s.NewCount, &s.InProgressCount, &s.RepairedCount, &s.ScrapCount,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования статистики команды: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetEquipmentStats - надежность оборудования: всего заявок, завершено, в работе.
func (r *DashboardRepository) GetEquipmentStats(ctx context.Context) ([]types.EquipmentStat, error) {
	query := `
		SELECT
			eq.id, eq.name,
			COUNT(r.id),
			COUNT(r.id) FILTER (WHERE r.status = 'repaired'),
			COUNT(r.id) FILTER (WHERE r.status = 'in_progress')
		FROM equipments eq
		LEFT JOIN maintenance_requests r ON r.equipment_id = eq.id
		GROUP BY eq.id, eq.name
		ORDER BY COUNT(r.id) DESC, eq.name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики по оборудованию: %w", err)
	}
	defer rows.Close()

	stats := make([]types.EquipmentStat, 0)
	for rows.Next() {
		var s types.EquipmentStat
		if err := rows.Scan(
			&s.EquipmentID, &s.EquipmentName,
			&s.TotalCount, &s.CompletedCount, &s.InProgressCount,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования статистики оборудования: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Просроченность - свойство момента чтения: запланированная дата в прошлом,
// статус не терминальный.
func (r *DashboardRepository) GetOverdueRequests(ctx context.Context) ([]types.CalendarItem, error) {
	query := `
		SELECT r.id, r.subject, eq.name, tm.name, r.priority, r.status, r.scheduled_date
		FROM maintenance_requests r
		JOIN equipments eq ON eq.id = r.equipment_id
		JOIN teams tm ON tm.id = r.team_id
		WHERE r.scheduled_date IS NOT NULL
		  AND r.scheduled_date < NOW()
		  AND r.status NOT IN ('repaired', 'scrap')
		ORDER BY r.scheduled_date ASC`

	return r.queryCalendarItems(ctx, query)
}

// GetCalendar - превентивные заявки с запланированной датой, опционально
// ограниченные диапазоном, по возрастанию даты.
func (r *DashboardRepository) GetCalendar(ctx context.Context, from, to *time.Time) ([]types.CalendarItem, error) {
	builder := sq.Select(
		"r.id", "r.subject", "eq.name", "tm.name", "r.priority", "r.status", "r.scheduled_date",
	).
		From("maintenance_requests r").
		JoinClause("JOIN equipments eq ON eq.id = r.equipment_id").
		JoinClause("JOIN teams tm ON tm.id = r.team_id").
		Where(sq.Eq{"r.request_type": "preventive"}).
		Where(sq.NotEq{"r.scheduled_date": nil}).
		OrderBy("r.scheduled_date ASC")

	if from != nil {
		builder = builder.Where(sq.GtOrEq{"r.scheduled_date": *from})
	}
	if to != nil {
		builder = builder.Where(sq.LtOrEq{"r.scheduled_date": *to})
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса календаря: %w", err)
	}

	return r.queryCalendarItems(ctx, query, args...)
}

func (r *DashboardRepository) queryCalendarItems(ctx context.Context, query string, args ...any) ([]types.CalendarItem, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения календаря заявок: %w", err)
	}
	defer rows.Close()

	items := make([]types.CalendarItem, 0)
	for rows.Next() {
		var (
			item      types.CalendarItem
			scheduled sql.NullTime
		)
		if err := rows.Scan(
			&item.RequestID, &item.Subject, &item.EquipmentName,
			&item.TeamName, &item.Priority, &item.Status, &scheduled,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования элемента календаря: %w", err)
		}
		if scheduled.Valid {
			item.ScheduledDate = scheduled.Time.Local().Format("2006-01-02 15:04:05")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetTechnicianStats - агрегаты по всем заявкам, когда-либо назначенным технику.
// Среднее время ремонта считается только по repaired-заявкам с записанной
// длительностью и округляется до одного знака.
func (r *DashboardRepository) GetTechnicianStats(ctx context.Context, technicianID uint64) (*types.TechnicianStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'new'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'repaired'),
			COUNT(*) FILTER (WHERE status = 'scrap'),
			COUNT(*) FILTER (WHERE scheduled_date IS NOT NULL
				AND scheduled_date < NOW()
				AND status NOT IN ('repaired', 'scrap')),
			COUNT(*) FILTER (WHERE priority IN ('critical', 'high')
				AND status NOT IN ('repaired', 'scrap')),
			ROUND((AVG(duration_hours) FILTER (WHERE status = 'repaired' AND duration_hours IS NOT NULL))::numeric, 1)
		FROM maintenance_requests
		WHERE technician_id = $1`

	stats := &types.TechnicianStats{}
	var avgHours sql.NullFloat64
	err := r.storage.QueryRow(ctx, query, technicianID).Scan(
		&stats.TotalCount,
		&stats.NewCount, &stats.InProgressCount, &stats.RepairedCount, &stats.ScrapCount,
		&stats.OverdueCount, &stats.UnresolvedUrgent,
		&avgHours,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики техника: %w", err)
	}
	if avgHours.Valid {
		stats.AvgResolutionHours = &avgHours.Float64
	}

	byCategory, err := r.countByGroup(ctx, `
		SELECT c.name, COUNT(*)
		FROM maintenance_requests r
		JOIN equipments eq ON eq.id = r.equipment_id
		JOIN equipment_categories c ON c.id = eq.category_id
		WHERE r.technician_id = $1
		GROUP BY c.name
		ORDER BY COUNT(*) DESC`, technicianID)
	if err != nil {
		return nil, err
	}
	stats.ByCategory = byCategory

	byType, err := r.countByGroup(ctx, `
		SELECT request_type, COUNT(*)
		FROM maintenance_requests
		WHERE technician_id = $1
		GROUP BY request_type
		ORDER BY COUNT(*) DESC`, technicianID)
	if err != nil {
		return nil, err
	}
	stats.ByType = byType

	return stats, nil
}

func (r *DashboardRepository) countByGroup(ctx context.Context, query string, args ...any) ([]types.CountByGroup, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения разбивки по группам: %w", err)
	}
	defer rows.Close()

	groups := make([]types.CountByGroup, 0)
	for rows.Next() {
		var g types.CountByGroup
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования группы: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
