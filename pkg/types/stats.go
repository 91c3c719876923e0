package types

// TeamStat - суммарная статистика по одной команде с разбивкой по статусам.
type TeamStat struct {
	TeamID          uint64 `json:"team_id"`
	TeamName        string `json:"team_name"`
	TotalCount      int    `json:"total_count"`
	NewCount        int    `json:"new_count"`
	InProgressCount int    `json:"in_progress_count"`
	RepairedCount   int    `json:"repaired_count"`
	ScrapCount      int    `json:"scrap_count"`
}

// EquipmentStat - надежность единицы оборудования по истории заявок.
type EquipmentStat struct {
	EquipmentID     uint64 `json:"equipment_id"`
	EquipmentName   string `json:"equipment_name"`
	TotalCount      int    `json:"total_count"`
	CompletedCount  int    `json:"completed_count"`
	InProgressCount int    `json:"in_progress_count"`
}

// CountByGroup - универсальная пара "название группы - количество".
type CountByGroup struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TechnicianStats - агрегаты по всем заявкам, когда-либо назначенным технику.
type TechnicianStats struct {
	TotalCount         int            `json:"total_count"`
	NewCount           int            `json:"new_count"`
	InProgressCount    int            `json:"in_progress_count"`
	RepairedCount      int            `json:"repaired_count"`
	ScrapCount         int            `json:"scrap_count"`
	OverdueCount       int            `json:"overdue_count"`
	UnresolvedUrgent   int            `json:"unresolved_urgent_count"`
	AvgResolutionHours *float64       `json:"avg_resolution_hours"`
	ByCategory         []CountByGroup `json:"by_category"`
	ByType             []CountByGroup `json:"by_type"`
}

// CalendarItem - превентивная заявка с запланированной датой для календаря.
type CalendarItem struct {
	RequestID     uint64 `json:"request_id"`
	Subject       string `json:"subject"`
	EquipmentName string `json:"equipment_name"`
	TeamName      string `json:"team_name"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date"`
}
