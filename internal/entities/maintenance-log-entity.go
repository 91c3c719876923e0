package entities

import "time"

// MaintenanceLog - запись аудита одного изменения статуса или назначения.
// Журнал строго append-only: записи никогда не изменяются и удаляются
// только каскадом при физическом удалении заявки.
type MaintenanceLog struct {
	ID        uint64    `json:"id"`
	RequestID uint64    `json:"request_id"`
	OldStatus *string   `json:"old_status"` // null только для записи о создании
	NewStatus string    `json:"new_status"`
	ChangedBy *uint64   `json:"changed_by"` // null для системных записей
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
