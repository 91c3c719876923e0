package dto

type MaintenanceLogDTO struct {
	ID        uint64        `json:"id"`
	RequestID uint64        `json:"request_id"`
	OldStatus *string       `json:"old_status"`
	NewStatus string        `json:"new_status"`
	ChangedBy *ShortUserDTO `json:"changed_by,omitempty"`
	Notes     string        `json:"notes"`
	CreatedAt string        `json:"created_at"`
}
