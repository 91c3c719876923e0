package dto

import "time"

type CreateRequestDTO struct {
	Subject       string     `json:"subject" validate:"required,min=3,max=255"`
	Description   *string    `json:"description,omitempty"`
	RequestType   string     `json:"request_type" validate:"required,request_type"`
	Priority      string     `json:"priority" validate:"omitempty,priority_level"`
	EquipmentID   uint64     `json:"equipment_id" validate:"required,gt=0"`
	TechnicianID  *uint64    `json:"technician_id,omitempty" validate:"omitempty,gt=0"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

// UpdateRequestDTO - частичное обновление. Перечислены ТОЛЬКО легально
// изменяемые поля: оборудование, команда и отдел заявки после создания
// неизменяемы, произвольные ключи отвергаются структурой.
type UpdateRequestDTO struct {
	Subject       *string    `json:"subject,omitempty" validate:"omitempty,min=3,max=255"`
	Description   *string    `json:"description,omitempty"`
	RequestType   *string    `json:"request_type,omitempty" validate:"omitempty,request_type"`
	Priority      *string    `json:"priority,omitempty" validate:"omitempty,priority_level"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

type UpdateStatusDTO struct {
	Status        string   `json:"status" validate:"required,request_status"`
	DurationHours *float64 `json:"duration_hours,omitempty" validate:"omitempty,gt=0"`
	Notes         *string  `json:"notes,omitempty"`
}

type AssignTechnicianDTO struct {
	TechnicianID uint64 `json:"technician_id" validate:"required,gt=0"`
}

// RequestDTO - гидрированная заявка с именами связанных сущностей.
type RequestDTO struct {
	ID            uint64              `json:"id"`
	Subject       string              `json:"subject"`
	Description   *string             `json:"description,omitempty"`
	RequestType   string              `json:"request_type"`
	Priority      string              `json:"priority"`
	Status        string              `json:"status"`
	Equipment     ShortRefDTO         `json:"equipment"`
	Department    ShortRefDTO         `json:"department"`
	Team          ShortRefDTO         `json:"team"`
	Technician    *ShortTechnicianDTO `json:"technician,omitempty"`
	Creator       ShortUserDTO        `json:"creator"`
	ScheduledDate *string             `json:"scheduled_date"`
	DurationHours *float64            `json:"duration_hours"`
	// Overdue вычисляется в момент чтения, не хранится.
	Overdue   bool   `json:"overdue"`
	CreatedAt string `json:"created_at"`
}

// TeamQueueFilterDTO - фильтры очереди команды для самостоятельного выбора работы техником.
type TeamQueueFilterDTO struct {
	UnassignedOnly bool    `query:"unassigned_only"`
	Status         *string `query:"status"`
	RequestType    *string `query:"request_type"`
	Priority       *string `query:"priority"`
	Limit          uint64  `query:"limit"`
	Offset         uint64  `query:"offset"`
}
