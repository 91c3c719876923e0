package entities

import (
	"time"

	"maintenance-system/pkg/types"
)

// MaintenanceRequest - центральная сущность: единица работ по обслуживанию
// одного оборудования. team_id/department_id копируются из оборудования в
// момент создания и дальше за ним не следуют.
type MaintenanceRequest struct {
	ID            uint64     `json:"id"`
	Subject       string     `json:"subject"`
	Description   *string    `json:"description"`
	RequestType   string     `json:"request_type"`
	Priority      string     `json:"priority"`
	EquipmentID   uint64     `json:"equipment_id"`
	DepartmentID  uint64     `json:"department_id"`
	TeamID        uint64     `json:"team_id"`
	TechnicianID  *uint64    `json:"technician_id"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	DurationHours *float64   `json:"duration_hours"`
	CreatedBy     uint64     `json:"created_by"`

	types.BaseEntity
}
