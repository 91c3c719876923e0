package entities

import "maintenance-system/pkg/types"

type Equipment struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	CategoryID   uint64 `json:"category_id"`
	DepartmentID uint64 `json:"department_id"`
	TeamID       uint64 `json:"team_id"`
	Status       string `json:"status"`

	types.BaseEntity
}
