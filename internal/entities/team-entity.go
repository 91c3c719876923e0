package entities

import "maintenance-system/pkg/types"

type Team struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	DepartmentID uint64 `json:"department_id"`

	types.BaseEntity
}
