package entities

import "maintenance-system/pkg/types"

type EquipmentCategory struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`

	types.BaseEntity
}
