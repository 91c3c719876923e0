package entities

import "maintenance-system/pkg/types"

// Technician оборачивает пользователя членством ровно в одной команде.
type Technician struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`
	TeamID uint64 `json:"team_id"`
	Name   string `json:"name"`

	types.BaseEntity
}
