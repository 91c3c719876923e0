package entities

import "maintenance-system/pkg/types"

type User struct {
	ID           uint64 `json:"id"`
	Fio          string `json:"fio"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`

	types.BaseEntity
}
