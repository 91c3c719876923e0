package types

import "time"

// BaseEntity - временные метки, общие для всех таблиц.
// Указатели: при частичном сканировании метки могут отсутствовать.
type BaseEntity struct {
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}
