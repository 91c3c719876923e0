package dto

type CreateEquipmentDTO struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	CategoryID   uint64 `json:"category_id" validate:"required,gt=0"`
	DepartmentID uint64 `json:"department_id" validate:"required,gt=0"`
	TeamID       uint64 `json:"team_id" validate:"required,gt=0"`
}

type UpdateEquipmentDTO struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	CategoryID *uint64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	TeamID     *uint64 `json:"team_id,omitempty" validate:"omitempty,gt=0"`
}

type EquipmentDTO struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	Category   ShortRefDTO `json:"category"`
	Department ShortRefDTO `json:"department"`
	Team       ShortRefDTO `json:"team"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"created_at"`
}
