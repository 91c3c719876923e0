package dto

// Справочники: команды, отделы, категории оборудования.

type CreateTeamDTO struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	DepartmentID uint64 `json:"department_id" validate:"required,gt=0"`
}

type UpdateTeamDTO struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

type TeamDTO struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	Department ShortRefDTO `json:"department"`
	CreatedAt  string      `json:"created_at"`
}

type CreateDepartmentDTO struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type UpdateDepartmentDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
}

type DepartmentDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CreateEquipmentCategoryDTO struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type UpdateEquipmentCategoryDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
}

type EquipmentCategoryDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
