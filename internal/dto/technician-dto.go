package dto

type CreateTechnicianDTO struct {
	UserID uint64 `json:"user_id" validate:"required,gt=0"`
	TeamID uint64 `json:"team_id" validate:"required,gt=0"`
}

// UpdateTechnicianDTO - перевод техника в другую команду.
// Существующие заявки при этом остаются за прежней командой.
type UpdateTechnicianDTO struct {
	TeamID *uint64 `json:"team_id,omitempty" validate:"omitempty,gt=0"`
}

type TechnicianDTO struct {
	ID        uint64       `json:"id"`
	User      ShortUserDTO `json:"user"`
	Team      ShortRefDTO  `json:"team"`
	CreatedAt string       `json:"created_at"`
}
