package services

import (
	"context"
	"errors"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

// Справочники: тонкие CRUD-сервисы без собственной бизнес-логики.

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, limit uint64, offset uint64) ([]dto.TeamDTO, uint64, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (uint64, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) error
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamService struct {
	teamRepo       repositories.TeamRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
) TeamServiceInterface {
	return &TeamService{teamRepo: teamRepo, departmentRepo: departmentRepo}
}

func (s *TeamService) GetTeams(ctx context.Context, limit uint64, offset uint64) ([]dto.TeamDTO, uint64, error) {
	return s.teamRepo.GetTeams(ctx, limit, offset)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (uint64, error) {
	if _, err := s.departmentRepo.FindDepartment(ctx, payload.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, apperrors.NewNotFoundError("отдел не найден")
		}
		return 0, err
	}
	return s.teamRepo.CreateTeam(ctx, payload)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) error {
	if payload.DepartmentID != nil {
		if _, err := s.departmentRepo.FindDepartment(ctx, *payload.DepartmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("отдел не найден")
			}
			return err
		}
	}
	if err := s.teamRepo.UpdateTeam(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("команда не найдена")
		}
		return err
	}
	return nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.teamRepo.DeleteTeam(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("команда не найдена")
		}
		return err
	}
	return nil
}

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, limit uint64, offset uint64) ([]dto.DepartmentDTO, uint64, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (uint64, error)
	UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) error
	DeleteDepartment(ctx context.Context, id uint64) error
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepositoryInterface) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, limit uint64, offset uint64) ([]dto.DepartmentDTO, uint64, error) {
	return s.departmentRepo.GetDepartments(ctx, limit, offset)
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (uint64, error) {
	return s.departmentRepo.CreateDepartment(ctx, payload)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) error {
	if err := s.departmentRepo.UpdateDepartment(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("отдел не найден")
		}
		return err
	}
	return nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) error {
	if err := s.departmentRepo.DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("отдел не найден")
		}
		return err
	}
	return nil
}

type EquipmentCategoryServiceInterface interface {
	GetCategories(ctx context.Context, limit uint64, offset uint64) ([]dto.EquipmentCategoryDTO, uint64, error)
	CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (uint64, error)
	UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) error
	DeleteCategory(ctx context.Context, id uint64) error
}

type EquipmentCategoryService struct {
	categoryRepo repositories.EquipmentCategoryRepositoryInterface
}

func NewEquipmentCategoryService(categoryRepo repositories.EquipmentCategoryRepositoryInterface) EquipmentCategoryServiceInterface {
	return &EquipmentCategoryService{categoryRepo: categoryRepo}
}

func (s *EquipmentCategoryService) GetCategories(ctx context.Context, limit uint64, offset uint64) ([]dto.EquipmentCategoryDTO, uint64, error) {
	return s.categoryRepo.GetCategories(ctx, limit, offset)
}

func (s *EquipmentCategoryService) CreateCategory(ctx context.Context, payload dto.CreateEquipmentCategoryDTO) (uint64, error) {
	return s.categoryRepo.CreateCategory(ctx, payload)
}

func (s *EquipmentCategoryService) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateEquipmentCategoryDTO) error {
	if err := s.categoryRepo.UpdateCategory(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("категория не найдена")
		}
		return err
	}
	return nil
}

func (s *EquipmentCategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("категория не найдена")
		}
		return err
	}
	return nil
}
