package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

// Контроллеры справочников: команды, отделы, категории оборудования.

type TeamController struct {
	teamService services.TeamServiceInterface
	logger      *zap.Logger
}

func NewTeamController(teamService services.TeamServiceInterface, logger *zap.Logger) *TeamController {
	return &TeamController{teamService: teamService, logger: logger}
}

func (c *TeamController) GetTeams(ctx echo.Context) error {
	limit, offset, _ := utils.ParsePaginationParams(ctx.Request().URL.Query())

	res, totalCount, err := c.teamService.GetTeams(ctx.Request().Context(), limit, offset)
	if err != nil {
		c.logger.Error("Ошибка при получении списка команд", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Команды успешно получены", http.StatusOK, totalCount)
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var payload dto.CreateTeamDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.teamService.CreateTeam(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Команда успешно создана", http.StatusCreated)
}

func (c *TeamController) UpdateTeam(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateTeamDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.teamService.UpdateTeam(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Команда успешно обновлена", http.StatusOK)
}

func (c *TeamController) DeleteTeam(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.teamService.DeleteTeam(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Команда успешно удалена", http.StatusOK)
}

type DepartmentController struct {
	departmentService services.DepartmentServiceInterface
	logger            *zap.Logger
}

func NewDepartmentController(departmentService services.DepartmentServiceInterface, logger *zap.Logger) *DepartmentController {
	return &DepartmentController{departmentService: departmentService, logger: logger}
}

func (c *DepartmentController) GetDepartments(ctx echo.Context) error {
	limit, offset, _ := utils.ParsePaginationParams(ctx.Request().URL.Query())

	res, totalCount, err := c.departmentService.GetDepartments(ctx.Request().Context(), limit, offset)
	if err != nil {
		c.logger.Error("Ошибка при получении списка отделов", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Отделы успешно получены", http.StatusOK, totalCount)
}

func (c *DepartmentController) CreateDepartment(ctx echo.Context) error {
	var payload dto.CreateDepartmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.departmentService.CreateDepartment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Отдел успешно создан", http.StatusCreated)
}

func (c *DepartmentController) UpdateDepartment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateDepartmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.departmentService.UpdateDepartment(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Отдел успешно обновлен", http.StatusOK)
}

func (c *DepartmentController) DeleteDepartment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.departmentService.DeleteDepartment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Отдел успешно удален", http.StatusOK)
}

type EquipmentCategoryController struct {
	categoryService services.EquipmentCategoryServiceInterface
	logger          *zap.Logger
}

func NewEquipmentCategoryController(categoryService services.EquipmentCategoryServiceInterface, logger *zap.Logger) *EquipmentCategoryController {
	return &EquipmentCategoryController{categoryService: categoryService, logger: logger}
}

func (c *EquipmentCategoryController) GetCategories(ctx echo.Context) error {
	limit, offset, _ := utils.ParsePaginationParams(ctx.Request().URL.Query())

	res, totalCount, err := c.categoryService.GetCategories(ctx.Request().Context(), limit, offset)
	if err != nil {
		c.logger.Error("Ошибка при получении списка категорий", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Категории успешно получены", http.StatusOK, totalCount)
}

func (c *EquipmentCategoryController) CreateCategory(ctx echo.Context) error {
	var payload dto.CreateEquipmentCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.categoryService.CreateCategory(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Категория успешно создана", http.StatusCreated)
}

func (c *EquipmentCategoryController) UpdateCategory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateEquipmentCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.categoryService.UpdateCategory(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Категория успешно обновлена", http.StatusOK)
}

func (c *EquipmentCategoryController) DeleteCategory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.categoryService.DeleteCategory(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Категория успешно удалена", http.StatusOK)
}
