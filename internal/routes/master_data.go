package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/middleware"
)

func runMasterDataRouter(
	secureGroup *echo.Group,
	teamService services.TeamServiceInterface,
	departmentService services.DepartmentServiceInterface,
	categoryService services.EquipmentCategoryServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	teamCtrl := controllers.NewTeamController(teamService, logger)
	departmentCtrl := controllers.NewDepartmentController(departmentService, logger)
	categoryCtrl := controllers.NewEquipmentCategoryController(categoryService, logger)

	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/teams", teamCtrl.GetTeams)
		secureGroup.POST("/teams", teamCtrl.CreateTeam, adminOnly)
		secureGroup.PUT("/teams/:id", teamCtrl.UpdateTeam, adminOnly)
		secureGroup.DELETE("/teams/:id", teamCtrl.DeleteTeam, adminOnly)

		secureGroup.GET("/departments", departmentCtrl.GetDepartments)
		secureGroup.POST("/departments", departmentCtrl.CreateDepartment, adminOnly)
		secureGroup.PUT("/departments/:id", departmentCtrl.UpdateDepartment, adminOnly)
		secureGroup.DELETE("/departments/:id", departmentCtrl.DeleteDepartment, adminOnly)

		secureGroup.GET("/equipment-categories", categoryCtrl.GetCategories)
		secureGroup.POST("/equipment-categories", categoryCtrl.CreateCategory, adminOnly)
		secureGroup.PUT("/equipment-categories/:id", categoryCtrl.UpdateCategory, adminOnly)
		secureGroup.DELETE("/equipment-categories/:id", categoryCtrl.DeleteCategory, adminOnly)
	}
}
