package routes

import (
	"alumni-system/internal/authz"
	"alumni-system/internal/controllers"
	"alumni-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDictionaryRouter(secure *echo.Group, dictionaryCtrl *controllers.DictionaryController, authMW *middleware.AuthMiddleware) {
	view := authMW.Require(authz.DictionariesView)
	manage := authMW.Require(authz.DictionariesManage)

	facultiesGroup := secure.Group("/faculties")
	{
		facultiesGroup.GET("", dictionaryCtrl.GetFaculties, view)
		facultiesGroup.POST("", dictionaryCtrl.CreateFaculty, manage)
		facultiesGroup.PUT("/:id", dictionaryCtrl.UpdateFaculty, manage)
		facultiesGroup.DELETE("/:id", dictionaryCtrl.DeleteFaculty, manage)
	}

	directionsGroup := secure.Group("/directions")
	{
		directionsGroup.GET("", dictionaryCtrl.GetDirections, view)
		directionsGroup.POST("", dictionaryCtrl.CreateDirection, manage)
		directionsGroup.PUT("/:id", dictionaryCtrl.UpdateDirection, manage)
		directionsGroup.DELETE("/:id", dictionaryCtrl.DeleteDirection, manage)
	}

	companiesGroup := secure.Group("/companies")
	{
		companiesGroup.GET("", dictionaryCtrl.GetCompanies, view)
		companiesGroup.POST("", dictionaryCtrl.CreateCompany, manage)
		companiesGroup.PUT("/:id", dictionaryCtrl.UpdateCompany, manage)
		companiesGroup.DELETE("/:id", dictionaryCtrl.DeleteCompany, manage)
	}
}
