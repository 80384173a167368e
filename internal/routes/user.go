package routes

import (
	"alumni-system/internal/authz"
	"alumni-system/internal/controllers"
	"alumni-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runProfileRouter(secure *echo.Group, userCtrl *controllers.UserController, profileCtrl *controllers.ProfileController) {
	profileGroup := secure.Group("/profile")
	{
		profileGroup.PUT("", userCtrl.UpdateProfile)
		profileGroup.PUT("/password", userCtrl.ChangePassword)
		profileGroup.GET("/work-experience", profileCtrl.ListWorkExperience)
		profileGroup.POST("/work-experience", profileCtrl.AddWorkExperience)
		profileGroup.GET("/education-goals", profileCtrl.ListEducationGoals)
		profileGroup.POST("/education-goals", profileCtrl.AddEducationGoal)
	}

	secure.GET("/search/students", userCtrl.SearchStudents)
}

// Административный контур: управление пользователями, выпускной
// процесс, закрепления, журнал действий, отчёты.
func runAdminRouter(
	secure *echo.Group,
	userCtrl *controllers.UserController,
	graduationCtrl *controllers.GraduationController,
	assignmentCtrl *controllers.AssignmentController,
	activityLogCtrl *controllers.ActivityLogController,
	authMW *middleware.AuthMiddleware,
) {
	adminGroup := secure.Group("/admin")

	usersGroup := adminGroup.Group("/users", authMW.Require(authz.UsersManage))
	{
		usersGroup.GET("", userCtrl.GetUsers)
		usersGroup.POST("", userCtrl.CreateUser)
		usersGroup.GET("/:id", userCtrl.FindUser)
		usersGroup.PUT("/:id", userCtrl.UpdateUser)
		usersGroup.DELETE("/:id", userCtrl.DeleteUser)
		usersGroup.POST("/:id/verify", userCtrl.VerifyUser)
		usersGroup.POST("/:id/block", userCtrl.BlockUser)
		usersGroup.POST("/:id/unblock", userCtrl.UnblockUser)
	}

	graduationGroup := adminGroup.Group("", authMW.Require(authz.GraduationManage))
	{
		graduationGroup.GET("/graduating-students", graduationCtrl.GetGraduatingStudents)
		graduationGroup.POST("/students/:id/confirm-graduation", graduationCtrl.ConfirmGraduation)
		graduationGroup.POST("/students/:id/revert-graduation", graduationCtrl.RevertGraduation)
		graduationGroup.PUT("/students/:id/graduation-info", graduationCtrl.UpdateGraduationInfo)
	}

	adminGroup.GET("/graduation-statistics", graduationCtrl.GetGraduationStatistics,
		authMW.Require(authz.ReportsView))

	assignGroup := adminGroup.Group("/teachers", authMW.Require(authz.AssignmentsManage))
	{
		assignGroup.POST("/:id/students", assignmentCtrl.AssignStudents)
		assignGroup.DELETE("/:id/students/:studentId", assignmentCtrl.UnassignStudent)
	}

	adminGroup.GET("/activity-logs", activityLogCtrl.GetLogs,
		authMW.Require(authz.ActivityLogView))
}
