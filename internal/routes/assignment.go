package routes

import (
	"alumni-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAssignmentRouter(secure *echo.Group, assignmentCtrl *controllers.AssignmentController) {
	// Права проверяются в контроллере: преподаватель видит только свой список.
	secure.GET("/teachers/:id/students", assignmentCtrl.ListStudents)
}
