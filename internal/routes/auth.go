package routes

import (
	"alumni-system/internal/controllers"
	"alumni-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.Refresh)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.POST("/password/forgot", authCtrl.RequestPasswordReset)
		authGroup.POST("/password/verify_code", authCtrl.VerifyResetCode)
		authGroup.POST("/password/reset", authCtrl.ResetPassword)
		authGroup.POST("/email/verify", authCtrl.VerifyEmail)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
