package routes

import (
	"alumni-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runNotificationRouter(secure *echo.Group, notificationCtrl *controllers.NotificationController) {
	notificationsGroup := secure.Group("/notifications")
	{
		notificationsGroup.GET("", notificationCtrl.GetMyNotifications)
		notificationsGroup.GET("/unread-count", notificationCtrl.UnreadCount)
		notificationsGroup.POST("/:id/read", notificationCtrl.MarkRead)
		notificationsGroup.POST("/read-all", notificationCtrl.MarkAllRead)
	}
}
