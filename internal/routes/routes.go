package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"alumni-system/internal/controllers"
	"alumni-system/internal/repositories"
	"alumni-system/internal/services"
	"alumni-system/pkg/config"
	"alumni-system/pkg/eventbus"
	"alumni-system/pkg/mailer"
	"alumni-system/pkg/middleware"
	"alumni-system/pkg/service"
	"alumni-system/pkg/sms"
)

// InitRouter собирает весь граф зависимостей и навешивает маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	mailSender mailer.MailerInterface,
	smsSender sms.SenderInterface,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// Репозитории
	userRepo := repositories.NewUserRepository(dbConn, logger)
	assignmentRepo := repositories.NewTeacherStudentRepository(dbConn, logger)
	activityLogRepo := repositories.NewActivityLogRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn, logger)
	facultyRepo := repositories.NewFacultyRepository(dbConn, logger)
	directionRepo := repositories.NewDirectionRepository(dbConn, logger)
	companyRepo := repositories.NewCompanyRepository(dbConn, logger)
	workExperienceRepo := repositories.NewWorkExperienceRepository(dbConn, logger)
	educationGoalRepo := repositories.NewEducationGoalRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Сервисы
	authService := services.NewAuthService(userRepo, activityLogRepo, cacheRepo, txManager, jwtSvc, mailSender, smsSender, logger, &cfg.Auth)
	userService := services.NewUserService(userRepo, activityLogRepo, txManager, bus, logger)
	graduationService := services.NewGraduationService(userRepo, activityLogRepo, notificationRepo, txManager, bus, logger)
	assignmentService := services.NewAssignmentService(assignmentRepo, userRepo, activityLogRepo, txManager, logger)
	dictionaryService := services.NewDictionaryService(facultyRepo, directionRepo, companyRepo, logger)
	notificationService := services.NewNotificationService(notificationRepo, logger)
	profileService := services.NewProfileService(workExperienceRepo, educationGoalRepo, logger)
	activityLogService := services.NewActivityLogService(activityLogRepo)

	// Контроллеры
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	graduationCtrl := controllers.NewGraduationController(graduationService, logger)
	assignmentCtrl := controllers.NewAssignmentController(assignmentService, userService, logger)
	dictionaryCtrl := controllers.NewDictionaryController(dictionaryService, logger)
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)
	profileCtrl := controllers.NewProfileController(profileService, logger)
	activityLogCtrl := controllers.NewActivityLogController(activityLogService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl, authMW)
	runProfileRouter(secureGroup, userCtrl, profileCtrl)
	runAdminRouter(secureGroup, userCtrl, graduationCtrl, assignmentCtrl, activityLogCtrl, authMW)
	runAssignmentRouter(secureGroup, assignmentCtrl)
	runDictionaryRouter(secureGroup, dictionaryCtrl, authMW)
	runNotificationRouter(secureGroup, notificationCtrl)
}
