package routes

import (
	"time"

	"pasahero-backend/internal/api/handlers"
	"pasahero-backend/internal/api/middleware"
	"pasahero-backend/internal/repository"
	"pasahero-backend/internal/services"
	"pasahero-backend/pkg/cache"
	"pasahero-backend/pkg/email"
	"pasahero-backend/pkg/jwt"
	"pasahero-backend/pkg/ratelimit"
	pkgredis "pasahero-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes wires repositories, services, and handlers onto the router.
// The redis client may be nil; caching and OTP rate limiting are then
// disabled and everything else works unchanged.
func SetupRoutes(router *gin.Engine, db *mongo.Database, redisClient *pkgredis.Client, emailService *email.Service) {
	// Repositories
	terminalRepo := repository.NewTerminalRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	busRepo := repository.NewBusRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	terminalLogRepo := repository.NewTerminalLogRepository(db)
	trackingRepo := repository.NewBusTrackingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	jwtUtil := jwt.NewJWTUtil()
	terminalService := services.NewTerminalService(terminalRepo)
	routeService := services.NewRouteService(routeRepo, terminalRepo)
	busService := services.NewBusService(busRepo)
	driverService := services.NewDriverService(driverRepo)
	userService := services.NewUserService(userRepo, jwtUtil)
	assignmentService := services.NewAssignmentService(assignmentRepo, busRepo, driverRepo, routeRepo, terminalRepo)
	terminalLogService := services.NewTerminalLogService(terminalLogRepo, terminalRepo, busRepo)
	trackingService := services.NewBusTrackingService(trackingRepo, busRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	var otpLimiter *ratelimit.Limiter
	if redisClient != nil {
		cacheManager := cache.NewManager(redisClient, "pasahero")
		terminalService.SetCacheManager(cacheManager)
		routeService.SetCacheManager(cacheManager)
		otpLimiter = ratelimit.NewLimiter(redisClient, "otp", 5, time.Minute)
	}

	// Handlers
	terminalHandler := handlers.NewTerminalHandler(terminalService)
	routeHandler := handlers.NewRouteHandler(routeService)
	busHandler := handlers.NewBusHandler(busService)
	driverHandler := handlers.NewDriverHandler(driverService)
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	terminalLogHandler := handlers.NewTerminalLogHandler(terminalLogService)
	trackingHandler := handlers.NewBusTrackingHandler(trackingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	otpHandler := handlers.NewOTPHandler(emailService, otpLimiter)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
	}

	otp := api.Group("/otp")
	{
		otp.POST("/send", otpHandler.SendOTP)
		otp.GET("/status", otpHandler.Status)
		otp.GET("/test-config", otpHandler.TestConfig)
	}

	api.GET("/terminals", terminalHandler.GetTerminals)
	api.GET("/terminals/:id", terminalHandler.GetTerminal)
	api.GET("/routes", routeHandler.GetRoutes)
	api.GET("/routes/:id", routeHandler.GetRoute)
	api.GET("/buses", busHandler.GetBuses)
	api.GET("/buses/:id", busHandler.GetBus)
	api.GET("/buses/:id/status/latest", trackingHandler.GetLatestStatus)
	api.GET("/buses/:id/location/latest", trackingHandler.GetLatestLocation)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtUtil))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
		}

		protected.POST("/terminals", terminalHandler.CreateTerminal)
		protected.PATCH("/terminals/:id", terminalHandler.UpdateTerminal)

		protected.POST("/routes", routeHandler.CreateRoute)

		protected.POST("/buses", busHandler.CreateBus)
		protected.PATCH("/buses/:id", busHandler.UpdateBus)
		protected.DELETE("/buses/:id", busHandler.DeleteBus)
		protected.POST("/buses/status", trackingHandler.ReportStatus)
		protected.POST("/buses/location", trackingHandler.ReportLocation)

		drivers := protected.Group("/drivers")
		{
			drivers.GET("", driverHandler.GetDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PATCH("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)
		}

		assignments := protected.Group("/assignments")
		{
			assignments.GET("", assignmentHandler.GetAssignments)
			assignments.POST("", assignmentHandler.CreateAssignment)
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.PATCH("/:id/status", assignmentHandler.UpdateAssignmentStatus)
		}

		terminalLogs := protected.Group("/terminal-logs")
		{
			terminalLogs.GET("", terminalLogHandler.GetLogs)
			terminalLogs.POST("", terminalLogHandler.CreateLog)
			terminalLogs.GET("/:id", terminalLogHandler.GetLog)
			terminalLogs.POST("/:id/confirm", terminalLogHandler.ConfirmLog)
			terminalLogs.POST("/:id/reject", terminalLogHandler.RejectLog)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("", notificationHandler.CreateNotification)
		}
	}
}
