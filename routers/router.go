package routers

import (
	"eduplatform/config"
	"eduplatform/middleware"
	adminRoutes "eduplatform/routers/adminRoutes"
	authRoutes "eduplatform/routers/authRoutes"
	courseRoutes "eduplatform/routers/courseRoutes"
	enrollmentRoutes "eduplatform/routers/enrollmentRoutes"
	forumRoutes "eduplatform/routers/forumRoutes"
	notificationRoutes "eduplatform/routers/notificationRoutes"
	pageRoutes "eduplatform/routers/pageRoutes"
	paymentRoutes "eduplatform/routers/paymentRoutes"
	systemRoutes "eduplatform/routers/systemRoutes"
	userRoutes "eduplatform/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SetupApp builds the fiber application with its middleware chain and every route group.
func SetupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "EduPlatform",
		ErrorHandler: middleware.ErrorHandler,
		ProxyHeader:  config.AppConfig.ProxyHeader,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger)
	app.Use(middleware.Metrics)
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	api := app.Group("/api")
	systemRoutes.SetupSystemRoutes(app, api)
	authRoutes.SetupAuthRoutes(api)
	courseRoutes.SetupCourseRoutes(api)
	enrollmentRoutes.SetupEnrollmentRoutes(api)
	paymentRoutes.SetupPaymentRoutes(api)
	forumRoutes.SetupForumRoutes(api)
	notificationRoutes.SetupNotificationRoutes(api)
	userRoutes.SetupUserRoutes(api)
	adminRoutes.SetupAdminRoutes(api)

	app.Static("/uploads", config.AppConfig.UploadDir)
	pageRoutes.SetupPageRoutes(app)

	return app
}
