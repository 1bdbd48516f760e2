package authRoutes

import (
	authController "eduplatform/controllers/auth"
	"eduplatform/middleware"
	authValidator "eduplatform/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router) {
	authGroup := api.Group("/auth")

	authGroup.Post("/login", middleware.RateLimit(middleware.LoginLimit), authValidator.Login(), authController.Login)
	authGroup.Post("/register", middleware.RateLimit(middleware.RegisterLimit), authValidator.Register(), authController.Register)
	authGroup.Get("/verify-email/:token", authController.VerifyEmail)
	authGroup.Post("/forgot-password", middleware.RateLimit(middleware.ForgotPasswordLimit), authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)
	authGroup.Post("/logout", authController.Logout)
	authGroup.Get("/me", middleware.Authenticate, authController.Me)
}
