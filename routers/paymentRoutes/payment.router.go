package paymentRoutes

import (
	paymentController "eduplatform/controllers/payment"
	"eduplatform/middleware"
	"eduplatform/models"
	paymentValidator "eduplatform/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(api fiber.Router) {
	paymentGroup := api.Group("/payments", middleware.Authenticate)

	paymentGroup.Post("/checkout", paymentValidator.Checkout(), paymentController.Checkout)
	paymentGroup.Post("/confirm", paymentValidator.Confirm(), paymentController.Confirm)
	paymentGroup.Get("/transactions", paymentController.ListTransactions)
	paymentGroup.Post("/validate-coupon", paymentValidator.ValidateCoupon(), paymentController.ValidateCoupon)
	paymentGroup.Get("/earnings", middleware.Authorize(models.RoleInstructor, models.RoleAdmin), paymentValidator.Earnings(), paymentController.Earnings)

	// Coupon administration
	paymentGroup.Post("/coupons", middleware.Authorize(models.RoleAdmin), paymentValidator.CreateCoupon(), paymentController.CreateCoupon)
	paymentGroup.Get("/coupons", middleware.Authorize(models.RoleAdmin), paymentController.ListCoupons)
}
