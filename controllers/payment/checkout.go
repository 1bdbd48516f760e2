package paymentController

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/payment"
	"eduplatform/utils"
	"eduplatform/validators"
	paymentValidator "eduplatform/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var errCouponExhausted = errors.New("coupon exhausted")

func providerError(err error) error {
	if errors.Is(err, payment.ErrProviderNotConfigured) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Payment provider is not configured")
	}
	log.Error().Err(err).Msg("payment provider request failed")
	return fiber.NewError(fiber.StatusBadGateway, "Payment provider error")
}

func gateway() (payment.Provider, error) {
	if payment.Gateway == nil {
		return nil, payment.ErrProviderNotConfigured
	}
	return payment.Gateway, nil
}

// usableCoupon looks up code and returns nil when it is unknown or cannot be applied now.
func usableCoupon(db *gorm.DB, code string, now time.Time) (*models.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	var coupon models.Coupon
	if err := db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !coupon.IsUsable(now) {
		return nil, nil
	}
	return &coupon, nil
}

// redeemCoupon records the use and bumps used_count unless the coupon ran out concurrently.
func redeemCoupon(tx *gorm.DB, coupon *models.Coupon, userID, transactionID uint) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", coupon.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errCouponExhausted
	}
	return tx.Create(&models.CouponUse{
		CouponID:      coupon.ID,
		UserID:        userID,
		TransactionID: transactionID,
	}).Error
}

// Checkout prices a course for the caller. A zero final price enrolls immediately; otherwise a
// payment intent is created with the provider and a pending transaction is recorded.
func Checkout(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[paymentValidator.CheckoutRequest](c)
	db := database.Database.Db
	now := time.Now()

	var crs course.Course
	if err := db.Where("id = ? AND status = ?", req.CourseID, course.StatusPublished).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Course not found")
		}
		return err
	}

	var enrolled int64
	if err := db.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", user.ID, crs.ID).
		Count(&enrolled).Error; err != nil {
		return err
	}
	if enrolled > 0 {
		return middleware.ConflictError("Already enrolled in this course")
	}

	coupon, err := usableCoupon(db, req.CouponCode, now)
	if err != nil {
		return err
	}
	finalPrice, discount := utils.ApplyCoupon(crs.BasePrice(), coupon, now)

	if finalPrice <= 0 {
		return enrollFree(c, db, user, &crs, coupon)
	}

	provider, err := gateway()
	if err != nil {
		return providerError(err)
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		customer, err := provider.CreateCustomer(c.UserContext(), user.Email, user.FullName)
		if err != nil {
			return providerError(err)
		}
		customerID = customer.ID
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("stripe_customer_id", customerID).Error; err != nil {
			return err
		}
	}

	metadata := map[string]string{
		"course_id":       fmt.Sprint(crs.ID),
		"user_id":         fmt.Sprint(user.ID),
		"enrollment_type": "course_purchase",
		"discount_amount": fmt.Sprintf("%.2f", discount),
	}
	if coupon != nil {
		metadata["coupon_code"] = coupon.Code
	}
	intent, err := provider.CreatePaymentIntent(c.UserContext(), payment.IntentParams{
		Amount:      utils.ToMinorUnits(finalPrice),
		Currency:    strings.ToLower(crs.Currency),
		CustomerID:  customerID,
		Description: "Enrollment in " + crs.Title,
		Metadata:    metadata,
	})
	if err != nil {
		return providerError(err)
	}

	txn := models.Transaction{
		UserID:          user.ID,
		CourseID:        crs.ID,
		Amount:          finalPrice,
		Currency:        crs.Currency,
		Status:          models.TransactionPending,
		PaymentMethod:   models.PaymentMethodStripe,
		PaymentIntentID: intent.ID,
		Description:     "Enrollment in " + crs.Title,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if coupon == nil {
			return nil
		}
		return redeemCoupon(tx, coupon, user.ID, txn.ID)
	})
	if err != nil {
		if errors.Is(err, errCouponExhausted) {
			return middleware.ConflictError("Coupon is no longer available")
		}
		return err
	}

	utils.PaymentsTotal.WithLabelValues(models.TransactionPending).Inc()

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
		"transaction_id":    txn.ID,
		"amount":            finalPrice,
		"currency":          crs.Currency,
		"discount_applied":  discount > 0,
		"discount_amount":   discount,
	})
}

// enrollFree enrolls without the provider. A coupon that brought the price to zero is still redeemed
// against a zero-amount transaction.
func enrollFree(c *fiber.Ctx, db *gorm.DB, user *models.User, crs *course.Course, coupon *models.Coupon) error {
	var enrollment *course.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if coupon != nil {
			txn := models.Transaction{
				UserID:        user.ID,
				CourseID:      crs.ID,
				Amount:        0,
				Currency:      crs.Currency,
				Status:        models.TransactionCompleted,
				PaymentMethod: models.PaymentMethodFree,
				Description:   "Enrollment in " + crs.Title + " with coupon " + coupon.Code,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
			if err := redeemCoupon(tx, coupon, user.ID, txn.ID); err != nil {
				return err
			}
		}

		var err error
		enrollment, err = utils.EnrollStudent(tx, user, crs, utils.EnrollSourceFree)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrAlreadyEnrolled):
			return middleware.ConflictError("Already enrolled in this course")
		case errors.Is(err, errCouponExhausted):
			return middleware.ConflictError("Coupon is no longer available")
		}
		return err
	}

	utils.EnrollmentsTotal.WithLabelValues(utils.EnrollSourceFree).Inc()
	utils.SendEnrollmentEmail(user.Email, user.FullName, crs.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, "Successfully enrolled in free course", fiber.Map{
		"enrollment_id": enrollment.ID,
		"is_free":       true,
	})
}

// Confirm completes a pending transaction once the provider reports the intent succeeded.
// Confirming an already completed transaction returns the existing enrollment.
func Confirm(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[paymentValidator.ConfirmRequest](c)
	db := database.Database.Db

	provider, err := gateway()
	if err != nil {
		return providerError(err)
	}
	intent, err := provider.RetrievePaymentIntent(c.UserContext(), req.PaymentIntentID)
	if err != nil {
		return providerError(err)
	}
	if intent.Status != payment.StatusSucceeded {
		return middleware.ValidationError("Payment not confirmed")
	}

	var txn models.Transaction
	if err := db.Where("payment_intent_id = ? AND user_id = ?", req.PaymentIntentID, user.ID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Transaction not found")
		}
		return err
	}

	var crs course.Course
	if err := db.First(&crs, txn.CourseID).Error; err != nil {
		return err
	}

	var enrollment *course.Enrollment
	confirmed := false
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status <> ?", txn.ID, models.TransactionCompleted).
			Updates(map[string]interface{}{
				"status":    models.TransactionCompleted,
				"charge_id": intent.LatestCharge,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		confirmed = true

		var err error
		enrollment, err = utils.EnrollStudent(tx, user, &crs, utils.EnrollSourceCheckout)
		if err != nil && !errors.Is(err, utils.ErrAlreadyEnrolled) {
			return err
		}

		if err := utils.Notify(tx, user.ID, models.NotificationPaymentSuccess, "Payment Successful",
			fmt.Sprintf("Your payment for %s was successful. You can now access the course.", crs.Title),
			map[string]interface{}{"course_id": crs.ID, "transaction_id": txn.ID}); err != nil {
			return err
		}

		instructorRevenue, platformFee := utils.RevenueSplit(txn.Amount, config.AppConfig.InstructorShare)
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     crs.InstructorID,
			Action:     models.ActivityRevenueSplit,
			EntityType: "transaction",
			EntityID:   txn.ID,
		}, map[string]interface{}{
			"total_amount":       txn.Amount,
			"instructor_revenue": instructorRevenue,
			"platform_fee":       platformFee,
		})
	})
	if err != nil {
		return err
	}

	if enrollment == nil {
		var existing course.Enrollment
		if err := db.Where("student_id = ? AND course_id = ?", user.ID, crs.ID).First(&existing).Error; err != nil {
			return err
		}
		enrollment = &existing
	}

	message := "Payment already confirmed"
	if confirmed {
		message = "Payment confirmed and enrollment created"
		utils.PaymentsTotal.WithLabelValues(models.TransactionCompleted).Inc()
		utils.EnrollmentsTotal.WithLabelValues(utils.EnrollSourceCheckout).Inc()
		utils.SendPaymentReceiptEmail(user.Email, user.FullName, crs.Title, txn.Amount, txn.Currency)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, message, fiber.Map{
		"enrollment_id":  enrollment.ID,
		"transaction_id": txn.ID,
	})
}
