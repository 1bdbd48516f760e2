package paymentController

import (
	"errors"
	"time"

	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/utils"
	"eduplatform/validators"
	paymentValidator "eduplatform/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransactionItem struct {
	models.Transaction
	CourseTitle  string `json:"course_title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ListTransactions returns the caller's purchase history, newest first.
func ListTransactions(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}

	items := []TransactionItem{}
	err = database.Database.Db.Model(&models.Transaction{}).
		Select("transactions.*, courses.title AS course_title, courses.thumbnail_url AS thumbnail_url").
		Joins("LEFT JOIN courses ON courses.id = transactions.course_id").
		Where("transactions.user_id = ?", user.ID).
		Order("transactions.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "", items)
}

// ValidateCoupon previews the price of a course with a coupon applied.
func ValidateCoupon(c *fiber.Ctx) error {
	req := validators.Validated[paymentValidator.CouponCheckRequest](c)
	db := database.Database.Db
	now := time.Now()

	var crs course.Course
	if err := db.First(&crs, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Course not found")
		}
		return err
	}

	coupon, err := usableCoupon(db, req.CouponCode, now)
	if err != nil {
		return err
	}
	if coupon == nil {
		return middleware.ValidationError("Invalid or expired coupon")
	}

	base := crs.BasePrice()
	finalPrice, discount := utils.ApplyCoupon(base, coupon, now)

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"original_price":     base,
		"discount_amount":    discount,
		"final_price":        finalPrice,
		"discount_type":      coupon.DiscountType,
		"discount_value":     coupon.DiscountValue,
		"coupon_description": coupon.Description,
	})
}

// Earnings reports the instructor share of completed sales. Instructors see their own courses;
// admins see one instructor with ?instructor_id or the whole platform without it.
func Earnings(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	q := validators.Validated[paymentValidator.EarningsQuery](c)

	instructorID := user.ID
	if user.Role == models.RoleAdmin {
		instructorID = q.InstructorID
	}

	query := database.Database.Db.Model(&models.Transaction{}).
		Select("transactions.id AS transaction_id, transactions.course_id, courses.title AS course_title, "+
			"transactions.user_id, transactions.amount, transactions.created_at").
		Joins("JOIN courses ON courses.id = transactions.course_id").
		Where("transactions.status = ?", models.TransactionCompleted)
	if instructorID != 0 {
		query = query.Where("courses.instructor_id = ?", instructorID)
	}

	var rows []utils.EarningRow
	if err := query.Scan(&rows).Error; err != nil {
		return err
	}

	report := utils.SummarizeEarnings(rows, config.AppConfig.InstructorShare, time.Now())
	return middleware.JsonResponse(c, fiber.StatusOK, "", report)
}

// CreateCoupon adds an active coupon.
func CreateCoupon(c *fiber.Ctx) error {
	req := validators.Validated[paymentValidator.CreateCouponRequest](c)

	coupon := models.Coupon{
		Code:          req.Code,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		IsActive:      true,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		MaxUses:       req.MaxUses,
	}
	if err := database.Database.Db.Create(&coupon).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return middleware.ConflictError("Coupon code already exists")
		}
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, "Coupon created successfully", coupon)
}

func ListCoupons(c *fiber.Ctx) error {
	coupons := []models.Coupon{}
	if err := database.Database.Db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "", coupons)
}
