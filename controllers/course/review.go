package courseController

import (
	"math"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models/course"
	"eduplatform/utils"
	"eduplatform/validators"
	courseValidator "eduplatform/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewStats struct {
	TotalReviews  int64   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	FiveStar      int64   `json:"five_star"`
	FourStar      int64   `json:"four_star"`
	ThreeStar     int64   `json:"three_star"`
	TwoStar       int64   `json:"two_star"`
	OneStar       int64   `json:"one_star"`
}

func reviewStats(db *gorm.DB, courseID uint) (ReviewStats, error) {
	var rows []struct {
		Rating int
		Total  int64
	}
	err := db.Model(&course.Review{}).
		Select("rating, COUNT(*) AS total").
		Where("course_id = ?", courseID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return ReviewStats{}, err
	}

	var stats ReviewStats
	var sum int64
	for _, row := range rows {
		stats.TotalReviews += row.Total
		sum += int64(row.Rating) * row.Total
		switch row.Rating {
		case 5:
			stats.FiveStar = row.Total
		case 4:
			stats.FourStar = row.Total
		case 3:
			stats.ThreeStar = row.Total
		case 2:
			stats.TwoStar = row.Total
		case 1:
			stats.OneStar = row.Total
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = roundRating(float64(sum) / float64(stats.TotalReviews))
	}
	return stats, nil
}

func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}

// ListReviews returns a course's reviews, newest first.
func ListReviews(c *fiber.Ctx) error {
	q := validators.Validated[validators.Pagination](c)
	q.Defaults(20)
	db := database.Database.Db

	crs, err := findCourse(db, c.Params("id"))
	if err != nil {
		return err
	}

	type reviewItem struct {
		course.Review
		StudentName string `json:"student_name"`
	}

	query := db.Model(&course.Review{}).Where("reviews.course_id = ?", crs.ID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	items := []reviewItem{}
	err = query.Select("reviews.*, users.full_name AS student_name").
		Joins("LEFT JOIN users ON users.id = reviews.student_id").
		Order("reviews.created_at DESC").
		Offset(utils.Offset(q.Page, q.Limit)).Limit(q.Limit).
		Scan(&items).Error
	if err != nil {
		return err
	}
	return middleware.PaginatedResponse(c, items, total, q.Page, q.Limit)
}

// CreateReview records an enrolled student's rating and refreshes the course aggregate.
func CreateReview(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[courseValidator.ReviewRequest](c)
	db := database.Database.Db

	crs, err := findCourse(db, c.Params("id"))
	if err != nil {
		return err
	}

	var enrolled int64
	if err := db.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", user.ID, crs.ID).
		Count(&enrolled).Error; err != nil {
		return err
	}
	if enrolled == 0 {
		return middleware.ForbiddenError("You must be enrolled to review this course")
	}

	review := course.Review{
		CourseID:           crs.ID,
		StudentID:          user.ID,
		Rating:             req.Rating,
		Title:              req.Title,
		Comment:            req.Comment,
		IsVerifiedPurchase: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		stats, err := reviewStats(tx, crs.ID)
		if err != nil {
			return err
		}
		return tx.Model(&course.Course{}).Where("id = ?", crs.ID).Updates(map[string]interface{}{
			"rating":        stats.AverageRating,
			"total_ratings": stats.TotalReviews,
		}).Error
	})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return middleware.ConflictError("You have already reviewed this course")
		}
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Review submitted successfully", review)
}
