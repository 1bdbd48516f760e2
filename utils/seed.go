package utils

import (
	"errors"
	"time"

	"eduplatform/config"
	"eduplatform/models"
	"eduplatform/models/course"

	"gorm.io/gorm"
)

// DemoCourseSlug identifies the seeded free course.
const DemoCourseSlug = "getting-started-with-eduplatform"

var defaultCategories = []course.Category{
	{Name: "Web Development", Slug: "web-development", Icon: "code"},
	{Name: "Data Science", Slug: "data-science", Icon: "chart"},
	{Name: "Mobile Development", Slug: "mobile-development", Icon: "phone"},
	{Name: "Design", Slug: "design", Icon: "palette"},
	{Name: "Business", Slug: "business", Icon: "briefcase"},
}

// SeedDemoData creates demo accounts, categories and a free course. Running it again changes nothing.
// Accounts whose password is not configured are skipped.
func SeedDemoData(db *gorm.DB, cfg *config.Config) error {
	logger := Component("seed")

	accounts := []struct {
		email, password, name, role string
	}{
		{cfg.DemoStudentEmail, cfg.DemoStudentPassword, "Alice Student", models.RoleStudent},
		{cfg.DemoInstructorEmail, cfg.DemoInstructorPassword, "John Doe", models.RoleInstructor},
		{cfg.DemoAdminEmail, cfg.DemoAdminPassword, "Platform Admin", models.RoleAdmin},
	}

	var instructor *models.User
	for _, a := range accounts {
		if a.email == "" || a.password == "" {
			logger.Warn().Str("role", a.role).Msg("demo password not configured, skipping account")
			continue
		}
		user, err := seedUser(db, a.email, a.password, a.name, a.role)
		if err != nil {
			return err
		}
		if a.role == models.RoleInstructor {
			instructor = user
		}
	}

	for _, cat := range defaultCategories {
		c := cat
		if err := db.Where(course.Category{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	if instructor != nil {
		if err := seedDemoCourse(db, instructor); err != nil {
			return err
		}
	}

	logger.Info().Msg("demo data ready")
	return nil
}

func seedUser(db *gorm.DB, email, password, name, role string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     name,
		Role:         role,
		IsVerified:   true,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func seedDemoCourse(db *gorm.DB, instructor *models.User) error {
	var existing int64
	if err := db.Model(&course.Course{}).Where("slug = ?", DemoCourseSlug).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	var category course.Category
	if err := db.Where("slug = ?", "web-development").First(&category).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		c := course.Course{
			InstructorID:     instructor.ID,
			CategoryID:       &category.ID,
			Title:            "Getting Started with EduPlatform",
			Slug:             DemoCourseSlug,
			ShortDescription: "A free tour of the platform",
			Description:      "Learn how courses, progress tracking and forums work.",
			Level:            course.LevelBeginner,
			Language:         "en",
			DurationHours:    0.5,
			Status:           course.StatusPublished,
			Tags:             []string{"intro", "free"},
			PublishedAt:      &now,
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}

		section := course.Section{CourseID: c.ID, Title: "Welcome", OrderIndex: 1}
		if err := tx.Create(&section).Error; err != nil {
			return err
		}

		lesson := course.Lesson{
			SectionID:       section.ID,
			Title:           "How this platform works",
			Type:            course.LessonArticle,
			ContentText:     "Enroll, follow the lessons in order and ask questions in the course forum.",
			DurationMinutes: 10,
			OrderIndex:      1,
			IsPreview:       true,
			IsMandatory:     true,
		}
		return tx.Create(&lesson).Error
	})
}
