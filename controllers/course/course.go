package courseController

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/utils"
	"eduplatform/validators"
	courseValidator "eduplatform/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseItem is one row of the catalog listing.
type CourseItem struct {
	course.Course
	CategoryName     string `json:"category_name"`
	InstructorName   string `json:"instructor_name"`
	EnrolledStudents int64  `json:"enrolled_students"`
}

type CourseDetail struct {
	course.Course
	InstructorName   string           `json:"instructor_name"`
	InstructorBio    string           `json:"instructor_bio"`
	InstructorAvatar string           `json:"instructor_avatar"`
	CategoryName     string           `json:"category_name"`
	CategorySlug     string           `json:"category_slug"`
	Sections         []course.Section `json:"sections"`
	ReviewStats      ReviewStats      `json:"review_stats"`
	IsEnrolled       bool             `json:"is_enrolled"`
}

var sortOrders = map[string]string{
	courseValidator.SortNewest:    "courses.created_at DESC",
	courseValidator.SortPopular:   "courses.total_students DESC",
	courseValidator.SortRating:    "courses.rating DESC",
	courseValidator.SortPriceLow:  "courses.price ASC",
	courseValidator.SortPriceHigh: "courses.price DESC",
}

// ListCourses returns the public catalog. Staff may filter by status.
func ListCourses(c *fiber.Ctx) error {
	q := validators.Validated[courseValidator.ListCoursesQuery](c)
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	query := db.Model(&course.Course{})

	status := course.StatusPublished
	if q.Status != "" && user != nil && user.IsStaff() {
		status = q.Status
	}
	query = query.Where("courses.status = ?", status)
	if status != course.StatusPublished && user.Role == models.RoleInstructor {
		query = query.Where("courses.instructor_id = ?", user.ID)
	}

	if q.Category != "" {
		ids, err := categoryTree(db, q.Category)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return middleware.PaginatedResponse(c, []CourseItem{}, 0, q.Page, q.Limit)
		}
		query = query.Where("courses.category_id IN ?", ids)
	}
	if q.Level != "" {
		query = query.Where("courses.level = ?", q.Level)
	}
	if q.InstructorID != 0 {
		query = query.Where("courses.instructor_id = ?", q.InstructorID)
	}
	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ? OR LOWER(courses.tags) LIKE ?",
			term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var courses []course.Course
	err := query.Order(sortOrders[q.Sort]).Order("courses.id DESC").
		Offset(utils.Offset(q.Page, q.Limit)).Limit(q.Limit).
		Find(&courses).Error
	if err != nil {
		return err
	}

	items, err := enrichCourses(db, courses)
	if err != nil {
		return err
	}
	return middleware.PaginatedResponse(c, items, total, q.Page, q.Limit)
}

// categoryTree resolves a category slug to its id plus the ids of its children.
func categoryTree(db *gorm.DB, slug string) ([]uint, error) {
	var ids []uint
	err := db.Model(&course.Category{}).
		Where("slug = ? OR parent_id IN (?)", slug,
			db.Model(&course.Category{}).Select("id").Where("slug = ?", slug)).
		Pluck("id", &ids).Error
	return ids, err
}

// enrichCourses attaches category names, instructor names and live enrollment counts.
func enrichCourses(db *gorm.DB, courses []course.Course) ([]CourseItem, error) {
	items := make([]CourseItem, len(courses))
	if len(courses) == 0 {
		return items, nil
	}

	courseIDs := make([]uint, 0, len(courses))
	instructorIDs := make([]uint, 0, len(courses))
	categoryIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
		instructorIDs = append(instructorIDs, c.InstructorID)
		if c.CategoryID != nil {
			categoryIDs = append(categoryIDs, *c.CategoryID)
		}
	}

	var instructors []models.User
	if err := db.Select("id", "full_name").Where("id IN ?", instructorIDs).Find(&instructors).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(instructors))
	for _, u := range instructors {
		names[u.ID] = u.FullName
	}

	categories := make(map[uint]string)
	if len(categoryIDs) > 0 {
		var rows []course.Category
		if err := db.Select("id", "name").Where("id IN ?", categoryIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, cat := range rows {
			categories[cat.ID] = cat.Name
		}
	}

	var counts []struct {
		CourseID uint
		Total    int64
	}
	err := db.Model(&course.Enrollment{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	enrolled := make(map[uint]int64, len(counts))
	for _, row := range counts {
		enrolled[row.CourseID] = row.Total
	}

	for i, c := range courses {
		items[i] = CourseItem{
			Course:           c,
			InstructorName:   names[c.InstructorID],
			EnrolledStudents: enrolled[c.ID],
		}
		if c.CategoryID != nil {
			items[i].CategoryName = categories[*c.CategoryID]
		}
	}
	return items, nil
}

// findCourse loads a course by numeric id or by slug.
func findCourse(db *gorm.DB, idOrSlug string) (*course.Course, error) {
	var c course.Course
	query := db.Where("slug = ?", idOrSlug)
	if id, ok := utils.ParseID(idOrSlug); ok {
		query = db.Where("id = ?", id)
	}
	if err := query.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.NotFoundError("Course not found")
		}
		return nil, err
	}
	return &c, nil
}

// managedCourse loads the :id course and requires the caller to own it or be an admin.
func managedCourse(c *fiber.Ctx) (*course.Course, *models.User, error) {
	user, err := middleware.MustUser(c)
	if err != nil {
		return nil, nil, err
	}
	id, err := validators.ParamID(c, "id")
	if err != nil {
		return nil, nil, err
	}
	crs, err := findCourse(database.Database.Db, fmt.Sprint(id))
	if err != nil {
		return nil, nil, err
	}
	if !crs.CanManage(user) {
		return nil, nil, middleware.ForbiddenError("You do not have permission to modify this course")
	}
	return crs, user, nil
}

// GetCourse returns the course with its curriculum and review summary.
func GetCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	user, _ := middleware.CurrentUser(c)

	crs, err := findCourse(db, c.Params("id"))
	if err != nil {
		return err
	}
	canManage := crs.CanManage(user)
	if !crs.IsPublished() && !canManage {
		return middleware.NotFoundError("Course not found")
	}

	detail := CourseDetail{Course: *crs}

	var instructor models.User
	if err := db.Select("id", "full_name", "bio", "avatar_url").First(&instructor, crs.InstructorID).Error; err == nil {
		detail.InstructorName = instructor.FullName
		detail.InstructorBio = instructor.Bio
		detail.InstructorAvatar = instructor.AvatarURL
	}
	if crs.CategoryID != nil {
		var cat course.Category
		if err := db.First(&cat, *crs.CategoryID).Error; err == nil {
			detail.CategoryName = cat.Name
			detail.CategorySlug = cat.Slug
		}
	}

	if user != nil {
		var n int64
		if err := db.Model(&course.Enrollment{}).
			Where("student_id = ? AND course_id = ?", user.ID, crs.ID).
			Count(&n).Error; err != nil {
			return err
		}
		detail.IsEnrolled = n > 0
	}

	sections, err := loadCurriculum(db, crs.ID)
	if err != nil {
		return err
	}
	unlocked := detail.IsEnrolled || canManage
	for i := range sections {
		for j := range sections[i].Lessons {
			lesson := &sections[i].Lessons[j]
			if !unlocked && !lesson.IsPreview {
				lesson.ContentURL = nil
				lesson.ContentText = ""
			}
		}
	}
	detail.Sections = sections

	stats, err := reviewStats(db, crs.ID)
	if err != nil {
		return err
	}
	detail.ReviewStats = stats

	return middleware.JsonResponse(c, fiber.StatusOK, "", detail)
}

func loadCurriculum(db *gorm.DB, courseID uint) ([]course.Section, error) {
	sections := []course.Section{}
	err := db.Where("course_id = ?", courseID).
		Order("order_index, id").
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index, id")
		}).
		Find(&sections).Error
	return sections, err
}

// CreateCourse creates a draft course owned by the caller.
func CreateCourse(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[courseValidator.CourseRequest](c)
	db := database.Database.Db

	if req.CategoryID != nil {
		if err := requireCategory(db, *req.CategoryID); err != nil {
			return err
		}
	}

	crs := course.Course{
		InstructorID:     user.ID,
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		Slug:             fmt.Sprintf("%s-%d", utils.Slugify(req.Title), time.Now().UnixMilli()),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		ThumbnailURL:     req.ThumbnailURL,
		PreviewVideoURL:  req.PreviewVideoURL,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		Currency:         req.Currency,
		Level:            req.Level,
		Language:         req.Language,
		DurationHours:    req.DurationHours,
		Status:           course.StatusDraft,
		Requirements:     req.Requirements,
		LearningOutcomes: req.LearningOutcomes,
		TargetAudience:   req.TargetAudience,
		Tags:             req.Tags,
	}
	if err := db.Create(&crs).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return middleware.ConflictError("A course with this slug already exists")
		}
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Course created successfully", fiber.Map{
		"id":   crs.ID,
		"slug": crs.Slug,
	})
}

func requireCategory(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Model(&course.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return middleware.ValidationFields(map[string]string{"category_id": "category_id does not exist"})
	}
	return nil
}

// UpdateCourse applies the fields present in the request. The slug never changes.
func UpdateCourse(c *fiber.Ctx) error {
	crs, user, err := managedCourse(c)
	if err != nil {
		return err
	}
	req := validators.Validated[courseValidator.UpdateCourseRequest](c)
	db := database.Database.Db

	if req.CategoryID != nil {
		if err := requireCategory(db, *req.CategoryID); err != nil {
			return err
		}
		crs.CategoryID = req.CategoryID
	}
	if req.Title != nil {
		crs.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		crs.Description = *req.Description
	}
	if req.ShortDescription != nil {
		crs.ShortDescription = *req.ShortDescription
	}
	if req.ThumbnailURL != nil {
		crs.ThumbnailURL = *req.ThumbnailURL
	}
	if req.PreviewVideoURL != nil {
		crs.PreviewVideoURL = *req.PreviewVideoURL
	}
	if req.Price != nil {
		crs.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		crs.DiscountPrice = req.DiscountPrice
	}
	if req.Currency != nil {
		crs.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Level != nil {
		crs.Level = *req.Level
	}
	if req.Language != nil {
		crs.Language = *req.Language
	}
	if req.DurationHours != nil {
		crs.DurationHours = *req.DurationHours
	}
	if req.IsFeatured != nil {
		if user.Role != models.RoleAdmin {
			return middleware.ForbiddenError("Only admins can feature courses")
		}
		crs.IsFeatured = *req.IsFeatured
	}
	if req.Requirements != nil {
		crs.Requirements = *req.Requirements
	}
	if req.LearningOutcomes != nil {
		crs.LearningOutcomes = *req.LearningOutcomes
	}
	if req.TargetAudience != nil {
		crs.TargetAudience = *req.TargetAudience
	}
	if req.Tags != nil {
		crs.Tags = *req.Tags
	}

	if err := db.Save(crs).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Course updated successfully", crs)
}

// PublishCourse makes a course with at least one section visible in the catalog.
func PublishCourse(c *fiber.Ctx) error {
	crs, _, err := managedCourse(c)
	if err != nil {
		return err
	}
	db := database.Database.Db

	var sections int64
	if err := db.Model(&course.Section{}).Where("course_id = ?", crs.ID).Count(&sections).Error; err != nil {
		return err
	}
	if sections == 0 {
		return middleware.ValidationError("Course must have at least one section before publishing")
	}

	now := time.Now()
	err = db.Model(crs).Updates(map[string]interface{}{
		"status":       course.StatusPublished,
		"published_at": now,
	}).Error
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Course published successfully", fiber.Map{
		"id":           crs.ID,
		"status":       course.StatusPublished,
		"published_at": now,
	})
}

// DeleteCourse archives the course. Rows are kept for enrolled students.
func DeleteCourse(c *fiber.Ctx) error {
	crs, _, err := managedCourse(c)
	if err != nil {
		return err
	}
	if err := database.Database.Db.Model(crs).Update("status", course.StatusArchived).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Course archived successfully", nil)
}
