package courseController

import (
	"errors"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models/course"
	"eduplatform/validators"
	courseValidator "eduplatform/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// nextOrder returns the order_index that appends a row after the current last one.
func nextOrder(db *gorm.DB, model interface{}, column string, id uint) (int, error) {
	var max int
	err := db.Model(model).
		Where(column+" = ?", id).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error
	return max + 1, err
}

// CreateSection appends a section to a course.
func CreateSection(c *fiber.Ctx) error {
	crs, _, err := managedCourse(c)
	if err != nil {
		return err
	}
	req := validators.Validated[courseValidator.SectionRequest](c)
	db := database.Database.Db

	section := course.Section{
		CourseID:    crs.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.OrderIndex != nil {
		section.OrderIndex = *req.OrderIndex
	} else if section.OrderIndex, err = nextOrder(db, &course.Section{}, "course_id", crs.ID); err != nil {
		return err
	}

	if err := db.Create(&section).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, "Section created successfully", section)
}

// CreateLesson appends a lesson to a section of the course.
func CreateLesson(c *fiber.Ctx) error {
	crs, _, err := managedCourse(c)
	if err != nil {
		return err
	}
	sectionID, err := validators.ParamID(c, "sectionId")
	if err != nil {
		return err
	}
	req := validators.Validated[courseValidator.LessonRequest](c)
	db := database.Database.Db

	var section course.Section
	if err := db.Where("id = ? AND course_id = ?", sectionID, crs.ID).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Section not found")
		}
		return err
	}

	lesson := course.Lesson{
		SectionID:       section.ID,
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		ContentURL:      req.ContentURL,
		ContentText:     req.ContentText,
		DurationMinutes: req.DurationMinutes,
		IsPreview:       req.IsPreview,
		IsMandatory:     true,
	}
	if req.IsMandatory != nil {
		lesson.IsMandatory = *req.IsMandatory
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	} else if lesson.OrderIndex, err = nextOrder(db, &course.Lesson{}, "section_id", section.ID); err != nil {
		return err
	}

	if err := db.Create(&lesson).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, "Lesson created successfully", lesson)
}

// ListCategories returns every category, parents before children.
func ListCategories(c *fiber.Ctx) error {
	categories := []course.Category{}
	err := database.Database.Db.
		Order("parent_id IS NOT NULL, name").
		Find(&categories).Error
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "", categories)
}
