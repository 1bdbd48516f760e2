package forumController

import (
	"errors"
	"fmt"
	"strings"

	"eduplatform/cache"
	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/models/forum"
	"eduplatform/utils"
	"eduplatform/validators"
	forumValidator "eduplatform/validators/forum"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const searchLimit = 50

type ThreadItem struct {
	forum.Thread
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	AuthorRole   string `json:"author_role"`
}

type ThreadDetail struct {
	ThreadItem
	CourseTitle string `json:"course_title"`
	LessonTitle string `json:"lesson_title,omitempty"`
	ContentHTML string `json:"content_html"`
	CanModerate bool   `json:"can_moderate"`
}

func findCourse(db *gorm.DB, id uint) (*course.Course, error) {
	var crs course.Course
	if err := db.First(&crs, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.NotFoundError("Course not found")
		}
		return nil, err
	}
	return &crs, nil
}

func findThread(db *gorm.DB, id uint) (*forum.Thread, error) {
	var thread forum.Thread
	if err := db.First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.NotFoundError("Thread not found")
		}
		return nil, err
	}
	return &thread, nil
}

// canParticipate reports whether user may post in the course forum: enrolled students plus staff.
func canParticipate(db *gorm.DB, user *models.User, courseID uint) (bool, error) {
	if user.IsStaff() {
		return true, nil
	}
	var n int64
	err := db.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", user.ID, courseID).
		Count(&n).Error
	return n > 0, err
}

// canModerate is true for the course instructor and admins.
func canModerate(user *models.User, crs *course.Course) bool {
	return user != nil && crs.CanManage(user)
}

func authors(db *gorm.DB, ids []uint) (map[uint]models.User, error) {
	users := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var rows []models.User
	if err := db.Select("id", "full_name", "avatar_url", "role").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

func threadItems(db *gorm.DB, threads []forum.Thread) ([]ThreadItem, error) {
	authorIDs := make([]uint, 0, len(threads))
	for _, t := range threads {
		authorIDs = append(authorIDs, t.AuthorID)
	}
	users, err := authors(db, authorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ThreadItem, 0, len(threads))
	for _, t := range threads {
		u := users[t.AuthorID]
		items = append(items, ThreadItem{
			Thread:       t,
			AuthorName:   u.FullName,
			AuthorAvatar: u.AvatarURL,
			AuthorRole:   u.Role,
		})
	}
	return items, nil
}

// ListThreads lists a course's threads as recent, popular or unanswered.
func ListThreads(c *fiber.Ctx) error {
	courseID, err := validators.ParamID(c, "courseId")
	if err != nil {
		return err
	}
	q := validators.Validated[forumValidator.ListThreadsQuery](c)
	db := database.Database.Db

	if _, err := findCourse(db, courseID); err != nil {
		return err
	}

	query := db.Model(&forum.Thread{}).Where("course_id = ?", courseID)
	switch q.Sort {
	case forumValidator.SortPopular:
		query = query.Order("replies_count DESC").Order("views_count DESC")
	case forumValidator.SortUnanswered:
		query = query.Where("replies_count = 0").Order("created_at DESC")
	default:
		query = query.Order("is_pinned DESC").Order("COALESCE(last_reply_at, created_at) DESC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var threads []forum.Thread
	if err := query.Order("id DESC").Offset(utils.Offset(q.Page, q.Limit)).Limit(q.Limit).Find(&threads).Error; err != nil {
		return err
	}

	items, err := threadItems(db, threads)
	if err != nil {
		return err
	}
	return middleware.PaginatedResponse(c, items, total, q.Page, q.Limit)
}

// GetThread returns a thread with its reply tree and counts the view.
func GetThread(c *fiber.Ctx) error {
	threadID, err := validators.ParamID(c, "threadId")
	if err != nil {
		return err
	}
	user, _ := middleware.CurrentUser(c)
	db := database.Database.Db

	thread, err := findThread(db, threadID)
	if err != nil {
		return err
	}
	if err := db.Model(thread).UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return err
	}
	thread.ViewsCount++

	crs, err := findCourse(db, thread.CourseID)
	if err != nil {
		return err
	}

	var replies []forum.Reply
	if err := db.Where("thread_id = ?", thread.ID).Order("created_at, id").Find(&replies).Error; err != nil {
		return err
	}

	authorIDs := []uint{thread.AuthorID}
	for _, r := range replies {
		authorIDs = append(authorIDs, r.AuthorID)
	}
	users, err := authors(db, authorIDs)
	if err != nil {
		return err
	}

	replyAuthor := make(map[uint]uint, len(replies))
	for _, r := range replies {
		replyAuthor[r.ID] = r.AuthorID
	}

	nodes := make([]*ReplyNode, 0, len(replies))
	for _, r := range replies {
		u := users[r.AuthorID]
		n := &ReplyNode{
			Reply:        r,
			AuthorName:   u.FullName,
			AuthorAvatar: u.AvatarURL,
			AuthorRole:   u.Role,
			ContentHTML:  utils.RenderContent(r.Content),
		}
		if r.ParentReplyID != nil {
			if authorID, ok := replyAuthor[*r.ParentReplyID]; ok {
				n.ParentAuthorName = users[authorID].FullName
			}
		}
		if user != nil {
			liked, err := cache.Cache.Exists(c.UserContext(), cache.LikeKey(user.ID, r.ID))
			if err != nil {
				log.Warn().Err(err).Uint("reply_id", r.ID).Msg("like lookup failed")
			}
			n.Liked = liked
		}
		nodes = append(nodes, n)
	}

	author := users[thread.AuthorID]
	detail := ThreadDetail{
		ThreadItem: ThreadItem{
			Thread:       *thread,
			AuthorName:   author.FullName,
			AuthorAvatar: author.AvatarURL,
			AuthorRole:   author.Role,
		},
		CourseTitle: crs.Title,
		ContentHTML: utils.RenderContent(thread.Content),
		CanModerate: user != nil && (user.ID == thread.AuthorID || canModerate(user, crs)),
	}
	if thread.LessonID != nil {
		var lesson course.Lesson
		if err := db.Select("id", "title").First(&lesson, *thread.LessonID).Error; err == nil {
			detail.LessonTitle = lesson.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"thread":  detail,
		"replies": BuildReplyTree(nodes),
	})
}

// CreateThread opens a discussion and notifies the course instructor.
func CreateThread(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[forumValidator.CreateThreadRequest](c)
	db := database.Database.Db

	crs, err := findCourse(db, req.CourseID)
	if err != nil {
		return err
	}
	ok, err := canParticipate(db, user, crs.ID)
	if err != nil {
		return err
	}
	if !ok {
		return middleware.ForbiddenError("You must be enrolled to post")
	}

	if req.LessonID != nil {
		var n int64
		err := db.Model(&course.Lesson{}).
			Joins("JOIN sections ON sections.id = lessons.section_id").
			Where("lessons.id = ? AND sections.course_id = ?", *req.LessonID, crs.ID).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n == 0 {
			return middleware.ValidationFields(map[string]string{"lesson_id": "lesson does not belong to this course"})
		}
	}

	thread := forum.Thread{
		CourseID: crs.ID,
		LessonID: req.LessonID,
		AuthorID: user.ID,
		Title:    req.Title,
		Content:  req.Content,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}
		if crs.InstructorID == user.ID {
			return nil
		}
		return utils.Notify(tx, crs.InstructorID, models.NotificationForumPost, "New Forum Discussion",
			fmt.Sprintf("New discussion in %s: %q", crs.Title, thread.Title),
			map[string]interface{}{"thread_id": thread.ID, "course_id": crs.ID})
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Thread created successfully", fiber.Map{
		"thread_id": thread.ID,
	})
}

// UpdateThread lets the author edit the text and the course staff pin or lock.
func UpdateThread(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	threadID, err := validators.ParamID(c, "threadId")
	if err != nil {
		return err
	}
	req := validators.Validated[forumValidator.UpdateThreadRequest](c)
	db := database.Database.Db

	thread, err := findThread(db, threadID)
	if err != nil {
		return err
	}
	crs, err := findCourse(db, thread.CourseID)
	if err != nil {
		return err
	}

	isAuthor := thread.AuthorID == user.ID
	isModerator := canModerate(user, crs)

	if (req.Title != nil || req.Content != nil) && !isAuthor && !isModerator {
		return middleware.ForbiddenError("Only the author can edit this thread")
	}
	if (req.IsPinned != nil || req.IsLocked != nil) && !isModerator {
		return middleware.ForbiddenError("Only the course instructor or an admin can pin or lock threads")
	}

	if req.Title != nil {
		thread.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		thread.Content = strings.TrimSpace(*req.Content)
	}
	if req.IsPinned != nil {
		thread.IsPinned = *req.IsPinned
	}
	if req.IsLocked != nil {
		thread.IsLocked = *req.IsLocked
	}

	if err := db.Save(thread).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Thread updated successfully", thread)
}

// Search matches thread titles and bodies, newest first.
func Search(c *fiber.Ctx) error {
	q := validators.Validated[forumValidator.SearchQuery](c)
	db := database.Database.Db

	term := "%" + strings.ToLower(q.Q) + "%"
	query := db.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", term, term)
	if q.CourseID != 0 {
		query = query.Where("course_id = ?", q.CourseID)
	}

	var threads []forum.Thread
	if err := query.Order("created_at DESC").Order("id DESC").Limit(searchLimit).Find(&threads).Error; err != nil {
		return err
	}

	items, err := threadItems(db, threads)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", items)
}
