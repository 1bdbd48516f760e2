package forumController

import (
	"errors"
	"fmt"
	"time"

	"eduplatform/cache"
	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/forum"
	"eduplatform/utils"
	"eduplatform/validators"
	forumValidator "eduplatform/validators/forum"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const likeTTL = 365 * 24 * time.Hour

func findReply(db *gorm.DB, id uint) (*forum.Reply, error) {
	var reply forum.Reply
	if err := db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.NotFoundError("Reply not found")
		}
		return nil, err
	}
	return &reply, nil
}

// CreateReply posts to an unlocked thread and notifies the thread author and the parent reply's author.
func CreateReply(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[forumValidator.CreateReplyRequest](c)
	db := database.Database.Db

	var thread forum.Thread
	if err := db.Where("id = ? AND is_locked = ?", req.ThreadID, false).First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Thread not found or locked")
		}
		return err
	}

	ok, err := canParticipate(db, user, thread.CourseID)
	if err != nil {
		return err
	}
	if !ok {
		return middleware.ForbiddenError("You must be enrolled to reply")
	}

	var parent *forum.Reply
	if req.ParentReplyID != nil {
		parent, err = findReply(db, *req.ParentReplyID)
		if err != nil {
			var appErr *middleware.AppError
			if errors.As(err, &appErr) {
				return middleware.ValidationError("Parent reply not found in this thread")
			}
			return err
		}
		if parent.ThreadID != thread.ID {
			return middleware.ValidationError("Parent reply not found in this thread")
		}
	}

	reply := forum.Reply{
		ThreadID:      thread.ID,
		AuthorID:      user.ID,
		ParentReplyID: req.ParentReplyID,
		Content:       req.Content,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		if err := tx.Model(&forum.Thread{}).Where("id = ?", thread.ID).Updates(map[string]interface{}{
			"replies_count": gorm.Expr("replies_count + 1"),
			"last_reply_at": reply.CreatedAt,
		}).Error; err != nil {
			return err
		}

		data := map[string]interface{}{"thread_id": thread.ID, "reply_id": reply.ID}
		if thread.AuthorID != user.ID {
			if err := utils.Notify(tx, thread.AuthorID, models.NotificationForumReply, "New Reply",
				fmt.Sprintf("Someone replied to your discussion: %q", thread.Title), data); err != nil {
				return err
			}
		}
		if parent != nil && parent.AuthorID != user.ID && parent.AuthorID != thread.AuthorID {
			if err := utils.Notify(tx, parent.AuthorID, models.NotificationForumReply, "Reply to Your Comment",
				fmt.Sprintf("Someone replied to your comment in %q", thread.Title), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Reply posted successfully", fiber.Map{
		"reply_id": reply.ID,
	})
}

// MarkSolution flags a reply as the thread's answer and clears any earlier one.
func MarkSolution(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	replyID, err := validators.ParamID(c, "replyId")
	if err != nil {
		return err
	}
	db := database.Database.Db

	reply, err := findReply(db, replyID)
	if err != nil {
		return err
	}
	thread, err := findThread(db, reply.ThreadID)
	if err != nil {
		return err
	}
	crs, err := findCourse(db, thread.CourseID)
	if err != nil {
		return err
	}
	if thread.AuthorID != user.ID && !canModerate(user, crs) {
		return middleware.ForbiddenError("Only the thread author, course instructor or an admin can mark a solution")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&forum.Reply{}).
			Where("thread_id = ? AND id <> ? AND is_solution = ?", thread.ID, reply.ID, true).
			Update("is_solution", false).Error; err != nil {
			return err
		}
		return tx.Model(&forum.Reply{}).Where("id = ?", reply.ID).Update("is_solution", true).Error
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Solution marked successfully", fiber.Map{
		"reply_id":  reply.ID,
		"thread_id": thread.ID,
	})
}

// ToggleLike likes or unlikes a reply. The cache marker is claimed first and released again
// when the counter update fails.
func ToggleLike(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	replyID, err := validators.ParamID(c, "replyId")
	if err != nil {
		return err
	}
	db := database.Database.Db
	ctx := c.UserContext()

	reply, err := findReply(db, replyID)
	if err != nil {
		return err
	}

	key := cache.LikeKey(user.ID, reply.ID)
	liked, err := cache.Cache.SetNX(ctx, key, "1", likeTTL)
	if err != nil {
		return err
	}

	if liked {
		if err := db.Model(&forum.Reply{}).Where("id = ?", reply.ID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
			if _, delErr := cache.Cache.Delete(ctx, key); delErr != nil {
				log.Error().Err(delErr).Str("key", key).Msg("failed to release like marker")
			}
			return err
		}
	} else {
		removed, err := cache.Cache.Delete(ctx, key)
		if err != nil {
			return err
		}
		if removed {
			if err := db.Model(&forum.Reply{}).Where("id = ?", reply.ID).
				UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error; err != nil {
				if setErr := cache.Cache.Set(ctx, key, "1", likeTTL); setErr != nil {
					log.Error().Err(setErr).Str("key", key).Msg("failed to restore like marker")
				}
				return err
			}
		}
	}

	var count int
	if err := db.Model(&forum.Reply{}).Where("id = ?", reply.ID).Select("likes_count").Scan(&count).Error; err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}
