package forumController_test

import (
	"fmt"
	"net/http"
	"testing"

	forumController "eduplatform/controllers/forum"
	"eduplatform/models"
	"eduplatform/models/forum"
	"eduplatform/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type forumFixture struct {
	env        *testutil.Env
	course     *testutil.CourseFixture
	instructor *models.User
	author     *models.User
	peer       *models.User
	outsider   *models.User
}

func setupForum(t *testing.T) *forumFixture {
	t.Helper()
	env := testutil.Setup(t)
	f := &forumFixture{
		env:        env,
		instructor: env.CreateUser(t, models.RoleInstructor, "inst@example.com"),
		author:     env.CreateUser(t, models.RoleStudent, "author@example.com"),
		peer:       env.CreateUser(t, models.RoleStudent, "peer@example.com"),
		outsider:   env.CreateUser(t, models.RoleStudent, "outsider@example.com"),
	}
	f.course = env.CreateCourse(t, f.instructor, "Forum Course", 0, 2)
	for _, u := range []*models.User{f.author, f.peer} {
		resp := env.Do(t, http.MethodPost, "/api/enrollments/enroll", env.Token(t, u), map[string]interface{}{
			"course_id": f.course.Course.ID,
		})
		require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	}
	return f
}

func (f *forumFixture) createThread(t *testing.T, user *models.User, title string) uint {
	t.Helper()
	resp := f.env.Do(t, http.MethodPost, "/api/forums/thread", f.env.Token(t, user), map[string]interface{}{
		"course_id": f.course.Course.ID,
		"title":     title,
		"content":   "How do **goroutines** work? <script>alert(1)</script>",
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	var out struct {
		ThreadID uint `json:"thread_id"`
	}
	resp.Decode(t, &out)
	return out.ThreadID
}

func (f *forumFixture) reply(t *testing.T, user *models.User, threadID uint, parent *uint, content string) *testutil.Response {
	t.Helper()
	body := map[string]interface{}{"thread_id": threadID, "content": content}
	if parent != nil {
		body["parent_reply_id"] = *parent
	}
	return f.env.Do(t, http.MethodPost, "/api/forums/reply", f.env.Token(t, user), body)
}

func (f *forumFixture) mustReply(t *testing.T, user *models.User, threadID uint, parent *uint, content string) uint {
	t.Helper()
	resp := f.reply(t, user, threadID, parent, content)
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	var out struct {
		ReplyID uint `json:"reply_id"`
	}
	resp.Decode(t, &out)
	return out.ReplyID
}

type threadResponse struct {
	Thread  forumController.ThreadDetail `json:"thread"`
	Replies []*forumController.ReplyNode `json:"replies"`
}

func (f *forumFixture) getThread(t *testing.T, token string, threadID uint) threadResponse {
	t.Helper()
	resp := f.env.Do(t, http.MethodGet, fmt.Sprintf("/api/forums/thread/%d", threadID), token, nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var out threadResponse
	resp.Decode(t, &out)
	return out
}

func TestCreateThreadPermissions(t *testing.T) {
	f := setupForum(t)
	env := f.env

	resp := env.Do(t, http.MethodPost, "/api/forums/thread", env.Token(t, f.outsider), map[string]interface{}{
		"course_id": f.course.Course.ID, "title": "Can I join?", "content": "I am not enrolled here.",
	})
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = env.Do(t, http.MethodPost, "/api/forums/thread", env.Token(t, f.author), map[string]interface{}{
		"course_id": f.course.Course.ID, "lesson_id": 9999, "title": "Wrong lesson", "content": "This lesson is elsewhere.",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	threadID := f.createThread(t, f.author, "Question about goroutines")

	var notes []models.Notification
	require.NoError(t, env.DB.Where("type = ?", models.NotificationForumPost).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, f.instructor.ID, notes[0].UserID)

	f.createThread(t, f.instructor, "Announcements from the instructor")
	var posts int64
	env.DB.Model(&models.Notification{}).Where("type = ?", models.NotificationForumPost).Count(&posts)
	assert.Equal(t, int64(1), posts, "instructors are not notified of their own threads")

	detail := f.getThread(t, "", threadID)
	assert.Equal(t, 1, detail.Thread.ViewsCount)
	assert.Contains(t, detail.Thread.ContentHTML, "<strong>goroutines</strong>")
	assert.NotContains(t, detail.Thread.ContentHTML, "<script>")
	assert.False(t, detail.Thread.CanModerate)
	assert.Equal(t, "Forum Course", detail.Thread.CourseTitle)

	detail = f.getThread(t, env.Token(t, f.author), threadID)
	assert.Equal(t, 2, detail.Thread.ViewsCount)
	assert.True(t, detail.Thread.CanModerate)
}

func TestReplyTreeAndNotifications(t *testing.T) {
	f := setupForum(t)
	env := f.env
	threadID := f.createThread(t, f.author, "Question about channels")

	first := f.mustReply(t, f.peer, threadID, nil, "Use a buffered channel.")
	nested := f.mustReply(t, f.instructor, threadID, &first, "Or an unbuffered one with a worker.")
	second := f.mustReply(t, f.author, threadID, nil, "Thanks both!")

	var thread forum.Thread
	require.NoError(t, env.DB.First(&thread, threadID).Error)
	assert.Equal(t, 3, thread.RepliesCount)
	assert.NotNil(t, thread.LastReplyAt)

	var toAuthor, toPeer int64
	env.DB.Model(&models.Notification{}).Where("user_id = ? AND type = ?", f.author.ID, models.NotificationForumReply).Count(&toAuthor)
	env.DB.Model(&models.Notification{}).Where("user_id = ? AND type = ?", f.peer.ID, models.NotificationForumReply).Count(&toPeer)
	assert.Equal(t, int64(2), toAuthor, "peer and instructor replied, the author's own reply is not notified")
	assert.Equal(t, int64(1), toPeer)

	detail := f.getThread(t, env.Token(t, f.peer), threadID)
	require.Len(t, detail.Replies, 2)
	assert.Equal(t, first, detail.Replies[0].ID)
	assert.Equal(t, second, detail.Replies[1].ID)
	require.Len(t, detail.Replies[0].Children, 1)
	assert.Equal(t, nested, detail.Replies[0].Children[0].ID)
	assert.Equal(t, f.peer.FullName, detail.Replies[0].Children[0].ParentAuthorName)

	otherThread := f.createThread(t, f.peer, "Another question here")
	resp := f.reply(t, f.author, otherThread, &first, "Misplaced reply")
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = f.reply(t, f.outsider, threadID, nil, "Let me in")
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = env.Do(t, http.MethodPut, fmt.Sprintf("/api/forums/thread/%d", threadID), env.Token(t, f.author),
		map[string]interface{}{"is_locked": true})
	assert.Equal(t, http.StatusForbidden, resp.Status, "authors cannot lock")

	resp = env.Do(t, http.MethodPut, fmt.Sprintf("/api/forums/thread/%d", threadID), env.Token(t, f.instructor),
		map[string]interface{}{"is_locked": true, "is_pinned": true})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	resp = f.reply(t, f.peer, threadID, nil, "Too late")
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestSingleSolution(t *testing.T) {
	f := setupForum(t)
	env := f.env
	threadID := f.createThread(t, f.author, "Which approach is right?")
	a := f.mustReply(t, f.peer, threadID, nil, "Approach A")
	b := f.mustReply(t, f.instructor, threadID, nil, "Approach B")

	resp := env.Do(t, http.MethodPost, fmt.Sprintf("/api/forums/solution/%d", a), env.Token(t, f.peer), nil)
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = env.Do(t, http.MethodPost, fmt.Sprintf("/api/forums/solution/%d", a), env.Token(t, f.author), nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	resp = env.Do(t, http.MethodPost, fmt.Sprintf("/api/forums/solution/%d", b), env.Token(t, f.instructor), nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var solutions []forum.Reply
	require.NoError(t, env.DB.Where("thread_id = ? AND is_solution = ?", threadID, true).Find(&solutions).Error)
	require.Len(t, solutions, 1)
	assert.Equal(t, b, solutions[0].ID)

	detail := f.getThread(t, "", threadID)
	require.Len(t, detail.Replies, 2)
	assert.Equal(t, b, detail.Replies[0].ID, "the solution is listed first")
	assert.True(t, detail.Replies[0].IsSolution)
}

func TestToggleLike(t *testing.T) {
	f := setupForum(t)
	env := f.env
	threadID := f.createThread(t, f.author, "Like this reply please")
	replyID := f.mustReply(t, f.peer, threadID, nil, "A helpful answer")
	path := fmt.Sprintf("/api/forums/like/%d", replyID)

	type likeResult struct {
		Liked      bool `json:"liked"`
		LikesCount int  `json:"likes_count"`
	}
	toggle := func(user *models.User) likeResult {
		resp := env.Do(t, http.MethodPost, path, env.Token(t, user), nil)
		require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
		var out likeResult
		resp.Decode(t, &out)
		return out
	}

	assert.Equal(t, likeResult{Liked: true, LikesCount: 1}, toggle(f.author))
	assert.Equal(t, likeResult{Liked: true, LikesCount: 2}, toggle(f.instructor))

	detail := f.getThread(t, env.Token(t, f.author), threadID)
	require.Len(t, detail.Replies, 1)
	assert.True(t, detail.Replies[0].Liked)
	assert.Equal(t, 2, detail.Replies[0].LikesCount)

	assert.Equal(t, likeResult{Liked: false, LikesCount: 1}, toggle(f.author))
	assert.Equal(t, likeResult{Liked: true, LikesCount: 2}, toggle(f.author))

	detail = f.getThread(t, env.Token(t, f.peer), threadID)
	assert.False(t, detail.Replies[0].Liked)

	resp := env.Do(t, http.MethodPost, "/api/forums/like/9999", env.Token(t, f.author), nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestListAndSearchThreads(t *testing.T) {
	f := setupForum(t)
	env := f.env
	quiet := f.createThread(t, f.author, "Nobody answered this one")
	busy := f.createThread(t, f.peer, "Popular discussion about Generics")
	f.mustReply(t, f.author, busy, nil, "Generics are great")

	listPath := fmt.Sprintf("/api/forums/course/%d", f.course.Course.ID)
	type threadPage struct {
		Items []forumController.ThreadItem `json:"items"`
		Total int64                        `json:"total"`
	}

	resp := env.Do(t, http.MethodGet, listPath+"?sort=unanswered", "", nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var page threadPage
	resp.Decode(t, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, quiet, page.Items[0].ID)

	resp = env.Do(t, http.MethodGet, listPath+"?sort=popular", "", nil)
	page = threadPage{}
	resp.Decode(t, &page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, busy, page.Items[0].ID)
	assert.Equal(t, f.peer.FullName, page.Items[0].AuthorName)

	resp = env.Do(t, http.MethodGet, listPath, "", nil)
	page = threadPage{}
	resp.Decode(t, &page)
	assert.Equal(t, int64(2), page.Total)

	resp = env.Do(t, http.MethodGet, "/api/forums/course/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = env.Do(t, http.MethodGet, fmt.Sprintf("/api/forums/search?q=generics&course_id=%d", f.course.Course.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var found []forumController.ThreadItem
	resp.Decode(t, &found)
	require.Len(t, found, 1)
	assert.Equal(t, busy, found[0].ID)

	resp = env.Do(t, http.MethodGet, "/api/forums/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestAdminCanModerate(t *testing.T) {
	f := setupForum(t)
	admin := f.env.CreateUser(t, models.RoleAdmin, "admin@example.com")
	threadID := f.createThread(t, f.author, "Admin should see tools")

	detail := f.getThread(t, f.env.Token(t, admin), threadID)
	assert.True(t, detail.Thread.CanModerate)

	resp := f.env.Do(t, http.MethodPut, fmt.Sprintf("/api/forums/thread/%d", threadID), f.env.Token(t, admin),
		map[string]interface{}{"is_pinned": true})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var pinned forum.Thread
	resp.Decode(t, &pinned)
	assert.True(t, pinned.IsPinned)
}
