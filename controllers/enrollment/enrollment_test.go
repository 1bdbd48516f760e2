package enrollmentController_test

import (
	"fmt"
	"net/http"
	"testing"

	enrollmentController "eduplatform/controllers/enrollment"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enroll(t *testing.T, env *testutil.Env, token string, courseID uint, method string) *testutil.Response {
	t.Helper()
	body := map[string]interface{}{"course_id": courseID}
	if method != "" {
		body["payment_method"] = method
	}
	return env.Do(t, http.MethodPost, "/api/enrollments/enroll", token, body)
}

func completeLesson(t *testing.T, env *testutil.Env, token string, lessonID uint, minutes int) (int, bool) {
	t.Helper()
	resp := env.Do(t, http.MethodPost, "/api/enrollments/progress/update", token, map[string]interface{}{
		"lesson_id": lessonID, "is_completed": true, "time_spent_minutes": minutes,
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var out struct {
		ProgressPercentage int  `json:"progress_percentage"`
		IsCompleted        bool `json:"is_completed"`
	}
	resp.Decode(t, &out)
	return out.ProgressPercentage, out.IsCompleted
}

func TestEnrollFreeCourse(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "inst@example.com")
	student := env.CreateUser(t, models.RoleStudent, "stud@example.com")
	fixture := env.CreateCourse(t, instructor, "Free Course", 0, 2)
	token := env.Token(t, student)

	resp := enroll(t, env, token, fixture.Course.ID, "")
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	resp = enroll(t, env, token, fixture.Course.ID, "")
	assert.Equal(t, http.StatusConflict, resp.Status)

	var enrollments int64
	env.DB.Model(&course.Enrollment{}).Where("student_id = ?", student.ID).Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)

	var stored course.Course
	require.NoError(t, env.DB.First(&stored, fixture.Course.ID).Error)
	assert.Equal(t, 1, stored.TotalStudents)

	var notifications []models.Notification
	require.NoError(t, env.DB.Order("id").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	assert.Equal(t, student.ID, notifications[0].UserID)
	assert.Equal(t, models.NotificationEnrollment, notifications[0].Type)
	assert.Equal(t, instructor.ID, notifications[1].UserID)
	assert.Equal(t, models.NotificationNewStudent, notifications[1].Type)

	var txns int64
	env.DB.Model(&models.Transaction{}).Count(&txns)
	assert.Zero(t, txns)
}

func TestEnrollPricedCourseRecordsTransaction(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "inst@example.com")
	student := env.CreateUser(t, models.RoleStudent, "stud@example.com")
	fixture := env.CreateCourse(t, instructor, "Priced Course", 25, 1)

	resp := enroll(t, env, env.Token(t, student), fixture.Course.ID, models.PaymentMethodPaypal)
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	var txn models.Transaction
	require.NoError(t, env.DB.Where("user_id = ?", student.ID).First(&txn).Error)
	assert.Equal(t, models.TransactionCompleted, txn.Status)
	assert.Equal(t, 25.0, txn.Amount)
	assert.Equal(t, models.PaymentMethodPaypal, txn.PaymentMethod)
}

func TestEnrollRejectsUnpublishedCourse(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "inst@example.com")
	student := env.CreateUser(t, models.RoleStudent, "stud@example.com")
	fixture := env.CreateCourse(t, instructor, "Hidden Course", 0, 1)
	require.NoError(t, env.DB.Model(fixture.Course).Update("status", course.StatusDraft).Error)

	resp := enroll(t, env, env.Token(t, student), fixture.Course.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = enroll(t, env, env.Token(t, student), 9999, "")
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = enroll(t, env, "", fixture.Course.ID, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestProgressCompletesOnce(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "inst@example.com")
	student := env.CreateUser(t, models.RoleStudent, "stud@example.com")
	fixture := env.CreateCourse(t, instructor, "Three Lessons", 0, 3)
	token := env.Token(t, student)

	resp := env.Do(t, http.MethodPost, "/api/enrollments/progress/update", token, map[string]interface{}{
		"lesson_id": fixture.Lessons[0].ID, "is_completed": true,
	})
	assert.Equal(t, http.StatusForbidden, resp.Status)

	resp = env.Do(t, http.MethodPost, "/api/enrollments/progress/update", token, map[string]interface{}{
		"lesson_id": 9999, "is_completed": true,
	})
	assert.Equal(t, http.StatusNotFound, resp.Status)

	require.Equal(t, http.StatusCreated, enroll(t, env, token, fixture.Course.ID, "").Status)

	pct, done := completeLesson(t, env, token, fixture.Lessons[0].ID, 5)
	assert.Equal(t, 33, pct)
	assert.False(t, done)

	pct, _ = completeLesson(t, env, token, fixture.Lessons[0].ID, 7)
	assert.Equal(t, 33, pct, "repeating a lesson does not count twice")

	var progress course.LessonProgress
	require.NoError(t, env.DB.Where("lesson_id = ?", fixture.Lessons[0].ID).First(&progress).Error)
	assert.Equal(t, 12, progress.TimeSpentMinutes)

	pct, _ = completeLesson(t, env, token, fixture.Lessons[1].ID, 0)
	assert.Equal(t, 67, pct)

	pct, done = completeLesson(t, env, token, fixture.Lessons[2].ID, 0)
	assert.Equal(t, 100, pct)
	assert.True(t, done)

	var enrollment course.Enrollment
	require.NoError(t, env.DB.Where("student_id = ?", student.ID).First(&enrollment).Error)
	assert.Equal(t, course.EnrollmentCompleted, enrollment.Status)
	assert.True(t, enrollment.CertificateIssued)
	assert.Regexp(t, `^EDU-\d{6}-[0-9A-F]{8}$`, enrollment.CertificateNumber)
	assert.Equal(t, fmt.Sprintf("/api/enrollments/certificate/%d", enrollment.ID), enrollment.CertificateURL)
	firstNumber := enrollment.CertificateNumber

	pct, done = completeLesson(t, env, token, fixture.Lessons[2].ID, 1)
	assert.Equal(t, 100, pct)
	assert.True(t, done)

	require.NoError(t, env.DB.First(&enrollment, enrollment.ID).Error)
	assert.Equal(t, firstNumber, enrollment.CertificateNumber)

	var completions int64
	env.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", student.ID, models.NotificationCourseCompleted).
		Count(&completions)
	assert.Equal(t, int64(1), completions)
}

func TestGetProgressAndMyCourses(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "inst@example.com")
	student := env.CreateUser(t, models.RoleStudent, "stud@example.com")
	fixture := env.CreateCourse(t, instructor, "Two Lessons", 0, 2)
	token := env.Token(t, student)
	path := fmt.Sprintf("/api/enrollments/progress/%d", fixture.Course.ID)

	resp := env.Do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	require.Equal(t, http.StatusCreated, enroll(t, env, token, fixture.Course.ID, "").Status)
	completeLesson(t, env, token, fixture.Lessons[0].ID, 3)
	require.NoError(t, env.DB.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, fixture.Course.ID).
		UpdateColumn("last_accessed_at", nil).Error)

	resp = env.Do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var accessed course.Enrollment
	require.NoError(t, env.DB.Where("student_id = ? AND course_id = ?", student.ID, fixture.Course.ID).First(&accessed).Error)
	assert.NotNil(t, accessed.LastAccessedAt, "viewing progress records the access time")
	var progress struct {
		Sections         []enrollmentController.SectionView `json:"sections"`
		OverallProgress  int                                `json:"overall_progress"`
		TotalLessons     int64                              `json:"total_lessons"`
		CompletedLessons int64                              `json:"completed_lessons"`
	}
	resp.Decode(t, &progress)
	assert.Equal(t, 50, progress.OverallProgress)
	assert.Equal(t, int64(2), progress.TotalLessons)
	require.Len(t, progress.Sections, 1)
	require.Len(t, progress.Sections[0].Lessons, 2)
	assert.True(t, progress.Sections[0].Lessons[0].IsCompleted)
	assert.Equal(t, 3, progress.Sections[0].Lessons[0].TimeSpentMinutes)
	assert.False(t, progress.Sections[0].Lessons[1].IsCompleted)
	assert.Equal(t, 50, progress.Sections[0].ProgressPercentage)

	resp = env.Do(t, http.MethodGet, "/api/enrollments/my-courses", token, nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var mine []enrollmentController.MyCourse
	resp.Decode(t, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Two Lessons", mine[0].CourseTitle)
	assert.Equal(t, instructor.FullName, mine[0].InstructorName)
	assert.Equal(t, int64(1), mine[0].CompletedLessons)
	assert.Equal(t, int64(2), mine[0].TotalLessons)
	assert.Equal(t, 50, mine[0].ProgressPercentage)

	resp = env.Do(t, http.MethodGet, "/api/enrollments/my-courses?status=completed", token, nil)
	mine = nil
	resp.Decode(t, &mine)
	assert.Empty(t, mine)

	resp = env.Do(t, http.MethodGet, "/api/enrollments/my-courses?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestCertificate(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "inst@example.com")
	student := env.CreateUser(t, models.RoleStudent, "stud@example.com")
	other := env.CreateUser(t, models.RoleStudent, "other@example.com")
	fixture := env.CreateCourse(t, instructor, "Certified Course", 0, 1)
	token := env.Token(t, student)

	resp := enroll(t, env, token, fixture.Course.ID, "")
	require.Equal(t, http.StatusCreated, resp.Status)
	var enrolled struct {
		EnrollmentID uint `json:"enrollment_id"`
	}
	resp.Decode(t, &enrolled)
	path := fmt.Sprintf("/api/enrollments/certificate/%d", enrolled.EnrollmentID)

	resp = env.Do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status, "no certificate before completion")

	completeLesson(t, env, token, fixture.Lessons[0].ID, 0)

	resp = env.Do(t, http.MethodGet, path, env.Token(t, other), nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = env.Do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	assert.Contains(t, resp.Header["Content-Type"], "text/html")
	assert.Contains(t, string(resp.Body), "Certified Course")
	assert.Contains(t, string(resp.Body), student.FullName)
}
