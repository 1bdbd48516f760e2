package routers_test

import (
	"fmt"
	"net/http"
	"testing"

	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	env := testutil.Setup(t)

	paths := []string{
		"/", "/courses", "/course/42", "/dashboard",
		"/student-dashboard", "/student-dashboard.html",
		"/instructor-dashboard", "/instructor-dashboard.html",
		"/admin-dashboard", "/admin-dashboard.html",
	}
	for _, path := range paths {
		resp := env.Do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.Status, path)
		assert.Contains(t, resp.Header["Content-Type"], "text/html", path)
		assert.Contains(t, string(resp.Body), "EduPlatform", path)
	}

	resp := env.Do(t, http.MethodGet, "/course/42", "", nil)
	assert.Contains(t, string(resp.Body), `data-course-id="42"`)
}

func TestSystemEndpoints(t *testing.T) {
	env := testutil.Setup(t)

	resp := env.Do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var health map[string]interface{}
	resp.Decode(t, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "ok", health["database"])
	assert.Equal(t, "ok", health["cache"])

	resp = env.Do(t, http.MethodGet, "/api/info", "", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	var info struct {
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	resp.Decode(t, &info)
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, "/api/courses", info.Endpoints["courses"])

	resp = env.Do(t, http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, resp.Success)

	assert.NotEmpty(t, resp.Header["X-Request-Id"])

	resp = env.Do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "http_requests_total")
}

// TestStudentJourney walks a new student from registration to a certificate and a forum post.
func TestStudentJourney(t *testing.T) {
	env := testutil.Setup(t)
	instructor := env.CreateUser(t, models.RoleInstructor, "john.doe@example.com")
	fixture := env.CreateCourse(t, instructor, "Full Stack Basics", 49.99, 2)

	resp := env.Do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "alice-pass", "full_name": "Alice Student",
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	var registered struct {
		VerificationToken string `json:"verification_token"`
	}
	resp.Decode(t, &registered)

	resp = env.Do(t, http.MethodGet, "/api/auth/verify-email/"+registered.VerificationToken, "", nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = env.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "alice-pass",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var session struct {
		Token string `json:"token"`
	}
	resp.Decode(t, &session)
	token := session.Token

	resp = env.Do(t, http.MethodGet, fmt.Sprintf("/api/courses/%d", fixture.Course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = env.Do(t, http.MethodPost, "/api/payments/checkout", token, map[string]interface{}{
		"course_id": fixture.Course.ID,
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var checkout struct {
		PaymentIntentID string  `json:"payment_intent_id"`
		Amount          float64 `json:"amount"`
	}
	resp.Decode(t, &checkout)
	assert.Equal(t, 49.99, checkout.Amount)

	env.Payments.Succeed(checkout.PaymentIntentID)
	resp = env.Do(t, http.MethodPost, "/api/payments/confirm", token, map[string]string{
		"payment_intent_id": checkout.PaymentIntentID,
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var confirmed struct {
		EnrollmentID uint `json:"enrollment_id"`
	}
	resp.Decode(t, &confirmed)

	for _, lesson := range fixture.Lessons {
		resp = env.Do(t, http.MethodPost, "/api/enrollments/progress/update", token, map[string]interface{}{
			"lesson_id": lesson.ID, "is_completed": true, "time_spent_minutes": 10,
		})
		require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	}

	resp = env.Do(t, http.MethodGet, "/api/enrollments/my-courses?status=completed", token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	var completed []course.Enrollment
	resp.Decode(t, &completed)
	require.Len(t, completed, 1)
	assert.Equal(t, confirmed.EnrollmentID, completed[0].ID)
	assert.True(t, completed[0].CertificateIssued)

	resp = env.Do(t, http.MethodGet, fmt.Sprintf("/api/enrollments/certificate/%d", confirmed.EnrollmentID), token, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "Alice Student")
	assert.Contains(t, string(resp.Body), "Full Stack Basics")

	resp = env.Do(t, http.MethodPost, "/api/forums/thread", token, map[string]interface{}{
		"course_id": fixture.Course.ID, "title": "Finished the course!", "content": "What should I learn next?",
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	resp = env.Do(t, http.MethodGet, "/api/notifications", env.Token(t, instructor), nil)
	require.Equal(t, http.StatusOK, resp.Status)
	var inbox struct {
		Items []models.Notification `json:"items"`
	}
	resp.Decode(t, &inbox)
	types := make([]string, 0, len(inbox.Items))
	for _, n := range inbox.Items {
		types = append(types, n.Type)
	}
	assert.ElementsMatch(t, []string{models.NotificationNewStudent, models.NotificationForumPost}, types)

	resp = env.Do(t, http.MethodGet, "/api/payments/earnings", env.Token(t, instructor), nil)
	require.Equal(t, http.StatusOK, resp.Status)
	var earnings struct {
		Summary struct {
			LifetimeEarnings float64 `json:"lifetime_earnings"`
		} `json:"summary"`
	}
	resp.Decode(t, &earnings)
	assert.InDelta(t, 39.99, earnings.Summary.LifetimeEarnings, 0.01)
}
