package adminController_test

import (
	"fmt"
	"net/http"
	"testing"

	"eduplatform/models"
	"eduplatform/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userPage struct {
	Items []models.User `json:"items"`
	Total int64         `json:"total"`
}

func TestUserList(t *testing.T) {
	env := testutil.Setup(t)
	admin := env.CreateUser(t, models.RoleAdmin, "root@example.com")
	env.CreateUser(t, models.RoleStudent, "sam@example.com")
	env.CreateUser(t, models.RoleStudent, "kim@example.com")
	instructor := env.CreateUser(t, models.RoleInstructor, "prof@example.com")
	token := env.Token(t, admin)

	resp := env.Do(t, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var page userPage
	resp.Decode(t, &page)
	assert.Equal(t, int64(4), page.Total)

	resp = env.Do(t, http.MethodGet, "/api/admin/users?role=student", token, nil)
	page = userPage{}
	resp.Decode(t, &page)
	assert.Equal(t, int64(2), page.Total)

	resp = env.Do(t, http.MethodGet, "/api/admin/users?search=prof", token, nil)
	page = userPage{}
	resp.Decode(t, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, instructor.ID, page.Items[0].ID)

	resp = env.Do(t, http.MethodGet, "/api/admin/users?role=owner", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = env.Do(t, http.MethodGet, "/api/admin/users", env.Token(t, instructor), nil)
	assert.Equal(t, http.StatusForbidden, resp.Status)
}

func TestSetUserStatus(t *testing.T) {
	env := testutil.Setup(t)
	admin := env.CreateUser(t, models.RoleAdmin, "root@example.com")
	student := env.CreateUser(t, models.RoleStudent, "sam@example.com")
	adminToken := env.Token(t, admin)
	studentToken := env.Token(t, student)

	path := fmt.Sprintf("/api/admin/users/%d/status", student.ID)
	resp := env.Do(t, http.MethodPut, path, adminToken, map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	resp = env.Do(t, http.MethodGet, "/api/auth/me", studentToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = env.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sam@example.com", "password": testutil.Password,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = env.Do(t, http.MethodPut, path, adminToken, map[string]bool{"is_active": true})
	require.Equal(t, http.StatusOK, resp.Status)
	resp = env.Do(t, http.MethodGet, "/api/auth/me", studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.Status)

	resp = env.Do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/status", admin.ID), adminToken, map[string]bool{"is_active": false})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = env.Do(t, http.MethodPut, "/api/admin/users/9999/status", adminToken, map[string]bool{"is_active": false})
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = env.Do(t, http.MethodPut, path, adminToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}
