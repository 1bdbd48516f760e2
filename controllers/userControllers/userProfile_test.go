package userController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduplatform/models"
	"eduplatform/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	env := testutil.Setup(t)
	user := env.CreateUser(t, models.RoleStudent, "profile@example.com")
	token := env.Token(t, user)

	resp := env.Do(t, http.MethodPut, "/api/users/profile", token, map[string]interface{}{
		"full_name": "  Jane Learner ",
		"bio":       "Learning Go",
		"country":   "NZ",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	var updated models.User
	resp.Decode(t, &updated)
	assert.Equal(t, "Jane Learner", updated.FullName)
	assert.Equal(t, "Learning Go", updated.Bio)
	assert.Equal(t, "NZ", updated.Country)
	assert.Equal(t, "profile@example.com", updated.Email)

	var logged int64
	env.DB.Model(&models.ActivityLog{}).Where("user_id = ? AND action = ?", user.ID, models.ActivityProfileUpdate).Count(&logged)
	assert.Equal(t, int64(1), logged)

	resp = env.Do(t, http.MethodPut, "/api/users/profile", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	resp = env.Do(t, http.MethodPut, "/api/users/profile", token, map[string]interface{}{"avatar_url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Errors, "avatar_url")

	resp = env.Do(t, http.MethodPut, "/api/users/profile", "", map[string]interface{}{"bio": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestChangePassword(t *testing.T) {
	env := testutil.Setup(t)
	user := env.CreateUser(t, models.RoleStudent, "pw@example.com")
	token := env.Token(t, user)

	resp := env.Do(t, http.MethodPut, "/api/users/password", token, map[string]string{
		"current_password": "wrong-password",
		"new_password":     "brand-new-pass",
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Errors, "current_password")

	resp = env.Do(t, http.MethodPut, "/api/users/password", token, map[string]string{
		"current_password": testutil.Password,
		"new_password":     testutil.Password,
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Contains(t, resp.Errors, "new_password")

	resp = env.Do(t, http.MethodPut, "/api/users/password", token, map[string]string{
		"current_password": testutil.Password,
		"new_password":     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	resp = env.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "pw@example.com", "password": testutil.Password,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = env.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "pw@example.com", "password": "brand-new-pass",
	})
	assert.Equal(t, http.StatusOK, resp.Status)
}

func uploadAvatar(t *testing.T, env *testutil.Env, token, filename string, content []byte) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/avatar", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestUploadAvatar(t *testing.T) {
	env := testutil.Setup(t)
	user := env.CreateUser(t, models.RoleStudent, "avatar@example.com")
	token := env.Token(t, user)

	png := []byte("\x89PNG\r\n\x1a\nfake-image")
	status, body := uploadAvatar(t, env, token, "me.PNG", png)
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]interface{})
	url := data["avatar_url"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/avatars/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	var stored models.User
	require.NoError(t, env.DB.First(&stored, user.ID).Error)
	assert.Equal(t, url, stored.AvatarURL)

	resp, err := env.App.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, png, served)

	status, body = uploadAvatar(t, env, token, "script.sh", []byte("echo hi"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "avatar")

	status, _ = uploadAvatar(t, env, token, "huge.jpg", bytes.Repeat([]byte("a"), 2<<20+1))
	assert.Equal(t, http.StatusBadRequest, status)
}
