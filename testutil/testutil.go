// Package testutil wires the application against a throwaway sqlite database, the in-process cache and a
// fake payment provider so handlers can be exercised over HTTP.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"eduplatform/cache"
	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/payment"
	"eduplatform/routers"
	"eduplatform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user.
const Password = "secret123"

type Env struct {
	App      *fiber.App
	DB       *gorm.DB
	Payments *FakeProvider
}

// Setup installs fresh globals for one test.
func Setup(t *testing.T) *Env {
	t.Helper()

	cfg := config.FromEnv()
	cfg.Environment = "development"
	cfg.JWTSecret = "test-secret"
	cfg.TokenTTL = time.Hour
	cfg.ArgonTime = 1
	cfg.ArgonMemoryKB = 1024
	cfg.ArgonThreads = 1
	cfg.SendgridApiKey = ""
	cfg.CronEnabled = false
	cfg.SeedDemo = false
	cfg.InstructorShare = 0.8
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")
	config.AppConfig = cfg

	utils.InitLogger("error", false, io.Discard)

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	cache.Cache = cache.NewMemory()

	fake := NewFakeProvider()
	payment.Gateway = fake

	t.Cleanup(func() {
		_ = database.Close()
		_ = cache.Cache.Close()
	})

	return &Env{App: routers.SetupApp(), DB: db, Payments: fake}
}

// CreateUser stores an active, verified user with Password.
func (e *Env) CreateUser(t *testing.T, role, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(Password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "User " + email,
		Role:         role,
		IsVerified:   true,
		IsActive:     true,
	}
	require.NoError(t, e.DB.Create(user).Error)
	return user
}

func (e *Env) Token(t *testing.T, user *models.User) string {
	t.Helper()

	token, _, err := utils.GenerateToken(user, config.AppConfig.JWTSecret, config.AppConfig.TokenTTL)
	require.NoError(t, err)
	return token
}

// CourseFixture is a published course with one section.
type CourseFixture struct {
	Course  *course.Course
	Section *course.Section
	Lessons []course.Lesson
}

// CreateCourse stores a published course owned by instructor with lessons mandatory lessons.
func (e *Env) CreateCourse(t *testing.T, instructor *models.User, title string, price float64, lessons int) *CourseFixture {
	t.Helper()

	now := time.Now()
	c := &course.Course{
		InstructorID: instructor.ID,
		Title:        title,
		Slug:         utils.Slugify(title) + fmt.Sprintf("-%d", now.UnixNano()),
		Description:  "About " + title,
		Price:        price,
		Currency:     "USD",
		Level:        course.LevelAll,
		Status:       course.StatusPublished,
		PublishedAt:  &now,
	}
	require.NoError(t, e.DB.Create(c).Error)

	section := &course.Section{CourseID: c.ID, Title: "Section 1", OrderIndex: 1}
	require.NoError(t, e.DB.Create(section).Error)

	fixture := &CourseFixture{Course: c, Section: section}
	for i := 1; i <= lessons; i++ {
		lesson := course.Lesson{
			SectionID:       section.ID,
			Title:           fmt.Sprintf("Lesson %d", i),
			Type:            course.LessonArticle,
			ContentText:     fmt.Sprintf("Body of lesson %d", i),
			DurationMinutes: 10,
			OrderIndex:      i,
			IsPreview:       i == 1,
			IsMandatory:     true,
		}
		require.NoError(t, e.DB.Create(&lesson).Error)
		fixture.Lessons = append(fixture.Lessons, lesson)
	}
	return fixture
}

// Response is the decoded envelope of an API response.
type Response struct {
	Status  int               `json:"-"`
	Header  map[string]string `json:"-"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
	Data    json.RawMessage   `json:"data"`
	Body    []byte            `json:"-"`
}

// Decode unmarshals Data into v.
func (r *Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Body))
}

// Do sends one request. body is JSON-encoded when not nil; token is sent as a bearer token when set.
func (e *Env) Do(t *testing.T, method, path, token string, body interface{}) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := &Response{Status: resp.StatusCode, Header: map[string]string{}, Body: raw}
	for k := range resp.Header {
		out.Header[k] = resp.Header.Get(k)
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return out
}

// FakeProvider is an in-memory payment.Provider. Intents start in requires_payment_method until Succeed is called.
type FakeProvider struct {
	mu        sync.Mutex
	seq       int
	intents   map[string]*payment.PaymentIntent
	Customers int
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{intents: map[string]*payment.PaymentIntent{}}
}

func (f *FakeProvider) CreateCustomer(_ context.Context, email, _ string) (*payment.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.Customers++
	return &payment.Customer{ID: fmt.Sprintf("cus_test_%d", f.seq), Email: email}, nil
}

func (f *FakeProvider) CreatePaymentIntent(_ context.Context, params payment.IntentParams) (*payment.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("pi_test_%d", f.seq)
	intent := &payment.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       params.Amount,
		Currency:     params.Currency,
		Status:       "requires_payment_method",
		Customer:     params.CustomerID,
		Metadata:     params.Metadata,
	}
	f.intents[id] = intent
	copied := *intent
	return &copied, nil
}

func (f *FakeProvider) RetrievePaymentIntent(_ context.Context, id string) (*payment.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment_intent: %s", id)
	}
	copied := *intent
	return &copied, nil
}

// Succeed marks an intent as paid.
func (f *FakeProvider) Succeed(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if intent, ok := f.intents[id]; ok {
		intent.Status = payment.StatusSucceeded
		intent.LatestCharge = "ch_" + id
	}
}

// Intent returns a copy of a created intent.
func (f *FakeProvider) Intent(id string) (payment.PaymentIntent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	intent, ok := f.intents[id]
	if !ok {
		return payment.PaymentIntent{}, false
	}
	return *intent, true
}
