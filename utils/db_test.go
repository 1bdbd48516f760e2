package utils

import (
	"path/filepath"
	"testing"
	"time"

	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/models"
	"eduplatform/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "utils.db")+"?_busy_timeout=5000")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSeedDemoData(t *testing.T) {
	db := openTestDB(t)
	cfg := config.FromEnv()
	cfg.ArgonMemoryKB = 1024
	cfg.ArgonThreads = 1
	cfg.DemoStudentPassword = "student-pass"
	cfg.DemoInstructorPassword = "instructor-pass"
	cfg.DemoAdminPassword = ""
	config.AppConfig = cfg

	require.NoError(t, SeedDemoData(db, cfg))
	require.NoError(t, SeedDemoData(db, cfg), "seeding twice is a no-op")

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 2, "accounts without a configured password are skipped")
	assert.Equal(t, cfg.DemoStudentEmail, users[0].Email)
	assert.True(t, users[0].IsVerified)
	assert.Equal(t, models.RoleInstructor, users[1].Role)

	ok, err := VerifyPassword("instructor-pass", users[1].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	var categories int64
	db.Model(&course.Category{}).Count(&categories)
	assert.Equal(t, int64(len(defaultCategories)), categories)

	var demo course.Course
	require.NoError(t, db.Where("slug = ?", DemoCourseSlug).First(&demo).Error)
	assert.Equal(t, course.StatusPublished, demo.Status)
	assert.Equal(t, users[1].ID, demo.InstructorID)

	var courses int64
	db.Model(&course.Course{}).Count(&courses)
	assert.Equal(t, int64(1), courses)
}

func TestMaintenanceJobs(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	stale := models.Transaction{UserID: 1, CourseID: 1, Amount: 10, Currency: "USD",
		Status: models.TransactionPending, PaymentMethod: models.PaymentMethodStripe}
	stale.CreatedAt = now.Add(-2 * PendingPaymentTTL)
	fresh := models.Transaction{UserID: 1, CourseID: 2, Amount: 10, Currency: "USD",
		Status: models.TransactionPending, PaymentMethod: models.PaymentMethodStripe}
	done := models.Transaction{UserID: 1, CourseID: 3, Amount: 10, Currency: "USD",
		Status: models.TransactionCompleted, PaymentMethod: models.PaymentMethodStripe}
	done.CreatedAt = now.Add(-2 * PendingPaymentTTL)
	require.NoError(t, db.Create(&[]*models.Transaction{&stale, &fresh, &done}).Error)

	n, err := ExpireStalePayments(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	statusOf := func(id uint) string {
		var txn models.Transaction
		require.NoError(t, db.First(&txn, id).Error)
		return txn.Status
	}
	assert.Equal(t, models.TransactionFailed, statusOf(stale.ID))
	assert.Equal(t, models.TransactionPending, statusOf(fresh.ID))
	assert.Equal(t, models.TransactionCompleted, statusOf(done.ID))

	require.NoError(t, db.Create(&models.EmailVerification{UserID: 1, Token: "old", ExpiresAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&models.EmailVerification{UserID: 2, Token: "new", ExpiresAt: now.Add(time.Hour)}).Error)

	n, err = PurgeExpiredVerifications(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left []models.EmailVerification
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Token)
}
