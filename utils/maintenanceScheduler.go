package utils

import (
	"time"

	"eduplatform/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PendingPaymentTTL is how long a checkout may stay pending before it is failed.
const PendingPaymentTTL = 24 * time.Hour

// InitializeMaintenanceScheduler starts the hourly cleanup jobs. The caller stops the returned cron on shutdown.
func InitializeMaintenanceScheduler(db *gorm.DB) *cron.Cron {
	logger := Component("scheduler")
	logger.Info().Msg("initializing maintenance scheduler")

	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		now := time.Now()
		if n, err := ExpireStalePayments(db, now); err != nil {
			logger.Error().Err(err).Msg("failed to expire stale payments")
		} else if n > 0 {
			logger.Info().Int64("count", n).Msg("marked stale pending payments as failed")
		}

		if n, err := PurgeExpiredVerifications(db, now); err != nil {
			logger.Error().Err(err).Msg("failed to purge expired verifications")
		} else if n > 0 {
			logger.Info().Int64("count", n).Msg("deleted expired email verifications")
		}
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to register maintenance job")
		return c
	}

	c.Start()
	logger.Info().Msg("maintenance scheduler started, runs hourly")
	return c
}

// ExpireStalePayments fails checkouts that stayed pending longer than PendingPaymentTTL.
func ExpireStalePayments(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Transaction{}).
		Where("status = ? AND created_at < ?", models.TransactionPending, now.Add(-PendingPaymentTTL)).
		Update("status", models.TransactionFailed)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		PaymentsTotal.WithLabelValues(models.TransactionFailed).Add(float64(result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// PurgeExpiredVerifications removes verification tokens past their expiry.
func PurgeExpiredVerifications(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.EmailVerification{})
	return result.RowsAffected, result.Error
}
