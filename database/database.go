package database

import (
	"context"
	"fmt"
	"time"

	"eduplatform/config"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/models/forum"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, runs migrations and stores the handle in Database.
func ConnectDb() error {
	db, err := Open(config.AppConfig.DBDriver, config.AppConfig.DBDsn)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return err
	}

	Database = DbInstance{Db: db}
	return nil
}

// Open connects to one of the supported drivers. Duplicate-key errors are translated to
// gorm.ErrDuplicatedKey so handlers can report conflicts without driver-specific checks.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	log.Info().Str("driver", driver).Msg("database connected")
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("running migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.EmailVerification{},
		&models.ActivityLog{},
		&models.Notification{},
		&models.Transaction{},
		&models.Coupon{},
		&models.CouponUse{},
		&course.Category{},
		&course.Course{},
		&course.Section{},
		&course.Lesson{},
		&course.Review{},
		&course.Enrollment{},
		&course.LessonProgress{},
		&forum.Thread{},
		&forum.Reply{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info().Msg("migrations completed")
	return nil
}

// Ping checks the database connection.
func Ping(ctx context.Context) error {
	if Database.Db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := Database.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close() error {
	if Database.Db == nil {
		return nil
	}
	sqlDB, err := Database.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
