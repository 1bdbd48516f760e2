package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds application configuration
type Config struct {
	Port        string
	Environment string
	BaseURL     string
	CorsOrigins string
	ProxyHeader string
	UploadDir   string

	DBDriver string
	DBDsn    string

	RedisURL string

	JWTSecret string
	TokenTTL  time.Duration

	ArgonTime     uint32
	ArgonMemoryKB uint32
	ArgonThreads  uint8

	StripeApiURL    string
	StripeSecretKey string

	SendgridApiKey string
	EmailSender    string
	EmailFromName  string

	InstructorShare float64

	SeedDemo               bool
	DemoStudentEmail       string
	DemoStudentPassword    string
	DemoInstructorEmail    string
	DemoInstructorPassword string
	DemoAdminEmail         string
	DemoAdminPassword      string

	CronEnabled bool

	LogLevel string
	LogJSON  bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system environment variables")
	}

	AppConfig = FromEnv()

	if AppConfig.JWTSecret == defaultJWTSecret {
		log.Warn().Msg("using default JWT_SECRET, update it in your environment")
	}
	if AppConfig.IsProduction() && AppConfig.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is empty, checkout of priced courses will fail")
	}
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),
		ProxyHeader: getEnv("PROXY_HEADER", ""),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDsn:    getEnv("DB_DSN", defaultDsn()),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		ArgonTime:     uint32(getEnvInt("ARGON_TIME", 1)),
		ArgonMemoryKB: uint32(getEnvInt("ARGON_MEMORY_KB", 64*1024)),
		ArgonThreads:  uint8(getEnvInt("ARGON_THREADS", 4)),

		StripeApiURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com/v1"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@eduplatform.com"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "EduPlatform"),

		InstructorShare: getEnvFloat("INSTRUCTOR_SHARE", 0.8),

		SeedDemo:               getEnvBool("SEED_DEMO", false),
		DemoStudentEmail:       getEnv("DEMO_STUDENT_EMAIL", "alice@example.com"),
		DemoStudentPassword:    getEnv("DEMO_STUDENT_PASSWORD", ""),
		DemoInstructorEmail:    getEnv("DEMO_INSTRUCTOR_EMAIL", "john.doe@eduplatform.com"),
		DemoInstructorPassword: getEnv("DEMO_INSTRUCTOR_PASSWORD", ""),
		DemoAdminEmail:         getEnv("DEMO_ADMIN_EMAIL", "admin@eduplatform.com"),
		DemoAdminPassword:      getEnv("DEMO_ADMIN_PASSWORD", ""),

		CronEnabled: getEnvBool("CRON_ENABLED", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether development-only response fields may be exposed.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// defaultDsn assembles a postgres DSN from its parts when DB_DRIVER=postgres and DB_DSN is unset.
func defaultDsn() string {
	if strings.ToLower(os.Getenv("DB_DRIVER")) != "postgres" {
		return "eduplatform.db"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "eduplatform"),
		getEnv("DB_PORT", "5432"),
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid integer in environment, using default")
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid float in environment, using default")
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid boolean in environment, using default")
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid duration in environment, using default")
		return defaultValue
	}
	return d
}
