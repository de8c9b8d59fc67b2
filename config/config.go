package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jackgraver/simple-track/logger"
	"github.com/jackgraver/simple-track/models"
)

type Config struct {
	Env  string
	Port string

	DBDriver   string // "postgres" | "sqlite"
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret   []byte
	CORSOrigins []string

	S3Bucket  string
	S3Region  string
	S3BaseURL string

	SeedFile string

	// goals given to days created without explicit ones
	DefaultCalories float64
	DefaultProtein  float64
	DefaultFiber    float64
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system env vars")
	}

	cfg := &Config{
		Env:        GetEnv("APP_ENV", "development"),
		Port:       GetEnv("PORT", "8080"),
		DBDriver:   GetEnv("DB_DRIVER", "sqlite"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", ""),
		DBName:     GetEnv("DB_NAME", "simpletrack"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "disable"),
		SQLitePath: GetEnv("SQLITE_PATH", "st.db"),
		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Region:   GetEnv("S3_REGION", os.Getenv("AWS_REGION")),
		S3BaseURL:  os.Getenv("CLOUDFRONT_URL"),
		SeedFile:   GetEnv("SEED_FILE", "seed.yaml"),
	}
	cfg.CORSOrigins = splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"))

	var err error
	if cfg.DefaultCalories, err = getFloat("DEFAULT_CALORIES", 2000); err != nil {
		return nil, err
	}
	if cfg.DefaultProtein, err = getFloat("DEFAULT_PROTEIN", 150); err != nil {
		return nil, err
	}
	if cfg.DefaultFiber, err = getFloat("DEFAULT_FIBER", 40); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// OpenDB connects to the configured database and migrates the schema.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connection established", zap.String("driver", cfg.DBDriver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// GormConfig is shared by the server and tests. Foreign keys are not created
// so a deleted food leaves meal items pointing at nothing.
func GormConfig() *gorm.Config {
	return &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
