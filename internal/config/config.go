package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Допустимые значения STORAGE
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config структура конфигурации
type Config struct {
	Port             string
	AppEnv           string // Окружение приложения
	LogLevel         string
	TelegramBotToken string
	JWTSecret        string
	JWTTTL           time.Duration
	DatabaseURL      string
	DatabaseConfig   DatabaseConfig
	Storage          string
	AutoMigrate      bool
	LoginURL         string // Куда отправлять неавторизованных; пусто - отвечаем 401
	MaxPictureBytes  int64
	CORSAllowOrigins []string
}

// DatabaseConfig содержит конфигурацию базы данных
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// IsProduction сообщает, запущено ли приложение в production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig загружает переменные из .env и окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env файл не найден, используем переменные окружения")
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("PGHOST", "localhost"),
		Port:     getEnv("PGPORT", "5432"),
		User:     getEnv("PGUSER", "ads_user"),
		Password: getEnv("PGPASSWORD", "ads_pass"),
		Name:     getEnv("PGDATABASE", "ads"),
		SSLMode:  getEnv("PGSSLMODE", "disable"),
	}

	// Формируем строку подключения к базе данных, если она не задана целиком
	dbURL := getEnv("DATABASE_URL", fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name, dbConfig.SSLMode))

	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("неверное значение JWT_TTL: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("неверное значение DB_AUTO_MIGRATE: %w", err)
	}

	maxPicture, err := strconv.ParseInt(getEnv("MAX_PICTURE_BYTES", strconv.Itoa(2*1024*1024)), 10, 64)
	if err != nil || maxPicture <= 0 {
		return nil, fmt.Errorf("неверное значение MAX_PICTURE_BYTES: %q", os.Getenv("MAX_PICTURE_BYTES"))
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "production"), // По умолчанию production
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTTTL:           jwtTTL,
		DatabaseURL:      dbURL,
		DatabaseConfig:   dbConfig,
		Storage:          strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		AutoMigrate:      autoMigrate,
		LoginURL:         getEnv("AUTH_LOGIN_URL", ""),
		MaxPictureBytes:  maxPicture,
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("не задана обязательная переменная окружения JWT_SECRET")
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("неизвестное хранилище %q", cfg.Storage)
	}

	return cfg, nil
}

// getEnv получает переменную окружения или использует дефолтное значение
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
