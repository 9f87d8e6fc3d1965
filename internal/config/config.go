// Package config загружает конфигурацию приложения из переменных окружения.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DBSSLmode определяет режим SSL-подключения к PostgreSQL.
type DBSSLmode string

const (
	// SSLDisable - SSL-шифрование отключено.
	SSLDisable DBSSLmode = "disable"
	// SSLRequire - SSL обязателен, но сертификат сервера не проверяется.
	SSLRequire DBSSLmode = "require"
	// SSLVerifyFull - SSL обязателен, сертификат сервера проверяется.
	SSLVerifyFull DBSSLmode = "verify-full"
)

// ServerConfig - конфигурация HTTP-сервера.
type ServerConfig struct {
	Addr string
}

// LoadServer загружает конфигурацию сервера из окружения.
func LoadServer() ServerConfig {
	return ServerConfig{
		Addr: getEnv("SERVER_ADDR", ":8080"),
	}
}

// IsValid возвращает true, если значение является допустимым режимом SSL.
func (m DBSSLmode) IsValid() bool {
	switch m {
	case SSLDisable, SSLRequire, SSLVerifyFull:
		return true
	default:
		return false
	}
}

// DBConfig - набор параметров для подключения к базе данных.
type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	SSLmode  DBSSLmode
	Port     int
}

// LoadDB загружает конфигурацию бд из окружения и возвращает DBConfig.
func LoadDB() DBConfig {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid DB_PORT %v", err)
	}

	rmode := getEnv("DB_SSLMODE", string(SSLDisable))
	mode := DBSSLmode(rmode)
	if !mode.IsValid() {
		log.Printf("warning: invalid DB_SSLMODE=%q; using default %q", rmode, SSLDisable)
		mode = SSLDisable
	}

	return DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "cleanup"),
		Password: getEnv("DB_PASSWORD", "cleanup"),
		Name:     getEnv("DB_NAME", "cleanup_connect"),
		SSLmode:  mode,
	}
}

// AuthConfig - параметры для выпуска и валидации JWT.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LoadAuth загружает конфигурацию аутентификации из окружения.
func LoadAuth() AuthConfig {
	ttl, err := time.ParseDuration(getEnv("AUTH_TOKEN_TTL", "24h"))
	if err != nil {
		log.Printf("warning: invalid AUTH_TOKEN_TTL; using default 24h")
		ttl = 24 * time.Hour
	}

	return AuthConfig{
		JWTSecret: getEnv("AUTH_JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  ttl,
	}
}

// RedisConfig - параметры подключения к Redis (кэш лидерборда).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoadRedis загружает конфигурацию Redis из окружения.
func LoadRedis() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		log.Printf("warning: invalid REDIS_DB; using 0")
		db = 0
	}

	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

// SMTPConfig - параметры почтового канала уведомлений.
type SMTPConfig struct {
	Host     string
	User     string
	Password string
	From     string
	Port     int
	Enabled  bool
}

// LoadSMTP загружает конфигурацию SMTP из окружения.
// SMTP_ENABLED=false полностью отключает отправку писем (dev/тесты).
func LoadSMTP() SMTPConfig {
	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Fatalf("invalid SMTP_PORT %v", err)
	}

	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", "localhost"),
		Port:     port,
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "noreply@cleanupconnect.org"),
		Enabled:  getEnv("SMTP_ENABLED", "false") == "true",
	}
}

// ObjectStoreConfig - параметры S3-совместимого хранилища фотографий.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LoadObjectStore загружает конфигурацию объектного хранилища из окружения.
func LoadObjectStore() ObjectStoreConfig {
	return ObjectStoreConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    getEnv("MINIO_BUCKET", "cleanup-photos"),
		UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
	}
}

// LoggerConfig - уровень и формат логирования.
type LoggerConfig struct {
	Level  string
	Format string
}

// LoadLogger загружает конфигурацию логгера из окружения.
func LoadLogger() LoggerConfig {
	return LoggerConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
