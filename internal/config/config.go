package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Gate   GateConfig
	Queue  QueueConfig
	Email  EmailConfig
	CORS   CORSConfig
	Auth   AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for the submission archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// GateConfig holds gate behavior toggles.
type GateConfig struct {
	ArchiveSubmissions bool `mapstructure:"archive_submissions"`
	NotifyRejections   bool `mapstructure:"notify_rejections"`
}

// QueueConfig holds scan queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds rejection notification settings.
type EmailConfig struct {
	Provider       string `mapstructure:"provider"`
	Region         string `mapstructure:"region"`
	FromAddress    string `mapstructure:"from_address"`
	FromName       string `mapstructure:"from_name"`
	StewardAddress string `mapstructure:"steward_address"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds the machine client credential used to mint tokens.
type AuthConfig struct {
	ClientID         string `mapstructure:"client_id"`
	ClientSecretHash string `mapstructure:"client_secret_hash"`
}

// Load reads configuration from environment variables with the DESCGATE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DESCGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "descgate")
	v.SetDefault("db.password", "descgate_secret")
	v.SetDefault("db.name", "descgate_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "1h")
	v.SetDefault("jwt.issuer", "descgate")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "descgate-submissions")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Gate defaults
	v.SetDefault("gate.archive_submissions", false)
	v.SetDefault("gate.notify_rejections", false)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 5)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@descgate.local")
	v.SetDefault("email.from_name", "Description Gate")
	v.SetDefault("email.steward_address", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Auth defaults (no client configured means token issuing is disabled)
	v.SetDefault("auth.client_id", "")
	v.SetDefault("auth.client_secret_hash", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "DESCGATE_SERVER_PORT",
		"server.read_timeout":      "DESCGATE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "DESCGATE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "DESCGATE_SERVER_ENVIRONMENT",
		"db.host":                  "DESCGATE_DB_HOST",
		"db.port":                  "DESCGATE_DB_PORT",
		"db.user":                  "DESCGATE_DB_USER",
		"db.password":              "DESCGATE_DB_PASSWORD",
		"db.name":                  "DESCGATE_DB_NAME",
		"db.sslmode":               "DESCGATE_DB_SSLMODE",
		"db.max_open":              "DESCGATE_DB_MAX_OPEN",
		"db.max_idle":              "DESCGATE_DB_MAX_IDLE",
		"jwt.secret":               "DESCGATE_JWT_SECRET",
		"jwt.token_expiry":         "DESCGATE_JWT_TOKEN_EXPIRY",
		"jwt.issuer":               "DESCGATE_JWT_ISSUER",
		"s3.region":                "DESCGATE_S3_REGION",
		"s3.bucket":                "DESCGATE_S3_BUCKET",
		"s3.endpoint":              "DESCGATE_S3_ENDPOINT",
		"s3.access_key":            "DESCGATE_S3_ACCESS_KEY",
		"s3.secret_key":            "DESCGATE_S3_SECRET_KEY",
		"s3.presign_expiry":        "DESCGATE_S3_PRESIGN_EXPIRY",
		"gate.archive_submissions": "DESCGATE_GATE_ARCHIVE_SUBMISSIONS",
		"gate.notify_rejections":   "DESCGATE_GATE_NOTIFY_REJECTIONS",
		"queue.poll_interval_secs": "DESCGATE_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "DESCGATE_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "DESCGATE_QUEUE_CONCURRENCY",
		"email.provider":           "DESCGATE_EMAIL_PROVIDER",
		"email.region":             "DESCGATE_EMAIL_REGION",
		"email.from_address":       "DESCGATE_EMAIL_FROM_ADDRESS",
		"email.from_name":          "DESCGATE_EMAIL_FROM_NAME",
		"email.steward_address":    "DESCGATE_EMAIL_STEWARD_ADDRESS",
		"cors.allowed_origins":     "DESCGATE_CORS_ALLOWED_ORIGINS",
		"auth.client_id":           "DESCGATE_AUTH_CLIENT_ID",
		"auth.client_secret_hash":  "DESCGATE_AUTH_CLIENT_SECRET_HASH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DESCGATE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DESCGATE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Gate = GateConfig{
		ArchiveSubmissions: v.GetBool("gate.archive_submissions"),
		NotifyRejections:   v.GetBool("gate.notify_rejections"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:       v.GetString("email.provider"),
		Region:         v.GetString("email.region"),
		FromAddress:    v.GetString("email.from_address"),
		FromName:       v.GetString("email.from_name"),
		StewardAddress: v.GetString("email.steward_address"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Auth = AuthConfig{
		ClientID:         v.GetString("auth.client_id"),
		ClientSecretHash: v.GetString("auth.client_secret_hash"),
	}

	return cfg, nil
}
