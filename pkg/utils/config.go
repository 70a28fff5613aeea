package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Activation ActivationConfig
	Upload     UploadConfig
	Email      EmailConfig
	RateLimit  RateLimitConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	PasswordHashing bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// ActivationConfig holds everything needed to issue and check
// pending-registration tokens.
type ActivationConfig struct {
	Secret    string
	ClientURL string
	TTL       time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
	Dir         string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type RateLimitConfig struct {
	RegisterPerSecond float64
	RegisterBurst     int
}

// ActivationTTL is the validity window of a pending registration.
const ActivationTTL = 10 * time.Minute

// LoadConfig reads an optional env file at path and overlays the process
// environment on top of it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "user-account")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("PASSWORD_HASHING", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("CLIENT_URL", "http://localhost:3000")
	v.SetDefault("MAX_FILE_SIZE", 2*1024*1024)
	v.SetDefault("UPLOAD_DIR", "public/images/users")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("REGISTER_RATE_LIMIT", 1.0)
	v.SetDefault("REGISTER_RATE_BURST", 5)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
		// no env file, environment only
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			PasswordHashing: v.GetBool("PASSWORD_HASHING"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Activation: ActivationConfig{
			Secret:    v.GetString("JWT_ACTIVATION_KEY"),
			ClientURL: v.GetString("CLIENT_URL"),
			TTL:       ActivationTTL,
		},
		Upload: UploadConfig{
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
			Dir:         v.GetString("UPLOAD_DIR"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		RateLimit: RateLimitConfig{
			RegisterPerSecond: v.GetFloat64("REGISTER_RATE_LIMIT"),
			RegisterBurst:     v.GetInt("REGISTER_RATE_BURST"),
		},
	}

	if config.Activation.Secret == "" {
		return nil, errors.New("JWT_ACTIVATION_KEY is required")
	}

	return config, nil
}
