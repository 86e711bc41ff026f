package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds the lifetime of issued session tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// TZOffsetHours is the fixed business timezone offset from UTC. The
	// deployment site does not observe daylight saving.
	TZOffsetHours int `env:"TZ_OFFSET_HOURS, default=-5"`

	Mongo       MongoConfig
	Redis       RedisConfig
	Recognition RecognitionConfig
	SMTP        SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=attendance_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
	TLS      bool   `env:"REDIS_TLS,  default=false"`
}

// RecognitionConfig holds the face-matching acceptance policy and the
// accepted embedding dimensions.
type RecognitionConfig struct {
	Threshold    float64 `env:"RECOGNITION_THRESHOLD,  default=0.78"`
	MinMargin    float64 `env:"RECOGNITION_MIN_MARGIN, default=0.08"`
	MinEmbedding int     `env:"RECOGNITION_MIN_DIMS,   default=64"`
	MaxEmbedding int     `env:"RECOGNITION_MAX_DIMS,   default=512"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@attendance.local"`
	// ResetBaseURL is the frontend URL embedded in password-reset emails.
	ResetBaseURL string `env:"RESET_BASE_URL, default=http://localhost:3000"`
}

// Location returns the business timezone as a fixed-offset location.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.TZOffsetHours), c.TZOffsetHours*3600)
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
