package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Canvas    CanvasConfig
	Admin     AdminConfig
	WebSocket WebSocketConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	Host         string        `env:"HOST" envDefault:"0.0.0.0"`
	Env          string        `env:"ENV" envDefault:"development"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"db/canvas.db"`
}

type CanvasConfig struct {
	SeedPath string `env:"CANVAS_SEED_PATH" envDefault:"assets/seed/canvas_seed_45x45.csv"`
}

// AdminConfig guards the reset endpoint. Leaving PasswordHash empty keeps
// reset open and disables admin login.
type AdminConfig struct {
	PasswordHash    string        `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret       string        `env:"ADMIN_JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	TokenExpiration time.Duration `env:"ADMIN_TOKEN_EXPIRATION" envDefault:"1h"`
}

func (c AdminConfig) Enabled() bool {
	return c.PasswordHash != ""
}

type WebSocketConfig struct {
	ReadBufferSize  int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	MaxMessageSize  int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"4096"`
	WriteWait       time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	PongWait        time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	PingPeriod      time.Duration `env:"WS_PING_PERIOD" envDefault:"54s"`
	MaxConnections  int           `env:"WS_MAX_CONNECTIONS" envDefault:"1000"`
}

// RedisConfig enables the cross-instance relay when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Channel  string `env:"REDIS_CHANNEL" envDefault:"pixel-canvas:events"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	AllowedMethods string `env:"CORS_ALLOWED_METHODS" envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders string `env:"CORS_ALLOWED_HEADERS" envDefault:"Content-Type,Authorization"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.WebSocket.PingPeriod >= cfg.WebSocket.PongWait {
		return nil, fmt.Errorf("invalid WS_PING_PERIOD: must be shorter than WS_PONG_WAIT (%s)", cfg.WebSocket.PongWait)
	}
	if cfg.WebSocket.MaxConnections <= 0 {
		return nil, fmt.Errorf("invalid WS_MAX_CONNECTIONS: %d", cfg.WebSocket.MaxConnections)
	}

	return cfg, nil
}
