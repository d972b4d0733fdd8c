package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string        `env:"DB_HOST,required,notEmpty"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME" envDefault:"thrift_store"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`

	AppPort string `env:"APP_PORT" envDefault:"3001"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	UploadDir   string   `env:"UPLOAD_DIR" envDefault:"./uploads"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	RateLimitRPS      float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst    int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
	InternalSecretKey string  `env:"INTERNAL_SECRET_KEY"`
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig reads an optional .env file and parses the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func MustLoadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}
