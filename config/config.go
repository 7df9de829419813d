package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Rules     RulesConfig
	AI        AIConfig
	Jobs      JobsConfig
}

type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// RedisConfig configures the result cache. An empty Addr keeps results in memory.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

type RateLimitConfig struct {
	Capacity int           `env:"RATE_LIMIT_CAPACITY" envDefault:"30"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// RulesConfig exposes the business constants of the calculators.
type RulesConfig struct {
	PricingMarkup          float64 `env:"PRICING_MARKUP" envDefault:"1.1"`
	DefaultDemandThreshold float64 `env:"PRICING_DEMAND_THRESHOLD" envDefault:"100"`
	HighDemandSurcharge    float64 `env:"PRICING_HIGH_DEMAND_SURCHARGE" envDefault:"1.2"`
	ResponseTimeFloor      float64 `env:"CHATBOT_RESPONSE_TIME_FLOOR" envDefault:"5"`
	ResponseTimeFactor     float64 `env:"CHATBOT_RESPONSE_TIME_FACTOR" envDefault:"0.2"`
	CostFloor              float64 `env:"CHATBOT_COST_FLOOR" envDefault:"0.5"`
	CostFactor             float64 `env:"CHATBOT_COST_FACTOR" envDefault:"0.2"`
	SatisfactionIncrease   float64 `env:"CHATBOT_SATISFACTION_INCREASE" envDefault:"15"`
	SatisfactionCap        float64 `env:"CHATBOT_SATISFACTION_CAP" envDefault:"90"`
	MaintenanceOverdueDays int     `env:"MAINTENANCE_OVERDUE_DAYS" envDefault:"60"`
}

type AIConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	APIURL  string        `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	Model   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"10s"`
}

type JobsConfig struct {
	HousekeepingSpec string `env:"HOUSEKEEPING_SPEC" envDefault:"@every 30m"`
}

// ReadConfig loads an optional .env file and parses the environment.
func ReadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", c.RateLimit.Capacity)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	if c.Rules.PricingMarkup <= 0 {
		return fmt.Errorf("PRICING_MARKUP must be positive")
	}
	if c.Rules.HighDemandSurcharge < 1 {
		return fmt.Errorf("PRICING_HIGH_DEMAND_SURCHARGE must be at least 1")
	}
	if c.Rules.DefaultDemandThreshold < 0 {
		return fmt.Errorf("PRICING_DEMAND_THRESHOLD must not be negative")
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"CHATBOT_RESPONSE_TIME_FLOOR", c.Rules.ResponseTimeFloor},
		{"CHATBOT_RESPONSE_TIME_FACTOR", c.Rules.ResponseTimeFactor},
		{"CHATBOT_COST_FLOOR", c.Rules.CostFloor},
		{"CHATBOT_COST_FACTOR", c.Rules.CostFactor},
		{"CHATBOT_SATISFACTION_INCREASE", c.Rules.SatisfactionIncrease},
	}
	for _, rule := range nonNegative {
		if rule.value < 0 {
			return fmt.Errorf("%s must not be negative, got %v", rule.name, rule.value)
		}
	}
	if c.Rules.SatisfactionCap < 0 || c.Rules.SatisfactionCap > 100 {
		return fmt.Errorf("CHATBOT_SATISFACTION_CAP must be between 0 and 100, got %v", c.Rules.SatisfactionCap)
	}
	if c.Rules.MaintenanceOverdueDays < 0 {
		return fmt.Errorf("MAINTENANCE_OVERDUE_DAYS must not be negative")
	}
	// explanations are fetched inside the request and must finish before the write deadline
	if c.AI.Timeout <= 0 || c.AI.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("OPENAI_TIMEOUT (%s) must be positive and shorter than SERVER_WRITE_TIMEOUT (%s)",
			c.AI.Timeout, c.Server.WriteTimeout)
	}
	return nil
}
