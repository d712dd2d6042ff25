package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Log      LogConfig
	Approval ApprovalConfig

	JWTSecret string `env:"JWT_SECRET,required"`

	NotifyTimeout      time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"false"`
}

type DatabaseConfig struct {
	Host       string        `env:"DB_HOST" envDefault:"localhost"`
	Port       string        `env:"DB_PORT" envDefault:"5432"`
	User       string        `env:"DB_USER" envDefault:"postgres"`
	Password   string        `env:"DB_PASSWORD"`
	Name       string        `env:"DB_NAME" envDefault:"go_shiftswap"`
	SSLMode    string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries int           `env:"DB_MAX_RETRIES" envDefault:"5"`
	TxTimeout  time.Duration `env:"DB_TX_TIMEOUT" envDefault:"15s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
}

type KafkaConfig struct {
	Broker            string `env:"KAFKA_BROKER"`
	NotificationGroup string `env:"KAFKA_NOTIFICATION_GROUP" envDefault:"go-shiftswap-notification"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

type ApprovalConfig struct {
	// Roles for levels 1..n when a request does not name its own approvers.
	DefaultChain []string `env:"APPROVAL_DEFAULT_CHAIN" envSeparator:"," envDefault:"SUPERVISOR,HR_MANAGER"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 characters")
	}
	chain := c.Approval.DefaultChain[:0]
	for _, role := range c.Approval.DefaultChain {
		if r := strings.TrimSpace(role); r != "" {
			chain = append(chain, r)
		}
	}
	if len(chain) == 0 {
		return fmt.Errorf("config: APPROVAL_DEFAULT_CHAIN must name at least one role")
	}
	c.Approval.DefaultChain = chain
	if c.Database.TxTimeout <= 0 {
		return fmt.Errorf("config: DB_TX_TIMEOUT must be positive")
	}
	return nil
}
