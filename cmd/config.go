package cmd

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HTTPPort uint16 `env:"HTTP_PORT" envDefault:"8080" validate:"min=1"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost" validate:"required"`
	DBPort     uint16 `env:"DB_PORT"     envDefault:"5432"      validate:"min=1"`
	DBUser     string `env:"DB_USER"     envDefault:"lots"      validate:"required"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"lots"`
	DBName     string `env:"DB_NAME"     envDefault:"lots"      validate:"required"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"   validate:"oneof=disable allow prefer require verify-ca verify-full"`

	RedisAddr          string `env:"REDIS_ADDR"           envDefault:"localhost:6379" validate:"required,hostname_port"`
	RedisEventsChannel string `env:"REDIS_EVENTS_CHANNEL" envDefault:"lots.events"    validate:"required"`

	RectificationPeriodDuration time.Duration `env:"RECTIFICATION_PERIOD_DURATION" envDefault:"24h" validate:"gt=0"`
	DefaultDutchSteps           int           `env:"DEFAULT_DUTCH_STEPS"           envDefault:"99"  validate:"min=1,max=100"`

	ChronographSchedule  string `env:"CHRONOGRAPH_SCHEDULE"   envDefault:"*/30 * * * * *" validate:"required"`
	ChronographBatchSize int    `env:"CHRONOGRAPH_BATCH_SIZE" envDefault:"100"            validate:"min=1"`

	// AuthUsers maps each API user to its Basic auth password, e.g.
	// AUTH_USERS=broker:secret,administrator:other. User names select the role.
	AuthUsers map[string]string `env:"AUTH_USERS" envKeyValSeparator:":" validate:"min=1,dive,keys,oneof=broker administrator concierge convoy chronograph caravan,endkeys,required"` //nolint:lll // tag

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DSN builds a postgres connection URL accepted by both gorm and golang-migrate.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(int(c.DBPort))),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) HTTPAddr() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(int(c.HTTPPort)))
}
