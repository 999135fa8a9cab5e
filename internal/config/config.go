package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		App      App      `env-prefix:"APP_"`
		Logger   Logger   `env-prefix:"LOGGER_"`
		Postgres Postgres `env-prefix:"DB_"`
		HTTP     HTTP     `env-prefix:"HTTP_"`
		GRPC     GRPC     `env-prefix:"GRPC_"`
		Metrics  Metrics  `env-prefix:"METRICS_"`
		Redis    Redis    `env-prefix:"REDIS_"`
		Kafka    Kafka    `env-prefix:"KAFKA_"`
		Handoff  Handoff  `env-prefix:"HANDOFF_"`
		Orders   Orders   `env-prefix:"ORDER_"`
		Admin    Admin    `env-prefix:"ADMIN_"`
		Tracing  Tracing  `env-prefix:"OTEL_"`
		Env      string   `env:"ENV" env-default:"local" validate:"oneof=local dev staging prod"`
	}

	App struct {
		Name    string `env:"NAME"    env-default:"ordenes-skincare" validate:"required"`
		Version string `env:"VERSION" env-default:"dev"              validate:"required"`
	}

	Postgres struct {
		Host           string        `env:"HOST"             env-default:"localhost"  validate:"required"`
		Port           string        `env:"PORT"             env-default:"5432"       validate:"required"`
		Name           string        `env:"NAME"             env-default:"ordenesdb"  validate:"required"`
		User           string        `env:"USER"             env-default:"user"       validate:"required"`
		Password       string        `env:"PASSWORD"         env-default:"pass"       validate:"required"`
		SSLMode        string        `env:"SSL_MODE"         env-default:"disable"    validate:"oneof=disable require verify-ca verify-full"`
		PoolMax        int32         `env:"POOL_MAX"         env-default:"20"         validate:"min=1,max=100"`
		ConnAttempts   int           `env:"CONN_ATTEMPTS"    env-default:"5"          validate:"min=1,max=10"`
		BaseRetryDelay time.Duration `env:"BASE_RETRY_DELAY" env-default:"100ms"      validate:"gte=10ms,lte=10s"`
		MaxRetryDelay  time.Duration `env:"MAX_RETRY_DELAY"  env-default:"5s"         validate:"gte=100ms,lte=30s,gtefield=BaseRetryDelay"`
		AutoMigrate    bool          `env:"AUTO_MIGRATE"     env-default:"false"`
	}

	HTTP struct {
		Host              string        `env:"HOST"                env-default:"0.0.0.0" validate:"required"`
		Port              string        `env:"PORT"                env-default:"8082"    validate:"required"`
		ReadTimeout       time.Duration `env:"READ_TIMEOUT"        env-default:"5s"      validate:"gte=10ms,lte=30s"`
		WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       env-default:"10s"     validate:"gte=10ms,lte=30s"`
		IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"        env-default:"60s"     validate:"gte=10ms,lte=120s"`
		ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"    env-default:"10s"     validate:"gte=10ms,lte=30s"`
		ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" env-default:"5s"      validate:"gte=10ms,lte=30s"`
		RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"     env-default:"5s"      validate:"gte=10ms,lte=30s"`
	}

	GRPC struct {
		Host         string        `env:"HOST"          env-default:"0.0.0.0" validate:"required"`
		Port         string        `env:"PORT"          env-default:"50052"   validate:"required"`
		PingInterval time.Duration `env:"PING_INTERVAL" env-default:"10s"     validate:"gte=100ms,lte=5m"`
	}

	Metrics struct {
		Host              string        `env:"HOST"                env-default:"0.0.0.0" validate:"required"`
		Port              string        `env:"PORT"                env-default:"9090"    validate:"required"`
		ReadTimeout       time.Duration `env:"READ_TIMEOUT"        env-default:"5s"      validate:"gte=10ms,lte=30s"`
		WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       env-default:"5s"      validate:"gte=10ms,lte=30s"`
		ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" env-default:"5s"      validate:"gte=10ms,lte=30s"`
	}

	// Redis is optional; an empty Addr disables the shipping rate cache.
	Redis struct {
		Addr     string        `env:"ADDR"`
		Password string        `env:"PASSWORD"`
		DB       int           `env:"DB"       env-default:"0"  validate:"min=0,max=15"`
		RateTTL  time.Duration `env:"RATE_TTL" env-default:"10m" validate:"gt=0s,lte=24h"`
	}

	// Kafka is optional; no brokers means order events are dropped.
	Kafka struct {
		Brokers      []string      `env:"BROKERS"       env-separator:"," validate:"omitempty,dive,hostname_port"`
		Topic        string        `env:"TOPIC"         env-default:"order-events" validate:"required"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" env-default:"2s"           validate:"gte=1ms,lte=30s"`
	}

	// Handoff.Phone is required outside ENV=local; local runs fall back to
	// _localHandoffPhone.
	Handoff struct {
		Phone string `env:"PHONE" validate:"omitempty,numeric,min=8,max=15"`
	}

	Orders struct {
		StrictStatus bool `env:"STRICT_STATUS" env-default:"false"`
	}

	Admin struct {
		KeyHash string `env:"KEY_HASH"`
	}

	// Tracing exports spans over OTLP/HTTP when an endpoint is set.
	Tracing struct {
		Endpoint string `env:"EXPORTER_ENDPOINT" validate:"omitempty,hostname_port"`
	}

	Logger struct {
		Level      string `env:"LEVEL"       env-default:"info"                   validate:"oneof=debug info warn error"`
		Filename   string `env:"FILENAME"    env-default:"./logs/ordenes.log"`
		MaxSize    int    `env:"MAX_SIZE"    env-default:"100"                    validate:"min=1,max=1000"`
		MaxBackups int    `env:"MAX_BACKUPS" env-default:"3"                      validate:"min=1,max=20"`
		MaxAge     int    `env:"MAX_AGE"     env-default:"28"                     validate:"min=1,max=365"`
	}
)

var ErrInvalidConfig = errors.New("invalid configuration")

const _localHandoffPhone = "51999999999"

// Load reads .env (if present), then a config file when -config or CONFIG_PATH
// points at one, and finally the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path != "" {
		return LoadPath(path)
	}
	return LoadEnv()
}

func LoadPath(configPath string) (*Config, error) {
	const op = "config.LoadPath"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	} else if err != nil {
		return nil, fmt.Errorf("%s: checking config file: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func LoadEnv() (*Config, error) {
	const op = "config.LoadEnv"

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: read env: %w", op, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, ve := range validationErrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v must satisfy '%s'", ve.Namespace(), ve.Value(), ve.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.Handoff.Phone == "" {
		if cfg.Env != "local" {
			return fmt.Errorf("%w: HANDOFF_PHONE is required when ENV=%s", ErrInvalidConfig, cfg.Env)
		}
		cfg.Handoff.Phone = _localHandoffPhone
	}
	return nil
}

func fetchConfigPath() string {
	var path string
	if flag.Lookup("config") == nil {
		flag.StringVar(&path, "config", "", "Path to config file")
	}
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}
