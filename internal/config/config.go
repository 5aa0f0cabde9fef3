package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	QuotesDriverSQLite = "sqlite"
	QuotesDriverRedis  = "redis"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort        string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	Redis           Redis         `yaml:"redis"`
	Quotes          Quotes        `yaml:"quotes"`
	Gift            Gift          `yaml:"gift"`
	Milk            Milk          `yaml:"milk"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Quotes struct {
	Driver     string `yaml:"driver" env:"QUOTES_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env:"QUOTES_SQLITE_PATH" env-default:"./quotes.db"`
}

type Gift struct {
	JWTSecret string `yaml:"jwt-secret" env:"GIFT_JWT_SECRET" env-default:"secret"`
}

type Milk struct {
	Capacity    int           `yaml:"capacity" env:"MILK_CAPACITY" env-default:"5"`
	RefillEvery time.Duration `yaml:"refill-every" env:"MILK_REFILL_EVERY" env-default:"1s"`
}

// Load reads the yml file at path, then overrides it from the environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) validate() error {
	switch that.Quotes.Driver {
	case QuotesDriverSQLite, QuotesDriverRedis:
	default:
		return fmt.Errorf("unknown quotes driver %q", that.Quotes.Driver)
	}

	if that.Milk.Capacity <= 0 {
		return fmt.Errorf("milk capacity must be positive, got %d", that.Milk.Capacity)
	}

	if that.Milk.RefillEvery <= 0 {
		return fmt.Errorf("milk refill interval must be positive, got %s", that.Milk.RefillEvery)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
