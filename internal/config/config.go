package config

import (
	"errors"
	"flag"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Address              string        `env:"RUN_ADDRESS"            envDefault:"localhost:8080"`
	Database             string        `env:"DATABASE_URI"           envDefault:""`
	DataDir              string        `env:"DATA_DIR"               envDefault:"data"`
	LogLvl               string        `env:"LOG_LVL"                envDefault:"info"`
	DBTimeout            time.Duration `env:"DB_TIMEOUT"             envDefault:"2s"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT"        envDefault:"10s"`
	DefaultCurrency      string        `env:"DEFAULT_CURRENCY"       envDefault:"NZD"`
	DefaultPaymentStatus string        `env:"DEFAULT_PAYMENT_STATUS" envDefault:"pending"`
	JWTSecret            string        `env:"JWT_SECRET"             envDefault:"change-me"`
	TokenTTL             time.Duration `env:"TOKEN_TTL"              envDefault:"24h"`
	RedisAddr            string        `env:"REDIS_ADDR"             envDefault:""`
	CORSOrigins          []string      `env:"CORS_ORIGINS"           envDefault:"*" envSeparator:","`
	MigrationWorkers     int           `env:"MIGRATION_WORKERS"      envDefault:"4"`
}

// New reads .env (when present), then the environment, then command-line flags.
func New() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		zap.L().Warn("can't load .env file", zap.Error(err))
	}

	cfg := &Config{}

	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.Database, "d", cfg.Database, "database DSN, empty for flat-file storage only")
	flag.StringVar(&cfg.DataDir, "f", cfg.DataDir, "directory holding the flat-file store")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the token store")
	flag.Parse()

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	if cfg.MigrationWorkers < 1 {
		cfg.MigrationWorkers = 1
	}

	return cfg
}
