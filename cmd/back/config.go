package main

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Host           string        `yaml:"host"`
	HostGRPC       string        `yaml:"host_grpc"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	LogLevel       int           `yaml:"loglevel"`
	TimeOut        time.Duration `yaml:"timeout"`
	MaxParallelism int           `yaml:"max_parallelism"`

	Store      string `yaml:"store"`
	DSN        string `yaml:"dsn"`
	Driver     string `yaml:"driver"`
	MigrateDir string `yaml:"migrate_dir"`

	AddrCache     string `yaml:"addr_cache"`
	PasswordCache string `yaml:"password_cache"`
	DBCacheTweet  int    `yaml:"db_cache_tweet"`

	HostRBMQ     string `yaml:"host_rbmq"`
	PortRBMQ     string `yaml:"port_rbmq"`
	UserNameRBMQ string `yaml:"username_rbmq"`
	PasswordRBMQ string `yaml:"password_rbmq"`
	VHostRBMQ    string `yaml:"vhost_rbmq"`

	MoviesURL   string `yaml:"movies_url"`
	BooksURL    string `yaml:"books_url"`
	BooksList   string `yaml:"books_list"`
	BooksAPIKey string `yaml:"books_api_key"`
}

// LoadConfig читает yaml, подставляя ${VAR} из окружения
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(raw)
}

// подставляются только ${VAR}: голый $ в паролях и DSN остается как есть
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(raw []byte) []byte {
	return envRef.ReplaceAllFunc(raw, func(ref []byte) []byte {
		name := envRef.FindSubmatch(ref)[1]
		return []byte(os.Getenv(string(name)))
	})
}

func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnv(raw), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = ":4000"
	}
	if c.HostGRPC == "" {
		c.HostGRPC = "localhost:4001"
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9090"
	}
	if c.TimeOut == 0 {
		c.TimeOut = 10 * time.Second
	}
	if c.MaxParallelism == 0 {
		c.MaxParallelism = 10
	}
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.Driver == "" {
		c.Driver = "postgres"
	}
	if c.MigrateDir == "" {
		c.MigrateDir = "file://migrations"
	}
	if c.PortRBMQ == "" {
		c.PortRBMQ = "5672"
	}
	if c.VHostRBMQ == "" {
		c.VHostRBMQ = "/"
	}
	if c.MoviesURL == "" {
		c.MoviesURL = "https://yts.mx/api/v2"
	}
	if c.BooksURL == "" {
		c.BooksURL = "https://api.nytimes.com/svc/books/v3"
	}
	if c.BooksList == "" {
		c.BooksList = "hardcover-fiction"
	}
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DSN == "" {
			return fmt.Errorf("config: dsn is required for store %q", c.Store)
		}
	case StoreRedis:
		if c.AddrCache == "" {
			return fmt.Errorf("config: addr_cache is required for store %q", c.Store)
		}
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if c.TimeOut < 0 {
		return fmt.Errorf("config: timeout must not be negative")
	}
	return nil
}
