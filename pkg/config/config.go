package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	GitHub struct {
		Token    string        `yaml:"token"`
		BaseURL  string        `yaml:"base_url"`
		Queries  []string      `yaml:"queries"`
		PerQuery int           `yaml:"per_query"`
		Timeout  time.Duration `yaml:"timeout"`
		// Token bucket guarding the search endpoint (GitHub allows 30 req/min).
		RateCapacity float64 `yaml:"rate_capacity"`
		RateRefill   float64 `yaml:"rate_refill_per_sec"`
	} `yaml:"github"`
	Scan struct {
		Schedule      string `yaml:"schedule"` // cron spec; empty disables periodic scans
		RunOnStart    bool   `yaml:"run_on_start"`
		MaxCandidates int    `yaml:"max_candidates"`
		ValuatorMemo  int    `yaml:"valuator_memo"`
		ReportPath    string `yaml:"report_path"`
	} `yaml:"scan"`
	Backend struct {
		Type         string        `yaml:"type"` // "kafka" or "clickhouse"
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
	} `yaml:"backend"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. The search credential normally arrives through GITHUB_TOKEN
// rather than the YAML file, so validation runs after the overrides.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_QUERIES"); v != "" {
		c.GitHub.Queries = strings.Split(v, ",")
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	// An empty github.token is allowed: searches run unauthenticated at
	// GitHub's anonymous rate limit.
	if len(c.GitHub.Queries) == 0 {
		return fmt.Errorf("github.queries cannot be empty")
	}
	return nil
}

// DefaultQueries are the search queries used when the YAML omits them.
var DefaultQueries = []string{
	"created:>2024-01-01 stars:>100",
	"ai automation created:>2024-01-01",
	"saas template created:>2024-01-01",
}

// ApplyDefaults fills optional fields that have sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.GitHub.BaseURL == "" {
		c.GitHub.BaseURL = "https://api.github.com"
	}
	if len(c.GitHub.Queries) == 0 {
		c.GitHub.Queries = DefaultQueries
	}
	if c.GitHub.PerQuery <= 0 {
		c.GitHub.PerQuery = 10
	}
	if c.GitHub.Timeout <= 0 {
		c.GitHub.Timeout = 10 * time.Second
	}
	if c.GitHub.RateCapacity <= 0 {
		c.GitHub.RateCapacity = 10
	}
	if c.GitHub.RateRefill <= 0 {
		c.GitHub.RateRefill = 0.5
	}
	if c.Scan.MaxCandidates <= 0 {
		c.Scan.MaxCandidates = 50
	}
	if c.Scan.ValuatorMemo <= 0 {
		c.Scan.ValuatorMemo = 1024
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}
