// Package config holds the typed service configuration: YAML file, defaults,
// environment overrides, validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full preprocessd configuration.
type Config struct {
	Kafka    KafkaConfig    `yaml:"kafka"`
	OCR      OCRConfig      `yaml:"ocr"`
	URL      URLConfig      `yaml:"url"`
	Keywords KeywordsConfig `yaml:"keywords"`
	Backup   BackupConfig   `yaml:"backup"`
	Worker   WorkerConfig   `yaml:"worker"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// KafkaConfig covers broker connection, topics and consumer group.
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	ConsumerGroup string   `yaml:"consumer_group"`

	TextTopic   string `yaml:"text_topic"`
	OCRTopic    string `yaml:"ocr_topic"`
	URLTopic    string `yaml:"url_topic"`
	ResultTopic string `yaml:"result_topic"`
	FailTopic   string `yaml:"fail_topic"`

	PollTimeoutSec      int  `yaml:"poll_timeout_sec"`
	ConsumerConcurrency int  `yaml:"consumer_concurrency"`
	FromStart           bool `yaml:"from_start"`
}

// OCRConfig points at the external OCR engine.
type OCRConfig struct {
	EndpointURL string `yaml:"endpoint_url"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

// URLConfig bounds the hybrid web fetch.
type URLConfig struct {
	FetchTimeoutSec   int `yaml:"fetch_timeout_sec"`
	BrowserTimeoutSec int `yaml:"browser_timeout_sec"`
	IdleTimeoutSec    int `yaml:"idle_timeout_sec"`
}

// KeywordsConfig locates the keyword/vocab YAML directory.
type KeywordsConfig struct {
	Dir         string `yaml:"dir"`
	WatchReload bool   `yaml:"watch_reload"`
}

// BackupConfig locates the local JSONL fail backup.
type BackupConfig struct {
	Dir string `yaml:"dir"`
}

// WorkerConfig covers runtime behaviour shared by all workers.
type WorkerConfig struct {
	ShutdownTimeoutSec int `yaml:"shutdown_timeout_sec"`
	MaxRetries         int `yaml:"max_retries"`
}

// LoggingConfig selects level and encoding.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug / info / warn / error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the defaults used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Kafka: KafkaConfig{
			Brokers:             []string{"127.0.0.1:19092"},
			ConsumerGroup:       "preprocess-group",
			TextTopic:           "jd.preprocess.text.request",
			OCRTopic:            "jd.preprocess.ocr.request",
			URLTopic:            "jd.preprocess.url.request",
			ResultTopic:         "jd.preprocess.response",
			FailTopic:           "jd.preprocess.response.fail",
			PollTimeoutSec:      1,
			ConsumerConcurrency: 3,
		},
		OCR: OCRConfig{
			EndpointURL: "http://127.0.0.1:8868/ocr",
			TimeoutSec:  120,
		},
		URL: URLConfig{
			FetchTimeoutSec:   10,
			BrowserTimeoutSec: 60,
			IdleTimeoutSec:    10,
		},
		Keywords: KeywordsConfig{
			Dir: "configs",
		},
		Backup: BackupConfig{
			Dir: "logs/kafka_failures",
		},
		Worker: WorkerConfig{
			ShutdownTimeoutSec: 30,
			MaxRetries:         3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file, falls back to defaults when path is empty or
// missing, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides maps the documented environment variables onto the
// config. Environment wins over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Kafka.Brokers = splitCSV(v)
	}
	if v := os.Getenv("KAFKA_CONSUMER_GROUP"); v != "" {
		c.Kafka.ConsumerGroup = v
	}
	if v := os.Getenv("KAFKA_TEXT_TOPIC"); v != "" {
		c.Kafka.TextTopic = v
	}
	if v := os.Getenv("KAFKA_OCR_TOPIC"); v != "" {
		c.Kafka.OCRTopic = v
	}
	if v := os.Getenv("KAFKA_URL_TOPIC"); v != "" {
		c.Kafka.URLTopic = v
	}
	if v := os.Getenv("KAFKA_RESULT_TOPIC"); v != "" {
		c.Kafka.ResultTopic = v
	}
	if v := os.Getenv("KAFKA_FAIL_TOPIC"); v != "" {
		c.Kafka.FailTopic = v
	}
	if v, ok := envInt("KAFKA_POLL_TIMEOUT_SEC"); ok {
		c.Kafka.PollTimeoutSec = v
	}
	if v, ok := envInt("KAFKA_CONSUMER_CONCURRENCY"); ok {
		c.Kafka.ConsumerConcurrency = v
	}
	if v, ok := envInt("SHUTDOWN_TIMEOUT_SEC"); ok {
		c.Worker.ShutdownTimeoutSec = v
	}
	if v, ok := envInt("MAX_RETRIES"); ok {
		c.Worker.MaxRetries = v
	}
	if v := os.Getenv("FAIL_BACKUP_DIR"); v != "" {
		c.Backup.Dir = v
	}
	if v := os.Getenv("OCR_ENGINE_URL"); v != "" {
		c.OCR.EndpointURL = v
	}
	if v := os.Getenv("KEYWORDS_DIR"); v != "" {
		c.Keywords.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate rejects configurations the workers cannot start with.
func (c *Config) Validate() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers must not be empty")
	}
	if c.Kafka.ConsumerGroup == "" {
		return fmt.Errorf("kafka.consumer_group must not be empty")
	}
	for name, topic := range map[string]string{
		"text_topic":   c.Kafka.TextTopic,
		"ocr_topic":    c.Kafka.OCRTopic,
		"url_topic":    c.Kafka.URLTopic,
		"result_topic": c.Kafka.ResultTopic,
		"fail_topic":   c.Kafka.FailTopic,
	} {
		if topic == "" {
			return fmt.Errorf("kafka.%s must not be empty", name)
		}
	}
	if c.Keywords.Dir == "" {
		return fmt.Errorf("keywords.dir must not be empty")
	}
	if c.Worker.ShutdownTimeoutSec <= 0 {
		return fmt.Errorf("worker.shutdown_timeout_sec must be positive")
	}
	return nil
}

// ShutdownTimeout returns the grace period as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Worker.ShutdownTimeoutSec) * time.Second
}

// FetchTimeout returns the static HTTP fetch timeout.
func (c *URLConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// BrowserTimeout returns the headless page-load timeout.
func (c *URLConfig) BrowserTimeout() time.Duration {
	return time.Duration(c.BrowserTimeoutSec) * time.Second
}

// IdleTimeout returns the best-effort network-idle wait.
func (c *URLConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSec) * time.Second
}

// Timeout returns the OCR engine call timeout.
func (c *OCRConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
