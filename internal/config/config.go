// Package config loads the process configuration from defaults, an
// optional YAML file and VPCFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	vpcflow "github.com/asecurityteam/go-vpcflow-ingest"
)

// EnvPrefix prefixes every environment override, e.g. VPCFLOW_QUEUE_URL.
const EnvPrefix = "VPCFLOW"

// Config is the complete process configuration. Both subcommands read
// it; only consume requires the queue settings.
type Config struct {
	AWS       AWSConfig       `mapstructure:"aws"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Decode    DecodeConfig    `mapstructure:"decode"`
	Aggregate AggregateConfig `mapstructure:"aggregate"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AWSConfig selects the AWS region and endpoint for the S3 and SQS clients.
type AWSConfig struct {
	Region string `mapstructure:"region"`
	// Endpoint overrides the service endpoint, for local emulators.
	Endpoint string `mapstructure:"endpoint"`
}

// QueueConfig tunes the SQS delivery loop. MaxMessages and WaitTime are
// clamped to the SQS limits of 10 messages and 20 seconds.
type QueueConfig struct {
	URL          string        `mapstructure:"url"`
	MaxMessages  int           `mapstructure:"max_messages"`
	WaitTime     time.Duration `mapstructure:"wait_time"`
	Workers      int           `mapstructure:"workers"`
	ErrorBackoff time.Duration `mapstructure:"error_backoff"`
}

// DecodeConfig names the schema preset and field policy used to decode
// text objects, and whether parquet objects are decoded at all.
type DecodeConfig struct {
	Schema   string `mapstructure:"schema"`
	Policy   string `mapstructure:"policy"`
	Columnar bool   `mapstructure:"columnar"`
	Limit    int    `mapstructure:"limit"`
}

// AggregateConfig bounds the rankings of every object report.
type AggregateConfig struct {
	TopN     int `mapstructure:"top_n"`
	PortTopN int `mapstructure:"port_top_n"`
	IPCap    int `mapstructure:"ip_cap"`
}

// LoggingConfig is turned into a logging.Config when the logger is built.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Pretty  bool   `mapstructure:"pretty"`
	SampleN uint32 `mapstructure:"sample_n"`
}

// MetricsConfig controls the Prometheus endpoint of consume.
type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint. Empty disables it.
	Addr string `mapstructure:"addr"`
}

// New returns a viper instance with defaults and environment overrides
// set, ready for flag binding before Load reads it.
func New() *viper.Viper {
	var v = viper.New()

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("queue.url", "")
	v.SetDefault("queue.max_messages", vpcflow.DefaultMaxMessages)
	v.SetDefault("queue.wait_time", vpcflow.DefaultWaitTime.String())
	v.SetDefault("queue.workers", 1)
	v.SetDefault("queue.error_backoff", vpcflow.DefaultErrorBackoff.String())
	v.SetDefault("decode.schema", vpcflow.ExtendedSchema.Name)
	v.SetDefault("decode.policy", vpcflow.PolicyPermissive.String())
	v.SetDefault("decode.columnar", true)
	v.SetDefault("decode.limit", 0)
	v.SetDefault("aggregate.top_n", 5)
	v.SetDefault("aggregate.port_top_n", 0)
	v.SetDefault("aggregate.ip_cap", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)
	v.SetDefault("logging.sample_n", 0)
	v.SetDefault("metrics.addr", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional file at path into v and unmarshals the result.
// An empty path looks for vpcflow.yaml in the working directory and
// carries on with defaults when there is none.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vpcflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if _, err := vpcflow.SchemaByName(c.Decode.Schema); err != nil {
		return fmt.Errorf("decode.schema: %w", err)
	}
	if _, err := vpcflow.ParseFieldPolicy(c.Decode.Policy); err != nil {
		return fmt.Errorf("decode.policy: %w", err)
	}
	switch {
	case c.Decode.Limit < 0:
		return errors.New("decode.limit must not be negative")
	case c.Aggregate.TopN < 1:
		return errors.New("aggregate.top_n must be positive")
	case c.Aggregate.PortTopN < 0:
		return errors.New("aggregate.port_top_n must not be negative")
	case c.Aggregate.IPCap < 0:
		return errors.New("aggregate.ip_cap must not be negative")
	case c.Queue.MaxMessages < 1 || c.Queue.MaxMessages > 10:
		return errors.New("queue.max_messages must be between 1 and 10")
	case c.Queue.WaitTime < 0 || c.Queue.WaitTime > 20*time.Second:
		return errors.New("queue.wait_time must be between 0s and 20s")
	case c.Queue.Workers < 1:
		return errors.New("queue.workers must be positive")
	case c.Queue.ErrorBackoff <= 0:
		return errors.New("queue.error_backoff must be positive")
	}
	return nil
}

// ValidateConsumer additionally requires the settings only the delivery
// loop needs.
func (c *Config) ValidateConsumer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Queue.URL == "" {
		return errors.New("queue.url is required")
	}
	return nil
}

// Schema resolves decode.schema. Call Validate first.
func (c *Config) Schema() vpcflow.Schema {
	var s, _ = vpcflow.SchemaByName(c.Decode.Schema)
	return s
}

// Policy resolves decode.policy. Call Validate first.
func (c *Config) Policy() vpcflow.FieldPolicy {
	var p, _ = vpcflow.ParseFieldPolicy(c.Decode.Policy)
	return p
}

// Aggregation returns the aggregator options.
func (c *Config) Aggregation() vpcflow.AggregatorOptions {
	return vpcflow.AggregatorOptions{
		TopN:     c.Aggregate.TopN,
		PortTopN: c.Aggregate.PortTopN,
		IPCap:    c.Aggregate.IPCap,
	}
}
