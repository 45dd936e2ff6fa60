package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from a YAML file and then overridden by environment variables.
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the level implied by Environment.
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	HTTP struct {
		Addr              string        `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds every API call except progress streams.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		MaxHeaderBytes int           `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		MetricsPath    string        `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins is matched against the Origin header. "*" allows any.
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-separator:"," yaml:"allowedOrigins"`
		// ProgressHeartbeat spaces the keep-alive comments of a silent stream.
		ProgressHeartbeat time.Duration `env:"HTTP_PROGRESS_HEARTBEAT" env-default:"15s" yaml:"progressHeartbeat"`
	} `yaml:"http"`

	// JWT holds the RS256 key pair. Only the token command needs PrivateKey.
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// Engine points at the SpiderFoot web API.
	Engine struct {
		BaseURL string `env:"ENGINE_BASE_URL" env-default:"http://localhost:5001" yaml:"baseURL"`
		// APIKey is sent as a bearer token when set.
		APIKey         string        `env:"ENGINE_API_KEY" yaml:"apiKey"`
		RequestTimeout time.Duration `env:"ENGINE_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
	} `yaml:"engine"`

	Orchestrator struct {
		PollInterval time.Duration `env:"ORCHESTRATOR_POLL_INTERVAL" env-default:"5s" yaml:"pollInterval"`
		// MaxPolls status queries are made before a scan times out.
		MaxPolls int `env:"ORCHESTRATOR_MAX_POLLS" env-default:"60" yaml:"maxPolls"`
		// RetryMaxAttempts counts the first try of each engine call.
		RetryMaxAttempts int `env:"ORCHESTRATOR_RETRY_MAX_ATTEMPTS" env-default:"3" yaml:"retryMaxAttempts"`
		// RetryDelays are the waits between attempts. The last one repeats.
		RetryDelays []time.Duration `env:"ORCHESTRATOR_RETRY_DELAYS" env-default:"2s,4s,6s" env-separator:"," yaml:"retryDelays"` //nolint: lll
		// MaxLinksPerPair caps the links of one type pair. Zero is unbounded.
		MaxLinksPerPair int `env:"ORCHESTRATOR_MAX_LINKS_PER_PAIR" env-default:"0" yaml:"maxLinksPerPair"`
		// LinkIPv6 adds ipv6_domain_link correlations next to the IPv4 ones.
		LinkIPv6 bool `env:"ORCHESTRATOR_LINK_IPV6" env-default:"false" yaml:"linkIPv6"`
	} `yaml:"orchestrator"`

	Worker struct {
		// MaxWorkers is the number of scans orchestrated concurrently.
		MaxWorkers  int `env:"WORKER_MAX_WORKERS" env-default:"100" yaml:"maxWorkers"`
		MaxAttempts int `env:"WORKER_MAX_ATTEMPTS" env-default:"5" yaml:"maxAttempts"`
		// StaleAfter is how long a job may stay running before the sweeper fails it.
		StaleAfter    time.Duration `env:"WORKER_STALE_AFTER" env-default:"15m" yaml:"staleAfter"`
		SweepInterval time.Duration `env:"WORKER_SWEEP_INTERVAL" env-default:"1m" yaml:"sweepInterval"`
	} `yaml:"worker"`

	Credits struct {
		// ScanCost is debited once per accepted scan job.
		ScanCost int64 `env:"CREDITS_SCAN_COST" env-default:"10" yaml:"scanCost"`
		// Reason is written to the ledger entry of each debit.
		Reason string `env:"CREDITS_REASON" env-default:"spiderfoot_scan" yaml:"reason"`
	} `yaml:"credits"`

	Progress struct {
		// Transport is "postgres" for LISTEN/NOTIFY fan-out or "memory" for a single process.
		Transport string `env:"PROGRESS_TRANSPORT" env-default:"postgres" yaml:"transport"`
		Channel   string `env:"PROGRESS_CHANNEL" env-default:"scan_progress" yaml:"channel"`
		// BufferSize is the per-subscriber queue. Slow subscribers lose events beyond it.
		BufferSize int `env:"PROGRESS_BUFFER_SIZE" env-default:"32" yaml:"bufferSize"`
	} `yaml:"progress"`

	Database struct {
		Username     string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		Password     string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		Host         string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		Port         int    `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		SslMode      string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		DatabaseName string `env:"DATABASE_NAME" env-default:"osintscan" yaml:"name"`
		// MaxOpenConnections is the pool size shared by the API, workers and listener.
		MaxOpenConnections int           `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		MaxIdleConnections int           `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		ConnMaxLifetime    time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		ConnMaxIdleTime    time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// GracefulShutdownTimeout bounds draining requests and running jobs on exit.
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads configPath, applies environment overrides and validates the result.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every setting the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Progress.Transport != "postgres" && c.Progress.Transport != "memory" {
		errs = append(errs, fmt.Errorf("progress.transport must be postgres or memory, got %q", c.Progress.Transport))
	}
	if c.Orchestrator.MaxPolls < 1 {
		errs = append(errs, errors.New("orchestrator.maxPolls must be at least 1"))
	}
	if c.Orchestrator.RetryMaxAttempts < 1 {
		errs = append(errs, errors.New("orchestrator.retryMaxAttempts must be at least 1"))
	}
	if len(c.Orchestrator.RetryDelays) == 0 {
		errs = append(errs, errors.New("orchestrator.retryDelays must not be empty"))
	}
	if c.Credits.ScanCost < 1 {
		errs = append(errs, errors.New("credits.scanCost must be at least 1"))
	}
	if c.Worker.MaxWorkers < 1 {
		errs = append(errs, errors.New("worker.maxWorkers must be at least 1"))
	}

	return errors.Join(errs...)
}
