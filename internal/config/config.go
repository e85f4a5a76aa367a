// Package config loads the categories service configuration from defaults,
// an optional YAML file, a .env file and CATEGORIES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. CATEGORIES_SERVER_ADDR.
const EnvPrefix = "CATEGORIES"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Docs      DocsConfig      `mapstructure:"docs"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Security  SecurityConfig  `mapstructure:"security"`
	Debug     DebugConfig     `mapstructure:"debug"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	Compress          bool          `mapstructure:"compress"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`
	Burst   int     `mapstructure:"burst"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DocsConfig controls where the OpenAPI document and Swagger UI are served.
type DocsConfig struct {
	SpecPath string `mapstructure:"spec_path"`
	YAMLPath string `mapstructure:"yaml_path"`
	UIPath   string `mapstructure:"ui_path"`
}

// CORSConfig controls cross-origin access, e.g. for a Swagger UI hosted
// on another origin.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxAge         int      `mapstructure:"max_age"` // seconds
}

// SecurityConfig controls the security response headers.
type SecurityConfig struct {
	Headers    bool `mapstructure:"headers"`
	HSTSMaxAge int  `mapstructure:"hsts_max_age"` // seconds, 0 disables
}

// DebugConfig controls the runtime profiler endpoints.
type DebugConfig struct {
	Pprof     bool   `mapstructure:"pprof"`
	PprofPath string `mapstructure:"pprof_path"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8081")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("server.compress", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.rate", 50.0)
	v.SetDefault("ratelimit.burst", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("docs.spec_path", "/api-doc/openapi.json")
	v.SetDefault("docs.yaml_path", "/api-doc/openapi.yaml")
	v.SetDefault("docs.ui_path", "/swagger-ui")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.max_age", 600)

	v.SetDefault("security.headers", true)
	v.SetDefault("security.hsts_max_age", 0)

	v.SetDefault("debug.pprof", false)
	v.SetDefault("debug.pprof_path", "/debug/pprof")
}

// Default returns the configuration with nothing overridden.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	//nolint:errcheck // defaults always decode
	v.Unmarshal(&cfg)
	return cfg
}

// Load reads configuration into v and decodes it. When file is empty,
// categories.yaml in the working directory is used if it exists.
// Values already set on v (for example bound flags) take precedence.
func Load(v *viper.Viper, file string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("categories")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("config: server.max_body_bytes must not be negative, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("config: server.request_timeout must not be negative, got %s", c.Server.RequestTimeout)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown logging.format %q", c.Logging.Format)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Rate <= 0 {
			return fmt.Errorf("config: ratelimit.rate must be positive, got %v", c.RateLimit.Rate)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("config: ratelimit.burst must be positive, got %d", c.RateLimit.Burst)
		}
	}

	if c.CORS.Enabled && len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("config: cors.allowed_origins must not be empty when cors is enabled")
	}
	if c.Security.HSTSMaxAge < 0 {
		return fmt.Errorf("config: security.hsts_max_age must not be negative, got %d", c.Security.HSTSMaxAge)
	}

	paths := []struct {
		key, value string
		used       bool
	}{
		{"docs.spec_path", c.Docs.SpecPath, true},
		{"docs.yaml_path", c.Docs.YAMLPath, true},
		{"docs.ui_path", c.Docs.UIPath, true},
		{"metrics.path", c.Metrics.Path, c.Metrics.Enabled},
		{"debug.pprof_path", c.Debug.PprofPath, c.Debug.Pprof},
	}
	for _, p := range paths {
		if p.used && !strings.HasPrefix(p.value, "/") {
			return fmt.Errorf("config: %s must start with /, got %q", p.key, p.value)
		}
	}

	return nil
}
