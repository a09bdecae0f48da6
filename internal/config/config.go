package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the API service
type Config struct {
	// Server
	Port        string
	Environment string
	Share       bool
	Debug       bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// External services
	GeminiAPIKey string
	OTLPEndpoint string

	// Presentation
	HighlightStyle     string
	CORSAllowedOrigins []string
}

// Keys understood by Load. Each maps to the upper-cased environment variable.
const (
	KeyPort           = "port"
	KeyEnvironment    = "go_env"
	KeyShare          = "share"
	KeyDebug          = "debug"
	KeyReadTimeout    = "http_read_timeout"
	KeyWriteTimeout   = "http_write_timeout"
	KeyIdleTimeout    = "http_idle_timeout"
	KeyGeminiAPIKey   = "gemini_api_key"
	KeyOTLPEndpoint   = "otel_exporter_otlp_endpoint"
	KeyHighlightStyle = "highlight_style"
	KeyCORSOrigins    = "cors_allowed_origins"
)

// New returns a viper instance with defaults and environment bindings.
// Flags bound to it by the caller take precedence over both.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyEnvironment, "development")
	v.SetDefault(KeyShare, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyReadTimeout, 15*time.Second)
	v.SetDefault(KeyWriteTimeout, 120*time.Second)
	v.SetDefault(KeyIdleTimeout, 60*time.Second)
	v.SetDefault(KeyOTLPEndpoint, "")
	v.SetDefault(KeyHighlightStyle, "default")
	v.SetDefault(KeyCORSOrigins, "*")
	v.AutomaticEnv()

	// the key name used by earlier deployments is still honoured
	_ = v.BindEnv(KeyGeminiAPIKey, "GEMINI_API_KEY", "PALM_KEY", "Palm_Key")
	return v
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads configuration from v
func Load(v *viper.Viper) *Config {
	return &Config{
		Port:               v.GetString(KeyPort),
		Environment:        v.GetString(KeyEnvironment),
		Share:              v.GetBool(KeyShare),
		Debug:              v.GetBool(KeyDebug),
		ReadTimeout:        v.GetDuration(KeyReadTimeout),
		WriteTimeout:       v.GetDuration(KeyWriteTimeout),
		IdleTimeout:        v.GetDuration(KeyIdleTimeout),
		GeminiAPIKey:       v.GetString(KeyGeminiAPIKey),
		OTLPEndpoint:       v.GetString(KeyOTLPEndpoint),
		HighlightStyle:     v.GetString(KeyHighlightStyle),
		CORSAllowedOrigins: splitList(v.GetString(KeyCORSOrigins)),
	}
}

// Addr is the listen address: loopback only unless the instance is shared
func (c *Config) Addr() string {
	if c.Share {
		return ":" + c.Port
	}
	return "127.0.0.1:" + c.Port
}

// DocsHost is the host the API docs advertise to clients
func (c *Config) DocsHost() string {
	return "localhost:" + c.Port
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
