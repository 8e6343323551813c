package config

import (
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

const (
	EnvPrefix = "NODE_INSPECTOR"
	masked    = "*****"
)

type Configuration struct {
	Database  Database `mapstructure:"database"`
	Bridge    Bridge   `mapstructure:"bridge"`
	Snapshot  Snapshot `mapstructure:"snapshot"`
	Keystore  Keystore `mapstructure:"keystore"`
	Server    Server   `mapstructure:"server"`
	LogFormat string   `mapstructure:"log-format" default:"console"`
	LogLevel  string   `mapstructure:"log-level" default:"info"`
}

type Database struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username" default:"sa"`
	Password string `mapstructure:"password"`
	Driver   string `mapstructure:"driver"`

	// ConnectTimeout bounds Open only; statements are not limited.
	ConnectTimeout time.Duration `mapstructure:"connect-timeout" default:"10s"`
}

type Bridge struct {
	ProxyURL string        `mapstructure:"proxy-url"`
	AgentURL string        `mapstructure:"agent-url" default:"http://localhost:7005"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout" default:"30s"`
	Workers  int           `mapstructure:"workers" default:"4"`
	Interval time.Duration `mapstructure:"interval" default:"5s"`
}

type Snapshot struct {
	NodeName        string `mapstructure:"node-name" default:"node"`
	OutputDir       string `mapstructure:"output-dir" default:"."`
	ContinueOnError bool   `mapstructure:"continue-on-error"`
}

// Keystore defaults are the development passwords nodes ship with.
type Keystore struct {
	StorePassword string `mapstructure:"store-password" default:"cordacadevpass"`
	KeyPassword   string `mapstructure:"key-password" default:"cordacadevkeypass"`
}

type Server struct {
	ServerMode string `mapstructure:"server-mode" default:"dev"`
	HTTPPort   int    `mapstructure:"http-port" default:"8000"`
}

// NewConfigurationWithDefaults returns a configuration holding every default.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// tags are static, a failure here is a programming error
		panic(err)
	}
	return cfg
}

// NewViper returns a viper instance reading NODE_INSPECTOR_* variables, with
// every key registered so env overrides work even without a flag or file.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range NewConfigurationWithDefaults().flatten() {
		v.SetDefault(key, value)
	}
	return v
}

// Load reads the optional config file and decodes v on top of the defaults.
func Load(v *viper.Viper, configFile string) (*Configuration, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, srvErrors.NewConfigurationError("config", err.Error())
		}
	}

	cfg := NewConfigurationWithDefaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, srvErrors.NewConfigurationError("config", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return srvErrors.NewConfigurationError("log-format", "must be console or json")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return srvErrors.NewConfigurationError("log-level", err.Error())
	}
	if c.Server.ServerMode != "dev" && c.Server.ServerMode != "prod" {
		return srvErrors.NewConfigurationError("server.server-mode", "must be dev or prod")
	}
	if c.Bridge.Workers < 1 {
		return srvErrors.NewConfigurationError("bridge.workers", "must be at least 1")
	}
	return nil
}

// DebugMap returns the configuration for logging with secrets masked.
func (c *Configuration) DebugMap() map[string]any {
	m := c.flatten()
	for _, key := range []string{"database.password", "bridge.token", "keystore.store-password", "keystore.key-password"} {
		if s, _ := m[key].(string); s != "" {
			m[key] = masked
		}
	}
	return m
}

func (c *Configuration) flatten() map[string]any {
	return map[string]any{
		"database.url":               c.Database.URL,
		"database.username":          c.Database.Username,
		"database.password":          c.Database.Password,
		"database.driver":            c.Database.Driver,
		"database.connect-timeout":   c.Database.ConnectTimeout,
		"bridge.proxy-url":           c.Bridge.ProxyURL,
		"bridge.agent-url":           c.Bridge.AgentURL,
		"bridge.token":               c.Bridge.Token,
		"bridge.timeout":             c.Bridge.Timeout,
		"bridge.workers":             c.Bridge.Workers,
		"bridge.interval":            c.Bridge.Interval,
		"snapshot.node-name":         c.Snapshot.NodeName,
		"snapshot.output-dir":        c.Snapshot.OutputDir,
		"snapshot.continue-on-error": c.Snapshot.ContinueOnError,
		"keystore.store-password":    c.Keystore.StorePassword,
		"keystore.key-password":      c.Keystore.KeyPassword,
		"server.server-mode":         c.Server.ServerMode,
		"server.http-port":           c.Server.HTTPPort,
		"log-format":                 c.LogFormat,
		"log-level":                  c.LogLevel,
	}
}
