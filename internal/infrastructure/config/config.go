package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Printer  PrinterConfig
	Storage  StorageConfig
	Database DatabaseConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// PrinterConfig holds printer connection settings
type PrinterConfig struct {
	// Mode selects the transport: usb, serial or mock
	Mode string
	// SerialPort is the device path for serial mode
	SerialPort string
	// BaudRate for serial mode, 0 selects the driver default
	BaudRate int
	// MockTapeWidthMM is the tape the mock printer pretends to have
	MockTapeWidthMM int
	// InitRetries is how many times startup probes the device
	InitRetries int
	// InitRetryDelay is the pause between startup probes
	InitRetryDelay time.Duration
}

// StorageConfig holds backup storage settings
type StorageConfig struct {
	// BackupPath is the directory PNG backups are written to
	BackupPath string
	// RetentionDays is how long to keep backups (0 = forever)
	RetentionDays int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Path is the sqlite database file
	Path string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with TECHLABEL_ prefix (e.g., TECHLABEL_PRINTER_MODE)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("TECHLABEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Printer: PrinterConfig{
			Mode:            v.GetString("printer.mode"),
			SerialPort:      v.GetString("printer.serial_port"),
			BaudRate:        v.GetInt("printer.baud_rate"),
			MockTapeWidthMM: v.GetInt("printer.mock_tape_width_mm"),
			InitRetries:     v.GetInt("printer.init_retries"),
			InitRetryDelay:  v.GetDuration("printer.init_retry_delay"),
		},
		Storage: StorageConfig{
			BackupPath:    v.GetString("storage.backup_path"),
			RetentionDays: v.GetInt("storage.retention_days"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "techlabel-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Printer.Mode == "" {
		cfg.Printer.Mode = "usb"
	}
	if cfg.Printer.SerialPort == "" {
		cfg.Printer.SerialPort = "/dev/ttyUSB0"
	}
	if cfg.Printer.MockTapeWidthMM == 0 {
		cfg.Printer.MockTapeWidthMM = 9
	}
	if cfg.Printer.InitRetries == 0 {
		cfg.Printer.InitRetries = 5
	}
	if cfg.Printer.InitRetryDelay == 0 {
		cfg.Printer.InitRetryDelay = 2 * time.Second
	}
	if cfg.Storage.BackupPath == "" {
		cfg.Storage.BackupPath = "/data/backups"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "/data/techlabel.db"
	}
}

func (c *Config) validate() error {
	switch c.Printer.Mode {
	case "usb", "serial", "mock":
	default:
		return fmt.Errorf("printer.mode must be usb, serial or mock, got %q", c.Printer.Mode)
	}
	if c.Printer.InitRetries < 1 {
		return fmt.Errorf("printer.init_retries must be positive")
	}
	if c.Printer.BaudRate < 0 {
		return fmt.Errorf("printer.baud_rate cannot be negative")
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("storage.retention_days cannot be negative")
	}
	if c.HTTP.MaxBodySize < 1024 {
		return fmt.Errorf("http.max_body_size must be at least 1KB")
	}

	if c.App.Env == "production" {
		if c.Printer.Mode == "mock" {
			return fmt.Errorf("printer.mode cannot be 'mock' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
