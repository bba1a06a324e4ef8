// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when a key is absent from both the environment and the
// optional .env file.
const (
	DefaultPort                         = "8080"
	DefaultBodySizeLimit                = "256M"
	DefaultLogFormat                    = "auto"
	DefaultMetricsEndpoint              = "/metrics"
	DefaultSecondsPerAcceptance         = 45.0
	DefaultEngagementThreshold          = 5
	DefaultPowerUserAcceptanceThreshold = 0.3
	DefaultPowerUserActiveDays          = 5
)

// Request body limits the server accepts, in bytes. Usage exports arrive as
// single NDJSON uploads, so the ceiling is generous.
const (
	minBodySizeBytes = 1 << 10
	maxBodySizeBytes = 1 << 30
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Metrics MetricsConfig
	Report  ReportConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string
	MasterKey      string
	BodySizeLimit  string
	SwaggerEnabled bool
}

// LogConfig holds logger configuration. Format is one of "auto", "json"
// or "pretty"; anything else falls back to auto-detection.
type LogConfig struct {
	Format string
}

// MetricsConfig holds Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled  bool
	Endpoint string
}

// ReportConfig holds the report parameters applied when a request does not
// override them, plus the optional display name vocabulary file.
type ReportConfig struct {
	LicensedUsers                int
	SecondsPerAcceptance         float64
	EngagementThreshold          int
	PowerUserAcceptanceThreshold float64
	PowerUserActiveDays          int
	CostPerHour                  float64
	DisplayNamesFile             string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first so local development does not need
// exported variables; real environment variables always win.
func Load() (*Config, error) {
	// Missing .env is fine, deployments set the environment directly.
	_ = godotenv.Load()

	setDefaults()
	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("PORT"),
			MasterKey:      viper.GetString("AIPULSE_MASTER_KEY"),
			BodySizeLimit:  viper.GetString("BODY_SIZE_LIMIT"),
			SwaggerEnabled: viper.GetBool("SWAGGER_ENABLED"),
		},
		Log: LogConfig{
			Format: viper.GetString("LOG_FORMAT"),
		},
		Metrics: MetricsConfig{
			Enabled:  viper.GetBool("METRICS_ENABLED"),
			Endpoint: viper.GetString("METRICS_ENDPOINT"),
		},
		Report: ReportConfig{
			LicensedUsers:                viper.GetInt("LICENSED_USERS"),
			SecondsPerAcceptance:         viper.GetFloat64("SECONDS_PER_ACCEPTANCE"),
			EngagementThreshold:          viper.GetInt("ENGAGEMENT_THRESHOLD"),
			PowerUserAcceptanceThreshold: viper.GetFloat64("POWER_USER_ACCEPTANCE_THRESHOLD"),
			PowerUserActiveDays:          viper.GetInt("POWER_USER_ACTIVE_DAYS"),
			CostPerHour:                  viper.GetFloat64("COST_PER_HOUR"),
			DisplayNamesFile:             viper.GetString("DISPLAY_NAMES_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("PORT", DefaultPort)
	viper.SetDefault("BODY_SIZE_LIMIT", DefaultBodySizeLimit)
	viper.SetDefault("SWAGGER_ENABLED", true)
	viper.SetDefault("LOG_FORMAT", DefaultLogFormat)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_ENDPOINT", DefaultMetricsEndpoint)
	viper.SetDefault("LICENSED_USERS", 0)
	viper.SetDefault("SECONDS_PER_ACCEPTANCE", DefaultSecondsPerAcceptance)
	viper.SetDefault("ENGAGEMENT_THRESHOLD", DefaultEngagementThreshold)
	viper.SetDefault("POWER_USER_ACCEPTANCE_THRESHOLD", DefaultPowerUserAcceptanceThreshold)
	viper.SetDefault("POWER_USER_ACTIVE_DAYS", DefaultPowerUserActiveDays)
	viper.SetDefault("COST_PER_HOUR", 0.0)
	viper.SetDefault("DISPLAY_NAMES_FILE", "")
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if err := ValidateBodySizeLimit(c.Server.BodySizeLimit); err != nil {
		return err
	}
	if c.Report.LicensedUsers < 0 {
		return fmt.Errorf("LICENSED_USERS must not be negative, got %d", c.Report.LicensedUsers)
	}
	if c.Report.SecondsPerAcceptance < 0 {
		return fmt.Errorf("SECONDS_PER_ACCEPTANCE must not be negative, got %v", c.Report.SecondsPerAcceptance)
	}
	if c.Report.EngagementThreshold < 0 {
		return fmt.Errorf("ENGAGEMENT_THRESHOLD must not be negative, got %d", c.Report.EngagementThreshold)
	}
	if c.Report.PowerUserAcceptanceThreshold < 0 {
		return fmt.Errorf("POWER_USER_ACCEPTANCE_THRESHOLD must not be negative, got %v", c.Report.PowerUserAcceptanceThreshold)
	}
	if c.Report.PowerUserActiveDays < 0 {
		return fmt.Errorf("POWER_USER_ACTIVE_DAYS must not be negative, got %d", c.Report.PowerUserActiveDays)
	}
	if c.Report.CostPerHour < 0 {
		return fmt.Errorf("COST_PER_HOUR must not be negative, got %v", c.Report.CostPerHour)
	}
	return nil
}

// ValidateBodySizeLimit checks that a request body limit uses a size format
// the HTTP server accepts: a plain byte count or a number with a K, M or G
// suffix (an optional trailing B is allowed, as in "10MB"). The empty string
// is valid and leaves the server default in place.
func ValidateBodySizeLimit(limit string) error {
	s := strings.ToUpper(strings.TrimSpace(limit))
	if s == "" {
		return nil
	}

	if strings.HasSuffix(s, "B") {
		trimmed := strings.TrimSuffix(s, "B")
		// A bare B carries no unit, "10B" is not a valid limit.
		if !strings.HasSuffix(trimmed, "K") && !strings.HasSuffix(trimmed, "M") && !strings.HasSuffix(trimmed, "G") {
			return fmt.Errorf("invalid body size limit %q: unknown unit", limit)
		}
		s = trimmed
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1 << 10
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1 << 20
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		multiplier = 1 << 30
		s = strings.TrimSuffix(s, "G")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid body size limit %q: %w", limit, err)
	}
	if n <= 0 {
		return fmt.Errorf("invalid body size limit %q: must be positive", limit)
	}
	if n > maxBodySizeBytes/multiplier {
		return fmt.Errorf("body size limit %q exceeds the 1G maximum", limit)
	}
	if n*multiplier < minBodySizeBytes {
		return fmt.Errorf("body size limit %q is below the 1K minimum", limit)
	}
	return nil
}
