package config

import (
	"golang-market-insight/pkg/config"
)

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AlertSchedule maps a cron expression onto an alert slot so recommendation
// cycles run automatically per slot.
type AlertSchedule struct {
	CronExpression string `mapstructure:"cron_expression"`
	AlertTime      string `mapstructure:"alert_time"`
}

// Market holds market-service specific configuration.
type Market struct {
	DefaultUserID      string          `mapstructure:"default_user_id"`
	SnapshotCron       string          `mapstructure:"snapshot_cron"`
	AlertSchedules     []AlertSchedule `mapstructure:"alert_schedules"`
	AnalysisCacheTTL   string          `mapstructure:"analysis_cache_ttl"`
	SupportVolatility  float64         `mapstructure:"support_volatility"`
	RecommendationsMax int             `mapstructure:"recommendations_max"`
}

// Telegram holds configuration for the optional Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the market API service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Gemini   Gemini          `mapstructure:"gemini"`
	Market   Market          `mapstructure:"market"`
	Telegram Telegram        `mapstructure:"telegram"`
}

// Load loads the market service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
