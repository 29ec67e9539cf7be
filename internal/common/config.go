package common

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the tool reads.
const EnvPrefix = "DOCX2XLSX"

// Config holds all application configuration
type Config struct {
	Log     LogConfig
	Extract ExtractConfig
	Batch   BatchConfig
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

// ExtractConfig holds field-extraction configuration
type ExtractConfig struct {
	RegexTimeout time.Duration
}

// BatchConfig holds batch-inspection configuration
type BatchConfig struct {
	CatalogPath  string
	PreviewRunes int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("regex.timeout", 2*time.Second)
	v.SetDefault("catalog", "")
	v.SetDefault("summary.preview.runes", 100)

	return &Config{
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
		Extract: ExtractConfig{
			RegexTimeout: v.GetDuration("regex.timeout"),
		},
		Batch: BatchConfig{
			CatalogPath:  v.GetString("catalog"),
			PreviewRunes: v.GetInt("summary.preview.runes"),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field(EnvPrefix+"_LOG_LEVEL", c.Log.Level, OneOf("debug", "info", "warn", "error")).
		Field(EnvPrefix+"_LOG_FORMAT", c.Log.Format, OneOf("text", "json"))
	if err := ValidateAndReturnError(v); err != nil {
		return err
	}
	if c.Extract.RegexTimeout <= 0 {
		return NewAppError(CodeConfig, EnvPrefix+"_REGEX_TIMEOUT must be positive", ErrInvalidInput)
	}
	if c.Batch.PreviewRunes <= 0 {
		return NewAppError(CodeConfig, EnvPrefix+"_SUMMARY_PREVIEW_RUNES must be positive", ErrInvalidInput)
	}
	return nil
}
