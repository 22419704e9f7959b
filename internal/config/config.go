// Package config loads the application configuration from struct defaults
// and DATAVIEWS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "DATAVIEWS_"

// Config is the application configuration.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Source  SourceConfig  `koanf:"source"`
	View    ViewConfig    `koanf:"view"`
	Preview PreviewConfig `koanf:"preview"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// SourceConfig selects where records come from. File wins over URL.
type SourceConfig struct {
	File     string        `koanf:"file"`
	URL      string        `koanf:"url" validate:"omitempty,url"`
	User     string        `koanf:"user"`
	Password string        `koanf:"password"`
	Retries  int           `koanf:"retries" validate:"gte=0"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// ViewConfig holds the view defaults applied by the CLI.
type ViewConfig struct {
	PerPage int    `koanf:"per_page" validate:"gt=0"`
	Locale  string `koanf:"locale" validate:"required"`
	Preset  string `koanf:"preset"`
}

// PreviewConfig configures the preview renderer.
type PreviewConfig struct {
	CacheSize  int    `koanf:"cache_size" validate:"gt=0"`
	Background string `koanf:"background"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Source:  SourceConfig{Retries: 2, Timeout: 30 * time.Second},
		View:    ViewConfig{PerPage: 20, Locale: "en"},
		Preview: PreviewConfig{CacheSize: 256, Background: "white"},
	}
}

// Load builds the configuration from defaults overlaid with the environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// transformEnvKey maps DATAVIEWS_VIEW_PER_PAGE to view.per_page: the first
// segment is the section, the rest is the field name.
func transformEnvKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], value
	default:
		return parts[0] + "." + strings.Join(parts[1:], "_"), value
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the locale tag.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	if _, err := language.Parse(cfg.View.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", cfg.View.Locale, err)
	}
	return nil
}

// LanguageTag returns the parsed view locale, falling back to English.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.View.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
