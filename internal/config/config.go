// Package config loads go-pos settings from defaults, an optional YAML file,
// POS_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultDataDir = "~/.go-pos/data"
	DefaultLogFile = "~/.go-pos/logs/pos.log"
	envPrefix      = "pos"
)

type Config struct {
	DataDir   string          `mapstructure:"data_dir"`
	Currency  string          `mapstructure:"currency"`
	Timezone  string          `mapstructure:"timezone"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Log       LogConfig       `mapstructure:"log"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type AnalyticsConfig struct {
	TopItems     int    `mapstructure:"top_items"`
	TopCustomers int    `mapstructure:"top_customers"`
	DefaultView  string `mapstructure:"default_view"`
}

type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

// flagBindings maps config keys to the flag names that override them.
var flagBindings = map[string]string{
	"data_dir":                "data-dir",
	"currency":                "currency",
	"timezone":                "timezone",
	"analytics.top_items":     "top-items",
	"analytics.top_customers": "top-customers",
	"chart.width":             "chart-width",
	"chart.height":            "chart-height",
	"log.level":               "log-level",
}

// Load builds the configuration. path may be empty; flags may be nil. Only
// flags present in the set and set on the command line are bound, so flag
// defaults never shadow file or env values.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(util.ExpandPath(path))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DataDir = util.ExpandPath(cfg.DataDir)
	if cfg.Log.File != "" {
		cfg.Log.File = util.ExpandPath(cfg.Log.File)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("currency", constants.DefaultCurrency)
	v.SetDefault("timezone", "Local")
	v.SetDefault("admin.username", constants.DefaultAdminUsername)
	v.SetDefault("admin.password", constants.DefaultAdminPassword)
	v.SetDefault("analytics.top_items", constants.DefaultTopItems)
	v.SetDefault("analytics.top_customers", constants.DefaultTopCustomers)
	v.SetDefault("analytics.default_view", "daily")
	v.SetDefault("chart.width", 900)
	v.SetDefault("chart.height", 520)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("log.format", string(util.FormatText))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Admin.Username == "" {
		return fmt.Errorf("admin.username is required")
	}
	if _, err := model.ParseGranularity(c.Analytics.DefaultView); err != nil {
		return fmt.Errorf("analytics.default_view: %w", err)
	}
	if c.Analytics.TopItems < 0 || c.Analytics.TopCustomers < 0 {
		return fmt.Errorf("analytics limits must not be negative")
	}
	if c.Chart.Width < constants.MinChartSize || c.Chart.Height < constants.MinChartSize {
		return fmt.Errorf("chart size must be at least %dx%d, got %dx%d",
			constants.MinChartSize, constants.MinChartSize, c.Chart.Width, c.Chart.Height)
	}
	switch util.LogFormat(c.Log.Format) {
	case util.FormatText, util.FormatJSON:
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// DefaultView returns the parsed default analytics view.
func (c Config) DefaultView() model.Granularity {
	g, _ := model.ParseGranularity(c.Analytics.DefaultView)
	return g
}
