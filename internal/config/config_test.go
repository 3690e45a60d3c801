package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "₱", cfg.Currency)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, 10, cfg.Analytics.TopItems)
	assert.Equal(t, 6, cfg.Analytics.TopCustomers)
	assert.Equal(t, model.Daily, cfg.DefaultView())
	assert.Equal(t, 900, cfg.Chart.Width)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
	assert.NotContains(t, cfg.DataDir, "~")
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: `+dir+`
currency: "$"
admin:
  username: boss
analytics:
  top_items: 3
  default_view: weekly
chart:
  width: 640
`), 0644))

	t.Setenv("POS_ANALYTICS_TOP_ITEMS", "5")
	t.Setenv("POS_ADMIN_PASSWORD", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("currency", "₱", "")
	flags.Int("chart-height", 520, "")
	require.NoError(t, flags.Set("currency", "€"))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "€", cfg.Currency, "changed flag wins over file")
	assert.Equal(t, "boss", cfg.Admin.Username)
	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, 5, cfg.Analytics.TopItems, "env wins over file")
	assert.Equal(t, model.Weekly, cfg.DefaultView())
	assert.Equal(t, 640, cfg.Chart.Width)
	assert.Equal(t, 520, cfg.Chart.Height)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataDir:   "/tmp/pos",
			Admin:     AdminConfig{Username: "admin"},
			Analytics: AnalyticsConfig{TopItems: 10, TopCustomers: 6, DefaultView: "daily"},
			Chart:     ChartConfig{Width: 900, Height: 520},
			Log:       LogConfig{Format: "text"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no admin", mutate: func(c *Config) { c.Admin.Username = "" }, errMsg: "admin.username"},
		{name: "bad view", mutate: func(c *Config) { c.Analytics.DefaultView = "hourly" }, errMsg: "default_view"},
		{name: "negative limit", mutate: func(c *Config) { c.Analytics.TopItems = -1 }, errMsg: "negative"},
		{name: "zero chart", mutate: func(c *Config) { c.Chart.Height = 0 }, errMsg: "chart size"},
		{name: "short chart", mutate: func(c *Config) { c.Chart.Height = 100 }, errMsg: "at least 200x200"},
		{name: "narrow chart", mutate: func(c *Config) { c.Chart.Width = 199 }, errMsg: "chart size"},
		{name: "minimum chart", mutate: func(c *Config) { c.Chart.Width, c.Chart.Height = 200, 200 }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, errMsg: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_UnchangedFlagDefaultsDoNotShadow(t *testing.T) {
	t.Setenv("POS_CURRENCY", "$")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("currency", "", "")
	flags.Int("chart-width", 0, "")

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, 900, cfg.Chart.Width)
}
