package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Filter FilterConfig `mapstructure:"filter"`
	Data   DataConfig   `mapstructure:"data"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
}

type FilterConfig struct {
	DebounceMs        int   `mapstructure:"debounce_ms"`
	CheckColumns      []int `mapstructure:"check_columns"`
	ParallelThreshold int   `mapstructure:"parallel_threshold"`
}

type DataConfig struct {
	Source               string   `mapstructure:"source"` // demo, csv, sqlite, postgres, cassandra
	Path                 string   `mapstructure:"path"`
	DSN                  string   `mapstructure:"dsn"`
	Query                string   `mapstructure:"query"`
	Table                string   `mapstructure:"table"`
	Hosts                []string `mapstructure:"hosts"`
	Keyspace             string   `mapstructure:"keyspace"`
	Limit                int      `mapstructure:"limit"`
	DemoRows             int      `mapstructure:"demo_rows"`
	DemoColumns          int      `mapstructure:"demo_columns"`
	MaxCellDisplayLength int      `mapstructure:"max_cell_display_length"`
	LoadTimeout          int      `mapstructure:"load_timeout"` // seconds
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"` // csv, json, yaml
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: true,
		},
		Filter: FilterConfig{
			DebounceMs:        500,
			CheckColumns:      []int{},
			ParallelThreshold: 20000,
		},
		Data: DataConfig{
			Source:               "demo",
			Hosts:                []string{"127.0.0.1"},
			Limit:                100000,
			DemoRows:             250000,
			DemoColumns:          4,
			MaxCellDisplayLength: 40,
			LoadTimeout:          30,
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"theme":         "ui.theme",
	"mouse":         "ui.mouse_enabled",
	"debounce":      "filter.debounce_ms",
	"check-columns": "filter.check_columns",
	"source":        "data.source",
	"path":          "data.path",
	"dsn":           "data.dsn",
	"query":         "data.query",
	"table":         "data.table",
	"hosts":         "data.hosts",
	"keyspace":      "data.keyspace",
	"limit":         "data.limit",
	"rows":          "data.demo_rows",
	"columns":       "data.demo_columns",
	"export-dir":    "export.dir",
	"export-format": "export.format",
	"log-level":     "log.level",
	"log-file":      "log.file",
}

// Load loads configuration from files. When file is set it is read instead
// of searching the default locations. Flags that were set on the command
// line override file values.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		// Set config name and type
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 1. User config directory
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "filtergrid"))
		}

		// 2. Current directory
		v.AddConfigPath(".")

		// 3. Default config directory
		v.AddConfigPath("./config")
	}

	d := GetDefaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("filter.debounce_ms", d.Filter.DebounceMs)
	v.SetDefault("filter.check_columns", d.Filter.CheckColumns)
	v.SetDefault("filter.parallel_threshold", d.Filter.ParallelThreshold)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.path", "")
	v.SetDefault("data.dsn", "")
	v.SetDefault("data.query", "")
	v.SetDefault("data.table", "")
	v.SetDefault("data.hosts", d.Data.Hosts)
	v.SetDefault("data.keyspace", "")
	v.SetDefault("data.limit", d.Data.Limit)
	v.SetDefault("data.demo_rows", d.Data.DemoRows)
	v.SetDefault("data.demo_columns", d.Data.DemoColumns)
	v.SetDefault("data.max_cell_display_length", d.Data.MaxCellDisplayLength)
	v.SetDefault("data.load_timeout", d.Data.LoadTimeout)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("FILTERGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "filtergrid"), nil
}
