package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/proctable"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	errConfigRead    = errors.New("failed to read config file")
	errConfigDecode  = errors.New("failed to decode config")
	errConfigInvalid = errors.New("invalid config")
)

const (
	AppName           = "sysmoni"
	DefaultConfigName = "config.yaml"
	DefaultLogName    = "sysmoni.log"
	EnvPrefix         = "SRPS_SYSMONI"
)

// Config carries runtime options for sysmoni.
type Config struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RedrawInterval  time.Duration `mapstructure:"redraw_interval"`
	ShowHeader      bool          `mapstructure:"show_header"`
	Sort            string        `mapstructure:"sort"`
	Filter          string        `mapstructure:"filter"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`
}

func Default() Config {
	return Config{
		RefreshInterval: time.Second,
		RedrawInterval:  150 * time.Millisecond,
		ShowHeader:      true,
		Sort:            "",
		Filter:          "",
		LogLevel:        "info",
		LogFile:         "",
	}
}

// flagKeys maps command line flag names onto config keys.
var flagKeys = map[string]string{
	"refresh":   "refresh_interval",
	"redraw":    "redraw_interval",
	"sort":      "sort",
	"filter":    "filter",
	"log-level": "log_level",
	"log-file":  "log_file",
}

// Load layers defaults, the config file, the environment and flags, in
// increasing precedence. An empty path looks for
// $XDG_CONFIG_HOME/sysmoni/config.yaml and skips the file when absent.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("Could not load .env file", slog.String("error", err.Error()))
	}

	def := Default()
	v := viper.New()
	v.SetDefault("refresh_interval", def.RefreshInterval)
	v.SetDefault("redraw_interval", def.RedrawInterval)
	v.SetDefault("show_header", def.ShowHeader)
	v.SetDefault("sort", def.Sort)
	v.SetDefault("filter", def.Filter)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path == "" {
		if found, err := xdg.SearchConfigFile(filepath.Join(AppName, DefaultConfigName)); err == nil {
			path = found
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return def, errors.Join(err, fmt.Errorf("%w: %s", errConfigRead, path))
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return def, errors.Join(err, errConfigDecode)
				}
			}
		}
		// --no-header is the inverse of show_header.
		if f := flags.Lookup("no-header"); f != nil && f.Changed {
			v.Set("show_header", f.Value.String() != "true")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, errors.Join(err, errConfigDecode)
	}
	if err := cfg.Validate(); err != nil {
		return def, err
	}
	return cfg, nil
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive, got %s", errConfigInvalid, c.RefreshInterval)
	}
	if c.RedrawInterval <= 0 {
		return fmt.Errorf("%w: redraw interval must be positive, got %s", errConfigInvalid, c.RedrawInterval)
	}
	if c.RedrawInterval > c.RefreshInterval {
		return fmt.Errorf("%w: redraw interval %s exceeds refresh interval %s",
			errConfigInvalid, c.RedrawInterval, c.RefreshInterval)
	}
	if _, err := c.InitialSort(); err != nil {
		return errors.Join(err, errConfigInvalid)
	}
	if _, err := c.FilterRegexp(); err != nil {
		return errors.Join(err, errConfigInvalid)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return errors.Join(err, errConfigInvalid)
	}
	return nil
}

// InitialSort is the process table ordering at startup.
func (c Config) InitialSort() (proctable.SortState, error) {
	if c.Sort == "" {
		return proctable.SortState{}, nil
	}
	column, err := proctable.ParseColumn(c.Sort)
	if err != nil {
		return proctable.SortState{}, err
	}
	return proctable.Sorted(column), nil
}

// FilterRegexp compiles the process name filter, nil when unset.
func (c Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Filter == "" {
		return nil, nil
	}
	return regexp.Compile(c.Filter)
}
