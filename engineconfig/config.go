// Package engineconfig is the engine's configuration layer: sensible
// defaults, overridable by an optional YAML file, grounded on
// github.com/spf13/viper the way bisibesi-spec-recon's internal/config
// package uses it.
package engineconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the engine's tunables: the Calc settings and the log
// level. cmd/sheetctl reads Logging.Level; nothing in the engine reads
// the Calc settings, so Controller neither caps a transaction's dirty
// set nor changes how volatile cells are recomputed.
type Config struct {
	Calc    CalcConfig    `mapstructure:"calc"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CalcConfig carries calculation settings. They are loaded and defaulted
// but not consulted by Controller or CalcEngine.Recalculate.
type CalcConfig struct {
	MaxDirtyVertices int  `mapstructure:"max_dirty_vertices"` // dirty-set size limit; not enforced
	AllowVolatile    bool `mapstructure:"allow_volatile"`      // volatile-recompute switch; volatile cells are recomputed every transaction regardless
}

// LoggingConfig governs enginelog.
type LoggingConfig struct {
	Level string `mapstructure:"level"` // one of zerolog's level names: debug, info, warn, error
}

// Load reads configPath (defaults to "./sheetkernel.yaml") layered over
// sensible defaults. A missing file is not an error - the zero-config
// path callers get just from running cmd/sheetctl with no flags.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = "sheetkernel.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			// fall through with defaults only
		} else {
			return nil, fmt.Errorf("engineconfig: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("engineconfig: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calc.max_dirty_vertices", 200000)
	v.SetDefault("calc.allow_volatile", true)
	v.SetDefault("logging.level", "info")
}
