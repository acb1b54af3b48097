package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/garyjia/coffee-machine/internal/domain/workflow"
)

// EnvPrefix prefixes environment overrides, e.g. COFFEE_MACHINE_WATER_TANK_FILLED
const EnvPrefix = "COFFEE"

// Config holds all application configuration
type Config struct {
	Machine MachineConfig `mapstructure:"machine"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// MachineConfig holds the initial sensor readings and attempt count
type MachineConfig struct {
	WaterTankFilled bool `mapstructure:"water_tank_filled"`
	CapsuleBinEmpty bool `mapstructure:"capsule_bin_empty"`
	CapsuleInserted bool `mapstructure:"capsule_inserted"`
	BrewAttempts    int  `mapstructure:"brew_attempts"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// flagKeys maps CLI flag names to config keys
var flagKeys = map[string]string{
	"water":      "machine.water_tank_filled",
	"bin-empty":  "machine.capsule_bin_empty",
	"capsule":    "machine.capsule_inserted",
	"times":      "machine.brew_attempts",
	"log-level":  "logger.level",
	"log-format": "logger.format",
}

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool("water", true, "water tank is filled")
	fs.Bool("bin-empty", true, "capsule bin is empty")
	fs.Bool("capsule", true, "a capsule is inserted")
	fs.Int("times", 1, "number of brew attempts")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "console", "log format (json or console)")
}

// Load loads configuration from defaults, an optional YAML file, environment
// variables and flags, in increasing precedence. An empty configPath skips the
// file; fs may be nil.
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("machine.water_tank_filled", true)
	v.SetDefault("machine.capsule_bin_empty", true)
	v.SetDefault("machine.capsule_inserted", true)
	v.SetDefault("machine.brew_attempts", 1)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// bindFlags binds only flags the user set, so flag defaults never mask the file
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Machine.BrewAttempts < 1 {
		return fmt.Errorf("machine.brew_attempts must be at least 1, got %d", c.Machine.BrewAttempts)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logger.Level)); err != nil {
		return fmt.Errorf("logger.level %q is not a valid level", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	return nil
}

// Sensors converts the machine section into sensor readings
func (m MachineConfig) Sensors() workflow.Sensors {
	return workflow.Sensors{
		WaterTankFilled: m.WaterTankFilled,
		CapsuleBinEmpty: m.CapsuleBinEmpty,
		CapsuleInserted: m.CapsuleInserted,
	}
}
