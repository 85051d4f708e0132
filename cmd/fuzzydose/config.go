package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexshd/fuzzydose"
	"github.com/alexshd/fuzzydose/internal/chart"
)

// Config is the CLI configuration, merged from defaults, config file,
// FUZZYDOSE_* environment variables and flags (lowest to highest).
type Config struct {
	Preset      string       `mapstructure:"preset"`
	Method      string       `mapstructure:"method"`
	PresetsFile string       `mapstructure:"presets_file"`
	Strict      bool         `mapstructure:"strict"`
	Domain      DomainConfig `mapstructure:"domain"`
	Batch       BatchConfig  `mapstructure:"batch"`
	Plot        PlotConfig   `mapstructure:"plot"`
}

// DomainConfig mirrors fuzzydose.Domain.
type DomainConfig struct {
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Samples int     `mapstructure:"samples"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// PlotConfig sets chart sizes in inches.
type PlotConfig struct {
	WidthInches  float64 `mapstructure:"width_inches"`
	HeightInches float64 `mapstructure:"height_inches"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	d := fuzzydose.DefaultDomain()

	v.SetDefault("preset", fuzzydose.DefaultPreset.Name)
	v.SetDefault("method", fuzzydose.MinMax.String())
	v.SetDefault("presets_file", "")
	v.SetDefault("strict", false)

	v.SetDefault("domain.min", d.Min)
	v.SetDefault("domain.max", d.Max)
	v.SetDefault("domain.samples", d.Samples)

	v.SetDefault("batch.concurrency", 0) // 0 = GOMAXPROCS

	v.SetDefault("plot.width_inches", 0) // 0 = per-chart default
	v.SetDefault("plot.height_inches", 0)
}

// newViper builds a viper instance with defaults, env binding and the optional
// config file. An explicit configPath must exist; otherwise fuzzydose.yaml in
// the working directory is read when present.
func newViper(configPath string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix("FUZZYDOSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	} else if _, err := os.Stat("fuzzydose.yaml"); err == nil {
		v.SetConfigFile("fuzzydose.yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read fuzzydose.yaml")
		}
	}

	if flags != nil {
		for key, flag := range map[string]string{
			"preset":       "preset",
			"method":       "method",
			"presets_file": "presets-file",
			"strict":       "strict",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind --%s", flag)
				}
			}
		}
	}

	return v, nil
}

// LoadConfig resolves the configuration from v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// presets returns the built-in presets followed by those in PresetsFile.
func (c *Config) presets() ([]fuzzydose.Preset, error) {
	presets := fuzzydose.Presets()
	if c.PresetsFile == "" {
		return presets, nil
	}

	f, err := os.Open(c.PresetsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open presets file %s", c.PresetsFile)
	}
	defer f.Close()

	custom, err := fuzzydose.LoadPresets(f)
	if err != nil {
		return nil, errors.Wrapf(err, "presets file %s", c.PresetsFile)
	}

	for _, p := range custom {
		if _, err := fuzzydose.LookupPreset(p.Name); err == nil {
			return nil, errors.Newf("presets file %s redefines built-in preset %q", c.PresetsFile, p.Name)
		}
	}

	return append(presets, custom...), nil
}

func (c *Config) domain() fuzzydose.Domain {
	return fuzzydose.Domain{
		Min:     c.Domain.Min,
		Max:     c.Domain.Max,
		Samples: c.Domain.Samples,
	}
}

func (c *Config) chartSize(def chart.Size) chart.Size {
	size := def
	if c.Plot.WidthInches > 0 {
		size.Width = c.Plot.WidthInches
	}
	if c.Plot.HeightInches > 0 {
		size.Height = c.Plot.HeightInches
	}
	return size
}

// Controller builds the inference controller described by the configuration.
func (c *Config) Controller(opts ...fuzzydose.Option) (*fuzzydose.Controller, error) {
	presets, err := c.presets()
	if err != nil {
		return nil, err
	}

	preset, err := fuzzydose.FindPreset(presets, c.Preset)
	if err != nil {
		return nil, err
	}

	method, err := fuzzydose.ParseCombinationMethod(c.Method)
	if err != nil {
		return nil, err
	}

	opts = append([]fuzzydose.Option{fuzzydose.WithDomain(c.domain())}, opts...)
	if c.Strict {
		opts = append(opts, fuzzydose.WithStrictCoverage())
	}

	return fuzzydose.NewController(preset, method, opts...)
}
