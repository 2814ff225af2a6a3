// Package config loads brudoc settings from defaults, an optional config
// file, BRUDOC_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "BRUDOC"
	// FileName is the config file searched for when none is given, with any
	// extension viper can decode (.yaml, .json, .toml, ...).
	FileName = ".brudoc"
)

// Keys double as flag names.
const (
	KeyInput     = "input"
	KeyOutput    = "output"
	KeyFormat    = "format"
	KeyExclude   = "exclude"
	KeyTemplates = "templates"
	KeyVerbose   = "verbose"
	KeyTitle     = "title"
)

// Config is the resolved build configuration.
type Config struct {
	Input     string
	Output    string
	Format    string
	Exclude   []string
	Templates string
	Verbose   bool
	Title     string
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Input:  "./Collection",
		Output: "./docs",
		Format: "html",
	}
}

// LoadOptions control Load.
type LoadOptions struct {
	// File is an explicit config file; it must exist.
	File string
	// SearchPaths are directories searched for FileName when File is empty.
	// Defaults to the working directory.
	SearchPaths []string
	// Flags are bound by key name; only flags the user set take effect.
	Flags *pflag.FlagSet
}

// Load resolves the configuration and returns it together with the config
// file used, if any.
func Load(opts LoadOptions) (Config, string, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyInput, d.Input)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyTemplates, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyTitle, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName(FileName)
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, "", fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for _, key := range []string{KeyInput, KeyOutput, KeyFormat, KeyExclude, KeyTemplates, KeyVerbose, KeyTitle} {
			if f := opts.Flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, "", fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := Config{
		Input:     v.GetString(KeyInput),
		Output:    v.GetString(KeyOutput),
		Format:    v.GetString(KeyFormat),
		Exclude:   v.GetStringSlice(KeyExclude),
		Templates: v.GetString(KeyTemplates),
		Verbose:   v.GetBool(KeyVerbose),
		Title:     v.GetString(KeyTitle),
	}
	return cfg, v.ConfigFileUsed(), nil
}
