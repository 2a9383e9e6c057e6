package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"osubeatmap/dotosu"
)

// Config holds the CLI settings after flags, env and config file are merged.
type Config struct {
	LogLevel         string
	Workers          int
	DB               string
	Strict           bool
	FailFast         bool
	LegacyWidescreen bool
	LegacyHold       bool
	Pretty           bool
	Paths            []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("db", "")
	v.SetDefault("strict", false)
	v.SetDefault("failFast", false)
	v.SetDefault("legacyWidescreen", false)
	v.SetDefault("legacyHold", false)
	v.SetDefault("pretty", false)
}

func newFlagSet(out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("osubeatmap", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, "usage: osubeatmap [flags] PATH...")
		fs.PrintDefaults()
	}
	fs.String("config", "", "config file (default ./osubeatmap.json if present)")
	fs.String("logLevel", "info", "trace, debug, info, warn or error")
	fs.IntP("workers", "j", runtime.NumCPU(), "files decoded in parallel")
	fs.String("db", "", "sqlite index to write summaries and failures to")
	fs.Bool("strict", false, "treat malformed numbers as errors")
	fs.Bool("failFast", false, "fail a file on its first broken line")
	fs.Bool("legacyWidescreen", false, "store WidescreenStoryboard into Mode (legacy mapping)")
	fs.Bool("legacyHold", false, "decode type bit 128 as a spinner")
	fs.Bool("pretty", false, "indent printed summaries")
	return fs
}

// LoadConfig parses args and merges them over OSUBEATMAP_* env vars, the
// config file and the defaults.
func LoadConfig(args []string, out io.Writer) (Config, error) {
	v := viper.New()
	setDefaults(v)

	fs := newFlagSet(out)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	v.SetEnvPrefix("OSUBEATMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("json")
	if file, _ := fs.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("osubeatmap")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Config{
		LogLevel:         v.GetString("logLevel"),
		Workers:          v.GetInt("workers"),
		DB:               v.GetString("db"),
		Strict:           v.GetBool("strict"),
		FailFast:         v.GetBool("failFast"),
		LegacyWidescreen: v.GetBool("legacyWidescreen"),
		LegacyHold:       v.GetBool("legacyHold"),
		Pretty:           v.GetBool("pretty"),
		Paths:            fs.Args(),
	}, nil
}

// DecodeOptions maps the config switches onto decoder options.
func (c Config) DecodeOptions() []dotosu.Option {
	var opts []dotosu.Option
	if c.Strict {
		opts = append(opts, dotosu.WithStrictNumbers())
	}
	if c.FailFast {
		opts = append(opts, dotosu.WithFailFast())
	}
	if c.LegacyWidescreen {
		opts = append(opts, dotosu.WithLegacyWidescreen())
	}
	if c.LegacyHold {
		opts = append(opts, dotosu.WithLegacyHoldDispatch())
	}
	return opts
}

func (c Config) Level() zerolog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
