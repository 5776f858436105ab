package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flags "github.com/jessevdk/go-flags"

	"stevenson/internal/app"
	"stevenson/internal/config"
	"stevenson/internal/logging"
)

const appName = "stevenson"

// Set with -ldflags "-X main.version=..."
var version = "dev"

type Options struct {
	Version     bool    `short:"V" long:"version" description:"Prints current version"`
	Temperature float64 `short:"t" long:"temperature" description:"air temperature in °C"`
	DewPoint    float64 `short:"d" long:"dew-point" description:"dew point temperature in °C"`
	WindSpeed   float64 `short:"w" long:"wind-speed" description:"wind speed in mph" default:"0"`
	Rain        float64 `short:"r" long:"rain" description:"rain received over the last 24 hours in mm" default:"0"`
	Station     string  `short:"s" long:"station" description:"station identifier shown in the report"`
	Stdin       bool    `long:"stdin" description:"read a JSON observation from standard input instead of flags"`
	Format      string  `short:"f" long:"format" description:"report format, overrides OUTPUT_FORMAT" choice:"text" choice:"json"`
}

func main() {
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg, version, appName)
	slog.SetDefault(logger)

	obs, err := readObservation(parser, opts, os.Stdin)
	if err != nil {
		slog.Error("invalid observation", "err", err)
		os.Exit(1)
	}

	if err := app.Run(cfg, obs, os.Stdout); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if opts.Format != "" {
		cfg.OutputFormat, err = config.ParseOutputFormat(opts.Format)
		if err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// readObservation builds the observation from stdin when --stdin is given,
// otherwise from the measurement flags. Temperature and dew point have no
// sensible default and must be set explicitly.
func readObservation(parser *flags.Parser, opts Options, stdin io.Reader) (app.Observation, error) {
	if opts.Stdin {
		obs, err := app.DecodeObservation(stdin)
		if err != nil {
			return app.Observation{}, err
		}
		if opts.Station != "" {
			obs.StationID = opts.Station
		}
		return obs, nil
	}

	for _, name := range []string{"temperature", "dew-point"} {
		if opt := parser.FindOptionByLongName(name); opt == nil || !opt.IsSet() {
			return app.Observation{}, fmt.Errorf("%w: --%s", app.ErrMissingField, name)
		}
	}

	return app.Observation{
		StationID:   opts.Station,
		Temperature: &opts.Temperature,
		DewPoint:    &opts.DewPoint,
		WindSpeed:   &opts.WindSpeed,
		TotalRain:   &opts.Rain,
	}, nil
}
