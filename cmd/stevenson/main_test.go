package main

import (
	"errors"
	"strings"
	"testing"

	flags "github.com/jessevdk/go-flags"

	"stevenson/internal/app"
	"stevenson/internal/config"
)

func parseArgs(t *testing.T, args ...string) (*flags.Parser, Options) {
	t.Helper()
	opts := Options{}
	parser := flags.NewParser(&opts, flags.None)
	if _, err := parser.ParseArgs(args); err != nil {
		t.Fatalf("ParseArgs(%q) error = %v, want nil", args, err)
	}
	return parser, opts
}

func TestReadObservation_Flags(t *testing.T) {
	parser, opts := parseArgs(t, "-t", "30", "--dew-point=20", "-w", "15", "-r", "1", "-s", "roof")

	obs, err := readObservation(parser, opts, strings.NewReader(""))
	if err != nil {
		t.Fatalf("readObservation() error = %v, want nil", err)
	}
	r, err := obs.Reading()
	if err != nil {
		t.Fatalf("Reading() error = %v, want nil", err)
	}
	if got, want := r.String(), "Reading: T = 30, D = 20, v = 15, rain = 1"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if obs.StationID != "roof" {
		t.Errorf("StationID = %q; want roof", obs.StationID)
	}
}

func TestReadObservation_DefaultsWindAndRain(t *testing.T) {
	parser, opts := parseArgs(t, "-t", "10", "-d", "5")

	obs, err := readObservation(parser, opts, strings.NewReader(""))
	if err != nil {
		t.Fatalf("readObservation() error = %v, want nil", err)
	}
	if *obs.WindSpeed != 0 || *obs.TotalRain != 0 {
		t.Errorf("WindSpeed = %g, TotalRain = %g; want 0, 0", *obs.WindSpeed, *obs.TotalRain)
	}
}

func TestReadObservation_MissingFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no flags", args: nil},
		{name: "temperature only", args: []string{"-t", "30"}},
		{name: "dew point only", args: []string{"-d", "20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, opts := parseArgs(t, tt.args...)
			_, err := readObservation(parser, opts, strings.NewReader(""))
			if !errors.Is(err, app.ErrMissingField) {
				t.Errorf("readObservation() error = %v; want ErrMissingField", err)
			}
		})
	}
}

func TestReadObservation_Stdin(t *testing.T) {
	parser, opts := parseArgs(t, "--stdin", "-s", "override")
	in := strings.NewReader(`{"station_id":"roof","temperature_c":20,"dew_point_c":10,"wind_speed_mph":15,"rain_24h_mm":25}`)

	obs, err := readObservation(parser, opts, in)
	if err != nil {
		t.Fatalf("readObservation() error = %v, want nil", err)
	}
	if obs.StationID != "override" {
		t.Errorf("StationID = %q; want override", obs.StationID)
	}
	if *obs.Temperature != 20 {
		t.Errorf("Temperature = %g; want 20", *obs.Temperature)
	}
}

func TestLoadConfig_FormatFlagOverridesEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OUTPUT_FORMAT", "text")

	_, opts := parseArgs(t, "-f", "json")
	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig() error = %v, want nil", err)
	}
	if cfg.OutputFormat != config.FormatJSON {
		t.Errorf("OutputFormat = %q; want %q", cfg.OutputFormat, config.FormatJSON)
	}
}

func TestParse_RejectsUnknownFormat(t *testing.T) {
	opts := Options{}
	parser := flags.NewParser(&opts, flags.None)
	if _, err := parser.ParseArgs([]string{"-f", "yaml"}); err == nil {
		t.Fatal("ParseArgs() error = nil, want non-nil")
	}
}
