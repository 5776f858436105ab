package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"stevenson/pkg/weather"
)

// Observation is a raw station observation as supplied on the command line
// or as a JSON document on stdin.
type Observation struct {
	StationID   string     `json:"station_id,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Temperature *float64   `json:"temperature_c"`
	DewPoint    *float64   `json:"dew_point_c"`
	WindSpeed   *float64   `json:"wind_speed_mph,omitempty"`
	TotalRain   *float64   `json:"rain_24h_mm,omitempty"`
}

var ErrMissingField = errors.New("missing required field")

// DecodeObservation reads a single JSON observation from r.
func DecodeObservation(r io.Reader) (Observation, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var obs Observation
	if err := dec.Decode(&obs); err != nil {
		return Observation{}, fmt.Errorf("decode observation: %w", err)
	}
	if dec.More() {
		return Observation{}, errors.New("decode observation: trailing data after first document")
	}
	return obs, nil
}

// Reading validates the observation and builds the corresponding reading.
// Wind speed and rain default to zero when absent.
func (o Observation) Reading() (weather.StevensonReading, error) {
	if o.Temperature == nil {
		return weather.StevensonReading{}, fmt.Errorf("%w: temperature_c", ErrMissingField)
	}
	if o.DewPoint == nil {
		return weather.StevensonReading{}, fmt.Errorf("%w: dew_point_c", ErrMissingField)
	}

	return weather.NewStevensonReading(*o.Temperature, *o.DewPoint, valueOrZero(o.WindSpeed), valueOrZero(o.TotalRain))
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
