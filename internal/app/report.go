package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stevenson/pkg/weather"
)

type Report struct {
	StationID string     `json:"stationId,omitempty"`
	Time      *time.Time `json:"time,omitempty"`
	Reading   string     `json:"reading"`

	Temperature int `json:"temperature"`
	DewPoint    int `json:"dewPoint"`
	WindSpeed   int `json:"windSpeed"`
	TotalRain   int `json:"totalRain"`

	// Nil when the metric could not be derived; see Errors.
	RelativeHumidity *int `json:"relativeHumidity"`
	HeatIndex        *int `json:"heatIndex"`
	WindChill        int  `json:"windChill"`

	Fingerprint string   `json:"fingerprint"`
	Errors      []string `json:"errors,omitempty"`
}

// BuildReport evaluates every metric of r. Derived metric failures do not
// stop the report; they are recorded in Errors and returned joined.
func BuildReport(r weather.Reading) (Report, error) {
	rep := Report{
		Reading:     r.String(),
		Temperature: r.Temperature(),
		DewPoint:    r.DewPoint(),
		WindSpeed:   r.WindSpeed(),
		TotalRain:   r.TotalRain(),
		WindChill:   r.WindChill(),
		Fingerprint: fmt.Sprintf("%016x", r.Fingerprint()),
	}

	var errs []error
	if rh, err := r.RelativeHumidity(); err != nil {
		errs = append(errs, fmt.Errorf("relative humidity: %w", err))
	} else {
		rep.RelativeHumidity = &rh
	}
	if hi, err := r.HeatIndex(); err != nil {
		errs = append(errs, fmt.Errorf("heat index: %w", err))
	} else {
		rep.HeatIndex = &hi
	}

	for _, err := range errs {
		rep.Errors = append(rep.Errors, err.Error())
	}
	return rep, errors.Join(errs...)
}

func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func WriteText(w io.Writer, rep Report) error {
	var b strings.Builder
	if rep.StationID != "" {
		fmt.Fprintf(&b, "Station:           %s\n", rep.StationID)
	}
	if rep.Time != nil {
		fmt.Fprintf(&b, "Time:              %s\n", rep.Time.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "%s\n", rep.Reading)
	fmt.Fprintf(&b, "Relative humidity: %s\n", formatMetric(rep.RelativeHumidity, "%"))
	fmt.Fprintf(&b, "Heat index:        %s\n", formatMetric(rep.HeatIndex, " °C"))
	fmt.Fprintf(&b, "Wind chill:        %d °C\n", rep.WindChill)
	fmt.Fprintf(&b, "Fingerprint:       %s\n", rep.Fingerprint)
	for _, e := range rep.Errors {
		fmt.Fprintf(&b, "error: %s\n", e)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatMetric(v *int, unit string) string {
	if v == nil {
		return "n/a"
	}
	return strconv.Itoa(*v) + unit
}
