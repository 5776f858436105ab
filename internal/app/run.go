package app

import (
	"fmt"
	"io"
	"log/slog"

	"stevenson/internal/config"
)

// Run evaluates obs and writes its report to w in the configured format.
//
// A reading that cannot be constructed is returned as an error and nothing is
// written. Derived metric failures still produce a report and are returned
// afterwards.
func Run(cfg config.Config, obs Observation, w io.Writer) error {
	slog.Debug("observation received",
		"stationId", obs.StationID,
		"outputFormat", cfg.OutputFormat,
	)

	reading, err := obs.Reading()
	if err != nil {
		return err
	}
	slog.Debug("reading constructed", "reading", reading.String())

	rep, metricErr := BuildReport(reading)
	rep.StationID = obs.StationID
	rep.Time = obs.Timestamp
	if metricErr != nil {
		slog.Warn("derived metric unavailable", "reading", rep.Reading, "error", metricErr)
	}

	switch cfg.OutputFormat {
	case config.FormatJSON:
		err = WriteJSON(w, rep)
	default:
		err = WriteText(w, rep)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return metricErr
}
