package weather

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// StevensonReading is a reading taken from a Stevenson screen: air
// temperature and dew point in °C, wind speed in mph and the rain received
// over the last 24 hours in mm.
//
// The zero value is a reading of 0 °C with no wind and no rain.
type StevensonReading struct {
	airTemp   float64
	dewPoint  float64
	windSpeed float64
	totalRain float64
}

var _ Reading = StevensonReading{}

// NewStevensonReading validates the raw inputs and returns the reading
// holding them verbatim. Checks run in a fixed order and the first failure
// is returned, wrapping ErrInvalidConstruction.
func NewStevensonReading(airTemp, dewPoint, windSpeed, totalRain float64) (StevensonReading, error) {
	switch {
	case windSpeed < 0:
		return StevensonReading{}, fmt.Errorf("%w: wind speed must be non-negative, got %g", ErrInvalidConstruction, windSpeed)
	case totalRain < 0:
		return StevensonReading{}, fmt.Errorf("%w: total rain must be non-negative, got %g", ErrInvalidConstruction, totalRain)
	case dewPoint > airTemp:
		return StevensonReading{}, fmt.Errorf("%w: dew point cannot exceed air temperature (%g > %g)", ErrInvalidConstruction, dewPoint, airTemp)
	}

	for _, v := range [...]float64{airTemp, dewPoint, windSpeed, totalRain} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return StevensonReading{}, fmt.Errorf("%w: inputs must be finite, got %g", ErrInvalidConstruction, v)
		}
	}

	return StevensonReading{
		airTemp:   airTemp,
		dewPoint:  dewPoint,
		windSpeed: windSpeed,
		totalRain: totalRain,
	}, nil
}

func (r StevensonReading) Temperature() int { return roundHalfUp(r.airTemp) }
func (r StevensonReading) DewPoint() int    { return roundHalfUp(r.dewPoint) }
func (r StevensonReading) WindSpeed() int   { return roundHalfUp(r.windSpeed) }
func (r StevensonReading) TotalRain() int   { return roundHalfUp(r.totalRain) }

// vaporPressure is the Magnus exponent 7.5T/(237.3+T) scaled by 61.1 hPa.
// Humidity only uses the ratio of two of them.
func vaporPressure(t float64) float64 {
	return 6.11 * 10.0 * ((7.5 * t) / (237.3 + t))
}

// RelativeHumidity returns the ratio of actual to saturated vapor pressure
// as a percentage. Temperatures at or below 0 °C push the ratio outside
// [0, 100] or make it undefined; both are reported as ErrInvalidDerivedMetric.
func (r StevensonReading) RelativeHumidity() (int, error) {
	ratio := 100 * vaporPressure(r.dewPoint) / vaporPressure(r.airTemp)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("%w: relative humidity undefined for T = %g, D = %g", ErrInvalidDerivedMetric, r.airTemp, r.dewPoint)
	}

	rh := roundHalfUp(ratio)
	if rh < 0 || rh > 100 {
		return 0, fmt.Errorf("%w: relative humidity %d%% outside [0, 100]", ErrInvalidDerivedMetric, rh)
	}
	return rh, nil
}

// HeatIndex evaluates the Rothfusz regression in °C against the rounded
// relative humidity. The result is truncated, not rounded.
func (r StevensonReading) HeatIndex() (int, error) {
	rh, err := r.RelativeHumidity()
	if err != nil {
		return 0, err
	}

	t := r.airTemp
	h := float64(rh)
	hi := -8.78469475556 +
		1.61139411*t +
		2.33854883889*h +
		-0.14611605*t*h +
		-0.012308094*t*t +
		-0.0164248277778*h*h +
		0.002211732*t*t*h +
		0.00072546*t*h*h +
		-0.000003582*t*t*h*h

	return int(hi), nil
}

// WindChill applies the NWS wind chill regression, which is defined in °F
// and mph, and converts the result back to °C.
func (r StevensonReading) WindChill() int {
	tf := celsiusToFahrenheit(r.airTemp)
	v := math.Pow(r.windSpeed, 0.16)

	wc := 35.74 + 0.6215*tf - 35.75*v + 0.4275*tf*v
	return roundHalfUp(fahrenheitToCelsius(wc))
}

func (r StevensonReading) Equal(other Reading) bool {
	switch o := other.(type) {
	case StevensonReading:
		return r == o
	case *StevensonReading:
		return o != nil && r == *o
	default:
		return false
	}
}

func (r StevensonReading) Fingerprint() uint64 {
	var buf [32]byte
	for i, v := range [...]float64{r.airTemp, r.dewPoint, r.windSpeed, r.totalRain} {
		if v == 0 {
			// -0 == +0
			v = 0
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return xxhash.Sum64(buf[:])
}

func (r StevensonReading) String() string {
	return fmt.Sprintf("Reading: T = %d, D = %d, v = %d, rain = %d",
		r.Temperature(), r.DewPoint(), r.WindSpeed(), r.TotalRain())
}
