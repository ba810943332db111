// Package forecast turns the marine and weather hourly series into per-hour
// surf verdicts and a one-line description of the day's surfable window.
package forecast

import (
	"time"

	"github.com/kholland/surfcast/pkg/openmeteo"
	"github.com/kholland/surfcast/pkg/units"
)

const (
	// WindowHours caps how far ahead the summarizer looks.
	WindowHours = 24

	hourlyTimeFormat = "2006-01-02T15:04"
)

// Placeholder swell used when the marine series has no value for an hour.
// A point with a gap is still worth scoring; the whole hour is not dropped.
const (
	placeholderHeightFt = 1.5
	placeholderPeriodS  = 6.0
	placeholderSwellDeg = 90.0
)

// Point is one forecast hour with every field the scorer needs.
type Point struct {
	Time           time.Time `json:"time"`
	WaveHeight     float64   `json:"wave_height_ft"`
	WavePeriod     float64   `json:"wave_period_s"`
	SwellDirection float64   `json:"swell_direction_deg"`
	WindSpeed      float64   `json:"wind_speed_kt"`
	WindDirection  float64   `json:"wind_direction_deg"`
}

// Zip pairs the marine and weather hourly arrays by index over the weather
// time axis, keeping up to WindowHours points at or after now. The marine
// series may be nil or shorter than the weather series; affected hours get
// the placeholder swell.
func Zip(marine *openmeteo.MarineForecast, weather *openmeteo.WeatherForecast, now time.Time) []Point {
	if weather == nil {
		return nil
	}

	var points []Point
	for i, stamp := range weather.Hourly.Time {
		t, err := time.ParseInLocation(hourlyTimeFormat, stamp, time.Local)
		if err != nil {
			continue
		}
		if t.Before(now) {
			continue
		}
		if len(points) >= WindowHours {
			break
		}

		p := Point{
			Time:           t,
			WaveHeight:     placeholderHeightFt,
			WavePeriod:     placeholderPeriodS,
			SwellDirection: placeholderSwellDeg,
		}
		if i < len(weather.Hourly.WindSpeed) {
			p.WindSpeed = weather.Hourly.WindSpeed[i]
		}
		if i < len(weather.Hourly.WindDirection) {
			p.WindDirection = weather.Hourly.WindDirection[i]
		}
		if marine != nil {
			if i < len(marine.Hourly.WaveHeight) {
				p.WaveHeight = units.MetersToFeet(marine.Hourly.WaveHeight[i])
			}
			if i < len(marine.Hourly.WavePeriod) {
				p.WavePeriod = marine.Hourly.WavePeriod[i]
			}
			if i < len(marine.Hourly.SwellWaveDirection) {
				p.SwellDirection = marine.Hourly.SwellWaveDirection[i]
			}
		}
		points = append(points, p)
	}
	return points
}
