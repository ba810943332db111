package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/kholland/surfcast/pkg/openmeteo"
)

func stamps(start time.Time, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * time.Hour).Format(hourlyTimeFormat)
	}
	return out
}

func TestZip(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)

	var weather openmeteo.WeatherForecast
	weather.Hourly.Time = stamps(now.Add(-2*time.Hour), 6)
	weather.Hourly.WindSpeed = []float64{1, 2, 3, 4, 5, 6}
	weather.Hourly.WindDirection = []float64{10, 20, 30, 40, 50, 60}

	var marine openmeteo.MarineForecast
	marine.Hourly.WaveHeight = []float64{1, 1, 1, 1, 1, 1}
	marine.Hourly.WavePeriod = []float64{10, 10, 10, 10, 10, 10}
	marine.Hourly.SwellWaveDirection = []float64{270, 270, 270, 270, 270, 270}

	points := Zip(&marine, &weather, now)

	// The two stale hours are dropped.
	if len(points) != 4 {
		t.Fatalf("got %d points, wanted 4", len(points))
	}
	if points[0].WindSpeed != 3 {
		t.Errorf("got wind %f for the first point, wanted 3", points[0].WindSpeed)
	}
	if math.Abs(points[0].WaveHeight-3.28084) > 0.001 {
		t.Errorf("got wave height %f, wanted 1 m in feet", points[0].WaveHeight)
	}
}

func TestZipShortMarineSeries(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)

	var weather openmeteo.WeatherForecast
	weather.Hourly.Time = stamps(now, 3)
	weather.Hourly.WindSpeed = []float64{5, 5, 5}
	weather.Hourly.WindDirection = []float64{0, 0, 0}

	// Marine data covers only the first hour.
	var marine openmeteo.MarineForecast
	marine.Hourly.WaveHeight = []float64{2}
	marine.Hourly.WavePeriod = []float64{12}
	marine.Hourly.SwellWaveDirection = []float64{250}

	points := Zip(&marine, &weather, now)
	if len(points) != 3 {
		t.Fatalf("got %d points, wanted 3", len(points))
	}

	// Uncovered hours fall back to the placeholder swell.
	p := points[1]
	if p.WaveHeight != placeholderHeightFt || p.WavePeriod != placeholderPeriodS || p.SwellDirection != placeholderSwellDeg {
		t.Errorf("missing marine hour did not get placeholders: %+v", p)
	}
}

func TestZipCapsAtWindow(t *testing.T) {
	now := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)

	var weather openmeteo.WeatherForecast
	weather.Hourly.Time = stamps(now, 48)
	weather.Hourly.WindSpeed = make([]float64, 48)
	weather.Hourly.WindDirection = make([]float64, 48)

	points := Zip(nil, &weather, now)
	if len(points) != WindowHours {
		t.Errorf("got %d points, wanted %d", len(points), WindowHours)
	}
}

func TestZipNilWeather(t *testing.T) {
	if points := Zip(nil, nil, time.Now()); points != nil {
		t.Errorf("got %d points from nil weather, wanted none", len(points))
	}
}
