// Package report assembles one surf report from the four upstream feeds.
// Each feed fails independently; buoy, marine, and tide failures degrade to
// the next candidate source or a fixed default, and only the weather feed is
// fatal. Field precedence is an explicit ordered candidate list so it can be
// audited and tested on its own.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kholland/surfcast/pkg/cache"
	"github.com/kholland/surfcast/pkg/forecast"
	"github.com/kholland/surfcast/pkg/metrics"
	"github.com/kholland/surfcast/pkg/ndbc"
	"github.com/kholland/surfcast/pkg/openmeteo"
	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/sunset"
	"github.com/kholland/surfcast/pkg/tides"
	"github.com/kholland/surfcast/pkg/units"
)

// Fixed defaults for fields no source could supply. Matches the forecast
// placeholder swell.
const (
	defaultHeightFt = 1.5
	defaultPeriodS  = 6.0
	defaultSwellDeg = 90.0

	fetchTimeout = 10 * time.Second
)

// ErrWeatherUnavailable is the one fatal upstream failure.
var ErrWeatherUnavailable = errors.New("weather source unavailable")

// BuoySource yields the latest buoy observation.
type BuoySource interface {
	Latest(ctx context.Context) (ndbc.Reading, error)
}

// ForecastSource yields the marine and weather forecasts.
type ForecastSource interface {
	Marine(ctx context.Context) (*openmeteo.MarineForecast, error)
	Weather(ctx context.Context) (*openmeteo.WeatherForecast, error)
}

// TideSource yields a tide snapshot, degrading internally to a default.
type TideSource interface {
	Snapshot(ctx context.Context, now time.Time) (tides.Snapshot, error)
}

// Builder owns the sources and the pure components and produces Reports.
type Builder struct {
	Buoy     BuoySource
	Forecast ForecastSource
	Tides    TideSource

	Engine     *scoring.Engine
	Summarizer *forecast.Summarizer
	Place      sunset.Place

	// Cache fronts the upstream fetches, keyed by source name. Optional.
	Cache *cache.Timed

	// Now is the wall clock, injectable for tests.
	Now func() time.Time
}

// Report is the assembled response.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Conditions  scoring.SurfData  `json:"conditions"`
	Sources     map[string]string `json:"sources"`
	Score       scoring.Result    `json:"score"`
	Tide        tides.Snapshot    `json:"tide"`
	Daylight    sunset.Window     `json:"daylight"`
	Window      string            `json:"window"`
	AirTempF    float64           `json:"air_temp_f"`
	WaterTempF  *float64          `json:"water_temp_f,omitempty"`
	WeatherCode int               `json:"weather_code"`
}

// String renders the report for the plain text endpoint.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d/100 (%s)", r.Score.Rating, r.Score.Score, r.Score.Flavor)
	if r.Score.Surfable {
		fmt.Fprintf(&b, " - go surf")
	}
	fmt.Fprintf(&b, "\nwaves %.1f ft @ %.0f s from %.0f deg",
		r.Conditions.WaveHeight, r.Conditions.WavePeriod, r.Conditions.SwellDirection)
	fmt.Fprintf(&b, "\nwind %.0f kt from %.0f deg", r.Conditions.WindSpeed, r.Conditions.WindDirection)
	fmt.Fprintf(&b, "\ntide %s at %.1f ft", r.Tide.State, r.Tide.Height)
	fmt.Fprintf(&b, "\noutlook: %s", r.Window)
	return b.String()
}

// Build fetches all sources concurrently and assembles the report.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	now := b.now()

	var (
		wg sync.WaitGroup

		buoy       ndbc.Reading
		buoyErr    error
		marine     *openmeteo.MarineForecast
		marineErr  error
		weather    *openmeteo.WeatherForecast
		weatherErr error
		tide       tides.Snapshot
		tideErr    error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		buoy, buoyErr = fetchCached(ctx, b.Cache, "buoy", func(ctx context.Context) (ndbc.Reading, error) {
			return b.Buoy.Latest(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		marine, marineErr = fetchCached(ctx, b.Cache, "marine", func(ctx context.Context) (*openmeteo.MarineForecast, error) {
			return b.Forecast.Marine(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		weather, weatherErr = fetchCached(ctx, b.Cache, "weather", func(ctx context.Context) (*openmeteo.WeatherForecast, error) {
			return b.Forecast.Weather(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		tide, tideErr = fetchCached(ctx, b.Cache, "tide", func(ctx context.Context) (tides.Snapshot, error) {
			return b.Tides.Snapshot(ctx, now)
		})
	}()
	wg.Wait()

	if weatherErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, weatherErr)
	}
	if buoyErr != nil {
		log.Printf("Buoy unavailable, falling back: %v", buoyErr)
	}
	if marineErr != nil {
		log.Printf("Marine forecast unavailable, falling back: %v", marineErr)
	}
	if tideErr != nil {
		// The tide source already degraded to its default snapshot.
		log.Printf("Tide station degraded: %v", tideErr)
		tide = tides.DefaultSnapshot
	}

	mNow, marineOK := marineNow(marine, now)
	data, sources := resolveConditions(buoy, buoyErr == nil, mNow, marineOK, weather, tide)

	result, err := b.Engine.Score(data)
	if err != nil {
		return nil, fmt.Errorf("score conditions: %w", err)
	}

	points := forecast.Zip(marine, weather, now)
	window := b.Summarizer.Describe(points, tide.State)

	rep := &Report{
		GeneratedAt: now,
		Conditions:  data,
		Sources:     sources,
		Score:       result,
		Tide:        tide,
		Daylight:    sunset.DaylightWindow(now, b.Place),
		Window:      window,
		AirTempF:    weather.Current.Temperature,
		WeatherCode: weather.Current.WeatherCode,
	}
	if marine != nil && marine.Current.SeaSurfaceTemp != nil {
		f := units.CToF(*marine.Current.SeaSurfaceTemp)
		rep.WaterTempF = &f
	}
	return rep, nil
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// candidate is one prioritized value for a SurfData field.
type candidate struct {
	source string
	value  float64
	ok     bool
}

// resolve walks the candidates in priority order and falls back to the fixed
// default, reporting which source won.
func resolve(fallback float64, cands ...candidate) (float64, string) {
	for _, c := range cands {
		if c.ok {
			return c.value, c.source
		}
	}
	return fallback, "default"
}

// marineHour is the marine forecast hour covering now.
type marineHour struct {
	heightFt float64
	periodS  float64
	swellDeg float64
}

// marineNow picks the first marine hour at or after now.
func marineNow(m *openmeteo.MarineForecast, now time.Time) (marineHour, bool) {
	if m == nil {
		return marineHour{}, false
	}
	for i, stamp := range m.Hourly.Time {
		t, err := time.ParseInLocation("2006-01-02T15:04", stamp, time.Local)
		if err != nil || t.Before(now.Add(-time.Hour)) {
			continue
		}
		if i >= len(m.Hourly.WaveHeight) || i >= len(m.Hourly.WavePeriod) || i >= len(m.Hourly.SwellWaveDirection) {
			return marineHour{}, false
		}
		return marineHour{
			heightFt: units.MetersToFeet(m.Hourly.WaveHeight[i]),
			periodS:  m.Hourly.WavePeriod[i],
			swellDeg: m.Hourly.SwellWaveDirection[i],
		}, true
	}
	return marineHour{}, false
}

// resolveConditions assembles the scored record: buoy first, marine second,
// fixed default last for the wave fields; wind always from the weather
// current block; tide from the snapshot.
func resolveConditions(buoy ndbc.Reading, buoyOK bool, m marineHour, marineOK bool, weather *openmeteo.WeatherForecast, tide tides.Snapshot) (scoring.SurfData, map[string]string) {
	sources := make(map[string]string)

	var data scoring.SurfData
	data.WaveHeight, sources["wave_height"] = resolve(defaultHeightFt,
		candidate{"buoy", buoy.WaveHeight, buoyOK},
		candidate{"marine", m.heightFt, marineOK},
	)
	data.WavePeriod, sources["wave_period"] = resolve(defaultPeriodS,
		candidate{"buoy", buoy.WavePeriod, buoyOK},
		candidate{"marine", m.periodS, marineOK},
	)
	data.SwellDirection, sources["swell_direction"] = resolve(defaultSwellDeg,
		candidate{"buoy", buoy.Direction, buoyOK},
		candidate{"marine", m.swellDeg, marineOK},
	)

	data.WindSpeed = weather.Current.WindSpeed
	data.WindDirection = weather.Current.WindDirection
	sources["wind"] = "weather"

	data.Tide = tide.State
	h := tide.Height
	data.TideHeight = &h
	sources["tide"] = "tide_station"

	return data, sources
}

// fetchCached is a read-through cache around one source fetch. Entries are
// serialized as JSON under the source name; a cache miss or decode failure
// falls through to the live fetch.
func fetchCached[T any](ctx context.Context, c *cache.Timed, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c != nil {
		if raw, ok := c.Get(key); ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				metrics.ObserveFetch(key, "cached")
				return v, nil
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	v, err := fetch(ctx)
	if err != nil {
		metrics.ObserveFetch(key, "error")
		return v, err
	}
	metrics.ObserveFetch(key, "ok")

	if c != nil {
		if raw, err := json.Marshal(v); err == nil {
			c.Set(key, raw)
		}
	}
	return v, nil
}
