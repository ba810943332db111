package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kholland/surfcast/pkg/cache"
	"github.com/kholland/surfcast/pkg/forecast"
	"github.com/kholland/surfcast/pkg/ndbc"
	"github.com/kholland/surfcast/pkg/openmeteo"
	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/sunset"
	"github.com/kholland/surfcast/pkg/tides"
)

func pinFirst(n int) int { return 0 }

type fakeBuoy struct {
	reading ndbc.Reading
	err     error
	calls   int
}

func (f *fakeBuoy) Latest(ctx context.Context) (ndbc.Reading, error) {
	f.calls++
	return f.reading, f.err
}

type fakeForecast struct {
	marine     *openmeteo.MarineForecast
	marineErr  error
	weather    *openmeteo.WeatherForecast
	weatherErr error
}

func (f *fakeForecast) Marine(ctx context.Context) (*openmeteo.MarineForecast, error) {
	return f.marine, f.marineErr
}

func (f *fakeForecast) Weather(ctx context.Context) (*openmeteo.WeatherForecast, error) {
	return f.weather, f.weatherErr
}

type fakeTides struct {
	snap tides.Snapshot
	err  error
}

func (f *fakeTides) Snapshot(ctx context.Context, now time.Time) (tides.Snapshot, error) {
	return f.snap, f.err
}

func testNow() time.Time {
	return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
}

func goodWeather(now time.Time) *openmeteo.WeatherForecast {
	var w openmeteo.WeatherForecast
	w.Current.Temperature = 61
	w.Current.WindSpeed = 3
	w.Current.WindDirection = 290
	for i := 0; i < 6; i++ {
		w.Hourly.Time = append(w.Hourly.Time, now.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04"))
		w.Hourly.WindSpeed = append(w.Hourly.WindSpeed, 3)
		w.Hourly.WindDirection = append(w.Hourly.WindDirection, 290)
	}
	return &w
}

func goodMarine(now time.Time) *openmeteo.MarineForecast {
	var m openmeteo.MarineForecast
	for i := 0; i < 6; i++ {
		m.Hourly.Time = append(m.Hourly.Time, now.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04"))
		m.Hourly.WaveHeight = append(m.Hourly.WaveHeight, 1.0)
		m.Hourly.WavePeriod = append(m.Hourly.WavePeriod, 12)
		m.Hourly.SwellWaveDirection = append(m.Hourly.SwellWaveDirection, 250)
	}
	return &m
}

func testBuilder(buoy BuoySource, fc ForecastSource, td TideSource) *Builder {
	eng := scoring.NewEngine(scoring.Canonical, pinFirst)
	return &Builder{
		Buoy:       buoy,
		Forecast:   fc,
		Tides:      td,
		Engine:     eng,
		Summarizer: forecast.NewSummarizer(eng, pinFirst),
		Place:      sunset.SantaCruz,
		Now:        testNow,
	}
}

func TestBuildPrefersBuoy(t *testing.T) {
	now := testNow()
	b := testBuilder(
		&fakeBuoy{reading: ndbc.Reading{WaveHeight: 4.9, WavePeriod: 13, Direction: 265}},
		&fakeForecast{marine: goodMarine(now), weather: goodWeather(now)},
		&fakeTides{snap: tides.Snapshot{Height: 2.0, State: tides.Rising}},
	)

	got, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if got.Conditions.WaveHeight != 4.9 {
		t.Errorf("got wave height %f, wanted the buoy's 4.9", got.Conditions.WaveHeight)
	}
	want := map[string]string{
		"wave_height":     "buoy",
		"wave_period":     "buoy",
		"swell_direction": "buoy",
		"wind":            "weather",
		"tide":            "tide_station",
	}
	if diff := cmp.Diff(want, got.Sources); diff != "" {
		t.Errorf("wrong attribution (-want,+got):\n%s", diff)
	}
}

func TestBuildFallsBackToMarine(t *testing.T) {
	now := testNow()
	b := testBuilder(
		&fakeBuoy{err: ndbc.ErrNoData},
		&fakeForecast{marine: goodMarine(now), weather: goodWeather(now)},
		&fakeTides{snap: tides.Snapshot{Height: 2.0, State: tides.Rising}},
	)

	got, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("buoy failure should not fail the build: %+v", err)
	}
	if got.Sources["wave_height"] != "marine" {
		t.Errorf("got source %q, wanted marine", got.Sources["wave_height"])
	}
	// 1.0 m converted.
	if got.Conditions.WaveHeight < 3.2 || got.Conditions.WaveHeight > 3.3 {
		t.Errorf("got wave height %f, wanted about 3.28", got.Conditions.WaveHeight)
	}
}

func TestBuildFallsBackToDefaults(t *testing.T) {
	now := testNow()
	b := testBuilder(
		&fakeBuoy{err: ndbc.ErrNoData},
		&fakeForecast{marineErr: errors.New("down"), weather: goodWeather(now)},
		&fakeTides{snap: tides.DefaultSnapshot, err: errors.New("station offline")},
	)

	got, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("only weather failures are fatal: %+v", err)
	}
	if got.Sources["wave_height"] != "default" {
		t.Errorf("got source %q, wanted default", got.Sources["wave_height"])
	}
	if got.Conditions.WaveHeight != defaultHeightFt {
		t.Errorf("got wave height %f, wanted the default", got.Conditions.WaveHeight)
	}
	if got.Tide != tides.DefaultSnapshot {
		t.Errorf("got tide %+v, wanted the default snapshot", got.Tide)
	}
}

func TestBuildWeatherFailureIsFatal(t *testing.T) {
	now := testNow()
	b := testBuilder(
		&fakeBuoy{reading: ndbc.Reading{WaveHeight: 4.9, WavePeriod: 13, Direction: 265}},
		&fakeForecast{marine: goodMarine(now), weatherErr: errors.New("down")},
		&fakeTides{snap: tides.DefaultSnapshot},
	)

	_, err := b.Build(context.Background())
	if !errors.Is(err, ErrWeatherUnavailable) {
		t.Errorf("got %v, wanted ErrWeatherUnavailable", err)
	}
}

func TestBuildUsesCache(t *testing.T) {
	now := testNow()
	buoy := &fakeBuoy{reading: ndbc.Reading{WaveHeight: 4.9, WavePeriod: 13, Direction: 265}}
	b := testBuilder(
		buoy,
		&fakeForecast{marine: goodMarine(now), weather: goodWeather(now)},
		&fakeTides{snap: tides.Snapshot{Height: 2.0, State: tides.Rising}},
	)
	b.Cache = cache.NewTimed(5*time.Minute, 16)

	for i := 0; i < 3; i++ {
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
	}
	if buoy.calls != 1 {
		t.Errorf("buoy fetched %d times, wanted 1 (cached)", buoy.calls)
	}
}

func TestResolvePrecedence(t *testing.T) {
	got, src := resolve(9,
		candidate{"buoy", 1, false},
		candidate{"marine", 2, true},
		candidate{"other", 3, true},
	)
	if got != 2 || src != "marine" {
		t.Errorf("got %f from %q, wanted 2 from marine", got, src)
	}

	got, src = resolve(9)
	if got != 9 || src != "default" {
		t.Errorf("got %f from %q, wanted the default", got, src)
	}
}
