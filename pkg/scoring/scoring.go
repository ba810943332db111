// Package scoring rates a set of surf conditions on a 0-100 point scale.
// Each condition contributes points independently; the sum maps to a coarse
// rating tier and a yes/no surfable verdict. Scoring is deterministic except
// for the cosmetic flavor label.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/kholland/surfcast/pkg/tides"
)

// SurfData is a fully resolved set of surf conditions. Callers must fill
// every field before scoring; missing upstream values are resolved through
// fallback chains elsewhere, never here.
type SurfData struct {
	WaveHeight     float64     `json:"wave_height_ft"`
	WavePeriod     float64     `json:"wave_period_s"`
	SwellDirection float64     `json:"swell_direction_deg"`
	WindDirection  float64     `json:"wind_direction_deg"`
	WindSpeed      float64     `json:"wind_speed_kt"`
	Tide           tides.State `json:"tide"`
	TideHeight     *float64    `json:"tide_height_ft,omitempty"`
}

type Rating string

const (
	Poor      Rating = "Poor"
	Marginal  Rating = "Marginal"
	Good      Rating = "Good"
	Excellent Rating = "Excellent"
)

// Result is the verdict for one SurfData record.
type Result struct {
	Score    int    `json:"score"`
	Surfable bool   `json:"surfable"`
	Rating   Rating `json:"rating"`
	// Flavor is a cosmetic label drawn at random per rating tier. It never
	// influences Score, Surfable, or Rating.
	Flavor string `json:"flavor,omitempty"`
}

var errBadInput = errors.New("surf data out of domain")

// Engine scores surf data against one profile. The random draw for flavor
// labels is injected so tests can pin it.
type Engine struct {
	profile Profile
	intn    func(n int) int
}

// NewEngine returns an engine for the given profile. A nil intn falls back
// to math/rand.
func NewEngine(p Profile, intn func(n int) int) *Engine {
	if intn == nil {
		intn = rand.Intn
	}
	return &Engine{profile: p, intn: intn}
}

func (e *Engine) Profile() Profile { return e.profile }

// Score rates d. It returns an error if any magnitude is negative or any
// field is NaN; partially resolved records are a caller bug, not a zero
// score.
func (e *Engine) Score(d SurfData) (Result, error) {
	if err := validate(d); err != nil {
		return Result{}, err
	}

	swell := mod360(d.SwellDirection)
	wind := mod360(d.WindDirection)

	score := wavePoints(d.WaveHeight) +
		periodPoints(d.WavePeriod) +
		swellPoints(swell) +
		windPoints(d.WindSpeed, wind) +
		tidePoints(d.Tide)
	if d.TideHeight != nil && *d.TideHeight >= 0.5 && *d.TideHeight <= 2.5 {
		score += 5
	}

	rating := e.profile.Rate(score)
	return Result{
		Score:    score,
		Surfable: score >= e.profile.Surfable,
		Rating:   rating,
		Flavor:   e.flavor(rating),
	}, nil
}

func validate(d SurfData) error {
	fields := map[string]float64{
		"wave height":     d.WaveHeight,
		"wave period":     d.WavePeriod,
		"swell direction": d.SwellDirection,
		"wind direction":  d.WindDirection,
		"wind speed":      d.WindSpeed,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %f", errBadInput, name, v)
		}
	}
	if d.WaveHeight < 0 || d.WavePeriod < 0 || d.WindSpeed < 0 {
		return fmt.Errorf("%w: negative magnitude", errBadInput)
	}
	if d.TideHeight != nil && math.IsNaN(*d.TideHeight) {
		return fmt.Errorf("%w: tide height is NaN", errBadInput)
	}
	return nil
}

func mod360(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

func wavePoints(heightFt float64) int {
	switch {
	case heightFt >= 2 && heightFt <= 8:
		return 25
	case heightFt >= 1.5 && heightFt < 2:
		return 15
	default:
		return 0
	}
}

func periodPoints(s float64) int {
	switch {
	case s >= 10:
		return 25
	case s >= 7:
		return 20
	case s >= 5:
		return 10
	default:
		return 0
	}
}

func swellPoints(deg float64) int {
	switch {
	case deg >= 45 && deg <= 135:
		return 20
	case (deg >= 30 && deg < 45) || (deg > 135 && deg <= 150):
		return 10
	default:
		return 0
	}
}

// windPoints rewards calm or offshore wind. The offshore band is 225-315
// degrees, wind blowing from land out over the break.
func windPoints(speedKt, dirDeg float64) int {
	switch {
	case speedKt < 5:
		return 15
	case dirDeg >= 225 && dirDeg <= 315:
		if speedKt <= 15 {
			return 20
		}
		return 10
	case speedKt < 10:
		return 10
	default:
		return 0
	}
}

func tidePoints(s tides.State) int {
	switch s {
	case tides.Mid, tides.Rising, tides.Falling:
		return 10
	default:
		return 0
	}
}
