// Package ndbc reads the NDBC real-time spectral wave feed (.spec format)
// for a single buoy. The feed is plain text: a commented header row naming
// the columns, a units row, then whitespace-separated observations with the
// most recent first. Anything the parser cannot make sense of is reported as
// ErrNoData so the caller can fall back to another source; it never guesses.
package ndbc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kholland/surfcast/pkg/units"
)

// ErrNoData means the feed held no usable observation. It covers missing
// headers, short rows, non-numeric fields, and out-of-range readings alike.
var ErrNoData = errors.New("no usable buoy data")

// Plausibility bounds. Readings outside these are sensor noise or sentinel
// values (NDBC encodes missing data as MM or 99-series numbers).
const (
	minPeriodS    = 2.0
	maxPeriodS    = 30.0
	maxHeightM    = 20.0
	minFieldCount = 8
)

// Column positions in the .spec format. The feed has drifted between 13 and
// 15 columns over upstream revisions, so direction and the average-period
// fallback are also resolvable from the end of the row.
const (
	colWaveHeight  = 5  // WVHT, meters
	colSwellPeriod = 7  // SwP, seconds
	endOffsetAPD   = 2  // APD is second from last
	endOffsetMWD   = 1  // MWD is last
)

// Reading is one parsed buoy observation, already converted for scoring.
type Reading struct {
	// WaveHeight in feet.
	WaveHeight float64 `json:"wave_height_ft"`
	// WavePeriod in seconds, from the swell period when plausible, the
	// average period otherwise.
	WavePeriod float64 `json:"wave_period_s"`
	// Direction is the mean wave direction in degrees.
	Direction float64 `json:"direction_deg"`
}

// Parse extracts the most recent observation from the raw feed text.
func Parse(text string) (Reading, error) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	cols, ok := headerColumns(lines)
	if !ok {
		return Reading{}, fmt.Errorf("%w: header row not found", ErrNoData)
	}

	row, ok := firstDataRow(lines)
	if !ok {
		return Reading{}, fmt.Errorf("%w: no observation rows", ErrNoData)
	}

	fields := strings.Fields(row)
	if len(fields) < minFieldCount {
		return Reading{}, fmt.Errorf("%w: observation has %d fields, need %d",
			ErrNoData, len(fields), minFieldCount)
	}

	heightM, err := fieldAt(fields, cols, "WVHT", colWaveHeight)
	if err != nil {
		return Reading{}, err
	}
	if heightM < 0 || heightM > maxHeightM {
		return Reading{}, fmt.Errorf("%w: wave height %.1f m out of range", ErrNoData, heightM)
	}

	period, err := fieldAt(fields, cols, "SwP", colSwellPeriod)
	if err != nil || period < minPeriodS || period > maxPeriodS {
		// Swell period missing or implausible; the average period still
		// describes the dominant energy well enough.
		period, err = fieldAt(fields, cols, "APD", len(fields)-endOffsetAPD)
		if err != nil {
			return Reading{}, err
		}
	}
	if period < minPeriodS || period > maxPeriodS {
		return Reading{}, fmt.Errorf("%w: wave period %.1f s out of range", ErrNoData, period)
	}

	direction, err := fieldAt(fields, cols, "MWD", len(fields)-endOffsetMWD)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		WaveHeight: units.MetersToFeet(heightM),
		WavePeriod: period,
		Direction:  mod360(direction),
	}, nil
}

// headerColumns locates the commented header row and maps column names to
// positions. ok is false if no row names the wave height column.
func headerColumns(lines []string) (map[string]int, bool) {
	for _, l := range lines {
		if !strings.HasPrefix(l, "#") {
			continue
		}
		trimmed := strings.TrimSpace(strings.TrimPrefix(l, "#"))
		if !strings.Contains(trimmed, "WVHT") {
			continue
		}
		cols := make(map[string]int)
		for i, name := range strings.Fields(trimmed) {
			cols[name] = i
		}
		return cols, true
	}
	return nil, false
}

// firstDataRow returns the first non-comment line, which the feed orders as
// the most recent observation.
func firstDataRow(lines []string) (string, bool) {
	for _, l := range lines {
		if !strings.HasPrefix(l, "#") {
			return l, true
		}
	}
	return "", false
}

// fieldAt parses the named column, preferring the header's position and
// falling back to the fixed index when the header does not name it.
func fieldAt(fields []string, cols map[string]int, name string, fallback int) (float64, error) {
	i, ok := cols[name]
	if !ok {
		i = fallback
	}
	if i < 0 || i >= len(fields) {
		return 0, fmt.Errorf("%w: column %s absent", ErrNoData, name)
	}
	v, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s is %q", ErrNoData, name, fields[i])
	}
	return v, nil
}

func mod360(deg float64) float64 {
	m := deg
	for m < 0 {
		m += 360
	}
	for m >= 360 {
		m -= 360
	}
	return m
}
