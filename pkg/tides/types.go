package tides

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kholland/surfcast/pkg/tides/splines"
)

const predTimeFormat = "2006-01-02 15:04"

// State labels where the tide sits and which way it is moving.
type State string

const (
	Low        State = "Low"
	Rising     State = "Rising"
	Mid        State = "Mid"
	High       State = "High"
	Falling    State = "Falling"
	HighRising State = "High Rising"
	LowFalling State = "Low Falling"
	Unknown    State = "Unknown"
)

// Prediction holds a single tide event prediction.
type Prediction struct {
	// Local time of tide prediction
	Time Time `json:"t"`
	// Height in feet
	Height Height `json:"v"`
	// High or Low tide, "H" or "L" when encoded
	Type Tide `json:"type"`
}

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = &Time{}
var _ json.Unmarshaler = new(Height)
var _ json.Unmarshaler = new(Tide)

// Predictions is a time series of Prediction.
type Predictions []Prediction

// Points converts the series into spline input.
func (ps Predictions) Points() []splines.Point {
	points := make([]splines.Point, len(ps))
	for i, p := range ps {
		points[i] = splines.Point{Time: p.Time.T(), Height: float64(p.Height)}
	}
	return points
}

// predictionsResult is the envelope returned by the NOAA predictions product.
type predictionsResult struct {
	Predictions Predictions `json:"predictions"`
}

// observationResult is the envelope returned by the NOAA water_level product.
// Only the most recent datum is of interest.
type observationResult struct {
	Data []struct {
		Time  Time   `json:"t"`
		Value Height `json:"v"`
	} `json:"data"`
}

// Event is a resolved high or low tide adjacent to "now".
type Event struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height_ft"`
	Type   Tide      `json:"type"`
}

// Snapshot describes the tide at one moment: the water height, a state
// label, and the nearest high/low events on either side when known.
type Snapshot struct {
	Height   float64 `json:"height_ft"`
	State    State   `json:"state"`
	NextHigh *Event  `json:"next_high,omitempty"`
	NextLow  *Event  `json:"next_low,omitempty"`
	PrevHigh *Event  `json:"prev_high,omitempty"`
	PrevLow  *Event  `json:"prev_low,omitempty"`
}

// DefaultSnapshot is served when the tide station is unreachable.
var DefaultSnapshot = Snapshot{Height: 1.5, State: Mid}

type Station int

// SantaCruz is the NOAA station id for the Santa Cruz wharf.
const SantaCruz Station = 9413745

type Time time.Time

func (t *Time) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("tide time %q not string: %w", buf, err)
	}
	parsed, err := time.ParseInLocation(predTimeFormat, s, time.Local)
	if err != nil {
		return fmt.Errorf("tide time %q not in fmt %q: %w", s, predTimeFormat, err)
	}
	*t = Time(parsed)
	return nil
}

func (t Time) T() time.Time { return time.Time(t) }

type Height float64

func (h *Height) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("water height %q not string: %w", buf, err)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("water height %q not a float: %w", s, err)
	}
	*h = Height(parsed)
	return nil
}

type Tide uint

const (
	HighTide Tide = iota
	LowTide
)

func (t Tide) Valid() bool {
	return t == HighTide || t == LowTide
}

func (t *Tide) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("tide %q not a string: %w", buf, err)
	}
	switch s {
	case "H":
		*t = HighTide
	case "L":
		*t = LowTide
	default:
		return fmt.Errorf("invalid tide type %q", s)
	}
	return nil
}

func (t Tide) String() string {
	switch t {
	case HighTide:
		return "H"
	case LowTide:
		return "L"
	default:
		return "invalid"
	}
}

func (t Tide) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}",
		time.Time(p.Time).Format(time.RFC822),
		p.Height,
		p.Type.String())
}
