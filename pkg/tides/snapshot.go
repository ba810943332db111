package tides

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kholland/surfcast/pkg/tides/splines"
)

// midBandFraction is how close to the high/low midpoint the water must sit,
// as a fraction of the high-to-low range, to be called Mid. The same band
// width marks the High Rising and Low Falling refinements near the extremes.
const midBandFraction = 0.25

// Snapshot estimates the tide at now from station data. On any upstream
// failure the returned snapshot is DefaultSnapshot and the error describes
// what went wrong; the snapshot is always usable.
func (c *Client) Snapshot(ctx context.Context, now time.Time) (Snapshot, error) {
	preds, err := c.Predictions(ctx, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	if err != nil {
		return DefaultSnapshot, fmt.Errorf("tide snapshot degraded to default: %w", err)
	}

	height, err := c.LatestObservation(ctx)
	if err != nil {
		// No live reading; interpolate the predicted curve instead.
		height = interpolateHeight(preds, now)
		if math.IsNaN(height) {
			return DefaultSnapshot, fmt.Errorf("tide snapshot degraded to default: %w", err)
		}
	}

	return classify(now, height, preds), nil
}

// interpolateHeight evaluates a smooth curve through the high/low events at
// t. NaN when t falls outside the predicted window.
func interpolateHeight(preds Predictions, t time.Time) float64 {
	return splines.CurvesBetween(preds.Points()).Eval(t)
}

// classify locates the high/low events adjacent to now and labels the state.
// Whichever of next-high and next-low comes sooner sets the rising/falling
// bias; the height then refines it to Mid near the midpoint or to the
// High Rising / Low Falling shoulders near the extremes.
func classify(now time.Time, height float64, preds Predictions) Snapshot {
	snap := Snapshot{Height: height, State: Unknown}

	for _, p := range preds {
		ev := Event{Time: p.Time.T(), Height: float64(p.Height), Type: p.Type}
		if ev.Time.After(now) {
			if ev.Type == HighTide && snap.NextHigh == nil {
				snap.NextHigh = &ev
			}
			if ev.Type == LowTide && snap.NextLow == nil {
				snap.NextLow = &ev
			}
		} else {
			// Events are chronological, so keep overwriting to retain
			// the latest one before now.
			if ev.Type == HighTide {
				prev := ev
				snap.PrevHigh = &prev
			} else {
				prev := ev
				snap.PrevLow = &prev
			}
		}
	}

	if snap.NextHigh == nil || snap.NextLow == nil {
		return snap
	}

	rising := snap.NextHigh.Time.Before(snap.NextLow.Time)
	hi, lo := snap.NextHigh.Height, snap.NextLow.Height
	band := midBandFraction * (hi - lo)
	mid := (hi + lo) / 2

	switch {
	case math.Abs(height-mid) <= band:
		snap.State = Mid
	case rising && height >= hi-band:
		snap.State = HighRising
	case !rising && height <= lo+band:
		snap.State = LowFalling
	case rising:
		snap.State = Rising
	default:
		snap.State = Falling
	}
	return snap
}

// HeuristicState is the zero-dependency estimator: a fixed banding of the
// local hour over a nominal 12 hour tide cycle. It always yields a concrete
// state, never Unknown.
func HeuristicState(t time.Time) State {
	h := t.Hour() % 12
	switch {
	case h < 2 || h > 10:
		return Low
	case h >= 5 && h <= 7:
		return High
	case h < 5:
		return Rising
	default:
		return Falling
	}
}
