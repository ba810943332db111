package tides

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// predsAround builds a low-high-low-high sequence bracketing now, with the
// next low 2 hours out and the next high 8 hours out.
func predsAround(now time.Time, lo, hi float64) Predictions {
	return Predictions{
		{Time: Time(now.Add(-10 * time.Hour)), Height: Height(hi), Type: HighTide},
		{Time: Time(now.Add(-4 * time.Hour)), Height: Height(lo), Type: LowTide},
		{Time: Time(now.Add(2 * time.Hour)), Height: Height(hi), Type: HighTide},
		{Time: Time(now.Add(8 * time.Hour)), Height: Height(lo), Type: LowTide},
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)

	table := []struct {
		name   string
		height float64
		preds  Predictions
		want   State
	}{{
		name:   "midrange rising is mid",
		height: 2.5,
		preds:  predsAround(now, 0, 5),
		want:   Mid,
	}, {
		name:   "near next high while rising",
		height: 4.8,
		preds:  predsAround(now, 0, 5),
		want:   HighRising,
	}, {
		name:   "low water rising",
		height: 0.2,
		preds:  predsAround(now, 0, 5),
		want:   Rising,
	}, {
		name:   "no future events",
		height: 2.0,
		preds: Predictions{
			{Time: Time(now.Add(-2 * time.Hour)), Height: 4, Type: HighTide},
		},
		want: Unknown,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(now, tc.height, tc.preds)
			if got.State != tc.want {
				t.Errorf("got state %q, wanted %q", got.State, tc.want)
			}
			if got.Height != tc.height {
				t.Errorf("got height %f, wanted %f", got.Height, tc.height)
			}
		})
	}
}

func TestClassifyFalling(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	// Next low in 2h, next high in 8h: falling bias.
	preds := Predictions{
		{Time: Time(now.Add(-4 * time.Hour)), Height: 5, Type: HighTide},
		{Time: Time(now.Add(2 * time.Hour)), Height: 0, Type: LowTide},
		{Time: Time(now.Add(8 * time.Hour)), Height: 5, Type: HighTide},
	}

	if got := classify(now, 4.2, preds); got.State != Falling {
		t.Errorf("got state %q, wanted %q", got.State, Falling)
	}
	if got := classify(now, 0.3, preds); got.State != LowFalling {
		t.Errorf("got state %q, wanted %q", got.State, LowFalling)
	}
}

func TestClassifyLocatesAdjacentEvents(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	got := classify(now, 2.5, predsAround(now, 0, 5))

	if got.NextHigh == nil || !got.NextHigh.Time.Equal(now.Add(2*time.Hour)) {
		t.Errorf("wrong next high: %+v", got.NextHigh)
	}
	if got.NextLow == nil || !got.NextLow.Time.Equal(now.Add(8*time.Hour)) {
		t.Errorf("wrong next low: %+v", got.NextLow)
	}
	if got.PrevLow == nil || !got.PrevLow.Time.Equal(now.Add(-4*time.Hour)) {
		t.Errorf("wrong previous low: %+v", got.PrevLow)
	}
	if got.PrevHigh == nil || !got.PrevHigh.Time.Equal(now.Add(-10*time.Hour)) {
		t.Errorf("wrong previous high: %+v", got.PrevHigh)
	}
}

func TestHeuristicStateCoverage(t *testing.T) {
	valid := map[State]bool{Low: true, Rising: true, Mid: true, Falling: true, High: true}
	for hour := 0; hour < 24; hour++ {
		at := time.Date(2024, time.March, 5, hour, 0, 0, 0, time.Local)
		got := HeuristicState(at)
		if !valid[got] {
			t.Errorf("hour %d: got state %q outside the heuristic's range", hour, got)
		}
	}
}

func TestSnapshotDegradesToDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(SantaCruz)
	c.BaseURL = srv.URL

	got, err := c.Snapshot(context.Background(), time.Now())
	if err == nil {
		t.Errorf("expected a degradation error from an unreachable station")
	}
	if got != DefaultSnapshot {
		t.Errorf("got %+v, wanted the default snapshot", got)
	}
}

func TestSnapshotInterpolatesWithoutObservation(t *testing.T) {
	now := time.Now()
	preds := predsAround(now, 0, 5)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("product") {
		case "predictions":
			fmt.Fprint(w, predictionsJSON(preds))
		default:
			// No observation available.
			fmt.Fprint(w, `{"data":[]}`)
		}
	}))
	defer srv.Close()

	c := NewClient(SantaCruz)
	c.BaseURL = srv.URL

	got, err := c.Snapshot(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if got.State == Unknown {
		t.Errorf("got Unknown state from a fully predicted window")
	}
	if got.Height < 0 || got.Height > 5 {
		t.Errorf("interpolated height %f outside the predicted range", got.Height)
	}
}

func predictionsJSON(preds Predictions) string {
	out := `{"predictions":[`
	for i, p := range preds {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"t":%q,"v":"%.3f","type":%q}`,
			p.Time.T().Format(predTimeFormat), float64(p.Height), p.Type.String())
	}
	return out + `]}`
}
