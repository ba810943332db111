package forecast

import (
	"fmt"
	"math/rand"

	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/tides"
)

// NoForecastMessage is returned when there is nothing to summarize.
const NoForecastMessage = "no forecast data available"

// FlatMessages is the pool drawn from when not a single hour is surfable.
var FlatMessages = []string{
	"flat spell, go for a swim instead",
	"nothing worth paddling for today",
	"the ocean is taking the day off",
	"better luck tomorrow, it's a lake out there",
}

// Summarizer reduces an hourly forecast to a one-line window description.
// The random draw for flat messages is injected so tests can pin it.
type Summarizer struct {
	engine *scoring.Engine
	intn   func(n int) int
}

// NewSummarizer returns a summarizer scoring with the given engine. A nil
// intn falls back to math/rand.
func NewSummarizer(engine *scoring.Engine, intn func(n int) int) *Summarizer {
	if intn == nil {
		intn = rand.Intn
	}
	return &Summarizer{engine: engine, intn: intn}
}

// Describe scores each point under a uniform tide state, tracks the longest
// good and marginal streaks in one pass, and maps them to a message.
func (s *Summarizer) Describe(points []Point, tide tides.State) string {
	if len(points) == 0 {
		return NoForecastMessage
	}

	profile := s.engine.Profile()
	var goodRun, marginalRun, bestGood, bestMarginal int
	anySurfable := false

	closeGood := func() {
		if goodRun > bestGood {
			bestGood = goodRun
		}
		goodRun = 0
	}
	closeMarginal := func() {
		if marginalRun > bestMarginal {
			bestMarginal = marginalRun
		}
		marginalRun = 0
	}

	for _, p := range points {
		res, err := s.engine.Score(scoring.SurfData{
			WaveHeight:     p.WaveHeight,
			WavePeriod:     p.WavePeriod,
			SwellDirection: p.SwellDirection,
			WindSpeed:      p.WindSpeed,
			WindDirection:  p.WindDirection,
			Tide:           tide,
		})
		score := 0
		if err == nil {
			score = res.Score
		}

		switch {
		case score >= profile.Good:
			goodRun++
			closeMarginal()
			anySurfable = true
		case score >= profile.Surfable:
			marginalRun++
			closeGood()
			anySurfable = true
		default:
			closeGood()
			closeMarginal()
		}
	}
	closeGood()
	closeMarginal()

	return s.message(bestGood, bestMarginal, anySurfable)
}

// message maps the streak lengths to wording by a fixed priority ladder.
func (s *Summarizer) message(bestGood, bestMarginal int, anySurfable bool) string {
	switch {
	case bestGood >= 8:
		return "good surf most of the day"
	case bestGood >= 6:
		return fmt.Sprintf("%d solid hours of good surf", bestGood)
	case bestGood >= 3:
		return fmt.Sprintf("about %d hours of good surf", bestGood)
	case bestGood >= 1:
		return fmt.Sprintf("brief window of good surf (~%dhr)", bestGood)
	case bestMarginal >= 8:
		return "marginal but rideable most of the day"
	case bestMarginal >= 4:
		return fmt.Sprintf("%d marginal hours, could be worth it", bestMarginal)
	case bestMarginal >= 2:
		return fmt.Sprintf("a couple of marginal hours (~%dhr)", bestMarginal)
	case anySurfable:
		return "brief surfable windows expected"
	default:
		return FlatMessages[s.intn(len(FlatMessages))]
	}
}
