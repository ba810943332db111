// Package visualize renders a day of tide as an SVG curve with the daylight
// window shaded.
package visualize

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/kholland/surfcast/pkg/sunset"
	"github.com/kholland/surfcast/pkg/tides"
	"github.com/kholland/surfcast/pkg/tides/splines"
	"github.com/kholland/surfcast/pkg/timetricks"
)

const (
	width  = 1200
	height = 300

	// sampleStep is the spline sampling interval for the curve path.
	sampleStep = 15 * time.Minute
)

type Tidal struct {
	date      time.Time
	tidePreds tides.Predictions
	daylight  sunset.Window
}

// NewTidal prepares a renderer for the calendar day of date. The predictions
// should extend at least a little past both midnights so the curve reaches
// the edges.
func NewTidal(tidePreds tides.Predictions, daylight sunset.Window, date time.Time) *Tidal {
	return &Tidal{
		date:      timetricks.TrimClock(date),
		tidePreds: tidePreds,
		daylight:  daylight,
	}
}

func (img *Tidal) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))

	// Daylight band first so everything else draws over it.
	risex := img.timeToX(img.daylight.Sunrise)
	setx := img.timeToX(img.daylight.Sunset)
	io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="0" width="%d" height="%d"/>`,
		risex, setx-risex, height))

	// Reference lines at whole-foot tide marks.
	for _, ft := range []float64{0, 1, 2} {
		io(fmt.Fprintf(w, `<line class="mark" stroke="#e9c46a" x1="0" y1="%d" x2="%d" y2="%d"/>`,
			heightToY(ft), width, heightToY(ft)))
	}

	// Sample the smoothed curve across the day and emit one filled path.
	spline := splines.CurvesBetween(img.tidePreds.Points())
	io(fmt.Fprintf(w, `<path class="tide" fill="skyblue" d="M 0,%d `, height))
	for t := img.date; !t.After(img.date.Add(24 * time.Hour)); t = t.Add(sampleStep) {
		h := spline.Eval(t)
		if math.IsNaN(h) {
			// Outside the prediction window.
			continue
		}
		io(fmt.Fprintf(w, `L %d,%d `, img.timeToX(t), heightToY(h)))
	}
	io(fmt.Fprintf(w, `L %d,%d z"/>`, width, height))

	// Night shadows outside the daylight band.
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="0" y="0" width="%d" height="%d"/>`,
		risex, height))
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="0" width="%d" height="%d"/>`,
		setx, width-setx, height))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

// heightToY maps tide feet to pixels, scaling 10 feet of variance (from -2)
// onto the image height.
func heightToY(tideHeight float64) int {
	return height - int((tideHeight+2)*(height/10))
}

func (img *Tidal) timeToX(t time.Time) int {
	return int(t.Unix()-img.date.Unix()) * width / (60 * 60 * 24)
}
