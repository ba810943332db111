// Package sunset computes the daylight window at the break.
package sunset

import (
	"time"

	"github.com/kholland/surfcast/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Long float64
	Location  *time.Location
}

var (
	SantaCruz = Place{
		36.9741, -122.0308,
		locationOrPanic("America/Los_Angeles"),
	}
)

// Window brackets the surfable daylight for one calendar day.
type Window struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// Contains reports whether t falls in daylight.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Sunrise) && !t.After(w.Sunset)
}

// DaylightWindow returns the sunrise and sunset bracketing the calendar day
// of t at the given place.
func DaylightWindow(t time.Time, place Place) Window {
	var s sunrise.Sunrise
	s.Around(place.Lat, place.Long, t)

	// Make sure we land on the correct day; the sunrise package is not very
	// clean with its dates.
	for !timetricks.SameDay(t, s.Sunrise()) {
		s.AddDays(1)
	}
	return Window{Sunrise: s.Sunrise(), Sunset: s.Sunset()}
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
