// Package tides estimates the tide at the break. Two estimators are
// provided: a pure hour-of-day heuristic that always succeeds, and a client
// that queries a NOAA tide station for the latest water level and the
// surrounding high/low predictions, classifying the result into a tide state.
// The station client degrades to a fixed default snapshot on any failure; it
// never fails a request. All times are local.
package tides
