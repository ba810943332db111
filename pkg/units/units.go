// Package units converts between the metric quantities the upstream feeds
// report and the imperial/nautical quantities the rest of the system scores
// in.
package units

const (
	feetPerMeter  = 3.28084
	knotsPerMps   = 1.943844
	kmhPerKnot    = 1.852
)

func MetersToFeet(m float64) float64 {
	return m * feetPerMeter
}

func MpsToKnots(mps float64) float64 {
	return mps * knotsPerMps
}

func KmhToKnots(kmh float64) float64 {
	return kmh / kmhPerKnot
}

func CToF(c float64) float64 {
	return c*9/5 + 32
}
