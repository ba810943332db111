package units

import (
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	table := []struct {
		name string
		got  float64
		want float64
	}{
		{"one meter in feet", MetersToFeet(1.0), 3.28084},
		{"zero meters", MetersToFeet(0), 0},
		{"one m/s in knots", MpsToKnots(1.0), 1.943844},
		{"ten km/h in knots", KmhToKnots(10), 5.399568},
		{"freezing point", CToF(0), 32},
		{"boiling point", CToF(100), 212},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if math.Abs(tc.got-tc.want) > 1e-3 {
				t.Errorf("got %f, wanted %f", tc.got, tc.want)
			}
		})
	}
}
