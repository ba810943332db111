package sunset

import (
	"fmt"
	"testing"
	"time"
)

func ExampleDaylightWindow() {
	day := time.Date(2020, time.October, 25, 12, 0, 0, 0, SantaCruz.Location)
	w := DaylightWindow(day, SantaCruz)
	fmt.Println(w.Sunrise.Format(time.RFC822))
	fmt.Println(w.Sunset.Format(time.RFC822))
	// Output:
	// 25 Oct 20 07:26 PDT
	// 25 Oct 20 18:19 PDT
}

func TestWindowContains(t *testing.T) {
	day := time.Date(2020, time.October, 25, 12, 0, 0, 0, SantaCruz.Location)
	w := DaylightWindow(day, SantaCruz)

	if !w.Contains(day) {
		t.Errorf("noon should be daylight")
	}
	midnight := time.Date(2020, time.October, 25, 0, 30, 0, 0, SantaCruz.Location)
	if w.Contains(midnight) {
		t.Errorf("half past midnight should not be daylight")
	}
}
