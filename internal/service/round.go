package service

import (
	"math"
	"time"
)

// round rounds to the given number of decimal places, ties to even.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(v*p) / p
}

func minutesToHours(minutes int) float64 {
	return round(float64(minutes)/60, 2)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
