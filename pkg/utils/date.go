package utils

import (
	"log"
	"math"
	"time"
)

// TimeNowIST returns the current time in the Indian market timezone.
func TimeNowIST() time.Time {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// DateNowIST returns today's date (midnight) in the Indian market timezone.
func DateNowIST() time.Time {
	return TruncateToDate(TimeNowIST())
}

// TruncateToDate drops the time-of-day component, keeping the location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Round2 rounds to two decimal places. Monetary values are rounded at
// presentation time only.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
