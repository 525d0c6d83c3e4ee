package utils

import (
	"time"
)

var venueLocation *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	venueLocation = loc
}

// FormatVenueTime renders a timestamp in venue-local time.
func FormatVenueTime(t time.Time) string {
	return t.In(venueLocation).Format("2006-01-02 15:04")
}

// VenueToday returns today's date string in venue-local time.
func VenueToday() string {
	return time.Now().In(venueLocation).Format("2006-01-02")
}
