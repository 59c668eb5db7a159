package munch

import (
	"fmt"
	"strconv"
)

// Days maps the directory API's weekday indexes to display names.
// The API numbers days from Monday = 0.
var Days = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// DayName returns the display name for an API weekday index.
func DayName(day int) string {
	if day < 0 || day >= len(Days) {
		return ""
	}
	return Days[day]
}

// FormatTimeRange renders a pair of "HHMM" clock values as a 12-hour range,
// e.g. "1100"/"2130" -> "11:00 AM - 9:30 PM".
func FormatTimeRange(start, end string) string {
	return fmt.Sprintf("%s - %s", to12Hour(start), to12Hour(end))
}

func to12Hour(clock string) string {
	if len(clock) != 4 {
		return clock
	}
	hours, err := strconv.Atoi(clock[:2])
	if err != nil {
		return clock
	}
	minutes := clock[2:]

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%s %s", hours, minutes, suffix)
}
