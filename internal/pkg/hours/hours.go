// Package hours converts backend opening hours into the canonical 24-hour form
// and answers "is it open right now".
package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day holds one day's opening hours as HH:MM strings.
type Day struct {
	Open   *string `json:"open"`
	Close  *string `json:"close"`
	Closed bool    `json:"closed"`
}

// Week is keyed by lower-case English weekday name.
type Week map[string]Day

// To24Hour converts "7:00 AM" to "07:00". It never panics; any malformed
// input yields ok == false.
func To24Hour(time12 string) (string, bool) {
	timePart, period, found := strings.Cut(time12, " ")
	if !found {
		return "", false
	}

	h, m, found := strings.Cut(timePart, ":")
	if !found || h == "" || m == "" {
		return "", false
	}

	hours, err := strconv.Atoi(h)
	if err != nil {
		return "", false
	}

	switch strings.ToUpper(strings.TrimSpace(period)) {
	case "AM":
		if hours == 12 {
			hours = 0
		}
	case "PM":
		if hours != 12 {
			hours += 12
		}
	}

	return fmt.Sprintf("%02d:%s", hours, padMinutes(m)), true
}

func padMinutes(m string) string {
	if len(m) >= 2 {
		return m
	}
	return strings.Repeat("0", 2-len(m)) + m
}

// Clock formats t as zero-padded HH:MM.
func Clock(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// WeekdayKey returns the map key used for t's weekday.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsCurrentlyOpen compares fixed-width HH:MM strings, so lexical order is
// chronological order. Ranges crossing midnight (close < open) report closed.
func IsCurrentlyOpen(week Week, now time.Time) bool {
	day, ok := week[WeekdayKey(now)]
	if !ok || day.Closed || day.Open == nil || day.Close == nil {
		return false
	}

	current := Clock(now)
	return *day.Open <= current && current <= *day.Close
}
