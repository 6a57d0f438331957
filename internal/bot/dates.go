package bot

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Absolute date layouts accepted for scheduling, tried in order. All parse in
// the server's local timezone; that policy is deliberate and fixed.
var scheduleLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

var scheduleTimeRe = regexp.MustCompile(`(\d{1,2})(:\d{2})?\s*(am|pm)?`)

// ParseScheduleDate interprets scheduling input. It accepts an absolute
// date/time strictly in the future, or a relative "tomorrow" form with an
// optional 12-hour time ("tomorrow 2pm", "tomorrow 9:30am") defaulting to
// noon. Anything else is rejected.
func ParseScheduleDate(input string, now time.Time) (time.Time, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))

	for _, layout := range scheduleLayouts {
		if parsed, err := time.ParseInLocation(layout, strings.TrimSpace(input), now.Location()); err == nil {
			if parsed.After(now) {
				return parsed, true
			}
			return time.Time{}, false
		}
	}

	if strings.Contains(trimmed, "tomorrow") {
		return tomorrowAt(trimmed, now), true
	}

	return time.Time{}, false
}

func tomorrowAt(trimmed string, now time.Time) time.Time {
	hours, minutes := 12, 0

	match := scheduleTimeRe.FindStringSubmatch(trimmed)
	if match != nil {
		hours, _ = strconv.Atoi(match[1])
		if match[2] != "" {
			minutes, _ = strconv.Atoi(match[2][1:])
		}
		switch match[3] {
		case "pm":
			if hours < 12 {
				hours += 12
			}
		case "am":
			if hours == 12 {
				hours = 0
			}
		}
	}

	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hours, minutes, 0, 0, now.Location())
}

// FormatScheduleDate renders a timestamp back to the visitor.
func FormatScheduleDate(t time.Time) string {
	return t.Format("2 Jan 2006, 3:04 PM")
}
