package homebase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseShiftRange converts shift card text like "9:00 am - 1:00 pm /" into
// start and end times on the given day.
func parseShiftRange(text string, day time.Time) (time.Time, time.Time, error) {
	fields := strings.Fields(strings.Trim(text, " /"))
	if len(fields) != 5 || fields[2] != "-" {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed shift range %q", text)
	}

	start, err := parseShiftTime(fields[0], fields[1], day)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed shift range %q", text)
	}
	end, err := parseShiftTime(fields[3], fields[4], day)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed shift range %q", text)
	}

	return start, end, nil
}

// parseShiftTime converts a clock string and am/pm period into a time on
// the given day.
func parseShiftTime(clock, period string, day time.Time) (time.Time, error) {
	hourStr, minuteStr, ok := strings.Cut(clock, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed clock %q", clock)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed clock %q", clock)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed clock %q", clock)
	}

	if strings.EqualFold(period, "pm") && hour != 12 {
		hour += 12
	}
	if strings.EqualFold(period, "am") && hour == 12 {
		hour = 0
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
