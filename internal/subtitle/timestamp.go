package subtitle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Separator characters for the millisecond field of a cue timestamp.
const (
	SeparatorVTT = '.'
	SeparatorSRT = ','
)

// ErrNegativeTimestamp reports a caller precondition violation: cue
// timestamps are never negative.
var ErrNegativeTimestamp = errors.New("negative timestamp")

// FormatTimestamp renders seconds as HH:MM:SS<sep>mmm. The value is rounded
// to the nearest millisecond first, then decomposed by integer division so a
// rounding carry propagates into the higher units (59.9995 becomes
// "00:01:00.000", not "00:00:60.000"). Hours widen past two digits when
// needed; minutes, seconds, and milliseconds are fixed width.
func FormatTimestamp(seconds float64, sep byte) (string, error) {
	if seconds < 0 || math.IsNaN(seconds) {
		return "", fmt.Errorf("%w: %v", ErrNegativeTimestamp, seconds)
	}
	milliseconds := int64(math.Round(seconds * 1000.0))
	hours := milliseconds / 3_600_000
	milliseconds -= hours * 3_600_000
	minutes := milliseconds / 60_000
	milliseconds -= minutes * 60_000
	secs := milliseconds / 1_000
	milliseconds -= secs * 1_000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, milliseconds), nil
}

// ParseTimestamp reads an SRT or WebVTT cue timestamp back into seconds.
// Both millisecond separators are accepted.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
