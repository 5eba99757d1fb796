package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	secondsPerDay = 24 * 60 * 60
)

// Clock is a time of day in milliseconds since midnight, always in [0, 24h).
type Clock int64

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2}),(\d{3})$`)

// NewClock builds a Clock from its fields, rejecting out-of-range values.
func NewClock(hour, minute, second, milli int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 ||
		second < 0 || second > 59 || milli < 0 || milli > 999 {
		return 0, fmt.Errorf(
			"%w: %d:%d:%d,%d",
			ErrInvalidClock,
			hour, minute, second, milli,
		)
	}
	return Clock(hour*msPerHour + minute*msPerMinute + second*msPerSecond + milli), nil
}

// ParseClock parses H:M:S,mmm where H, M and S have one or two digits.
func ParseClock(s string) (Clock, error) {
	matches := clockRegex.FindStringSubmatch(s)
	if len(matches) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	fields := make([]int, 4)
	for i, m := range matches[1:] {
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		fields[i] = n
	}

	return NewClock(fields[0], fields[1], fields[2], fields[3])
}

// ParseRange parses a "<start> --> <end>" line. Anything after a second
// separator is ignored.
func ParseRange(line string) (start, end Clock, err error) {
	from, to, ok := strings.Cut(line, RangeSeparator)
	if !ok {
		return 0, 0, ErrNoSeparator
	}
	to, _, _ = strings.Cut(to, RangeSeparator)
	if start, err = ParseClock(from); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(to); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (c Clock) Hour() int        { return int(c / msPerHour) }
func (c Clock) Minute() int      { return int(c % msPerHour / msPerMinute) }
func (c Clock) Second() int      { return int(c % msPerMinute / msPerSecond) }
func (c Clock) Millisecond() int { return int(c % msPerSecond) }

// Duration returns the offset from midnight.
func (c Clock) Duration() time.Duration {
	return time.Duration(c) * time.Millisecond
}

// AddSeconds shifts the clock, wrapping through midnight in either direction.
// The offset is reduced modulo one day first, so any int64 is safe.
func (c Clock) AddSeconds(seconds int64) Clock {
	return c.addMillis((seconds % secondsPerDay) * msPerSecond)
}

// Add shifts the clock by d truncated to whole milliseconds.
func (c Clock) Add(d time.Duration) Clock {
	return c.addMillis(d.Milliseconds() % msPerDay)
}

func (c Clock) addMillis(ms int64) Clock {
	v := (int64(c) + ms) % msPerDay
	if v < 0 {
		v += msPerDay
	}
	return Clock(v)
}

// String renders the canonical SubRip form.
func (c Clock) String() string {
	return formatSRTTime(c)
}
