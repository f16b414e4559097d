// File: lixenwraith/logprops/duration.go
package logprops

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationPattern = regexp.MustCompile(`^\s*(\d+)\s*([A-Za-z]*)\s*$`)

var durationUnits = map[string]time.Duration{}

func init() {
	for unit, names := range map[time.Duration]string{
		time.Nanosecond:  "ns,nano,nanos,nanosecond,nanoseconds",
		time.Microsecond: "us,micro,micros,microsecond,microseconds",
		time.Millisecond: "ms,milli,millis,millisecond,milliseconds",
		time.Second:      "s,second,seconds",
		time.Minute:      "m,minute,minutes",
		time.Hour:        "h,hour,hours",
		24 * time.Hour:   "d,day,days",
	} {
		for _, name := range strings.Split(names, ",") {
			durationUnits[name] = unit
		}
	}
}

// ParseDuration parses a magnitude with an optional unit suffix such as
// "500", "10 s" or "3days". A bare number is in milliseconds. Input that
// does not fit that form is tried with time.ParseDuration, so "1h30m" works.
func ParseDuration(value string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(value)
	if m == nil {
		return parseGoDuration(value)
	}

	unit := time.Millisecond
	if m[2] != "" {
		u, ok := durationUnits[strings.ToLower(m[2])]
		if !ok {
			return parseGoDuration(value)
		}
		unit = u
	}

	magnitude, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || magnitude > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidDuration, value)
	}
	return time.Duration(magnitude) * unit, nil
}

func parseGoDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}
	return d, nil
}
