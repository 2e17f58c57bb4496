package utils

import (
	"fmt"
	"time"
)

// Clock returns the current time. Sessions take one so tests can pin it.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// SessionName returns a unique session directory name:
//
//	<prefix>_YYYYMMDD_HHMMSS_<suffix>
func SessionName(prefix string, at time.Time, suffix string) string {
	name := fmt.Sprintf("%s_%s", prefix, at.Format("20060102_150405"))
	if suffix != "" {
		name += "_" + suffix
	}
	return name
}
