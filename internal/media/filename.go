package media

import (
	"regexp"
	"time"
)

// Filename patterns tried in order of specificity. The first pattern with any
// valid match wins; among several matches of that pattern the earliest
// timestamp is used, so a name mentioning two dates resolves to the older one.
var filenamePatterns = []struct {
	re    *regexp.Regexp
	parse func(match []string) (time.Time, error)
}{
	{
		// 20240517-143059 or 20240517_143059
		re: regexp.MustCompile(`(\d{8})[-_](\d{6})`),
		parse: func(m []string) (time.Time, error) {
			return time.ParseInLocation("20060102150405", m[1]+m[2], time.Local)
		},
	},
	{
		// Screenshot style: 2024-05-17 at 14.30.59 (the "at" is optional)
		re: regexp.MustCompile(`(\d{4}-\d{2}-\d{2})(?: at | )(\d{2})\.(\d{2})\.(\d{2})`),
		parse: func(m []string) (time.Time, error) {
			return time.ParseInLocation("2006-01-02 15:04:05", m[1]+" "+m[2]+":"+m[3]+":"+m[4], time.Local)
		},
	},
	{
		// 20240517_14_30_59
		re: regexp.MustCompile(`(\d{8})_(\d{2})_(\d{2})_(\d{2})`),
		parse: func(m []string) (time.Time, error) {
			return time.ParseInLocation("20060102150405", m[1]+m[2]+m[3]+m[4], time.Local)
		},
	},
	{
		// Bare date: 20240517
		re: regexp.MustCompile(`\d{8}`),
		parse: func(m []string) (time.Time, error) {
			return time.ParseInLocation("20060102", m[0], time.Local)
		},
	},
}

// filenameCaptureTime scans a base name for embedded date patterns.
func filenameCaptureTime(name string, now time.Time) (time.Time, bool) {
	for _, pattern := range filenamePatterns {
		matches := pattern.re.FindAllStringSubmatch(name, -1)
		var earliest time.Time
		for _, match := range matches {
			ts, err := pattern.parse(match)
			if err != nil {
				continue
			}
			if !validCaptureTime(ts, now) {
				continue
			}
			if earliest.IsZero() || ts.Before(earliest) {
				earliest = ts
			}
		}
		if !earliest.IsZero() {
			return earliest, true
		}
	}
	return time.Time{}, false
}
