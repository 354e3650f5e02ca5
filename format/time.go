package format

import (
	"fmt"
	"strings"
	"time"
)

var dateFormatToLayoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"M", "1",
	"DD", "02",
	"D", "2",
	"+hh:mm", "Z07:00",
	"+hhmm", "Z0700",
	"+hh", "Z07",
	"-hh:mm", "Z07:00",
	"-hhmm", "Z0700",
	"hh", "15",
	"mm", "04",
	"m", "4",
	"ss", "05",
	".SSS", ".999",
	".SS", ".99",
	".S", ".9",
	"-hh", "Z07",
	"Z", "Z07:00",
)

// DateFormatToTimeLayout converts ISO 2022-07-15 date format to RFC3339 time layout
func DateFormatToTimeLayout(dateFormat string) string {
	return dateFormatToLayoutReplacer.Replace(dateFormat)
}

// layouts tried when neither a field layout nor a locale layout matches
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
}

// ParseTime parses a date/time token. The layout order is: explicit layout,
// locale date layout, then a list of common layouts. Token and layout "T"
// fragments are reconciled, and a token shorter than the layout is matched
// against the layout prefix.
func (l *Locale) ParseTime(layout, token string) (time.Time, error) {
	if layout != "" {
		return parseWithLayout(layout, token)
	}
	if l.DateLayout != "" {
		if ts, err := parseWithLayout(l.DateLayout, token); err == nil {
			return ts, nil
		}
	}
	for _, candidate := range fallbackLayouts {
		if ts, err := parseWithLayout(candidate, token); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time: %q", token)
}

func parseWithLayout(layout, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("unable to parse time: empty value")
	}
	if strings.Contains(value, "T") != strings.Contains(layout, "T") {
		layout = strings.Replace(layout, "T", " ", 1)
		value = strings.Replace(value, "T", " ", 1)
	}
	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		if len(value) > len(layout) {
			t, err = time.ParseInLocation(layout, value[:len(layout)], time.UTC)
		} else {
			t, err = time.ParseInLocation(layout[:len(value)], value, time.UTC)
		}
	}
	return t, err
}
