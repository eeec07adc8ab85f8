package models

import "time"

// TimestampLayout is the day.month.year hour:minute layout used in every message.
const TimestampLayout = "02.01.2006 15:04"

// FormatTimestamp renders t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
