package core

import "time"

// ISOTime renders a timestamp the way the API expects everywhere:
// ISO-8601 with millisecond precision and a Z suffix.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
