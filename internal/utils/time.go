package utils

import (
	"time"
)

// ISOTimestamp formats t the way photo items carry their capture time.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
