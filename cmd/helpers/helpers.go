package helpers

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DetermineUpdated renders a registry timestamp relative to now, "-" when
// the registry did not report one.
func DetermineUpdated(updatedAt time.Time) string {
	if updatedAt.IsZero() {
		return "-"
	}
	return humanize.Time(updatedAt)
}

func DetermineValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// DetermineSchemaSize is the human readable size of an SDL document.
func DetermineSchemaSize(sdl string) string {
	return humanize.Bytes(uint64(len(sdl)))
}
