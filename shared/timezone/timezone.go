package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
)

var appLocation atomic.Pointer[time.Location]

// Init sets the application location from an IANA name such as "Asia/Jakarta". Empty means UTC.
func Init(name string) error {
	if name == "" {
		appLocation.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", name, err)
	}

	appLocation.Store(loc)

	return nil
}

// GetLocation returns the application location, UTC until Init succeeds.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

// Format renders t as wall clock time in the application location.
func Format(t time.Time, layout string) string {
	return t.In(GetLocation()).Format(layout)
}
