package sysinfo

import (
	"time"

	"github.com/google/uuid"
)

// Source is the clock and randomness capability behind the system utility
// tools. Isolating it keeps the tools pure functions of the source, so
// tests can substitute a deterministic one without touching dispatch, and
// no cross-call mutable state can make results depend on call order.
type Source interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// UUID returns a new version-4 UUID string.
	UUID() string
}

// systemSource reads the system clock and draws UUIDs from crypto/rand.
type systemSource struct{}

// SystemSource returns the production source.
func SystemSource() Source {
	return systemSource{}
}

func (systemSource) Now() time.Time {
	return time.Now()
}

func (systemSource) UUID() string {
	return uuid.NewString()
}
