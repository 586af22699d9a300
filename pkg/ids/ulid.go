// Package ids provides ID primitives for messages.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewMessageID returns a new ULID string (26 chars). ULIDs are
// lexicographically sortable, and the monotonic entropy source keeps ids
// strictly increasing within one process even when timestamps collide.
func NewMessageID(now time.Time) string {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
