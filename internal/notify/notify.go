// Package notify holds the boundary to the out-of-scope notification
// service. Dispatch is fire-and-forget: a failed notification is logged and
// never aborts the operation that triggered it.
package notify

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// LogNotifier stands in for the real notification service and just records
// the dispatch.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyMatch(_ context.Context, profileID, otherProfileID uuid.UUID) {
	log.Printf("notify: match formed for %s with %s", profileID, otherProfileID)
}
