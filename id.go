package autothunk

import (
	"context"

	"github.com/LyraHealth/auto-thunk/id"
)

// ID is the identifier type for thunk executions and subscriptions.
type ID = id.ID

// Prefix identifies the entity type encoded in an ID.
type Prefix = id.Prefix

// ThunkID returns the ID of the thunk execution running on ctx. HTTP
// clients, loggers and trackers called by a thunk receive such a context.
func ThunkID(ctx context.Context) (ID, bool) {
	return id.FromContext(ctx)
}
