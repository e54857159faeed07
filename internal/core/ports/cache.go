package ports

import "context"

// ActiveFlagCache is a short-lived cache of account active flags, keyed by
// username. Lookup returns ok=false on a miss; cache errors are treated as
// misses by callers.
type ActiveFlagCache interface {
	Lookup(ctx context.Context, username string) (active, ok bool, err error)
	Store(ctx context.Context, username string, active bool) error
}
