// Package cache keeps computed popular-film lists in Redis.
package cache

import (
	"context"
	"fmt"
	"strconv"
)

// PopularKey identifies one popular-films query.
type PopularKey struct {
	Count   int
	GenreID *int64
	Year    *int64
}

func (k PopularKey) String() string {
	return fmt.Sprintf("c%d:g%s:y%s", k.Count, optional(k.GenreID), optional(k.Year))
}

func optional(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

// Version is the cache generation a Get observed. Set stores under the
// version passed in, so a list computed before an Invalidate is never
// readable after it.
type Version int64

// NoVersion means the generation is unknown; Set ignores it.
const NoVersion Version = -1

// PopularCache stores ranked film ids. Implementations never fail the caller:
// errors are logged and reported as misses.
type PopularCache interface {
	// Get returns the cached list and the version it was looked up under,
	// also on a miss.
	Get(ctx context.Context, key PopularKey) ([]int64, Version, bool)
	Set(ctx context.Context, key PopularKey, version Version, filmIDs []int64)
	// Invalidate drops every cached list after likes changed.
	Invalidate(ctx context.Context)
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, PopularKey) ([]int64, Version, bool) { return nil, NoVersion, false }
func (Noop) Set(context.Context, PopularKey, Version, []int64)        {}
func (Noop) Invalidate(context.Context)                               {}
