package mentions

import (
	"context"
	"sync"

	"github.com/autumn-gallery/api-go/services"
)

// LookupFunc runs a directory search for a mention query.
type LookupFunc func(ctx context.Context, prefix string) ([]services.MentionCandidate, error)

// Resolver serializes mention lookups for one composing text field. Each
// Resolve supersedes any lookup still in flight: a superseded call reports
// stale=true and its result must be discarded, so only candidates for the
// most recent query ever reach the screen.
type Resolver struct {
	lookup LookupFunc

	mu  sync.Mutex
	seq uint64
}

func NewResolver(lookup LookupFunc) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve scans text for a live mention query and, if one exists, runs the
// directory lookup for it. When text holds no query it returns (nil, false,
// nil) and invalidates any lookup still in flight, matching the rule that
// clearing the "@" run clears the candidate list.
func (r *Resolver) Resolve(ctx context.Context, text string) (candidates []services.MentionCandidate, stale bool, err error) {
	prefix, ok := Scan(text)

	r.mu.Lock()
	r.seq++
	ticket := r.seq
	r.mu.Unlock()

	if !ok {
		return nil, false, nil
	}

	result, err := r.lookup(ctx, prefix)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq != ticket {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return result, false, nil
}
