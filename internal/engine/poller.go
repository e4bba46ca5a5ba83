package engine

import (
	"context"
	"time"

	"github.com/dm/pulse/internal/client"
	"github.com/dm/pulse/internal/model"
)

// minFetchTimeout keeps very short poll intervals from starving the request.
const minFetchTimeout = 500 * time.Millisecond

// FetchSnapshot performs one bounded fetch against c. Every failure comes back
// as a *client.FetchError; a nil error always carries a non-nil snapshot
// stamped with FetchedAt. FetchSnapshot never logs.
func FetchSnapshot(ctx context.Context, c client.StatsClient, timeout time.Duration) (*model.Snapshot, error) {
	if timeout < minFetchTimeout {
		timeout = minFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap, err := c.FetchSnapshot(ctx)
	if err != nil {
		return nil, client.Classify(c.BaseURL(), err)
	}
	if snap == nil {
		return nil, &client.FetchError{
			Kind: client.BadResponse,
			Path: c.BaseURL(),
			Err:  errEmptySnapshot,
		}
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}
