package client

import (
	"context"

	"github.com/dm/pulse/internal/model"
)

const endpointStats = "/api/stats"

// FetchSnapshot fetches and decodes one snapshot from the stats resource.
// Nothing is returned unless the whole body decodes.
func (c *DefaultClient) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	body, err := c.doGet(ctx, c.config.StatsPath)
	if err != nil {
		return nil, err
	}

	snap, err := model.DecodeSnapshot(body)
	if err != nil {
		return nil, &FetchError{Kind: BadResponse, Path: c.config.StatsPath, Err: err}
	}
	return snap, nil
}
