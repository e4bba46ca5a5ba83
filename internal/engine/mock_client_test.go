package engine

import (
	"context"
	"errors"

	"github.com/dm/pulse/internal/model"
)

// MockStatsClient implements client.StatsClient for testing.
type MockStatsClient struct {
	SnapshotFn func(ctx context.Context) (*model.Snapshot, error)
	PingFn     func(ctx context.Context) error
}

func (m *MockStatsClient) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if m.SnapshotFn != nil {
		return m.SnapshotFn(ctx)
	}
	return &model.Snapshot{
		Summary:       model.Summary{TotalRecords: 10, SuccessRate: 90, LastUpdated: "00:00:00"},
		MonthlyTrends: model.Series{{Label: "Jan", Value: 10}},
	}, nil
}

func (m *MockStatsClient) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

func (m *MockStatsClient) BaseURL() string {
	return "http://mock:5000"
}

var errMockFailure = errors.New("mock failure")
