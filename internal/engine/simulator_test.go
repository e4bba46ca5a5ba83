package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/pulse/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestSimulator(now time.Time) *Simulator {
	cfg := DefaultSimulatorConfig()
	cfg.Seed = 42
	cfg.IncidentChance = 0
	cfg.Now = fixedClock(now)
	return NewSimulator(cfg)
}

func TestNewSimulator_Baseline(t *testing.T) {
	now := time.Date(2026, time.March, 31, 12, 30, 45, 0, time.UTC)
	s := newTestSimulator(now)
	snap := s.Snapshot()

	assert.Equal(t, int64(12_500_000), snap.Summary.TotalRecords)
	assert.Equal(t, 80.0, snap.Summary.SuccessRate)
	assert.Equal(t, "12:30:45", snap.Summary.LastUpdated)

	labels := snap.MonthlyTrends.Labels()
	require.Len(t, labels, 12)
	assert.Equal(t, "2025-04", labels[0], "oldest month first")
	assert.Equal(t, "2026-03", labels[11])

	assert.Equal(t, []string{StatusSuccess, StatusRejected, StatusPending}, snap.StatusDistribution.Labels())
	assert.Equal(t, RequestTypes, snap.RequestTypes.Labels())
	assert.Zero(t, snap.RequestTypes.Total())

	states := snap.StateWiseEnrollment.Labels()
	require.Len(t, states, len(Regions))
	for i, r := range Regions {
		assert.Equal(t, r.State, states[i])
	}
	for _, v := range snap.StateWiseEnrollment.Values() {
		assert.GreaterOrEqual(t, v, 10_000.0)
		assert.LessOrEqual(t, v, 50_000.0)
	}
	assert.Empty(t, snap.Anomalies)
	assert.NotNil(t, snap.Anomalies)
}

func TestSimulator_StepGrowsCounters(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	s := newTestSimulator(now)
	before := s.Snapshot()

	s.Step()
	after := s.Snapshot()

	added := after.Summary.TotalRecords - before.Summary.TotalRecords
	assert.GreaterOrEqual(t, added, int64(20))
	assert.LessOrEqual(t, added, int64(100))

	assert.Equal(t, added, after.StatusDistribution.Total()-before.StatusDistribution.Total())
	assert.Equal(t, added, after.StateWiseEnrollment.Total()-before.StateWiseEnrollment.Total())
	assert.Equal(t, added, after.RequestTypes.Total()-before.RequestTypes.Total())

	cur, _ := after.MonthlyTrends.Get("2026-03")
	prev, _ := before.MonthlyTrends.Get("2026-03")
	assert.Equal(t, added, cur-prev)
}

func TestSimulator_DeterministicForSeed(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	a, b := newTestSimulator(now), newTestSimulator(now)
	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestSimulator_MonthRolloverAppendsAndTrims(t *testing.T) {
	now := time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC)
	cfg := DefaultSimulatorConfig()
	cfg.Seed = 7
	cfg.Now = func() time.Time { return now }
	s := NewSimulator(cfg)

	now = time.Date(2026, time.April, 1, 0, 0, 1, 0, time.UTC)
	s.Step()

	labels := s.Snapshot().MonthlyTrends.Labels()
	require.Len(t, labels, 12)
	assert.Equal(t, "2025-05", labels[0])
	assert.Equal(t, "2026-04", labels[11])
}

func TestSimulator_IncidentRaisesAnomaly(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	cfg.Seed = 1
	cfg.IncidentChance = 0
	cfg.RejectRate = 0
	cfg.IncidentRejectRate = 1
	cfg.MinBatch, cfg.MaxBatch = 2000, 2000
	s := NewSimulator(cfg)

	s.StartIncident("Bihar", "Gaya", 5)
	s.Step()

	anomalies := s.Snapshot().Anomalies
	require.Len(t, anomalies, 1)
	assert.Equal(t, "Bihar", anomalies[0].State)
	assert.Equal(t, "Gaya", anomalies[0].District)
	assert.Equal(t, 100.0, anomalies[0].RejectionRate)
}

func TestSimulator_SnapshotIsIndependent(t *testing.T) {
	s := newTestSimulator(time.Now())
	snap := s.Snapshot()
	snap.MonthlyTrends[0].Value = -1
	assert.NotEqual(t, int64(-1), s.Snapshot().MonthlyTrends[0].Value)
}

func TestSimulator_RunStopsOnCancel(t *testing.T) {
	s := newTestSimulator(time.Now())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, 5*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return s.Snapshot().Summary.TotalRecords > 12_500_000
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewSimulator_PartialConfigIncidentsReject(t *testing.T) {
	s := NewSimulator(SimulatorConfig{Seed: 3, MinBatch: 2000, MaxBatch: 2000, Now: fixedClock(time.Now())})
	assert.Equal(t, DefaultSimulatorConfig().IncidentRejectRate, s.cfg.IncidentRejectRate)
	assert.Equal(t, 0.0, s.cfg.RejectRate, "explicit zero reject rate is kept")

	s.StartIncident("Delhi", "South Delhi", 5)
	s.Step()

	anomalies := s.Snapshot().Anomalies
	require.Len(t, anomalies, 1)
	assert.Equal(t, "South Delhi", anomalies[0].District)
}

func TestSimulator_SnapshotSurvivesWireFormat(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	cfg.Seed = 7
	cfg.IncidentChance = 0
	cfg.Now = fixedClock(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))
	s := NewSimulator(cfg)
	s.StartIncident("Bihar", "Patna", 200)
	for i := 0; i < 120; i++ {
		s.Step()
	}

	src := s.Snapshot()
	require.NotEmpty(t, src.Anomalies)

	body, err := model.EncodeSnapshot(src)
	require.NoError(t, err)
	back, err := model.DecodeSnapshot(body)
	require.NoError(t, err)

	assert.Equal(t, src.Summary, back.Summary)
	assert.Equal(t, src.MonthlyTrends, back.MonthlyTrends)
	assert.Equal(t, src.StatusDistribution, back.StatusDistribution)
	assert.Equal(t, src.StateWiseEnrollment, back.StateWiseEnrollment)
	assert.Equal(t, src.RequestTypes, back.RequestTypes)
	assert.Equal(t, src.Anomalies, back.Anomalies)
}
