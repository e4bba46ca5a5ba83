package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/pulse/internal/client"
	"github.com/dm/pulse/internal/engine"
	"github.com/dm/pulse/internal/model"
)

type fixedSource struct{ snap *model.Snapshot }

func (f fixedSource) Snapshot() *model.Snapshot { return f.snap }

type panicSource struct{}

func (panicSource) Snapshot() *model.Snapshot { panic("boom") }

func fixture() *model.Snapshot {
	return &model.Snapshot{
		Summary: model.Summary{TotalRecords: 100, SuccessRate: 80, LastUpdated: "10:00:00"},
		MonthlyTrends: model.Series{
			{Label: "2026-03", Value: 3},
			{Label: "2026-01", Value: 1},
			{Label: "2026-02", Value: 2},
		},
		StatusDistribution: model.Series{{Label: "Success", Value: 80}, {Label: "Rejected", Value: 20}},
	}
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestStats_ServesSnapshotInOrder(t *testing.T) {
	var logs bytes.Buffer
	srv := httptest.NewServer(New(quietLogger(&logs), "", fixedSource{fixture()}).Handler())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/api/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	snap, err := model.DecodeSnapshot(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03", "2026-01", "2026-02"}, snap.MonthlyTrends.Labels())
	assert.Equal(t, int64(100), snap.Summary.TotalRecords)
	assert.NotNil(t, snap.Anomalies)
	assert.Contains(t, string(body), `"anomalies":[]`)

	assert.Contains(t, logs.String(), "path=/api/stats")
	assert.Contains(t, logs.String(), "status=200")
	assert.Contains(t, logs.String(), "request_id=")
}

func TestStats_FromSimulator(t *testing.T) {
	cfg := engine.DefaultSimulatorConfig()
	cfg.Seed = 1
	sim := engine.NewSimulator(cfg)
	sim.Step()

	srv := httptest.NewServer(New(quietLogger(&bytes.Buffer{}), "", sim).Handler())
	defer srv.Close()

	_, body := get(t, srv.URL+"/api/stats")
	snap, err := model.DecodeSnapshot(body)
	require.NoError(t, err)
	assert.Len(t, snap.MonthlyTrends, 12)
	assert.Equal(t, []string{engine.StatusSuccess, engine.StatusRejected, engine.StatusPending}, snap.StatusDistribution.Labels())
	assert.Len(t, snap.StateWiseEnrollment, len(engine.Regions))
}

// incidentSimulator returns a simulator whose Bihar/Patna district is
// currently flagged as anomalous.
func incidentSimulator(t *testing.T) *engine.Simulator {
	t.Helper()
	cfg := engine.DefaultSimulatorConfig()
	cfg.Seed = 1
	cfg.IncidentChance = 0
	cfg.RejectRate = 0
	cfg.IncidentRejectRate = 1
	cfg.MinBatch, cfg.MaxBatch = 2000, 2000
	at := time.Date(2026, 3, 4, 10, 11, 12, 0, time.UTC)
	cfg.Now = func() time.Time { return at }
	sim := engine.NewSimulator(cfg)
	sim.StartIncident("Bihar", "Patna", 10)
	sim.Step()
	require.NotEmpty(t, sim.Snapshot().Anomalies)
	return sim
}

func TestStats_ClientRoundTripWithAnomalies(t *testing.T) {
	sim := incidentSimulator(t)
	srv := httptest.NewServer(New(quietLogger(&bytes.Buffer{}), "", sim).Handler())
	defer srv.Close()

	c, err := client.NewDefaultClient(client.ClientConfig{BaseURL: srv.URL, RequestTimeout: 5 * time.Second})
	require.NoError(t, err)

	got, err := c.FetchSnapshot(context.Background())
	require.NoError(t, err)

	want := sim.Snapshot()
	require.Len(t, got.Anomalies, len(want.Anomalies))
	assert.Equal(t, want.Anomalies, got.Anomalies)
	assert.Equal(t, "Patna", got.Anomalies[0].District)
	assert.False(t, got.Anomalies[0].Total.IsText())
	assert.Equal(t, want.MonthlyTrends, got.MonthlyTrends)
	assert.Equal(t, want.StatusDistribution, got.StatusDistribution)
	assert.Equal(t, want.StateWiseEnrollment, got.StateWiseEnrollment)
	assert.Equal(t, want.RequestTypes, got.RequestTypes)
	assert.Equal(t, want.Summary, got.Summary)
}

func TestStats_ClientAcceptsIndentedBody(t *testing.T) {
	sim := incidentSimulator(t)
	compact, err := model.EncodeSnapshot(sim.Snapshot())
	require.NoError(t, err)
	var indented bytes.Buffer
	require.NoError(t, json.Indent(&indented, compact, "", "  "))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(indented.Bytes())
	}))
	defer srv.Close()

	c, err := client.NewDefaultClient(client.ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)
	require.Contains(t, indented.String(), "\n  \"anomalies\": [")

	got, err := c.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sim.Snapshot().Anomalies, got.Anomalies)
	assert.Equal(t, sim.Snapshot().MonthlyTrends.Labels(), got.MonthlyTrends.Labels())
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(New(quietLogger(&bytes.Buffer{}), "", fixedSource{fixture()}).Handler())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
}

func TestRouting_UnknownAndWrongMethod(t *testing.T) {
	srv := httptest.NewServer(New(quietLogger(&bytes.Buffer{}), "", fixedSource{fixture()}).Handler())
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/api/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	post, err := http.Post(srv.URL+"/api/stats", "application/json", nil)
	require.NoError(t, err)
	post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

func TestStats_PanicRecovered(t *testing.T) {
	var logs bytes.Buffer
	srv := httptest.NewServer(New(quietLogger(&logs), "", panicSource{}).Handler())
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/api/stats")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, logs.String(), "status=500")
}

func TestServeAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(quietLogger(&bytes.Buffer{}), ln.Addr().String(), fixedSource{fixture()})
	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, _ := get(t, "http://"+ln.Addr().String()+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err, "clean shutdown returns nil")
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}
}
