package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dm/pulse/internal/model"
)

// Status labels used in status_distribution.
const (
	StatusSuccess  = "Success"
	StatusRejected = "Rejected"
	StatusPending  = "Pending"
)

// RequestTypes lists the request kinds counted in request_type_distribution.
var RequestTypes = []string{"New Enrollment", "Biometric Update", "Demographic Update"}

const trendMonths = 12

// Regions lists the simulated states and their districts, in display order.
var Regions = []Region{
	{"Maharashtra", []string{"Mumbai", "Pune", "Nagpur", "Nashik"}},
	{"Uttar Pradesh", []string{"Lucknow", "Kanpur", "Varanasi", "Agra"}},
	{"Karnataka", []string{"Bangalore", "Mysore", "Hubli", "Mangalore"}},
	{"Delhi", []string{"New Delhi", "North Delhi", "South Delhi"}},
	{"Tamil Nadu", []string{"Chennai", "Coimbatore", "Madurai"}},
	{"Bihar", []string{"Patna", "Gaya", "Muzaffarpur"}},
	{"West Bengal", []string{"Kolkata", "Howrah", "Darjeeling"}},
}

// Region is a state and its districts.
type Region struct {
	State     string
	Districts []string
}

// SimulatorConfig tunes the synthetic enrollment feed. Start from
// DefaultSimulatorConfig: RejectRate and PendingRate are taken as given, so a
// zero there means no rejected or pending requests outside incidents.
type SimulatorConfig struct {
	Seed            uint64 // 0 picks a time-based seed
	BaselineRecords int64
	MinBatch        int // requests per step, inclusive
	MaxBatch        int

	RejectRate  float64 // per-request rejection probability
	PendingRate float64 // per-request pending probability

	IncidentChance     float64 // per-step chance a district starts an incident
	IncidentSteps      int
	IncidentRejectRate float64 // 0 selects the default; an incident always rejects

	Detector DetectorConfig

	Now func() time.Time
}

// DefaultSimulatorConfig mirrors the live feed: ~12.5M records, 20–100 new
// requests a second, roughly 85/10/5 success/rejected/pending.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		BaselineRecords:    12_500_000,
		MinBatch:           20,
		MaxBatch:           100,
		RejectRate:         0.10,
		PendingRate:        0.05,
		IncidentChance:     0.02,
		IncidentSteps:      30,
		IncidentRejectRate: 0.5,
		Detector:           DefaultDetectorConfig(),
	}
}

type districtKey struct {
	State    string
	District string
}

// Simulator produces a live statistics feed. It is safe for concurrent use:
// Run advances it while HTTP handlers read Snapshot.
type Simulator struct {
	mu  sync.Mutex
	cfg SimulatorConfig
	rng *rand.Rand

	total     int64
	status    model.Series
	types     model.Series
	trends    model.Series
	states    model.Series
	districts []districtKey // stable iteration order
	incidents map[districtKey]int
	detector  *Detector
}

// NewSimulator seeds a simulator with baseline data so charts are never
// empty on the first request.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	def := DefaultSimulatorConfig()
	if cfg.BaselineRecords <= 0 {
		cfg.BaselineRecords = def.BaselineRecords
	}
	if cfg.MinBatch <= 0 {
		cfg.MinBatch = def.MinBatch
	}
	if cfg.MaxBatch < cfg.MinBatch {
		cfg.MaxBatch = cfg.MinBatch
	}
	if cfg.IncidentSteps <= 0 {
		cfg.IncidentSteps = def.IncidentSteps
	}
	if cfg.IncidentRejectRate <= 0 {
		cfg.IncidentRejectRate = def.IncidentRejectRate
	}
	cfg.RejectRate = clampProbability(cfg.RejectRate)
	cfg.PendingRate = clampProbability(cfg.PendingRate)
	cfg.IncidentChance = clampProbability(cfg.IncidentChance)
	cfg.IncidentRejectRate = clampProbability(cfg.IncidentRejectRate)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Simulator{
		cfg:       cfg,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		total:     cfg.BaselineRecords,
		incidents: make(map[districtKey]int),
	}
	for _, r := range Regions {
		for _, d := range r.Districts {
			s.districts = append(s.districts, districtKey{r.State, d})
		}
	}
	s.detector = newDetector(cfg.Detector, s.districts)

	for _, r := range Regions {
		s.states.Add(r.State, int64(10_000+s.rng.IntN(40_001)))
	}

	s.status.Add(StatusSuccess, int64(float64(s.total)*0.80))
	s.status.Add(StatusRejected, int64(float64(s.total)*0.15))
	s.status.Add(StatusPending, int64(float64(s.total)*0.05))

	for _, rt := range RequestTypes {
		s.types.Add(rt, 0)
	}

	now := cfg.Now()
	for i := trendMonths - 1; i >= 0; i-- {
		s.trends.Add(monthLabel(now, -i), int64(5_000+s.rng.IntN(10_001)))
	}
	return s
}

// monthLabel returns the YYYY-MM label offset months away from t.
func monthLabel(t time.Time, offset int) string {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location()).Format("2006-01")
}

// Step simulates one batch of requests.
func (s *Simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollIncidents()

	n := s.cfg.MinBatch + s.rng.IntN(s.cfg.MaxBatch-s.cfg.MinBatch+1)
	s.total += int64(n)

	step := make(map[districtKey]outcomeBucket, len(s.districts))
	var success, rejected, pending int64
	for i := 0; i < n; i++ {
		key := s.districts[s.rng.IntN(len(s.districts))]
		s.states.Add(key.State, 1)
		s.types.Add(RequestTypes[s.rng.IntN(len(RequestTypes))], 1)

		rejectP := s.cfg.RejectRate
		if _, ok := s.incidents[key]; ok {
			rejectP = s.cfg.IncidentRejectRate
		}

		b := step[key]
		b.Total++
		switch r := s.rng.Float64(); {
		case r < rejectP:
			rejected++
			b.Rejected++
		case r < rejectP+s.cfg.PendingRate:
			pending++
		default:
			success++
		}
		step[key] = b
	}

	s.status.Add(StatusSuccess, success)
	s.status.Add(StatusRejected, rejected)
	s.status.Add(StatusPending, pending)

	month := monthLabel(s.cfg.Now(), 0)
	s.trends.Add(month, int64(n))
	if len(s.trends) > trendMonths {
		s.trends = s.trends[len(s.trends)-trendMonths:]
	}

	s.detector.Observe(step)
}

// rollIncidents ages running incidents and maybe starts a new one.
func (s *Simulator) rollIncidents() {
	for k, left := range s.incidents {
		if left <= 1 {
			delete(s.incidents, k)
			continue
		}
		s.incidents[k] = left - 1
	}
	if s.cfg.IncidentChance > 0 && s.rng.Float64() < s.cfg.IncidentChance {
		key := s.districts[s.rng.IntN(len(s.districts))]
		s.incidents[key] = s.cfg.IncidentSteps
	}
}

// StartIncident forces an incident in the given district.
func (s *Simulator) StartIncident(state, district string, steps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents[districtKey{state, district}] = steps
}

// Snapshot returns an independent copy of the current statistics.
func (s *Simulator) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	success, _ := s.status.Get(StatusSuccess)
	now := s.cfg.Now()
	return &model.Snapshot{
		Summary: model.Summary{
			TotalRecords: s.total,
			SuccessRate:  round2(percent(success, s.total)),
			LastUpdated:  now.Format("15:04:05"),
		},
		MonthlyTrends:       s.trends.Clone(),
		StatusDistribution:  s.status.Clone(),
		StateWiseEnrollment: s.states.Clone(),
		RequestTypes:        s.types.Clone(),
		Anomalies:           s.detector.Anomalies(),
		FetchedAt:           now,
	}
}

// Run steps the simulator every tick until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		tick = time.Second
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Step()
		}
	}
}
