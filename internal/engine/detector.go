package engine

import "github.com/dm/pulse/internal/model"

// DetectorConfig holds the anomaly rule parameters.
type DetectorConfig struct {
	Threshold    float64 // rejection rate (%) a district must exceed
	MinSamples   int64   // windowed requests required before a district is judged
	Window       int     // steps per district window
	MaxAnomalies int
}

// DefaultDetectorConfig flags districts above 25% rejections over the last
// 60 steps, keeping at most 10 entries.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Threshold:    25,
		MinSamples:   20,
		Window:       defaultWindowCap,
		MaxAnomalies: 10,
	}
}

// Detector flags districts with an unusually high rejection rate over a
// sliding window. Anomalies are listed newest detection first; a district
// appears at most once and drops off when it recovers.
type Detector struct {
	cfg       DetectorConfig
	order     []districtKey
	windows   map[districtKey]*outcomeWindow
	anomalies []model.AnomalyRecord
}

// newDetector creates a detector over the given districts. The slice order
// decides which of several simultaneous detections is listed first.
func newDetector(cfg DetectorConfig, districts []districtKey) *Detector {
	def := DefaultDetectorConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = def.MinSamples
	}
	if cfg.MaxAnomalies <= 0 {
		cfg.MaxAnomalies = def.MaxAnomalies
	}
	d := &Detector{
		cfg:     cfg,
		order:   districts,
		windows: make(map[districtKey]*outcomeWindow, len(districts)),
	}
	for _, k := range districts {
		d.windows[k] = newOutcomeWindow(cfg.Window)
	}
	return d
}

// Observe records one step of outcomes (districts absent from step saw no
// traffic) and re-evaluates every district.
func (d *Detector) Observe(step map[districtKey]outcomeBucket) {
	for _, k := range d.order {
		d.windows[k].Push(step[k])
	}

	var fresh []model.AnomalyRecord
	for _, k := range d.order {
		sum := d.windows[k].Sum()
		rate := percent(sum.Rejected, sum.Total)
		idx := d.indexOf(k)

		if sum.Total < d.cfg.MinSamples || rate <= d.cfg.Threshold {
			if idx >= 0 {
				d.anomalies = append(d.anomalies[:idx], d.anomalies[idx+1:]...)
			}
			continue
		}

		rec := model.AnomalyRecord{
			State:         k.State,
			District:      k.District,
			Total:         model.N(sum.Total),
			Rejected:      model.N(sum.Rejected),
			RejectionRate: round2(rate),
		}
		if idx >= 0 {
			d.anomalies[idx] = rec
			continue
		}
		fresh = append(fresh, rec)
	}

	if len(fresh) > 0 {
		d.anomalies = append(fresh, d.anomalies...)
	}
	if len(d.anomalies) > d.cfg.MaxAnomalies {
		d.anomalies = d.anomalies[:d.cfg.MaxAnomalies]
	}
}

func (d *Detector) indexOf(k districtKey) int {
	for i, a := range d.anomalies {
		if a.State == k.State && a.District == k.District {
			return i
		}
	}
	return -1
}

// Anomalies returns a copy of the current anomaly list; never nil.
func (d *Detector) Anomalies() []model.AnomalyRecord {
	out := make([]model.AnomalyRecord, len(d.anomalies))
	copy(out, d.anomalies)
	return out
}
