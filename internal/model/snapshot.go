package model

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// codec is the JSON configuration shared by every snapshot encoder/decoder.
var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingSummary is returned by DecodeSnapshot when the payload has no
// summary object.
var ErrMissingSummary = errors.New("snapshot: missing summary")

// Summary holds the headline numbers of a snapshot.
type Summary struct {
	TotalRecords int64   `json:"total_records"`
	SuccessRate  float64 `json:"success_rate"` // percentage 0–100
	LastUpdated  string  `json:"last_updated"` // display string, echoed verbatim
}

// AnomalyRecord is one flagged district. Records carry no identity; they are
// positional within a single snapshot.
type AnomalyRecord struct {
	State         string  `json:"State"`
	District      string  `json:"District"`
	Total         Count   `json:"total"`
	Rejected      Count   `json:"rejected"`
	RejectionRate float64 `json:"rejection_rate"`
}

// Snapshot is the payload of a single refresh cycle. It is built fresh on
// every successful fetch and never mutated after it is handed out.
type Snapshot struct {
	Summary             Summary         `json:"summary"`
	MonthlyTrends       Series          `json:"monthly_trends"`
	StatusDistribution  Series          `json:"status_distribution"`
	StateWiseEnrollment Series          `json:"state_wise_enrollment"`
	RequestTypes        Series          `json:"request_type_distribution,omitempty"`
	Anomalies           []AnomalyRecord `json:"anomalies"`

	FetchedAt time.Time `json:"-"`
}

// DecodeSnapshot parses a /api/stats response body. Mapping key order is
// preserved in the returned Series.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var wire struct {
		Summary             *Summary        `json:"summary"`
		MonthlyTrends       Series          `json:"monthly_trends"`
		StatusDistribution  Series          `json:"status_distribution"`
		StateWiseEnrollment Series          `json:"state_wise_enrollment"`
		RequestTypes        Series          `json:"request_type_distribution"`
		Anomalies           []AnomalyRecord `json:"anomalies"`
	}
	if err := codec.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if wire.Summary == nil {
		return nil, ErrMissingSummary
	}
	return &Snapshot{
		Summary:             *wire.Summary,
		MonthlyTrends:       wire.MonthlyTrends,
		StatusDistribution:  wire.StatusDistribution,
		StateWiseEnrollment: wire.StateWiseEnrollment,
		RequestTypes:        wire.RequestTypes,
		Anomalies:           wire.Anomalies,
	}, nil
}

// EncodeSnapshot renders s in the /api/stats wire format.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	anomalies := s.Anomalies
	if anomalies == nil {
		anomalies = []AnomalyRecord{}
	}
	out := *s
	out.Anomalies = anomalies
	return codec.Marshal(&out)
}

// Count is an anomaly counter. Most producers send a JSON number, but the live
// detector sends a short label ("LIVE DETECTED") in the same slot, so both are
// accepted and rendered verbatim.
type Count struct {
	Value int64
	Text  string
}

// N returns a numeric Count.
func N(v int64) Count { return Count{Value: v} }

// IsText reports whether the count carries a label instead of a number.
func (c Count) IsText() bool { return c.Text != "" }

// String returns the label, or the number in plain decimal form.
func (c Count) String() string {
	if c.Text != "" {
		return c.Text
	}
	return strconv.FormatInt(c.Value, 10)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	iter := jsoniter.ParseBytes(codec, data)
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		*c = Count{}
	case jsoniter.StringValue:
		*c = Count{Text: iter.ReadString()}
	case jsoniter.NumberValue:
		v, err := readCount(iter)
		if err != nil {
			return err
		}
		*c = Count{Value: v}
	default:
		return fmt.Errorf("count: unexpected JSON value %s", truncate(data, 32))
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return fmt.Errorf("count: %w", iter.Error)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Count) MarshalJSON() ([]byte, error) {
	if c.Text != "" {
		return codec.Marshal(c.Text)
	}
	return []byte(strconv.FormatInt(c.Value, 10)), nil
}

// readCount reads a JSON number as an integer count. Integral floats such as
// 12.0 are accepted; fractional values are rounded toward zero. Leading
// whitespace is skipped, and running into the end of the input right after
// the number is not an error.
func readCount(iter *jsoniter.Iterator) (int64, error) {
	if next := iter.WhatIsNext(); next != jsoniter.NumberValue {
		if iter.Error != nil {
			return 0, iter.Error
		}
		return 0, errors.New("expected a number")
	}
	num := iter.ReadNumber()
	if iter.Error != nil && iter.Error != io.EOF {
		return 0, iter.Error
	}
	if v, err := num.Int64(); err == nil {
		return v, nil
	}
	f, err := num.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", num.String(), err)
	}
	return int64(f), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
