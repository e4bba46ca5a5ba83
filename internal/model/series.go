package model

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Point is a single labeled count within a Series.
type Point struct {
	Label string
	Value int64
}

// Series is an ordered label → count mapping. Unlike a Go map it keeps the
// key order of the JSON object it was decoded from, which is the order the
// charts must render in.
type Series []Point

// Labels returns the labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Values returns the counts in label order as chart values.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = float64(p.Value)
	}
	return out
}

// Get returns the count for label.
func (s Series) Get(label string) (int64, bool) {
	for _, p := range s {
		if p.Label == label {
			return p.Value, true
		}
	}
	return 0, false
}

// Total returns the sum of all counts.
func (s Series) Total() int64 {
	var sum int64
	for _, p := range s {
		sum += p.Value
	}
	return sum
}

// Add increments label by delta, appending it at the end if it is new.
func (s *Series) Add(label string, delta int64) {
	for i := range *s {
		if (*s)[i].Label == label {
			(*s)[i].Value += delta
			return
		}
	}
	*s = append(*s, Point{Label: label, Value: delta})
}

// Clone returns an independent copy of s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// UnmarshalJSON decodes a JSON object, keeping its key order. A duplicate key
// overwrites the earlier value in place.
func (s *Series) UnmarshalJSON(data []byte) error {
	iter := jsoniter.ParseBytes(codec, data)
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.ReadNil()
		*s = nil
		return nil
	}
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return fmt.Errorf("series: expected JSON object, got %s", truncate(data, 32))
	}

	out := Series{}
	var valueErr error
	iter.ReadMapCB(func(it *jsoniter.Iterator, label string) bool {
		v, err := readCount(it)
		if err != nil {
			valueErr = fmt.Errorf("series: value for %q: %w", label, err)
			return false
		}
		for i := range out {
			if out[i].Label == label {
				out[i].Value = v
				return true
			}
		}
		out = append(out, Point{Label: label, Value: v})
		return true
	})
	if valueErr != nil {
		return valueErr
	}
	if iter.Error != nil {
		return fmt.Errorf("series: %w", iter.Error)
	}
	*s = out
	return nil
}

// MarshalJSON encodes s as a JSON object in series order.
func (s Series) MarshalJSON() ([]byte, error) {
	stream := codec.BorrowStream(nil)
	defer codec.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, p := range s {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(p.Label)
		stream.WriteInt64(p.Value)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}
