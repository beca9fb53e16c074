package dataset

import (
	"fmt"
	"math"
)

// Scaler holds per-feature minimum and maximum values.
type Scaler struct {
	Min []float64
	Max []float64
}

func FitScaler(d *Dataset) *Scaler {
	dims := d.Dims()
	s := &Scaler{Min: make([]float64, dims), Max: make([]float64, dims)}
	for j := range dims {
		s.Min[j] = math.Inf(1)
		s.Max[j] = math.Inf(-1)
	}
	for _, row := range d.Features {
		for j, v := range row {
			s.Min[j] = math.Min(s.Min[j], v)
			s.Max[j] = math.Max(s.Max[j], v)
		}
	}
	return s
}

// normalizeValue maps value into [0, 1]; constant features map to the middle.
func normalizeValue(value, min, max float64) float64 {
	if max > min {
		return (value - min) / (max - min)
	}
	return 0.5
}

// Apply scales every row of d in place. Values outside the fitted range are not
// clamped.
func (s *Scaler) Apply(d *Dataset) error {
	for i, row := range d.Features {
		if len(row) != len(s.Min) {
			return fmt.Errorf("%w: row %d has %d features, scaler fitted on %d", ErrInvalidShape, i, len(row), len(s.Min))
		}
		for j, v := range row {
			row[j] = normalizeValue(v, s.Min[j], s.Max[j])
		}
	}
	return nil
}

// Normalize fits a scaler on train and applies it to train and test.
func Normalize(train, test *Dataset) (*Scaler, error) {
	s := FitScaler(train)
	if err := s.Apply(train); err != nil {
		return nil, err
	}
	if err := s.Apply(test); err != nil {
		return nil, err
	}
	return s, nil
}
