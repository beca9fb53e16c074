package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRatio  = errors.New("train ratio must be within (0, 1)")
	ErrEmptySplit    = errors.New("split leaves an empty partition")
	ErrInvalidShape  = errors.New("invalid dataset shape")
	ErrUnknownSource = errors.New("unknown dataset source")
)

// Dataset is an in-memory feature matrix with one integer label per row.
type Dataset struct {
	Name         string
	FeatureNames []string
	ClassNames   []string
	Features     [][]float64
	Labels       []int
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

func (d *Dataset) Dims() int {
	if len(d.Features) == 0 {
		return len(d.FeatureNames)
	}
	return len(d.Features[0])
}

func (d *Dataset) Validate() error {
	if len(d.Features) != len(d.Labels) {
		return fmt.Errorf("%w: %d rows but %d labels", ErrInvalidShape, len(d.Features), len(d.Labels))
	}
	dims := d.Dims()
	for i, row := range d.Features {
		if len(row) != dims {
			return fmt.Errorf("%w: row %d has %d features, expected %d", ErrInvalidShape, i, len(row), dims)
		}
	}
	return nil
}

func (d *Dataset) subset(name string, indices []int) *Dataset {
	out := &Dataset{
		Name:         name,
		FeatureNames: d.FeatureNames,
		ClassNames:   d.ClassNames,
		Features:     make([][]float64, len(indices)),
		Labels:       make([]int, len(indices)),
	}
	for i, idx := range indices {
		out.Features[i] = append([]float64{}, d.Features[idx]...)
		out.Labels[i] = d.Labels[idx]
	}
	return out
}
