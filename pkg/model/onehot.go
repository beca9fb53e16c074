package model

import (
	"fmt"
	"slices"
)

// LabelEncoder maps the distinct label values seen at training time onto dense
// class indices 0..K-1 in ascending label order.
type LabelEncoder struct {
	classes []int
	index   map[int]int
}

func NewLabelEncoder(labels []int) *LabelEncoder {
	classes := slices.Clone(labels)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	index := make(map[int]int, len(classes))
	for i, label := range classes {
		index[label] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

func (e *LabelEncoder) Classes() []int {
	return slices.Clone(e.classes)
}

func (e *LabelEncoder) Encode(labels []int) ([]int, error) {
	out := make([]int, len(labels))
	for i, label := range labels {
		if idx, ok := e.index[label]; !ok {
			return nil, fmt.Errorf("%w: %d at sample %d", ErrUnknownLabel, label, i)
		} else {
			out[i] = idx
		}
	}
	return out, nil
}

func (e *LabelEncoder) Decode(indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = e.classes[idx]
	}
	return out
}

func OneHotEncode(indices []int, numClasses int) [][]float64 {
	oneHot := make([][]float64, len(indices))
	for i, idx := range indices {
		row := make([]float64, numClasses)
		row[idx] = 1.0
		oneHot[i] = row
	}
	return oneHot
}

// Flatten the 2D one-hot encoded labels into a 1D slice
func FlattenOneHot(oneHot [][]float64) []float64 {
	if len(oneHot) == 0 {
		return []float64{}
	}
	flat := make([]float64, 0, len(oneHot)*len(oneHot[0]))
	for _, row := range oneHot {
		flat = append(flat, row...)
	}
	return flat
}
