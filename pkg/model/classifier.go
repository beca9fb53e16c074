package model

import "fmt"

// Classifier is implemented by every model in this module.
type Classifier interface {
	Train(x [][]float64, y []int) error
	Predict(x [][]float64) ([]int, error)
	Classes() []int
}

// Accuracy is the fraction of positions where predicted equals actual.
func Accuracy(predicted, actual []int) (float64, error) {
	if len(predicted) == 0 {
		return 0, ErrMissingPredictions
	}
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("%w: %d predictions but %d labels", ErrShapeMismatch, len(predicted), len(actual))
	}
	correct := 0
	for i, p := range predicted {
		if p == actual[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(predicted)), nil
}
