package model

import (
	"fmt"
	"math"
)

// ValidateSamples checks that x and y describe the same non-empty set of samples
// and that every sample has the same number of features.
func ValidateSamples(x [][]float64, y []int) (int, int, error) {
	if len(x) != len(y) {
		return 0, 0, fmt.Errorf("%w: %d samples but %d labels", ErrShapeMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return 0, 0, ErrEmptyDataset
	}
	d := len(x[0])
	if err := ValidateWidth(x, d); err != nil {
		return 0, 0, err
	}
	return len(x), d, nil
}

func ValidateWidth(x [][]float64, features int) error {
	for i, row := range x {
		if len(row) != features {
			return fmt.Errorf("%w: sample %d has %d features, expected %d", ErrShapeMismatch, i, len(row), features)
		}
	}
	return nil
}

// Argmax returns the index of the largest value, preferring the first one on ties.
func Argmax(slice []float64) int {
	maxIndex := 0
	maxValue := slice[0]
	for i, value := range slice {
		if value > maxValue {
			maxValue = value
			maxIndex = i
		}
	}
	return maxIndex
}

// linear writes W·x into scores, W being stored row-major with len(x) columns.
func linear(weights []float64, x []float64, scores []float64) {
	cols := len(x)
	for c := range scores {
		row := weights[c*cols : (c+1)*cols]
		z := 0.0
		for j, v := range x {
			z += row[j] * v
		}
		scores[c] = z
	}
}

// softmax turns scores into probabilities in place as exp(z)/sum(exp(z)).
func softmax(scores []float64) {
	sum := 0.0
	for c, z := range scores {
		scores[c] = math.Exp(z)
		sum += scores[c]
	}
	for c := range scores {
		scores[c] /= sum
	}
}

func logLikelihood(weights []float64, samples [][]float64, indices []int, numClasses int) float64 {
	probs := make([]float64, numClasses)
	ll := 0.0
	for i, x := range samples {
		linear(weights, x, probs)
		softmax(probs)
		ll += math.Log(probs[indices[i]])
	}
	return ll
}
