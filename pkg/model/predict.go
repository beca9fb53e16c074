package model

import (
	"fmt"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Predict returns the class with the highest linear score for every sample, in
// input order. Ties go to the lowest class.
func (m *LogisticRegression) Predict(x [][]float64) ([]int, error) {
	if err := m.checkInput(x); err != nil {
		return nil, err
	}

	w := m.weights.Data().([]float64)
	scores := make([]float64, m.encoder.Len())
	indices := make([]int, len(x))
	for i, sample := range appendBias(x) {
		linear(w, sample, scores)
		indices[i] = Argmax(scores)
	}
	return m.encoder.Decode(indices), nil
}

func (m *LogisticRegression) PredictOne(x []float64) (int, error) {
	if pred, err := m.Predict([][]float64{x}); err != nil {
		return 0, err
	} else {
		return pred[0], nil
	}
}

// Score predicts x and returns the fraction of predictions equal to y.
func (m *LogisticRegression) Score(x [][]float64, y []int) (float64, error) {
	if pred, err := m.Predict(x); err != nil {
		return 0, err
	} else {
		return Accuracy(pred, y)
	}
}

// Probabilities returns the softmax of W·x for every sample, columns ordered as
// Classes.
func (m *LogisticRegression) Probabilities(x [][]float64) ([][]float64, error) {
	if err := m.checkInput(x); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return [][]float64{}, nil
	}

	g := gorgonia.NewGraph()
	probs, err := m.forward(g, appendBias(x))
	if err != nil {
		return nil, err
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()

	if err := vm.RunAll(); err != nil {
		return nil, fmt.Errorf("forward pass failed: %w", err)
	}

	return unflatten(probs.Value().Data().([]float64), len(x), m.encoder.Len()), nil
}

// forward builds softmax(X·Wᵀ) for the bias-augmented samples.
func (m *LogisticRegression) forward(g *gorgonia.ExprGraph, samples [][]float64) (*gorgonia.Node, error) {
	rows, cols := len(samples), len(samples[0])

	xVal := tensor.New(
		tensor.WithShape(rows, cols),
		tensor.Of(tensor.Float64),
		tensor.WithBacking(flattenFeatures(samples)),
	)
	xTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(rows, cols),
		gorgonia.WithValue(xVal),
		gorgonia.WithName("x"))

	weights := m.weights.Clone().(*tensor.Dense)
	wTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(weights.Shape()...),
		gorgonia.WithValue(weights),
		gorgonia.WithName("w"))

	wT, err := gorgonia.Transpose(wTensor)
	if err != nil {
		return nil, fmt.Errorf("failed to transpose weights: %w", err)
	}
	logits, err := gorgonia.Mul(xTensor, wT)
	if err != nil {
		return nil, fmt.Errorf("failed to compute scores: %w", err)
	}
	probs, err := gorgonia.SoftMax(logits)
	if err != nil {
		return nil, fmt.Errorf("failed to compute softmax: %w", err)
	}
	return probs, nil
}
