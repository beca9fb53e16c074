package model

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/progress"
	"gorgonia.org/tensor"
)

type Params struct {
	MaxIterations int
	LearningRate  float64
}

func (p Params) Validate() error {
	if p.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidParams, p.MaxIterations)
	}
	if !(p.LearningRate > 0) {
		return fmt.Errorf("%w: learning rate %g", ErrInvalidParams, p.LearningRate)
	}
	return nil
}

// LogisticRegression is a multinomial logistic regression classifier fitted by
// per-sample gradient ascent on the log-likelihood.
type LogisticRegression struct {
	params   Params
	encoder  *LabelEncoder
	weights  *tensor.Dense
	features int
	pw       progress.Writer
}

func NewLogisticRegression(params Params) *LogisticRegression {
	return &LogisticRegression{params: params}
}

// WithProgress reports one tracker step per training pass to pw.
func (m *LogisticRegression) WithProgress(pw progress.Writer) *LogisticRegression {
	m.pw = pw
	return m
}

func (m *LogisticRegression) Params() Params {
	return m.params
}

func (m *LogisticRegression) Trained() bool {
	return m.weights != nil
}

func (m *LogisticRegression) Classes() []int {
	if m.encoder == nil {
		return nil
	}
	return m.encoder.Classes()
}

// Weights returns a copy of W, one row per class and one column per feature
// followed by the bias column.
func (m *LogisticRegression) Weights() [][]float64 {
	if m.weights == nil {
		return nil
	}
	shape := m.weights.Shape()
	return unflatten(m.weights.Data().([]float64), shape[0], shape[1])
}
