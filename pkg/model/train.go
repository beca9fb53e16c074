package model

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/rs/zerolog/log"
	"gorgonia.org/tensor"
)

// Train fits W from scratch on x and y, replacing any previous state. Samples are
// visited in their given order on every pass and each one updates W before the
// next is processed.
func (m *LogisticRegression) Train(x [][]float64, y []int) error {
	if err := m.params.Validate(); err != nil {
		return err
	}
	n, d, err := ValidateSamples(x, y)
	if err != nil {
		return err
	}

	encoder := NewLabelEncoder(y)
	indices, err := encoder.Encode(y)
	if err != nil {
		return err
	}
	numClasses := encoder.Len()
	cols := d + 1

	samples := appendBias(x)
	oneHot := OneHotEncode(indices, numClasses)

	weights := tensor.New(
		tensor.WithShape(numClasses, cols),
		tensor.WithBacking(make([]float64, numClasses*cols)))
	w := weights.Data().([]float64)

	var tracker *progress.Tracker
	if m.pw != nil {
		tracker = &progress.Tracker{
			Message: "Training logistic regression",
			Total:   int64(m.params.MaxIterations),
			Units:   progress.UnitsDefault,
		}
		m.pw.AppendTracker(tracker)
		tracker.Start()
	}

	log.Debug().
		Int("samples", n).
		Int("features", d).
		Int("classes", numClasses).
		Int("iterations", m.params.MaxIterations).
		Float64("learning_rate", m.params.LearningRate).
		Msg("training logistic regression")

	probs := make([]float64, numClasses)
	for pass := range m.params.MaxIterations {
		for i, sample := range samples {
			linear(w, sample, probs)
			softmax(probs)
			for c := range numClasses {
				step := m.params.LearningRate * (oneHot[i][c] - probs[c])
				row := w[c*cols : (c+1)*cols]
				for j, v := range sample {
					row[j] += step * v
				}
			}
		}

		if tracker != nil {
			tracker.Increment(1)
		}
		if e := log.Debug(); e.Enabled() {
			e.Int("pass", pass).
				Float64("log_likelihood", logLikelihood(w, samples, indices, numClasses)).
				Msg("training pass")
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}

	m.encoder = encoder
	m.weights = weights
	m.features = d

	if m.params.MaxIterations == 0 {
		log.Warn().Msg("zero training iterations, weights left at zero")
	}

	return nil
}

func (m *LogisticRegression) checkInput(x [][]float64) error {
	if m.weights == nil {
		return ErrUninitializedModel
	}
	if err := ValidateWidth(x, m.features); err != nil {
		return fmt.Errorf("prediction input: %w", err)
	}
	return nil
}
