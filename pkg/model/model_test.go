package model

import (
	"math"
	"testing"

	"github.com/grexie/classifiers/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoBlobs(seed uint64) *dataset.Dataset {
	return dataset.Blobs([][]float64{{0, 0}, {10, 10}}, 50, 1.0, seed)
}

func threeBlobs(seed uint64) *dataset.Dataset {
	return dataset.Blobs([][]float64{{0, 0}, {10, 0}, {0, 10}}, 40, 1.0, seed)
}

func TestTrainWeightsShape(t *testing.T) {
	type test struct {
		data    *dataset.Dataset
		classes int
		cols    int
	}

	tests := map[string]test{
		"two-blobs": {
			data:    twoBlobs(1),
			classes: 2,
			cols:    3,
		},
		"three-blobs": {
			data:    threeBlobs(1),
			classes: 3,
			cols:    3,
		},
		"four-features": {
			data:    dataset.Blobs([][]float64{{0, 0, 0, 0}, {5, 5, 5, 5}}, 10, 1.0, 1),
			classes: 2,
			cols:    5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewLogisticRegression(Params{MaxIterations: 5, LearningRate: 0.01})
			require.NoError(t, m.Train(tt.data.Features, tt.data.Labels))
			w := m.Weights()
			assert.Len(t, w, tt.classes)
			for _, row := range w {
				assert.Len(t, row, tt.cols)
			}
		})
	}
}

func TestTrainSingleUpdate(t *testing.T) {
	m := NewLogisticRegression(Params{MaxIterations: 1, LearningRate: 0.5})
	require.NoError(t, m.Train([][]float64{{1}, {-1}}, []int{0, 1}))

	assert.Equal(t, [][]float64{{0.5, 0}, {-0.5, 0}}, m.Weights())

	pred, err := m.Predict([][]float64{{2}, {-2}, {0}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, pred)
}

func TestTrainErrors(t *testing.T) {
	type test struct {
		params Params
		x      [][]float64
		y      []int
		err    error
	}

	tests := map[string]test{
		"label-count": {
			params: Params{MaxIterations: 1, LearningRate: 0.1},
			x:      [][]float64{{1, 2}, {3, 4}},
			y:      []int{0},
			err:    ErrShapeMismatch,
		},
		"ragged": {
			params: Params{MaxIterations: 1, LearningRate: 0.1},
			x:      [][]float64{{1, 2}, {3}},
			y:      []int{0, 1},
			err:    ErrShapeMismatch,
		},
		"empty": {
			params: Params{MaxIterations: 1, LearningRate: 0.1},
			x:      [][]float64{},
			y:      []int{},
			err:    ErrEmptyDataset,
		},
		"negative-iterations": {
			params: Params{MaxIterations: -1, LearningRate: 0.1},
			x:      [][]float64{{1}},
			y:      []int{0},
			err:    ErrInvalidParams,
		},
		"zero-rate": {
			params: Params{MaxIterations: 1, LearningRate: 0},
			x:      [][]float64{{1}},
			y:      []int{0},
			err:    ErrInvalidParams,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewLogisticRegression(tt.params)
			err := m.Train(tt.x, tt.y)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, m.Trained())
		})
	}
}

func TestUntrained(t *testing.T) {
	m := NewLogisticRegression(Params{MaxIterations: 1, LearningRate: 0.1})

	_, err := m.Predict([][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrUninitializedModel)

	_, err = m.PredictOne([]float64{1, 2})
	assert.ErrorIs(t, err, ErrUninitializedModel)

	_, err = m.Score([][]float64{{1, 2}}, []int{0})
	assert.ErrorIs(t, err, ErrUninitializedModel)

	_, err = m.Probabilities([][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrUninitializedModel)

	assert.Nil(t, m.Weights())
	assert.Nil(t, m.Classes())
}

func TestPredictWidthMismatch(t *testing.T) {
	data := twoBlobs(3)
	m := NewLogisticRegression(Params{MaxIterations: 1, LearningRate: 0.01})
	require.NoError(t, m.Train(data.Features, data.Labels))

	_, err := m.Predict([][]float64{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestZeroIterations(t *testing.T) {
	data := threeBlobs(7)
	m := NewLogisticRegression(Params{MaxIterations: 0, LearningRate: 0.01})
	require.NoError(t, m.Train(data.Features, data.Labels))

	for _, row := range m.Weights() {
		for _, w := range row {
			assert.Equal(t, 0.0, w)
		}
	}

	pred, err := m.Predict(data.Features)
	require.NoError(t, err)
	for _, p := range pred {
		assert.Equal(t, 0, p)
	}
}

func TestDeterminism(t *testing.T) {
	data := threeBlobs(11)
	params := Params{MaxIterations: 20, LearningRate: 0.01}

	a := NewLogisticRegression(params)
	require.NoError(t, a.Train(data.Features, data.Labels))
	b := NewLogisticRegression(params)
	require.NoError(t, b.Train(data.Features, data.Labels))

	assert.Equal(t, a.Weights(), b.Weights())

	pa, err := a.Predict(data.Features)
	require.NoError(t, err)
	pb, err := b.Predict(data.Features)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)

	again, err := a.Predict(data.Features)
	require.NoError(t, err)
	assert.Equal(t, pa, again)
}

func TestRetrainReplacesState(t *testing.T) {
	m := NewLogisticRegression(Params{MaxIterations: 10, LearningRate: 0.01})
	require.NoError(t, m.Train(threeBlobs(5).Features, threeBlobs(5).Labels))
	assert.Len(t, m.Weights(), 3)

	data := dataset.Blobs([][]float64{{0, 0, 0}, {8, 8, 8}}, 20, 1.0, 5)
	require.NoError(t, m.Train(data.Features, data.Labels))
	assert.Len(t, m.Weights(), 2)
	assert.Len(t, m.Weights()[0], 4)

	fresh := NewLogisticRegression(Params{MaxIterations: 10, LearningRate: 0.01})
	require.NoError(t, fresh.Train(data.Features, data.Labels))
	assert.Equal(t, fresh.Weights(), m.Weights())
}

func TestFailedTrainKeepsState(t *testing.T) {
	data := twoBlobs(9)
	m := NewLogisticRegression(Params{MaxIterations: 5, LearningRate: 0.01})
	require.NoError(t, m.Train(data.Features, data.Labels))
	before := m.Weights()

	assert.ErrorIs(t, m.Train(data.Features, data.Labels[1:]), ErrShapeMismatch)
	assert.Equal(t, before, m.Weights())
}

func TestSparseLabels(t *testing.T) {
	data := twoBlobs(13)
	labels := make([]int, len(data.Labels))
	for i, l := range data.Labels {
		labels[i] = 3 + 4*l
	}

	m := NewLogisticRegression(Params{MaxIterations: 50, LearningRate: 0.01})
	require.NoError(t, m.Train(data.Features, labels))
	assert.Equal(t, []int{3, 7}, m.Classes())

	pred, err := m.Predict([][]float64{{0.2, -0.1}, {9.8, 10.3}})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, pred)
}

func TestTwoBlobsEndToEnd(t *testing.T) {
	train := twoBlobs(21)
	test := twoBlobs(22)

	m := NewLogisticRegression(Params{MaxIterations: 100, LearningRate: 0.01})
	require.NoError(t, m.Train(train.Features, train.Labels))

	p, err := m.PredictOne([]float64{0.3, -0.4})
	require.NoError(t, err)
	assert.Equal(t, 0, p)

	p, err = m.PredictOne([]float64{10.2, 9.7})
	require.NoError(t, err)
	assert.Equal(t, 1, p)

	score, err := m.Score(test.Features, test.Labels)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.95)
}

func TestThreeBlobsEndToEnd(t *testing.T) {
	all := dataset.Blobs([][]float64{{0, 0}, {10, 0}, {0, 10}}, 60, 1.0, 31)
	train, test, err := dataset.Split(all, 0.7, 31)
	require.NoError(t, err)

	m := NewLogisticRegression(Params{MaxIterations: 100, LearningRate: 0.01})
	require.NoError(t, m.Train(train.Features, train.Labels))

	pred, err := m.Predict(test.Features)
	require.NoError(t, err)
	accuracy, err := Accuracy(pred, test.Labels)
	require.NoError(t, err)
	assert.Greater(t, accuracy, 0.9)
}

func TestProbabilitiesMatchPlainSoftmax(t *testing.T) {
	data := threeBlobs(41)
	m := NewLogisticRegression(Params{MaxIterations: 30, LearningRate: 0.01})
	require.NoError(t, m.Train(data.Features, data.Labels))

	probs, err := m.Probabilities(data.Features)
	require.NoError(t, err)
	require.Len(t, probs, data.Len())

	pred, err := m.Predict(data.Features)
	require.NoError(t, err)

	w := m.Weights()
	for i, row := range probs {
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9)

		scores := make([]float64, len(w))
		for c, wr := range w {
			scores[c] = wr[0]*data.Features[i][0] + wr[1]*data.Features[i][1] + wr[2]
		}
		softmax(scores)
		for c := range scores {
			assert.InDelta(t, scores[c], row[c], 1e-9)
		}

		assert.Equal(t, m.Classes()[Argmax(row)], pred[i])
	}
}

func TestLogLoss(t *testing.T) {
	data := twoBlobs(51)

	untrained := NewLogisticRegression(Params{MaxIterations: 0, LearningRate: 0.01})
	require.NoError(t, untrained.Train(data.Features, data.Labels))
	uniform, err := untrained.LogLoss(data.Features, data.Labels)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), uniform, 1e-5)

	trained := NewLogisticRegression(Params{MaxIterations: 50, LearningRate: 0.01})
	require.NoError(t, trained.Train(data.Features, data.Labels))
	loss, err := trained.LogLoss(data.Features, data.Labels)
	require.NoError(t, err)
	assert.Less(t, loss, uniform)

	_, err = trained.LogLoss(data.Features, append([]int{5}, data.Labels[1:]...))
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestAccuracy(t *testing.T) {
	type test struct {
		predicted []int
		actual    []int
		accuracy  float64
		err       error
	}

	tests := map[string]test{
		"all": {
			predicted: []int{0, 1, 2},
			actual:    []int{0, 1, 2},
			accuracy:  1,
		},
		"half": {
			predicted: []int{0, 1, 1, 0},
			actual:    []int{0, 1, 0, 1},
			accuracy:  0.5,
		},
		"missing": {
			predicted: nil,
			actual:    []int{0},
			err:       ErrMissingPredictions,
		},
		"mismatch": {
			predicted: []int{0, 1},
			actual:    []int{0},
			err:       ErrShapeMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			accuracy, err := Accuracy(tt.predicted, tt.actual)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.accuracy, accuracy)
		})
	}
}
