package bayes

import (
	"fmt"
	"math"

	"github.com/grexie/classifiers/pkg/model"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minVariance keeps densities finite when every feature is constant and no
// smoothing is configured.
const minVariance = 1e-12

type Params struct {
	// VarSmoothing is the fraction of the largest feature variance added to every
	// per-class variance.
	VarSmoothing float64
}

func (p Params) Validate() error {
	if p.VarSmoothing < 0 || math.IsNaN(p.VarSmoothing) {
		return fmt.Errorf("%w: var smoothing %g", model.ErrInvalidParams, p.VarSmoothing)
	}
	return nil
}

func NewParamsFromDefaults() Params {
	return Params{VarSmoothing: model.VarSmoothing()}
}

// GaussianNB models every feature as an independent normal distribution per
// class.
type GaussianNB struct {
	params    Params
	encoder   *model.LabelEncoder
	priors    []float64
	means     [][]float64
	variances [][]float64
	features  int
}

func NewGaussianNB(params Params) *GaussianNB {
	return &GaussianNB{params: params}
}

func (m *GaussianNB) Train(x [][]float64, y []int) error {
	if err := m.params.Validate(); err != nil {
		return err
	}
	n, d, err := model.ValidateSamples(x, y)
	if err != nil {
		return err
	}

	encoder := model.NewLabelEncoder(y)
	indices, err := encoder.Encode(y)
	if err != nil {
		return err
	}
	numClasses := encoder.Len()

	// columns[c][j] holds feature j of every sample of class c
	columns := make([][][]float64, numClasses)
	for c := range columns {
		columns[c] = make([][]float64, d)
	}
	counts := make([]int, numClasses)
	for i, row := range x {
		c := indices[i]
		counts[c]++
		for j, v := range row {
			columns[c][j] = append(columns[c][j], v)
		}
	}

	epsilon := m.params.VarSmoothing * maxVariance(x, d)

	priors := make([]float64, numClasses)
	means := make([][]float64, numClasses)
	variances := make([][]float64, numClasses)
	for c := range numClasses {
		priors[c] = float64(counts[c]) / float64(n)
		means[c] = make([]float64, d)
		variances[c] = make([]float64, d)
		for j := range d {
			mean, variance := stat.PopMeanVariance(columns[c][j], nil)
			means[c][j] = mean
			variances[c][j] = math.Max(variance+epsilon, minVariance)
		}
	}

	log.Debug().
		Int("samples", n).
		Int("features", d).
		Int("classes", numClasses).
		Float64("epsilon", epsilon).
		Msg("trained gaussian naive bayes")

	m.encoder = encoder
	m.priors = priors
	m.means = means
	m.variances = variances
	m.features = d
	return nil
}

func maxVariance(x [][]float64, d int) float64 {
	column := make([]float64, len(x))
	out := 0.0
	for j := range d {
		for i, row := range x {
			column[i] = row[j]
		}
		_, variance := stat.PopMeanVariance(column, nil)
		out = math.Max(out, variance)
	}
	return out
}

func (m *GaussianNB) checkInput(x [][]float64) error {
	if m.encoder == nil {
		return model.ErrUninitializedModel
	}
	if err := model.ValidateWidth(x, m.features); err != nil {
		return fmt.Errorf("prediction input: %w", err)
	}
	return nil
}

// jointLogLikelihood returns log P(c) + sum_j log N(x_j | mean_cj, var_cj) per class.
func (m *GaussianNB) jointLogLikelihood(sample []float64) []float64 {
	jll := make([]float64, len(m.priors))
	for c, prior := range m.priors {
		ll := math.Log(prior)
		for j, v := range sample {
			ll += distuv.Normal{Mu: m.means[c][j], Sigma: math.Sqrt(m.variances[c][j])}.LogProb(v)
		}
		jll[c] = ll
	}
	return jll
}

func (m *GaussianNB) Predict(x [][]float64) ([]int, error) {
	if err := m.checkInput(x); err != nil {
		return nil, err
	}
	indices := make([]int, len(x))
	for i, sample := range x {
		indices[i] = model.Argmax(m.jointLogLikelihood(sample))
	}
	return m.encoder.Decode(indices), nil
}

func (m *GaussianNB) PredictOne(x []float64) (int, error) {
	if pred, err := m.Predict([][]float64{x}); err != nil {
		return 0, err
	} else {
		return pred[0], nil
	}
}

func (m *GaussianNB) Score(x [][]float64, y []int) (float64, error) {
	if pred, err := m.Predict(x); err != nil {
		return 0, err
	} else {
		return model.Accuracy(pred, y)
	}
}

// Probabilities returns normalised class posteriors, columns ordered as Classes.
func (m *GaussianNB) Probabilities(x [][]float64) ([][]float64, error) {
	if err := m.checkInput(x); err != nil {
		return nil, err
	}
	out := make([][]float64, len(x))
	for i, sample := range x {
		jll := m.jointLogLikelihood(sample)
		norm := floats.LogSumExp(jll)
		for c := range jll {
			jll[c] = math.Exp(jll[c] - norm)
		}
		out[i] = jll
	}
	return out, nil
}

func (m *GaussianNB) Classes() []int {
	if m.encoder == nil {
		return nil
	}
	return m.encoder.Classes()
}

func (m *GaussianNB) Priors() []float64 {
	return append([]float64(nil), m.priors...)
}

func (m *GaussianNB) Means() [][]float64 {
	return clone(m.means)
}

func (m *GaussianNB) Variances() [][]float64 {
	return clone(m.variances)
}

func clone(in [][]float64) [][]float64 {
	if in == nil {
		return nil
	}
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
