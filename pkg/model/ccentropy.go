package model

import (
	"fmt"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// CategoricalCrossEntropy is the mean over rows of -sum(target * log(pred)).
func CategoricalCrossEntropy(pred, target *gorgonia.Node) (*gorgonia.Node, error) {
	eps := 1e-7

	safePred, err := gorgonia.Add(pred, gorgonia.NewConstant(eps))
	if err != nil {
		return nil, fmt.Errorf("failed to add epsilon: %w", err)
	}

	logPred, err := gorgonia.Log(safePred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute log: %w", err)
	}

	losses, err := gorgonia.HadamardProd(target, logPred)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hadamard product: %w", err)
	}

	rowLosses, err := gorgonia.Sum(losses, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sum: %w", err)
	}

	meanLoss, err := gorgonia.Mean(rowLosses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}

	return gorgonia.Neg(meanLoss)
}

// LogLoss is the negated mean log-likelihood of y under the trained model.
func (m *LogisticRegression) LogLoss(x [][]float64, y []int) (float64, error) {
	if err := m.checkInput(x); err != nil {
		return 0, err
	}
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d samples but %d labels", ErrShapeMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return 0, ErrEmptyDataset
	}
	indices, err := m.encoder.Encode(y)
	if err != nil {
		return 0, err
	}
	numClasses := m.encoder.Len()

	g := gorgonia.NewGraph()
	probs, err := m.forward(g, appendBias(x))
	if err != nil {
		return 0, err
	}

	yVal := tensor.New(
		tensor.WithShape(len(y), numClasses),
		tensor.Of(tensor.Float64),
		tensor.WithBacking(FlattenOneHot(OneHotEncode(indices, numClasses))),
	)
	yTensor := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(len(y), numClasses),
		gorgonia.WithValue(yVal),
		gorgonia.WithName("y"))

	loss, err := CategoricalCrossEntropy(probs, yTensor)
	if err != nil {
		return 0, err
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()

	if err := vm.RunAll(); err != nil {
		return 0, fmt.Errorf("forward pass failed: %w", err)
	}

	return loss.Value().Data().(float64), nil
}
