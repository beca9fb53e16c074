package model

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

type ModelMetrics struct {
	Classes         []int
	ClassNames      []string
	Accuracy        float64
	ConfusionMatrix [][]int
	ClassPrecision  []float64
	ClassRecall     []float64
	F1Scores        []float64

	Samples []int
}

// Evaluate predicts x with a trained classifier and compares the result with y.
// Rows of the confusion matrix are actual classes, columns are predictions.
func Evaluate(clf Classifier, x [][]float64, y []int) (ModelMetrics, error) {
	predicted, err := clf.Predict(x)
	if err != nil {
		return ModelMetrics{}, err
	}
	if len(predicted) != len(y) {
		return ModelMetrics{}, fmt.Errorf("%w: %d predictions but %d labels", ErrShapeMismatch, len(predicted), len(y))
	}

	classes := append(clf.Classes(), y...)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	confusionMatrix := make([][]int, len(classes))
	for i := range confusionMatrix {
		confusionMatrix[i] = make([]int, len(classes))
	}
	for i, p := range predicted {
		confusionMatrix[index[y[i]]][index[p]]++
	}

	metrics := calculateMetrics(confusionMatrix, len(y))
	metrics.Classes = classes
	return metrics, nil
}

func calculateMetrics(confusionMatrix [][]int, total int) ModelMetrics {
	numClasses := len(confusionMatrix)
	metrics := ModelMetrics{
		ConfusionMatrix: confusionMatrix,
		ClassPrecision:  make([]float64, numClasses),
		ClassRecall:     make([]float64, numClasses),
		F1Scores:        make([]float64, numClasses),
		Samples:         make([]int, numClasses),
	}

	for i := range numClasses {
		for j := range numClasses {
			metrics.Samples[i] += confusionMatrix[i][j]
		}
	}

	// Calculate precision and recall for each class
	for i := range numClasses {
		truePositives := confusionMatrix[i][i]
		falsePositives := 0
		falseNegatives := 0

		for j := range numClasses {
			if i != j {
				falsePositives += confusionMatrix[j][i]
				falseNegatives += confusionMatrix[i][j]
			}
		}

		if truePositives+falsePositives > 0 {
			metrics.ClassPrecision[i] = float64(truePositives) / float64(truePositives+falsePositives)
		}

		if truePositives+falseNegatives > 0 {
			metrics.ClassRecall[i] = float64(truePositives) / float64(truePositives+falseNegatives)
		}

		if metrics.ClassPrecision[i]+metrics.ClassRecall[i] > 0 {
			metrics.F1Scores[i] = 2 * (metrics.ClassPrecision[i] * metrics.ClassRecall[i]) /
				(metrics.ClassPrecision[i] + metrics.ClassRecall[i])
		}
	}

	correct := 0
	for i := range numClasses {
		correct += confusionMatrix[i][i]
	}
	if total > 0 {
		metrics.Accuracy = float64(correct) / float64(total)
	}

	return metrics
}

func (m ModelMetrics) label(i int) string {
	c := m.Classes[i]
	if c >= 0 && c < len(m.ClassNames) {
		return m.ClassNames[c]
	}
	return strconv.Itoa(c)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func (m ModelMetrics) Write(w io.Writer, title string) error {
	numClasses := len(m.Classes)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s: Confusion Matrix", title))
	header := table.Row{""}
	for i := range numClasses {
		header = append(header, m.label(i))
	}
	t.AppendHeader(header)
	for i := range numClasses {
		row := table.Row{m.label(i)}
		if m.Samples[i] == 0 {
			for range numClasses {
				row = append(row, "")
			}
		} else {
			for j := range numClasses {
				row = append(row, fmt.Sprintf("%6.2f%%", 100*float64(m.ConfusionMatrix[i][j])/float64(m.Samples[i])))
			}
		}
		t.AppendRow(row)
	}
	footer := table.Row{"ACCURACY"}
	for range numClasses - 1 {
		footer = append(footer, "")
	}
	footer = append(footer, fmt.Sprintf("%0.02f%%", 100*m.Accuracy))
	t.AppendFooter(footer)
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s: Class Metrics", title))
	t.AppendHeader(table.Row{"CLASS", "PRECISION", "RECALL", "F1 SCORE", "SAMPLES"})
	total := 0
	for i := range numClasses {
		t.AppendRow(table.Row{
			m.label(i),
			fmt.Sprintf("%6.2f%%", 100*m.ClassPrecision[i]),
			fmt.Sprintf("%6.2f%%", 100*m.ClassRecall[i]),
			fmt.Sprintf("%6.2f%%", 100*m.F1Scores[i]),
			fmt.Sprintf("%d", m.Samples[i]),
		})
		total += m.Samples[i]
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{
		"",
		fmt.Sprintf("%6.2f%%", 100*mean(m.ClassPrecision)),
		fmt.Sprintf("%6.2f%%", 100*mean(m.ClassRecall)),
		fmt.Sprintf("%6.2f%%", 100*mean(m.F1Scores)),
		fmt.Sprintf("%d", total),
	})
	t.Render()

	return nil
}
