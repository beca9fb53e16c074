package dataset

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Blobs draws perCenter points from an isotropic Gaussian around every center.
// Rows are grouped by center and labelled with the center's index.
func Blobs(centers [][]float64, perCenter int, stddev float64, seed uint64) *Dataset {
	src := rand.NewSource(seed)

	d := &Dataset{
		Name:       "blobs",
		Features:   make([][]float64, 0, len(centers)*perCenter),
		Labels:     make([]int, 0, len(centers)*perCenter),
		ClassNames: make([]string, len(centers)),
	}
	if len(centers) > 0 {
		d.FeatureNames = make([]string, len(centers[0]))
		for j := range d.FeatureNames {
			d.FeatureNames[j] = fmt.Sprintf("x%d", j)
		}
	}

	for label, center := range centers {
		d.ClassNames[label] = fmt.Sprintf("blob-%d", label)
		for range perCenter {
			row := make([]float64, len(center))
			for j, c := range center {
				row[j] = distuv.Normal{Mu: c, Sigma: stddev, Src: src}.Rand()
			}
			d.Features = append(d.Features, row)
			d.Labels = append(d.Labels, label)
		}
	}
	return d
}
