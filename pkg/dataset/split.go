package dataset

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Split shuffles the rows with a seeded generator and cuts them into a training
// and a testing partition.
func Split(d *Dataset, ratio float64, seed uint64) (*Dataset, *Dataset, error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, nil, fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	total := d.Len()
	count := int(math.Round(ratio * float64(total)))
	if count == 0 || count == total {
		return nil, nil, fmt.Errorf("%w: %d of %d rows for training", ErrEmptySplit, count, total)
	}

	r := rand.New(rand.NewSource(seed))
	indices := r.Perm(total)

	return d.subset(d.Name+"-train", indices[:count]), d.subset(d.Name+"-test", indices[count:]), nil
}
