package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
)

// LoadCSV parses a CSV file whose last column is the class. Numeric columns
// become features. Numeric class values are kept as integer labels, any other
// class values are numbered in sorted order and kept as ClassNames.
func LoadCSV(path string, hasHeaders bool) (*Dataset, error) {
	instances, err := base.ParseCSVToInstances(path, hasHeaders)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fromInstances(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), instances)
}

func fromInstances(name string, instances *base.DenseInstances) (*Dataset, error) {
	attrs := base.NonClassFloatAttributes(instances)
	if len(attrs) == 0 {
		return nil, fmt.Errorf("%w: %s has no numeric feature columns", ErrInvalidShape, name)
	}
	specs := base.ResolveAttributes(instances, attrs)

	_, rows := instances.Size()
	d := &Dataset{
		Name:         name,
		FeatureNames: make([]string, len(attrs)),
		Features:     make([][]float64, rows),
	}
	for j, attr := range attrs {
		d.FeatureNames[j] = attr.GetName()
	}

	classes := make([]string, rows)
	for i := range rows {
		row := make([]float64, len(specs))
		for j, attr := range specs {
			row[j] = base.UnpackBytesToFloat(instances.Get(attr, i))
		}
		d.Features[i] = row
		classes[i] = strings.TrimSpace(base.GetClass(instances, i))
	}

	d.Labels, d.ClassNames = encodeClasses(classes)

	log.Debug().
		Str("dataset", name).
		Int("rows", rows).
		Int("features", len(attrs)).
		Int("classes", len(slices.Compact(slices.Sorted(slices.Values(d.Labels))))).
		Msg("loaded dataset")

	return d, nil
}

func encodeClasses(classes []string) ([]int, []string) {
	labels := make([]int, len(classes))

	numeric := true
	for i, c := range classes {
		if v, err := strconv.ParseFloat(c, 64); err != nil {
			numeric = false
			break
		} else {
			labels[i] = int(math.Round(v))
		}
	}
	if numeric {
		return labels, nil
	}

	names := slices.Clone(classes)
	slices.Sort(names)
	names = slices.Compact(names)
	for i, c := range classes {
		labels[i], _ = slices.BinarySearch(names, c)
	}
	return labels, names
}
