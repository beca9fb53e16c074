package dataset

import (
	"fmt"
	"slices"
	"strings"
)

type Source struct {
	Name       string
	URL        string
	HasHeaders bool
}

var Sources = map[string]Source{
	"iris": {
		Name: "iris",
		URL:  "https://archive.ics.uci.edu/ml/machine-learning-databases/iris/iris.data",
	},
	"pima": {
		Name: "pima",
		URL:  "https://raw.githubusercontent.com/jbrownlee/Datasets/master/pima-indians-diabetes.data.csv",
	},
}

func Lookup(name string) (Source, error) {
	if s, ok := Sources[strings.ToLower(name)]; ok {
		return s, nil
	}
	names := make([]string, 0, len(Sources))
	for n := range Sources {
		names = append(names, n)
	}
	slices.Sort(names)
	return Source{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSource, name, strings.Join(names, ", "))
}
