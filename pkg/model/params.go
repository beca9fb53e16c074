package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
)

// Config collects every knob of an evaluation run.
type Config struct {
	Dataset      string
	TrainRatio   float64
	Seed         int
	Normalize    bool
	CachePath    string
	Logistic     Params
	VarSmoothing float64
}

func (c *Config) Write(w io.Writer, title string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"CLASSIFY_DATASET", c.Dataset},
		{"CLASSIFY_TRAIN_RATIO", fmt.Sprintf("%0.02f", c.TrainRatio)},
		{"CLASSIFY_SEED", fmt.Sprintf("%d", c.Seed)},
		{"CLASSIFY_NORMALIZE", fmt.Sprintf("%t", c.Normalize)},
		{"CLASSIFY_CACHE", c.CachePath},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"CLASSIFY_MAX_ITERATIONS", fmt.Sprintf("%d", c.Logistic.MaxIterations)},
		{"CLASSIFY_LEARNING_RATE", fmt.Sprintf("%.06f", c.Logistic.LearningRate)},
		{"CLASSIFY_VAR_SMOOTHING", fmt.Sprintf("%g", c.VarSmoothing)},
	})
	t.Render()
}

func NewParamsFromDefaults() Params {
	return Params{
		MaxIterations: MaxIterations(),
		LearningRate:  LearningRate(),
	}
}

func NewConfigFromDefaults() Config {
	return Config{
		Dataset:      Dataset(),
		TrainRatio:   TrainRatio(),
		Seed:         Seed(),
		Normalize:    Normalize(),
		CachePath:    CachePath(),
		Logistic:     NewParamsFromDefaults(),
		VarSmoothing: VarSmoothing(),
	}
}

func envInt(name string, def func() int, dec func(v int) int) func() int {
	return func() int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 32); err != nil {
				log.Fatal().Err(err).Str("env", name).Msg("failed to parse env")
			} else {
				value = int(v)
			}
		}
		return dec(value)
	}
}

func envFloat64(name string, def func() float64, dec func(v float64) float64) func() float64 {
	return func() float64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseFloat(v, 64); err != nil {
				log.Fatal().Err(err).Str("env", name).Msg("failed to parse env")
			} else {
				value = v
			}
		}
		return dec(value)
	}
}

func envBool(name string, def func() bool) func() bool {
	return func() bool {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseBool(v); err != nil {
				log.Fatal().Err(err).Str("env", name).Msg("failed to parse env")
			} else {
				value = v
			}
		}
		return value
	}
}

func envString(name string, def func() string) func() string {
	return func() string {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = v
		}
		return value
	}
}

var (
	Dataset   = envString("CLASSIFY_DATASET", func() string { return "iris" })
	CachePath = envString("CLASSIFY_CACHE", func() string { return filepath.Join(os.TempDir(), "classifiers-cache.db") })
	LogLevel  = envString("CLASSIFY_LOG_LEVEL", func() string { return "info" })
	Normalize = envBool("CLASSIFY_NORMALIZE", func() bool { return true })
)

var (
	TrainRatio = envFloat64("CLASSIFY_TRAIN_RATIO", func() float64 { return 0.7 }, BoundTrainRatio)
	Seed       = envInt("CLASSIFY_SEED", func() int { return 42 }, BoundSeed)
)

var (
	MaxIterations = envInt("CLASSIFY_MAX_ITERATIONS", func() int { return 100 }, BoundMaxIterations)
	LearningRate  = envFloat64("CLASSIFY_LEARNING_RATE", func() float64 { return 0.01 }, BoundLearningRate)
	VarSmoothing  = envFloat64("CLASSIFY_VAR_SMOOTHING", func() float64 { return 1e-9 }, BoundVarSmoothing)
)
