package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grexie/classifiers/pkg/bayes"
	"github.com/grexie/classifiers/pkg/dataset"
	"github.com/grexie/classifiers/pkg/db"
	"github.com/grexie/classifiers/pkg/model"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/sync/errgroup"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

type evaluation struct {
	name       string
	classifier model.Classifier
	params     map[string]float64
	metrics    model.ModelMetrics
}

func loadDataset(ctx context.Context, config model.Config) (*dataset.Dataset, error) {
	switch {
	case config.Dataset == "blobs":
		centers := [][]float64{{0, 0}, {5, 5}, {0, 10}}
		return dataset.Blobs(centers, 100, 1, uint64(config.Seed)), nil
	case strings.HasSuffix(strings.ToLower(config.Dataset), ".csv"):
		return dataset.LoadCSV(config.Dataset, false)
	}

	source, err := dataset.Lookup(config.Dataset)
	if err != nil {
		return nil, err
	}

	cache, err := leveldb.OpenFile(config.CachePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset cache %s: %w", config.CachePath, err)
	}
	defer cache.Close()

	return dataset.NewFetcher(cache).Load(ctx, source)
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		env := "development"
		os.Setenv("ENV", env)
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if level, err := zerolog.ParseLevel(model.LogLevel()); err != nil {
		log.Fatal().Err(err).Str("level", model.LogLevel()).Msg("invalid CLASSIFY_LOG_LEVEL")
	} else {
		zerolog.SetGlobalLevel(level)
	}

	config := model.NewConfigFromDefaults()
	config.Write(os.Stdout, "Classifier Config")

	ctx := context.Background()

	ds, err := loadDataset(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Str("dataset", config.Dataset).Msg("failed to load dataset")
	}
	log.Info().Str("dataset", ds.Name).Int("samples", ds.Len()).Int("features", ds.Dims()).Msg("loaded dataset")

	train, test, err := dataset.Split(ds, config.TrainRatio, uint64(config.Seed))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to split dataset")
	}
	if config.Normalize {
		if _, err := dataset.Normalize(train, test); err != nil {
			log.Fatal().Err(err).Msg("failed to normalize dataset")
		}
	}

	pw := progress.NewWriter()
	pw.SetMessageLength(40)
	pw.SetNumTrackersExpected(1)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(15)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%2.0f%%"
	go pw.Render()

	logistic := model.NewLogisticRegression(config.Logistic).WithProgress(pw)
	nbParams := bayes.NewParamsFromDefaults()

	evaluations := []*evaluation{
		{
			name:       "logistic-regression",
			classifier: logistic,
			params: map[string]float64{
				"max_iterations": float64(logistic.Params().MaxIterations),
				"learning_rate":  logistic.Params().LearningRate,
			},
		},
		{
			name:       "gaussian-nb",
			classifier: bayes.NewGaussianNB(nbParams),
			params: map[string]float64{
				"var_smoothing": nbParams.VarSmoothing,
			},
		},
	}

	var g errgroup.Group
	for _, e := range evaluations {
		g.Go(func() error {
			start := time.Now()
			if err := e.classifier.Train(train.Features, train.Labels); err != nil {
				return fmt.Errorf("%s: %w", e.name, err)
			}
			metrics, err := model.Evaluate(e.classifier, test.Features, test.Labels)
			if err != nil {
				return fmt.Errorf("%s: %w", e.name, err)
			}
			metrics.ClassNames = ds.ClassNames
			e.metrics = metrics
			log.Info().Str("classifier", e.name).Dur("elapsed", time.Since(start)).Float64("accuracy", metrics.Accuracy).Msg("evaluated")
			return nil
		})
	}
	err = g.Wait()

	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	for _, e := range evaluations {
		if err := e.metrics.Write(os.Stdout, fmt.Sprintf("%s %s", ds.Name, e.name)); err != nil {
			log.Error().Err(err).Str("classifier", e.name).Msg("failed to render metrics")
		}
	}

	if _, ok := os.LookupEnv("MONGO_URL"); !ok {
		return
	}

	database, err := db.ConnectMongo(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer database.Client().Disconnect(ctx)

	for _, e := range evaluations {
		run := db.NewRun(ds.Name, e.name, e.params, e.metrics)
		if err := db.SaveRun(ctx, database, run); err != nil {
			log.Error().Err(err).Str("classifier", e.name).Msg("failed to store run")
		}
	}
}
