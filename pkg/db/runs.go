package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grexie/classifiers/pkg/model"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RunsCollection = "runs"

// Run is the summary of one classifier evaluation.
type Run struct {
	ID              string             `bson:"_id"`
	Dataset         string             `bson:"dataset"`
	Classifier      string             `bson:"classifier"`
	Params          map[string]float64 `bson:"params"`
	Classes         []int              `bson:"classes"`
	Accuracy        float64            `bson:"accuracy"`
	ConfusionMatrix [][]int            `bson:"confusion_matrix"`
	Precision       []float64          `bson:"precision"`
	Recall          []float64          `bson:"recall"`
	F1              []float64          `bson:"f1"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func NewRun(dataset, classifier string, params map[string]float64, metrics model.ModelMetrics) Run {
	return Run{
		ID:              uuid.NewString(),
		Dataset:         dataset,
		Classifier:      classifier,
		Params:          params,
		Classes:         metrics.Classes,
		Accuracy:        metrics.Accuracy,
		ConfusionMatrix: metrics.ConfusionMatrix,
		Precision:       metrics.ClassPrecision,
		Recall:          metrics.ClassRecall,
		F1:              metrics.F1Scores,
		CreatedAt:       time.Now().UTC().Truncate(time.Millisecond),
	}
}

func SaveRun(ctx context.Context, db *mongo.Database, run Run) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("dataset_created_at"),
	}
	if err := EnsureIndex(db, ctx, RunsCollection, index); err != nil {
		return fmt.Errorf("failed to ensure runs index: %w", err)
	}

	if _, err := WithTransaction(db, ctx, func(ctx context.Context) (any, error) {
		return db.Collection(RunsCollection).InsertOne(ctx, run)
	}); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	log.Info().
		Str("id", run.ID).
		Str("dataset", run.Dataset).
		Str("classifier", run.Classifier).
		Float64("accuracy", run.Accuracy).
		Msg("stored run")
	return nil
}
