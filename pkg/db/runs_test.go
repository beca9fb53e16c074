package db

import (
	"context"
	"testing"

	"github.com/grexie/classifiers/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testMetrics() model.ModelMetrics {
	return model.ModelMetrics{
		Classes:         []int{0, 1},
		Accuracy:        0.75,
		ConfusionMatrix: [][]int{{2, 0}, {1, 1}},
		ClassPrecision:  []float64{2.0 / 3.0, 1},
		ClassRecall:     []float64{1, 0.5},
		F1Scores:        []float64{0.8, 2.0 / 3.0},
		Samples:         []int{2, 2},
	}
}

func TestNewRun(t *testing.T) {
	run := NewRun("iris", "logistic", map[string]float64{"learning_rate": 0.01}, testMetrics())

	assert.Len(t, run.ID, 36)
	assert.Equal(t, "iris", run.Dataset)
	assert.Equal(t, "logistic", run.Classifier)
	assert.Equal(t, 0.75, run.Accuracy)
	assert.Equal(t, [][]int{{2, 0}, {1, 1}}, run.ConfusionMatrix)
	assert.False(t, run.CreatedAt.IsZero())

	other := NewRun("iris", "logistic", nil, testMetrics())
	assert.NotEqual(t, run.ID, other.ID)
}

func TestDatabaseName(t *testing.T) {
	type test struct {
		url  string
		name string
	}

	tests := map[string]test{
		"path": {
			url:  "mongodb://localhost:27017/experiments",
			name: "experiments",
		},
		"no-path": {
			url:  "mongodb://localhost:27017",
			name: "classifiers",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dbName, err := DatabaseName(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.name, dbName)
		})
	}
}

func TestSaveRun(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates index and inserts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "classifiers.runs", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		run := NewRun("iris", "logistic", nil, testMetrics())
		require.NoError(mt, SaveRun(context.Background(), mt.DB, run))
	})

	mt.Run("reuses existing index", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "classifiers.runs", mtest.FirstBatch,
				bson.D{{Key: "name", Value: "dataset_created_at"}}),
			mtest.CreateSuccessResponse(),
		)

		run := NewRun("pima", "gaussian-nb", nil, testMetrics())
		require.NoError(mt, SaveRun(context.Background(), mt.DB, run))
	})

	mt.Run("insert failure", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "classifiers.runs", mtest.FirstBatch,
				bson.D{{Key: "name", Value: "dataset_created_at"}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		run := NewRun("pima", "gaussian-nb", nil, testMetrics())
		err := SaveRun(context.Background(), mt.DB, run)
		assert.Error(mt, err)
	})
}

func TestEnsureIndexRequiresName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing name", func(mt *mtest.T) {
		err := EnsureIndex(mt.DB, context.Background(), RunsCollection, mongoIndexWithoutName())
		assert.Error(mt, err)
	})
}

func mongoIndexWithoutName() mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: "dataset", Value: 1}}}
}
