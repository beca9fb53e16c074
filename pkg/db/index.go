package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoURL = "mongodb://localhost:27017/classifiers"

// EnsureIndex creates model on the collection unless an index with the same name
// already exists.
func EnsureIndex(db *mongo.Database, ctx context.Context, collectionName string, model mongo.IndexModel) error {
	c := db.Collection(collectionName)

	idxs := c.Indexes()

	if model.Options == nil || model.Options.Name == nil {
		return fmt.Errorf("must provide a name for index")
	}
	expectedName := *model.Options.Name

	cur, err := idxs.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list indexes: %w", err)
	}
	defer cur.Close(ctx)

	found := false
	for cur.Next(ctx) {
		var d bson.M

		if err := cur.Decode(&d); err != nil {
			return fmt.Errorf("unable to decode bson index document: %w", err)
		}

		if name, ok := d["name"].(string); ok && name == expectedName {
			found = true
			break
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("unable to iterate indexes: %w", err)
	}

	if found {
		return nil
	}

	_, err = idxs.CreateOne(ctx, model)
	return err
}

// DatabaseName returns the database named in the path of mongoURL.
func DatabaseName(mongoURL string) (string, error) {
	uri, err := url.Parse(mongoURL)
	if err != nil {
		return "", err
	}
	dbName := strings.Trim(uri.Path, "/")
	if dbName == "" {
		dbName = "classifiers"
	}
	return dbName, nil
}

func ConnectMongo(ctx context.Context) (*mongo.Database, error) {
	registry := bson.NewRegistry()
	registry.RegisterTypeMapEntry(0x03, reflect.TypeOf(bson.M{}))

	mongoUrl := os.Getenv("MONGO_URL")
	if mongoUrl == "" {
		mongoUrl = defaultMongoURL
	}

	dbName, err := DatabaseName(mongoUrl)
	if err != nil {
		return nil, err
	}

	if client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUrl).SetRegistry(registry)); err != nil {
		return nil, err
	} else {
		return client.Database(dbName), nil
	}
}
