package connector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/datamodel"
)

type mongoConnector struct {
	client *mongo.Client
	log    zerolog.Logger
}

func connectMongo(ctx context.Context, desc credentials.Mongo, log zerolog.Logger) (*mongoConnector, error) {
	log.Debug().Str("database", desc.Database).Bool("auth_source", credentials.HasAuthSource(desc.URI)).Msg("connecting to mongodb")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(desc.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &mongoConnector{client: client, log: log}, nil
}

func (c *mongoConnector) ListSchemas(ctx context.Context) ([]string, error) {
	names, err := c.client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	var out []string
	for _, name := range names {
		if name == "admin" || name == "local" || name == "config" {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Introspect treats collections as models. Field structure is inferred by
// sampling a single document per collection; collections with no documents
// yield a model with only the _id field.
func (c *mongoConnector) Introspect(ctx context.Context, database string) (*datamodel.Datamodel, error) {
	c.log.Debug().Str("database", database).Msg("introspecting mongodb database")

	db := c.client.Database(database)
	collections, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(collections)

	dm := &datamodel.Datamodel{}
	for _, coll := range collections {
		fields, err := c.sampleFields(ctx, db, coll)
		if err != nil {
			return nil, err
		}
		dm.Models = append(dm.Models, datamodel.Model{Name: coll, Fields: fields})
	}
	return dm, nil
}

func (c *mongoConnector) sampleFields(ctx context.Context, db *mongo.Database, collection string) ([]datamodel.Field, error) {
	var doc bson.D
	err := db.Collection(collection).FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []datamodel.Field{{Name: "_id", Type: datamodel.TypeString, IsID: true}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sample collection %s: %w", collection, err)
	}

	var fields []datamodel.Field
	for _, elem := range doc {
		fields = append(fields, datamodel.Field{
			Name: elem.Key,
			Type: mapBSONType(elem.Value),
			IsID: elem.Key == "_id",
		})
	}
	return fields, nil
}

func mapBSONType(value any) string {
	switch value.(type) {
	case int32, int64, int:
		return datamodel.TypeInt
	case float32, float64, primitive.Decimal128:
		return datamodel.TypeFloat
	case bool:
		return datamodel.TypeBoolean
	case primitive.DateTime, time.Time, primitive.Timestamp:
		return datamodel.TypeDateTime
	case primitive.D, primitive.M, primitive.A:
		return datamodel.TypeJSON
	case primitive.Binary:
		return datamodel.TypeBytes
	default:
		return datamodel.TypeString
	}
}

func (c *mongoConnector) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
