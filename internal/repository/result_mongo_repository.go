package repository

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoResultRepository struct {
	coll *mongo.Collection
}

func NewMongoResultRepository(client *mongo.Client, database, collection string) *MongoResultRepository {
	return &MongoResultRepository{coll: client.Database(database).Collection(collection)}
}

func (r *MongoResultRepository) Backend() string {
	return util.BackendMongo
}

// EnsureHeader 文档存储没有表头，这里只建立按写入顺序读取所需的索引
func (r *MongoResultRepository) EnsureHeader(ctx context.Context) error {
	return instrument(ctx, r.Backend(), "ensure_index", func(ctx context.Context) error {
		_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		})
		return err
	})
}

func (r *MongoResultRepository) AppendRow(ctx context.Context, rec *model.ResultRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return instrument(ctx, r.Backend(), "append_row", func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, rec)
		return err
	})
}

func (r *MongoResultRepository) ReadAll(ctx context.Context) ([]model.ResultRecord, error) {
	var records []model.ResultRecord
	err := instrument(ctx, r.Backend(), "read_all", func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
		cursor, err := r.coll.Find(ctx, bson.D{}, opts)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &records)
	})
	return records, err
}

func (r *MongoResultRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
