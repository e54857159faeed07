package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

const actionLogCollection = "dag_action_logs"

// MongoActionLogRepository persists and queries audit records of mutating
// DAG actions.
type MongoActionLogRepository struct {
	coll *mongo.Collection
}

func NewActionLogRepository(db *mongo.Database) *MongoActionLogRepository {
	return &MongoActionLogRepository{coll: db.Collection(actionLogCollection)}
}

type mongoActionLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	DagID      string             `bson:"dag_id"`
	ActionType string             `bson:"action_type"`
	Details    string             `bson:"action_details,omitempty"`
	Timestamp  int64              `bson:"timestamp"`
	Success    bool               `bson:"success"`
	RunID      string             `bson:"run_id,omitempty"`
}

func (r *MongoActionLogRepository) Insert(ctx context.Context, entry *domain.ActionLog) error {
	doc := mongoActionLog{
		Username:   entry.Username,
		DagID:      entry.DagID,
		ActionType: string(entry.ActionType),
		Details:    entry.Details,
		Timestamp:  entry.Timestamp.Unix(),
		Success:    entry.Success,
		RunID:      entry.RunID,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert action log: %w", err)
	}
	return nil
}

// userFilter narrows a query to one user's records; "" selects everyone.
func userFilter(base bson.M, username string) bson.M {
	if username != "" {
		base["username"] = username
	}
	return base
}

func (r *MongoActionLogRepository) FindPage(ctx context.Context, username string, page, size int) (*domain.ActionLogPage, error) {
	filter := userFilter(bson.M{}, username)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count action logs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	logs, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &domain.ActionLogPage{
		Logs:       logs,
		TotalCount: total,
		Page:       page,
		Size:       size,
	}, nil
}

func (r *MongoActionLogRepository) FindByDag(ctx context.Context, dagID, username string) ([]domain.ActionLog, error) {
	filter := userFilter(bson.M{"dag_id": dagID}, username)
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
}

func (r *MongoActionLogRepository) FindByType(ctx context.Context, actionType, username string) ([]domain.ActionLog, error) {
	filter := userFilter(bson.M{"action_type": actionType}, username)
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
}

func (r *MongoActionLogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.ActionLog, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find action logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := make([]domain.ActionLog, 0)
	for cursor.Next(ctx) {
		var doc mongoActionLog
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode action log: %w", err)
		}
		logs = append(logs, domain.ActionLog{
			ID:         doc.ID.Hex(),
			Username:   doc.Username,
			DagID:      doc.DagID,
			ActionType: domain.ActionType(doc.ActionType),
			Details:    doc.Details,
			Timestamp:  unixToTime(doc.Timestamp),
			Success:    doc.Success,
			RunID:      doc.RunID,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate action logs: %w", err)
	}
	return logs, nil
}
