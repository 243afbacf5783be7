package repository

import (
	"context"
	"time"

	"farm_market_service/internal/notification/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository definition admin notification store
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.AdminNotification) error
	List(ctx context.Context, unreadOnly bool, limit, skip int64) ([]domain.AdminNotification, int64, error)
	MarkRead(ctx context.Context, id string, at time.Time) (bool, error)
	MarkAllRead(ctx context.Context, at time.Time) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountUnread(ctx context.Context) (int64, error)
}

type notificationRepository struct {
	coll *mongo.Collection
}

// NewNotificationRepository create a NotificationRepository
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{coll: db.Collection("admin_notifications")}
}

func (r *notificationRepository) Insert(ctx context.Context, n *domain.AdminNotification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

// List 依建立時間新到舊列出通知
func (r *notificationRepository) List(ctx context.Context, unreadOnly bool, limit, skip int64) ([]domain.AdminNotification, int64, error) {
	filter := bson.M{}
	if unreadOnly {
		filter["read"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var notifications []domain.AdminNotification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string, at time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"read": true, "read_at": at}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, at time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": at}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"read": false})
}
