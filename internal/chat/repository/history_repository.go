package repository

import (
	"context"

	"farm_market_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryRepository definition widget-facing message log
// 存參與者自己的訊息與機器人回覆，與 Conversation 內嵌訊息互不影響
type HistoryRepository interface {
	Insert(ctx context.Context, msg *domain.HistoryMessage) error
	FindByParty(ctx context.Context, party domain.Party) ([]domain.HistoryMessage, error)
}

type historyRepository struct {
	coll *mongo.Collection
}

// NewMongoHistoryRepository create a HistoryRepository
func NewMongoHistoryRepository(db *mongo.Database) HistoryRepository {
	return &historyRepository{
		coll: db.Collection("chat_history"),
	}
}

func (r *historyRepository) Insert(ctx context.Context, msg *domain.HistoryMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *historyRepository) FindByParty(ctx context.Context, party domain.Party) ([]domain.HistoryMessage, error) {
	filter := identityFilter(party)

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var messages []domain.HistoryMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
