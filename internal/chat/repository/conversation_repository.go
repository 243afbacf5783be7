package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farm_market_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository definition conversation store
type ConversationRepository interface {
	// FindOpenByParty 查詢該身份的未結案(pending/active)對話，沒有時返回 nil
	FindOpenByParty(ctx context.Context, party domain.Party) (*domain.Conversation, error)
	// FindByID 查詢單一對話，沒有時返回 nil
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	// Insert 建立新對話，回填 conv.ID
	Insert(ctx context.Context, conv *domain.Conversation) error
	// AppendUserMessage 追加參與者訊息並同步摘要欄位，status 強制 active，unread_count +1
	AppendUserMessage(ctx context.Context, id string, msg domain.ConversationMessage) (*domain.Conversation, error)
	// AppendAdminMessage 追加客服訊息並同步摘要欄位，status 由呼叫端決定
	AppendAdminMessage(ctx context.Context, id string, msg domain.ConversationMessage, status domain.ConversationStatus) (*domain.Conversation, error)
	// UpdateMeta 部分更新 status/priority/assigned_to/tags
	UpdateMeta(ctx context.Context, id string, patch domain.MetaPatch) (*domain.Conversation, error)
	// MarkAllRead 將未讀的參與者訊息標為已讀並歸零 unread_count，單次 update 完成
	MarkAllRead(ctx context.Context, id string, at time.Time) (bool, error)
	// List 依狀態過濾，lastMessageTime 倒序分頁
	List(ctx context.Context, status string, limit, skip int64) ([]domain.Conversation, int64, error)
	// Stats 各狀態統計加上整體數字
	Stats(ctx context.Context, onlineWindow time.Duration) (*domain.ChatStats, error)
}

type conversationRepository struct {
	coll *mongo.Collection
}

// NewMongoConversationRepository create a ConversationRepository
func NewMongoConversationRepository(db *mongo.Database) ConversationRepository {
	return &conversationRepository{
		coll: db.Collection("chat_conversations"),
	}
}

// identityFilter 對話身份過濾條件，user 與 guest 互斥
func identityFilter(party domain.Party) bson.M {
	if party.Kind == domain.PartyUser {
		return bson.M{"user_id": party.ID}
	}
	return bson.M{"guest_id": party.ID}
}

// openByPartyFilter 未結案對話的查詢條件
// resolved 不在查詢範圍，已結案的對話不會被新訊息重啟，而是另開新對話
func openByPartyFilter(party domain.Party) bson.M {
	filter := identityFilter(party)
	filter["status"] = bson.M{"$in": bson.A{domain.StatusPending, domain.StatusActive}}
	return filter
}

func (r *conversationRepository) FindOpenByParty(ctx context.Context, party domain.Party) (*domain.Conversation, error) {
	filter := openByPartyFilter(party)

	var conv domain.Conversation
	err := r.coll.FindOne(ctx, filter).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// 非法 id 視同查無資料
		return nil, nil
	}

	var conv domain.Conversation
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) Insert(ctx context.Context, conv *domain.Conversation) error {
	res, err := r.coll.InsertOne(ctx, conv)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		conv.ID = oid
	}
	return nil
}

// appendMessage 訊息追加與摘要更新走同一個 FindOneAndUpdate，
// 兩者永遠反映同一個事件，排序由 store 的 $push 順序決定
func (r *conversationRepository) appendMessage(ctx context.Context, id string, update bson.M) (*domain.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conv domain.Conversation
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) AppendUserMessage(ctx context.Context, id string, msg domain.ConversationMessage) (*domain.Conversation, error) {
	return r.appendMessage(ctx, id, bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"last_message":      msg.Message,
			"last_message_time": msg.CreatedAt,
			"status":            domain.StatusActive,
			"updated_at":        msg.CreatedAt,
		},
		"$inc": bson.M{"unread_count": 1},
	})
}

func (r *conversationRepository) AppendAdminMessage(ctx context.Context, id string, msg domain.ConversationMessage, status domain.ConversationStatus) (*domain.Conversation, error) {
	return r.appendMessage(ctx, id, bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"last_message":      msg.Message,
			"last_message_time": msg.CreatedAt,
			"status":            status,
			"updated_at":        msg.CreatedAt,
		},
	})
}

func (r *conversationRepository) UpdateMeta(ctx context.Context, id string, patch domain.MetaPatch) (*domain.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.AssignedTo != nil {
		set["assigned_to"] = *patch.AssignedTo
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var conv domain.Conversation
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// markAllReadUpdate 已讀掃描與 unread_count 歸零走同一個 update
func markAllReadUpdate(at time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"messages.$[m].read":    true,
			"messages.$[m].read_at": at,
			"unread_count":          0,
			"updated_at":            at,
		},
	}
}

// markAllReadArrayFilter 只掃未讀的參與者訊息，已讀訊息的 read_at 不會被後續呼叫改寫
func markAllReadArrayFilter() bson.M {
	return bson.M{"m.sender": domain.SenderUser, "m.read": false}
}

func (r *conversationRepository) MarkAllRead(ctx context.Context, id string, at time.Time) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	update := markAllReadUpdate(at)
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: bson.A{markAllReadArrayFilter()},
	})

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update, opts)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *conversationRepository) List(ctx context.Context, status string, limit, skip int64) ([]domain.Conversation, int64, error) {
	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"last_message_time": -1}).
		SetLimit(limit).
		SetSkip(skip)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	var conversations []domain.Conversation
	if err := cur.All(ctx, &conversations); err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

func (r *conversationRepository) Stats(ctx context.Context, onlineWindow time.Duration) (*domain.ChatStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_unread", Value: bson.D{{Key: "$sum", Value: "$unread_count"}}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}

	var breakdown []domain.StatusBreakdown
	if err := cur.All(ctx, &breakdown); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	active, err := r.coll.CountDocuments(ctx, bson.M{"status": domain.StatusActive})
	if err != nil {
		return nil, err
	}

	// 最近有訊息的 active 對話當作在線人數的近似值
	online, err := r.coll.CountDocuments(ctx, bson.M{
		"status":            domain.StatusActive,
		"last_message_time": bson.M{"$gte": time.Now().Add(-onlineWindow)},
	})
	if err != nil {
		return nil, err
	}

	return &domain.ChatStats{
		TotalConversations: total,
		ActiveChats:        active,
		OnlineUsers:        online,
		StatusBreakdown:    breakdown,
	}, nil
}
