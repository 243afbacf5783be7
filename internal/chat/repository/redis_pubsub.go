package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"farm_market_service/internal/chat/domain"
	"farm_market_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Publisher definition room fan-out
// 送出即忘，不保證送達，呼叫端對錯誤只做 log
type Publisher interface {
	Publish(room, event string, payload map[string]interface{}) error
	Subscribe(ctx context.Context, room string, handler func(ev domain.ChatEvent)) error
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish 將事件封包序列化後，發布到指定房間
func (r *RedisPubSub) Publish(room, event string, payload map[string]interface{}) error {
	data, err := json.Marshal(domain.ChatEvent{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, room, data).Err()
}

// Subscribe 訂閱房間，收到事件後呼叫 handler 處理
func (r *RedisPubSub) Subscribe(ctx context.Context, room string, handler func(ev domain.ChatEvent)) error {
	sub := r.client.Subscribe(r.ctx, room)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var ev domain.ChatEvent
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					logger.Log.Error("chat event unmarshal err :", zap.String("err", err.Error()))
					continue
				}
				handler(ev)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", room))
				// ctx 被取消時退出循環並關閉訂閱
				sub.Close()
				return
			}
		}
	}()
	return nil
}
