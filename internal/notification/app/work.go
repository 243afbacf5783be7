package app

import (
	"context"
	"encoding/json"
	"log"
	"time"

	chatdomain "farm_market_service/internal/chat/domain"
	chatrepo "farm_market_service/internal/chat/repository"
	"farm_market_service/internal/notification/domain"
	"farm_market_service/internal/notification/repository"
	"farm_market_service/pkg/logger"

	"github.com/streadway/amqp" // RabbitMQ 客戶端
)

// Consumer 定義一個消息消費者，將所有必要的依賴注入進來
type Consumer struct {
	rabbitChannel *amqp.Channel
	repo          repository.NotificationRepository
	pub           chatrepo.Publisher
	queueName     string
}

// NewConsumer 建構 Consumer 實例
func NewConsumer(rabbitChannel *amqp.Channel, repo repository.NotificationRepository, pub chatrepo.Publisher, queueName string) *Consumer {
	return &Consumer{
		rabbitChannel: rabbitChannel,
		repo:          repo,
		pub:           pub,
		queueName:     queueName,
	}
}

// StartConsumer 開始消費訊息，將通知工作落地並廣播給後台
func (c *Consumer) StartConsumer(ctx context.Context) {
	// 設定消費該 queue
	msgs, err := c.rabbitChannel.Consume(
		c.queueName, // 使用依賴注入進來的 queue name
		"",          // consumer tag，留空由系統分配
		false,       // autoAck 為 false，使用手動確認
		false,       // exclusive
		false,       // noLocal
		false,       // noWait
		nil,         // arguments
	)
	if err != nil {
		log.Fatalf("無法開始消費 RabbitMQ 訊息: %v", err)
	}

	log.Println("Consumer 已啟動，等待通知工作訊息...")

	// 持續監聽訊息
	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				log.Println("RabbitMQ 消費 channel 已關閉")
				return
			}

			var job domain.NotificationJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Printf("解析通知工作訊息失敗: %v", err)
				// 格式錯誤的訊息重排也不會成功，直接丟棄
				if err := d.Nack(false, false); err != nil {
					log.Printf("Nack 訊息失敗: %v", err)
				}
				continue
			}

			if err := c.processNotificationJob(ctx, job); err != nil {
				logger.Log.Errorf("處理通知工作失敗:", err)
				time.Sleep(10 * time.Second)
				if err := d.Nack(false, true); err != nil {
					log.Printf("Nack 訊息失敗: %v", err)
				}
				continue
			}

			if err := d.Ack(false); err != nil {
				log.Printf("確認訊息失敗: %v", err)
			}
		case <-ctx.Done():
			log.Println("Consumer 收到停止訊號")
			return
		}
	}
}

// processNotificationJob 將通知寫入資料庫，成功後廣播給線上的管理員
func (c *Consumer) processNotificationJob(ctx context.Context, job domain.NotificationJob) error {
	n := &domain.AdminNotification{
		Title:               job.Title,
		Message:             job.Message,
		Type:                job.Type,
		Priority:            job.Priority,
		Read:                false,
		RelatedConversation: job.RelatedConversation,
		RelatedTicket:       job.RelatedTicket,
		CreatedAt:           time.Now(),
	}
	if err := c.repo.Insert(ctx, n); err != nil {
		return err
	}

	// 廣播失敗只記 log，通知已落地
	if err := c.pub.Publish(chatdomain.AdminRoom, chatdomain.EventNotification, map[string]interface{}{
		"notification": n,
	}); err != nil {
		logger.Log.Warn("broadcast notification fail : " + err.Error())
	}
	return nil
}
