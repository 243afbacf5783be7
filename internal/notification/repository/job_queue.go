package repository

import (
	"encoding/json"
	"fmt"

	"farm_market_service/internal/notification/domain"
	"farm_market_service/pkg/database"

	"github.com/streadway/amqp"
)

// JobQueue definition notification job producer
type JobQueue interface {
	Enqueue(job domain.NotificationJob) error
}

type jobQueue struct {
	rabbit database.RabbitRepo
}

// NewJobQueue 宣告 durable queue 並回傳 producer
func NewJobQueue(rabbit database.RabbitRepo) (JobQueue, error) {
	_, err := rabbit.GetRabbit().QueueDeclare(
		domain.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("宣告通知 queue 失敗: %w", err)
	}
	return &jobQueue{rabbit: rabbit}, nil
}

func (q *jobQueue) Enqueue(job domain.NotificationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("通知工作 JSON 序列化失敗: %w", err)
	}
	return q.rabbit.Publish(
		"",               // 預設 exchange
		domain.QueueName, // queue 名稱
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         data,
		},
	)
}
