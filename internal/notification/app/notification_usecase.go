package app

import (
	"context"
	"time"

	"farm_market_service/internal/notification/domain"
	"farm_market_service/internal/notification/repository"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"
)

// defaultListLimit 通知列表預設筆數
const defaultListLimit = 20

// NotificationUseCase definition admin notification usecase
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase create a NotificationUseCase
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List 列出後台通知
func (uc *NotificationUseCase) List(ctx context.Context, unreadOnly bool, limit, skip int64) ([]domain.AdminNotification, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}
	notifications, total, err := uc.repo.List(ctx, unreadOnly, limit, skip)
	if err != nil {
		logger.Log.Error("list notifications fail : " + err.Error())
		return nil, 0, errprocess.Set("list notifications fail")
	}
	if notifications == nil {
		notifications = []domain.AdminNotification{}
	}
	return notifications, total, nil
}

// MarkRead 將單筆通知標為已讀
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	matched, err := uc.repo.MarkRead(ctx, id, time.Now())
	if err != nil {
		logger.Log.Error("mark notification read fail : " + err.Error())
		return errprocess.Set("mark notification read fail")
	}
	if !matched {
		return errprocess.NotFound("notification not found")
	}
	return nil
}

// MarkAllRead 將全部通知標為已讀，回傳筆數
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) (int64, error) {
	modified, err := uc.repo.MarkAllRead(ctx, time.Now())
	if err != nil {
		logger.Log.Error("mark all notifications read fail : " + err.Error())
		return 0, errprocess.Set("mark all notifications read fail")
	}
	return modified, nil
}

// Delete 刪除單筆通知
func (uc *NotificationUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		logger.Log.Error("delete notification fail : " + err.Error())
		return errprocess.Set("delete notification fail")
	}
	if !deleted {
		return errprocess.NotFound("notification not found")
	}
	return nil
}

// CountUnread 未讀通知數
func (uc *NotificationUseCase) CountUnread(ctx context.Context) (int64, error) {
	count, err := uc.repo.CountUnread(ctx)
	if err != nil {
		logger.Log.Error("count unread notifications fail : " + err.Error())
		return 0, errprocess.Set("count unread notifications fail")
	}
	return count, nil
}
