package domain

import (
	"time"

	"farm_market_service/pkg/encrypt"
)

// AccountStatus 用來表示帳號狀態
type AccountStatus int

// 状态: 0=active, 1=suspended, 2=delete
const (
	// AccountStatusActive 用來表示帳號狀態為啟用
	AccountStatusActive AccountStatus = iota
	// AccountStatusSuspended 用來表示帳號狀態為停用
	AccountStatusSuspended
	// AccountStatusDelete 用來表示帳號狀態為刪除
	AccountStatusDelete
)

// ParseAccountStatus 字串轉帳號狀態
func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch s {
	case "active":
		return AccountStatusActive, true
	case "suspended":
		return AccountStatusSuspended, true
	case "delete":
		return AccountStatusDelete, true
	}
	return AccountStatusActive, false
}

// Account 用來表示帳號
type Account struct {
	ID        int64
	AccountID string
	Name      string
	Email     string
	Password  string
	Role      string
	Status    AccountStatus
	CreatedAt time.Time
}

// IsPasswordMatch 密碼驗證
func (a *Account) IsPasswordMatch(inputPwd string) error {
	err := encrypt.CheckPassword(a.Password, inputPwd)
	return err
}

// IsAdmin 是否為管理員帳號
func (a *Account) IsAdmin() bool {
	return a.Role == "admin"
}

// AccountQuery join conditions are used to query accounts
type AccountQuery struct {
	ID        *int64  `db:"id"`
	AccountID *string `db:"account_id"`
	Email     *string `db:"email"`
}
