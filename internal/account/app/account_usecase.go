package app

import (
	"context"

	"farm_market_service/internal/account/domain"
	"farm_market_service/internal/account/repository"
	"farm_market_service/pkg/encrypt"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"

	"github.com/google/uuid"
)

// AccountUseCase definition account usecase
type AccountUseCase struct {
	accountRepo repository.AccountRepository
}

// NewAccountUseCase create a AccountUseCase
func NewAccountUseCase(accountRepo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// GetByAccountID 依帳號 ID 取得帳號資料
func (uc *AccountUseCase) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := uc.accountRepo.FindByAccount(ctx, &domain.AccountQuery{AccountID: &accountID})
	if err != nil {
		logger.Log.Error("find account fail : " + err.Error())
		return nil, errprocess.Set("find account fail")
	}
	if account == nil {
		return nil, errprocess.NotFound("account not found")
	}
	return account, nil
}

// SetAccountStatus 後台停用或恢復帳號
func (uc *AccountUseCase) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.Account, error) {
	account, err := uc.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Status = status
	if err := uc.accountRepo.UpdateAccountStatus(ctx, account); err != nil {
		logger.Log.Error("update account status fail : " + err.Error())
		return nil, errprocess.Set("update account status fail")
	}
	return account, nil
}

// EnsureAdmin 建立管理員帳號，已存在同 email 時不重複建立
func (uc *AccountUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.Account, bool, error) {
	existing, err := uc.accountRepo.FindByAccount(ctx, &domain.AccountQuery{Email: &email})
	if err != nil {
		logger.Log.Error("find account fail : " + err.Error())
		return nil, false, errprocess.Set("find account fail")
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := encrypt.ValidatePasswordStrength(password); err != nil {
		return nil, false, errprocess.Validation(err.Error())
	}
	hashed, err := encrypt.HashPassword(password)
	if err != nil {
		logger.Log.Error("hash password fail : " + err.Error())
		return nil, false, errprocess.Set("hash password fail")
	}

	account := &domain.Account{
		AccountID: uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      "admin",
		Status:    domain.AccountStatusActive,
	}
	if err := uc.accountRepo.CreateAccount(ctx, account); err != nil {
		logger.Log.Error("create account fail : " + err.Error())
		return nil, false, errprocess.Set("create account fail")
	}
	return account, true, nil
}
