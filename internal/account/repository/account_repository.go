package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"farm_market_service/internal/account/domain"
)

// AccountRepository definition get Account info
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	UpdateAccountStatus(ctx context.Context, account *domain.Account) error
	FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error)
	// 其他 CRUD ...
}

type accountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository create a AccountRepository
func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO account(account_id, name, email, password, role) VALUES ($1, $2, $3, $4, $5)",
		account.AccountID, account.Name, account.Email, account.Password, account.Role)
	return err
}

func (r *accountRepository) UpdateAccountStatus(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, "UPDATE account SET status = $1 WHERE account_id = $2", account.Status, account.AccountID)
	return err
}

// FindByAccount 依條件查詢帳號，查不到回傳 nil,nil
func (r *accountRepository) FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error) {
	queryStr := "SELECT id, account_id, name, email, password, role, status FROM account WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if query.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *query.Email)
		paramCount++
	}
	if query.AccountID != nil {
		queryStr += fmt.Sprintf(" AND account_id = $%d", paramCount)
		params = append(params, *query.AccountID)
		paramCount++
	}
	if query.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *query.ID)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var account domain.Account
	err := row.Scan(&account.ID, &account.AccountID, &account.Name, &account.Email, &account.Password, &account.Role, &account.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
