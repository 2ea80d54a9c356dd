package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/jackc/pgx/v5"
)

type AccountsRepository struct {
	queryExecuter database.QueryExecuter
	timeout       time.Duration
}

func NewAccountsRepository(queryExecuter database.QueryExecuter, timeout time.Duration) *AccountsRepository {
	return &AccountsRepository{
		queryExecuter: queryExecuter,
		timeout:       timeout,
	}
}

func (ar *AccountsRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := bounded(ctx, ar.timeout)
	defer cancel()

	sql := `SELECT balance FROM accounts WHERE user_id = $1`

	var balance int64
	err := ar.queryExecuter.QueryRow(ctx, sql, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}

		return 0, storeError("get balance", fmt.Errorf("failed to fetch balance: %w", err))
	}

	return balance, nil
}

func (ar *AccountsRepository) Debit(ctx context.Context, userID int64, amount int64) error {
	ctx, cancel := bounded(ctx, ar.timeout)
	defer cancel()

	return storeError("debit", debit(ctx, ar.queryExecuter, userID, amount))
}

func (ar *AccountsRepository) Credit(ctx context.Context, userID int64, amount int64) error {
	if err := domain.RequirePositive("credit amount", amount); err != nil {
		return err
	}

	ctx, cancel := bounded(ctx, ar.timeout)
	defer cancel()

	sql := `INSERT INTO accounts (user_id, balance) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`

	_, err := ar.queryExecuter.Exec(ctx, sql, userID, amount)
	if err != nil {
		return storeError("credit", fmt.Errorf("failed to credit account: %w", err))
	}

	return nil
}

func ensureAccount(ctx context.Context, executor database.Executor, userID int64) error {
	sql := `INSERT INTO accounts (user_id, balance) VALUES ($1, 0) ON CONFLICT (user_id) DO NOTHING`

	_, err := executor.Exec(ctx, sql, userID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func lockAccount(ctx context.Context, querier database.Querier, userID int64) (int64, error) {
	sql := `SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`

	var balance int64
	err := querier.QueryRow(ctx, sql, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to lock account: %w", err)
	}

	return balance, nil
}

// debit never lets the balance go below zero.
func debit(ctx context.Context, queryExecuter database.QueryExecuter, userID int64, amount int64) error {
	if err := domain.RequirePositive("debit amount", amount); err != nil {
		return err
	}

	sql := `UPDATE accounts SET balance = balance - $1 WHERE user_id = $2 AND balance >= $1`

	tag, err := queryExecuter.Exec(ctx, sql, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit account: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	var balance int64
	err = queryExecuter.QueryRow(ctx, `SELECT balance FROM accounts WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	return &domain.InsufficientFundsError{Required: amount, Balance: balance}
}
