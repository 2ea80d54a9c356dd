package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

type OrdersRepository struct {
	querier database.Querier
	timeout time.Duration
}

func NewOrdersRepository(querier database.Querier, timeout time.Duration) *OrdersRepository {
	return &OrdersRepository{
		querier: querier,
		timeout: timeout,
	}
}

// FetchUserOrders returns the user's orders, newest first.
func (orp *OrdersRepository) FetchUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	ctx, cancel := bounded(ctx, orp.timeout)
	defer cancel()

	sql := `SELECT id, user_id, item_name, total, COALESCE(coupon_code, ''), created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := orp.querier.Query(ctx, sql, userID)
	if err != nil {
		return nil, storeError("fetch orders", fmt.Errorf("failed to query orders: %w", err))
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.ItemName, &order.Total, &order.CouponCode, &order.CreatedAt); err != nil {
			return nil, storeError("fetch orders", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("fetch orders", err)
	}

	return orders, nil
}

func insertOrder(ctx context.Context, executor database.Executor, order domain.Order) error {
	sql := `INSERT INTO orders (id, user_id, item_name, total, coupon_code, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`

	_, err := executor.Exec(ctx, sql, order.ID, order.UserID, order.ItemName, order.Total, order.CouponCode, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}
