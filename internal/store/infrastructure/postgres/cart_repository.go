package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/database"
	"github.com/Lexv0lk/coin-shop/internal/store/domain"
	"github.com/jackc/pgx/v5"
)

const selectCartSQL = `SELECT i.id, i.name, i.price, i.stock, i.image_ref, i.category_id, c.name, i.payload, l.quantity
	FROM cart_lines l
	JOIN items i ON i.id = l.item_id
	JOIN categories c ON c.id = i.category_id
	WHERE l.user_id = $1
	ORDER BY i.id`

type CartRepository struct {
	queryExecuter database.QueryExecuter
	timeout       time.Duration
}

func NewCartRepository(queryExecuter database.QueryExecuter, timeout time.Duration) *CartRepository {
	return &CartRepository{
		queryExecuter: queryExecuter,
		timeout:       timeout,
	}
}

// AddLine puts one unit of the item into the cart, incrementing an existing line.
func (cr *CartRepository) AddLine(ctx context.Context, userID int64, itemID int64) (domain.CartLine, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	sql := `INSERT INTO cart_lines (user_id, item_id, quantity) VALUES ($1, $2, 1)
		ON CONFLICT (user_id, item_id) DO UPDATE SET quantity = cart_lines.quantity + 1
		RETURNING quantity`

	line := domain.CartLine{UserID: userID, ItemID: itemID}
	err := cr.queryExecuter.QueryRow(ctx, sql, userID, itemID).Scan(&line.Quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.CartLine{}, &domain.ItemNotFoundError{ItemID: itemID}
		}

		return domain.CartLine{}, storeError("add cart line", fmt.Errorf("failed to add cart line: %w", err))
	}

	return line, nil
}

func (cr *CartRepository) ListCart(ctx context.Context, userID int64) ([]domain.CartEntry, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	entries, err := listCart(ctx, cr.queryExecuter, userID, false)
	return entries, storeError("list cart", err)
}

func listCart(ctx context.Context, querier database.Querier, userID int64, forUpdate bool) ([]domain.CartEntry, error) {
	sql := selectCartSQL
	if forUpdate {
		sql += ` FOR UPDATE OF l, i`
	}

	rows, err := querier.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.CartEntry, 0)
	for rows.Next() {
		entry, err := scanCartEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// clearCart removes only the given lines so that a line added after the
// cart was locked survives the checkout.
func clearCart(ctx context.Context, executor database.Executor, userID int64, itemIDs []int64) error {
	_, err := executor.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1 AND item_id = ANY($2)`, userID, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func scanCartEntry(rows pgx.Rows) (domain.CartEntry, error) {
	var entry domain.CartEntry
	err := rows.Scan(&entry.Item.ID, &entry.Item.Name, &entry.Item.Price, &entry.Item.Stock, &entry.Item.ImageRef,
		&entry.Item.CategoryID, &entry.Item.CategoryName, &entry.Item.Payload, &entry.Quantity)
	entry.UnitPrice = entry.Item.Price
	return entry, err
}
