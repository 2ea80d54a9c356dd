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

const selectItemSQL = `SELECT i.id, i.name, i.price, i.stock, i.image_ref, i.category_id, c.name, i.payload
	FROM items i
	JOIN categories c ON c.id = i.category_id`

type CatalogRepository struct {
	queryExecuter database.QueryExecuter
	timeout       time.Duration
}

func NewCatalogRepository(queryExecuter database.QueryExecuter, timeout time.Duration) *CatalogRepository {
	return &CatalogRepository{
		queryExecuter: queryExecuter,
		timeout:       timeout,
	}
}

func (cr *CatalogRepository) GetItem(ctx context.Context, itemID int64) (domain.Item, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	item, err := getItem(ctx, cr.queryExecuter, itemID, false)
	return item, storeError("get item", err)
}

func (cr *CatalogRepository) ListItems(ctx context.Context, categoryID *int64) ([]domain.Item, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)

	if categoryID == nil {
		rows, err = cr.queryExecuter.Query(ctx, selectItemSQL+` ORDER BY i.id`)
	} else {
		rows, err = cr.queryExecuter.Query(ctx, selectItemSQL+` WHERE i.category_id = $1 ORDER BY i.id`, *categoryID)
	}
	if err != nil {
		return nil, storeError("list items", fmt.Errorf("failed to query items: %w", err))
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storeError("list items", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("list items", err)
	}

	return items, nil
}

func (cr *CatalogRepository) DecrementStock(ctx context.Context, itemID int64, quantity int64) error {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	return storeError("decrement stock", decrementStock(ctx, cr.queryExecuter, itemID, quantity))
}

func (cr *CatalogRepository) Restock(ctx context.Context, itemID int64, quantity int64) error {
	if err := domain.RequirePositive("restock quantity", quantity); err != nil {
		return err
	}

	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	sql := `UPDATE items SET stock = stock + $1 WHERE id = $2`
	tag, err := cr.queryExecuter.Exec(ctx, sql, quantity, itemID)
	if err != nil {
		return storeError("restock", fmt.Errorf("failed to restock item: %w", err))
	}

	if tag.RowsAffected() == 0 {
		return &domain.ItemNotFoundError{ItemID: itemID}
	}

	return nil
}

func (cr *CatalogRepository) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	// The no-op update makes RETURNING yield the existing row on conflict.
	sql := `INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var category domain.Category
	err := cr.queryExecuter.QueryRow(ctx, sql, name).Scan(&category.ID, &category.Name)
	if err != nil {
		return domain.Category{}, storeError("add category", fmt.Errorf("failed to add category: %w", err))
	}

	return category, nil
}

func (cr *CatalogRepository) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	sql := `SELECT id, name FROM categories WHERE name = $1`

	var category domain.Category
	err := cr.queryExecuter.QueryRow(ctx, sql, name).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, &domain.CategoryNotFoundError{Name: name}
		}

		return domain.Category{}, storeError("get category", fmt.Errorf("failed to find category: %w", err))
	}

	return category, nil
}

func (cr *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	rows, err := cr.queryExecuter.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, storeError("list categories", fmt.Errorf("failed to query categories: %w", err))
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, storeError("list categories", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("list categories", err)
	}

	return categories, nil
}

func (cr *CatalogRepository) AddItem(ctx context.Context, newItem domain.NewItem) (domain.Item, error) {
	ctx, cancel := bounded(ctx, cr.timeout)
	defer cancel()

	sql := `WITH inserted AS (
			INSERT INTO items (name, price, stock, image_ref, category_id, payload)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, name, price, stock, image_ref, category_id, payload
		)
		SELECT i.id, i.name, i.price, i.stock, i.image_ref, i.category_id, c.name, i.payload
		FROM inserted i
		JOIN categories c ON c.id = i.category_id`

	row := cr.queryExecuter.QueryRow(ctx, sql,
		newItem.Name, newItem.Price, newItem.Stock, newItem.ImageRef, newItem.CategoryID, newItem.Payload)

	item, err := scanItem(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Item{}, &domain.CategoryNotFoundError{Name: fmt.Sprintf("#%d", newItem.CategoryID)}
		}

		return domain.Item{}, storeError("add item", fmt.Errorf("failed to add item: %w", err))
	}

	return item, nil
}

func getItem(ctx context.Context, querier database.Querier, itemID int64, forUpdate bool) (domain.Item, error) {
	sql := selectItemSQL + ` WHERE i.id = $1`
	if forUpdate {
		sql += ` FOR UPDATE OF i`
	}

	item, err := scanItem(querier.QueryRow(ctx, sql, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, &domain.ItemNotFoundError{ItemID: itemID}
		}

		return domain.Item{}, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

// decrementStock removes quantity units or nothing at all.
func decrementStock(ctx context.Context, queryExecuter database.QueryExecuter, itemID int64, quantity int64) error {
	if err := domain.RequirePositive("decrement quantity", quantity); err != nil {
		return err
	}

	sql := `UPDATE items SET stock = stock - $1 WHERE id = $2 AND stock >= $1`

	tag, err := queryExecuter.Exec(ctx, sql, quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	var available int64
	err = queryExecuter.QueryRow(ctx, `SELECT stock FROM items WHERE id = $1`, itemID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ItemNotFoundError{ItemID: itemID}
		}

		return fmt.Errorf("failed to read stock: %w", err)
	}

	return &domain.OutOfStockError{ItemID: itemID, Available: available, Requested: quantity}
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Stock, &item.ImageRef,
		&item.CategoryID, &item.CategoryName, &item.Payload)
	return item, err
}
