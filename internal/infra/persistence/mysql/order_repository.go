package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return nil, fmt.Errorf("marshal order lines: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO orders (
            id, cart_id, status, lines, total,
            customer_name, email, address, phone, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, o.ID, o.CartID, o.Status, lines, o.Total,
		o.CustomerName, o.Email, o.Address, o.Phone, o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domorder.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, cart_id, status, lines, total,
               customer_name, email, address, phone, created_at
        FROM orders ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domorder.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, cart_id, status, lines, total,
               customer_name, email, address, phone, created_at
        FROM orders WHERE id = ?
    `, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func scanOrder(row rowScanner) (*domorder.Order, error) {
	var (
		o     domorder.Order
		lines []byte
	)
	if err := row.Scan(
		&o.ID, &o.CartID, &o.Status, &lines, &o.Total,
		&o.CustomerName, &o.Email, &o.Address, &o.Phone, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal lines for order %s: %w", o.ID, err)
		}
	}
	if o.Lines == nil {
		o.Lines = []domcart.Line{}
	}
	return &o, nil
}
