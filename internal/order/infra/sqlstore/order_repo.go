package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/printshop/internal/order/app"
	"github.com/dwikikusuma/printshop/internal/order/domain"
)

type OrderRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db, now: time.Now}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

const insertOrder = `INSERT INTO orders (
	id, owner_id, status, currency, shipping_option, payment_method, shipping_address,
	subtotal_amount, vat_amount, shipping_amount, total_amount, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertOrderItem = `INSERT INTO order_items (
	id, order_id, item_id, slug, name, configuration, files,
	unit_amount, quantity, line_total_amount, position
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	created := order
	created.ID = uuid.NewString()
	now := r.now().UTC().Truncate(time.Millisecond)
	created.CreatedAt, created.UpdatedAt = now, now

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode address: %w", err)
	}

	err = r.execTX(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertOrder,
			created.ID, created.OwnerID, created.Status, created.Currency,
			created.ShippingOption, created.PaymentMethod, string(address),
			created.SubTotalAmount, created.VATAmount, created.ShippingAmount, created.TotalAmount,
			now.UnixMilli(), now.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]domain.OrderItem, 0, len(order.OrderItems))
		for i, item := range order.OrderItems {
			expected := item.UnitAmount * item.Quantity
			if item.LineTotalAmount != expected {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			cfg, err := json.Marshal(item.Configuration)
			if err != nil {
				return fmt.Errorf("item %d: encode configuration: %w", i, err)
			}
			files := item.Files
			if files == nil {
				files = []domain.File{}
			}
			filesJSON, err := json.Marshal(files)
			if err != nil {
				return fmt.Errorf("item %d: encode files: %w", i, err)
			}

			item.ID = uuid.NewString()
			item.OrderID = created.ID
			item.Files = files
			_, err = tx.ExecContext(ctx, insertOrderItem,
				item.ID, item.OrderID, item.ItemID, item.Slug, item.Name,
				string(cfg), string(filesJSON),
				item.UnitAmount, item.Quantity, item.LineTotalAmount, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
			items = append(items, item)
		}

		created.OrderItems = items
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

const selectOrder = `SELECT id, owner_id, status, currency, shipping_option, payment_method,
	shipping_address, subtotal_amount, vat_amount, shipping_amount, total_amount,
	created_at, updated_at
FROM orders`

func (r *OrderRepo) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrder+` WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	if o.OrderItems, err = r.items(ctx, o.ID); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrder+` WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Items are read after the cursor is closed; sqlite runs on one connection.
	_ = rows.Close()

	for i := range orders {
		if orders[i].OrderItems, err = r.items(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, item_id, slug, name, configuration, files,
	unit_amount, quantity, line_total_amount
FROM order_items WHERE order_id = ? ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var (
			it         domain.OrderItem
			cfg, files string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemID, &it.Slug, &it.Name, &cfg, &files,
			&it.UnitAmount, &it.Quantity, &it.LineTotalAmount); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if err := json.Unmarshal([]byte(cfg), &it.Configuration); err != nil {
			return nil, fmt.Errorf("decode configuration: %w", err)
		}
		if err := json.Unmarshal([]byte(files), &it.Files); err != nil {
			return nil, fmt.Errorf("decode files: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (domain.Order, error) {
	var (
		o                domain.Order
		address          string
		created, updated int64
	)
	err := s.Scan(&o.ID, &o.OwnerID, &o.Status, &o.Currency, &o.ShippingOption, &o.PaymentMethod,
		&address, &o.SubTotalAmount, &o.VATAmount, &o.ShippingAmount, &o.TotalAmount,
		&created, &updated)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal([]byte(address), &o.ShippingAddress); err != nil {
		return domain.Order{}, fmt.Errorf("decode address: %w", err)
	}
	o.CreatedAt = time.UnixMilli(created).UTC()
	o.UpdatedAt = time.UnixMilli(updated).UTC()
	return o, nil
}

var _ app.OrderRepo = (*OrderRepo)(nil)
