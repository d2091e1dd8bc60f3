package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/printshop/internal/account/app"
	"github.com/dwikikusuma/printshop/internal/account/domain"
)

type AddressRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewAddressRepo(db *sql.DB) *AddressRepo {
	return &AddressRepo{db: db, now: time.Now}
}

const addressColumns = `id, owner_id, label, full_name, street, city, postal_code, country, phone, created_at`

func (r *AddressRepo) Create(ctx context.Context, a domain.Address) (domain.Address, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = r.now().UTC().Truncate(time.Millisecond)

	_, err := r.db.ExecContext(ctx, `INSERT INTO addresses (`+addressColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.Label, a.FullName, a.Street, a.City, a.PostalCode, a.Country, a.Phone,
		a.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return domain.Address{}, fmt.Errorf("insert address: %w", err)
	}
	return a, nil
}

func (r *AddressRepo) Get(ctx context.Context, ownerID, id string) (domain.Address, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+addressColumns+` FROM addresses WHERE owner_id = ? AND id = ?`, ownerID, id)
	a, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Address{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Address{}, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *AddressRepo) List(ctx context.Context, ownerID string) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+addressColumns+` FROM addresses WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := []domain.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AddressRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAddress(s scanner) (domain.Address, error) {
	var (
		a       domain.Address
		created int64
	)
	if err := s.Scan(&a.ID, &a.OwnerID, &a.Label, &a.FullName, &a.Street, &a.City,
		&a.PostalCode, &a.Country, &a.Phone, &created); err != nil {
		return domain.Address{}, err
	}
	a.CreatedAt = time.UnixMilli(created).UTC()
	return a, nil
}

var _ app.AddressRepo = (*AddressRepo)(nil)
