package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/repository"
)

const orderColumns = `id, client_id, order_number, week_number, year, delivery_week, delivery_year,
	day_of_week, closure_days, delivery_instructions, products, total`

const orderOrdering = ` ORDER BY year DESC, week_number DESC, created_at DESC`

type OrderRepository struct {
	db *DB
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+orderColumns+` FROM orders`+orderOrdering); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return toOrders(rows)
}

func (r *OrderRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Order, error) {
	var rows []orderRow
	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE client_id = ?` + orderOrdering)
	if err := r.db.SelectContext(ctx, &rows, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list orders of client %s: %w", clientID, err)
	}
	return toOrders(rows)
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	var row orderRow
	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	order, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	row, err := newOrderRow(order)
	if err != nil {
		return err
	}
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES (:id, :client_id, :order_number, :week_number, :year, :delivery_week, :delivery_year,
		:day_of_week, :closure_days, :delivery_instructions, :products, :total)`
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		return nil
	})
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	row, err := newOrderRow(order)
	if err != nil {
		return err
	}
	query := `UPDATE orders SET client_id = :client_id, order_number = :order_number,
		week_number = :week_number, year = :year, delivery_week = :delivery_week,
		delivery_year = :delivery_year, day_of_week = :day_of_week, closure_days = :closure_days,
		delivery_instructions = :delivery_instructions, products = :products, total = :total
		WHERE id = :id`
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return expectOneRow(res)
	})
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM orders WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete order %s: %w", id, err)
		}
		return expectOneRow(res)
	})
}

func toOrders(rows []orderRow) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
