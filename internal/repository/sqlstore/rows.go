package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/packdash/backend-go/internal/domain"
)

// orderRow is the storage shape of an order. Products and closure days are
// JSON text columns; a NULL products column marks a legacy order.
type orderRow struct {
	ID                   string         `db:"id"`
	ClientID             string         `db:"client_id"`
	OrderNumber          sql.NullString `db:"order_number"`
	WeekNumber           int            `db:"week_number"`
	Year                 int            `db:"year"`
	DeliveryWeek         sql.NullInt64  `db:"delivery_week"`
	DeliveryYear         sql.NullInt64  `db:"delivery_year"`
	DayOfWeek            sql.NullString `db:"day_of_week"`
	ClosureDays          sql.NullString `db:"closure_days"`
	DeliveryInstructions sql.NullString `db:"delivery_instructions"`
	Products             sql.NullString `db:"products"`
	Total                float64        `db:"total"`
}

func newOrderRow(o *domain.Order) (orderRow, error) {
	row := orderRow{
		ID:                   o.ID,
		ClientID:             o.ClientID,
		OrderNumber:          nullString(o.OrderNumber),
		WeekNumber:           o.WeekNumber,
		Year:                 o.Year,
		DeliveryWeek:         nullInt(o.DeliveryWeek),
		DeliveryYear:         nullInt(o.DeliveryYear),
		DayOfWeek:            nullString(o.DayOfWeek),
		DeliveryInstructions: nullString(o.DeliveryInstructions),
		Total:                o.Total,
	}

	if len(o.ClosureDays) > 0 {
		data, err := json.Marshal(o.ClosureDays)
		if err != nil {
			return orderRow{}, fmt.Errorf("encode closure days: %w", err)
		}
		row.ClosureDays = sql.NullString{String: string(data), Valid: true}
	}

	if o.Products != nil {
		data, err := json.Marshal(o.Products)
		if err != nil {
			return orderRow{}, fmt.Errorf("encode products: %w", err)
		}
		row.Products = sql.NullString{String: string(data), Valid: true}
	}

	return row, nil
}

func (r orderRow) toDomain() (domain.Order, error) {
	o := domain.Order{
		ID:                   r.ID,
		ClientID:             r.ClientID,
		OrderNumber:          r.OrderNumber.String,
		WeekNumber:           r.WeekNumber,
		Year:                 r.Year,
		DeliveryWeek:         int(r.DeliveryWeek.Int64),
		DeliveryYear:         int(r.DeliveryYear.Int64),
		DayOfWeek:            r.DayOfWeek.String,
		DeliveryInstructions: r.DeliveryInstructions.String,
		Total:                r.Total,
	}

	if r.ClosureDays.Valid && r.ClosureDays.String != "" {
		if err := json.Unmarshal([]byte(r.ClosureDays.String), &o.ClosureDays); err != nil {
			return domain.Order{}, fmt.Errorf("decode closure days of order %s: %w", r.ID, err)
		}
	}

	if r.Products.Valid {
		products := []domain.OrderProduct{}
		if err := json.Unmarshal([]byte(r.Products.String), &products); err != nil {
			return domain.Order{}, fmt.Errorf("decode products of order %s: %w", r.ID, err)
		}
		o.Products = products
	}

	return o, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
