package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	orderdomain "github.com/ghuser/stockroom/services/order/domain"
	domainevents "github.com/ghuser/stockroom/services/order/domain/events"
	"github.com/ghuser/stockroom/services/order/domain/models"
)

const (
	listOrdersSQL = `SELECT id, title, supplier, order_date, items, created_at, updated_at
FROM orders ORDER BY created_at DESC, id`

	insertOrderSQL = `INSERT INTO orders (id, title, supplier, order_date, items, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateOrderSQL = `UPDATE orders SET title = $2, supplier = $3, order_date = $4, items = $5, updated_at = $6
WHERE id = $1`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`

	lockOrderIDsSQL = `SELECT id FROM orders FOR UPDATE`

	upsertOrderSQL = `INSERT INTO orders (id, title, supplier, order_date, items, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	supplier = EXCLUDED.supplier,
	order_date = EXCLUDED.order_date,
	items = EXCLUDED.items,
	created_at = EXCLUDED.created_at,
	updated_at = EXCLUDED.updated_at`
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
// Items are stored as a JSONB array on the order row.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository. When bus is non-nil every
// write publishes an OrdersChangedEvent inside its transaction.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// List returns every order, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.DB().QueryContext(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			o     models.Order
			items []byte
		)
		if err := rows.Scan(&o.ID, &o.Title, &o.Supplier, &o.Date, &items, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
		}
		if o.Items == nil {
			o.Items = []models.Item{}
		}
		o.Date = models.CalendarDate(o.Date)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// Insert persists a new order.
func (r *OrderRepository) Insert(ctx context.Context, order models.Order) error {
	args, err := orderArgs(order)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertOrderSQL, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("insert order %s: duplicate id", order.ID)
			}
			return fmt.Errorf("insert order: %w", err)
		}
		return r.publish(ctx, tx, domainevents.ChangeUpsert, []models.Order{order}, nil)
	})
}

// Update overwrites an existing order.
func (r *OrderRepository) Update(ctx context.Context, order models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateOrderSQL,
			order.ID, order.Title, order.Supplier, order.Date, items, order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if err := expectOneRow(res); err != nil {
			return err
		}
		return r.publish(ctx, tx, domainevents.ChangeUpsert, []models.Order{order}, nil)
	})
}

// Delete removes an order.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, deleteOrderSQL, id)
		if err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		if err := expectOneRow(res); err != nil {
			return err
		}
		return r.publish(ctx, tx, domainevents.ChangeDelete, nil, []uuid.UUID{id})
	})
}

// Restore rewrites the table to match dataset in one transaction. Existing
// rows are locked first so concurrent writers cannot interleave.
func (r *OrderRepository) Restore(ctx context.Context, dataset []models.Order) error {
	target := make(map[uuid.UUID]struct{}, len(dataset))
	upserts := make([][]any, len(dataset))
	for i, o := range dataset {
		target[o.ID] = struct{}{}
		args, err := orderArgs(o)
		if err != nil {
			return err
		}
		upserts[i] = args
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		existing, err := lockedIDs(ctx, tx)
		if err != nil {
			return err
		}

		var deleted []uuid.UUID
		for _, id := range existing {
			if _, keep := target[id]; keep {
				continue
			}
			if _, err := tx.ExecContext(ctx, deleteOrderSQL, id); err != nil {
				return fmt.Errorf("delete order %s: %w", id, err)
			}
			deleted = append(deleted, id)
		}
		for i, args := range upserts {
			if _, err := tx.ExecContext(ctx, upsertOrderSQL, args...); err != nil {
				return fmt.Errorf("upsert order %s: %w", dataset[i].ID, err)
			}
		}
		return r.publish(ctx, tx, domainevents.ChangeRestore, dataset, deleted)
	})
}

func lockedIDs(ctx context.Context, tx *sql.Tx) ([]uuid.UUID, error) {
	rows, err := tx.QueryContext(ctx, lockOrderIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("lock orders: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *OrderRepository) publish(ctx context.Context, tx *sql.Tx, change string, upserted []models.Order, deleted []uuid.UUID) error {
	if r.bus == nil {
		return nil
	}
	event := domainevents.OrdersChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Change:     change,
		Upserted:   make([]domainevents.OrderSummary, len(upserted)),
		Deleted:    deleted,
		OccurredAt: time.Now().UTC(),
	}
	for i, o := range upserted {
		event.Upserted[i] = domainevents.SummaryOf(o)
	}
	msg, err := events.NewJSONMessage(event.EventID.String(), event.Version, event)
	if err != nil {
		return err
	}
	if err := r.bus.PublishTx(ctx, tx, domainevents.TopicOrdersChanged, msg); err != nil {
		return fmt.Errorf("publish orders changed: %w", err)
	}
	return nil
}

func orderArgs(o models.Order) ([]any, error) {
	items := o.Items
	if items == nil {
		items = []models.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items of order %s: %w", o.ID, err)
	}
	return []any{o.ID, o.Title, o.Supplier, o.Date, raw, o.CreatedAt, o.UpdatedAt}, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return orderdomain.ErrOrderNotFound
	}
	return nil
}
