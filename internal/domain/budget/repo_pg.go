package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentio/dentio/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the Postgres-backed budget repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const budgetCols = `id, patient_id, title, status, notes, created_at, updated_at`

func (r *repoPG) scanBudget(row pgx.Row) (*Budget, error) {
	var b Budget
	err := row.Scan(&b.ID, &b.PatientID, &b.Title, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

// withTx runs fn inside a transaction on the request's clinic-scoped
// connection, so header and items commit or roll back together. Outside a
// request (no connection in context) fn runs directly on the pool.
func (r *repoPG) withTx(ctx context.Context, fn func(conn queryable) error) error {
	tx, txCtx, err := db.WithTx(ctx)
	if err != nil {
		return fn(r.conn(ctx))
	}
	defer tx.Rollback(txCtx)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}

func (r *repoPG) Create(ctx context.Context, b *Budget) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return r.withTx(ctx, func(conn queryable) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO budget (id, patient_id, title, status, notes)
			VALUES ($1,$2,$3,$4,$5)`,
			b.ID, b.PatientID, b.Title, b.Status, b.Notes)
		if err != nil {
			return err
		}
		return r.insertItems(ctx, conn, b)
	})
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	b, err := r.scanBudget(r.conn(ctx).QueryRow(ctx, `SELECT `+budgetCols+` FROM budget WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	b.Items, err = r.loadItems(ctx, b.ID)
	return b, err
}

// Update rewrites the header and replaces the item set.
func (r *repoPG) Update(ctx context.Context, b *Budget) error {
	return r.withTx(ctx, func(conn queryable) error {
		_, err := conn.Exec(ctx, `
			UPDATE budget SET title=$2, status=$3, notes=$4, updated_at=NOW()
			WHERE id = $1`,
			b.ID, b.Title, b.Status, b.Notes)
		if err != nil {
			return err
		}
		if _, err := conn.Exec(ctx, `DELETE FROM budget_item WHERE budget_id = $1`, b.ID); err != nil {
			return err
		}
		return r.insertItems(ctx, conn, b)
	})
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return r.withTx(ctx, func(conn queryable) error {
		if _, err := conn.Exec(ctx, `DELETE FROM budget_item WHERE budget_id = $1`, id); err != nil {
			return err
		}
		_, err := conn.Exec(ctx, `DELETE FROM budget WHERE id = $1`, id)
		return err
	})
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Budget, int, error) {
	conn := r.conn(ctx)
	var total int
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM budget WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn.Query(ctx, `
		SELECT `+budgetCols+` FROM budget WHERE patient_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var budgets []*Budget
	for rows.Next() {
		b, err := r.scanBudget(rows)
		if err != nil {
			return nil, 0, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, b := range budgets {
		if b.Items, err = r.loadItems(ctx, b.ID); err != nil {
			return nil, 0, err
		}
	}
	return budgets, total, nil
}

func (r *repoPG) insertItems(ctx context.Context, conn queryable, b *Budget) error {
	for _, it := range b.Items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.BudgetID = b.ID
		_, err := conn.Exec(ctx, `
			INSERT INTO budget_item (id, budget_id, description, quantity, unit_price_cents)
			VALUES ($1,$2,$3,$4,$5)`,
			it.ID, it.BudgetID, it.Description, it.Quantity, it.UnitPriceCents)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) loadItems(ctx context.Context, budgetID uuid.UUID) ([]*Item, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, budget_id, description, quantity, unit_price_cents
		FROM budget_item WHERE budget_id = $1 ORDER BY description`, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.BudgetID, &it.Description, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
