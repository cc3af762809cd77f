package calendar

import (
	"context"
	"errors"
	"time"

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

type activityRepoPG struct{ pool *pgxpool.Pool }

// NewActivityRepoPG returns the Postgres-backed activity repository.
func NewActivityRepoPG(pool *pgxpool.Pool) ActivityRepository { return &activityRepoPG{pool: pool} }

func (r *activityRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const activityCols = `id, kind, activity_date, start_time, duration_minutes, practitioner_id,
	patient_id, service, status, title, color, created_at, updated_at`

func (r *activityRepoPG) scanActivity(row pgx.Row) (*Activity, error) {
	var a Activity
	err := row.Scan(&a.ID, &a.Kind, &a.Date, &a.StartTime, &a.DurationMinutes, &a.PractitionerID,
		&a.PatientID, &a.Service, &a.Status, &a.Title, &a.Color, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *activityRepoPG) scanActivities(rows pgx.Rows) ([]*Activity, error) {
	defer rows.Close()
	var items []*Activity
	for rows.Next() {
		a, err := r.scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *activityRepoPG) Create(ctx context.Context, a *Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO activity (id, kind, activity_date, start_time, duration_minutes, practitioner_id,
			patient_id, service, status, title, color)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.Kind, a.Date, a.StartTime, a.DurationMinutes, a.PractitionerID,
		a.PatientID, a.Service, a.Status, a.Title, a.Color)
	return err
}

func (r *activityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Activity, error) {
	a, err := r.scanActivity(r.conn(ctx).QueryRow(ctx, `SELECT `+activityCols+` FROM activity WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *activityRepoPG) Update(ctx context.Context, a *Activity) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE activity SET activity_date=$2, start_time=$3, duration_minutes=$4, practitioner_id=$5,
			patient_id=$6, service=$7, status=$8, title=$9, color=$10, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Date, a.StartTime, a.DurationMinutes, a.PractitionerID,
		a.PatientID, a.Service, a.Status, a.Title, a.Color)
	return err
}

func (r *activityRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM activity WHERE id = $1`, id)
	return err
}

func (r *activityRepoPG) ListByDate(ctx context.Context, date time.Time) ([]*Activity, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+activityCols+` FROM activity
		WHERE activity_date = $1
		ORDER BY start_time, created_at`, date)
	if err != nil {
		return nil, err
	}
	return r.scanActivities(rows)
}

func (r *activityRepoPG) ListByDateRange(ctx context.Context, from, to time.Time) ([]*Activity, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+activityCols+` FROM activity
		WHERE activity_date >= $1 AND activity_date < $2
		ORDER BY activity_date, start_time, created_at`, from, to)
	if err != nil {
		return nil, err
	}
	return r.scanActivities(rows)
}

func (r *activityRepoPG) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID, limit, offset int) ([]*Activity, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM activity WHERE practitioner_id = $1`, practitionerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+activityCols+` FROM activity
		WHERE practitioner_id = $1
		ORDER BY activity_date DESC, start_time LIMIT $2 OFFSET $3`, practitionerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.scanActivities(rows)
	return items, total, err
}

func (r *activityRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Activity, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM activity WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+activityCols+` FROM activity
		WHERE patient_id = $1
		ORDER BY activity_date DESC, start_time LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.scanActivities(rows)
	return items, total, err
}
