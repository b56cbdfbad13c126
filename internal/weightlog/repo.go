package weightlog

import (
	"context"
	"fmt"
	"time"

	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Upsert(ctx context.Context, userID string, e Entry) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO weight_entry (user_id, day, weight, photo)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, day) DO UPDATE
				SET weight = EXCLUDED.weight, photo = EXCLUDED.photo;`,
		userID, e.Day.Time(), e.Weight, e.Photo,
	)
	if err != nil {
		return fmt.Errorf("upsert weight entry: %w", err)
	}
	return nil
}

// List returns all entries for the owner, newest first.
func (r *Repo) List(ctx context.Context, userID string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "weightRepo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT day, weight, photo FROM weight_entry
			WHERE user_id = $1
			ORDER BY day DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var d time.Time
		if err := rows.Scan(&d, &e.Weight, &e.Photo); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		e.Day = caldate.FromTime(d)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
