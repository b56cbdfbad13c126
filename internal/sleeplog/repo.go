package sleeplog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrLogNotFound = errors.New("sleep log not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert keeps one log per (user, day): saving the same day twice just
// overwrites the row.
func (r *Repo) Upsert(ctx context.Context, userID string, l Log) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO sleep_log (user_id, day, hours, quality)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, day) DO UPDATE
				SET hours = EXCLUDED.hours, quality = EXCLUDED.quality;`,
		userID, l.Day.Time(), l.Hours, string(l.Quality),
	)
	if err != nil {
		return fmt.Errorf("upsert sleep log: %w", err)
	}
	return nil
}

func (r *Repo) GetForDay(ctx context.Context, userID string, day caldate.Day) (*Log, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT day, hours, quality FROM sleep_log WHERE user_id = $1 AND day = $2;`,
		userID, day.Time(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrLogNotFound
	}

	l, err := scanLog(rows)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Recent returns up to limit logs, newest first.
func (r *Repo) Recent(ctx context.Context, userID string, limit int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sleepRepo.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT day, hours, quality FROM sleep_log
			WHERE user_id = $1
			ORDER BY day DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func scanLog(rows interface {
	Scan(dest ...any) error
}) (*Log, error) {
	var l Log
	var d time.Time
	var quality string
	if err := rows.Scan(&d, &l.Hours, &quality); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	l.Day = caldate.FromTime(d)
	l.Quality = Quality(quality)
	return &l, nil
}
