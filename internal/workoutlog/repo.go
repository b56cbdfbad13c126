package workoutlog

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

func (r *Repo) Add(ctx context.Context, userID string, l Log) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO workout_log
				(user_id, day, type, completed, exercises_completed, total_exercises)
				VALUES ($1, $2, $3, $4, $5, $6);`,
		userID, l.Day.Time(), l.Type, l.Completed, l.ExercisesCompleted, l.TotalExercises,
	)
	if err != nil {
		return fmt.Errorf("insert workout log: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutRepo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT day, type, completed, exercises_completed, total_exercises
			FROM workout_log
			WHERE user_id = $1
			ORDER BY day DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		var l Log
		var d time.Time
		if err := rows.Scan(&d, &l.Type, &l.Completed, &l.ExercisesCompleted, &l.TotalExercises); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		l.Day = caldate.FromTime(d)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
