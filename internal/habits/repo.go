package habits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrStreakNotFound = errors.New("habit streak not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) UpsertCompletion(ctx context.Context, userID string, c Completion) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO habit_completion
				(user_id, habit_id, day, completed, completed_at)
				VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, habit_id, day) DO UPDATE
				SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at;`,
		userID, c.HabitID, c.Day.Time(), c.Completed, c.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert habit completion: %w", err)
	}
	return nil
}

func (r *Repo) CompletionsForDay(ctx context.Context, userID string, day caldate.Day) (_ []Completion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "habitsRepo.completionsForDay")
	span.SetAttributes(attribute.String("day", day.String()))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT habit_id, day, completed, completed_at
			FROM habit_completion
			WHERE user_id = $1 AND day = $2;`,
		userID, day.Time(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []Completion
	for rows.Next() {
		var c Completion
		var d time.Time
		if err := rows.Scan(&c.HabitID, &d, &c.Completed, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		c.Day = caldate.FromTime(d)
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return completions, nil
}

// CompletedDays returns the distinct days with a completed record, for one
// habit or, with empty habitID, for any habit (the dashboard-wide variant).
func (r *Repo) CompletedDays(ctx context.Context, userID, habitID string) ([]caldate.Day, error) {
	query := `SELECT DISTINCT day FROM habit_completion WHERE user_id = $1 AND completed;`
	args := []any{userID}
	if habitID != "" {
		query = `SELECT DISTINCT day FROM habit_completion WHERE user_id = $1 AND habit_id = $2 AND completed;`
		args = append(args, habitID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []caldate.Day
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		days = append(days, caldate.FromTime(d))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *Repo) GetStreak(ctx context.Context, userID, habitID string) (*StreakRecord, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT habit_id, current_streak, best_streak, last_completed_date
			FROM habit_streak
			WHERE user_id = $1 AND habit_id = $2;`,
		userID, habitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrStreakNotFound
	}

	record, err := scanStreak(rows)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repo) UpsertStreak(ctx context.Context, userID string, s StreakRecord) error {
	var lastCompleted *time.Time
	if s.LastCompleted != nil {
		t := s.LastCompleted.Time()
		lastCompleted = &t
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO habit_streak
				(user_id, habit_id, current_streak, best_streak, last_completed_date)
				VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, habit_id) DO UPDATE
				SET current_streak = EXCLUDED.current_streak,
					best_streak = EXCLUDED.best_streak,
					last_completed_date = EXCLUDED.last_completed_date;`,
		userID, s.HabitID, s.CurrentStreak, s.BestStreak, lastCompleted,
	)
	if err != nil {
		return fmt.Errorf("upsert habit streak: %w", err)
	}
	return nil
}

func (r *Repo) ListStreaks(ctx context.Context, userID string) (_ []StreakRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "habitsRepo.listStreaks")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT habit_id, current_streak, best_streak, last_completed_date
			FROM habit_streak
			WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StreakRecord
	for rows.Next() {
		record, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanStreak(rows pgx.Rows) (*StreakRecord, error) {
	var record StreakRecord
	var lastCompleted *time.Time
	if err := rows.Scan(&record.HabitID, &record.CurrentStreak, &record.BestStreak, &lastCompleted); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	if lastCompleted != nil {
		d := caldate.FromTime(*lastCompleted)
		record.LastCompleted = &d
	}
	return &record, nil
}
