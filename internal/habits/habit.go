package habits

import (
	"time"

	"github.com/ascentfit/ascent/internal/caldate"
)

// DisplayCap is the max number of habits the dashboard widgets show,
// defaults plus custom ones combined.
const DisplayCap = 6

type Habit struct {
	ID string `json:"id"`
	// Name may embed an emoji prefix, kept as one display string.
	Name string `json:"name"`
	// Target is in minutes (glasses for water, kept in minutes field
	// for uniformity with the original data shape).
	Target int `json:"target"`
}

// DefaultHabits is the fixed built-in set. Custom habits come on top,
// up to DisplayCap in total.
var DefaultHabits = []Habit{
	{ID: "water", Name: "💧 Drink water", Target: 8},
	{ID: "exercise", Name: "🏃 Exercise", Target: 30},
	{ID: "reading", Name: "📖 Reading", Target: 20},
	{ID: "meditation", Name: "🧘 Meditation", Target: 10},
}

type Completion struct {
	HabitID     string      `json:"habitId"`
	Day         caldate.Day `json:"day"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// StreakRecord is the persisted streak pair, one per (user, habit).
// It is maintained incrementally at toggle time and is intentionally a
// separate source from the derived Streak computation.
type StreakRecord struct {
	HabitID       string       `json:"habitId"`
	CurrentStreak int          `json:"currentStreak"`
	BestStreak    int          `json:"bestStreak"`
	LastCompleted *caldate.Day `json:"lastCompletedDate,omitempty"`
}
