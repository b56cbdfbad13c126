package workoutlog

import (
	"github.com/ascentfit/ascent/internal/caldate"
)

type Exercise struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Sets  string `json:"sets"`
	Reps  string `json:"reps"`
	Emoji string `json:"emoji"`
}

type Training struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// exerciseCatalog is fixed per training type; there is no user-defined
// exercise editing.
var exerciseCatalog = map[string][]Exercise{
	"upper-body": {
		{ID: 1, Name: "Bench Press", Sets: "4", Reps: "8-10", Emoji: "🏋️"},
		{ID: 2, Name: "Barbell Rows", Sets: "4", Reps: "6-8", Emoji: "🏋️"},
		{ID: 3, Name: "Pull-ups", Sets: "3", Reps: "8-10", Emoji: "🏋️"},
		{ID: 4, Name: "Dips", Sets: "3", Reps: "8-10", Emoji: "🏋️"},
	},
	"lower-body": {
		{ID: 1, Name: "Squats", Sets: "4", Reps: "6-8", Emoji: "🦵"},
		{ID: 2, Name: "Deadlifts", Sets: "4", Reps: "4-6", Emoji: "🏋️"},
		{ID: 3, Name: "Leg Press", Sets: "3", Reps: "8-10", Emoji: "🦵"},
		{ID: 4, Name: "Leg Curls", Sets: "3", Reps: "10-12", Emoji: "🦵"},
	},
	"arms-shoulders": {
		{ID: 1, Name: "Shoulder Press", Sets: "4", Reps: "6-8", Emoji: "🎯"},
		{ID: 2, Name: "Barbell Curls", Sets: "3", Reps: "8-10", Emoji: "💪"},
		{ID: 3, Name: "Tricep Dips", Sets: "3", Reps: "8-10", Emoji: "💪"},
		{ID: 4, Name: "Lateral Raises", Sets: "3", Reps: "12-15", Emoji: "🎯"},
	},
}

var trainingNames = map[string]Training{
	"upper-body":     {Name: "Upper Body", Emoji: "💪"},
	"lower-body":     {Name: "Lower Body", Emoji: "🦵"},
	"arms-shoulders": {Name: "Arms & Shoulders", Emoji: "🎯"},
}

func Catalog(trainingType string) ([]Exercise, bool) {
	exercises, ok := exerciseCatalog[trainingType]
	return exercises, ok
}

func TrainingFor(trainingType string) (Training, bool) {
	training, ok := trainingNames[trainingType]
	return training, ok
}

// Log is one finished workout. Append-only, there is no update or delete.
type Log struct {
	Day caldate.Day `json:"date"`
	// Type is the training's display name, not its slug.
	Type               string `json:"type"`
	Completed          bool   `json:"completed"`
	ExercisesCompleted int    `json:"exercisesCompleted"`
	TotalExercises     int    `json:"totalExercises"`
}
