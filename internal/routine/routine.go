package routine

import (
	"errors"

	"github.com/ascentfit/ascent/internal/caldate"
)

type TrainingType string

const (
	TrainingUpperBody TrainingType = "upper-body"
	TrainingLowerBody TrainingType = "lower-body"
	TrainingRest      TrainingType = "rest"
)

func (t TrainingType) Valid() bool {
	switch t {
	case TrainingUpperBody, TrainingLowerBody, TrainingRest:
		return true
	}
	return false
}

var ErrInvalidPlan = errors.New("routine plan must hold exactly 7 valid slots")

type DaySlot struct {
	DayKey string       `json:"dayKey"`
	Label  string       `json:"label"`
	Type   TrainingType `json:"type"`
}

// Plan is a full week, Monday first.
type Plan []DaySlot

// DefaultPlan is the canonical weekly template restored on reset.
func DefaultPlan() Plan {
	return Plan{
		{DayKey: "mon", Label: "Monday", Type: TrainingRest},
		{DayKey: "tue", Label: "Tuesday", Type: TrainingUpperBody},
		{DayKey: "wed", Label: "Wednesday", Type: TrainingRest},
		{DayKey: "thu", Label: "Thursday", Type: TrainingLowerBody},
		{DayKey: "fri", Label: "Friday", Type: TrainingUpperBody},
		{DayKey: "sat", Label: "Saturday", Type: TrainingLowerBody},
		{DayKey: "sun", Label: "Sunday", Type: TrainingRest},
	}
}

func (p Plan) Valid() bool {
	if len(p) != 7 {
		return false
	}
	defaults := DefaultPlan()
	for i, slot := range p {
		if slot.DayKey != defaults[i].DayKey || !slot.Type.Valid() {
			return false
		}
	}
	return true
}

type TypeMeta struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	// Route is the workout page slug; rest days do not navigate anywhere.
	Route string `json:"route,omitempty"`
}

var typeMeta = map[TrainingType]TypeMeta{
	TrainingUpperBody: {Name: "Upper Body", Emoji: "💪", Route: "/workouts/upper-body"},
	TrainingLowerBody: {Name: "Lower Body", Emoji: "🦵", Route: "/workouts/lower-body"},
	TrainingRest:      {Name: "Rest Day", Emoji: "😴"},
}

func MetaFor(t TrainingType) TypeMeta {
	meta, ok := typeMeta[t]
	if !ok {
		return typeMeta[TrainingRest]
	}
	return meta
}

type TrainingDay struct {
	TypeMeta
	Type   TrainingType `json:"type"`
	DayKey string       `json:"dayKey"`
	Day    string       `json:"day"`
}

// TrainingForDate resolves what training the plan assigns to a calendar date.
// Pure lookup: the date's Monday-first weekday index selects the slot.
func TrainingForDate(plan Plan, day caldate.Day) TrainingDay {
	if !plan.Valid() {
		plan = DefaultPlan()
	}
	slot := plan[day.MondayFirstIndex()]
	return TrainingDay{
		TypeMeta: MetaFor(slot.Type),
		Type:     slot.Type,
		DayKey:   slot.DayKey,
		Day:      slot.Label,
	}
}
