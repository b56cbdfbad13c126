package habits

import (
	"context"

	"github.com/ascentfit/ascent/internal/caldate"
)

type completionsStoreMock struct {
	completions map[string][]Completion // owner -> records
}

func NewMockCompletionsStore() *completionsStoreMock {
	return &completionsStoreMock{
		completions: make(map[string][]Completion),
	}
}

func (m *completionsStoreMock) UpsertCompletion(_ context.Context, owner string, c Completion) error {
	records := m.completions[owner]
	for i := range records {
		if records[i].HabitID == c.HabitID && records[i].Day.String() == c.Day.String() {
			records[i] = c
			return nil
		}
	}
	m.completions[owner] = append(records, c)
	return nil
}

func (m *completionsStoreMock) CompletionsForDay(_ context.Context, owner string, day caldate.Day) ([]Completion, error) {
	var forDay []Completion
	for _, c := range m.completions[owner] {
		if c.Day.String() == day.String() {
			forDay = append(forDay, c)
		}
	}
	return forDay, nil
}

func (m *completionsStoreMock) CompletedDays(_ context.Context, owner, habitID string) ([]caldate.Day, error) {
	seen := make(map[string]struct{})
	var days []caldate.Day
	for _, c := range m.completions[owner] {
		if !c.Completed {
			continue
		}
		if habitID != "" && c.HabitID != habitID {
			continue
		}
		if _, ok := seen[c.Day.String()]; ok {
			continue
		}
		seen[c.Day.String()] = struct{}{}
		days = append(days, c.Day)
	}
	return days, nil
}

type streaksStoreMock struct {
	records map[string]map[string]StreakRecord // userID -> habitID -> record
}

func NewMockStreaksStore() *streaksStoreMock {
	return &streaksStoreMock{
		records: make(map[string]map[string]StreakRecord),
	}
}

func (m *streaksStoreMock) GetStreak(_ context.Context, userID, habitID string) (*StreakRecord, error) {
	record, ok := m.records[userID][habitID]
	if !ok {
		return nil, ErrStreakNotFound
	}
	return &record, nil
}

func (m *streaksStoreMock) UpsertStreak(_ context.Context, userID string, s StreakRecord) error {
	if m.records[userID] == nil {
		m.records[userID] = make(map[string]StreakRecord)
	}
	m.records[userID][s.HabitID] = s
	return nil
}

func (m *streaksStoreMock) ListStreaks(_ context.Context, userID string) ([]StreakRecord, error) {
	var records []StreakRecord
	for _, record := range m.records[userID] {
		records = append(records, record)
	}
	return records, nil
}
