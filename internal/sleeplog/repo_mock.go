package sleeplog

import (
	"context"
	"sort"

	"github.com/ascentfit/ascent/internal/caldate"
)

type repoMock struct {
	logs map[string]map[string]Log // userID -> day -> log
}

func NewMockRepo() *repoMock {
	return &repoMock{
		logs: make(map[string]map[string]Log),
	}
}

func (r *repoMock) Upsert(_ context.Context, userID string, l Log) error {
	if r.logs[userID] == nil {
		r.logs[userID] = make(map[string]Log)
	}
	r.logs[userID][l.Day.String()] = l
	return nil
}

func (r *repoMock) GetForDay(_ context.Context, userID string, day caldate.Day) (*Log, error) {
	l, ok := r.logs[userID][day.String()]
	if !ok {
		return nil, ErrLogNotFound
	}
	return &l, nil
}

func (r *repoMock) Recent(_ context.Context, userID string, limit int) ([]Log, error) {
	var logs []Log
	for _, l := range r.logs[userID] {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Day.String() > logs[j].Day.String()
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
