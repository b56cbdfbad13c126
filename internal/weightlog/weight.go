package weightlog

import (
	"fmt"
	"math"
	"sort"

	"github.com/ascentfit/ascent/internal/caldate"
)

const (
	TrendDown   = "↓"
	TrendUp     = "↑"
	TrendSteady = "→"
)

type Entry struct {
	Day    caldate.Day `json:"date"`
	Weight float64     `json:"weight"`
	// Photo is a data-URL or remote URL, optional.
	Photo string `json:"photo,omitempty"`
}

type WeekGroup struct {
	Year    int     `json:"year"`
	Week    int     `json:"week"`
	Key     string  `json:"key"`
	Min     float64 `json:"minWeight"`
	Max     float64 `json:"maxWeight"`
	Mean    float64 `json:"avgWeight"`
	Entries []Entry `json:"entries"`
}

// GroupByISOWeek buckets entries into {year, ISO week} groups, newest week
// first. Min/max/mean are computed only over entries carrying a weight.
func GroupByISOWeek(entries []Entry) []WeekGroup {
	grouped := make(map[string]*WeekGroup)
	for _, e := range entries {
		year, week := e.Day.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		group, ok := grouped[key]
		if !ok {
			group = &WeekGroup{Year: year, Week: week, Key: key}
			grouped[key] = group
		}
		group.Entries = append(group.Entries, e)
	}

	groups := make([]WeekGroup, 0, len(grouped))
	for _, group := range grouped {
		var weights []float64
		for _, e := range group.Entries {
			if e.Weight != 0 {
				weights = append(weights, e.Weight)
			}
		}
		if len(weights) > 0 {
			group.Min = weights[0]
			group.Max = weights[0]
			var sum float64
			for _, w := range weights {
				if w < group.Min {
					group.Min = w
				}
				if w > group.Max {
					group.Max = w
				}
				sum += w
			}
			group.Mean = round1(sum / float64(len(weights)))
		}
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}
		return groups[i].Week > groups[j].Week
	})
	return groups
}

// Trend compares the mean of the newest min(3, n) entries against the mean
// of the oldest min(3, n), with entries given newest first. A difference of
// more than half a kilo tips the arrow.
func Trend(entries []Entry) string {
	var weights []float64
	for _, e := range entries {
		if e.Weight != 0 {
			weights = append(weights, e.Weight)
		}
	}
	if len(weights) == 0 {
		return TrendSteady
	}

	window := 3
	if len(weights) < window {
		window = len(weights)
	}

	var recent, older float64
	for i := 0; i < window; i++ {
		recent += weights[i]
		older += weights[len(weights)-1-i]
	}
	recent /= float64(window)
	older /= float64(window)

	switch {
	case recent < older-0.5:
		return TrendDown
	case recent > older+0.5:
		return TrendUp
	default:
		return TrendSteady
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
