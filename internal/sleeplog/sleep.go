package sleeplog

import (
	"math"

	"github.com/ascentfit/ascent/internal/caldate"
)

// OverviewWindow is how many most-recent logs feed the rolling average.
const OverviewWindow = 14

type Quality string

const (
	QualityPoor      Quality = "poor"
	QualityFair      Quality = "fair"
	QualityGood      Quality = "good"
	QualityExcellent Quality = "excellent"
)

func (q Quality) Valid() bool {
	switch q {
	case QualityPoor, QualityFair, QualityGood, QualityExcellent:
		return true
	}
	return false
}

type Log struct {
	Day     caldate.Day `json:"date"`
	Hours   float64     `json:"hours"`
	Quality Quality     `json:"quality"`
}

// AverageHours is the arithmetic mean of hours over the given logs, to one
// decimal place. ok is false when there are no logs at all.
func AverageHours(logs []Log) (avg float64, ok bool) {
	if len(logs) == 0 {
		return 0, false
	}
	var total float64
	for _, l := range logs {
		total += l.Hours
	}
	return math.Round(total/float64(len(logs))*10) / 10, true
}

// BedtimeHint maps the rolling average to a fixed coaching text.
func BedtimeHint(avg float64, hasData bool) string {
	switch {
	case !hasData:
		return "Aim for 7-9 hours per night."
	case avg < 6.5:
		return "You are running short. Try a wind-down at 10:30 PM."
	case avg < 7.5:
		return "Close to target. Keep a consistent bedtime around 11:00 PM."
	default:
		return "Great consistency. Maintain your current routine."
	}
}
