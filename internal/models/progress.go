package models

import "math"

// Progress aggregates task completion for one project.
type Progress struct {
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// NewProgress derives the completion percentage from raw task counts.
// A project without tasks has a progress of exactly 0.
func NewProgress(total, completed int) Progress {
	var pct float64
	if total > 0 {
		pct = float64(completed) * 100 / float64(total)
		pct = math.Round(pct*100) / 100
	}
	return Progress{
		TotalTasks:         total,
		CompletedTasks:     completed,
		ProgressPercentage: pct,
	}
}
