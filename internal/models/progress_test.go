package models

import "testing"

func TestNewProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      float64
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 4, 0, 0},
		{"half completed", 4, 2, 50},
		{"all completed", 3, 3, 100},
		{"one third rounds to two decimals", 3, 1, 33.33},
		{"two thirds rounds up", 3, 2, 66.67},
		{"one of seven", 7, 1, 14.29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgress(tt.total, tt.completed)
			if p.ProgressPercentage != tt.want {
				t.Errorf("NewProgress(%d, %d).ProgressPercentage = %v, want %v",
					tt.total, tt.completed, p.ProgressPercentage, tt.want)
			}
			if p.ProgressPercentage < 0 || p.ProgressPercentage > 100 {
				t.Errorf("percentage %v out of [0, 100]", p.ProgressPercentage)
			}
			if p.CompletedTasks > p.TotalTasks {
				t.Errorf("completed %d exceeds total %d", p.CompletedTasks, p.TotalTasks)
			}
		})
	}
}
