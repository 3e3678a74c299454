// Package metrics derives dashboard KPIs and chart aggregates from a
// task set. Compute is a pure function of its inputs: no clock reads,
// no store access, so repeated and reentrant invocation is safe.
package metrics

import (
	"fmt"
	"math"
	"time"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

type KPIs struct {
	TotalTasks         int     `json:"totalTasks"`
	InProgress         int     `json:"inProgress"`
	Overdue            int     `json:"overdue"`
	AvgCompletionHours float64 `json:"avgCompletionHours"`
	TasksPerUser       float64 `json:"tasksPerUser"`
}

type StatusCount struct {
	Status constants.TaskStatus `json:"status"`
	Count  int                  `json:"count"`
}

type PriorityCount struct {
	Priority constants.TaskPriority `json:"priority"`
	Count    int                    `json:"count"`
}

type TrendPoint struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

type WorkerStats struct {
	Name      string `json:"name"`
	Tasks     int    `json:"tasks"`
	Completed int    `json:"completed"`
}

type CompletionPoint struct {
	Week     string  `json:"week"`
	AvgHours float64 `json:"avgHours"`
}

type Charts struct {
	StatusDistribution   []StatusCount     `json:"statusDistribution"`
	PriorityDistribution []PriorityCount   `json:"priorityDistribution"`
	Trends               []TrendPoint      `json:"trends"`
	WorkerPerformance    []WorkerStats     `json:"workerPerformance"`
	CompletionTime       []CompletionPoint `json:"completionTime"`
}

type Report struct {
	KPIs   KPIs   `json:"kpis"`
	Charts Charts `json:"charts"`
}

// Overdue classifies a task as past deadline. The only status that
// clears overdue is APPROVED; a CANCELLED task past its deadline still
// counts, and the same rule feeds KPIs, charts and the sweep alike.
func Overdue(t *model.Task, now time.Time) bool {
	return t.Status != constants.StatusApproved && t.Deadline.Before(now)
}

// AtRisk reports whether the deadline is within window of now and the
// task has not yet been submitted, approved or cancelled.
func AtRisk(t *model.Task, now time.Time, window time.Duration) bool {
	switch t.Status {
	case constants.StatusSubmitted, constants.StatusApproved, constants.StatusCancelled:
		return false
	}
	return !t.Deadline.Before(now) && !t.Deadline.After(now.Add(window))
}

func Compute(tasks []model.Task, workers []model.User, now time.Time) Report {
	return Report{
		KPIs:   computeKPIs(tasks, workers, now),
		Charts: computeCharts(tasks, workers, now),
	}
}

func computeKPIs(tasks []model.Task, workers []model.User, now time.Time) KPIs {
	k := KPIs{TotalTasks: len(tasks)}

	var completionSum float64
	var completionCount int
	for i := range tasks {
		t := &tasks[i]
		if t.Status == constants.StatusInProgress {
			k.InProgress++
		}
		if Overdue(t, now) {
			k.Overdue++
		}
		if t.Status == constants.StatusApproved && t.StartedAt != nil && t.ApprovedAt != nil {
			completionSum += t.ApprovedAt.Sub(*t.StartedAt).Hours()
			completionCount++
		}
	}

	if completionCount > 0 {
		k.AvgCompletionHours = completionSum / float64(completionCount)
	}
	if len(workers) > 0 {
		k.TasksPerUser = float64(len(tasks)) / float64(len(workers))
	}
	return k
}

func computeCharts(tasks []model.Task, workers []model.User, now time.Time) Charts {
	return Charts{
		StatusDistribution:   statusDistribution(tasks),
		PriorityDistribution: priorityDistribution(tasks),
		Trends:               trends(tasks, now),
		WorkerPerformance:    workerPerformance(tasks, workers),
		CompletionTime:       completionTime(tasks, now),
	}
}

// statusDistribution counts whatever statuses are present in the data
// and returns the non-zero buckets in canonical enum order.
func statusDistribution(tasks []model.Task) []StatusCount {
	counts := make(map[constants.TaskStatus]int)
	for i := range tasks {
		counts[tasks[i].Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for _, s := range constants.AllStatuses {
		if n, ok := counts[s]; ok {
			out = append(out, StatusCount{Status: s, Count: n})
			delete(counts, s)
		}
	}
	// Anything left over is a non-canonical value that slipped past
	// ingestion; surface it rather than drop it silently.
	for s, n := range counts {
		out = append(out, StatusCount{Status: s, Count: n})
	}
	return out
}

func priorityDistribution(tasks []model.Task) []PriorityCount {
	counts := make(map[constants.TaskPriority]int)
	for i := range tasks {
		counts[tasks[i].Priority]++
	}

	out := make([]PriorityCount, 0, len(counts))
	for _, p := range constants.AllPriorities {
		if n, ok := counts[p]; ok {
			out = append(out, PriorityCount{Priority: p, Count: n})
			delete(counts, p)
		}
	}
	for p, n := range counts {
		out = append(out, PriorityCount{Priority: p, Count: n})
	}
	return out
}

// trends buckets the last 7 calendar days, oldest first: tasks created
// that day and tasks approved that day.
func trends(tasks []model.Task, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := startOfDay(now.AddDate(0, 0, -i))
		dayEnd := dayStart.AddDate(0, 0, 1)

		p := TrendPoint{Date: dayStart.Format("Jan 2")}
		for j := range tasks {
			t := &tasks[j]
			if inWindow(t.CreatedAt, dayStart, dayEnd) {
				p.Created++
			}
			if t.Status == constants.StatusApproved && t.ApprovedAt != nil &&
				inWindow(*t.ApprovedAt, dayStart, dayEnd) {
				p.Completed++
			}
		}
		points = append(points, p)
	}
	return points
}

// completionTime averages completion hours over 4 trailing 7-day
// windows, oldest first. 0 for empty windows, never NaN. The average
// is rounded to one decimal; this is the display series, the KPI keeps
// full precision.
func completionTime(tasks []model.Task, now time.Time) []CompletionPoint {
	points := make([]CompletionPoint, 0, 4)
	for i := 3; i >= 0; i-- {
		weekStart := now.AddDate(0, 0, -(i*7 + 7))
		weekEnd := now.AddDate(0, 0, -i*7)

		var sum float64
		var count int
		for j := range tasks {
			t := &tasks[j]
			if t.Status != constants.StatusApproved || t.StartedAt == nil || t.ApprovedAt == nil {
				continue
			}
			if inWindow(*t.ApprovedAt, weekStart, weekEnd) {
				sum += t.ApprovedAt.Sub(*t.StartedAt).Hours()
				count++
			}
		}

		p := CompletionPoint{Week: fmt.Sprintf("Week %d", 4-i)}
		if count > 0 {
			p.AvgHours = math.Round(sum/float64(count)*10) / 10
		}
		points = append(points, p)
	}
	return points
}

func workerPerformance(tasks []model.Task, workers []model.User) []WorkerStats {
	out := make([]WorkerStats, 0, len(workers))
	for _, w := range workers {
		name := w.Name
		if name == "" {
			name = w.Email
		}
		stats := WorkerStats{Name: name}
		for i := range tasks {
			t := &tasks[i]
			if t.AssignedTo == nil || *t.AssignedTo != w.ID {
				continue
			}
			stats.Tasks++
			if t.Status == constants.StatusApproved {
				stats.Completed++
			}
		}
		out = append(out, stats)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// inWindow is half-open: start inclusive, end exclusive.
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
