package metrics

import (
	"testing"
	"time"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func approvedTask(id string, startedAgo, approvedAgo time.Duration) model.Task {
	started := now.Add(-startedAgo)
	approved := now.Add(-approvedAgo)
	return model.Task{
		ID:         id,
		Title:      id,
		Status:     constants.StatusApproved,
		Priority:   constants.PriorityMedium,
		Deadline:   now.Add(24 * time.Hour),
		StartedAt:  &started,
		ApprovedAt: &approved,
		CreatedAt:  now.Add(-startedAgo),
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	report := Compute(nil, nil, now)

	if report.KPIs.TotalTasks != 0 {
		t.Errorf("expected 0 tasks, got %d", report.KPIs.TotalTasks)
	}
	if report.KPIs.AvgCompletionHours != 0 {
		t.Errorf("avgCompletionHours of empty set must be 0, got %f", report.KPIs.AvgCompletionHours)
	}
	if report.KPIs.TasksPerUser != 0 {
		t.Errorf("tasksPerUser with no workers must be 0, got %f", report.KPIs.TasksPerUser)
	}
	if len(report.Charts.Trends) != 7 {
		t.Errorf("expected 7 trend points, got %d", len(report.Charts.Trends))
	}
	if len(report.Charts.CompletionTime) != 4 {
		t.Errorf("expected 4 completion windows, got %d", len(report.Charts.CompletionTime))
	}
	for _, p := range report.Charts.CompletionTime {
		if p.AvgHours != 0 {
			t.Errorf("empty window %s must average 0, got %f", p.Week, p.AvgHours)
		}
	}
}

func TestCompute_AvgCompletionHours(t *testing.T) {
	tasks := []model.Task{approvedTask("t1", 3*time.Hour, 0)}

	report := Compute(tasks, nil, now)
	if report.KPIs.AvgCompletionHours != 3.0 {
		t.Errorf("expected 3.0 hours, got %f", report.KPIs.AvgCompletionHours)
	}
}

func TestCompute_ApprovedWithoutTimestampsIgnored(t *testing.T) {
	tasks := []model.Task{
		approvedTask("t1", 2*time.Hour, 0),
		{ID: "t2", Status: constants.StatusApproved, Priority: constants.PriorityLow, Deadline: now},
	}

	report := Compute(tasks, nil, now)
	if report.KPIs.AvgCompletionHours != 2.0 {
		t.Errorf("expected 2.0 hours, got %f", report.KPIs.AvgCompletionHours)
	}
}

func TestOverdue_Classification(t *testing.T) {
	past := now.Add(-time.Hour)

	task := &model.Task{Status: constants.StatusInProgress, Deadline: past}
	if !Overdue(task, now) {
		t.Error("IN_PROGRESS past deadline must be overdue")
	}

	task.Status = constants.StatusApproved
	if Overdue(task, now) {
		t.Error("APPROVED must never be overdue")
	}

	// Cancellation does not clear overdue; only approval does.
	task.Status = constants.StatusCancelled
	if !Overdue(task, now) {
		t.Error("CANCELLED past deadline still counts as overdue")
	}

	task.Status = constants.StatusPending
	task.Deadline = now.Add(time.Hour)
	if Overdue(task, now) {
		t.Error("future deadline is not overdue")
	}
}

func TestAtRisk_Classification(t *testing.T) {
	window := 24 * time.Hour
	soon := now.Add(6 * time.Hour)

	task := &model.Task{Status: constants.StatusInProgress, Deadline: soon}
	if !AtRisk(task, now, window) {
		t.Error("IN_PROGRESS due in 6h must be at risk")
	}

	task.Status = constants.StatusSubmitted
	if AtRisk(task, now, window) {
		t.Error("SUBMITTED is never at risk")
	}

	task.Status = constants.StatusPending
	task.Deadline = now.Add(48 * time.Hour)
	if AtRisk(task, now, window) {
		t.Error("deadline beyond the window is not at risk")
	}

	task.Deadline = now.Add(-time.Hour)
	if AtRisk(task, now, window) {
		t.Error("past deadline is overdue, not at risk")
	}
}

func TestCompute_OverdueScenario(t *testing.T) {
	deadline := now.Add(-time.Hour)
	task := model.Task{
		ID:       "t1",
		Status:   constants.StatusPending,
		Priority: constants.PriorityHigh,
		Deadline: deadline,
	}

	report := Compute([]model.Task{task}, nil, now)
	if report.KPIs.Overdue != 1 || report.KPIs.InProgress != 0 {
		t.Fatalf("pending: overdue=%d inProgress=%d, want 1/0", report.KPIs.Overdue, report.KPIs.InProgress)
	}

	task.Status = constants.StatusInProgress
	report = Compute([]model.Task{task}, nil, now)
	if report.KPIs.Overdue != 1 || report.KPIs.InProgress != 1 {
		t.Fatalf("in progress: overdue=%d inProgress=%d, want 1/1", report.KPIs.Overdue, report.KPIs.InProgress)
	}

	started := now.Add(-2 * time.Hour)
	approved := now
	task.Status = constants.StatusApproved
	task.StartedAt = &started
	task.ApprovedAt = &approved
	report = Compute([]model.Task{task}, nil, now)
	if report.KPIs.Overdue != 0 {
		t.Errorf("approved task must not be overdue, got %d", report.KPIs.Overdue)
	}
	if report.KPIs.AvgCompletionHours != 2.0 {
		t.Errorf("expected avgCompletionHours 2.0, got %f", report.KPIs.AvgCompletionHours)
	}
}

func TestCompute_TasksPerUser(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Status: constants.StatusPending, Priority: constants.PriorityLow, Deadline: now},
		{ID: "t2", Status: constants.StatusPending, Priority: constants.PriorityLow, Deadline: now},
		{ID: "t3", Status: constants.StatusPending, Priority: constants.PriorityLow, Deadline: now},
	}
	workers := []model.User{
		{ID: "w1", Name: "One", Role: constants.RoleWorker},
		{ID: "w2", Name: "Two", Role: constants.RoleWorker},
	}

	report := Compute(tasks, workers, now)
	if report.KPIs.TasksPerUser != 1.5 {
		t.Errorf("expected 1.5 tasks per user, got %f", report.KPIs.TasksPerUser)
	}
}

func TestCompute_Distributions(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Status: constants.StatusPending, Priority: constants.PriorityHigh, Deadline: now},
		{ID: "t2", Status: constants.StatusPending, Priority: constants.PriorityLow, Deadline: now},
		{ID: "t3", Status: constants.StatusCancelled, Priority: constants.PriorityHigh, Deadline: now},
	}

	report := Compute(tasks, nil, now)

	status := report.Charts.StatusDistribution
	if len(status) != 2 {
		t.Fatalf("expected 2 non-zero status buckets, got %d", len(status))
	}
	if status[0].Status != constants.StatusPending || status[0].Count != 2 {
		t.Errorf("unexpected first bucket: %+v", status[0])
	}
	if status[1].Status != constants.StatusCancelled || status[1].Count != 1 {
		t.Errorf("unexpected second bucket: %+v", status[1])
	}

	priority := report.Charts.PriorityDistribution
	if len(priority) != 2 {
		t.Fatalf("expected 2 non-zero priority buckets, got %d", len(priority))
	}
	if priority[0].Priority != constants.PriorityLow || priority[0].Count != 1 {
		t.Errorf("unexpected first priority bucket: %+v", priority[0])
	}
}

func TestCompute_TrendBuckets(t *testing.T) {
	createdToday := model.Task{
		ID: "t1", Status: constants.StatusPending, Priority: constants.PriorityLow,
		Deadline: now, CreatedAt: now.Add(-time.Hour),
	}
	approvedThreeDaysAgo := approvedTask("t2", 80*time.Hour, 72*time.Hour)
	// Created outside the 7-day window entirely.
	old := model.Task{
		ID: "t3", Status: constants.StatusPending, Priority: constants.PriorityLow,
		Deadline: now, CreatedAt: now.AddDate(0, 0, -10),
	}

	report := Compute([]model.Task{createdToday, approvedThreeDaysAgo, old}, nil, now)
	trends := report.Charts.Trends

	if trends[6].Created != 1 {
		t.Errorf("today's bucket should count 1 created, got %d", trends[6].Created)
	}
	if trends[3].Completed != 1 {
		t.Errorf("bucket 3 days back should count 1 completed, got %d", trends[3].Completed)
	}
	if trends[0].Date != now.AddDate(0, 0, -6).Format("Jan 2") {
		t.Errorf("oldest bucket mislabelled: %s", trends[0].Date)
	}

	var totalCreated int
	for _, p := range trends {
		totalCreated += p.Created
	}
	if totalCreated != 2 {
		t.Errorf("expected 2 creations inside the window, got %d", totalCreated)
	}
}

func TestCompute_CompletionTimeWindows(t *testing.T) {
	// Approved 2 days ago after 4h of work: falls in the newest window.
	recent := approvedTask("t1", 52*time.Hour, 48*time.Hour)
	// Approved 10 days ago after 2h30m: second-newest window.
	older := approvedTask("t2", 242*time.Hour+30*time.Minute, 240*time.Hour)

	report := Compute([]model.Task{recent, older}, nil, now)
	points := report.Charts.CompletionTime

	if points[3].Week != "Week 4" || points[3].AvgHours != 4.0 {
		t.Errorf("newest window: %+v, want Week 4 / 4.0", points[3])
	}
	if points[2].Week != "Week 3" || points[2].AvgHours != 2.5 {
		t.Errorf("second window: %+v, want Week 3 / 2.5", points[2])
	}
	if points[0].AvgHours != 0 || points[1].AvgHours != 0 {
		t.Error("empty windows must average 0")
	}
}

func TestCompute_WorkerPerformance(t *testing.T) {
	w1 := "w1"
	w2 := "w2"
	started := now.Add(-2 * time.Hour)

	tasks := []model.Task{
		{ID: "t1", Status: constants.StatusApproved, Priority: constants.PriorityLow, Deadline: now, AssignedTo: &w1, StartedAt: &started, ApprovedAt: &now},
		{ID: "t2", Status: constants.StatusPending, Priority: constants.PriorityLow, Deadline: now, AssignedTo: &w1},
		{ID: "t3", Status: constants.StatusPending, Priority: constants.PriorityLow, Deadline: now},
	}
	workers := []model.User{
		{ID: w1, Name: "Willa", Role: constants.RoleWorker},
		{ID: w2, Email: "wes@example.com", Role: constants.RoleWorker},
	}

	report := Compute(tasks, workers, now)
	perf := report.Charts.WorkerPerformance

	if len(perf) != 2 {
		t.Fatalf("expected 2 worker rows, got %d", len(perf))
	}
	if perf[0].Name != "Willa" || perf[0].Tasks != 2 || perf[0].Completed != 1 {
		t.Errorf("unexpected stats for first worker: %+v", perf[0])
	}
	if perf[1].Name != "wes@example.com" || perf[1].Tasks != 0 {
		t.Errorf("unexpected stats for second worker: %+v", perf[1])
	}
}
