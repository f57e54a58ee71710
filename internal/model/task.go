package model

import "time"

// Assignee identifies which side of the engagement owns a task.
type Assignee string

// Assignee constants.
const (
	AssigneeClient Assignee = "Client"
	AssigneeUs     Assignee = "Us"
)

// TaskStatus indicates whether a task is still open.
type TaskStatus string

// Task status constants.
const (
	TaskPending TaskStatus = "Pending"
	TaskDone    TaskStatus = "Done"
)

// Task is a single onboarding work item tracked against a project.
type Task struct {
	DueDate  time.Time  `json:"dueDate"`
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Assignee Assignee   `json:"assignee"`
	Status   TaskStatus `json:"status"`
}
