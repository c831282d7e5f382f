package model

import "time"

// Task status values.
const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
)

// Task is a unit of work on a case, assigned to a user and tracked to a
// completion percentage.
type Task struct {
	ID                   string    `json:"id"`
	CaseID               string    `json:"case_id"`
	TaskTitle            string    `json:"task_title"`
	AssignedTo           string    `json:"assigned_to"`
	DueDate              time.Time `json:"due_date"`
	Status               string    `json:"status"`
	CompletionPercentage int       `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TaskDetail is a task joined with its case title/number and assignee.
type TaskDetail struct {
	Task
	CaseTitle  string  `json:"case_title"`
	CaseNumber string  `json:"case_number"`
	Assignee   UserRef `json:"assignee"`
}

// ValidTaskStatus reports whether s is one of the defined task statuses.
func ValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}
