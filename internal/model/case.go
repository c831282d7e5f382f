package model

import "time"

// Case status values.
const (
	CaseStatusOpen          = "Open"
	CaseStatusInProgress    = "In Progress"
	CaseStatusPendingReview = "Pending Review"
	CaseStatusClosed        = "Closed"
)

// Case priority values.
const (
	CasePriorityLow    = "Low"
	CasePriorityMedium = "Medium"
	CasePriorityHigh   = "High"
)

// Case represents a legal matter tracked for a client and owned by an
// assigned attorney.
type Case struct {
	ID              string     `json:"id"`
	CaseTitle       string     `json:"case_title"`
	CaseNumber      string     `json:"case_number"`
	ClientID        string     `json:"client_id"`
	CaseType        string     `json:"case_type"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Description     string     `json:"description"`
	StartDate       time.Time  `json:"start_date"`
	NextHearingDate *time.Time `json:"next_hearing_date,omitempty"`
	AssignedTo      string     `json:"assigned_to"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CaseDetail is a case joined with the reduced client and assignee records.
type CaseDetail struct {
	Case
	Client   ClientRef `json:"client"`
	Assignee UserRef   `json:"assignee"`
}

// Hearing is a dashboard row for a case with a hearing scheduled in the
// upcoming window.
type Hearing struct {
	CaseID          string    `json:"case_id"`
	CaseTitle       string    `json:"case_title"`
	CaseNumber      string    `json:"case_number"`
	NextHearingDate time.Time `json:"next_hearing_date"`
	ClientName      string    `json:"client_name"`
}

// ValidCaseStatus reports whether s is one of the defined case statuses.
func ValidCaseStatus(s string) bool {
	switch s {
	case CaseStatusOpen, CaseStatusInProgress, CaseStatusPendingReview, CaseStatusClosed:
		return true
	}
	return false
}

// ValidCasePriority reports whether p is one of the defined priorities.
func ValidCasePriority(p string) bool {
	switch p {
	case CasePriorityLow, CasePriorityMedium, CasePriorityHigh:
		return true
	}
	return false
}
