package model

// StatusCount is one bucket of a group-by-status aggregation.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is one bucket of a group-by-priority aggregation.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// CaseTotals holds the headline case counters for the dashboard overview.
type CaseTotals struct {
	Total  int
	Open   int
	Closed int
}

// TaskTotals holds the headline task counters for the dashboard overview.
type TaskTotals struct {
	Total     int
	Completed int
}
