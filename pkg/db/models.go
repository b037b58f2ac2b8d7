package db

import "time"

// SeatingRun represents a stored allocation run
type SeatingRun struct {
	ID              string
	CreatedAt       time.Time
	InputFile       string
	RecordCount     int
	AssignedCount   int
	UnassignedCount int
	DataErrorCount  int
	// Success is false when the day-state validator reported violations
	Success bool
}

// SeatAssignment represents one record's outcome within a stored run
type SeatAssignment struct {
	RunID   string
	Row     int
	AgentID string
	Name    string
	Date    string
	Queue   string
	Start   string
	Stop    string
	Seat    *int
	Area    *string
	Outcome string
	Reason  string
}
