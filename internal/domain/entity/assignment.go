package entity

import "time"

// AssignmentStatus is the per-assignment state machine:
// Assigned → Expended (terminal). Created in Assigned.
type AssignmentStatus string

const (
	AssignmentAssigned AssignmentStatus = "Assigned"
	AssignmentExpended AssignmentStatus = "Expended"
)

// Assignment allocates an asset unit to a person. ExpendedAt is set once,
// on the single permitted transition.
type Assignment struct {
	ID         string
	AssetID    string
	AssignedTo string
	Status     AssignmentStatus
	AssignedAt time.Time
	ExpendedAt *time.Time
}
