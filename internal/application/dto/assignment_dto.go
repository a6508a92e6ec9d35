package dto

import "time"

// AssignRequest body for POST /api/assignments.
type AssignRequest struct {
	AssetID    string `json:"assetId" validate:"required"`
	AssignedTo string `json:"assignedTo" validate:"required,min=1,max=120"`
}

// AssignmentResponse an assignment row with populated asset reference.
type AssignmentResponse struct {
	ID         string     `json:"_id"`
	AssetID    AssetRef   `json:"assetId"`
	AssignedTo string     `json:"assignedTo"`
	Status     string     `json:"status"`
	AssignedAt time.Time  `json:"assignedAt"`
	ExpendedAt *time.Time `json:"expendedAt,omitempty"`
}
