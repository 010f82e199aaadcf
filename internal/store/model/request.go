package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EmploymentRequest is one of the three sub-workflows (extension,
// early completion, termination) that can alter an employment's timeline.
// At most one Pending request per (employment, kind) exists at a time;
// resolved requests accumulate as history.
type EmploymentRequest struct {
	ID           uuid.UUID `gorm:"primaryKey;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	EmploymentID uuid.UUID     `gorm:"not null;index:idx_requests_employment_kind"`
	Kind         RequestKind   `gorm:"not null;index:idx_requests_employment_kind"`
	Status       RequestStatus `gorm:"not null;default:0"`

	// InitiatedBy is the actor role that opened the request (student or company).
	InitiatedBy string
	Reason      string
	Remark      *string

	// ProposedDate is the new end date (extension), effective completion date
	// (early completion) or last working day (termination).
	ProposedDate *time.Time

	DecisionRemark *string
	DecidedBy      *uuid.UUID
	DecidedAt      *time.Time
}

type EmploymentRequestList []EmploymentRequest

func (r EmploymentRequest) String() string {
	val, _ := json.Marshal(r)
	return string(val)
}
