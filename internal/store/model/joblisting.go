package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobListing struct {
	gorm.Model
	ID        uuid.UUID `gorm:"primaryKey;"`
	CompanyID uuid.UUID `gorm:"not null;index"`
	Company   Company
	Title     string
	Status    JobListingStatus `gorm:"not null;default:0;index"`

	// Renewal is true while a renewal request is outstanding on an Active listing.
	Renewal            bool `gorm:"not null;default:false"`
	RenewalRequestedAt *time.Time

	SubmittedAt      *time.Time // submitted for pre-approval
	PreApprovedAt    *time.Time
	FinalSubmittedAt *time.Time // submitted for final approval
	ApprovedAt       *time.Time
	ClosedAt         *time.Time

	// ExpiresAt is meaningful only while Status == Active.
	ExpiresAt                  *time.Time
	LastExpiryReminderAt       *time.Time
	RejectionReason            *string
	PreApprovalRejectionReason *string

	CreatedBy uuid.UUID `gorm:"index"`
}

type JobListingList []JobListing

func (j JobListing) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
