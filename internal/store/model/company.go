package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	gorm.Model
	ID                 uuid.UUID `gorm:"primaryKey;"`
	Name               string    `gorm:"not null"`
	RegistrationNumber string    `gorm:"uniqueIndex"`
	OwnerUserID        uuid.UUID `gorm:"index"`

	VerifiedStatus  CompanyVerificationStatus `gorm:"not null;default:0;index"`
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
	ReviewerID      *uuid.UUID
	RejectionReason *string
}

type CompanyList []Company

func (c Company) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}
