package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmploymentRecord struct {
	gorm.Model
	ID           uuid.UUID `gorm:"primaryKey;"`
	UserID       uuid.UUID `gorm:"not null;index"`
	CompanyID    uuid.UUID `gorm:"not null;index"`
	JobListingID uuid.UUID `gorm:"not null;index"`

	Status    EmploymentStatus `gorm:"not null;default:0;index"`
	StartDate time.Time
	EndDate   time.Time

	// RequiredDocTypes are the employer-mandated onboarding document types that
	// must have a verified upload before the record can leave Ongoing.
	RequiredDocTypes []string `gorm:"serializer:json"`

	Documents []OnboardingDocument `gorm:"foreignKey:EmploymentID;constraint:OnDelete:CASCADE;"`
	Notes     []EmploymentNote     `gorm:"foreignKey:EmploymentID;constraint:OnDelete:CASCADE;"`
}

type OnboardingDocument struct {
	ID           uuid.UUID `gorm:"primaryKey;"`
	EmploymentID uuid.UUID `gorm:"not null;index"`
	Type         string    `gorm:"not null"`
	FileKey      string
	Verified     bool `gorm:"not null;default:false"`
	UploadedAt   time.Time
}

type EmploymentNote struct {
	ID           uuid.UUID `gorm:"primaryKey;"`
	EmploymentID uuid.UUID `gorm:"not null;index"`
	AuthorID     uuid.UUID
	Text         string
	CreatedAt    time.Time
}

type EmploymentRecordList []EmploymentRecord

func (e EmploymentRecord) String() string {
	val, _ := json.Marshal(e)
	return string(val)
}

// HasVerifiedRequiredDocuments reports whether every required onboarding
// document type has at least one verified upload.
func (e EmploymentRecord) HasVerifiedRequiredDocuments() bool {
	for _, required := range e.RequiredDocTypes {
		verified := false
		for _, doc := range e.Documents {
			if doc.Type == required && doc.Verified {
				verified = true
				break
			}
		}
		if !verified {
			return false
		}
	}
	return true
}
