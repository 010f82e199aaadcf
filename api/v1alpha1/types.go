// Package v1alpha1 holds the wire types of the marketplace API. Statuses
// travel as their lowercase labels, never as the storage enums.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

type JobListing struct {
	Id                         uuid.UUID  `json:"id"`
	CompanyId                  uuid.UUID  `json:"companyId"`
	CompanyName                string     `json:"companyName,omitempty"`
	Title                      string     `json:"title"`
	Status                     string     `json:"status"`
	Renewal                    bool       `json:"renewal"`
	RenewalRequestedAt         *time.Time `json:"renewalRequestedAt,omitempty"`
	SubmittedAt                *time.Time `json:"submittedAt,omitempty"`
	PreApprovedAt              *time.Time `json:"preApprovedAt,omitempty"`
	FinalSubmittedAt           *time.Time `json:"finalSubmittedAt,omitempty"`
	ApprovedAt                 *time.Time `json:"approvedAt,omitempty"`
	ClosedAt                   *time.Time `json:"closedAt,omitempty"`
	ExpiresAt                  *time.Time `json:"expiresAt,omitempty"`
	RejectionReason            *string    `json:"rejectionReason,omitempty"`
	PreApprovalRejectionReason *string    `json:"preApprovalRejectionReason,omitempty"`
	CreatedAt                  time.Time  `json:"createdAt"`
}

type JobListingList []JobListing

type JobListingCreate struct {
	CompanyId uuid.UUID `json:"companyId" validate:"uuid_set"`
	Title     string    `json:"title" validate:"required,listing_title,max=150"`
	CreatedBy uuid.UUID `json:"createdBy" validate:"uuid_set"`
}

// JobListingUpdate is the tagged transition command applied with PATCH.
type JobListingUpdate struct {
	Action    string    `json:"action" validate:"required"`
	Approve   *bool     `json:"approve,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	DecidedBy uuid.UUID `json:"decidedBy,omitempty"`
}

type Company struct {
	Id                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	RegistrationNumber string     `json:"registrationNumber"`
	VerifiedStatus     string     `json:"verifiedStatus"`
	SubmittedAt        *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt         *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type CompanyList []Company

type CompanyVerificationCreate struct {
	Name               string    `json:"name" validate:"required,max=150"`
	RegistrationNumber string    `json:"registrationNumber" validate:"required,registration_number"`
	OwnerUserId        uuid.UUID `json:"ownerUserId" validate:"uuid_set"`
}

type CompanyVerificationUpdate struct {
	Action     string    `json:"action" validate:"required"`
	Approve    *bool     `json:"approve,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
	ReviewerId uuid.UUID `json:"reviewerId,omitempty"`
}

type OnboardingDocument struct {
	Id         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	FileKey    string    `json:"fileKey,omitempty"`
	Verified   bool      `json:"verified"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type EmploymentNote struct {
	Id        uuid.UUID `json:"id"`
	AuthorId  uuid.UUID `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type EmploymentRecord struct {
	Id               uuid.UUID            `json:"id"`
	UserId           uuid.UUID            `json:"userId"`
	CompanyId        uuid.UUID            `json:"companyId"`
	JobListingId     uuid.UUID            `json:"jobListingId"`
	Status           string               `json:"status"`
	StartDate        time.Time            `json:"startDate"`
	EndDate          time.Time            `json:"endDate"`
	RequiredDocTypes []string             `json:"requiredDocTypes,omitempty"`
	Documents        []OnboardingDocument `json:"documents,omitempty"`
	Notes            []EmploymentNote     `json:"notes,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
}

type EmploymentRecordCreate struct {
	UserId           uuid.UUID `json:"userId" validate:"uuid_set"`
	CompanyId        uuid.UUID `json:"companyId" validate:"uuid_set"`
	JobListingId     uuid.UUID `json:"jobListingId" validate:"uuid_set"`
	StartDate        time.Time `json:"startDate" validate:"required"`
	EndDate          time.Time `json:"endDate" validate:"required"`
	RequiredDocTypes []string  `json:"requiredDocTypes,omitempty"`
}

// EmploymentRecordUpdate is the tagged transition command applied with PATCH.
type EmploymentRecordUpdate struct {
	Action string `json:"action" validate:"required"`
}

type EmploymentNoteCreate struct {
	AuthorId uuid.UUID `json:"authorId" validate:"uuid_set"`
	Text     string    `json:"text" validate:"required,max=2000"`
}

type OnboardingDocumentCreate struct {
	Type    string `json:"type" validate:"required,max=100"`
	FileKey string `json:"fileKey" validate:"required"`
}

type OnboardingDocumentUpdate struct {
	Verified bool `json:"verified"`
}

type EmploymentRequest struct {
	Id             uuid.UUID  `json:"id"`
	EmploymentId   uuid.UUID  `json:"employmentId"`
	Kind           string     `json:"kind"`
	Status         string     `json:"status"`
	InitiatedBy    string     `json:"initiatedBy"`
	Reason         string     `json:"reason"`
	Remark         *string    `json:"remark,omitempty"`
	ProposedDate   *time.Time `json:"proposedDate,omitempty"`
	DecisionRemark *string    `json:"decisionRemark,omitempty"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type EmploymentRequestList []EmploymentRequest

type EmploymentRequestCreate struct {
	EmploymentId uuid.UUID  `json:"employmentId" validate:"uuid_set"`
	ActorId      uuid.UUID  `json:"actorId,omitempty"`
	InitiatedBy  string     `json:"initiatedBy" validate:"required,actor_role"`
	Reason       string     `json:"reason" validate:"required,max=2000"`
	Remark       *string    `json:"remark,omitempty" validate:"omitempty,max=2000"`
	ProposedDate *time.Time `json:"proposedDate,omitempty"`
}

type EmploymentRequestDecision struct {
	Approve        bool      `json:"approve"`
	DecisionRemark *string   `json:"decisionRemark,omitempty" validate:"omitempty,max=2000"`
	DecidedBy      uuid.UUID `json:"decidedBy" validate:"uuid_set"`
}

// MonitoringQueue is one page of an admin queue together with the total
// number of matches before pagination.
type MonitoringQueue struct {
	Queue     string         `json:"queue"`
	Total     int64          `json:"total"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
	Listings  JobListingList `json:"listings,omitempty"`
	Companies CompanyList    `json:"companies,omitempty"`
}

type MonitoringOverview struct {
	PendingPreApproval         int64            `json:"pendingPreApproval"`
	PendingFinalApproval       int64            `json:"pendingFinalApproval"`
	PendingRenewal             int64            `json:"pendingRenewal"`
	PendingCompanyVerification int64            `json:"pendingCompanyVerification"`
	ExpiringSoon               int64            `json:"expiringSoon"`
	ListingsByStatus           map[string]int64 `json:"listingsByStatus"`
	UsersByRole                map[string]int64 `json:"usersByRole"`
	RecentListings             JobListingList   `json:"recentListings"`
}

type Error struct {
	Message string `json:"message"`
}

type Health struct {
	Status string `json:"status"`
}
