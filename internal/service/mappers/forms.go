package mappers

import (
	"time"

	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/store/model"
)

type JobListingCreateForm struct {
	CompanyID uuid.UUID
	Title     string
	CreatedBy uuid.UUID
}

func (f JobListingCreateForm) ToJobListing() model.JobListing {
	return model.JobListing{
		ID:        uuid.New(),
		CompanyID: f.CompanyID,
		Title:     f.Title,
		Status:    model.JobListingDraft,
		CreatedBy: f.CreatedBy,
	}
}

type CompanyCreateForm struct {
	Name               string
	RegistrationNumber string
	OwnerUserID        uuid.UUID
}

func (f CompanyCreateForm) ToCompany() model.Company {
	return model.Company{
		ID:                 uuid.New(),
		Name:               f.Name,
		RegistrationNumber: f.RegistrationNumber,
		OwnerUserID:        f.OwnerUserID,
		VerifiedStatus:     model.CompanyVerificationPending,
	}
}

type EmploymentCreateForm struct {
	UserID           uuid.UUID
	CompanyID        uuid.UUID
	JobListingID     uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	RequiredDocTypes []string
}

func (f EmploymentCreateForm) ToEmploymentRecord() model.EmploymentRecord {
	return model.EmploymentRecord{
		ID:               uuid.New(),
		UserID:           f.UserID,
		CompanyID:        f.CompanyID,
		JobListingID:     f.JobListingID,
		Status:           model.EmploymentUpcoming,
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		RequiredDocTypes: f.RequiredDocTypes,
	}
}

type RequestCreateForm struct {
	EmploymentID uuid.UUID
	Kind         model.RequestKind
	InitiatedBy  string
	Reason       string
	Remark       *string
	ProposedDate *time.Time
}

func (f RequestCreateForm) ToEmploymentRequest() model.EmploymentRequest {
	return model.EmploymentRequest{
		ID:           uuid.New(),
		EmploymentID: f.EmploymentID,
		Kind:         f.Kind,
		Status:       model.RequestPending,
		InitiatedBy:  f.InitiatedBy,
		Reason:       f.Reason,
		Remark:       f.Remark,
		ProposedDate: f.ProposedDate,
	}
}
