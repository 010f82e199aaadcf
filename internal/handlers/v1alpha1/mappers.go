package v1alpha1

import (
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/store/model"
)

func jobListingToApi(listing model.JobListing) api.JobListing {
	return api.JobListing{
		Id:                         listing.ID,
		CompanyId:                  listing.CompanyID,
		CompanyName:                listing.Company.Name,
		Title:                      listing.Title,
		Status:                     listing.Status.String(),
		Renewal:                    listing.Renewal,
		RenewalRequestedAt:         listing.RenewalRequestedAt,
		SubmittedAt:                listing.SubmittedAt,
		PreApprovedAt:              listing.PreApprovedAt,
		FinalSubmittedAt:           listing.FinalSubmittedAt,
		ApprovedAt:                 listing.ApprovedAt,
		ClosedAt:                   listing.ClosedAt,
		ExpiresAt:                  listing.ExpiresAt,
		RejectionReason:            listing.RejectionReason,
		PreApprovalRejectionReason: listing.PreApprovalRejectionReason,
		CreatedAt:                  listing.CreatedAt,
	}
}

func jobListingListToApi(listings model.JobListingList) api.JobListingList {
	result := make(api.JobListingList, 0, len(listings))
	for _, listing := range listings {
		result = append(result, jobListingToApi(listing))
	}
	return result
}

func companyToApi(company model.Company) api.Company {
	return api.Company{
		Id:                 company.ID,
		Name:               company.Name,
		RegistrationNumber: company.RegistrationNumber,
		VerifiedStatus:     company.VerifiedStatus.String(),
		SubmittedAt:        company.SubmittedAt,
		ReviewedAt:         company.ReviewedAt,
		RejectionReason:    company.RejectionReason,
		CreatedAt:          company.CreatedAt,
	}
}

func companyListToApi(companies model.CompanyList) api.CompanyList {
	result := make(api.CompanyList, 0, len(companies))
	for _, company := range companies {
		result = append(result, companyToApi(company))
	}
	return result
}

func employmentToApi(record model.EmploymentRecord) api.EmploymentRecord {
	docs := make([]api.OnboardingDocument, 0, len(record.Documents))
	for _, doc := range record.Documents {
		docs = append(docs, api.OnboardingDocument{
			Id:         doc.ID,
			Type:       doc.Type,
			FileKey:    doc.FileKey,
			Verified:   doc.Verified,
			UploadedAt: doc.UploadedAt,
		})
	}

	notes := make([]api.EmploymentNote, 0, len(record.Notes))
	for _, note := range record.Notes {
		notes = append(notes, api.EmploymentNote{
			Id:        note.ID,
			AuthorId:  note.AuthorID,
			Text:      note.Text,
			CreatedAt: note.CreatedAt,
		})
	}

	return api.EmploymentRecord{
		Id:               record.ID,
		UserId:           record.UserID,
		CompanyId:        record.CompanyID,
		JobListingId:     record.JobListingID,
		Status:           record.Status.String(),
		StartDate:        record.StartDate,
		EndDate:          record.EndDate,
		RequiredDocTypes: record.RequiredDocTypes,
		Documents:        docs,
		Notes:            notes,
		CreatedAt:        record.CreatedAt,
	}
}

func requestToApi(request model.EmploymentRequest) api.EmploymentRequest {
	return api.EmploymentRequest{
		Id:             request.ID,
		EmploymentId:   request.EmploymentID,
		Kind:           string(request.Kind),
		Status:         request.Status.String(),
		InitiatedBy:    request.InitiatedBy,
		Reason:         request.Reason,
		Remark:         request.Remark,
		ProposedDate:   request.ProposedDate,
		DecisionRemark: request.DecisionRemark,
		DecidedAt:      request.DecidedAt,
		CreatedAt:      request.CreatedAt,
	}
}

func requestListToApi(requests model.EmploymentRequestList) api.EmploymentRequestList {
	result := make(api.EmploymentRequestList, 0, len(requests))
	for _, request := range requests {
		result = append(result, requestToApi(request))
	}
	return result
}
