package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/service/mappers"
)

func (h *ServiceHandler) GetEmploymentRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.employmentService.GetEmployment(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, employmentToApi(*record))
}

func (h *ServiceHandler) CreateEmploymentRecord(w http.ResponseWriter, r *http.Request) {
	var body api.EmploymentRecordCreate
	if !h.decode(w, r, &body) {
		return
	}

	record, err := h.employmentService.CreateEmployment(r.Context(), mappers.EmploymentCreateForm{
		UserID:           body.UserId,
		CompanyID:        body.CompanyId,
		JobListingID:     body.JobListingId,
		StartDate:        body.StartDate,
		EndDate:          body.EndDate,
		RequiredDocTypes: body.RequiredDocTypes,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, employmentToApi(*record))
}

// UpdateEmploymentRecord applies one tagged transition command to a record.
func (h *ServiceHandler) UpdateEmploymentRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var body api.EmploymentRecordUpdate
	if !h.decode(w, r, &body) {
		return
	}

	record, err := h.employmentService.ApplyTransition(r.Context(), id, body.Action)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, employmentToApi(*record))
}

func (h *ServiceHandler) AddEmploymentNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var body api.EmploymentNoteCreate
	if !h.decode(w, r, &body) {
		return
	}

	record, err := h.employmentService.AddNote(r.Context(), id, body.AuthorId, body.Text)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, employmentToApi(*record))
}

func (h *ServiceHandler) AttachOnboardingDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var body api.OnboardingDocumentCreate
	if !h.decode(w, r, &body) {
		return
	}

	record, err := h.employmentService.AttachDocument(r.Context(), id, body.Type, body.FileKey)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, employmentToApi(*record))
}

func (h *ServiceHandler) VerifyOnboardingDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	docID, ok := pathUUID(w, r, "docId")
	if !ok {
		return
	}

	var body api.OnboardingDocumentUpdate
	if !h.decode(w, r, &body) {
		return
	}

	record, err := h.employmentService.VerifyDocument(r.Context(), id, docID, body.Verified)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, employmentToApi(*record))
}
