package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/service/mappers"
	"github.com/saino365/internhub/internal/store/model"
)

// Tagged verification commands accepted by UpdateCompanyVerification.
const (
	companyActionDecide   = "decide"
	companyActionResubmit = "resubmit"
)

func (h *ServiceHandler) ListCompanyVerifications(w http.ResponseWriter, r *http.Request) {
	var statuses []model.CompanyVerificationStatus
	if label := r.URL.Query().Get("status"); label != "" {
		status, ok := model.CompanyVerificationStatusFromLabel(label)
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error{Message: "unknown verification status: " + label})
			return
		}
		statuses = append(statuses, status)
	}

	companies, err := h.companyService.ListCompanies(r.Context(), statuses...)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, companyListToApi(companies))
}

func (h *ServiceHandler) GetCompanyVerification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, companyToApi(*company))
}

func (h *ServiceHandler) SubmitCompanyVerification(w http.ResponseWriter, r *http.Request) {
	var body api.CompanyVerificationCreate
	if !h.decode(w, r, &body) {
		return
	}

	company, err := h.companyService.SubmitVerification(r.Context(), mappers.CompanyCreateForm{
		Name:               body.Name,
		RegistrationNumber: body.RegistrationNumber,
		OwnerUserID:        body.OwnerUserId,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, companyToApi(*company))
}

func (h *ServiceHandler) UpdateCompanyVerification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var body api.CompanyVerificationUpdate
	if !h.decode(w, r, &body) {
		return
	}

	switch body.Action {
	case companyActionResubmit:
		company, err := h.companyService.ResubmitVerification(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, companyToApi(*company))

	case companyActionDecide:
		approve := body.Approve != nil && *body.Approve
		company, err := h.companyService.DecideVerification(r.Context(), id, approve, body.Reason, body.ReviewerId)
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, companyToApi(*company))

	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "unknown verification action: " + body.Action})
	}
}
