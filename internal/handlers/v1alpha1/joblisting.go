package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/service"
	"github.com/saino365/internhub/internal/service/mappers"
	"github.com/saino365/internhub/internal/store/model"
)

func (h *ServiceHandler) ListJobListings(w http.ResponseWriter, r *http.Request) {
	filters := []service.ListingFilterFunc{}

	if label := r.URL.Query().Get("status"); label != "" {
		status, ok := model.JobListingStatusFromLabel(label)
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error{Message: "unknown listing status: " + label})
			return
		}
		filters = append(filters, service.WithListingStatuses(status))
	}
	if raw := r.URL.Query().Get("companyId"); raw != "" {
		companyID, err := uuid.Parse(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error{Message: "invalid company id: " + raw})
			return
		}
		filters = append(filters, service.WithListingCompanyID(companyID))
	}

	listings, err := h.jobListingService.ListJobListings(r.Context(), service.NewListingFilter(filters...))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, jobListingListToApi(listings))
}

func (h *ServiceHandler) GetJobListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	listing, err := h.jobListingService.GetJobListing(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, jobListingToApi(*listing))
}

func (h *ServiceHandler) CreateJobListing(w http.ResponseWriter, r *http.Request) {
	var body api.JobListingCreate
	if !h.decode(w, r, &body) {
		return
	}

	listing, err := h.jobListingService.CreateJobListing(r.Context(), mappers.JobListingCreateForm{
		CompanyID: body.CompanyId,
		Title:     body.Title,
		CreatedBy: body.CreatedBy,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, jobListingToApi(*listing))
}

// UpdateJobListing applies one tagged transition command to a listing.
func (h *ServiceHandler) UpdateJobListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var body api.JobListingUpdate
	if !h.decode(w, r, &body) {
		return
	}

	cmd := service.ListingCommand{
		Action:    body.Action,
		Reason:    body.Reason,
		DecidedBy: body.DecidedBy,
	}
	if body.Approve != nil {
		cmd.Approve = *body.Approve
	}

	listing, err := h.jobListingService.ApplyTransition(r.Context(), id, cmd)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, jobListingToApi(*listing))
}

// pathUUID parses a UUID path parameter, rendering a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid " + name + " path parameter"})
		return uuid.Nil, false
	}
	return id, true
}
