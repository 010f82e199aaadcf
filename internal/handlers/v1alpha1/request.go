package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/service/mappers"
	"github.com/saino365/internhub/internal/store/model"
)

func (h *ServiceHandler) CreateExtensionRequest(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, model.RequestKindExtension)
}

func (h *ServiceHandler) CreateEarlyCompletionRequest(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, model.RequestKindEarlyCompletion)
}

func (h *ServiceHandler) CreateTerminationRequest(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, model.RequestKindTermination)
}

func (h *ServiceHandler) createRequest(w http.ResponseWriter, r *http.Request, kind model.RequestKind) {
	var body api.EmploymentRequestCreate
	if !h.decode(w, r, &body) {
		return
	}

	request, err := h.requestService.CreateRequest(r.Context(), mappers.RequestCreateForm{
		EmploymentID: body.EmploymentId,
		Kind:         kind,
		InitiatedBy:  body.InitiatedBy,
		Reason:       body.Reason,
		Remark:       body.Remark,
		ProposedDate: body.ProposedDate,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, requestToApi(*request))
}

// InitiateCompanyTermination opens and approves an employer-side termination
// in one call.
func (h *ServiceHandler) InitiateCompanyTermination(w http.ResponseWriter, r *http.Request) {
	var body api.EmploymentRequestCreate
	if !h.decode(w, r, &body) {
		return
	}

	request, err := h.requestService.InitiateCompanyTermination(r.Context(), mappers.RequestCreateForm{
		EmploymentID: body.EmploymentId,
		InitiatedBy:  body.InitiatedBy,
		Reason:       body.Reason,
		Remark:       body.Remark,
		ProposedDate: body.ProposedDate,
	}, body.ActorId)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, requestToApi(*request))
}

func (h *ServiceHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var body api.EmploymentRequestDecision
	if !h.decode(w, r, &body) {
		return
	}

	request, err := h.requestService.DecideRequest(r.Context(), id, body.Approve, body.DecisionRemark, body.DecidedBy)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, requestToApi(*request))
}

func (h *ServiceHandler) ListEmploymentRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var kind model.RequestKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		switch model.RequestKind(raw) {
		case model.RequestKindExtension, model.RequestKindEarlyCompletion, model.RequestKindTermination:
			kind = model.RequestKind(raw)
		default:
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error{Message: "unknown request kind: " + raw})
			return
		}
	}

	requests, err := h.requestService.ListRequests(r.Context(), id, kind)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, requestListToApi(requests))
}
