package v1alpha1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/service"
	"go.uber.org/zap"
)

// renderError maps the service error taxonomy onto HTTP status codes.
// Anything unclassified is a 500 and logged with its cause.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch err.(type) {
	case *service.ErrResourceNotFound:
		status = http.StatusNotFound
	case *service.ErrValidation:
		status = http.StatusBadRequest
	case *service.ErrInvalidTransition:
		status = http.StatusConflict
	case *service.ErrConflict:
		status = http.StatusConflict
	case *service.ErrPreconditionFailed:
		status = http.StatusPreconditionFailed
	default:
		zap.S().Named("handlers").Errorw("request failed", "error", err, "path", r.URL.Path)
		render.Status(r, status)
		render.JSON(w, r, api.Error{Message: "internal server error"})
		return
	}

	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: err.Error()})
}

// decode unmarshals a JSON body and runs the struct validators. A failure is
// already rendered when decode returns false.
func (h *ServiceHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "malformed request body: " + err.Error()})
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
