package v1alpha1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	api "github.com/saino365/internhub/api/v1alpha1"
	"github.com/saino365/internhub/internal/service"
)

// MonitoringQueue serves one admin queue page. Unknown queue names fail
// validation; limit and offset are clamped by the service.
func (h *ServiceHandler) MonitoringQueue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := service.QueueQuery{
		Type:   service.QueueType(q.Get("queue")),
		Search: q.Get("search"),
	}
	if query.Type == "" {
		query.Type = service.QueuePreApproval
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error{Message: "invalid limit: " + raw})
			return
		}
		query.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error{Message: "invalid offset: " + raw})
			return
		}
		query.Offset = offset
	}

	var ok bool
	if query.From, ok = queryTime(w, r, "from"); !ok {
		return
	}
	if query.To, ok = queryTime(w, r, "to"); !ok {
		return
	}

	page, err := h.monitoringService.Queue(r.Context(), query)
	if err != nil {
		renderError(w, r, err)
		return
	}

	result := api.MonitoringQueue{
		Queue:  string(query.Type),
		Total:  page.Total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if page.Companies != nil {
		result.Companies = companyListToApi(page.Companies)
	} else {
		result.Listings = jobListingListToApi(page.Listings)
	}

	render.JSON(w, r, result)
}

func (h *ServiceHandler) MonitoringOverview(w http.ResponseWriter, r *http.Request) {
	overview := h.monitoringService.Overview(r.Context())

	render.JSON(w, r, api.MonitoringOverview{
		PendingPreApproval:         overview.PendingPreApproval,
		PendingFinalApproval:       overview.PendingFinalApproval,
		PendingRenewal:             overview.PendingRenewal,
		PendingCompanyVerification: overview.PendingCompanyVerification,
		ExpiringSoon:               overview.ExpiringSoon,
		ListingsByStatus:           overview.ListingsByStatus,
		UsersByRole:                overview.UsersByRole,
		RecentListings:             jobListingListToApi(overview.RecentListings),
	})
}

func queryTime(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid " + name + " timestamp, expected RFC3339"})
		return time.Time{}, false
	}
	return t, true
}
