package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/saino365/internhub/api/v1alpha1"
	apivalidator "github.com/saino365/internhub/internal/handlers/validator"
	"github.com/saino365/internhub/internal/service"
)

// ServiceHandler glues the HTTP surface to the lifecycle services.
type ServiceHandler struct {
	jobListingService *service.JobListingService
	companyService    *service.CompanyService
	employmentService *service.EmploymentService
	requestService    *service.RequestService
	monitoringService *service.MonitoringService
	validator         *apivalidator.Validator
}

func NewServiceHandler(
	jobListingService *service.JobListingService,
	companyService *service.CompanyService,
	employmentService *service.EmploymentService,
	requestService *service.RequestService,
	monitoringService *service.MonitoringService,
) *ServiceHandler {
	v := apivalidator.NewValidator()
	v.Register(apivalidator.NewMarketplaceValidationRules()...)

	return &ServiceHandler{
		jobListingService: jobListingService,
		companyService:    companyService,
		employmentService: employmentService,
		requestService:    requestService,
		monitoringService: monitoringService,
		validator:         v,
	}
}

// Routes mounts every API route on the given router.
func (h *ServiceHandler) Routes(router chi.Router) {
	router.Get("/health", h.Health)

	router.Route("/api/v1alpha1", func(r chi.Router) {
		r.Route("/job-listings", func(r chi.Router) {
			r.Get("/", h.ListJobListings)
			r.Post("/", h.CreateJobListing)
			r.Get("/{id}", h.GetJobListing)
			r.Patch("/{id}", h.UpdateJobListing)
		})

		r.Route("/company-verifications", func(r chi.Router) {
			r.Get("/", h.ListCompanyVerifications)
			r.Post("/", h.SubmitCompanyVerification)
			r.Get("/{id}", h.GetCompanyVerification)
			r.Patch("/{id}", h.UpdateCompanyVerification)
		})

		r.Route("/employment-records", func(r chi.Router) {
			r.Post("/", h.CreateEmploymentRecord)
			r.Get("/{id}", h.GetEmploymentRecord)
			r.Patch("/{id}", h.UpdateEmploymentRecord)
			r.Post("/{id}/notes", h.AddEmploymentNote)
			r.Post("/{id}/documents", h.AttachOnboardingDocument)
			r.Patch("/{id}/documents/{docId}", h.VerifyOnboardingDocument)
			r.Get("/{id}/requests", h.ListEmploymentRequests)
		})

		r.Post("/internship-extensions", h.CreateExtensionRequest)
		r.Post("/early-completions", h.CreateEarlyCompletionRequest)
		r.Post("/internship-terminations", h.CreateTerminationRequest)
		r.Post("/internship-terminations/company", h.InitiateCompanyTermination)
		r.Patch("/requests/{id}", h.DecideRequest)

		r.Route("/admin/monitoring", func(r chi.Router) {
			r.Get("/", h.MonitoringQueue)
			r.Get("/overview", h.MonitoringOverview)
		})
	})
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{Status: "ok"})
}
