package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/events"
	"github.com/saino365/internhub/internal/service/mappers"
	"github.com/saino365/internhub/internal/store"
	"github.com/saino365/internhub/internal/store/model"
	"github.com/saino365/internhub/pkg/metrics"
)

// Tagged listing commands accepted by ApplyTransition.
const (
	ListingActionSubmit         = "submit"
	ListingActionDecidePre      = "decide_pre_approval"
	ListingActionSubmitFinal    = "submit_final"
	ListingActionDecideFinal    = "decide_final_approval"
	ListingActionRequestRenewal = "request_renewal"
	ListingActionDecideRenewal  = "decide_renewal"
	ListingActionClose          = "close"
)

type ListingCommand struct {
	Action    string
	Approve   bool
	Reason    *string
	DecidedBy uuid.UUID
}

type JobListingService struct {
	store          store.Store
	eventWriter    EventWriter
	validityWindow time.Duration
	now            nowFunc
}

func NewJobListingService(store store.Store, eventWriter EventWriter, validityDays int) *JobListingService {
	return &JobListingService{
		store:          store,
		eventWriter:    eventWriter,
		validityWindow: time.Duration(validityDays) * 24 * time.Hour,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *JobListingService) WithClock(fn func() time.Time) *JobListingService {
	s.now = fn
	return s
}

func (s *JobListingService) ListJobListings(ctx context.Context, filter *ListingFilter) (model.JobListingList, error) {
	storeFilter := store.NewJobListingQueryFilter()
	if len(filter.Statuses) > 0 {
		storeFilter = storeFilter.ByStatus(filter.Statuses...)
	}
	if filter.CompanyID != uuid.Nil {
		storeFilter = storeFilter.ByCompanyID(filter.CompanyID)
	}

	return s.store.JobListing().List(ctx, storeFilter, store.NewQueryOptions().WithOrder("job_listings.created_at DESC"))
}

func (s *JobListingService) GetJobListing(ctx context.Context, id uuid.UUID) (*model.JobListing, error) {
	listing, err := s.store.JobListing().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobListingNotFound(id)
		}
		return nil, err
	}
	return listing, nil
}

func (s *JobListingService) CreateJobListing(ctx context.Context, form mappers.JobListingCreateForm) (*model.JobListing, error) {
	if form.Title == "" {
		return nil, NewErrValidation("listing title must not be empty")
	}

	if _, err := s.store.Company().Get(ctx, form.CompanyID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCompanyNotFound(form.CompanyID)
		}
		return nil, err
	}

	return s.store.JobListing().Create(ctx, form.ToJobListing())
}

// ApplyTransition dispatches a tagged command to the matching lifecycle
// operation. Unknown actions fail validation before any state is read.
func (s *JobListingService) ApplyTransition(ctx context.Context, id uuid.UUID, cmd ListingCommand) (*model.JobListing, error) {
	switch cmd.Action {
	case ListingActionSubmit:
		return s.SubmitForPreApproval(ctx, id)
	case ListingActionDecidePre:
		return s.DecidePreApproval(ctx, id, cmd)
	case ListingActionSubmitFinal:
		return s.SubmitForFinalApproval(ctx, id)
	case ListingActionDecideFinal:
		return s.DecideFinalApproval(ctx, id, cmd)
	case ListingActionRequestRenewal:
		return s.RequestRenewal(ctx, id)
	case ListingActionDecideRenewal:
		return s.DecideRenewal(ctx, id, cmd)
	case ListingActionClose:
		return s.CloseJobListing(ctx, id)
	default:
		return nil, NewErrValidation("unknown listing action: " + cmd.Action)
	}
}

// SubmitForPreApproval moves a Draft into the admin pre-approval queue. Only
// verified employers may submit.
func (s *JobListingService) SubmitForPreApproval(ctx context.Context, id uuid.UUID) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.Status.CanTransitionTo(model.JobListingPendingPreApproval) {
		return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingPendingPreApproval)
	}

	company, err := s.store.Company().Get(ctx, listing.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCompanyNotFound(listing.CompanyID)
		}
		return nil, err
	}
	if company.VerifiedStatus != model.CompanyVerificationApproved {
		return nil, NewErrCompanyNotVerified(company.ID)
	}

	return s.transition(ctx, id, listing.Status, model.JobListingPendingPreApproval, "submitted_for_pre_approval", map[string]any{
		"status":       model.JobListingPendingPreApproval,
		"submitted_at": s.now(),
	})
}

// DecidePreApproval resolves the first review stage. Approval advances the
// listing to PreApproved; rejection returns it to Draft with the reason kept
// for the employer.
func (s *JobListingService) DecidePreApproval(ctx context.Context, id uuid.UUID, cmd ListingCommand) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Approve {
		if !listing.Status.CanTransitionTo(model.JobListingPreApproved) {
			return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingPreApproved)
		}
		return s.transition(ctx, id, model.JobListingPendingPreApproval, model.JobListingPreApproved, "pre_approved", map[string]any{
			"status":          model.JobListingPreApproved,
			"pre_approved_at": s.now(),
		})
	}

	if cmd.Reason == nil || *cmd.Reason == "" {
		return nil, NewErrValidation("a rejection reason is required")
	}
	if !listing.Status.CanTransitionTo(model.JobListingDraft) {
		return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingDraft)
	}
	return s.transition(ctx, id, model.JobListingPendingPreApproval, model.JobListingDraft, "pre_approval_rejected", map[string]any{
		"status":                        model.JobListingDraft,
		"pre_approval_rejection_reason": *cmd.Reason,
	})
}

func (s *JobListingService) SubmitForFinalApproval(ctx context.Context, id uuid.UUID) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.Status.CanTransitionTo(model.JobListingPendingFinalApproval) {
		return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingPendingFinalApproval)
	}

	return s.transition(ctx, id, model.JobListingPreApproved, model.JobListingPendingFinalApproval, "submitted_for_final_approval", map[string]any{
		"status":             model.JobListingPendingFinalApproval,
		"final_submitted_at": s.now(),
	})
}

// DecideFinalApproval resolves the second review stage. Approval activates
// the listing and starts its validity window; rejection sends it back to
// PreApproved.
func (s *JobListingService) DecideFinalApproval(ctx context.Context, id uuid.UUID, cmd ListingCommand) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Approve {
		if !listing.Status.CanTransitionTo(model.JobListingActive) {
			return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingActive)
		}
		now := s.now()
		return s.transition(ctx, id, model.JobListingPendingFinalApproval, model.JobListingActive, "activated", map[string]any{
			"status":      model.JobListingActive,
			"approved_at": now,
			"expires_at":  now.Add(s.validityWindow),
		})
	}

	if cmd.Reason == nil || *cmd.Reason == "" {
		return nil, NewErrValidation("a rejection reason is required")
	}
	if !listing.Status.CanTransitionTo(model.JobListingPreApproved) {
		return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingPreApproved)
	}
	return s.transition(ctx, id, model.JobListingPendingFinalApproval, model.JobListingPreApproved, "final_approval_rejected", map[string]any{
		"status":           model.JobListingPreApproved,
		"rejection_reason": *cmd.Reason,
	})
}

// RequestRenewal flags an Active listing for renewal review. The guard covers
// both columns so a double request loses cleanly.
func (s *JobListingService) RequestRenewal(ctx context.Context, id uuid.UUID) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.JobListingActive {
		return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingActive)
	}
	if listing.Renewal {
		return nil, NewErrRenewalAlreadyRequested(id)
	}

	updated, err := s.store.JobListing().UpdateGuarded(ctx, id,
		store.Guard{"status": model.JobListingActive, "renewal": false},
		map[string]any{
			"renewal":              true,
			"renewal_requested_at": s.now(),
		})
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, s.classifyRenewalRace(ctx, id)
		}
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.JobMessageKind, events.JobListingEvent{
		ListingID: id.String(),
		CompanyID: listing.CompanyID.String(),
		Action:    "renewal_requested",
		Status:    updated.Status.String(),
	})
	return updated, nil
}

// DecideRenewal resolves a renewal request on an Active listing. Approval
// restarts the validity window from the decision time; rejection only clears
// the flag and leaves the current expiry untouched.
func (s *JobListingService) DecideRenewal(ctx context.Context, id uuid.UUID, cmd ListingCommand) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.JobListingActive || !listing.Renewal {
		return nil, NewErrNoPendingRenewal(id)
	}

	fields := map[string]any{
		"renewal":              false,
		"renewal_requested_at": nil,
	}
	action := "renewal_rejected"
	if cmd.Approve {
		fields["expires_at"] = s.now().Add(s.validityWindow)
		action = "renewal_approved"
	} else if cmd.Reason != nil {
		fields["rejection_reason"] = *cmd.Reason
	}

	updated, err := s.store.JobListing().UpdateGuarded(ctx, id,
		store.Guard{"status": model.JobListingActive, "renewal": true}, fields)
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrStaleTransition("job listing", id)
		}
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.JobMessageKind, events.JobListingEvent{
		ListingID: id.String(),
		CompanyID: listing.CompanyID.String(),
		Action:    action,
		Status:    updated.Status.String(),
	})
	return updated, nil
}

func (s *JobListingService) CloseJobListing(ctx context.Context, id uuid.UUID) (*model.JobListing, error) {
	listing, err := s.GetJobListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.Status.CanTransitionTo(model.JobListingClosed) {
		return nil, NewErrInvalidTransition("job listing", listing.Status, model.JobListingClosed)
	}

	return s.transition(ctx, id, model.JobListingActive, model.JobListingClosed, "closed", map[string]any{
		"status":    model.JobListingClosed,
		"closed_at": s.now(),
		"renewal":   false,
	})
}

// transition performs the guarded status write shared by the pipeline steps
// and reports the outcome through metrics and the event stream.
func (s *JobListingService) transition(ctx context.Context, id uuid.UUID, from, to model.JobListingStatus, action string, fields map[string]any) (*model.JobListing, error) {
	updated, err := s.store.JobListing().UpdateGuarded(ctx, id, store.Guard{"status": from}, fields)
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrStaleTransition("job listing", id)
		}
		return nil, err
	}

	metrics.IncreaseListingTransitionsTotalMetric(from.String(), to.String())
	emitEvent(ctx, s.eventWriter, events.JobMessageKind, events.JobListingEvent{
		ListingID: id.String(),
		CompanyID: updated.CompanyID.String(),
		Action:    action,
		Status:    to.String(),
	})
	return updated, nil
}

// classifyRenewalRace re-reads a listing after a lost renewal guard to tell a
// concurrent close apart from a concurrent duplicate request.
func (s *JobListingService) classifyRenewalRace(ctx context.Context, id uuid.UUID) error {
	listing, err := s.store.JobListing().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrJobListingNotFound(id)
		}
		return err
	}
	if listing.Status != model.JobListingActive {
		return NewErrInvalidTransition("job listing", listing.Status, model.JobListingActive)
	}
	if listing.Renewal {
		return NewErrRenewalAlreadyRequested(id)
	}
	return NewErrStaleTransition("job listing", id)
}

type ListingFilterFunc func(f *ListingFilter)

type ListingFilter struct {
	Statuses  []model.JobListingStatus
	CompanyID uuid.UUID
}

func NewListingFilter(filters ...ListingFilterFunc) *ListingFilter {
	f := &ListingFilter{}
	for _, fn := range filters {
		fn(f)
	}
	return f
}

func WithListingStatuses(statuses ...model.JobListingStatus) ListingFilterFunc {
	return func(f *ListingFilter) {
		f.Statuses = statuses
	}
}

func WithListingCompanyID(companyID uuid.UUID) ListingFilterFunc {
	return func(f *ListingFilter) {
		f.CompanyID = companyID
	}
}
