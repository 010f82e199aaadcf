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

type RequestService struct {
	store       store.Store
	eventWriter EventWriter
	now         nowFunc
}

func NewRequestService(store store.Store, eventWriter EventWriter) *RequestService {
	return &RequestService{
		store:       store,
		eventWriter: eventWriter,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *RequestService) WithClock(fn func() time.Time) *RequestService {
	s.now = fn
	return s
}

func (s *RequestService) GetRequest(ctx context.Context, id uuid.UUID) (*model.EmploymentRequest, error) {
	request, err := s.store.Request().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrRequestNotFound(id)
		}
		return nil, err
	}
	return request, nil
}

func (s *RequestService) ListRequests(ctx context.Context, employmentID uuid.UUID, kind model.RequestKind) (model.EmploymentRequestList, error) {
	filter := store.NewRequestQueryFilter().ByEmploymentID(employmentID)
	if kind != "" {
		filter = filter.ByKind(kind)
	}
	return s.store.Request().List(ctx, filter, store.NewQueryOptions().WithOrder("created_at DESC"))
}

// CreateRequest opens a sub-workflow request against an employment record.
// The single-pending rule per (employment, kind) is enforced atomically by the
// store; a duplicate surfaces as a conflict.
func (s *RequestService) CreateRequest(ctx context.Context, form mappers.RequestCreateForm) (*model.EmploymentRequest, error) {
	if form.Reason == "" {
		return nil, NewErrValidation("a reason is required")
	}

	record, err := s.store.Employment().Get(ctx, form.EmploymentID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrEmploymentNotFound(form.EmploymentID)
		}
		return nil, err
	}

	if !form.Kind.AllowedFrom(record.Status) {
		return nil, NewErrPreconditionFailed("a " + string(form.Kind) + " request cannot be opened while the employment is " + record.Status.String())
	}

	if err := s.validateProposedDate(form, *record); err != nil {
		return nil, err
	}

	request, err := s.store.Request().CreatePendingGuarded(ctx, form.ToEmploymentRequest())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrPendingRequestExists(form.EmploymentID, string(form.Kind))
		}
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.EmploymentMessageKind, events.EmploymentEvent{
		EmploymentID: form.EmploymentID.String(),
		Action:       "request_created",
		Status:       record.Status.String(),
		RequestKind:  string(form.Kind),
		RequestID:    request.ID.String(),
	})
	return request, nil
}

// DecideRequest resolves a pending request. An approval and its employment
// side effect commit in one transaction so the request can never be approved
// while the record stays untouched.
func (s *RequestService) DecideRequest(ctx context.Context, id uuid.UUID, approve bool, decisionRemark *string, decidedBy uuid.UUID) (*model.EmploymentRequest, error) {
	if !approve && (decisionRemark == nil || *decisionRemark == "") {
		return nil, NewErrValidation("a decision remark is required when rejecting")
	}

	request, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != model.RequestPending {
		return nil, NewErrInvalidTransition("request", request.Status, decisionStatus(approve))
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"status":          decisionStatus(approve),
		"decision_remark": decisionRemark,
		"decided_by":      decidedBy,
		"decided_at":      s.now(),
	}
	decided, err := s.store.Request().DecideGuarded(ctx, id, fields)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrStaleTransition("request", id)
		}
		return nil, err
	}

	if approve {
		if err := s.applyApproval(ctx, *decided); err != nil {
			_, _ = store.Rollback(ctx)
			return nil, err
		}
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	decision := "rejected"
	if approve {
		decision = "approved"
	}
	metrics.IncreaseRequestDecisionsTotalMetric(string(decided.Kind), decision)
	emitEvent(ctx, s.eventWriter, events.EmploymentMessageKind, events.EmploymentEvent{
		EmploymentID: decided.EmploymentID.String(),
		Action:       "request_" + decision,
		RequestKind:  string(decided.Kind),
		RequestID:    decided.ID.String(),
	})
	return decided, nil
}

// InitiateCompanyTermination opens and approves a termination in one call.
// An employer-side termination is unilateral, so no separate review happens.
func (s *RequestService) InitiateCompanyTermination(ctx context.Context, form mappers.RequestCreateForm, decidedBy uuid.UUID) (*model.EmploymentRequest, error) {
	form.Kind = model.RequestKindTermination

	request, err := s.CreateRequest(ctx, form)
	if err != nil {
		return nil, err
	}

	remark := "terminated by the employer"
	return s.DecideRequest(ctx, request.ID, true, &remark, decidedBy)
}

// validateProposedDate applies the kind-specific date rules against the
// record's current timeline.
func (s *RequestService) validateProposedDate(form mappers.RequestCreateForm, record model.EmploymentRecord) error {
	switch form.Kind {
	case model.RequestKindExtension:
		if form.ProposedDate == nil {
			return NewErrValidation("an extension requires a proposed end date")
		}
		if !form.ProposedDate.After(record.EndDate) {
			return NewErrValidation("the proposed end date must be after the current end date")
		}
	case model.RequestKindEarlyCompletion:
		if form.ProposedDate == nil {
			return NewErrValidation("an early completion requires a proposed completion date")
		}
		if !form.ProposedDate.Before(record.EndDate) {
			return NewErrValidation("the proposed completion date must be before the current end date")
		}
	case model.RequestKindTermination:
		// the last working day is optional and defaults to the decision time
	default:
		return NewErrValidation("unknown request kind: " + string(form.Kind))
	}
	return nil
}

// applyApproval performs the employment side effect of an approved request.
// The employment write is guarded on the status the request was opened
// against, so a record that moved on concurrently fails the approval.
func (s *RequestService) applyApproval(ctx context.Context, request model.EmploymentRequest) error {
	record, err := s.store.Employment().Get(ctx, request.EmploymentID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrEmploymentNotFound(request.EmploymentID)
		}
		return err
	}

	if !request.Kind.AllowedFrom(record.Status) {
		return NewErrPreconditionFailed("the employment is " + record.Status.String() + ", a " + string(request.Kind) + " can no longer be applied")
	}

	var fields map[string]any
	var to model.EmploymentStatus
	switch request.Kind {
	case model.RequestKindExtension:
		to = record.Status
		fields = map[string]any{"end_date": *request.ProposedDate}
	case model.RequestKindEarlyCompletion:
		to = model.EmploymentClosure
		fields = map[string]any{
			"status":   model.EmploymentClosure,
			"end_date": *request.ProposedDate,
		}
	case model.RequestKindTermination:
		to = model.EmploymentTerminated
		endDate := s.now()
		if request.ProposedDate != nil {
			endDate = *request.ProposedDate
		}
		fields = map[string]any{
			"status":   model.EmploymentTerminated,
			"end_date": endDate,
		}
	}

	if _, err := s.store.Employment().UpdateGuarded(ctx, record.ID, store.Guard{"status": record.Status}, fields); err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return NewErrStaleTransition("employment record", record.ID)
		}
		return err
	}

	if to != record.Status {
		metrics.IncreaseEmploymentTransitionsTotalMetric(record.Status.String(), to.String())
	}
	return nil
}

func decisionStatus(approve bool) model.RequestStatus {
	if approve {
		return model.RequestApproved
	}
	return model.RequestRejected
}
