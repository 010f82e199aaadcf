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
)

type CompanyService struct {
	store       store.Store
	eventWriter EventWriter
	now         nowFunc
}

func NewCompanyService(store store.Store, eventWriter EventWriter) *CompanyService {
	return &CompanyService{
		store:       store,
		eventWriter: eventWriter,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *CompanyService) WithClock(fn func() time.Time) *CompanyService {
	s.now = fn
	return s
}

func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company, err := s.store.Company().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCompanyNotFound(id)
		}
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context, statuses ...model.CompanyVerificationStatus) (model.CompanyList, error) {
	filter := store.NewCompanyQueryFilter()
	if len(statuses) > 0 {
		filter = filter.ByVerifiedStatus(statuses...)
	}
	return s.store.Company().List(ctx, filter, store.NewQueryOptions().WithOrder("companies.created_at DESC"))
}

// SubmitVerification registers a company and places it in the admin review
// queue in one step.
func (s *CompanyService) SubmitVerification(ctx context.Context, form mappers.CompanyCreateForm) (*model.Company, error) {
	if form.Name == "" {
		return nil, NewErrValidation("company name must not be empty")
	}
	if form.RegistrationNumber == "" {
		return nil, NewErrValidation("company registration number must not be empty")
	}

	company := form.ToCompany()
	now := s.now()
	company.SubmittedAt = &now

	created, err := s.store.Company().Create(ctx, company)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrConflict("a company with registration number " + form.RegistrationNumber + " already exists")
		}
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.CompanyMessageKind, events.CompanyEvent{
		CompanyID: created.ID.String(),
		Action:    "verification_submitted",
		Status:    created.VerifiedStatus.String(),
	})
	return created, nil
}

// ResubmitVerification puts a rejected company back into the review queue.
// The previous rejection reason is cleared so reviewers see a fresh case.
func (s *CompanyService) ResubmitVerification(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if !company.VerifiedStatus.CanTransitionTo(model.CompanyVerificationPending) {
		return nil, NewErrInvalidTransition("company verification", company.VerifiedStatus, model.CompanyVerificationPending)
	}

	updated, err := s.store.Company().UpdateGuarded(ctx, id,
		store.Guard{"verified_status": model.CompanyVerificationRejected},
		map[string]any{
			"verified_status":  model.CompanyVerificationPending,
			"submitted_at":     s.now(),
			"rejection_reason": nil,
			"reviewed_at":      nil,
			"reviewer_id":      nil,
		})
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrStaleTransition("company verification", id)
		}
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.CompanyMessageKind, events.CompanyEvent{
		CompanyID: id.String(),
		Action:    "verification_resubmitted",
		Status:    updated.VerifiedStatus.String(),
	})
	return updated, nil
}

// DecideVerification resolves a pending review. Rejection keeps the reason so
// the employer can fix and resubmit.
func (s *CompanyService) DecideVerification(ctx context.Context, id uuid.UUID, approve bool, reason *string, reviewerID uuid.UUID) (*model.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	target := model.CompanyVerificationApproved
	action := "verification_approved"
	fields := map[string]any{
		"reviewed_at": s.now(),
		"reviewer_id": reviewerID,
	}
	if !approve {
		if reason == nil || *reason == "" {
			return nil, NewErrValidation("a rejection reason is required")
		}
		target = model.CompanyVerificationRejected
		action = "verification_rejected"
		fields["rejection_reason"] = *reason
	}
	fields["verified_status"] = target

	if !company.VerifiedStatus.CanTransitionTo(target) {
		return nil, NewErrInvalidTransition("company verification", company.VerifiedStatus, target)
	}

	updated, err := s.store.Company().UpdateGuarded(ctx, id,
		store.Guard{"verified_status": model.CompanyVerificationPending}, fields)
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrStaleTransition("company verification", id)
		}
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.CompanyMessageKind, events.CompanyEvent{
		CompanyID: id.String(),
		Action:    action,
		Status:    updated.VerifiedStatus.String(),
		Reason:    stringOrEmpty(reason),
	})
	return updated, nil
}

// CanActAsEmployer reports whether the company may post listings and hire.
func (s *CompanyService) CanActAsEmployer(ctx context.Context, id uuid.UUID) (bool, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return false, err
	}
	return company.VerifiedStatus == model.CompanyVerificationApproved, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
