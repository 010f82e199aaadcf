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

// Tagged employment commands accepted by ApplyTransition. Termination is not
// listed: it only happens through a decided termination request.
const (
	EmploymentActionStart         = "start"
	EmploymentActionMoveToClosure = "move_to_closure"
	EmploymentActionComplete      = "complete"
)

// DocumentGate decides whether an employment record may leave the working
// phase. The default gate requires a verified upload per required doc type.
type DocumentGate interface {
	Satisfied(record model.EmploymentRecord) bool
}

type requiredDocumentGate struct{}

func (requiredDocumentGate) Satisfied(record model.EmploymentRecord) bool {
	return record.HasVerifiedRequiredDocuments()
}

type EmploymentService struct {
	store       store.Store
	eventWriter EventWriter
	docGate     DocumentGate
	now         nowFunc
}

func NewEmploymentService(store store.Store, eventWriter EventWriter) *EmploymentService {
	return &EmploymentService{
		store:       store,
		eventWriter: eventWriter,
		docGate:     requiredDocumentGate{},
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *EmploymentService) WithClock(fn func() time.Time) *EmploymentService {
	s.now = fn
	return s
}

// WithDocumentGate overrides the closure gate.
func (s *EmploymentService) WithDocumentGate(gate DocumentGate) *EmploymentService {
	s.docGate = gate
	return s
}

func (s *EmploymentService) GetEmployment(ctx context.Context, id uuid.UUID) (*model.EmploymentRecord, error) {
	record, err := s.store.Employment().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrEmploymentNotFound(id)
		}
		return nil, err
	}
	return record, nil
}

// CreateEmployment opens an Upcoming record for a hire under an Active listing.
func (s *EmploymentService) CreateEmployment(ctx context.Context, form mappers.EmploymentCreateForm) (*model.EmploymentRecord, error) {
	if !form.EndDate.After(form.StartDate) {
		return nil, NewErrValidation("employment end date must be after the start date")
	}

	listing, err := s.store.JobListing().Get(ctx, form.JobListingID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobListingNotFound(form.JobListingID)
		}
		return nil, err
	}
	if listing.Status != model.JobListingActive {
		return nil, NewErrPreconditionFailed("listing " + listing.ID.String() + " is not active")
	}

	record, err := s.store.Employment().Create(ctx, form.ToEmploymentRecord())
	if err != nil {
		return nil, err
	}

	emitEvent(ctx, s.eventWriter, events.EmploymentMessageKind, events.EmploymentEvent{
		EmploymentID: record.ID.String(),
		Action:       "created",
		Status:       record.Status.String(),
	})
	return record, nil
}

// ApplyTransition dispatches a tagged command to the matching lifecycle
// operation.
func (s *EmploymentService) ApplyTransition(ctx context.Context, id uuid.UUID, action string) (*model.EmploymentRecord, error) {
	switch action {
	case EmploymentActionStart:
		return s.StartNow(ctx, id)
	case EmploymentActionMoveToClosure:
		return s.MoveToClosure(ctx, id)
	case EmploymentActionComplete:
		return s.Complete(ctx, id)
	default:
		return nil, NewErrValidation("unknown employment action: " + action)
	}
}

// StartNow moves an Upcoming record to Ongoing, pulling the start date
// forward when the hire begins early.
func (s *EmploymentService) StartNow(ctx context.Context, id uuid.UUID) (*model.EmploymentRecord, error) {
	record, err := s.GetEmployment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransitionTo(model.EmploymentOngoing) {
		return nil, NewErrInvalidTransition("employment record", record.Status, model.EmploymentOngoing)
	}

	now := s.now()
	fields := map[string]any{"status": model.EmploymentOngoing}
	if now.Before(record.StartDate) {
		fields["start_date"] = now
	}

	return s.transition(ctx, id, model.EmploymentUpcoming, model.EmploymentOngoing, "started", fields)
}

// MoveToClosure begins wind-down of an Ongoing record. The record may not
// leave the working phase until every required onboarding document has a
// verified upload.
func (s *EmploymentService) MoveToClosure(ctx context.Context, id uuid.UUID) (*model.EmploymentRecord, error) {
	record, err := s.GetEmployment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransitionTo(model.EmploymentClosure) {
		return nil, NewErrInvalidTransition("employment record", record.Status, model.EmploymentClosure)
	}
	if !s.docGate.Satisfied(*record) {
		return nil, NewErrDocumentsNotVerified(id)
	}

	return s.transition(ctx, id, model.EmploymentOngoing, model.EmploymentClosure, "moved_to_closure", map[string]any{
		"status": model.EmploymentClosure,
	})
}

// Complete finalizes a record in Closure. The document gate is re-checked in
// case requirements changed while the record sat in wind-down.
func (s *EmploymentService) Complete(ctx context.Context, id uuid.UUID) (*model.EmploymentRecord, error) {
	record, err := s.GetEmployment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransitionTo(model.EmploymentCompleted) {
		return nil, NewErrInvalidTransition("employment record", record.Status, model.EmploymentCompleted)
	}
	if !s.docGate.Satisfied(*record) {
		return nil, NewErrDocumentsNotVerified(id)
	}

	return s.transition(ctx, id, model.EmploymentClosure, model.EmploymentCompleted, "completed", map[string]any{
		"status": model.EmploymentCompleted,
	})
}

func (s *EmploymentService) AddNote(ctx context.Context, id, authorID uuid.UUID, text string) (*model.EmploymentRecord, error) {
	if text == "" {
		return nil, NewErrValidation("note text must not be empty")
	}
	if _, err := s.GetEmployment(ctx, id); err != nil {
		return nil, err
	}

	note := model.EmploymentNote{
		ID:           uuid.New(),
		EmploymentID: id,
		AuthorID:     authorID,
		Text:         text,
		CreatedAt:    s.now(),
	}
	if err := s.store.Employment().AddNote(ctx, note); err != nil {
		return nil, err
	}
	return s.GetEmployment(ctx, id)
}

func (s *EmploymentService) AttachDocument(ctx context.Context, id uuid.UUID, docType, fileKey string) (*model.EmploymentRecord, error) {
	if docType == "" {
		return nil, NewErrValidation("document type must not be empty")
	}
	if _, err := s.GetEmployment(ctx, id); err != nil {
		return nil, err
	}

	doc := model.OnboardingDocument{
		ID:           uuid.New(),
		EmploymentID: id,
		Type:         docType,
		FileKey:      fileKey,
		UploadedAt:   s.now(),
	}
	if err := s.store.Employment().AttachDocument(ctx, doc); err != nil {
		return nil, err
	}
	return s.GetEmployment(ctx, id)
}

func (s *EmploymentService) VerifyDocument(ctx context.Context, id, docID uuid.UUID, verified bool) (*model.EmploymentRecord, error) {
	if _, err := s.GetEmployment(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.Employment().SetDocumentVerified(ctx, id, docID, verified); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrResourceNotFound(docID, "onboarding document")
		}
		return nil, err
	}
	return s.GetEmployment(ctx, id)
}

func (s *EmploymentService) transition(ctx context.Context, id uuid.UUID, from, to model.EmploymentStatus, action string, fields map[string]any) (*model.EmploymentRecord, error) {
	updated, err := s.store.Employment().UpdateGuarded(ctx, id, store.Guard{"status": from}, fields)
	if err != nil {
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrStaleTransition("employment record", id)
		}
		return nil, err
	}

	metrics.IncreaseEmploymentTransitionsTotalMetric(from.String(), to.String())
	emitEvent(ctx, s.eventWriter, events.EmploymentMessageKind, events.EmploymentEvent{
		EmploymentID: id.String(),
		Action:       action,
		Status:       to.String(),
	})
	return updated, nil
}
