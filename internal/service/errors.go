package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobListingNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job listing")
}

func NewErrCompanyNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "company")
}

func NewErrEmploymentNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "employment record")
}

func NewErrRequestNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "request")
}

// ErrInvalidTransition is returned when the requested state change is not an
// edge of the lifecycle graph, or when the guarded write lost a race and the
// record is no longer in the expected state.
type ErrInvalidTransition struct {
	error
}

func NewErrInvalidTransition(resourceType string, from, to fmt.Stringer) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("%s cannot move from %s to %s", resourceType, from, to)}
}

func NewErrStaleTransition(resourceType string, id uuid.UUID) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("%s %s changed state concurrently, transition not applied", resourceType, id)}
}

func NewErrRenewalAlreadyRequested(id uuid.UUID) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("job listing %s already has a renewal request pending", id)}
}

func NewErrNoPendingRenewal(id uuid.UUID) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("job listing %s has no pending renewal request", id)}
}

// ErrPreconditionFailed is returned when the transition edge exists but a
// business gate is not satisfied (unverified employer, missing onboarding
// documents).
type ErrPreconditionFailed struct {
	error
}

func NewErrPreconditionFailed(message string) *ErrPreconditionFailed {
	return &ErrPreconditionFailed{fmt.Errorf("precondition failed: %s", message)}
}

func NewErrCompanyNotVerified(companyID uuid.UUID) *ErrPreconditionFailed {
	return NewErrPreconditionFailed(fmt.Sprintf("company %s is not verified", companyID))
}

func NewErrDocumentsNotVerified(employmentID uuid.UUID) *ErrPreconditionFailed {
	return NewErrPreconditionFailed(fmt.Sprintf("employment record %s has unverified required documents", employmentID))
}

// ErrConflict is returned when a uniqueness rule would be violated, such as a
// second pending request of the same kind on one employment.
type ErrConflict struct {
	error
}

func NewErrConflict(message string) *ErrConflict {
	return &ErrConflict{fmt.Errorf("conflict: %s", message)}
}

func NewErrPendingRequestExists(employmentID uuid.UUID, kind string) *ErrConflict {
	return NewErrConflict(fmt.Sprintf("employment record %s already has a pending %s request", employmentID, kind))
}

// ErrValidation is returned for malformed or semantically invalid input,
// before any state is touched.
type ErrValidation struct {
	error
}

func NewErrValidation(message string) *ErrValidation {
	return &ErrValidation{fmt.Errorf("validation failed: %s", message)}
}
