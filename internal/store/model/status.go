package model

import "fmt"

// JobListingStatus is the two-stage approval pipeline of a listing.
//
//	Draft ──► PendingPreApproval ──► PreApproved ──► PendingFinalApproval ──► Active ──► Closed
//	  ▲               │                  ▲                    │
//	  └── reject ─────┘                  └────── reject ──────┘
type JobListingStatus int

const (
	JobListingDraft JobListingStatus = iota
	JobListingPendingPreApproval
	JobListingPreApproved
	JobListingPendingFinalApproval
	JobListingActive
	JobListingClosed
)

var jobListingStatusLabels = map[JobListingStatus]string{
	JobListingDraft:                "draft",
	JobListingPendingPreApproval:   "pending_pre_approval",
	JobListingPreApproved:          "pre_approved",
	JobListingPendingFinalApproval: "pending_final_approval",
	JobListingActive:               "active",
	JobListingClosed:               "closed",
}

func (s JobListingStatus) String() string {
	if label, ok := jobListingStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// jobListingTransitions lists every allowed (from -> to) pair. Closed is terminal.
var jobListingTransitions = map[JobListingStatus][]JobListingStatus{
	JobListingDraft:                {JobListingPendingPreApproval},
	JobListingPendingPreApproval:   {JobListingPreApproved, JobListingDraft},
	JobListingPreApproved:          {JobListingPendingFinalApproval},
	JobListingPendingFinalApproval: {JobListingActive, JobListingPreApproved},
	JobListingActive:               {JobListingClosed},
}

func (s JobListingStatus) CanTransitionTo(to JobListingStatus) bool {
	return containsStatus(jobListingTransitions[s], to)
}

// JobListingStatusFromLabel resolves the wire label back to the status.
func JobListingStatusFromLabel(label string) (JobListingStatus, bool) {
	for status, l := range jobListingStatusLabels {
		if l == label {
			return status, true
		}
	}
	return 0, false
}

// CompanyVerificationStatus is the employer KYC review state.
// Pending is re-enterable: a rejected company may resubmit.
type CompanyVerificationStatus int

const (
	CompanyVerificationPending CompanyVerificationStatus = iota
	CompanyVerificationApproved
	CompanyVerificationRejected
)

var companyVerificationStatusLabels = map[CompanyVerificationStatus]string{
	CompanyVerificationPending:  "pending",
	CompanyVerificationApproved: "approved",
	CompanyVerificationRejected: "rejected",
}

func (s CompanyVerificationStatus) String() string {
	if label, ok := companyVerificationStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

var companyVerificationTransitions = map[CompanyVerificationStatus][]CompanyVerificationStatus{
	CompanyVerificationPending:  {CompanyVerificationApproved, CompanyVerificationRejected},
	CompanyVerificationRejected: {CompanyVerificationPending},
}

func (s CompanyVerificationStatus) CanTransitionTo(to CompanyVerificationStatus) bool {
	return containsStatus(companyVerificationTransitions[s], to)
}

// CompanyVerificationStatusFromLabel resolves the wire label back to the status.
func CompanyVerificationStatusFromLabel(label string) (CompanyVerificationStatus, bool) {
	for status, l := range companyVerificationStatusLabels {
		if l == label {
			return status, true
		}
	}
	return 0, false
}

// EmploymentStatus is the lifecycle of a hired candidate under a listing.
// Terminated is absorbing; Completed is reachable only from Closure.
type EmploymentStatus int

const (
	EmploymentUpcoming EmploymentStatus = iota
	EmploymentOngoing
	EmploymentClosure
	EmploymentCompleted
	EmploymentTerminated
)

var employmentStatusLabels = map[EmploymentStatus]string{
	EmploymentUpcoming:   "upcoming",
	EmploymentOngoing:    "ongoing",
	EmploymentClosure:    "closure",
	EmploymentCompleted:  "completed",
	EmploymentTerminated: "terminated",
}

func (s EmploymentStatus) String() string {
	if label, ok := employmentStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

var employmentTransitions = map[EmploymentStatus][]EmploymentStatus{
	EmploymentUpcoming: {EmploymentOngoing, EmploymentTerminated},
	EmploymentOngoing:  {EmploymentClosure, EmploymentTerminated},
	EmploymentClosure:  {EmploymentCompleted, EmploymentTerminated},
}

func (s EmploymentStatus) CanTransitionTo(to EmploymentStatus) bool {
	return containsStatus(employmentTransitions[s], to)
}

// RequestStatus is shared by the extension, early-completion and termination
// sub-workflows. Approved and Rejected are terminal.
type RequestStatus int

const (
	RequestPending RequestStatus = iota
	RequestApproved
	RequestRejected
)

var requestStatusLabels = map[RequestStatus]string{
	RequestPending:  "pending",
	RequestApproved: "approved",
	RequestRejected: "rejected",
}

func (s RequestStatus) String() string {
	if label, ok := requestStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// RequestKind discriminates the three sub-workflows sharing one table.
type RequestKind string

const (
	RequestKindExtension       RequestKind = "extension"
	RequestKindEarlyCompletion RequestKind = "early_completion"
	RequestKindTermination     RequestKind = "termination"
)

// creatableEmploymentStatuses lists the employment statuses from which a request
// of each kind may be opened.
var creatableEmploymentStatuses = map[RequestKind][]EmploymentStatus{
	RequestKindExtension:       {EmploymentOngoing},
	RequestKindEarlyCompletion: {EmploymentOngoing},
	RequestKindTermination:     {EmploymentUpcoming, EmploymentOngoing, EmploymentClosure},
}

func (k RequestKind) AllowedFrom(s EmploymentStatus) bool {
	return containsStatus(creatableEmploymentStatuses[k], s)
}

func containsStatus[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
