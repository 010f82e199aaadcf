package events

type JobListingEvent struct {
	ListingID string `json:"listing_id"`
	CompanyID string `json:"company_id"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

type CompanyEvent struct {
	CompanyID string `json:"company_id"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

type EmploymentEvent struct {
	EmploymentID string `json:"employment_id"`
	Action       string `json:"action"`
	Status       string `json:"status"`
	RequestKind  string `json:"request_kind,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
}
