package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type JobListingQueryFilter BaseQuerier

func NewJobListingQueryFilter() *JobListingQueryFilter {
	return &JobListingQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *JobListingQueryFilter) ByStatus(statuses ...model.JobListingStatus) *JobListingQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_listings.status IN ?", statuses)
	})
	return f
}

func (f *JobListingQueryFilter) ByCompanyID(companyID uuid.UUID) *JobListingQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_listings.company_id = ?", companyID)
	})
	return f
}

func (f *JobListingQueryFilter) ByRenewalRequested() *JobListingQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_listings.renewal IS TRUE")
	})
	return f
}

// ByTimestampBetween constrains one of the listing's timestamp columns to
// [start, end]. The column name must be one of the canonical queue fields.
func (f *JobListingQueryFilter) ByTimestampBetween(column string, start, end time.Time) *JobListingQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_listings."+column+" BETWEEN ? AND ?", start, end)
	})
	return f
}

// ByTitleOrCompanyName matches the search term case-insensitively against the
// listing title or the owning employer's name.
func (f *JobListingQueryFilter) ByTitleOrCompanyName(term string) *JobListingQueryFilter {
	pattern := "%" + strings.ToLower(term) + "%"
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("LEFT JOIN companies ON companies.id = job_listings.company_id").
			Where("LOWER(job_listings.title) LIKE ? OR LOWER(companies.name) LIKE ?", pattern, pattern)
	})
	return f
}

type CompanyQueryFilter BaseQuerier

func NewCompanyQueryFilter() *CompanyQueryFilter {
	return &CompanyQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *CompanyQueryFilter) ByVerifiedStatus(statuses ...model.CompanyVerificationStatus) *CompanyQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("companies.verified_status IN ?", statuses)
	})
	return f
}

func (f *CompanyQueryFilter) BySubmittedBetween(start, end time.Time) *CompanyQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("companies.submitted_at BETWEEN ? AND ?", start, end)
	})
	return f
}

func (f *CompanyQueryFilter) ByNameLike(term string) *CompanyQueryFilter {
	pattern := "%" + strings.ToLower(term) + "%"
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(companies.name) LIKE ?", pattern)
	})
	return f
}

type RequestQueryFilter BaseQuerier

func NewRequestQueryFilter() *RequestQueryFilter {
	return &RequestQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *RequestQueryFilter) ByEmploymentID(employmentID uuid.UUID) *RequestQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("employment_id = ?", employmentID)
	})
	return f
}

func (f *RequestQueryFilter) ByKind(kind model.RequestKind) *RequestQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("kind = ?", kind)
	})
	return f
}

func (f *RequestQueryFilter) ByStatus(status model.RequestStatus) *RequestQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return f
}

// QueryOptions carries pagination and ordering shared by the list queries.
type QueryOptions BaseQuerier

func NewQueryOptions() *QueryOptions {
	return &QueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *QueryOptions) WithLimit(limit int) *QueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

func (o *QueryOptions) WithOffset(offset int) *QueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}

func (o *QueryOptions) WithOrder(order string) *QueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Order(order)
	})
	return o
}
