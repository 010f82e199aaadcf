package service

import (
	"context"
	"time"

	"github.com/saino365/internhub/internal/store"
	"github.com/saino365/internhub/internal/store/model"
	"github.com/saino365/internhub/pkg/metrics"
	"go.uber.org/zap"
)

// QueueType names the admin work queues.
type QueueType string

const (
	QueuePreApproval         QueueType = "pre_approval"
	QueueFinalApproval       QueueType = "final_approval"
	QueueRenewal             QueueType = "renewal"
	QueueCompanyVerification QueueType = "company_verification"
	QueueExpiring            QueueType = "expiring"
)

const (
	defaultQueueLimit = 50
	maxQueueLimit     = 1000
	recentListings    = 10
)

// queueTimestampColumns maps each listing queue to the timestamp that orders
// it. Newest entries come first.
var queueTimestampColumns = map[QueueType]string{
	QueuePreApproval:   "submitted_at",
	QueueFinalApproval: "final_submitted_at",
	QueueRenewal:       "renewal_requested_at",
	QueueExpiring:      "expires_at",
}

type QueueQuery struct {
	Type   QueueType
	Limit  int
	Offset int
	From   time.Time
	To     time.Time
	Search string
}

// QueuePage is one page of an admin queue, with the unpaginated total.
// Listings is set for the four listing queues, Companies for the
// verification queue.
type QueuePage struct {
	Total     int64
	Listings  model.JobListingList
	Companies model.CompanyList
}

// Overview is the monitoring dashboard snapshot. Each count degrades to zero
// on query failure instead of failing the whole snapshot.
type Overview struct {
	PendingPreApproval         int64
	PendingFinalApproval       int64
	PendingRenewal             int64
	PendingCompanyVerification int64
	ExpiringSoon               int64
	ListingsByStatus           map[string]int64
	UsersByRole                map[string]int64
	RecentListings             model.JobListingList
}

type MonitoringService struct {
	store          store.Store
	expiringWindow time.Duration
	now            nowFunc
}

func NewMonitoringService(store store.Store, expiringWindowDays int) *MonitoringService {
	return &MonitoringService{
		store:          store,
		expiringWindow: time.Duration(expiringWindowDays) * 24 * time.Hour,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *MonitoringService) WithClock(fn func() time.Time) *MonitoringService {
	s.now = fn
	return s
}

// Queue returns one page of the requested admin queue. Limit and offset are
// clamped rather than rejected so a sloppy dashboard call still gets data.
func (s *MonitoringService) Queue(ctx context.Context, query QueueQuery) (*QueuePage, error) {
	query.Limit = clampLimit(query.Limit)
	query.Offset = clampOffset(query.Offset)

	if query.Type == QueueCompanyVerification {
		return s.companyQueue(ctx, query)
	}
	return s.listingQueue(ctx, query)
}

func (s *MonitoringService) listingQueue(ctx context.Context, query QueueQuery) (*QueuePage, error) {
	column, ok := queueTimestampColumns[query.Type]
	if !ok {
		return nil, NewErrValidation("unknown queue type: " + string(query.Type))
	}

	filter := s.listingQueueFilter(query.Type)
	if query.Search != "" {
		filter = filter.ByTitleOrCompanyName(query.Search)
	}
	from, to := s.queueRange(query)
	if !from.IsZero() || !to.IsZero() {
		filter = filter.ByTimestampBetween(column, from, to)
	}

	total, err := s.store.JobListing().Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := store.NewQueryOptions().
		WithOrder("job_listings." + column + " DESC").
		WithLimit(query.Limit).
		WithOffset(query.Offset)
	listings, err := s.store.JobListing().List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &QueuePage{Total: total, Listings: listings}, nil
}

func (s *MonitoringService) companyQueue(ctx context.Context, query QueueQuery) (*QueuePage, error) {
	filter := store.NewCompanyQueryFilter().ByVerifiedStatus(model.CompanyVerificationPending)
	if query.Search != "" {
		filter = filter.ByNameLike(query.Search)
	}
	if !query.From.IsZero() || !query.To.IsZero() {
		filter = filter.BySubmittedBetween(query.From, rangeEnd(query.To))
	}

	total, err := s.store.Company().Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := store.NewQueryOptions().
		WithOrder("companies.submitted_at DESC").
		WithLimit(query.Limit).
		WithOffset(query.Offset)
	companies, err := s.store.Company().List(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &QueuePage{Total: total, Companies: companies}, nil
}

// Overview assembles the dashboard counts. A failing count is logged and
// reported as zero; the snapshot itself never fails on a single bad query.
func (s *MonitoringService) Overview(ctx context.Context) *Overview {
	now := s.now()
	overview := &Overview{
		PendingPreApproval:         s.countListings(ctx, s.listingQueueFilter(QueuePreApproval)),
		PendingFinalApproval:       s.countListings(ctx, s.listingQueueFilter(QueueFinalApproval)),
		PendingRenewal:             s.countListings(ctx, s.listingQueueFilter(QueueRenewal)),
		ExpiringSoon:               s.countListings(ctx, s.listingQueueFilter(QueueExpiring).ByTimestampBetween("expires_at", now, now.Add(s.expiringWindow))),
		PendingCompanyVerification: s.countCompanies(ctx, store.NewCompanyQueryFilter().ByVerifiedStatus(model.CompanyVerificationPending)),
		ListingsByStatus:           make(map[string]int64),
		UsersByRole:                make(map[string]int64),
	}

	for status := model.JobListingDraft; status <= model.JobListingClosed; status++ {
		count := s.countListings(ctx, store.NewJobListingQueryFilter().ByStatus(status))
		overview.ListingsByStatus[status.String()] = count
		metrics.UpdateListingStatusCountMetric(status.String(), int(count))
	}

	for _, role := range []string{model.RoleStudent, model.RoleCompany, model.RoleAdmin} {
		count, err := s.store.User().CountByRole(ctx, role)
		if err != nil {
			zap.S().Named("monitoring").Warnw("failed to count users", "error", err, "role", role)
			count = 0
		}
		overview.UsersByRole[role] = count
	}

	recent, err := s.store.JobListing().List(ctx, nil,
		store.NewQueryOptions().WithOrder("job_listings.created_at DESC").WithLimit(recentListings))
	if err != nil {
		zap.S().Named("monitoring").Warnw("failed to list recent listings", "error", err)
		recent = model.JobListingList{}
	}
	overview.RecentListings = recent

	return overview
}

func (s *MonitoringService) listingQueueFilter(queue QueueType) *store.JobListingQueryFilter {
	switch queue {
	case QueuePreApproval:
		return store.NewJobListingQueryFilter().ByStatus(model.JobListingPendingPreApproval)
	case QueueFinalApproval:
		return store.NewJobListingQueryFilter().ByStatus(model.JobListingPendingFinalApproval)
	case QueueRenewal:
		return store.NewJobListingQueryFilter().ByStatus(model.JobListingActive).ByRenewalRequested()
	case QueueExpiring:
		return store.NewJobListingQueryFilter().ByStatus(model.JobListingActive)
	default:
		return store.NewJobListingQueryFilter()
	}
}

// queueRange resolves the effective date range of a queue query. The expiring
// queue defaults to the lookahead window when the caller gives no range.
func (s *MonitoringService) queueRange(query QueueQuery) (time.Time, time.Time) {
	if query.From.IsZero() && query.To.IsZero() {
		if query.Type == QueueExpiring {
			now := s.now()
			return now, now.Add(s.expiringWindow)
		}
		return time.Time{}, time.Time{}
	}
	return query.From, rangeEnd(query.To)
}

func (s *MonitoringService) countListings(ctx context.Context, filter *store.JobListingQueryFilter) int64 {
	count, err := s.store.JobListing().Count(ctx, filter)
	if err != nil {
		zap.S().Named("monitoring").Warnw("failed to count listings", "error", err)
		return 0
	}
	return count
}

func (s *MonitoringService) countCompanies(ctx context.Context, filter *store.CompanyQueryFilter) int64 {
	count, err := s.store.Company().Count(ctx, filter)
	if err != nil {
		zap.S().Named("monitoring").Warnw("failed to count companies", "error", err)
		return 0
	}
	return count
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueueLimit
	}
	if limit > maxQueueLimit {
		return maxQueueLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// rangeEnd widens an open-ended range to a far future bound.
func rangeEnd(to time.Time) time.Time {
	if to.IsZero() {
		return time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
	}
	return to
}
