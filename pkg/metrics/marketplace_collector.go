package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saino365/internhub/internal/store"
	"github.com/saino365/internhub/internal/store/model"
	"go.uber.org/zap"
)

// marketplaceStatsCollector exposes queue depths straight from the store on
// every scrape, so the dashboard and the alerting see the same numbers.
type marketplaceStatsCollector struct {
	store                store.Store
	listingsByStatus     *prometheus.Desc
	pendingVerifications *prometheus.Desc
	usersByRole          *prometheus.Desc
}

func NewMarketplaceStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_marketplace_%s", internhub, name)
	}

	return &marketplaceStatsCollector{
		store: s,
		listingsByStatus: prometheus.NewDesc(
			fqName("listings_total"),
			"Total number of job listings by status.",
			[]string{"status"},
			prometheus.Labels{},
		),
		pendingVerifications: prometheus.NewDesc(
			fqName("pending_verifications_total"),
			"Total number of companies awaiting verification.",
			nil,
			prometheus.Labels{},
		),
		usersByRole: prometheus.NewDesc(
			fqName("users_total"),
			"Total number of users by role.",
			[]string{"role"},
			prometheus.Labels{},
		),
	}
}

func (c *marketplaceStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.listingsByStatus
	ch <- c.pendingVerifications
	ch <- c.usersByRole
}

// Collect implements Collector.
func (c *marketplaceStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	for status := model.JobListingDraft; status <= model.JobListingClosed; status++ {
		count, err := c.store.JobListing().Count(ctx, store.NewJobListingQueryFilter().ByStatus(status))
		if err != nil {
			zap.S().Named("marketplace_collector").Errorf("failed to count listings: %s", err)
			return
		}
		ch <- prometheus.MustNewConstMetric(c.listingsByStatus, prometheus.GaugeValue, float64(count), status.String())
	}

	pending, err := c.store.Company().Count(ctx, store.NewCompanyQueryFilter().ByVerifiedStatus(model.CompanyVerificationPending))
	if err != nil {
		zap.S().Named("marketplace_collector").Errorf("failed to count pending verifications: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.pendingVerifications, prometheus.GaugeValue, float64(pending))

	for _, role := range []string{model.RoleStudent, model.RoleCompany, model.RoleAdmin} {
		count, err := c.store.User().CountByRole(ctx, role)
		if err != nil {
			zap.S().Named("marketplace_collector").Errorf("failed to count users: %s", err)
			return
		}
		ch <- prometheus.MustNewConstMetric(c.usersByRole, prometheus.GaugeValue, float64(count), role)
	}
}
