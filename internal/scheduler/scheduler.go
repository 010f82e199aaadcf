package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"github.com/saino365/internhub/internal/events"
	"github.com/saino365/internhub/internal/store"
	"go.uber.org/zap"
)

// reminderRepeatAfter keeps a listing from being flagged again before a day
// has passed, even when the check interval is much shorter.
const reminderRepeatAfter = 24 * time.Hour

// ExpiryReminderScheduler periodically scans for active listings whose
// validity window is about to run out and emits an expiring notification for
// each one.
type ExpiryReminderScheduler struct {
	store         store.Store
	eventWriter   *events.EventProducer
	checkInterval time.Duration
	window        time.Duration
	now           func() time.Time
}

func New(s store.Store, eventWriter *events.EventProducer, checkInterval time.Duration, windowDays int) *ExpiryReminderScheduler {
	return &ExpiryReminderScheduler{
		store:         s,
		eventWriter:   eventWriter,
		checkInterval: checkInterval,
		window:        time.Duration(windowDays) * 24 * time.Hour,
		now:           time.Now,
	}
}

// Run blocks until the context is cancelled. The ticker is jittered so
// multiple replicas do not scan in lockstep.
func (s *ExpiryReminderScheduler) Run(ctx context.Context) {
	ticker := jitterbug.New(s.checkInterval, &jitterbug.Norm{Stdev: 30 * time.Second})
	defer ticker.Stop()

	zap.S().Named("scheduler").Infof("expiry reminder scheduler started, interval %s, window %s", s.checkInterval, s.window)

	for {
		select {
		case <-ctx.Done():
			zap.S().Named("scheduler").Info("expiry reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *ExpiryReminderScheduler) tick(ctx context.Context) {
	now := s.now()
	listings, err := s.store.JobListing().ListDueForExpiryReminder(ctx, now, s.window, reminderRepeatAfter)
	if err != nil {
		zap.S().Named("scheduler").Errorw("failed to scan for expiring listings", "error", err)
		return
	}

	for _, listing := range listings {
		payload, err := json.Marshal(events.JobListingEvent{
			ListingID: listing.ID.String(),
			CompanyID: listing.CompanyID.String(),
			Action:    "expiring",
			Status:    listing.Status.String(),
		})
		if err != nil {
			zap.S().Named("scheduler").Errorw("failed to marshal expiring event", "error", err, "listing_id", listing.ID)
			continue
		}
		if err := s.eventWriter.Write(ctx, events.JobMessageKind, bytes.NewBuffer(payload)); err != nil {
			zap.S().Named("scheduler").Errorw("failed to write expiring event", "error", err, "listing_id", listing.ID)
			continue
		}

		if err := s.store.JobListing().MarkExpiryReminder(ctx, listing.ID, now); err != nil {
			zap.S().Named("scheduler").Errorw("failed to mark expiry reminder", "error", err, "listing_id", listing.ID)
		}
	}

	if len(listings) > 0 {
		zap.S().Named("scheduler").Infow("expiry reminders sent", "count", len(listings))
	}
}
