package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobListing interface {
	List(ctx context.Context, filter *JobListingQueryFilter, opts *QueryOptions) (model.JobListingList, error)
	Count(ctx context.Context, filter *JobListingQueryFilter) (int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.JobListing, error)
	Create(ctx context.Context, listing model.JobListing) (*model.JobListing, error)
	Update(ctx context.Context, listing model.JobListing) (*model.JobListing, error)
	UpdateGuarded(ctx context.Context, id uuid.UUID, guard Guard, fields map[string]any) (*model.JobListing, error)
	ListDueForExpiryReminder(ctx context.Context, now time.Time, window, repeatAfter time.Duration) (model.JobListingList, error)
	MarkExpiryReminder(ctx context.Context, id uuid.UUID, at time.Time) error
	InitialMigration(ctx context.Context) error
}

type JobListingStore struct {
	db *gorm.DB
}

// Make sure we conform to JobListing interface
var _ JobListing = (*JobListingStore)(nil)

func NewJobListingStore(db *gorm.DB) JobListing {
	return &JobListingStore{db: db}
}

func (s *JobListingStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.JobListing{})
}

func (s *JobListingStore) List(ctx context.Context, filter *JobListingQueryFilter, opts *QueryOptions) (model.JobListingList, error) {
	var listings model.JobListingList
	tx := s.getDB(ctx).Model(&model.JobListing{})

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Preload("Company").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *JobListingStore) Count(ctx context.Context, filter *JobListingQueryFilter) (int64, error) {
	var count int64
	tx := s.getDB(ctx).Model(&model.JobListing{})

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *JobListingStore) Get(ctx context.Context, id uuid.UUID) (*model.JobListing, error) {
	var listing model.JobListing
	result := s.getDB(ctx).Preload("Company").First(&listing, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &listing, nil
}

func (s *JobListingStore) Create(ctx context.Context, listing model.JobListing) (*model.JobListing, error) {
	if err := s.getDB(ctx).Create(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &listing, nil
}

func (s *JobListingStore) Update(ctx context.Context, listing model.JobListing) (*model.JobListing, error) {
	if err := s.getDB(ctx).First(&model.JobListing{}, "id = ?", listing.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if tx := s.getDB(ctx).Clauses(clause.Returning{}).Updates(&listing); tx.Error != nil {
		return nil, tx.Error
	}
	return &listing, nil
}

// UpdateGuarded applies fields only while every guard column still holds its
// expected value. Returns ErrStaleRecord when the guarded write matched no row,
// which is how a lost decide/decide race surfaces.
func (s *JobListingStore) UpdateGuarded(ctx context.Context, id uuid.UUID, guard Guard, fields map[string]any) (*model.JobListing, error) {
	var listing model.JobListing
	tx := s.getDB(ctx).Model(&listing).Clauses(clause.Returning{}).Where("id = ?", id)
	for column, expected := range guard {
		tx = tx.Where(column+" = ?", expected)
	}

	result := tx.Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrStaleRecord
	}
	return &listing, nil
}

func (s *JobListingStore) ListDueForExpiryReminder(ctx context.Context, now time.Time, window, repeatAfter time.Duration) (model.JobListingList, error) {
	var listings model.JobListingList
	cutoff := now.Add(-repeatAfter)
	err := s.getDB(ctx).
		Where("status = ?", model.JobListingActive).
		Where("expires_at BETWEEN ? AND ?", now, now.Add(window)).
		Where("last_expiry_reminder_at IS NULL OR last_expiry_reminder_at < ?", cutoff).
		Limit(200).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *JobListingStore) MarkExpiryReminder(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.getDB(ctx).Model(&model.JobListing{}).
		Where("id = ?", id).
		Update("last_expiry_reminder_at", at).Error
}

func (s *JobListingStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
