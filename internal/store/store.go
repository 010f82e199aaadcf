package store

import (
	"context"

	"gorm.io/gorm"
)

// Guard is the set of column values a guarded write is conditioned on.
// The write succeeds only if every column still holds the given value,
// giving compare-and-swap semantics on status transitions.
type Guard map[string]any

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	JobListing() JobListing
	Company() Company
	Employment() Employment
	Request() Request
	User() User
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db         *gorm.DB
	jobListing JobListing
	company    Company
	employment Employment
	request    Request
	user       User
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:         db,
		jobListing: NewJobListingStore(db),
		company:    NewCompanyStore(db),
		employment: NewEmploymentStore(db),
		request:    NewRequestStore(db),
		user:       NewUserStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) JobListing() JobListing {
	return s.jobListing
}

func (s *DataStore) Company() Company {
	return s.company
}

func (s *DataStore) Employment() Employment {
	return s.employment
}

func (s *DataStore) Request() Request {
	return s.request
}

func (s *DataStore) User() User {
	return s.user
}

func (s *DataStore) InitialMigration() error {
	ctx := context.Background()
	for _, m := range []interface{ InitialMigration(context.Context) error }{
		s.company, s.user, s.jobListing, s.employment, s.request,
	} {
		if err := m.InitialMigration(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
