package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Company interface {
	List(ctx context.Context, filter *CompanyQueryFilter, opts *QueryOptions) (model.CompanyList, error)
	Count(ctx context.Context, filter *CompanyQueryFilter) (int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Company, error)
	Create(ctx context.Context, company model.Company) (*model.Company, error)
	UpdateGuarded(ctx context.Context, id uuid.UUID, guard Guard, fields map[string]any) (*model.Company, error)
	InitialMigration(ctx context.Context) error
}

type CompanyStore struct {
	db *gorm.DB
}

// Make sure we conform to Company interface
var _ Company = (*CompanyStore)(nil)

func NewCompanyStore(db *gorm.DB) Company {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.Company{})
}

func (s *CompanyStore) List(ctx context.Context, filter *CompanyQueryFilter, opts *QueryOptions) (model.CompanyList, error) {
	var companies model.CompanyList
	tx := s.getDB(ctx).Model(&model.Company{})

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

	if err := tx.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *CompanyStore) Count(ctx context.Context, filter *CompanyQueryFilter) (int64, error) {
	var count int64
	tx := s.getDB(ctx).Model(&model.Company{})

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

func (s *CompanyStore) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	result := s.getDB(ctx).First(&company, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &company, nil
}

func (s *CompanyStore) Create(ctx context.Context, company model.Company) (*model.Company, error) {
	if err := s.getDB(ctx).Create(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &company, nil
}

// UpdateGuarded applies fields only while every guard column still holds its
// expected value; ErrStaleRecord signals a lost verification-decision race.
func (s *CompanyStore) UpdateGuarded(ctx context.Context, id uuid.UUID, guard Guard, fields map[string]any) (*model.Company, error) {
	var company model.Company
	tx := s.getDB(ctx).Model(&company).Clauses(clause.Returning{}).Where("id = ?", id)
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
	return &company, nil
}

func (s *CompanyStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
