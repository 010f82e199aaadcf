package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Employment interface {
	Get(ctx context.Context, id uuid.UUID) (*model.EmploymentRecord, error)
	Create(ctx context.Context, record model.EmploymentRecord) (*model.EmploymentRecord, error)
	UpdateGuarded(ctx context.Context, id uuid.UUID, guard Guard, fields map[string]any) (*model.EmploymentRecord, error)
	AddNote(ctx context.Context, note model.EmploymentNote) error
	AttachDocument(ctx context.Context, doc model.OnboardingDocument) error
	SetDocumentVerified(ctx context.Context, employmentID, docID uuid.UUID, verified bool) error
	InitialMigration(ctx context.Context) error
}

type EmploymentStore struct {
	db *gorm.DB
}

// Make sure we conform to Employment interface
var _ Employment = (*EmploymentStore)(nil)

func NewEmploymentStore(db *gorm.DB) Employment {
	return &EmploymentStore{db: db}
}

func (s *EmploymentStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(
		&model.EmploymentRecord{},
		&model.OnboardingDocument{},
		&model.EmploymentNote{},
	)
}

func (s *EmploymentStore) Get(ctx context.Context, id uuid.UUID) (*model.EmploymentRecord, error) {
	var record model.EmploymentRecord
	result := s.getDB(ctx).Preload("Documents").Preload("Notes").First(&record, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

func (s *EmploymentStore) Create(ctx context.Context, record model.EmploymentRecord) (*model.EmploymentRecord, error) {
	if err := s.getDB(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &record, nil
}

// UpdateGuarded applies fields only while every guard column still holds its
// expected value; ErrStaleRecord signals a lost transition race.
func (s *EmploymentStore) UpdateGuarded(ctx context.Context, id uuid.UUID, guard Guard, fields map[string]any) (*model.EmploymentRecord, error) {
	var record model.EmploymentRecord
	tx := s.getDB(ctx).Model(&record).Clauses(clause.Returning{}).Where("id = ?", id)
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
	return &record, nil
}

func (s *EmploymentStore) AddNote(ctx context.Context, note model.EmploymentNote) error {
	return s.getDB(ctx).Create(&note).Error
}

func (s *EmploymentStore) AttachDocument(ctx context.Context, doc model.OnboardingDocument) error {
	return s.getDB(ctx).Create(&doc).Error
}

func (s *EmploymentStore) SetDocumentVerified(ctx context.Context, employmentID, docID uuid.UUID, verified bool) error {
	result := s.getDB(ctx).Model(&model.OnboardingDocument{}).
		Where("id = ? AND employment_id = ?", docID, employmentID).
		Update("verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *EmploymentStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
