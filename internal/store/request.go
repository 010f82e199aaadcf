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

type Request interface {
	List(ctx context.Context, filter *RequestQueryFilter, opts *QueryOptions) (model.EmploymentRequestList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.EmploymentRequest, error)
	CreatePendingGuarded(ctx context.Context, request model.EmploymentRequest) (*model.EmploymentRequest, error)
	DecideGuarded(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.EmploymentRequest, error)
	InitialMigration(ctx context.Context) error
}

type RequestStore struct {
	db *gorm.DB
}

// Make sure we conform to Request interface
var _ Request = (*RequestStore)(nil)

func NewRequestStore(db *gorm.DB) Request {
	return &RequestStore{db: db}
}

func (s *RequestStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.EmploymentRequest{})
}

func (s *RequestStore) List(ctx context.Context, filter *RequestQueryFilter, opts *QueryOptions) (model.EmploymentRequestList, error) {
	var requests model.EmploymentRequestList
	tx := s.getDB(ctx).Model(&model.EmploymentRequest{})

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

	if err := tx.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *RequestStore) Get(ctx context.Context, id uuid.UUID) (*model.EmploymentRequest, error) {
	var request model.EmploymentRequest
	result := s.getDB(ctx).First(&request, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &request, nil
}

// CreatePendingGuarded inserts a Pending request only if no other Pending
// request of the same kind exists for the employment. The guard and the insert
// are one statement so two concurrent creates cannot both pass the check;
// the loser gets ErrDuplicateKey.
func (s *RequestStore) CreatePendingGuarded(ctx context.Context, request model.EmploymentRequest) (*model.EmploymentRequest, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	request.Status = model.RequestPending

	result := s.getDB(ctx).Exec(`
		INSERT INTO employment_requests
			(id, created_at, updated_at, employment_id, kind, status, initiated_by, reason, remark, proposed_date)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM employment_requests
			WHERE employment_id = ? AND kind = ? AND status = ?
		)`,
		request.ID, request.CreatedAt, request.UpdatedAt, request.EmploymentID,
		request.Kind, request.Status, request.InitiatedBy, request.Reason,
		request.Remark, request.ProposedDate,
		request.EmploymentID, request.Kind, model.RequestPending,
	)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrDuplicateKey
	}
	return &request, nil
}

// DecideGuarded resolves a Pending request. The write is conditioned on the
// request still being Pending, so only one of two concurrent decisions lands;
// the other gets ErrStaleRecord.
func (s *RequestStore) DecideGuarded(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.EmploymentRequest, error) {
	var request model.EmploymentRequest
	result := s.getDB(ctx).Model(&request).Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, model.RequestPending).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrStaleRecord
	}
	return &request, nil
}

func (s *RequestStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
