package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/saino365/internhub/internal/config"
	"github.com/saino365/internhub/internal/events"
	"github.com/saino365/internhub/internal/service"
	"github.com/saino365/internhub/internal/service/mappers"
	"github.com/saino365/internhub/internal/store"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
)

var _ = Describe("request service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.RequestService
		now    time.Time
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	BeforeEach(func() {
		now = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
		svc = service.NewRequestService(s, events.NewEventProducer(newTestWriter())).
			WithClock(func() time.Time { return now })
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM employment_requests;")
		gormdb.Exec("DELETE FROM employment_records;")
	})

	// records run from 2026-06-01 to 2026-09-30
	insertRecord := func(status model.EmploymentStatus) uuid.UUID {
		id := uuid.New()
		tx := gormdb.Exec(fmt.Sprintf(insertEmploymentStm,
			id, uuid.NewString(), uuid.NewString(), uuid.NewString(), status,
			"2026-06-01 00:00:00", "2026-09-30 00:00:00"))
		Expect(tx.Error).To(BeNil())
		return id
	}

	endDate := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)

	Context("create", func() {
		It("opens a pending extension", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(30 * 24 * time.Hour)

			request, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeNil())
			Expect(request.Status).To(Equal(model.RequestPending))
			Expect(request.Kind).To(Equal(model.RequestKindExtension))
		})

		It("failed to create -- missing reason", func() {
			recordID := insertRecord(model.EmploymentOngoing)

			_, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindTermination,
				InitiatedBy:  model.RoleCompany,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("failed to create an extension -- proposed date not after the current end", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(-24 * time.Hour)

			_, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))

			_, err = svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("failed to create an early completion -- proposed date not before the current end", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(24 * time.Hour)

			_, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindEarlyCompletion,
				InitiatedBy:  model.RoleStudent,
				Reason:       "found a full time offer",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("failed to create an extension before the internship starts", func() {
			recordID := insertRecord(model.EmploymentUpcoming)
			proposed := endDate.Add(30 * 24 * time.Hour)

			_, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrPreconditionFailed{}))
		})

		It("failed to create a second pending request of the same kind", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(30 * 24 * time.Hour)

			form := mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			}
			_, err := svc.CreateRequest(context.TODO(), form)
			Expect(err).To(BeNil())

			_, err = svc.CreateRequest(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrConflict{}))
		})

		It("failed to create -- employment not found", func() {
			_, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: uuid.New(),
				Kind:         model.RequestKindTermination,
				InitiatedBy:  model.RoleCompany,
				Reason:       "misconduct",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("decide", func() {
		It("failed to reject -- missing decision remark", func() {
			_, err := svc.DecideRequest(context.TODO(), uuid.New(), false, nil, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("an approved extension moves the end date", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(30 * 24 * time.Hour)

			request, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeNil())

			decided, err := svc.DecideRequest(context.TODO(), request.ID, true, nil, uuid.New())
			Expect(err).To(BeNil())
			Expect(decided.Status).To(Equal(model.RequestApproved))
			Expect(decided.DecidedAt).NotTo(BeNil())

			record, err := s.Employment().Get(context.TODO(), recordID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentOngoing))
			Expect(record.EndDate.Unix()).To(Equal(proposed.Unix()))
		})

		It("an approved early completion starts the wind down", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(-14 * 24 * time.Hour)

			request, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindEarlyCompletion,
				InitiatedBy:  model.RoleStudent,
				Reason:       "found a full time offer",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeNil())

			_, err = svc.DecideRequest(context.TODO(), request.ID, true, nil, uuid.New())
			Expect(err).To(BeNil())

			record, err := s.Employment().Get(context.TODO(), recordID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentClosure))
			Expect(record.EndDate.Unix()).To(Equal(proposed.Unix()))
		})

		It("an approved termination ends the employment at the decision time", func() {
			recordID := insertRecord(model.EmploymentOngoing)

			request, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindTermination,
				InitiatedBy:  model.RoleCompany,
				Reason:       "misconduct",
			})
			Expect(err).To(BeNil())

			_, err = svc.DecideRequest(context.TODO(), request.ID, true, nil, uuid.New())
			Expect(err).To(BeNil())

			record, err := s.Employment().Get(context.TODO(), recordID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentTerminated))
			Expect(record.EndDate.Unix()).To(Equal(now.Unix()))
		})

		It("a rejection leaves the employment untouched", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(30 * 24 * time.Hour)

			request, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeNil())

			remark := "budget does not allow it"
			decided, err := svc.DecideRequest(context.TODO(), request.ID, false, &remark, uuid.New())
			Expect(err).To(BeNil())
			Expect(decided.Status).To(Equal(model.RequestRejected))

			record, err := s.Employment().Get(context.TODO(), recordID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentOngoing))
			Expect(record.EndDate.Unix()).To(Equal(endDate.Unix()))
		})

		It("failed to decide twice", func() {
			recordID := insertRecord(model.EmploymentOngoing)

			request, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindTermination,
				InitiatedBy:  model.RoleCompany,
				Reason:       "misconduct",
			})
			Expect(err).To(BeNil())

			_, err = svc.DecideRequest(context.TODO(), request.ID, true, nil, uuid.New())
			Expect(err).To(BeNil())

			remark := "changed our mind"
			_, err = svc.DecideRequest(context.TODO(), request.ID, false, &remark, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})

		It("failed to decide -- request not found", func() {
			_, err := svc.DecideRequest(context.TODO(), uuid.New(), true, nil, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("company termination", func() {
		It("opens and approves the termination in one call", func() {
			recordID := insertRecord(model.EmploymentUpcoming)

			request, err := svc.InitiateCompanyTermination(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				InitiatedBy:  model.RoleCompany,
				Reason:       "position cancelled",
			}, uuid.New())
			Expect(err).To(BeNil())
			Expect(request.Kind).To(Equal(model.RequestKindTermination))
			Expect(request.Status).To(Equal(model.RequestApproved))

			record, err := s.Employment().Get(context.TODO(), recordID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentTerminated))
		})

		It("failed when the employment is already terminated", func() {
			recordID := insertRecord(model.EmploymentTerminated)

			_, err := svc.InitiateCompanyTermination(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				InitiatedBy:  model.RoleCompany,
				Reason:       "position cancelled",
			}, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrPreconditionFailed{}))
		})
	})

	Context("list", func() {
		It("lists the requests of an employment filtered by kind", func() {
			recordID := insertRecord(model.EmploymentOngoing)
			proposed := endDate.Add(30 * 24 * time.Hour)

			_, err := svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindExtension,
				InitiatedBy:  model.RoleStudent,
				Reason:       "project runs longer than planned",
				ProposedDate: &proposed,
			})
			Expect(err).To(BeNil())
			_, err = svc.CreateRequest(context.TODO(), mappers.RequestCreateForm{
				EmploymentID: recordID,
				Kind:         model.RequestKindTermination,
				InitiatedBy:  model.RoleCompany,
				Reason:       "misconduct",
			})
			Expect(err).To(BeNil())

			requests, err := svc.ListRequests(context.TODO(), recordID, "")
			Expect(err).To(BeNil())
			Expect(requests).To(HaveLen(2))

			requests, err = svc.ListRequests(context.TODO(), recordID, model.RequestKindExtension)
			Expect(err).To(BeNil())
			Expect(requests).To(HaveLen(1))
		})
	})
})
