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

var _ = Describe("employment service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.EmploymentService
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
		svc = service.NewEmploymentService(s, events.NewEventProducer(newTestWriter())).
			WithClock(func() time.Time { return now })
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM onboarding_documents;")
		gormdb.Exec("DELETE FROM employment_notes;")
		gormdb.Exec("DELETE FROM employment_records;")
		gormdb.Exec("DELETE FROM job_listings;")
		gormdb.Exec("DELETE FROM companies;")
	})

	insertActiveListing := func() uuid.UUID {
		companyID := uuid.New()
		tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-"+companyID.String()[:8], model.CompanyVerificationApproved))
		Expect(tx.Error).To(BeNil())

		listingID := uuid.New()
		tx = gormdb.Exec(fmt.Sprintf(insertListingStm, listingID, companyID, "backend intern", model.JobListingActive))
		Expect(tx.Error).To(BeNil())
		return listingID
	}

	createRecord := func(requiredDocTypes ...string) *model.EmploymentRecord {
		record, err := svc.CreateEmployment(context.TODO(), mappers.EmploymentCreateForm{
			UserID:           uuid.New(),
			CompanyID:        uuid.New(),
			JobListingID:     insertActiveListing(),
			StartDate:        now.Add(7 * 24 * time.Hour),
			EndDate:          now.Add(97 * 24 * time.Hour),
			RequiredDocTypes: requiredDocTypes,
		})
		Expect(err).To(BeNil())
		return record
	}

	Context("create", func() {
		It("opens an upcoming record under an active listing", func() {
			record := createRecord()
			Expect(record.Status).To(Equal(model.EmploymentUpcoming))
		})

		It("failed to create -- end date before start date", func() {
			_, err := svc.CreateEmployment(context.TODO(), mappers.EmploymentCreateForm{
				UserID:       uuid.New(),
				CompanyID:    uuid.New(),
				JobListingID: insertActiveListing(),
				StartDate:    now.Add(30 * 24 * time.Hour),
				EndDate:      now,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("failed to create -- listing not active", func() {
			companyID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())
			listingID := uuid.New()
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, listingID, companyID, "backend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())

			_, err := svc.CreateEmployment(context.TODO(), mappers.EmploymentCreateForm{
				UserID:       uuid.New(),
				CompanyID:    companyID,
				JobListingID: listingID,
				StartDate:    now,
				EndDate:      now.Add(90 * 24 * time.Hour),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrPreconditionFailed{}))
		})

		It("failed to create -- listing not found", func() {
			_, err := svc.CreateEmployment(context.TODO(), mappers.EmploymentCreateForm{
				UserID:       uuid.New(),
				CompanyID:    uuid.New(),
				JobListingID: uuid.New(),
				StartDate:    now,
				EndDate:      now.Add(90 * 24 * time.Hour),
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("start", func() {
		It("pulls the start date forward when the hire begins early", func() {
			record := createRecord()

			started, err := svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeNil())
			Expect(started.Status).To(Equal(model.EmploymentOngoing))
			Expect(started.StartDate.Unix()).To(Equal(now.Unix()))
		})

		It("keeps the start date when it is already in the past", func() {
			record := createRecord()
			now = now.Add(14 * 24 * time.Hour)

			started, err := svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeNil())
			Expect(started.Status).To(Equal(model.EmploymentOngoing))
			Expect(started.StartDate.Unix()).NotTo(Equal(now.Unix()))
		})

		It("failed to start twice", func() {
			record := createRecord()

			_, err := svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeNil())

			_, err = svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})
	})

	Context("closure and completion", func() {
		It("refuses to wind down while a required document is unverified", func() {
			record := createRecord("contract")
			_, err := svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeNil())

			_, err = svc.MoveToClosure(context.TODO(), record.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrPreconditionFailed{}))
		})

		It("winds down and completes once the documents are verified", func() {
			record := createRecord("contract")
			_, err := svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeNil())

			record, err = svc.AttachDocument(context.TODO(), record.ID, "contract", "uploads/contract.pdf")
			Expect(err).To(BeNil())
			Expect(record.Documents).To(HaveLen(1))

			// the upload alone does not open the gate
			_, err = svc.MoveToClosure(context.TODO(), record.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrPreconditionFailed{}))

			record, err = svc.VerifyDocument(context.TODO(), record.ID, record.Documents[0].ID, true)
			Expect(err).To(BeNil())
			Expect(record.Documents[0].Verified).To(BeTrue())

			record, err = svc.MoveToClosure(context.TODO(), record.ID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentClosure))

			record, err = svc.Complete(context.TODO(), record.ID)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentCompleted))
		})

		It("failed to complete without closure", func() {
			record := createRecord()
			_, err := svc.StartNow(context.TODO(), record.ID)
			Expect(err).To(BeNil())

			_, err = svc.Complete(context.TODO(), record.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})
	})

	Context("notes and documents", func() {
		It("appends a note to the record", func() {
			record := createRecord()

			updated, err := svc.AddNote(context.TODO(), record.ID, uuid.New(), "intern started on time")
			Expect(err).To(BeNil())
			Expect(updated.Notes).To(HaveLen(1))
			Expect(updated.Notes[0].Text).To(Equal("intern started on time"))
		})

		It("failed to append an empty note", func() {
			record := createRecord()

			_, err := svc.AddNote(context.TODO(), record.ID, uuid.New(), "")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("failed to verify an unknown document", func() {
			record := createRecord()

			_, err := svc.VerifyDocument(context.TODO(), record.ID, uuid.New(), true)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("apply transition", func() {
		It("dispatches the tagged command", func() {
			record := createRecord()

			updated, err := svc.ApplyTransition(context.TODO(), record.ID, service.EmploymentActionStart)
			Expect(err).To(BeNil())
			Expect(updated.Status).To(Equal(model.EmploymentOngoing))
		})

		It("failed on an unknown action", func() {
			_, err := svc.ApplyTransition(context.TODO(), uuid.New(), "terminate")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})
	})
})
