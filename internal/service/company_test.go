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

var _ = Describe("company service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.CompanyService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	BeforeEach(func() {
		svc = service.NewCompanyService(s, events.NewEventProducer(newTestWriter())).
			WithClock(func() time.Time { return time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC) })
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM companies;")
	})

	Context("submit verification", func() {
		It("registers the company in the review queue", func() {
			company, err := svc.SubmitVerification(context.TODO(), mappers.CompanyCreateForm{
				Name:               "acme",
				RegistrationNumber: "REG-1",
				OwnerUserID:        uuid.New(),
			})
			Expect(err).To(BeNil())
			Expect(company.VerifiedStatus).To(Equal(model.CompanyVerificationPending))
			Expect(company.SubmittedAt).NotTo(BeNil())
		})

		It("failed to submit -- missing name", func() {
			_, err := svc.SubmitVerification(context.TODO(), mappers.CompanyCreateForm{RegistrationNumber: "REG-1"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("failed to submit -- duplicate registration number", func() {
			_, err := svc.SubmitVerification(context.TODO(), mappers.CompanyCreateForm{
				Name:               "acme",
				RegistrationNumber: "REG-1",
			})
			Expect(err).To(BeNil())

			_, err = svc.SubmitVerification(context.TODO(), mappers.CompanyCreateForm{
				Name:               "acme clone",
				RegistrationNumber: "REG-1",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrConflict{}))
		})
	})

	Context("decide verification", func() {
		insertCompany := func(status model.CompanyVerificationStatus) uuid.UUID {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, id, "acme", "REG-"+id.String()[:8], status))
			Expect(tx.Error).To(BeNil())
			return id
		}

		It("approves a pending company", func() {
			companyID := insertCompany(model.CompanyVerificationPending)

			company, err := svc.DecideVerification(context.TODO(), companyID, true, nil, uuid.New())
			Expect(err).To(BeNil())
			Expect(company.VerifiedStatus).To(Equal(model.CompanyVerificationApproved))
			Expect(company.ReviewedAt).NotTo(BeNil())
			Expect(company.ReviewerID).NotTo(BeNil())
		})

		It("failed to reject -- missing reason", func() {
			companyID := insertCompany(model.CompanyVerificationPending)

			_, err := svc.DecideVerification(context.TODO(), companyID, false, nil, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("rejects with the reason kept", func() {
			companyID := insertCompany(model.CompanyVerificationPending)

			reason := "registration document unreadable"
			company, err := svc.DecideVerification(context.TODO(), companyID, false, &reason, uuid.New())
			Expect(err).To(BeNil())
			Expect(company.VerifiedStatus).To(Equal(model.CompanyVerificationRejected))
			Expect(company.RejectionReason).NotTo(BeNil())
			Expect(*company.RejectionReason).To(Equal(reason))
		})

		It("failed to decide twice", func() {
			companyID := insertCompany(model.CompanyVerificationApproved)

			_, err := svc.DecideVerification(context.TODO(), companyID, true, nil, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})

		It("failed to decide -- company not found", func() {
			_, err := svc.DecideVerification(context.TODO(), uuid.New(), true, nil, uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("resubmit verification", func() {
		It("puts a rejected company back in the queue with a clean slate", func() {
			reason := "registration document unreadable"
			reviewedAt := time.Now()
			reviewerID := uuid.New()
			company := model.Company{
				ID:                 uuid.New(),
				Name:               "acme",
				RegistrationNumber: "REG-1",
				VerifiedStatus:     model.CompanyVerificationRejected,
				RejectionReason:    &reason,
				ReviewedAt:         &reviewedAt,
				ReviewerID:         &reviewerID,
			}
			Expect(gormdb.Create(&company).Error).To(BeNil())

			updated, err := svc.ResubmitVerification(context.TODO(), company.ID)
			Expect(err).To(BeNil())
			Expect(updated.VerifiedStatus).To(Equal(model.CompanyVerificationPending))
			Expect(updated.SubmittedAt).NotTo(BeNil())
			Expect(updated.RejectionReason).To(BeNil())
			Expect(updated.ReviewedAt).To(BeNil())
			Expect(updated.ReviewerID).To(BeNil())
		})

		It("failed to resubmit -- company still pending", func() {
			company := model.Company{
				ID:                 uuid.New(),
				Name:               "acme",
				RegistrationNumber: "REG-1",
				VerifiedStatus:     model.CompanyVerificationPending,
			}
			Expect(gormdb.Create(&company).Error).To(BeNil())

			_, err := svc.ResubmitVerification(context.TODO(), company.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})
	})

	Context("employer gate", func() {
		It("only an approved company can act as employer", func() {
			approved := model.Company{ID: uuid.New(), Name: "acme", RegistrationNumber: "REG-1", VerifiedStatus: model.CompanyVerificationApproved}
			pending := model.Company{ID: uuid.New(), Name: "globex", RegistrationNumber: "REG-2", VerifiedStatus: model.CompanyVerificationPending}
			Expect(gormdb.Create(&approved).Error).To(BeNil())
			Expect(gormdb.Create(&pending).Error).To(BeNil())

			ok, err := svc.CanActAsEmployer(context.TODO(), approved.ID)
			Expect(err).To(BeNil())
			Expect(ok).To(BeTrue())

			ok, err = svc.CanActAsEmployer(context.TODO(), pending.ID)
			Expect(err).To(BeNil())
			Expect(ok).To(BeFalse())
		})
	})
})
