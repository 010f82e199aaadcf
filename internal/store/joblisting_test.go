package store_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/saino365/internhub/internal/config"
	"github.com/saino365/internhub/internal/store"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
)

var _ = Describe("job listing store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM job_listings;")
		gormdb.Exec("DELETE FROM companies;")
	})

	Context("list", func() {
		It("successfully list all the listings", func() {
			companyID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())

			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "backend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "frontend intern", model.JobListingActive))
			Expect(tx.Error).To(BeNil())

			listings, err := s.JobListing().List(context.TODO(), store.NewJobListingQueryFilter(), store.NewQueryOptions())
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(2))
		})

		It("successfully list the listings -- filtered by status", func() {
			companyID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())

			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "backend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "frontend intern", model.JobListingActive))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "data intern", model.JobListingPendingPreApproval))
			Expect(tx.Error).To(BeNil())

			listings, err := s.JobListing().List(context.TODO(),
				store.NewJobListingQueryFilter().ByStatus(model.JobListingDraft, model.JobListingActive),
				store.NewQueryOptions())
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(2))
		})

		It("successfully list the listings -- filtered by company", func() {
			firstCompany := uuid.NewString()
			secondCompany := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, firstCompany, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertCompanyStm, secondCompany, "globex", "REG-2", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())

			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), firstCompany, "backend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), secondCompany, "frontend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())

			listings, err := s.JobListing().List(context.TODO(),
				store.NewJobListingQueryFilter().ByCompanyID(uuid.MustParse(firstCompany)),
				store.NewQueryOptions())
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(1))
			Expect(listings[0].Title).To(Equal("backend intern"))
		})

		It("successfully list the listings -- filtered by renewal flag", func() {
			companyID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())

			listing := model.JobListing{
				ID:        uuid.New(),
				CompanyID: uuid.MustParse(companyID),
				Title:     "backend intern",
				Status:    model.JobListingActive,
				Renewal:   true,
			}
			Expect(gormdb.Create(&listing).Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "frontend intern", model.JobListingActive))
			Expect(tx.Error).To(BeNil())

			listings, err := s.JobListing().List(context.TODO(),
				store.NewJobListingQueryFilter().ByStatus(model.JobListingActive).ByRenewalRequested(),
				store.NewQueryOptions())
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(1))
			Expect(listings[0].ID).To(Equal(listing.ID))
		})

		It("successfully list the listings -- matched by title or company name", func() {
			companyID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "Initech", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())

			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "Backend Intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, "QA Intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())

			listings, err := s.JobListing().List(context.TODO(),
				store.NewJobListingQueryFilter().ByTitleOrCompanyName("backend"),
				store.NewQueryOptions())
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(1))

			listings, err = s.JobListing().List(context.TODO(),
				store.NewJobListingQueryFilter().ByTitleOrCompanyName("initech"),
				store.NewQueryOptions())
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(2))
		})

		It("successfully paginates the listings", func() {
			companyID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())

			for i := 0; i < 5; i++ {
				tx = gormdb.Exec(fmt.Sprintf(insertListingStm, uuid.NewString(), companyID, fmt.Sprintf("intern %d", i), model.JobListingDraft))
				Expect(tx.Error).To(BeNil())
			}

			listings, err := s.JobListing().List(context.TODO(),
				store.NewJobListingQueryFilter(),
				store.NewQueryOptions().WithLimit(2).WithOffset(4))
			Expect(err).To(BeNil())
			Expect(listings).To(HaveLen(1))

			count, err := s.JobListing().Count(context.TODO(), store.NewJobListingQueryFilter())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(5)))
		})
	})

	Context("get", func() {
		It("successfully retrieve the listing with its company", func() {
			companyID := uuid.NewString()
			listingID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, listingID, companyID, "backend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())

			listing, err := s.JobListing().Get(context.TODO(), uuid.MustParse(listingID))
			Expect(err).To(BeNil())
			Expect(listing.Title).To(Equal("backend intern"))
			Expect(listing.Company.Name).To(Equal("acme"))
		})

		It("failed to get listing -- record not found", func() {
			_, err := s.JobListing().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})

	Context("guarded update", func() {
		It("applies the fields while the guard holds", func() {
			companyID := uuid.NewString()
			listingID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, listingID, companyID, "backend intern", model.JobListingDraft))
			Expect(tx.Error).To(BeNil())

			updated, err := s.JobListing().UpdateGuarded(context.TODO(), uuid.MustParse(listingID),
				store.Guard{"status": model.JobListingDraft},
				map[string]any{"status": model.JobListingPendingPreApproval})
			Expect(err).To(BeNil())
			Expect(updated.Status).To(Equal(model.JobListingPendingPreApproval))
		})

		It("rejects a stale write", func() {
			companyID := uuid.NewString()
			listingID := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertListingStm, listingID, companyID, "backend intern", model.JobListingActive))
			Expect(tx.Error).To(BeNil())

			_, err := s.JobListing().UpdateGuarded(context.TODO(), uuid.MustParse(listingID),
				store.Guard{"status": model.JobListingDraft},
				map[string]any{"status": model.JobListingPendingPreApproval})
			Expect(err).To(Equal(store.ErrStaleRecord))

			// the row is untouched
			listing, err := s.JobListing().Get(context.TODO(), uuid.MustParse(listingID))
			Expect(err).To(BeNil())
			Expect(listing.Status).To(Equal(model.JobListingActive))
		})

		It("rejects a guarded write on a missing row", func() {
			_, err := s.JobListing().UpdateGuarded(context.TODO(), uuid.New(),
				store.Guard{"status": model.JobListingDraft},
				map[string]any{"status": model.JobListingPendingPreApproval})
			Expect(err).To(Equal(store.ErrStaleRecord))
		})
	})

	Context("expiry reminders", func() {
		var companyID uuid.UUID

		BeforeEach(func() {
			companyID = uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertCompanyStm, companyID, "acme", "REG-1", model.CompanyVerificationApproved))
			Expect(tx.Error).To(BeNil())
		})

		newListing := func(status model.JobListingStatus, expiresAt time.Time) model.JobListing {
			listing := model.JobListing{
				ID:        uuid.New(),
				CompanyID: companyID,
				Title:     "backend intern",
				Status:    status,
				ExpiresAt: &expiresAt,
			}
			Expect(gormdb.Create(&listing).Error).To(BeNil())
			return listing
		}

		It("lists only active listings expiring inside the window", func() {
			now := time.Now()
			expiring := newListing(model.JobListingActive, now.Add(3*24*time.Hour))
			newListing(model.JobListingActive, now.Add(30*24*time.Hour))
			newListing(model.JobListingClosed, now.Add(3*24*time.Hour))

			due, err := s.JobListing().ListDueForExpiryReminder(context.TODO(), now, 7*24*time.Hour, 24*time.Hour)
			Expect(err).To(BeNil())
			Expect(due).To(HaveLen(1))
			Expect(due[0].ID).To(Equal(expiring.ID))
		})

		It("skips listings reminded within the repeat interval", func() {
			now := time.Now()
			listing := newListing(model.JobListingActive, now.Add(3*24*time.Hour))

			Expect(s.JobListing().MarkExpiryReminder(context.TODO(), listing.ID, now)).To(BeNil())

			due, err := s.JobListing().ListDueForExpiryReminder(context.TODO(), now, 7*24*time.Hour, 24*time.Hour)
			Expect(err).To(BeNil())
			Expect(due).To(HaveLen(0))

			// once the repeat interval has passed the listing is due again
			due, err = s.JobListing().ListDueForExpiryReminder(context.TODO(), now.Add(25*time.Hour), 7*24*time.Hour, 24*time.Hour)
			Expect(err).To(BeNil())
			Expect(due).To(HaveLen(1))
		})
	})
})
