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

var _ = Describe("employment store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM onboarding_documents;")
		gormdb.Exec("DELETE FROM employment_notes;")
		gormdb.Exec("DELETE FROM employment_records;")
	})

	insertRecord := func(status model.EmploymentStatus) uuid.UUID {
		id := uuid.New()
		tx := gormdb.Exec(fmt.Sprintf(insertEmploymentStm,
			id, uuid.NewString(), uuid.NewString(), uuid.NewString(), status,
			"2026-06-01 00:00:00", "2026-09-30 00:00:00"))
		Expect(tx.Error).To(BeNil())
		return id
	}

	Context("get", func() {
		It("successfully retrieve the record with documents and notes", func() {
			id := insertRecord(model.EmploymentOngoing)

			Expect(s.Employment().AttachDocument(context.TODO(), model.OnboardingDocument{
				ID:           uuid.New(),
				EmploymentID: id,
				Type:         "contract",
				FileKey:      "uploads/contract.pdf",
				UploadedAt:   time.Now(),
			})).To(BeNil())
			Expect(s.Employment().AddNote(context.TODO(), model.EmploymentNote{
				ID:           uuid.New(),
				EmploymentID: id,
				AuthorID:     uuid.New(),
				Text:         "intern started on time",
				CreatedAt:    time.Now(),
			})).To(BeNil())

			record, err := s.Employment().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(record.Status).To(Equal(model.EmploymentOngoing))
			Expect(record.Documents).To(HaveLen(1))
			Expect(record.Notes).To(HaveLen(1))
		})

		It("failed to get record -- record not found", func() {
			_, err := s.Employment().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})

	Context("guarded update", func() {
		It("applies the transition while the guard holds", func() {
			id := insertRecord(model.EmploymentUpcoming)

			updated, err := s.Employment().UpdateGuarded(context.TODO(), id,
				store.Guard{"status": model.EmploymentUpcoming},
				map[string]any{"status": model.EmploymentOngoing})
			Expect(err).To(BeNil())
			Expect(updated.Status).To(Equal(model.EmploymentOngoing))
		})

		It("rejects a stale transition", func() {
			id := insertRecord(model.EmploymentTerminated)

			_, err := s.Employment().UpdateGuarded(context.TODO(), id,
				store.Guard{"status": model.EmploymentOngoing},
				map[string]any{"status": model.EmploymentClosure})
			Expect(err).To(Equal(store.ErrStaleRecord))
		})
	})

	Context("documents", func() {
		It("successfully verifies a document", func() {
			id := insertRecord(model.EmploymentOngoing)
			docID := uuid.New()

			Expect(s.Employment().AttachDocument(context.TODO(), model.OnboardingDocument{
				ID:           docID,
				EmploymentID: id,
				Type:         "contract",
				UploadedAt:   time.Now(),
			})).To(BeNil())

			Expect(s.Employment().SetDocumentVerified(context.TODO(), id, docID, true)).To(BeNil())

			record, err := s.Employment().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(record.Documents[0].Verified).To(BeTrue())
		})

		It("failed to verify a document of another employment", func() {
			id := insertRecord(model.EmploymentOngoing)
			docID := uuid.New()

			Expect(s.Employment().AttachDocument(context.TODO(), model.OnboardingDocument{
				ID:           docID,
				EmploymentID: id,
				Type:         "contract",
				UploadedAt:   time.Now(),
			})).To(BeNil())

			err := s.Employment().SetDocumentVerified(context.TODO(), uuid.New(), docID, true)
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})
})
