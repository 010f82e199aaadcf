package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/saino365/internhub/internal/config"
	"github.com/saino365/internhub/internal/store"
	"github.com/saino365/internhub/internal/store/model"
	"gorm.io/gorm"
)

var _ = Describe("user store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM users;")
	})

	It("counts the users per role", func() {
		tx := gormdb.Exec(fmt.Sprintf(insertUserStm, uuid.NewString(), "alice@example.com", model.RoleStudent))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertUserStm, uuid.NewString(), "bob@example.com", model.RoleStudent))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertUserStm, uuid.NewString(), "carol@example.com", model.RoleAdmin))
		Expect(tx.Error).To(BeNil())

		count, err := s.User().CountByRole(context.TODO(), model.RoleStudent)
		Expect(err).To(BeNil())
		Expect(count).To(Equal(int64(2)))

		count, err = s.User().CountByRole(context.TODO(), model.RoleCompany)
		Expect(err).To(BeNil())
		Expect(count).To(Equal(int64(0)))
	})

	It("failed to create a user -- duplicate email", func() {
		_, err := s.User().Create(context.TODO(), model.User{ID: uuid.New(), Email: "alice@example.com", Role: model.RoleStudent})
		Expect(err).To(BeNil())

		_, err = s.User().Create(context.TODO(), model.User{ID: uuid.New(), Email: "alice@example.com", Role: model.RoleAdmin})
		Expect(err).To(Equal(store.ErrDuplicateKey))
	})
})
