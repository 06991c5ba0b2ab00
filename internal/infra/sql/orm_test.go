package sql_test

import (
	"context"
	"errors"
	"patient-panel/internal/infra/sql"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type ward struct {
	ID   string `gorm:"primaryKey"`
	Name string
	Beds int
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM("orm_test_" + uuid.NewString())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(orm.AutoMigrate(&ward{})).To(gomega.Succeed())
		ctx = context.Background()
	})

	ginkgo.It("should map missing rows to ErrRecordNotFound", func() {
		var entity ward
		err := orm.WithContext(ctx).First(&entity, "id = ?", "missing").Error()
		gomega.Expect(errors.Is(err, sql.ErrRecordNotFound)).To(gomega.BeTrue())
	})

	ginkgo.It("should create, update and count rows", func() {
		gomega.Expect(orm.WithContext(ctx).Create(&ward{ID: "w1", Name: "Cardiology", Beds: 10}).Error()).To(gomega.Succeed())

		result := orm.WithContext(ctx).Model(&ward{ID: "w1"}).Updates(map[string]any{"beds": 12})
		gomega.Expect(result.Error()).To(gomega.Succeed())
		gomega.Expect(result.RowsAffected()).To(gomega.Equal(int64(1)))

		var entity ward
		gomega.Expect(orm.WithContext(ctx).First(&entity, "id = ?", "w1").Error()).To(gomega.Succeed())
		gomega.Expect(entity.Beds).To(gomega.Equal(12))
		gomega.Expect(entity.Name).To(gomega.Equal("Cardiology"))

		var count int64
		gomega.Expect(orm.WithContext(ctx).Model(&ward{}).Count(&count).Error()).To(gomega.Succeed())
		gomega.Expect(count).To(gomega.Equal(int64(1)))
	})

	ginkgo.It("should roll back a failed transaction", func() {
		rollback := errors.New("rollback")
		err := orm.Transaction(func(tx sql.ORM) error {
			if err := tx.Create(&ward{ID: "w2", Name: "Oncology"}).Error(); err != nil {
				return err
			}
			return rollback
		})
		gomega.Expect(err).To(gomega.MatchError(rollback))

		var entities []ward
		gomega.Expect(orm.WithContext(ctx).Order("id").Find(&entities).Error()).To(gomega.Succeed())
		gomega.Expect(entities).To(gomega.BeEmpty())
	})
})
