package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/store"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
	"github.com/kubev2v/node-inspector/test"
)

var _ = Describe("TableStore", func() {
	var (
		ctx context.Context
		db  *sql.DB
		s   *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = test.NewNodeDatabase(ctx, true)
		Expect(err).NotTo(HaveOccurred())

		s, err = store.New(ctx, db)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	liveColumns := func(table models.TableName) []string {
		rows, err := db.QueryContext(ctx, `
			SELECT column_name FROM information_schema.columns
			WHERE table_name = ? ORDER BY ordinal_position`, table.String())
		Expect(err).NotTo(HaveOccurred())
		defer rows.Close()

		var columns []string
		for rows.Next() {
			var c string
			Expect(rows.Scan(&c)).To(Succeed())
			columns = append(columns, c)
		}
		Expect(rows.Err()).NotTo(HaveOccurred())
		return columns
	}

	Context("Fetch", func() {
		// Given every table of the catalog
		// When we fetch it
		// Then the row set columns should match the live schema, in order
		It("should return the live schema of every catalog table", func() {
			for _, table := range models.Tables() {
				rs, err := s.Tables().Fetch(ctx, table)
				Expect(err).NotTo(HaveOccurred(), "table %s", table)
				Expect(rs.Table).To(Equal(table))
				Expect(rs.Columns).To(Equal(liveColumns(table)), "table %s", table)
			}
		})

		It("should read values from a single table", func() {
			rs, err := s.Tables().Fetch(ctx, models.TableNodeAttachments)
			Expect(err).NotTo(HaveOccurred())

			uploader := rs.Where("ATT_ID", "some_id")
			Expect(uploader.Len()).To(Equal(1))
			Expect(uploader.Rows[0]["UPLOADER"]).To(Equal("app"))
		})

		It("should report NULL cells as nil", func() {
			rs, err := s.Tables().Fetch(ctx, models.TableNodeAttachments)
			Expect(err).NotTo(HaveOccurred())
			for _, row := range rs.Rows {
				Expect(row["CONTENT"]).To(BeNil())
			}
		})

		// Given rows inserted after a first fetch
		// When we fetch again
		// Then the new rows should be visible (no caching)
		It("should reflect the current database state on every call", func() {
			rs, err := s.Tables().Fetch(ctx, models.TableNodeProperties)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))

			Expect(test.Apply(ctx, db, `INSERT INTO NODE_PROPERTIES VALUES ('k', 'v')`)).To(Succeed())

			rs, err = s.Tables().Fetch(ctx, models.TableNodeProperties)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(2))
		})

		It("should return an empty row set for an empty table", func() {
			rs, err := s.Tables().Fetch(ctx, models.TableStateParty)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Empty()).To(BeTrue())
			Expect(rs.Columns).NotTo(BeEmpty())
		})

		It("should reject a table outside the catalog with QueryError", func() {
			_, err := s.Tables().Fetch(ctx, models.TableName("USERS"))
			Expect(srvErrors.IsQueryError(err)).To(BeTrue())
		})

		// Given a catalog table missing from the database
		// When we fetch it
		// Then it should fail with QueryError
		It("should fail with QueryError when the table does not exist", func() {
			Expect(test.Apply(ctx, db, `DROP TABLE STATE_PARTY`)).To(Succeed())

			_, err := s.Tables().Fetch(ctx, models.TableStateParty)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsQueryError(err)).To(BeTrue())
		})
	})

	Context("FetchAll", func() {
		It("should fetch the catalog in order", func() {
			all, err := s.Tables().FetchAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(len(models.Tables())))
			for i, table := range models.Tables() {
				Expect(all[i].Table).To(Equal(table))
			}
		})

		It("should stop at the first failing table", func() {
			Expect(test.Apply(ctx, db, `DROP TABLE NODE_INFOS`)).To(Succeed())

			all, err := s.Tables().FetchAll(ctx)
			Expect(srvErrors.IsQueryError(err)).To(BeTrue())
			Expect(all).To(BeNil())
		})
	})

	Context("Columns", func() {
		It("should return columns without rows", func() {
			columns, err := s.Tables().Columns(ctx, models.TableVaultLinearStates)
			Expect(err).NotTo(HaveOccurred())
			Expect(columns).To(Equal([]string{"OUTPUT_INDEX", "TRANSACTION_ID", "EXTERNAL_ID", "UUID"}))
		})
	})
})
