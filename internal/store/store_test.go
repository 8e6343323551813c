package store_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/store"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
	"github.com/kubev2v/node-inspector/test"
)

var _ = Describe("Store", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("Open", func() {
		// Given a url that is not a JDBC url
		// When we open a store
		// Then it should fail with ConnectionError and return no store
		It("should fail with ConnectionError on a malformed url", func() {
			s, err := store.Open(ctx, "localhost:5432/node", "sa", "", "")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsConnectionError(err)).To(BeTrue())
			Expect(s).To(BeNil())
		})

		// Given a driver that is not registered
		// When we open a store
		// Then it should fail with ConnectionError
		It("should fail with ConnectionError on an unknown driver", func() {
			s, err := store.Open(ctx, "jdbc:duckdb:", "", "", "fake_driver")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsConnectionError(err)).To(BeTrue())
			Expect(s).To(BeNil())
		})

		// Given a PostgreSQL url nobody listens on
		// When we open a store
		// Then it should fail with ConnectionError before any accessor is reachable
		It("should fail with ConnectionError on an unreachable host", func() {
			s, err := store.Open(ctx, "jdbc:postgresql://127.0.0.1:1/node", "sa", "", "")

			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsConnectionError(err)).To(BeTrue())
			Expect(s).To(BeNil())
		})

		// Given a node database file
		// When we open it through a jdbc:duckdb url
		// Then tables should be readable
		It("should open a duckdb node database file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "node.db")
			Expect(test.NewNodeDatabaseFile(ctx, path)).To(Succeed())

			s, err := store.Open(ctx, "jdbc:duckdb:"+path, "sa", "", "")
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			rs, err := s.Tables().Fetch(ctx, models.TableNodeAttachments)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(2))
		})
	})

	Context("Close", func() {
		var s *store.Store

		BeforeEach(func() {
			db, err := test.NewNodeDatabase(ctx, true)
			Expect(err).NotTo(HaveOccurred())
			s, err = store.New(ctx, db)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should close once", func() {
			Expect(s.Close()).To(Succeed())
		})

		// Given a closed store
		// When we close it again
		// Then it should return ConnectionClosedError
		It("should fail when closed twice", func() {
			Expect(s.Close()).To(Succeed())

			err := s.Close()
			Expect(srvErrors.IsConnectionClosedError(err)).To(BeTrue())
		})

		// Given a closed store
		// When we fetch a table
		// Then it should return ConnectionClosedError rather than QueryError
		It("should refuse queries after close", func() {
			Expect(s.Close()).To(Succeed())

			_, err := s.Tables().Fetch(ctx, models.TableVaultStates)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsConnectionClosedError(err)).To(BeTrue())
			Expect(srvErrors.IsQueryError(err)).To(BeFalse())

			_, err = s.Vault().FindByLinearID(ctx, "any")
			Expect(srvErrors.IsConnectionClosedError(err)).To(BeTrue())
		})
	})
})
