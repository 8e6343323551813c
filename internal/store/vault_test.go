package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/store"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
	"github.com/kubev2v/node-inspector/test"
)

const (
	cashState = "net.corda.finance.contracts.asset.Cash$State"
	iouState  = "com.example.state.IOUState"
	linearID  = "a7b6c5d4-0000-0000-0000-00000000abcd"
	bank      = "O=Bank, L=London, C=GB"
)

var _ = Describe("VaultStore", func() {
	var (
		ctx context.Context
		s   *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()

		db, err := test.NewNodeDatabase(ctx, true)
		Expect(err).NotTo(HaveOccurred())

		s, err = store.New(ctx, db)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		s.Close()
	})

	Context("FindVaultStatesByTransactionID", func() {
		// Given a vault with exactly one state for transaction '1'
		// When we look up transactions '1' and '2'
		// Then '1' returns that row and '2' returns an empty row set
		It("should return the matching row or an empty row set", func() {
			single, err := s.Vault().FindVaultStatesByTransactionID(ctx, "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(single.Len()).To(Equal(1))
			Expect(single.Rows[0][models.ColumnTransactionID]).To(Equal("1"))

			none, err := s.Vault().FindVaultStatesByTransactionID(ctx, "2")
			Expect(err).NotTo(HaveOccurred())
			Expect(none.Empty()).To(BeTrue())
			Expect(none.Columns).To(Equal(single.Columns))
		})
	})

	Context("FindByLinearID", func() {
		It("should only return rows carrying the linear id", func() {
			rs, err := s.Vault().FindByLinearID(ctx, linearID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))
			for _, row := range rs.Rows {
				Expect(row[models.ColumnLinearID]).To(Equal(linearID))
			}
		})

		It("should not match on case-folded ids", func() {
			rs, err := s.Vault().FindByLinearID(ctx, "A7B6C5D4-0000-0000-0000-00000000ABCD")
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Empty()).To(BeTrue())
		})

		It("should return an empty row set when nothing matches", func() {
			rs, err := s.Vault().FindByLinearID(ctx, "missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Empty()).To(BeTrue())
		})
	})

	Context("fungible states", func() {
		It("should filter by transaction id", func() {
			rs, err := s.Vault().FindFungibleStatesByTransactionID(ctx, "3")
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))
			Expect(rs.Rows[0]["OWNER_NAME"]).To(Equal("O=PartyB, L=New York, C=US"))
		})

		It("should filter by issuer", func() {
			rs, err := s.Vault().FindFungibleStatesByIssuer(ctx, bank)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(2))

			rs, err = s.Vault().FindFungibleStatesByIssuer(ctx, "O=Bank")
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Empty()).To(BeTrue())
		})
	})

	Context("FindUnconsumedStatesByContractClass", func() {
		// Given consumed and unconsumed states of several contract classes
		// When we look up unconsumed states of one class
		// Then every returned row is unconsumed AND of that class
		It("should apply both predicates jointly", func() {
			rs, err := s.Vault().FindUnconsumedStatesByContractClass(ctx, cashState)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))
			for _, row := range rs.Rows {
				Expect(row[models.ColumnConsumedTimestamp]).To(BeNil())
				Expect(row[models.ColumnContractStateClassName]).To(Equal(cashState))
			}
			Expect(rs.Rows[0][models.ColumnTransactionID]).To(Equal("3"))
		})

		It("should return other classes separately", func() {
			rs, err := s.Vault().FindUnconsumedStatesByContractClass(ctx, iouState)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))
			Expect(rs.Rows[0][models.ColumnTransactionID]).To(Equal("4"))
		})
	})

	Context("FindLinearIDByTransactionID", func() {
		It("should return the linear id of the first matching row", func() {
			id, err := s.Vault().FindLinearIDByTransactionID(ctx, "4")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(linearID))
		})

		// Given no linear state for the transaction
		// When we look up its linear id
		// Then it should fail with NotFoundError rather than return an empty value
		It("should fail with NotFoundError when nothing matches", func() {
			id, err := s.Vault().FindLinearIDByTransactionID(ctx, "1")
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsNotFoundError(err)).To(BeTrue())
			Expect(id).To(BeEmpty())
		})
	})

	Context("FindStatesByLinearID", func() {
		It("should join linear states with their vault state", func() {
			rs, err := s.Vault().FindStatesByLinearID(ctx, linearID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))
			Expect(rs.Columns).To(ContainElements(models.ColumnLinearID, models.ColumnContractStateClassName))
			Expect(rs.Rows[0][models.ColumnContractStateClassName]).To(Equal(iouState))
		})
	})

	Context("FindTransactionNotes", func() {
		It("should return the notes of a transaction", func() {
			rs, err := s.Vault().FindTransactionNotes(ctx, "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(1))
			Expect(rs.Rows[0][models.ColumnNote]).To(Equal("first issuance"))
		})
	})
})
