package services_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/services"
	"github.com/kubev2v/node-inspector/internal/store"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
	"github.com/kubev2v/node-inspector/test"
)

var _ = Describe("Inspector", func() {
	var (
		ctx       context.Context
		s         *store.Store
		inspector *services.Inspector
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := test.NewNodeDatabase(ctx, true)
		Expect(err).NotTo(HaveOccurred())
		s, err = store.New(ctx, db)
		Expect(err).NotTo(HaveOccurred())
		inspector = services.NewInspectorService(s)
	})

	AfterEach(func() {
		s.Close()
	})

	It("should resolve table names case-insensitively", func() {
		rs, err := inspector.Table(ctx, "vault_states")
		Expect(err).NotTo(HaveOccurred())
		Expect(rs.Table).To(Equal(models.TableVaultStates))
		Expect(rs.Len()).To(Equal(3))

		_, err = inspector.Table(ctx, "USERS")
		Expect(srvErrors.IsQueryError(err)).To(BeTrue())
	})

	DescribeTable("VaultStates",
		func(q services.VaultStatesQuery, expected []string) {
			rs, err := inspector.VaultStates(ctx, q)
			Expect(err).NotTo(HaveOccurred())

			var txs []string
			for i := range rs.Rows {
				v, _ := rs.Get(i, models.ColumnTransactionID)
				txs = append(txs, models.FormatValue(v))
			}
			Expect(txs).To(ConsistOf(expected))
		},
		Entry("no filter", services.VaultStatesQuery{}, []string{"1", "3", "4"}),
		Entry("by transaction", services.VaultStatesQuery{TransactionID: "1"}, []string{"1"}),
		Entry("unknown transaction", services.VaultStatesQuery{TransactionID: "2"}, []string{}),
		Entry("unconsumed", services.VaultStatesQuery{Unconsumed: true}, []string{"3", "4"}),
		Entry("by class", services.VaultStatesQuery{ContractClass: "net.corda.finance.contracts.asset.Cash$State"}, []string{"1", "3"}),
		Entry("unconsumed by class", services.VaultStatesQuery{ContractClass: "net.corda.finance.contracts.asset.Cash$State", Unconsumed: true}, []string{"3"}),
		Entry("all filters", services.VaultStatesQuery{TransactionID: "1", ContractClass: "net.corda.finance.contracts.asset.Cash$State", Unconsumed: true}, []string{}),
	)

	DescribeTable("FungibleStates",
		func(q services.FungibleStatesQuery, expected int) {
			rs, err := inspector.FungibleStates(ctx, q)
			Expect(err).NotTo(HaveOccurred())
			Expect(rs.Len()).To(Equal(expected))
		},
		Entry("no filter", services.FungibleStatesQuery{}, 2),
		Entry("by issuer", services.FungibleStatesQuery{Issuer: "O=Bank, L=London, C=GB"}, 2),
		Entry("by transaction and issuer", services.FungibleStatesQuery{TransactionID: "3", Issuer: "O=Bank, L=London, C=GB"}, 1),
		Entry("by other issuer", services.FungibleStatesQuery{TransactionID: "3", Issuer: "O=Other, L=Paris, C=FR"}, 0),
	)

	It("should answer the linear lookups", func() {
		id, err := inspector.LinearIDByTransaction(ctx, "4")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("a7b6c5d4-0000-0000-0000-00000000abcd"))

		rs, err := inspector.LinearStates(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(rs.Len()).To(Equal(1))

		rs, err = inspector.StatesByLinearID(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(rs.Len()).To(Equal(1))

		_, err = inspector.LinearIDByTransaction(ctx, "1")
		Expect(srvErrors.IsNotFoundError(err)).To(BeTrue())
	})

	It("should return transaction notes", func() {
		rs, err := inspector.TransactionNotes(ctx, "1")
		Expect(err).NotTo(HaveOccurred())
		Expect(rs.Len()).To(Equal(1))
	})

	// Given many concurrent callers
	// When they all read through the inspector
	// Then every read succeeds on the single session
	It("should serialize concurrent callers", func() {
		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for range 20 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := inspector.Table(ctx, models.TableVaultStates.String())
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			Expect(err).NotTo(HaveOccurred())
		}
	})
})
