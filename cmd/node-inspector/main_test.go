package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
	"github.com/kubev2v/node-inspector/test"
)

func run(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var _ = Describe("node-inspector", func() {
	var (
		dir string
		url string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path := filepath.Join(dir, "node.db")
		Expect(test.NewNodeDatabaseFile(context.Background(), path)).To(Succeed())
		url = "jdbc:duckdb:" + path
	})

	It("should list tables in catalog order without a database", func() {
		out, err := run("tables")
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(out), "\n")
		Expect(lines[0]).To(Equal("NODE_ATTACHMENTS"))
		Expect(lines).To(ContainElement("VAULT_STATES"))
	})

	It("should require a database url", func() {
		_, err := run("table", "NODE_INFOS")
		Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
	})

	It("should print one table", func() {
		out, err := run("table", "node_infos", "--url", url)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("----------------- NODE_INFOS"))
		Expect(out).To(ContainSubstring("A1B2C3"))
		Expect(out).To(ContainSubstring("(1 rows)"))
	})

	It("should reject unknown tables before connecting", func() {
		_, err := run("table", "NOT_A_TABLE", "--url", url)
		Expect(srvErrors.IsQueryError(err)).To(BeTrue())
	})

	// Given a seeded node database
	// When we run vault lookups
	// Then matching rows and the linear id should be printed
	It("should run vault lookups", func() {
		out, err := run("query", "issuer", "O=Bank, L=London, C=GB", "--url", url)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("(2 rows)"))

		out, err = run("query", "linear-id-of-tx", "4", "--url", url)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.TrimSpace(out)).To(Equal("a7b6c5d4-0000-0000-0000-00000000abcd"))

		_, err = run("query", "linear-id-of-tx", "1", "--url", url)
		Expect(srvErrors.IsNotFoundError(err)).To(BeTrue())
	})

	It("should reject unknown query kinds", func() {
		_, err := run("query", "everything", "x", "--url", url)
		Expect(err).To(MatchError(ContainSubstring("unknown query")))
	})

	It("should write a snapshot to the output directory", func() {
		out, err := run("snapshot", "--url", url, "--node-name", "PartyA", "--output-dir", dir)
		Expect(err).NotTo(HaveOccurred())

		path := strings.TrimSpace(out)
		Expect(filepath.Dir(path)).To(Equal(dir))
		Expect(filepath.Base(path)).To(HavePrefix("PartyA_snapshot_"))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("----------------- VAULT_TRANSACTION_NOTES"))
	})

	It("should draw the vault status chart", func() {
		out, err := run("plot", "status", "--url", url)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("COUNT"))
	})

	It("should fail bridge reads without a proxy", func() {
		_, err := run("bridge", "read", "java.lang:type=Memory")
		Expect(srvErrors.IsConfigurationError(err)).To(BeTrue())
	})

	It("should fail on a missing keystore", func() {
		_, err := run("keystore", filepath.Join(dir, "missing.jks"))
		Expect(srvErrors.IsKeystoreError(err)).To(BeTrue())
	})
})
