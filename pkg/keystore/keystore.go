// Package keystore reads the private keys held in a node's Java keystore.
//
// Parsing and decryption are delegated to keystore-go; this package only
// walks the entries and encodes the key material.
package keystore

import (
	"encoding/base64"
	"io"
	"os"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	jks "github.com/pavlo-v-chernykh/keystore-go/v4"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// Entry describes one private-key entry.
type Entry struct {
	Alias            string
	CreationTime     time.Time
	CertificateChain int
	PrivateKey       string // base64
}

// Inspect returns alias → base64 private key for every private-key entry of
// the keystore read from r. Trusted certificates are skipped.
func Inspect(r io.Reader, storePassword, keyPassword []byte) (map[string]string, error) {
	entries, err := Entries(r, storePassword, keyPassword)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.Alias] = e.PrivateKey
	}
	return keys, nil
}

// InspectFile is Inspect over the keystore stored at path.
func InspectFile(path string, storePassword, keyPassword []byte) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, srvErrors.NewKeystoreError("", err)
	}
	defer f.Close()

	return Inspect(f, storePassword, keyPassword)
}

// Entries returns the private-key entries sorted by alias.
func Entries(r io.Reader, storePassword, keyPassword []byte) ([]Entry, error) {
	ks := jks.New()
	if err := ks.Load(r, storePassword); err != nil {
		return nil, srvErrors.NewKeystoreError("", err)
	}

	aliases := ks.Aliases()
	sort.Strings(aliases)

	entries := make([]Entry, 0, len(aliases))
	for _, alias := range aliases {
		if !ks.IsPrivateKeyEntry(alias) {
			zap.S().Named("keystore").Debugw("skipping entry", "alias", alias)
			continue
		}

		pke, err := ks.GetPrivateKeyEntry(alias, keyPassword)
		if err != nil {
			return nil, srvErrors.NewKeystoreError(alias, errors.Wrap(err, "failed to decrypt private key"))
		}

		entries = append(entries, Entry{
			Alias:            alias,
			CreationTime:     pke.CreationTime,
			CertificateChain: len(pke.CertificateChain),
			PrivateKey:       base64.StdEncoding.EncodeToString(pke.PrivateKey),
		})
	}

	return entries, nil
}
