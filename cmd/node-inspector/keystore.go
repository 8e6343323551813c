package main

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kubev2v/node-inspector/pkg/keystore"
	"github.com/kubev2v/node-inspector/pkg/render"
)

func newKeystoreCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore PATH",
		Short: "Print the private keys of a Java keystore, base64 encoded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks := a.cfg.Keystore
			keys, err := keystore.InspectFile(args[0], []byte(ks.StorePassword), []byte(ks.KeyPassword))
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(keys))
			for _, alias := range slices.Sorted(maps.Keys(keys)) {
				rows = append(rows, [2]string{alias, keys[alias]})
			}
			render.KeyValues(cmd.OutOrStdout(), [2]string{"ALIAS", "PRIVATE KEY"}, rows)
			return nil
		},
	}

	cmd.Flags().String("store-password", "", "Keystore password")
	cmd.Flags().String("key-password", "", "Private key password")
	a.bind(cmd.Flags().Lookup("store-password"), "keystore.store-password")
	a.bind(cmd.Flags().Lookup("key-password"), "keystore.key-password")
	return cmd
}
