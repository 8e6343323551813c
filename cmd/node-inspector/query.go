package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/store"
	"github.com/kubev2v/node-inspector/pkg/render"
)

type rowSetQuery func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error)

var queries = map[string]rowSetQuery{
	"linear-id": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindByLinearID(ctx, arg)
	},
	"vault-tx": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindVaultStatesByTransactionID(ctx, arg)
	},
	"fungible-tx": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindFungibleStatesByTransactionID(ctx, arg)
	},
	"issuer": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindFungibleStatesByIssuer(ctx, arg)
	},
	"unconsumed": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindUnconsumedStatesByContractClass(ctx, arg)
	},
	"states-by-linear-id": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindStatesByLinearID(ctx, arg)
	},
	"notes": func(ctx context.Context, v *store.VaultStore, arg string) (*models.RowSet, error) {
		return v.FindTransactionNotes(ctx, arg)
	},
}

const linearIDOfTx = "linear-id-of-tx"

func queryKinds() []string {
	kinds := []string{linearIDOfTx}
	for k := range queries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func newQueryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query KIND ARG",
		Short: "Run a vault lookup",
		Long:  "Run a vault lookup. KIND is one of: " + strings.Join(queryKinds(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, arg := args[0], args[1]
			q, ok := queries[kind]
			if !ok && kind != linearIDOfTx {
				return fmt.Errorf("unknown query %q, expected one of: %s", kind, strings.Join(queryKinds(), ", "))
			}

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if kind == linearIDOfTx {
				id, err := st.Vault().FindLinearIDByTransactionID(cmd.Context(), arg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, id)
				return err
			}

			rs, err := q(cmd.Context(), st.Vault(), arg)
			if err != nil {
				return err
			}
			if err := render.ColoredSection(out, rs.Table.String()); err != nil {
				return err
			}
			return render.RowSet(out, rs)
		},
	}
}
