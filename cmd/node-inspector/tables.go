package main

import (
	"github.com/spf13/cobra"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/pkg/render"
)

func newTablesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the known tables in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := models.Tables()
			names := make([]string, 0, len(tables))
			for _, t := range tables {
				names = append(names, t.String())
			}
			return render.List(cmd.OutOrStdout(), names)
		},
	}
}

func newTableCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "table NAME",
		Short: "Print every row of one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := models.ParseTableName(args[0])
			if err != nil {
				return err
			}

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			rs, err := st.Tables().Fetch(cmd.Context(), table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := render.ColoredSection(out, table.String()); err != nil {
				return err
			}
			return render.RowSet(out, rs)
		},
	}
}
