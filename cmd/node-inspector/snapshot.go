package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubev2v/node-inspector/internal/services"
)

func newSnapshotCommand(a *app) *cobra.Command {
	var (
		output string
		xlsx   bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Dump every table into a snapshot file",
		Long: `Dump every table, in catalog order, into one text file. The default file
name is <node-name>_snapshot_<YYYYMMDD_HHMMSS>.txt in the output directory.

The snapshot is all-or-nothing: the first failing table aborts it and removes
the partial file, unless --continue-on-error is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			opts := []services.ReportOption{
				services.WithNodeName(a.cfg.Snapshot.NodeName),
				services.WithOutputDir(a.cfg.Snapshot.OutputDir),
				services.WithContinueOnError(a.cfg.Snapshot.ContinueOnError),
			}

			var path string
			if xlsx {
				path, err = services.NewExportService(st.Tables(), opts...).Generate(cmd.Context(), output)
			} else {
				path, err = services.NewSnapshotService(st.Tables(), opts...).Generate(cmd.Context(), output)
			}
			if path != "" {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: generated name in --output-dir)")
	cmd.Flags().String("output-dir", ".", "Directory for generated file names")
	cmd.Flags().Bool("continue-on-error", false, "Write failing tables as errors and keep going")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "Write an xlsx workbook instead of text")
	a.bind(cmd.Flags().Lookup("output-dir"), "snapshot.output-dir")
	a.bind(cmd.Flags().Lookup("continue-on-error"), "snapshot.continue-on-error")

	return cmd
}
