package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubev2v/node-inspector/pkg/plot"
)

var plots = map[string]func(p *plot.Plotter, ctx context.Context) (string, error){
	"attachments": (*plot.Plotter).NodeAttachments,
	"messages":    (*plot.Plotter).NodeMessageIDs,
	"consumed":    (*plot.Plotter).VaultStatesConsumed,
	"checkpoints": (*plot.Plotter).NodeCheckpointIDs,
	"status":      (*plot.Plotter).VaultStatesStatus,
}

func newPlotCommand(a *app) *cobra.Command {
	kinds := make([]string, 0, len(plots))
	for k := range plots {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	var height int
	cmd := &cobra.Command{
		Use:       "plot KIND",
		Short:     "Draw a chart of node data in the terminal",
		Long:      "Draw a chart of node data in the terminal. KIND is one of: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			draw, ok := plots[args[0]]
			if !ok {
				return fmt.Errorf("unknown plot %q, expected one of: %s", args[0], strings.Join(kinds, ", "))
			}

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			out, err := draw(plot.NewPlotter(st.Tables(), plot.WithHeight(height)), cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVar(&height, "height", 10, "Graph height in lines")
	return cmd
}
