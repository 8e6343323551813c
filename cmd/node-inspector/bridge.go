package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubev2v/node-inspector/internal/services"
	"github.com/kubev2v/node-inspector/pkg/bridge"
	"github.com/kubev2v/node-inspector/pkg/render"
	"github.com/kubev2v/node-inspector/pkg/scheduler"
)

func newBridgeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Talk to the node's management bridge",
	}
	cmd.PersistentFlags().String("token", "", "Bearer token sent to the proxy")
	cmd.PersistentFlags().Duration("timeout", 30*time.Second, "Per request timeout")
	a.bind(cmd.PersistentFlags().Lookup("token"), "bridge.token")
	a.bind(cmd.PersistentFlags().Lookup("timeout"), "bridge.timeout")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "read ADDRESS",
			Short: "Read the attributes of an object address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := a.bridgeClient().Read(cmd.Context(), bridge.ObjectAddress(args[0]))
				if err != nil {
					return err
				}
				return writeValue(cmd.OutOrStdout(), resp)
			},
		},
		&cobra.Command{
			Use:   "exec ADDRESS OPERATION",
			Short: "Invoke an operation on an object address",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := a.bridgeClient().Execute(cmd.Context(), bridge.ObjectAddress(args[0]), args[1])
				if err != nil {
					return err
				}
				return writeValue(cmd.OutOrStdout(), resp)
			},
		},
		&cobra.Command{
			Use:   "probes",
			Short: "List the known probes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				var rows [][2]string
				for _, p := range bridge.Catalog() {
					target := string(p.Address)
					if p.Operation != "" {
						target += " " + p.Operation
					}
					rows = append(rows, [2]string{p.Name, target})
				}
				render.KeyValues(cmd.OutOrStdout(), [2]string{"PROBE", "TARGET"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "probe [NAME...]",
			Short: "Run probes concurrently, all of them when no name is given",
			RunE: func(cmd *cobra.Command, args []string) error {
				sched := scheduler.NewScheduler(a.cfg.Bridge.Workers)
				defer sched.Close()

				responses, err := services.NewMonitorService(sched, a.bridgeClient()).Poll(cmd.Context(), args...)
				if werr := writeResponses(cmd.OutOrStdout(), responses); werr != nil {
					return werr
				}
				return err
			},
		},
		newWatchCommand(a),
	)

	return cmd
}

func newWatchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [NAME...]",
		Short: "Poll probes periodically until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := scheduler.NewScheduler(a.cfg.Bridge.Workers)
			defer sched.Close()

			out := cmd.OutOrStdout()
			monitor := services.NewMonitorService(sched, a.bridgeClient())
			err := monitor.Watch(ctx, a.cfg.Bridge.Interval, func(responses map[string]*bridge.Response, err error) {
				fmt.Fprintf(out, "# %s\n", time.Now().Format(time.RFC3339))
				_ = writeResponses(out, responses)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
				}
			}, args...)
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Duration("interval", 5*time.Second, "Polling interval")
	a.bind(cmd.Flags().Lookup("interval"), "bridge.interval")
	return cmd
}

func writeValue(w io.Writer, resp *bridge.Response) error {
	var v any
	if err := resp.Decode(&v); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeResponses(w io.Writer, responses map[string]*bridge.Response) error {
	names := make([]string, 0, len(responses))
	for name := range responses {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := render.Section(w, name); err != nil {
			return err
		}
		if err := writeValue(w, responses[name]); err != nil {
			return err
		}
	}
	return nil
}
