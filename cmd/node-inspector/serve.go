package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/node-inspector/internal/handlers"
	"github.com/kubev2v/node-inspector/internal/server"
	"github.com/kubev2v/node-inspector/internal/services"
	"github.com/kubev2v/node-inspector/pkg/scheduler"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only diagnostic API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			sched := scheduler.NewScheduler(a.cfg.Bridge.Workers)
			defer sched.Close()

			inspector := services.NewInspectorService(st)
			monitor := services.NewMonitorService(sched, a.bridgeClient())

			srv, err := server.NewServer(a.cfg, func(router *gin.RouterGroup) {
				handlers.New(inspector, monitor).RegisterRoutes(router)
			})
			if err != nil {
				return err
			}

			if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			zap.S().Named("main").Info("server stopped")
			return nil
		},
	}

	cmd.Flags().Int("http-port", 8000, "HTTP listen port")
	cmd.Flags().String("server-mode", "dev", "Server mode (dev, prod)")
	a.bind(cmd.Flags().Lookup("http-port"), "server.http-port")
	a.bind(cmd.Flags().Lookup("server-mode"), "server.server-mode")
	return cmd
}
