package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/amytools-labs/amytools/internal/app"
	"github.com/amytools-labs/amytools/internal/config"
	"github.com/amytools-labs/amytools/internal/logging"
	"github.com/amytools-labs/amytools/internal/metrics"
	"github.com/amytools-labs/amytools/internal/password"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	runFile        string
	runMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive workspace",
	Long: `Open the workspace: a ribbon, a command palette, a status bar and the
extension's dialogs. Mouse clicks are delivered to the extension's listeners.

Logs go to the log file (config key log.level and log.file). Changes to the
config file are picked up while the workspace is open. With --metrics-addr a
Prometheus endpoint is served at /metrics for the session's lifetime.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFile, "file", "", "Open this vault file on start")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	reg := metrics.New()
	presenter := &app.Presenter{}
	s, err := openSession(ctx, sessionOptions{
		presenter: presenter,
		file:      runFile,
		metrics:   reg,
		password:  password.DefaultOptions(),
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	config.Watch(func(e fsnotify.Event) {
		if err := logging.SetLevel(appLog.Level, config.Get(config.KeyLogLevel)); err != nil {
			appLog.Warn("config reload", zap.Error(err))
			return
		}
		appLog.Info("config reloaded", zap.String("file", e.Name), zap.Stringer("level", appLog.Level.Level()))
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return app.Run(gctx, s.manager, presenter, appLog.Logger)
	})

	if runMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		srv := &http.Server{Addr: runMetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			appLog.Info("serving metrics", zap.String("addr", runMetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	runErr := g.Wait()
	return errors.Join(runErr, s.close(context.WithoutCancel(ctx)))
}
