package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/caseflow-lab/doctrack/pkg/cli/config"
	httpctrl "github.com/caseflow-lab/doctrack/pkg/controller/http"
	"github.com/caseflow-lab/doctrack/pkg/usecase"
	"github.com/caseflow-lab/doctrack/pkg/utils/async"
	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var defaultOwner string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DOCTRACK_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "default-owner",
			Usage:       "Owner identity assumed for requests without an X-Owner-ID header",
			Sources:     cli.EnvVars("DOCTRACK_DEFAULT_OWNER"),
			Destination: &defaultOwner,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := appCfg.Load(); err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}
			if defaultOwner == "" {
				defaultOwner = appCfg.DefaultOwner
			}

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer flush()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{}
			if appCfg.DueSoonWindowDays > 0 {
				ucOpts = append(ucOpts, usecase.WithDueSoonWindow(appCfg.DueSoonWindowDays))
			}
			uc := usecase.New(repo, ucOpts...)

			// Seed the registry in the background so startup is not blocked
			// by backend writes
			if defaultOwner != "" && len(appCfg.Responsibles) > 0 {
				async.Dispatch(ctx, func(ctx context.Context) error {
					return seedResponsibles(ctx, uc, defaultOwner, appCfg.Responsibles)
				})
			}

			httpOpts := []httpctrl.Options{}
			if defaultOwner != "" {
				httpOpts = append(httpOpts, httpctrl.WithDefaultOwner(defaultOwner))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Graceful shutdown on SIGINT/SIGTERM
			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)

			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			eg.Go(func() error {
				<-egCtx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}

// seedResponsibles registers configured party names that are not yet present.
func seedResponsibles(ctx context.Context, uc *usecase.UseCases, ownerID string, entries []config.ResponsibleEntry) error {
	for _, entry := range entries {
		_, err := uc.Responsible.Add(ctx, ownerID, entry.Name)
		if err != nil {
			if errors.Is(err, usecase.ErrDuplicateResponsible) {
				continue
			}
			return goerr.Wrap(err, "failed to seed responsible", goerr.V("name", entry.Name))
		}
		logging.Default().Info("seeded responsible", "name", entry.Name, "owner", ownerID)
	}
	return nil
}
