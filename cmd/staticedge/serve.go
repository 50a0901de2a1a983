// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thediveo/staticedge"
	"github.com/thediveo/staticedge/azstore"
	"github.com/thediveo/staticedge/internal/config"
)

func newServeCmd() *cobra.Command {
	var (
		configFile string
		mf         manifestFlags
	)
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a static site",
		Long: `Serve a static site over HTTP. The site is taken from the positional
directory if given, otherwise from the configured asset store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if len(args) == 1 {
				opts = append(opts, config.WithStoreDir(args[0]))
			}
			cfg, err := config.Load(configFile, opts...)
			if err != nil {
				return err
			}
			manifest, err := mf.manifest(cmd, cfg.Manifest)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Level())
			store, err := newStore(&cfg.Store, log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.WithFields(logrus.Fields{
				"version":  version,
				"addr":     cfg.Server.Addr(),
				"env":      cfg.Env(),
				"store":    cfg.Store.Kind,
				"mode":     manifest.Mode,
				"fallback": manifest.Fallback,
			}).Info("staticedge starting")
			err = serve(ctx, &cfg.Server,
				staticedge.NewHandler(manifest, store, staticedge.WithLogger(log)), log)
			log.Info("staticedge stopped")
			return err
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "",
		"configuration file (default "+config.BaseConfigFile+")")
	mf.register(cmd)
	return cmd
}

// newStore returns the asset store the configuration asks for.
func newStore(cfg *config.StoreConfig, log logrus.FieldLogger) (staticedge.Store, error) {
	switch cfg.Kind {
	case config.StoreAzure:
		store, err := azstore.New(&cfg.Azure, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		info, err := os.Stat(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("site directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("site directory: %s is not a directory", cfg.Dir)
		}
		return staticedge.NewFSStore(os.DirFS(cfg.Dir)), nil
	}
}

// serve runs an HTTP server with the specified handler until ctx gets
// cancelled, then shuts it down gracefully.
func serve(ctx context.Context, cfg *config.ServerConfig, handler http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	}
	log = log.WithField("system", "http")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info("server shutdown complete")
		return nil
	})
	return g.Wait()
}
