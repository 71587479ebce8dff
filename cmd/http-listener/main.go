package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/metrics"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/server"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/tracing"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/version"
)

// Main package

// Time given to open exchanges when stopping.
const shutdownTimeout = 30 * time.Second

func startServer(mainConfDir string) {
	// Create new logger
	logger := log.NewLogger()

	// Create configuration manager
	cfgManager := config.NewManager(logger)

	// Load configuration
	err := cfgManager.Load(mainConfDir)
	if err != nil {
		logger.Fatal(err)
	}

	// Get configuration
	cfg := cfgManager.GetConfig()
	// Configure logger
	err = logger.Configure(cfg.Log.Level, cfg.Log.Format, cfg.Log.FilePath)
	if err != nil {
		logger.Fatal(err)
	}

	// Watch change for logger (special case)
	cfgManager.AddOnChangeHook(func() {
		// Get configuration
		cfg := cfgManager.GetConfig()
		// Configure logger
		err = logger.Configure(cfg.Log.Level, cfg.Log.Format, cfg.Log.FilePath)
		if err != nil {
			logger.Fatal(err)
		}
	})

	logger.Debug("Configuration successfully loaded and logger configured")

	// Getting version
	v := version.GetVersion()
	logger.Infof("Starting http-listener %s", v)

	// Generate metrics instance
	metricsCl := metrics.NewClient()

	// Generate tracing service instance
	tracingSvc, err := tracing.New(cfgManager, logger, metricsCl)
	// Check error
	if err != nil {
		logger.Fatal(err)
	}
	// Prepare on reload hook
	cfgManager.AddOnChangeHook(func() {
		err2 := tracingSvc.Reload()
		if err2 != nil {
			logger.Fatal(err2)
		}
	})

	// Create internal server
	intSvr := server.NewInternalServer(logger, cfgManager, metricsCl, tracingSvc)
	// Generate server
	err = intSvr.GenerateServer()
	if err != nil {
		logger.Fatal(err)
	}
	// Create server
	svr := server.NewServer(logger, cfgManager, metricsCl, tracingSvc)
	// Generate server
	err = svr.GenerateServer()
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := svr.Listen()
		if errors.Is(err, server.ErrServerClosed) {
			return nil
		}

		return err
	})
	g.Go(intSvr.Listen)
	// Stop both servers on signal or on the first failure
	g.Go(func() error {
		<-gctx.Done()

		logger.Info("Stopping servers")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := svr.Shutdown(sctx)
		err2 := intSvr.Shutdown(sctx)

		return errors.Combine(err, err2)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal(err)
	}
}

func main() {
	var configFolder string

	rootCmd := &cobra.Command{
		Use:   "http-listener",
		Short: "HTTP/1.x listener",
		Long:  "HTTP/1.x listener parsing, validating and echoing requests with drained keep-alive connections",
		Run: func(_ *cobra.Command, _ []string) {
			startServer(configFolder)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of http-listener",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetVersion())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&configFolder, "config", "conf/", "Config folder (default is <Current Working Directory>/conf/)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
