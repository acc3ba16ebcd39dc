package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"isoserve/core/config"
	"isoserve/core/loader"
	"isoserve/core/logger"
	"isoserve/core/server"
	"isoserve/core/storage"
	"isoserve/feature/static"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Long:  `Starts the HTTP server on the configured port and serves the document root until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Check the document root. A missing root is served as 404s.
	if err := storage.CheckRoot(afero.NewOsFs(), cfg.Server.DocumentRoot); err != nil {
		logg.Warn("Document root is not a readable directory", zap.Error(err))
	}

	// 4. Build the pipeline
	srv := server.New(cfg.Server, logg)

	mgr := loader.NewManager()
	mgr.Register(static.NewFeature(storage.NewFS(cfg.Server.DocumentRoot), cfg.Server, logg))

	if _, err := mgr.LoadAll(srv); err != nil {
		return err
	}

	// 5. Start Server
	if err := srv.Start(); err != nil {
		return err
	}

	// 6. Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case <-c:
		logg.Info("Shutting down server...")
		return srv.Shutdown()
	case err := <-srv.Errors():
		return err
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
