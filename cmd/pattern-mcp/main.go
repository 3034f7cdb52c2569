package main

import (
	"fmt"
	"os"

	cli "github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/pattern-tools-mcp/internal/config"
	"github.com/ironsheep/pattern-tools-mcp/internal/logging"
	"github.com/ironsheep/pattern-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var configPath string

var rootCmd = &cli.Command{
	Use:   "pattern-mcp",
	Short: "MCP server for UI pattern templates",
	Long: `pattern-mcp serves pattern, position and anchor tools over the MCP
protocol on stdin/stdout. Configure it in your MCP client.

Configuration is read from pattern-mcp.yaml in the working directory (or the
--config path) and can be overridden with PATTERN_MCP_* environment variables,
e.g. PATTERN_MCP_LOG_LEVEL=debug.`,
	SilenceUsage: true,
	RunE:         Serve,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./pattern-mcp.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger and server.
func setup() (*config.Config, *zap.Logger, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, server.New(cfg, logger), nil
}

// Serve starts the MCP server on stdin/stdout.
func Serve(cmd *cli.Command, args []string) error {
	_, logger, srv, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting pattern MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	for _, name := range srv.ToolNames() {
		logger.Info("registered tool", zap.String("tool", name))
	}

	loaded, err := srv.Preload()
	if err != nil {
		logger.Warn("some patterns failed to preload", zap.Error(err))
	}
	logger.Info("preload complete", zap.Int("patterns", loaded))

	if err := srv.Run(); err != nil {
		logger.Error("server error", zap.Error(err))
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
