package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/atomview/atomview/cmd/atomview/commands"
	"github.com/atomview/atomview/config"
	"github.com/atomview/atomview/logger"
)

var rootCmd = &cobra.Command{
	Use:   "atomview",
	Short: "atomview - Atomic orbital density sampling engine",
	Long: `atomview - Monte Carlo point clouds of atomic electron densities.

Densities come from OpenMX LDA atomic calculations and PSLibrary
pseudo-wavefunctions where available, with the analytic hydrogenic
model as the fallback.

Available commands:
  serve   - Start the HTTP sampling server
  sample  - Draw one point cloud and print it as JSON
  version - Show version information

Examples:
  atomview serve                       # Serve /samples, /healthz, /ws
  atomview sample --n 3 --l 2 --m 0    # 3d orbital point cloud to stdout
  atomview sample --z 26 --mode total  # Iron total density`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Log.Level != "" {
			level, err := zapcore.ParseLevel(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
			}
			if err := logger.SetLevel(level); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.SampleCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
