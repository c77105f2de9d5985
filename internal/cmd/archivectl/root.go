// Package archivectl implements the archivectl command line: listing the
// archive, printing dossiers and starting the terminal desktop.
package archivectl

import (
	"strings"

	"github.com/cryals/art-archive/internal/archive"
	platformcmd "github.com/cryals/art-archive/internal/platform/cmd"
	"github.com/cryals/art-archive/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	AssetsDir string
	LogLevel  string
}

type envConfig struct {
	AssetsDir string `env:"ARCHIVE_ASSETS_DIR" envDefault:"assets"`
	LogLevel  string `env:"ARCHIVE_LOG_LEVEL"  envDefault:"warn"`
}

// NewRootCommand creates the root command for archivectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "archivectl",
		Short: "Browse the ART//ARCHIVE from a terminal",
		Long: `archivectl reads the same asset root as the web desktop.

It lists dossiers and galleries, prints a dossier as formatted text,
and runs the full desktop experience in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var env envConfig
			if err := platformcmd.ParseConfig(&env); err != nil {
				return err
			}
			if strings.TrimSpace(opts.AssetsDir) == "" {
				opts.AssetsDir = env.AssetsDir
			}
			if strings.TrimSpace(opts.LogLevel) == "" {
				opts.LogLevel = env.LogLevel
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.AssetsDir, "assets", "", "asset root (defaults to $ARCHIVE_ASSETS_DIR, then ./assets)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level for scan warnings")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// openStore builds the asset store with a console logger on stderr.
func (o *RootOptions) openStore() (*archive.Store, *zap.Logger, error) {
	logger, err := logging.New(logging.Config{Level: o.LogLevel, Format: logging.FormatConsole}, platformcmd.ServiceCLI)
	if err != nil {
		return nil, nil, err
	}
	store, err := archive.NewStore(o.AssetsDir, archive.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return store, logger, nil
}
