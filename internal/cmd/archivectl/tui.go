package archivectl

import (
	"github.com/cryals/art-archive/internal/platform/logging"
	"github.com/cryals/art-archive/internal/tui"
	"github.com/spf13/cobra"
)

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "tui [id]",
		Short: "Run the archive desktop in the terminal",
		Long:  "Boots the terminal desktop. An id opens that entry directly and skips the lock screen.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer logging.Sync(logger)

			items, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			opts := []tui.Option{tui.WithMarkdownStyle(style)}
			if len(args) == 1 {
				opts = append(opts, tui.WithStartID(args[0]))
			}
			return tui.Run(cmd.Context(), items, opts...)
		},
	}

	cmd.Flags().StringVar(&style, "style", tui.DefaultMarkdownStyle, "glamour style for dossier pages")
	return cmd
}
