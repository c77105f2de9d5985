package archivectl

import (
	"errors"
	"fmt"
	"io"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/platform/logging"
	"github.com/cryals/art-archive/internal/tui"
	"github.com/cryals/art-archive/internal/viewstate"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		width int
		style string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one dossier or gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer logging.Sync(logger)

			item, err := store.Find(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, archive.ErrNotFound) {
					return fmt.Errorf("no archive entry %q", args[0])
				}
				return err
			}
			return printItem(cmd.OutOrStdout(), item, width, style)
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "wrap width for dossier text")
	cmd.Flags().StringVar(&style, "style", tui.DefaultMarkdownStyle, "glamour style: dark, light, notty, ...")
	return cmd
}

func printItem(out io.Writer, item archive.Item, width int, style string) error {
	switch {
	case item.Locked || item.Kind == archive.KindLocked:
		return fmt.Errorf("%s: %w", item.ID, viewstate.ErrLocked)
	case item.Kind == archive.KindGallery:
		fmt.Fprintf(out, "%s\n%s\n\n", item.Name, item.Sub)
		for idx, image := range item.GalleryImages {
			fmt.Fprintf(out, "%3d  %-32s %s\n", idx+1, image.Name, image.URL)
		}
		return nil
	default:
		text, err := tui.RenderDossier(item, -1, width, style)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, text)
		return err
	}
}
