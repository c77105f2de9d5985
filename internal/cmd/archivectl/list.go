package archivectl

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/platform/logging"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dossiers, galleries and the locked entry",
		Args:  cobra.NoArgs,
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
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), itemTable(items))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the listing as JSON")
	return cmd
}

func itemTable(items []archive.Item) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FILE", "ID", "TYPE", "NAME", "SUB")
	for idx, item := range items {
		t.Row(item.FileLabel(idx+1), item.ID, string(item.Kind), item.Name, item.Sub)
	}
	return t.String()
}
