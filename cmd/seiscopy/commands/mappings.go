package commands

import (
	"strings"

	"github.com/dcgeo/seiscopy/cmd/seiscopy/opts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewMappingsCmd creates a new mappings command
func NewMappingsCmd(build opts.Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Load and display the rename mapping table",
		Long: `Mappings loads the Excel workbook and prints the rename table the copy
run would use, in row order. Useful for checking the workbook before a run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := build(cmd)
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Source pattern", "Prefix", "Destination"}}
			for _, e := range o.Mapping.Entries() {
				data = append(data, []string{e.Pattern, strings.TrimRight(e.Pattern, "*"), e.Dest})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return errors.Errorf("rendering mapping table: %w", err)
			}

			pterm.Info.Printfln("%d mapping entr%s loaded from %s",
				o.Mapping.Len(), pluralY(o.Mapping.Len()), o.Config.MappingXLSX)
			return nil
		},
	}

	return cmd
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
