package main

import (
	"context"
	"os"

	"github.com/dcgeo/seiscopy/cmd/seiscopy/commands"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	rootCmd := &cobra.Command{
		Use:   "seiscopy",
		Short: "Copy short-period seismic data into a renamed destination tree",
		Long: `seiscopy walks a source tree of station data laid out as
<station>/SHORT/<yymmdd>/<yymmddhh>/<yymmddhh>.<nn> and copies each file into
a destination tree whose top-level folders are renamed according to an Excel
mapping (column A = source folder pattern, column B = destination folder).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Flags are parsed by now, so the debug flag can take effect.
			setupLogging()
		},
	}

	addRootFlags(rootCmd)

	copyCmd := commands.NewCopyCmd(newRootOpts)

	// Running with no subcommand behaves like copy, so the tool can be
	// driven with flags alone.
	rootCmd.RunE = copyCmd.RunE

	rootCmd.AddCommand(
		copyCmd,
		commands.NewPlanCmd(newRootOpts),
		commands.NewMappingsCmd(newRootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
