package commands

import (
	"github.com/dcgeo/seiscopy/cmd/seiscopy/opts"
	"github.com/dcgeo/seiscopy/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(build opts.Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy data files into the renamed destination tree",
		Long: `Copy walks the source tree and copies every data file whose station
directory has a mapping entry. It will:
1. Load the rename mapping from the Excel workbook
2. Walk station/SHORT/day/hour directories matching the naming rules
3. Route each file through the longest matching mapping prefix
4. Copy it, preserving permissions and modification time`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			o, err := build(cmd)
			if err != nil {
				return err
			}
			if err := o.Config.EnsurePaths(); err != nil {
				return err
			}

			op, err := operation.NewCopyOperation(operation.Options{
				Config:     o.Config,
				Mapping:    o.Mapping,
				UserLogger: o.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating copy operation: %w", err)
			}

			runner := operation.NewRunner(logger)
			if err := runner.Run(ctx, op); err != nil {
				return err
			}

			if !o.Config.DryRun {
				o.UserLogger.Summary(op.Copied())
			}
			return nil
		},
	}

	return cmd
}
