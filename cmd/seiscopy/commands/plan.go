package commands

import (
	"github.com/dcgeo/seiscopy/cmd/seiscopy/opts"
	"github.com/dcgeo/seiscopy/pkg/operation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(build opts.Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what a copy run would do without touching the file system",
		Long: `Plan performs the same traversal and routing as copy but never creates
directories or files. Equivalent to copy --dry-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			o, err := build(cmd)
			if err != nil {
				return err
			}
			o.Config.DryRun = true
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

			return operation.NewRunner(logger).Run(ctx, op)
		},
	}

	return cmd
}
