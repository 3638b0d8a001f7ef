package opts

import (
	"github.com/dcgeo/seiscopy/pkg/config"
	"github.com/dcgeo/seiscopy/pkg/mapping"
	"github.com/dcgeo/seiscopy/pkg/status"
	"github.com/spf13/cobra"
)

// RootOpts contains shared dependencies used by all commands
type RootOpts struct {
	Config     *config.Config
	Mapping    *mapping.Mapping
	UserLogger *status.UserLogger
}

// Builder assembles RootOpts for a command invocation. It runs inside RunE
// so flag values are parsed by the time it is called.
type Builder func(cmd *cobra.Command) (*RootOpts, error)
