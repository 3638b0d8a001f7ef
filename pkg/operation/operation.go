// Copyright 2025 dcgeo
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package operation implements the copy pass over the source tree.
package operation

import (
	"context"

	"github.com/dcgeo/seiscopy/pkg/config"
	"github.com/dcgeo/seiscopy/pkg/mapping"
	"github.com/dcgeo/seiscopy/pkg/status"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single unit of work over the source tree
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies every operation needs
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// Mapping is the loaded rename table
	Mapping *mapping.Mapping
	// UserLogger renders per-file console feedback
	UserLogger *status.UserLogger
}

// 🏗️ validate checks that required dependencies are present
func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Mapping == nil {
		return errors.Errorf("mapping is required")
	}
	if o.UserLogger == nil {
		return errors.Errorf("user logger is required")
	}
	return nil
}

// 🏃 Runner executes operations one after another. The whole tool is
// deliberately sequential: one thread of control, no suspension points
// beyond blocking I/O.
type Runner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{logger: logger}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	r.logger.Debug().Str("operation", op.Name()).Msg("starting operation")
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("running %s: %w", op.Name(), err)
	}
	r.logger.Debug().Str("operation", op.Name()).Msg("operation complete")
	return nil
}
