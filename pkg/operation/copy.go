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

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dcgeo/seiscopy/pkg/status"
	"github.com/dcgeo/seiscopy/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewCopyOperation creates a new copy operation
func NewCopyOperation(opts Options) (*CopyOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &CopyOperation{opts: opts}, nil
}

// 📦 CopyOperation walks the source tree and copies every routable data file
// into the renamed destination tree. Routing is a pure function of the file's
// path components and the mapping; the only state carried across files is the
// copied counter.
type CopyOperation struct {
	opts   Options
	copied int
}

// Name implements Operation
func (op *CopyOperation) Name() string {
	return "copy"
}

// 🔢 Copied returns the number of files actually written. Always zero after
// a dry run.
func (op *CopyOperation) Copied() int {
	return op.copied
}

// 🏃 Execute runs the copy pass. A file with no mapping entry is warned
// about and skipped; an I/O failure aborts the whole run.
func (op *CopyOperation) Execute(ctx context.Context) error {
	cfg := op.opts.Config
	return walker.Walk(ctx, cfg.SourceRoot, cfg.StationPattern, func(e walker.Entry) error {
		return op.processEntry(e)
	})
}

// 📄 processEntry routes and copies a single data file
func (op *CopyOperation) processEntry(e walker.Entry) error {
	cfg := op.opts.Config

	mapped, ok := op.opts.Mapping.Match(e.Station)
	if !ok {
		op.opts.UserLogger.LogFileOp(status.FileOp{
			Type:    status.FileUnmapped,
			Source:  e.Path,
			Station: e.Station,
		})
		return nil
	}

	destDir := filepath.Join(cfg.DestRoot, mapped, e.Day, e.Hour)
	destFile := filepath.Join(destDir, filepath.Base(e.Path))

	if cfg.SkipExisting {
		if _, err := os.Stat(destFile); err == nil {
			op.opts.UserLogger.LogFileOp(status.FileOp{
				Type: status.FileSkippedExists,
				Dest: destFile,
			})
			return nil
		}
	}

	if cfg.DryRun {
		op.opts.UserLogger.LogFileOp(status.FileOp{
			Type:   status.FilePlanned,
			Source: e.Path,
			Dest:   destFile,
		})
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Errorf("creating destination directories: %w", err)
	}
	if err := copyFile(e.Path, destFile); err != nil {
		return errors.Errorf("copying %s: %w", e.Path, err)
	}

	op.copied++
	op.opts.UserLogger.LogFileOp(status.FileOp{
		Type:   status.FileCopied,
		Source: e.Path,
		Dest:   destFile,
	})
	return nil
}

// 📥 copyFile copies src to dst, preserving permission bits and the
// modification time of the source.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("opening destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("writing destination: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}

	// An existing destination may carry different permission bits than the
	// O_CREATE mode applied.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("setting timestamps: %w", err)
	}

	return nil
}
