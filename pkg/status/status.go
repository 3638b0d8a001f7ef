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

// Package status renders per-file feedback for the console. Structured debug
// logging stays on zerolog; this package owns the human-readable lines.
package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 FileOpType represents what happened to one data file
type FileOpType int

const (
	FileCopied FileOpType = iota
	FilePlanned
	FileSkippedExists
	FileUnmapped
)

// 🖼️ FileOp represents one routed (or unroutable) data file
type FileOp struct {
	Type    FileOpType
	Source  string // source file path
	Dest    string // destination file path, empty when unmapped
	Station string // top-level station directory name
}

// 📢 UserLogger provides user-friendly feedback about the copy run
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileOp prints one file operation with appropriate prefix and color
func (u *UserLogger) LogFileOp(op FileOp) {
	msg := FormatFileOp(op)

	var printer *pterm.PrefixPrinter
	switch op.Type {
	case FileCopied:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "📄"})
	case FilePlanned:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "🔍"})
	case FileSkippedExists:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FileUnmapped:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"})
	default:
		printer = &pterm.Info
	}

	printer.Println(msg)
	if op.Type == FileUnmapped {
		u.log.Warn().Str("station", op.Station).Str("file", op.Source).Msg("no mapping entry")
	} else {
		u.log.Debug().Str("src", op.Source).Str("dst", op.Dest).Msg(msg)
	}
}

// 🏁 Summary prints the end-of-run line. The wording is part of the tool's
// contract, so it bypasses pterm styling.
func (u *UserLogger) Summary(copied int) {
	fmt.Printf("Done. Copied %d file(s).\n", copied)
	u.log.Info().Int("copied", copied).Msg("run complete")
}
