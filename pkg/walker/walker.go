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

// Package walker enumerates seismic data files laid out as
// <root>/<station>/SHORT/<yymmdd>/<yymmddhh>/<yymmddhh>.<nn>.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ShortDirName is the fixed subdirectory holding short-period records
// inside every station directory.
const ShortDirName = "SHORT"

var (
	dayRe  = regexp.MustCompile(`^\d{6}$`)
	hourRe = regexp.MustCompile(`^\d{8}$`)
	fileRe = regexp.MustCompile(`^\d{8}\.\d{2}$`)
)

// 📦 Entry describes one data file found during traversal
type Entry struct {
	Station string // Top-level station directory name
	Day     string // 6-digit day directory name
	Hour    string // 8-digit hour directory name
	Path    string // Full path of the data file
}

// WalkFunc is called once per matching data file. Returning an error stops
// the walk and propagates the error.
type WalkFunc func(Entry) error

// 🚶 Walk traverses root and calls fn for every file matching the four-level
// layout. Station directories are selected by glob-matching their name
// against pattern; directories without a SHORT subdirectory are skipped, as
// is anything whose name fails the level's digit rule. Entries arrive in
// directory enumeration order, which is not guaranteed stable across runs.
func Walk(ctx context.Context, root, pattern string, fn WalkFunc) error {
	logger := zerolog.Ctx(ctx)

	if !doublestar.ValidatePattern(pattern) {
		return errors.Errorf("invalid station pattern %q", pattern)
	}

	stations, err := os.ReadDir(root)
	if err != nil {
		return errors.Errorf("reading source root: %w", err)
	}

	for _, station := range stations {
		if !station.IsDir() {
			continue
		}
		matched, err := doublestar.Match(pattern, station.Name())
		if err != nil {
			return errors.Errorf("matching station pattern: %w", err)
		}
		if !matched {
			continue
		}

		shortDir := filepath.Join(root, station.Name(), ShortDirName)
		if info, err := os.Stat(shortDir); err != nil || !info.IsDir() {
			logger.Debug().Str("station", station.Name()).Msg("no SHORT directory, skipping")
			continue
		}
		days, err := os.ReadDir(shortDir)
		if err != nil {
			return errors.Errorf("reading %s: %w", shortDir, err)
		}

		if err := walkDays(shortDir, station.Name(), days, fn); err != nil {
			return err
		}
	}

	return nil
}

func walkDays(shortDir, station string, days []os.DirEntry, fn WalkFunc) error {
	for _, day := range days {
		if !day.IsDir() || !dayRe.MatchString(day.Name()) {
			continue
		}
		dayDir := filepath.Join(shortDir, day.Name())
		hours, err := os.ReadDir(dayDir)
		if err != nil {
			return errors.Errorf("reading %s: %w", dayDir, err)
		}
		for _, hour := range hours {
			if !hour.IsDir() || !hourRe.MatchString(hour.Name()) {
				continue
			}
			hourDir := filepath.Join(dayDir, hour.Name())
			files, err := os.ReadDir(hourDir)
			if err != nil {
				return errors.Errorf("reading %s: %w", hourDir, err)
			}
			for _, file := range files {
				if file.IsDir() || !fileRe.MatchString(file.Name()) {
					continue
				}
				entry := Entry{
					Station: station,
					Day:     day.Name(),
					Hour:    hour.Name(),
					Path:    filepath.Join(hourDir, file.Name()),
				}
				if err := fn(entry); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
