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

// Package mapping loads the station rename table from an Excel workbook and
// resolves station directory names against it.
package mapping

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// 📦 Entry is one row of the rename table: a source pattern (usually ending
// in "*") and the destination folder name it maps to.
type Entry struct {
	Pattern string // Source station pattern, e.g. "DataTramSonTayQNAlpha*"
	Dest    string // Destination folder name, e.g. "SiteA"
}

// 🗺️ Mapping is the loaded rename table. Entries keep the order of their
// first appearance in the sheet; a duplicate pattern updates the destination
// in place without moving the entry. Match depends on that ordering for its
// tie-break, so Mapping is not a plain map.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// 🏭 New creates an empty mapping
func New() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// 📝 Put adds or updates an entry. Later duplicates overwrite the stored
// destination but keep the original position.
func (m *Mapping) Put(pattern, dest string) {
	if i, ok := m.index[pattern]; ok {
		m.entries[i].Dest = dest
		return
	}
	m.index[pattern] = len(m.entries)
	m.entries = append(m.entries, Entry{Pattern: pattern, Dest: dest})
}

// 📋 Entries returns the entries in first-appearance order
func (m *Mapping) Entries() []Entry {
	return m.entries
}

// 🔢 Len returns the number of entries
func (m *Mapping) Len() int {
	return len(m.entries)
}

// 🎯 Match resolves a station directory name to its destination folder name.
// Each pattern is reduced to a prefix by stripping trailing "*"; among the
// prefixes of name, the strictly longest wins. On equal lengths the
// earliest-inserted entry is kept (comparison is >, not >=). The second
// return is false when no prefix matches.
func (m *Mapping) Match(name string) (string, bool) {
	best := ""
	bestLen := -1
	found := false
	for _, e := range m.entries {
		prefix := strings.TrimRight(e.Pattern, "*")
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(name, prefix) && len(prefix) > bestLen {
			best = e.Dest
			bestLen = len(prefix)
			found = true
		}
	}
	return best, found
}

// 🎯 Load reads the rename table from the first (active) sheet of an Excel
// workbook. Column A holds the source pattern, column B the destination
// folder name; both are trimmed, rows with either cell empty are skipped,
// and any further columns are ignored.
func Load(ctx context.Context, path string) (*Mapping, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rename mapping")

	xlsx, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Errorf("opening mapping workbook: %w", err)
	}
	defer xlsx.Close()

	sheetName := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	rows, err := xlsx.GetRows(sheetName)
	if err != nil {
		return nil, errors.Errorf("reading sheet %q: %w", sheetName, err)
	}

	m := New()
	for _, row := range rows {
		var pattern, dest string
		if len(row) > 0 {
			pattern = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			dest = strings.TrimSpace(row[1])
		}
		if pattern == "" || dest == "" {
			continue
		}
		m.Put(pattern, dest)
	}

	logger.Debug().Int("entries", m.Len()).Msg("mapping loaded")
	return m, nil
}
