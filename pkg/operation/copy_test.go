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

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dcgeo/seiscopy/pkg/config"
	"github.com/dcgeo/seiscopy/pkg/mapping"
	"github.com/dcgeo/seiscopy/pkg/operation"
	"github.com/dcgeo/seiscopy/pkg/status"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 createTestEnv creates a source tree, a destination root, and a config
// pointing at them
func createTestEnv(t *testing.T) (context.Context, *config.Config, *status.UserLogger) {
	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.SourceRoot = filepath.Join(tmpDir, "src")
	cfg.DestRoot = filepath.Join(tmpDir, "dst")
	require.NoError(t, os.MkdirAll(cfg.SourceRoot, 0755))

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	return ctx, cfg, status.NewUserLogger(ctx)
}

// 🧪 writeSourceFile lays out one data file under the four-level hierarchy
func writeSourceFile(t *testing.T, root, station, day, hour, name, content string) string {
	t.Helper()
	path := filepath.Join(root, station, "SHORT", day, hour, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newMapping(pairs ...string) *mapping.Mapping {
	m := mapping.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Put(pairs[i], pairs[i+1])
	}
	return m
}

// 🧪 TestCopyOperation tests the end-to-end copy scenario
func TestCopyOperation(t *testing.T) {
	ctx, cfg, userLogger := createTestEnv(t)

	src := writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha", "210101", "21010112", "21010112.00", "waveform")
	mtime := time.Date(2021, 1, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	op, err := operation.NewCopyOperation(operation.Options{
		Config:     cfg,
		Mapping:    newMapping("DataTramSonTayQNAlpha*", "SiteA"),
		UserLogger: userLogger,
	})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, 1, op.Copied())

	dest := filepath.Join(cfg.DestRoot, "SiteA", "210101", "21010112", "21010112.00")
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "waveform", string(content))

	// Metadata is preserved.
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "expected mtime %s, got %s", mtime, info.ModTime())
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

// 🧪 TestCopyOperationUnmapped tests that unroutable stations are skipped
// without aborting the run
func TestCopyOperationUnmapped(t *testing.T) {
	ctx, cfg, userLogger := createTestEnv(t)

	writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha", "210101", "21010112", "21010112.00", "waveform")

	op, err := operation.NewCopyOperation(operation.Options{
		Config:     cfg,
		Mapping:    newMapping("DataTramKonTum*", "KT"),
		UserLogger: userLogger,
	})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, 0, op.Copied())
	_, statErr := os.Stat(cfg.DestRoot)
	assert.True(t, os.IsNotExist(statErr), "destination root should not have been created")
}

// 🧪 TestCopyOperationDryRun tests that a dry run never touches the
// file system
func TestCopyOperationDryRun(t *testing.T) {
	ctx, cfg, userLogger := createTestEnv(t)
	cfg.DryRun = true

	writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha", "210101", "21010112", "21010112.00", "waveform")
	writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha", "210102", "21010206", "21010206.01", "waveform")

	op, err := operation.NewCopyOperation(operation.Options{
		Config:     cfg,
		Mapping:    newMapping("DataTramSonTayQNAlpha*", "SiteA"),
		UserLogger: userLogger,
	})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, 0, op.Copied())
	_, statErr := os.Stat(cfg.DestRoot)
	assert.True(t, os.IsNotExist(statErr), "dry run must not create directories")
}

// 🧪 TestCopyOperationSkipExisting tests that existing destination files are
// left untouched and not counted
func TestCopyOperationSkipExisting(t *testing.T) {
	ctx, cfg, userLogger := createTestEnv(t)
	cfg.SkipExisting = true

	writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha", "210101", "21010112", "21010112.00", "new data")
	writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha", "210101", "21010112", "21010112.01", "new data")

	// Pre-create one destination file with different content.
	existing := filepath.Join(cfg.DestRoot, "SiteA", "210101", "21010112", "21010112.00")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755))
	require.NoError(t, os.WriteFile(existing, []byte("old data"), 0644))

	op, err := operation.NewCopyOperation(operation.Options{
		Config:     cfg,
		Mapping:    newMapping("DataTramSonTayQNAlpha*", "SiteA"),
		UserLogger: userLogger,
	})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	// Only the second file is copied.
	assert.Equal(t, 1, op.Copied())

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old data", string(content))

	content, err = os.ReadFile(filepath.Join(cfg.DestRoot, "SiteA", "210101", "21010112", "21010112.01"))
	require.NoError(t, err)
	assert.Equal(t, "new data", string(content))
}

// 🧪 TestCopyOperationLongestPrefix tests routing with overlapping patterns
func TestCopyOperationLongestPrefix(t *testing.T) {
	ctx, cfg, userLogger := createTestEnv(t)

	writeSourceFile(t, cfg.SourceRoot, "DataTramSonTayQNAlpha01", "210101", "21010112", "21010112.00", "waveform")

	op, err := operation.NewCopyOperation(operation.Options{
		Config:     cfg,
		Mapping:    newMapping("DataTramSonTayQN*", "Generic", "DataTramSonTayQNAlpha*", "SiteA"),
		UserLogger: userLogger,
	})
	require.NoError(t, err)
	require.NoError(t, op.Execute(ctx))

	assert.Equal(t, 1, op.Copied())
	assert.FileExists(t, filepath.Join(cfg.DestRoot, "SiteA", "210101", "21010112", "21010112.00"))
	assert.NoFileExists(t, filepath.Join(cfg.DestRoot, "Generic", "210101", "21010112", "21010112.00"))
}

// 🧪 TestNewCopyOperationValidation tests dependency validation
func TestNewCopyOperationValidation(t *testing.T) {
	_, cfg, userLogger := createTestEnv(t)

	tests := []struct {
		name    string
		opts    operation.Options
		wantErr string
	}{
		{
			name:    "missing_config",
			opts:    operation.Options{Mapping: mapping.New(), UserLogger: userLogger},
			wantErr: "config is required",
		},
		{
			name:    "missing_mapping",
			opts:    operation.Options{Config: cfg, UserLogger: userLogger},
			wantErr: "mapping is required",
		},
		{
			name:    "missing_user_logger",
			opts:    operation.Options{Config: cfg, Mapping: mapping.New()},
			wantErr: "user logger is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := operation.NewCopyOperation(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
