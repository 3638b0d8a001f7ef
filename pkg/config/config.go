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

package config

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultStationPattern selects the station directories this tool was built
// for; override it per run when copying another network's tree.
const DefaultStationPattern = "DataTramSonTayQN*"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents a complete copy run
type Config struct {
	SourceRoot     string `json:"source_root" yaml:"source_root" hcl:"source_root,optional"`
	DestRoot       string `json:"dest_root" yaml:"dest_root" hcl:"dest_root,optional"`
	MappingXLSX    string `json:"mapping_xlsx" yaml:"mapping_xlsx" hcl:"mapping_xlsx,optional"`
	StationPattern string `json:"station_pattern,omitempty" yaml:"station_pattern,omitempty" hcl:"station_pattern,optional"`
	DryRun         bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	SkipExisting   bool   `json:"skip_existing,omitempty" yaml:"skip_existing,omitempty" hcl:"skip_existing,optional"`
}

// 🏭 Default returns the built-in configuration. The paths mirror the drive
// layout the tool is deployed on, so they differ between Windows and the
// WSL side.
func Default() *Config {
	cfg := &Config{
		StationPattern: DefaultStationPattern,
	}
	if runtime.GOOS == "windows" {
		cfg.SourceRoot = `L:\KonTum_2021_2025`
		cfg.DestRoot = `\\wsl.localhost\Ubuntu-22.04\home\dc\cpi\wintomseed\TKT`
		cfg.MappingXLSX = `\\wsl.localhost\Ubuntu-22.04\home\dc\cpi\wintomseed\rename.xlsx`
	} else {
		cfg.SourceRoot = "/mnt/l/KonTum_2021_2025"
		cfg.DestRoot = "/home/dc/cpi/wintomseed/TKT"
		cfg.MappingXLSX = "/home/dc/cpi/wintomseed/rename.xlsx"
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.SourceRoot == "" {
		return errors.Errorf("source_root is required")
	}
	if cfg.DestRoot == "" {
		return errors.Errorf("dest_root is required")
	}
	if cfg.MappingXLSX == "" {
		return errors.Errorf("mapping_xlsx is required")
	}

	// Set defaults
	if cfg.StationPattern == "" {
		cfg.StationPattern = DefaultStationPattern
	}
	if !doublestar.ValidatePattern(cfg.StationPattern) {
		return errors.Errorf("invalid station_pattern: %q", cfg.StationPattern)
	}

	return nil
}

// 🔍 EnsurePaths checks that the inputs the run depends on actually exist.
// These are the fatal configuration errors: nothing has been copied yet
// when they fire.
func (cfg *Config) EnsurePaths() error {
	if _, err := os.Stat(cfg.SourceRoot); err != nil {
		return errors.Errorf("source root not found: %s", cfg.SourceRoot)
	}
	if _, err := os.Stat(cfg.MappingXLSX); err != nil {
		return errors.Errorf("mapping file not found: %s", cfg.MappingXLSX)
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%s) -> %s [mapping %s]",
		cfg.SourceRoot, cfg.StationPattern, cfg.DestRoot, cfg.MappingXLSX)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	cfg := Default()
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
