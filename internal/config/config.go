// Package config resolves the settings of an ncrit run from the environment
// and an optional HCL run file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/katalvlaran/ncrit/internal/logger"
)

var (
	// ErrInvalidRunFile is returned when a run file cannot be parsed or decoded.
	ErrInvalidRunFile = errors.New("config: invalid run file")
	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Default values.
const (
	DefaultAbundances = "abundance_colliders.csv"
	DefaultFormat     = "csv"
)

// Config is the resolved configuration of one run.
type Config struct {
	DataDir    string
	Abundances string // relative paths resolve against DataDir
	Species    []string
	Levels     []int
	Kinds      []string
	Workers    int
	Debug      bool
	Output     Output
}

// Output selects where curves go. An empty Path means stdout.
type Output struct {
	Format string
	Path   string
}

// FromEnv builds a Config from NCRIT_* variables and defaults.
func FromEnv() Config {
	return Config{
		DataDir:    GetEnvString(EnvDataDir, "."),
		Abundances: GetEnvString(EnvAbundances, DefaultAbundances),
		Debug:      GetEnvBool(EnvDebug, false),
		Workers:    GetEnvInt(EnvWorkers, 0),
		Output:     Output{Format: DefaultFormat},
	}
}

// RunFile mirrors the HCL run file:
//
//	data_dir   = "data"
//	abundances = "abundance_colliders.csv"
//	species    = ["co", "13co"]
//	levels     = [2, 3]
//	kinds      = ["dense"]
//	workers    = 4
//
//	output {
//	  format = "json"
//	  path   = "out/ncrit.json"
//	}
type RunFile struct {
	DataDir    string      `hcl:"data_dir,optional"`
	Abundances string      `hcl:"abundances,optional"`
	Species    []string    `hcl:"species,optional"`
	Levels     []int       `hcl:"levels,optional"`
	Kinds      []string    `hcl:"kinds,optional"`
	Workers    int         `hcl:"workers,optional"`
	Output     *OutputFile `hcl:"output,block"`
}

// OutputFile is the output block of a run file.
type OutputFile struct {
	Format string `hcl:"format,optional"`
	Path   string `hcl:"path,optional"`
}

// DecodeRunFile parses and decodes the HCL run file at path.
func DecodeRunFile(path string) (*RunFile, error) {
	logger.Debug("Decoding run file", "path", path)
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRunFile, path, diags)
	}

	var rf RunFile
	diags = gohcl.DecodeBody(file.Body, nil, &rf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRunFile, path, diags)
	}
	return &rf, nil
}

// Apply overlays the values set in rf onto c and returns the result.
// Relative data_dir and output paths resolve against base, the run file's
// directory; abundances stays relative to the data directory.
func (c Config) Apply(rf *RunFile, base string) Config {
	if rf == nil {
		return c
	}
	if rf.DataDir != "" {
		c.DataDir = resolve(base, rf.DataDir)
	}
	if rf.Abundances != "" {
		c.Abundances = rf.Abundances
	}
	if len(rf.Species) > 0 {
		c.Species = rf.Species
	}
	if len(rf.Levels) > 0 {
		c.Levels = rf.Levels
	}
	if len(rf.Kinds) > 0 {
		c.Kinds = rf.Kinds
	}
	if rf.Workers != 0 {
		c.Workers = rf.Workers
	}
	if rf.Output != nil {
		if rf.Output.Format != "" {
			c.Output.Format = rf.Output.Format
		}
		if rf.Output.Path != "" {
			c.Output.Path = resolve(base, rf.Output.Path)
		}
	}
	return c
}

// AbundancesPath returns the abundance file, resolved against DataDir.
func (c Config) AbundancesPath() string {
	return resolve(c.DataDir, c.Abundances)
}

// Validate checks the fields needed before any file is read.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data directory not set", ErrInvalid)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("%w: no species given", ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalid, c.Workers)
	}
	for _, l := range c.Levels {
		if l < 1 {
			return fmt.Errorf("%w: level %d < 1", ErrInvalid, l)
		}
	}
	switch c.Output.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalid, c.Output.Format)
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
