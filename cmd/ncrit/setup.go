package main

import (
	"errors"
	"fmt"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncrit/abundance"
	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/internal/config"
	"github.com/katalvlaran/ncrit/internal/logger"
	"github.com/katalvlaran/ncrit/internal/logger/console"
	"github.com/katalvlaran/ncrit/interp"
	"github.com/katalvlaran/ncrit/lines"
	"github.com/katalvlaran/ncrit/source"
)

var errNoSpecies = errors.New("no species given")

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	runFile string
	dataDir string
	envFile string
	debug   bool
}

// session is the resolved state of one command invocation.
type session struct {
	cfg   config.Config
	runID string
}

// start resolves configuration (env, then run file, then flags), installs
// the console logger and assigns a run ID. species from positional args
// replace the configured list when non-empty.
func start(cmd *cobra.Command, g *globalFlags, species []string) (*session, error) {
	var envErr error
	if g.envFile != "" {
		envErr = config.LoadEnv(g.envFile)
	} else {
		envErr = config.LoadEnv()
	}
	cfg := config.FromEnv()

	if g.runFile != "" {
		rf, err := config.DecodeRunFile(g.runFile)
		if err != nil {
			return nil, err
		}
		cfg = cfg.Apply(rf, filepath.Dir(g.runFile))
	}

	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = g.dataDir
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = g.debug
	}
	if len(species) > 0 {
		cfg.Species = species
	}

	runID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Prefix: "ncrit",
		Out:    cmd.ErrOrStderr(),
	}).With("run", runID))
	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables", "err", envErr)
	}

	return &session{cfg: cfg, runID: runID}, nil
}

// inputs are the loaded tables of one species.
type inputs struct {
	lines      *lines.Table
	collisions *collision.Table // normalized
	report     *interp.Report
}

// loadSpecies reads the line and collision tables of the configured species
// and normalizes the collision grid.
func (s *session) loadSpecies() (*inputs, error) {
	dir, err := source.NewDir(s.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	lt, err := lines.Load(dir, s.cfg.Species...)
	if err != nil {
		return nil, err
	}
	raw, err := collision.Load(dir, s.cfg.Species...)
	if err != nil {
		return nil, err
	}
	ct, rep, err := interp.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if !rep.Complete() {
		logger.Warn("temperatures dropped for incomplete collider data",
			"dropped", len(rep.Dropped), "kept", len(ct.Temperatures()))
	}
	return &inputs{lines: lt, collisions: ct, report: rep}, nil
}

func (s *session) loadAbundances() (*abundance.Table, error) {
	path := s.cfg.AbundancesPath()
	a, err := abundance.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded abundances", "path", path, "partners", a.Partners(), "kinds", a.Kinds())
	return a, nil
}
