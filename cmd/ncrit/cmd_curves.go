package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncrit/critical"
	"github.com/katalvlaran/ncrit/export"
	"github.com/katalvlaran/ncrit/internal/logger"
)

func newCurvesCmd(g *globalFlags) *cobra.Command {
	var (
		levels     []int
		kinds      []string
		workers    int
		format     string
		output     string
		abundances string
	)

	cmd := &cobra.Command{
		Use:   "curves [species...]",
		Short: "Compute critical-density curves",
		Long: `Compute the critical density of upper levels against temperature.

Every species argument is a name under which the molecule's files may appear
(line_<name>.dat, *<name>.dat); all of them refer to the same molecule.

Examples:
  ncrit curves co 12c16o                      # every level, every kind, CSV
  ncrit curves co --levels 2,3 --kinds dense
  ncrit curves -c run.hcl --format json -o out.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, g, args)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("levels") {
				s.cfg.Levels = levels
			}
			if f.Changed("kinds") {
				s.cfg.Kinds = kinds
			}
			if f.Changed("workers") {
				s.cfg.Workers = workers
			}
			if f.Changed("format") {
				s.cfg.Output.Format = format
			}
			if f.Changed("output") {
				s.cfg.Output.Path = output
			}
			if f.Changed("abundances") {
				s.cfg.Abundances = abundances
			}
			return runCurves(cmd, s)
		},
	}

	cmd.Flags().IntSliceVarP(&levels, "levels", "l", nil, "upper levels (default: every level in the line file)")
	cmd.Flags().StringSliceVarP(&kinds, "kinds", "k", nil, "medium kinds (default: every kind in the abundance table)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent curves (default: GOMAXPROCS)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&abundances, "abundances", "a", "", "abundance table, relative to the data directory")

	return cmd
}

func runCurves(cmd *cobra.Command, s *session) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	in, err := s.loadSpecies()
	if err != nil {
		return err
	}
	ab, err := s.loadAbundances()
	if err != nil {
		return err
	}

	curves, err := critical.Curves(cmd.Context(), critical.Request{
		Lines:      in.lines,
		Collisions: in.collisions,
		Abundances: ab,
		Levels:     s.cfg.Levels,
		Kinds:      s.cfg.Kinds,
		Workers:    s.cfg.Workers,
	})
	if err != nil {
		return err
	}
	logger.Info("computed curves", "species", s.cfg.Species, "curves", len(curves),
		"temperatures", len(in.collisions.Temperatures()))

	if s.cfg.Output.Path == "" {
		return export.Write(cmd.OutOrStdout(), s.cfg.Output.Format, s.runID, curves)
	}
	if err := writeFile(s.cfg.Output.Path, func(w io.Writer) error {
		return export.Write(w, s.cfg.Output.Format, s.runID, curves)
	}); err != nil {
		return err
	}
	logger.Info("wrote curves", "path", s.cfg.Output.Path, "format", s.cfg.Output.Format)
	return nil
}

// writeFile creates path (and its directory) and hands it to write.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}
