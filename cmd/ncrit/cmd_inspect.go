package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/critical"
)

func newInspectCmd(g *globalFlags) *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:   "inspect [species...] --level N",
		Short: "Show the quantum numbers, transitions and collision rates of one level",
		Long: `Show what the tables hold for one upper level: its upper-state quantum
numbers, the radiative transitions leaving it and its collision rates on the
normalized temperature grid.

Examples:
  ncrit inspect co --level 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, g, args)
			if err != nil {
				return err
			}
			return runInspect(cmd, s, level)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 0, "upper level to inspect")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func runInspect(cmd *cobra.Command, s *session, level int) error {
	if len(s.cfg.Species) == 0 {
		return errNoSpecies
	}
	in, err := s.loadSpecies()
	if err != nil {
		return err
	}
	sum, err := critical.SumRadiativeRate(in.lines, level)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "level %d (%s)\n", level, in.lines.Source)

	qn := in.lines.LevelQuantumNumbers(level)
	names := make([]string, 0, len(qn))
	for name := range qn {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %s\n", name, qn[name])
	}

	fmt.Fprintf(out, "\nradiative transitions (A_sum = %.4g s-1)\n", sum)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  UPPER\tLOWER\t%s\n", in.lines.Einstein)
	for _, tr := range in.lines.Transitions {
		if tr.Upper == level {
			fmt.Fprintf(tw, "  %d\t%d\t%.4g\n", tr.Upper, tr.Lower, tr.EinsteinA)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\ncollision rates (cm3 s-1)")
	return writeRates(out, in.collisions, level)
}

func writeRates(out io.Writer, c *collision.Table, level int) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "  PARTNER\tLOWER")
	for _, t := range c.Temperatures() {
		fmt.Fprintf(tw, "\tT=%g", t)
	}
	fmt.Fprintln(tw)
	for i := 0; i < c.Len(); i++ {
		k, row, err := c.Row(i)
		if err != nil {
			return err
		}
		if k.Upper != level {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%d", k.Partner, k.Lower)
		for _, v := range row {
			fmt.Fprintf(tw, "\t%.3g", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
