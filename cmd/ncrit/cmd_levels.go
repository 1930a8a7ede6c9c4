package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ncrit/collision"
	"github.com/katalvlaran/ncrit/critical"
)

func newLevelsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels [species...]",
		Short: "List upper levels with their radiative and collision data",
		Long: `List every upper level of the line file in file order, with the
number of radiative transitions, the summed Einstein A and the collision
partners that have rates for it.

Examples:
  ncrit levels co 12c16o`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, g, args)
			if err != nil {
				return err
			}
			return runLevels(cmd, s)
		},
	}
	return cmd
}

func runLevels(cmd *cobra.Command, s *session) error {
	if len(s.cfg.Species) == 0 {
		return errNoSpecies
	}
	in, err := s.loadSpecies()
	if err != nil {
		return err
	}

	partners := partnersByLevel(in.collisions)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tTRANSITIONS\tA_SUM(s-1)\tPARTNERS")
	for _, lvl := range in.lines.UpperLevels() {
		sum, err := critical.SumRadiativeRate(in.lines, lvl)
		if err != nil {
			return err
		}
		n := 0
		for _, tr := range in.lines.Transitions {
			if tr.Upper == lvl {
				n++
			}
		}
		p := strings.Join(partners[lvl], ",")
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(tw, "%d\t%d\t%.4g\t%s\n", lvl, n, sum, p)
	}
	return tw.Flush()
}

// partnersByLevel lists the sorted partners with rates for each upper level.
func partnersByLevel(c *collision.Table) map[int][]string {
	seen := make(map[int]map[string]bool)
	for _, k := range c.Keys() {
		if seen[k.Upper] == nil {
			seen[k.Upper] = make(map[string]bool)
		}
		seen[k.Upper][k.Partner] = true
	}
	out := make(map[int][]string, len(seen))
	for _, p := range c.Partners() {
		for lvl, set := range seen {
			if set[p] {
				out[lvl] = append(out[lvl], p)
			}
		}
	}
	return out
}
