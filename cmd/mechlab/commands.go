package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/challenge"
	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/physics"
	"github.com/san-kum/mechlab/internal/scenario"
)

// newScenarioCmd builds a one-shot readout command with one flag per
// scenario parameter.
func newScenarioCmd(name string) *cobra.Command {
	proto, err := scenario.NewRegistry(nil).Get(name)
	if err != nil {
		panic(err)
	}

	var (
		preset string
		at     float64
	)
	cmd := &cobra.Command{
		Use:   name,
		Short: "print the " + proto.Title() + " readout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildScenario(cmd, name, preset)
			if err != nil {
				return err
			}
			if clk := s.Clock(); clk != nil {
				clk.Seek(at)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", s.Title())
			if err := printReadout(out, s); err != nil {
				return err
			}
			if q, ok := s.(scenario.Quiz); ok {
				fmt.Fprintln(out)
				return printExpected(out, q)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	if proto.Clock() != nil {
		cmd.Flags().Float64Var(&at, "at", 0, "simulation time to read out (s)")
	}
	for _, p := range proto.Params() {
		def, _ := proto.Get(p.Name)
		cmd.Flags().Float64(p.Name, def, fmt.Sprintf("%s [%s]", p.Label, p.Unit))
	}
	return cmd
}

// buildScenario creates the named scenario from config, then applies the
// preset and finally any parameter flags the user set.
func buildScenario(cmd *cobra.Command, name, preset string) (scenario.Scenario, error) {
	s, err := scenario.NewRegistry(cfg).Get(name)
	if err != nil {
		return nil, err
	}

	params := make(map[string]float64)
	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %v)", preset, name, config.ListPresets(name))
		}
		params = p
	}
	for _, p := range s.Params() {
		if f := cmd.Flags().Lookup(p.Name); f != nil && f.Changed {
			v, err := cmd.Flags().GetFloat64(p.Name)
			if err != nil {
				return nil, err
			}
			params[p.Name] = v
		}
	}
	if err := scenario.Apply(s, params); err != nil {
		return nil, err
	}
	logger.Debug("scenario built", zap.String("scenario", name), zap.Any("params", params))
	return s, nil
}

func printReadout(out io.Writer, s scenario.Scenario) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tVALUE\tUNIT")
	for _, r := range s.Readout() {
		fmt.Fprintf(w, "%s\t%.3f\t%s\n", r.Label, r.Value, r.Unit)
	}
	return w.Flush()
}

func printExpected(out io.Writer, q scenario.Quiz) error {
	expected := q.Expected()
	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANSWER\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%.3f\n", k, expected[k])
	}
	return w.Flush()
}

func newCheckCmd() *cobra.Command {
	var tolerance float64
	cmd := &cobra.Command{
		Use:   "check <answer> <correct>",
		Short: "check an answer against the correct value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			correct, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("correct value %q: %w", args[1], err)
			}
			if err := physics.CheckFinite("correct", correct, tolerance); err != nil {
				return err
			}

			ok := answer.Check(args[0], correct, tolerance)
			collector.RecordAnswer("check", ok)
			verdict := answer.Incorrect
			if ok {
				verdict = answer.Correct
			}
			fmt.Fprintln(cmd.OutOrStdout(), verdict)
			return nil
		},
	}
	cmd.Flags().Float64Var(&tolerance, "tolerance", answer.DefaultTolerancePercent, "tolerance in percent")
	return cmd
}

func newChallengeCmd() *cobra.Command {
	var (
		seed   uint64
		reply  string
		reveal bool
	)
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "draw a random forces challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Challenge.Seed
			}
			var src challenge.Source
			if seed != 0 {
				src = challenge.NewSeeded(seed)
			}
			c := challenge.NewGenerator(src).Next()
			collector.RecordChallenge(c.Target.String())

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "id\t%s\n", c.ID)
			fmt.Fprintf(w, "mass\t%.0f kg\n", c.Mass)
			fmt.Fprintf(w, "force\t%.0f N\n", c.Force)
			fmt.Fprintf(w, "angle\t%.0f°\n", c.Angle)
			fmt.Fprintf(w, "μs\t%.2f\n", c.MuStatic)
			fmt.Fprintf(w, "μk\t%.2f\n", c.MuKinetic)
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, c.Prompt())

			if reply != "" {
				fb, ok := c.Check(reply)
				if !ok {
					return fmt.Errorf("answer %q is not a number", reply)
				}
				collector.RecordAnswer("challenge", fb.Correct)
				logger.Info("challenge answered", zap.String("id", c.ID), zap.Bool("correct", fb.Correct))
				fmt.Fprintln(out, fb.Message)
			} else if reveal {
				fmt.Fprintf(out, "answer: %.2f\n", c.Value)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&reply, "answer", "", "grade this answer")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the expected answer")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets <scenario>",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for scenario: %s\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "presets for %s:\n", args[0])
			for _, name := range presets {
				values := config.GetPreset(args[0], name)
				keys := make([]string, 0, len(values))
				for k := range values {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Fprintf(w, "  %s\t", name)
				for _, k := range keys {
					fmt.Fprintf(w, "%s=%s ", k, strconv.FormatFloat(values[k], 'f', -1, 64))
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "write the default configuration to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
