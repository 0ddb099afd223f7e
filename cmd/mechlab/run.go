package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/integrators"
	"github.com/san-kum/mechlab/internal/metrics"
	"github.com/san-kum/mechlab/internal/scenario"
	"github.com/san-kum/mechlab/internal/verify"
)

// probe samples a scenario after each tick for metrics and the plot.
type probe struct {
	series  string
	caption string
	sample  func(t float64) metrics.Sample
	metrics metrics.Set
}

func newProbe(s scenario.Scenario, maxTime float64) (*probe, error) {
	switch sc := s.(type) {
	case *scenario.Projectile:
		return &probe{
			series:  "y",
			caption: "height y (m)",
			sample: func(t float64) metrics.Sample {
				p := sc.At(t)
				return metrics.Sample{"x": p.X, "y": p.Y, "vy": p.VY}
			},
			metrics: metrics.Set{
				metrics.NewPeak("y"),
				metrics.NewPeak("x"),
				metrics.NewBounded("y", 0, math.Inf(1)),
			},
		}, nil
	case *scenario.Forces:
		if sc.Holding() {
			return nil, errors.New("forces: the block does not move with these parameters")
		}
		if !(maxTime > 0) {
			return nil, errors.New("forces never finishes on its own; set --max-time")
		}
		return &probe{
			series:  "v",
			caption: "block speed v (m/s)",
			sample: func(t float64) metrics.Sample {
				return metrics.Sample{"v": sc.Result().Acceleration * t, "x": sc.Displacement(t)}
			},
			metrics: metrics.Set{
				metrics.NewPeak("v"),
				metrics.NewPeak("x"),
			},
		}, nil
	case *scenario.Energy:
		return &probe{
			series:  "ke",
			caption: "kinetic energy (J)",
			sample: func(float64) metrics.Sample {
				ff, e := sc.State()
				return metrics.Sample{"h": ff.Height, "ke": e.KE, "pe": e.PE, "total": e.Total}
			},
			metrics: metrics.Set{
				metrics.NewEnergyDrift("total"),
				metrics.NewPeak("ke"),
				metrics.NewBounded("h", 0, sc.Height),
			},
		}, nil
	}
	return nil, fmt.Errorf("%s has no clock to run; use `mechlab %s`", s.Name(), s.Name())
}

func newRunCmd() *cobra.Command {
	var (
		preset  string
		fps     int
		step    time.Duration
		wall    bool
		maxTime float64
		noGraph bool
	)
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "play a scenario headless and plot the run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildScenario(cmd, args[0], preset)
			if err != nil {
				return err
			}
			pr, err := newProbe(s, maxTime)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fps") {
				fps = cfg.Display.FPS
			}
			if fps < 1 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			interval := time.Second / time.Duration(fps)

			var src clock.Source = clock.WallSource{}
			if !wall {
				if step <= 0 {
					step = interval
				}
				src = clock.NewManualSource(time.Now(), step)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			clk := s.Clock()
			loop := clock.NewLoop(clk, interval, src)
			loop.AddObserver(collector.TickObserver(s.Name()))

			var series []float64
			loop.AddObserver(clock.ObserverFunc(func(elapsed float64, _ clock.Status) {
				sample := pr.sample(elapsed)
				pr.metrics.Observe(elapsed, sample)
				series = append(series, sample[pr.series])
				if maxTime > 0 && elapsed >= maxTime {
					cancel()
				}
			}))

			clk.Play()
			logger.Info("run started",
				zap.String("scenario", s.Name()),
				zap.Duration("interval", interval),
				zap.Bool("wall", wall))
			start := time.Now()

			err = loop.Run(ctx)
			switch {
			case err == nil:
				logger.Info("run finished", zap.Float64("elapsed", clk.Elapsed()), zap.Duration("wall", time.Since(start)))
			case errors.Is(err, context.Canceled):
				clk.Pause()
				logger.Info("run stopped", zap.Float64("elapsed", clk.Elapsed()))
			default:
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  (%s, t=%.2fs)\n\n", s.Title(), clk.Status(), clk.Elapsed())
			if err := printReadout(out, s); err != nil {
				return err
			}

			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "METRIC\tVALUE")
			for _, m := range pr.metrics {
				fmt.Fprintf(w, "%s\t%.6g\n", m.Name(), m.Value())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !noGraph && len(series) > 1 {
				graph := asciigraph.Plot(series,
					asciigraph.Height(10),
					asciigraph.Width(70),
					asciigraph.Caption(pr.caption),
				)
				fmt.Fprintf(out, "\n%s\n", graph)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	cmd.Flags().IntVar(&fps, "fps", 30, "ticks per second")
	cmd.Flags().DurationVar(&step, "step", 0, "simulated wall time per tick (default one frame)")
	cmd.Flags().BoolVar(&wall, "wall", false, "use the real clock instead of fixed steps")
	cmd.Flags().Float64Var(&maxTime, "max-time", 30, "stop after this much simulation time (0 runs until the scenario ends)")
	cmd.Flags().BoolVar(&noGraph, "no-graph", false, "skip the plot")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var c verify.Case
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the closed-form solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = integrators.Names()
			}

			start := time.Now()
			reports, err := verify.Compare(cmd.Context(), c, names)
			if err != nil {
				return err
			}
			logger.Debug("compare finished", zap.Strings("integrators", names), zap.Duration("took", time.Since(start)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "v0=%.1f m/s  angle=%.1f°  h0=%.1f m  dt=%.4f s\n\n", c.V0, c.Angle, c.Height, c.Dt)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CASE\tINTEGRATOR\tSTEPS\tMAX POS ERR\tMAX VEL ERR")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.3e\t%.3e\n", r.Case, r.Integrator, r.Steps, r.MaxPosError, r.MaxVelError)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64Var(&c.V0, "v0", 20, "launch speed (m/s)")
	cmd.Flags().Float64Var(&c.Angle, "angle", 45, "launch angle (°)")
	cmd.Flags().Float64Var(&c.Height, "height", 50, "drop height (m)")
	cmd.Flags().Float64Var(&c.Dt, "dt", 0.01, "integration step (s)")
	return cmd
}
