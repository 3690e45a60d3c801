package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/penwyp/go-pos/internal/application/analytics"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/watcher"
	"github.com/penwyp/go-pos/internal/presentation/chart"
	"github.com/penwyp/go-pos/internal/presentation/display"
	"github.com/penwyp/go-pos/internal/presentation/formatter"
	"github.com/penwyp/go-pos/internal/presentation/interaction"
	"github.com/penwyp/go-pos/internal/presentation/layout"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/spf13/cobra"
)

type analyticsFlags struct {
	view      string
	output    string
	chartPath string
	watch     bool
}

func newAnalyticsCmd(a *app) *cobra.Command {
	f := &analyticsFlags{}
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Sales analytics: top items, per-period totals and top customers (admin)",
		Long: `Reads the order logs and prints the best-selling items, sales per period and
customer, and the customer ranking. With --chart the per-customer line chart
is also written as PNG. With --watch the report is redrawn whenever an order
is placed; press d, w or m to switch views, r to refresh and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalytics(cmd, a, f)
		},
	}
	cmd.Flags().StringVar(&f.view, "view", "", "Period view (daily, weekly, monthly); defaults to the configured view")
	cmd.Flags().StringVarP(&f.output, "output", "o", formatter.OutputTable, "Output format (table, csv, json, summary)")
	cmd.Flags().StringVar(&f.chartPath, "chart", "", "Write the chart as PNG to this path")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Redraw on every order and accept view keys")
	cmd.Flags().Int("top-items", 0, "Number of best-selling items to show")
	cmd.Flags().Int("top-customers", 0, "Number of top customers to show and chart")
	cmd.Flags().Int("chart-width", 0, "Chart width in pixels")
	cmd.Flags().Int("chart-height", 0, "Chart height in pixels")
	return cmd
}

func runAnalytics(cmd *cobra.Command, a *app, f *analyticsFlags) error {
	if _, err := a.login(model.RoleAdmin); err != nil {
		return err
	}

	view := a.cfg.DefaultView()
	if f.view != "" {
		v, err := model.ParseGranularity(f.view)
		if err != nil {
			return err
		}
		view = v
	}

	out := cmd.OutOrStdout()
	fmtr, err := formatter.New(f.output, out, a.cfg.Currency)
	if err != nil {
		return err
	}
	renderer := chart.NewRenderer(chart.Options{
		Width:          a.cfg.Chart.Width,
		Height:         a.cfg.Chart.Height,
		CurrencyPrefix: a.cfg.Currency,
	})

	render := func(r analytics.Report) error {
		if err := fmtr.Format(r); err != nil {
			return err
		}
		if f.chartPath != "" {
			return renderer.SavePNG(util.ExpandPath(f.chartPath), r.Chart)
		}
		return nil
	}

	if !f.watch {
		report, err := a.analytics.Build(view)
		if err != nil {
			return err
		}
		return render(report)
	}
	return watchAnalytics(cmd.Context(), a, view, out, render)
}

func watchAnalytics(ctx context.Context, a *app, view model.Granularity, out io.Writer, render analytics.RenderFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fw, err := watcher.NewOrderLogWatcher(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("watch order logs: %w", err)
	}
	defer fw.Close()

	var keys <-chan interaction.KeyEvent
	if kr, err := interaction.NewKeyboardReader(); err != nil {
		util.LogWarn("keyboard input unavailable", util.F("error", err.Error()))
	} else {
		defer kr.Close()
		keys = kr.Events()
	}

	screen := display.NewScreen(out, true)
	screen.Enter()
	defer screen.Exit()

	var sizer layout.Sizer
	return a.analytics.Watch(ctx, view, fw.Events(), keys, func(r analytics.Report) error {
		screen.Frame()
		if err := render(r); err != nil {
			return err
		}
		screen.Footer(sizer.TerminalWidth(), fmt.Sprintf("[d]aily [w]eekly [m]onthly [r]efresh [q]uit   %s view, updated %s",
			r.View, a.clock.Format(r.GeneratedAt, "15:04:05")))
		return nil
	})
}
