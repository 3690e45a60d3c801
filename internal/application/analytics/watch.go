package analytics

import (
	"context"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/watcher"
	"github.com/penwyp/go-pos/internal/presentation/interaction"
	"github.com/penwyp/go-pos/internal/util"
)

// RenderFunc displays a freshly built report.
type RenderFunc func(Report) error

// Watch renders the report for view, then rebuilds it whenever the order
// logs change or a key asks for another view or a refresh. It returns when
// ctx is done, a quit key arrives or render fails. Either channel may be nil.
func (s *Service) Watch(ctx context.Context, view model.Granularity, changes <-chan watcher.Event, keys <-chan interaction.KeyEvent, render RenderFunc) error {
	refresh := func() error {
		report, err := s.Build(view)
		if err != nil {
			util.LogError("rebuild report failed", util.F("error", err.Error()))
			return nil
		}
		return render(report)
	}

	if err := refresh(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			util.LogDebug("order log changed", util.F("path", ev.Path), util.F("op", ev.Operation))
			drain(changes)
			if err := refresh(); err != nil {
				return err
			}

		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			switch interaction.ActionFor(key) {
			case interaction.ActionQuit:
				return nil
			case interaction.ActionDaily:
				view = model.Daily
			case interaction.ActionWeekly:
				view = model.Weekly
			case interaction.ActionMonthly:
				view = model.Monthly
			case interaction.ActionRefresh:
			default:
				continue
			}
			if err := refresh(); err != nil {
				return err
			}
		}
	}
}

// drain discards queued change events so one burst of writes causes one
// rebuild.
func drain(changes <-chan watcher.Event) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
