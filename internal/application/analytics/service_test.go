package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/data/orderlog"
	"github.com/penwyp/go-pos/internal/data/watcher"
	"github.com/penwyp/go-pos/internal/presentation/interaction"
	"github.com/penwyp/go-pos/internal/testing/fixtures"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcClock(t *testing.T) *util.TimeProvider {
	t.Helper()
	clock := &util.TimeProvider{}
	require.NoError(t, clock.SetTimezone("UTC"))
	clock.SetClock(func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) })
	return clock
}

func newScenarioService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, fixtures.NewOrderLogGenerator(dir).WeeklyScenario())
	clock := utcClock(t)
	return NewService(orderlog.New(dir, clock), Options{}, clock), dir
}

func TestBuild_Weekly(t *testing.T) {
	svc, _ := newScenarioService(t)

	report, err := svc.Build(model.Weekly)
	require.NoError(t, err)

	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "2024-W01", report.Buckets[0].Label)
	assert.Equal(t, "150", report.Buckets[0].GrandTotal.String())
	assert.Equal(t, "2024-W02", report.Buckets[1].Label)
	assert.Equal(t, "130", report.Buckets[0].Amount("alice").Add(report.Buckets[1].Amount("alice")).String())

	assert.Equal(t, []string{"alice", "bob"}, report.CustomerNames())
	assert.Equal(t, []model.TopItem{{Name: "Coke", Qty: 5}, {Name: "Burger", Qty: 2}, {Name: "Fries", Qty: 1}}, report.TopItems)
	assert.Equal(t, "180", report.GrandTotal.String())

	assert.Equal(t, "Weekly Sales per Customer", report.Chart.Title)
	require.Len(t, report.Chart.Series, 3)
	assert.Equal(t, constants.TotalSeriesName, report.Chart.Series[2].Name)
	assert.Equal(t, []float64{150, 30}, report.Chart.Series[2].Values)

	assert.Equal(t, orderlog.ScanStats{Rows: 3, Parsed: 3}, report.OrderStats)
	assert.Equal(t, orderlog.ScanStats{Rows: 3, Parsed: 3}, report.LineStats)
}

func TestBuild_MissingLogs(t *testing.T) {
	clock := utcClock(t)
	svc := NewService(orderlog.New(t.TempDir(), clock), Options{}, clock)

	report, err := svc.Build(model.Daily)
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.True(t, report.Chart.Empty())
	assert.True(t, report.GrandTotal.IsZero())
}

func TestBuild_RereadsEveryCall(t *testing.T) {
	svc, dir := newScenarioService(t)

	first, err := svc.Build(model.Monthly)
	require.NoError(t, err)
	require.Len(t, first.Buckets, 1)

	require.NoError(t, fixtures.NewOrderLogGenerator(dir).WriteOrders(fixtures.Order{
		Timestamp: "2024-02-03T12:00:00", Customer: "carol", Total: "20.00",
	}))

	second, err := svc.Build(model.Monthly)
	require.NoError(t, err)
	require.Len(t, second.Buckets, 2)
	assert.Equal(t, "2024-02", second.Buckets[1].Label)
}

func TestBuild_LimitsRankings(t *testing.T) {
	dir := t.TempDir()
	clock := utcClock(t)
	_, err := fixtures.NewOrderLogGenerator(dir).GenerateRandom(7, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 30, 200)
	require.NoError(t, err)

	svc := NewService(orderlog.New(dir, clock), Options{TopItems: 2, TopCustomers: 3}, clock)
	report, err := svc.Build(model.Daily)
	require.NoError(t, err)

	assert.Len(t, report.TopItems, 2)
	assert.Len(t, report.TopCustomers, 3)
	assert.Len(t, report.Chart.Series, 4, "three customers plus TOTAL")
	for i := 1; i < len(report.TopCustomers); i++ {
		assert.False(t, report.TopCustomers[i].Total.GreaterThan(report.TopCustomers[i-1].Total))
	}
}

func TestSummaryRows(t *testing.T) {
	svc, _ := newScenarioService(t)
	report, err := svc.Build(model.Weekly)
	require.NoError(t, err)

	assert.Equal(t, []string{"Period", "TOTAL", "alice", "bob"}, SummaryHeader(report))
	assert.Equal(t, [][]string{
		{"2024-W01", "150.00", "100.00", "50.00"},
		{"2024-W02", "30.00", "30.00", "0.00"},
	}, SummaryRows(report))
}

func TestSummaryHeader_CustomerNamedTotal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, fixtures.NewOrderLogGenerator(dir).WriteOrders(
		fixtures.Order{Timestamp: "2024-01-01T10:00:00", Customer: "TOTAL", Total: "80.00"},
		fixtures.Order{Timestamp: "2024-01-01T11:00:00", Customer: "bob", Total: "20.00"},
	))
	clock := utcClock(t)

	report, err := NewService(orderlog.New(dir, clock), Options{}, clock).Build(model.Daily)
	require.NoError(t, err)

	assert.Equal(t, []string{"Period", "TOTAL", "TOTAL (customer)", "bob"}, SummaryHeader(report))
	assert.Equal(t, [][]string{{"2024-01-01", "100.00", "80.00", "20.00"}}, SummaryRows(report))
}

func TestWatch(t *testing.T) {
	svc, _ := newScenarioService(t)

	changes := make(chan watcher.Event)
	keys := make(chan interaction.KeyEvent)
	rendered := make(chan Report, 4)
	done := make(chan error, 1)

	go func() {
		done <- svc.Watch(context.Background(), model.Daily, changes, keys, func(r Report) error {
			rendered <- r
			return nil
		})
	}()

	next := func() Report {
		select {
		case r := <-rendered:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no render")
			return Report{}
		}
	}

	assert.Equal(t, model.Daily, next().View)

	keys <- interaction.KeyEvent{Key: 'w'}
	assert.Equal(t, model.Weekly, next().View)

	changes <- watcher.Event{Path: constants.OrdersFile, Operation: "WRITE"}
	assert.Equal(t, model.Weekly, next().View, "a log change keeps the current view")

	keys <- interaction.KeyEvent{Key: 'x'}
	keys <- interaction.KeyEvent{Key: 'q'}
	require.NoError(t, <-done)
	assert.Empty(t, rendered, "unmapped keys do not re-render")
}

func TestWatch_StopsOnContextAndRenderError(t *testing.T) {
	svc, _ := newScenarioService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, svc.Watch(ctx, model.Daily, nil, nil, func(Report) error { return nil }))

	boom := errors.New("terminal gone")
	err := svc.Watch(context.Background(), model.Daily, nil, nil, func(Report) error { return boom })
	assert.ErrorIs(t, err, boom)
}
