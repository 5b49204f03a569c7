package screen

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

func TestRefreshSharesInFlightLoad(t *testing.T) {
	store := &fakeStore{
		records: visitors(3, visitor.NewDate(2026, 10, 16), visitor.StatusPending),
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	logs := NewLogs(store, testOptions(nil))
	defer logs.Close()

	errs := make(chan error, 2)
	go func() { errs <- logs.Refresh(context.Background()) }()
	<-store.started
	assert.True(t, logs.View().Loading)

	go func() { errs <- logs.Refresh(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	close(store.release)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.Equal(t, int32(1), store.calls.Load(), "concurrent refreshes share one fetch")
	assert.False(t, logs.View().Loading)
	assert.Equal(t, 3, logs.View().Page.Total)
}

func TestCloseCancelsInFlightLoad(t *testing.T) {
	store := &fakeStore{
		records: visitors(3, visitor.NewDate(2026, 10, 16), visitor.StatusPending),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	var buf bytes.Buffer
	reports := NewReports(store, testOptions(&buf))

	errs := make(chan error, 1)
	go func() { errs <- reports.Refresh(context.Background()) }()
	<-store.started

	reports.Close()
	assert.ErrorIs(t, <-errs, ErrClosed)

	view := reports.View()
	assert.False(t, view.Loading)
	assert.Nil(t, view.Notice, "a cancelled load is discarded, not reported")
	assert.Equal(t, 0, view.Summary.Total)
	assert.NotContains(t, buf.String(), "loading visitors failed")
}

func TestRefreshAfterClose(t *testing.T) {
	store := &fakeStore{}
	d := NewDashboard(store, testOptions(nil))
	d.Close()

	assert.ErrorIs(t, d.Refresh(context.Background()), ErrClosed)
	assert.Equal(t, int32(0), store.calls.Load())
}

func TestRefreshCallerGivesUp(t *testing.T) {
	store := &fakeStore{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	d := NewDashboard(store, testOptions(nil))
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- d.Refresh(ctx) }()
	<-store.started
	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)

	close(store.release)
	require.Eventually(t, func() bool { return !d.View().Loading }, time.Second, 10*time.Millisecond,
		"the shared load still completes")
}

func TestStoreFailureShowsNotice(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{fetchErr: errors.New("connection refused")}
	reports := NewReports(store, testOptions(&buf))
	defer reports.Close()

	require.NoError(t, reports.Refresh(context.Background()), "store errors never escape a screen")

	view := reports.View()
	require.NotNil(t, view.Notice)
	assert.Equal(t, NoticeError, view.Notice.Kind)
	assert.Equal(t, StoreHelp, view.Notice.Message)
	assert.Equal(t, 0, view.Summary.Total)
	assert.Empty(t, view.Page.Visible)
	assert.Equal(t, 1, view.Page.TotalPages)

	assert.Contains(t, buf.String(), "loading visitors failed")
	assert.Contains(t, buf.String(), "screen=reports")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestSuccessfulRefreshClearsNotice(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("timeout")}
	logs := NewLogs(store, testOptions(nil))
	defer logs.Close()

	require.NoError(t, logs.Refresh(context.Background()))
	require.NotNil(t, logs.View().Notice)

	store.mu.Lock()
	store.fetchErr = nil
	store.records = visitors(2, visitor.Date{}, visitor.StatusPending)
	store.mu.Unlock()

	require.NoError(t, logs.Refresh(context.Background()))
	assert.Nil(t, logs.View().Notice)
	assert.Equal(t, 2, logs.View().Page.Total)
}
