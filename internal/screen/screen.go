// Package screen implements the controllers behind the dashboard, logs,
// reports and intake pages. Each controller loads its own snapshot of
// visitor records and derives filtered, paginated views from it.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// ErrClosed is returned by Refresh after Close.
var ErrClosed = errors.New("screen closed")

// StoreHelp is shown in place of records when the store cannot be reached.
const StoreHelp = "Visitor records could not be loaded. Please try again later or contact your administrator."

// NoticeKind classifies a Notice.
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a message for the user.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Options are shared by every controller. Zero fields take defaults.
type Options struct {
	Logger   *slog.Logger
	Now      func() time.Time
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// today returns the current calendar date in the configured location.
func (o Options) today() visitor.Date {
	return visitor.DateOf(o.Now().In(o.Location))
}

// loader owns a controller's snapshot. Loads are single-flight: concurrent
// refreshes share one store call. Close cancels an in-flight load and any
// result that arrives afterwards is dropped.
type loader struct {
	name  string
	store visitor.Store
	opts  Options

	ctx    context.Context
	cancel context.CancelFunc
	group  singleflight.Group

	mu      sync.Mutex
	loading bool
	loaded  bool
	notice  *Notice
	records []*visitor.Record

	// onLoad runs under mu after a successful load.
	onLoad func()
}

func newLoader(name string, store visitor.Store, opts Options) *loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &loader{
		name:   name,
		store:  store,
		opts:   opts.withDefaults(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// refresh loads the records for q. Store failures leave an empty snapshot
// and an error notice; they are logged, not returned. The returned error is
// ErrClosed or the caller's context error.
func (l *loader) refresh(ctx context.Context, q visitor.Query) error {
	if l.ctx.Err() != nil {
		return ErrClosed
	}

	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	ch := l.group.DoChan("load", func() (interface{}, error) {
		records, err := l.store.Fetch(l.ctx, q)
		l.apply(records, err)
		return nil, err
	})

	select {
	case <-ch:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return ErrClosed
	}
	if l.ctx.Err() != nil {
		return ErrClosed
	}
	return nil
}

func (l *loader) apply(records []*visitor.Record, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ctx.Err() != nil {
		return
	}
	l.loading = false
	l.loaded = true

	if err != nil {
		l.opts.Logger.Error("loading visitors failed", "screen", l.name, "error", err)
		l.records = []*visitor.Record{}
		l.notice = &Notice{Kind: NoticeError, Message: StoreHelp}
	} else {
		if records == nil {
			records = []*visitor.Record{}
		}
		l.records = records
		l.notice = nil
		l.opts.Logger.Debug("visitors loaded", "screen", l.name, "count", len(records))
	}
	if l.onLoad != nil {
		l.onLoad()
	}
}

// Close cancels any in-flight load. The controller keeps its last snapshot.
func (l *loader) Close() {
	l.cancel()
	l.mu.Lock()
	l.loading = false
	l.mu.Unlock()
}
