// client/dashboard.go
package client

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// dashboardLoadFailedMsg is the only failure text shown to users for
// dashboard loads.
const dashboardLoadFailedMsg = "failed to load dashboard data"

// ViewState is the render priority of the dashboard: loading wins over
// error, error over loaded data, and an untouched view is empty.
type ViewState int

const (
	StateEmpty ViewState = iota
	StateLoading
	StateError
	StateLoaded
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateLoaded:
		return "loaded"
	default:
		return "empty"
	}
}

// DashboardView loads and holds the dashboard snapshot. Each Load returns a
// handle; cancelling the handle, or starting a newer Load, guarantees the
// older fetch never writes into the view's state.
type DashboardView struct {
	c *Client

	// keepStale controls whether a failed load preserves the last good
	// snapshot alongside the error. On by default.
	keepStale bool

	mu      sync.RWMutex
	gen     uint64
	snap    *Snapshot
	loading bool
	errMsg  string
	lastErr *FetchError
}

// ViewOption configures a DashboardView.
type ViewOption func(*DashboardView)

// KeepStaleSnapshot sets whether a failed load keeps the previous snapshot
// visible together with the error. The default is true.
func KeepStaleSnapshot(keep bool) ViewOption {
	return func(v *DashboardView) { v.keepStale = keep }
}

// NewDashboardView creates an empty view bound to the given client.
func NewDashboardView(c *Client, opts ...ViewOption) *DashboardView {
	v := &DashboardView{c: c, keepStale: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FetchHandle tracks one in-flight dashboard load.
type FetchHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel abandons the fetch. A cancelled fetch never writes view state.
func (h *FetchHandle) Cancel() {
	h.cancel()
}

// Wait blocks until the fetch has finished or been abandoned.
func (h *FetchHandle) Wait() {
	<-h.done
}

// Load starts fetching the snapshot and returns immediately. Starting a new
// Load supersedes any earlier one still in flight; the superseded response
// is discarded.
func (v *DashboardView) Load(ctx context.Context) *FetchHandle {
	fctx, cancel := context.WithCancel(ctx)
	h := &FetchHandle{cancel: cancel, done: make(chan struct{})}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.loading = true
	v.errMsg = ""
	v.lastErr = nil
	v.mu.Unlock()

	go func() {
		defer close(h.done)
		defer cancel()

		var snap Snapshot
		ferr := v.c.getJSON(fctx, "/api/frontend/dashboard", &snap)

		v.mu.Lock()
		defer v.mu.Unlock()

		// A newer Load owns the state now; this response is stale.
		if gen != v.gen {
			return
		}
		// Cancelled fetches surface as context errors; leave the state
		// exactly as the canceller saw it, except the spinner.
		if fctx.Err() != nil {
			v.loading = false
			return
		}

		v.loading = false
		if ferr != nil {
			v.c.Log.Warn("dashboard fetch failed", zap.String("kind", ferr.Kind.String()), zap.Error(ferr))
			v.errMsg = dashboardLoadFailedMsg
			v.lastErr = ferr
			if !v.keepStale {
				v.snap = nil
			}
			return
		}
		v.snap = &snap
	}()

	return h
}

// State derives the render state with the documented priority.
func (v *DashboardView) State() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	switch {
	case v.loading:
		return StateLoading
	case v.errMsg != "":
		return StateError
	case v.snap != nil:
		return StateLoaded
	default:
		return StateEmpty
	}
}

// Snapshot returns the current snapshot, or nil. With KeepStaleSnapshot the
// last good snapshot survives a failed load and is returned even in the
// error state.
func (v *DashboardView) Snapshot() *Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snap
}

// ErrorMessage returns the fixed user-facing message from the last failed
// load, or "".
func (v *DashboardView) ErrorMessage() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.errMsg
}

// LastError returns the classified cause of the last failed load, or nil.
func (v *DashboardView) LastError() *FetchError {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastErr
}

// Loading reports whether a load is in progress.
func (v *DashboardView) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}
