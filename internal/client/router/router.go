// Package router decides which top-level view the client shows for a given
// session state.
package router

import (
	"context"

	"github.com/dmitrijs2005/plantguard/internal/client/session"
)

type View int

const (
	ViewLoading View = iota
	ViewAuth
	ViewDashboard
)

func (v View) String() string {
	switch v {
	case ViewAuth:
		return "auth"
	case ViewDashboard:
		return "dashboard"
	default:
		return "loading"
	}
}

// Page is the dashboard tab.
type Page string

const (
	PageAnalysis Page = "analysis"
	PageHistory  Page = "history"
)

// ParsePage reports false for unknown names.
func ParsePage(s string) (Page, bool) {
	switch Page(s) {
	case PageAnalysis, PageHistory:
		return Page(s), true
	}
	return "", false
}

func Resolve(st session.State) View {
	switch {
	case st.Loading:
		return ViewLoading
	case st.Identity == nil:
		return ViewAuth
	default:
		return ViewDashboard
	}
}

type watcher interface {
	Watch() (<-chan session.State, func())
}

// Watch emits the resolved view for the current state and then every time it
// changes. The channel is closed when ctx is done or the source stops.
func Watch(ctx context.Context, w watcher) <-chan View {
	states, cancel := w.Watch()
	out := make(chan View, 1)

	go func() {
		defer close(out)
		defer cancel()

		last := View(-1)
		for {
			select {
			case <-ctx.Done():
				return
			case st, ok := <-states:
				if !ok {
					return
				}
				v := Resolve(st)
				if v == last {
					continue
				}
				last = v
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
