package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/client/analysis"
	"github.com/dmitrijs2005/plantguard/internal/client/catalog"
	"github.com/dmitrijs2005/plantguard/internal/client/client"
	"github.com/dmitrijs2005/plantguard/internal/client/config"
	"github.com/dmitrijs2005/plantguard/internal/client/history"
	"github.com/dmitrijs2005/plantguard/internal/client/intake"
	"github.com/dmitrijs2005/plantguard/internal/client/router"
	"github.com/dmitrijs2005/plantguard/internal/client/session"
	"github.com/dmitrijs2005/plantguard/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	backend  client.Client
	session  *session.Store
	catalog  *catalog.Catalog
	intake   *intake.Intake
	analyzer *analysis.Orchestrator
	history  *history.Manager

	mu   sync.Mutex
	mode Mode
	page router.Page

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)
	return newApp(c, api, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, l logging.Logger, in io.Reader, out io.Writer) *App {
	store := session.NewStore(api, l)
	cat := catalog.New(api, c.CatalogCacheTTL)
	diagnoser := analysis.NewRandomDiagnoser(cat, nil)

	return &App{
		config:   c,
		logger:   l,
		backend:  api,
		session:  store,
		catalog:  cat,
		intake:   intake.New(c.MaxImageBytes),
		analyzer: analysis.NewOrchestrator(diagnoser, store, api, l),
		history:  history.NewManager(store, api, l),
		page:     router.PageAnalysis,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run resolves the session, starts the background watchers and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close()
	defer cancel()

	printlnFn("Welcome to PlantGuard CLI (type 'help' for commands)")

	if err := a.session.Start(ctx); err != nil {
		a.printError(err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.watchViews(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	a.session.Close()
	if err := a.backend.Close(); err != nil {
		a.logger.Warn(context.Background(), "failed to close backend connection", "error", err)
	}
}

func (a *App) view() router.View {
	return router.Resolve(a.session.Current())
}

// watchViews resets per-user client state when the user signs out.
func (a *App) watchViews(ctx context.Context) {
	for v := range router.Watch(ctx, a.session) {
		if v != router.ViewAuth {
			continue
		}
		a.intake.Clear()
		a.mu.Lock()
		a.page = router.PageAnalysis
		a.mu.Unlock()
	}
}

func (a *App) currentPage() router.Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher pings the backend every interval and records
// whether it answered.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.backend.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// getStatus renders the prompt prefix, e.g. "(ann@example.org online history)".
func (a *App) getStatus() string {
	var parts []string

	st := a.session.Current()
	switch router.Resolve(st) {
	case router.ViewLoading:
		parts = append(parts, "loading")
	case router.ViewDashboard:
		parts = append(parts, st.Identity.Email)
	}
	if m := a.currentMode(); m != "" {
		parts = append(parts, string(m))
	}
	if router.Resolve(st) == router.ViewDashboard {
		parts = append(parts, string(a.currentPage()))
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) printError(err error) {
	fmt.Fprintln(a.out, "Error:", err)
}
