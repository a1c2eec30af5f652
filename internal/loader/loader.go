// Package loader fetches the scenario document once per process and falls
// back to the built-in dataset when the document is unavailable.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/scenario"
)

// maxDocumentSize caps how much of a scenario response is read
var maxDocumentSize = 16 << 20

// ErrDocumentTooLarge is returned when a response exceeds maxDocumentSize
var ErrDocumentTooLarge = errors.New("document too large")

// Observer is notified once after the scenario has been loaded.
// Implementations must treat the scenario as read-only.
type Observer interface {
	ScenarioLoaded(ctx context.Context, sc *models.Scenario, rec models.LoadRecord) error
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, sc *models.Scenario, rec models.LoadRecord) error

// ScenarioLoaded calls f
func (f ObserverFunc) ScenarioLoaded(ctx context.Context, sc *models.Scenario, rec models.LoadRecord) error {
	return f(ctx, sc, rec)
}

// Loader memoizes a single scenario load
type Loader struct {
	url             string
	httpClient      *http.Client
	timeout         time.Duration
	observers       []Observer
	observerTimeout time.Duration

	once   sync.Once
	result *models.Scenario
	info   atomic.Pointer[models.LoadRecord]
}

// Option configures the loader
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.httpClient = client
	}
}

// WithTimeout sets the fetch timeout. The client passed to WithHTTPClient
// is copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// WithObserver registers an observer for the load outcome
func WithObserver(o Observer) Option {
	return func(l *Loader) {
		l.observers = append(l.observers, o)
	}
}

// NewLoader creates a loader for the given source. Sources are http(s)
// URLs, file:// URLs or plain filesystem paths.
func NewLoader(source string, opts ...Option) *Loader {
	l := &Loader{
		url: source,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		observerTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.timeout > 0 {
		c := *l.httpClient
		c.Timeout = l.timeout
		l.httpClient = &c
	}

	return l
}

// Load returns the scenario. The first call performs the load; every other
// call, concurrent or later, gets the same value. Load never fails: any
// fetch or parse problem yields a copy of the fallback dataset.
func (l *Loader) Load(ctx context.Context) *models.Scenario {
	l.once.Do(func() {
		// the result is shared, so the load ignores the first caller's cancellation
		l.result = l.load(context.WithoutCancel(ctx))
	})
	return l.result
}

// Info returns the outcome of the load, or false if Load has not finished
func (l *Loader) Info() (models.LoadRecord, bool) {
	rec := l.info.Load()
	if rec == nil {
		return models.LoadRecord{}, false
	}
	return *rec, true
}

// URL returns the configured scenario source
func (l *Loader) URL() string {
	return l.url
}

func (l *Loader) load(ctx context.Context) *models.Scenario {
	start := time.Now()
	rec := models.LoadRecord{
		ID:       uuid.NewString(),
		URL:      l.url,
		Source:   models.SourceLive,
		LoadedAt: start.UTC(),
	}

	sc, err := l.fetchAndParse(ctx)
	if err != nil {
		slog.Warn("failed to load scenario, using fallback dataset", "url", l.url, "error", err)
		sc = scenario.Fallback()
		rec.Source = models.SourceFallback
		rec.Error = err.Error()
	}

	rec.ScenarioID = sc.ID
	rec.Systems = len(sc.Systems)
	rec.DurationMs = time.Since(start).Milliseconds()
	l.info.Store(&rec)

	slog.Info("scenario ready",
		"source", rec.Source,
		"scenario_id", rec.ScenarioID,
		"systems", rec.Systems,
		"duration_ms", rec.DurationMs,
	)

	l.notify(ctx, sc, rec)
	return sc
}

func (l *Loader) notify(ctx context.Context, sc *models.Scenario, rec models.LoadRecord) {
	for _, o := range l.observers {
		if err := l.notifyOne(ctx, o, sc, rec); err != nil {
			slog.Warn("scenario observer failed", "error", err, "load_id", rec.ID)
		}
	}
}

// notifyOne turns an observer panic into an error so the load still completes
func (l *Loader) notifyOne(ctx context.Context, o Observer, sc *models.Scenario, rec models.LoadRecord) (err error) {
	octx, cancel := context.WithTimeout(ctx, l.observerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panicked: %v", r)
		}
	}()

	return o.ScenarioLoaded(octx, sc, rec)
}

func (l *Loader) fetchAndParse(ctx context.Context) (*models.Scenario, error) {
	doc, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return scenario.Parse(doc)
}

func (l *Loader) fetch(ctx context.Context) (string, error) {
	switch {
	case strings.HasPrefix(l.url, "http://"), strings.HasPrefix(l.url, "https://"):
		return l.fetchHTTP(ctx)
	case strings.HasPrefix(l.url, "file://"):
		return l.readFile(strings.TrimPrefix(l.url, "file://"))
	case strings.Contains(l.url, "://"):
		return "", &scenario.FetchError{URL: l.url, Err: errors.New("unsupported scheme")}
	default:
		return l.readFile(l.url)
	}
}

func (l *Loader) fetchHTTP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return "", &scenario.FetchError{URL: l.url, Err: err}
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", &scenario.FetchError{URL: l.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &scenario.FetchError{URL: l.url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxDocumentSize)+1))
	if err != nil {
		return "", &scenario.FetchError{URL: l.url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	if len(body) > maxDocumentSize {
		return "", &scenario.FetchError{URL: l.url, Err: ErrDocumentTooLarge}
	}
	return string(body), nil
}

func (l *Loader) readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &scenario.FetchError{URL: l.url, Err: err}
	}
	return string(data), nil
}
