// Package main provides the pagevoice MCP server: a stdio Model Context
// Protocol server that exposes voice-driven page automation tools
// (speak, listen, field and button location, scrolling, highlighting,
// site detection, content extraction) over a Playwright-driven browser.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/entrhq/pagevoice/pkg/browser"
	"github.com/entrhq/pagevoice/pkg/config"
	"github.com/entrhq/pagevoice/pkg/logging"
	pvmcp "github.com/entrhq/pagevoice/pkg/mcp"
	"github.com/entrhq/pagevoice/pkg/observe"
	"github.com/entrhq/pagevoice/pkg/speech"
	"github.com/entrhq/pagevoice/pkg/speech/openaivoice"
)

const version = "0.1.0"

// idleSweepInterval is how often idle browser sessions are reaped.
const idleSweepInterval = time.Minute

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagevoice v%s\n", version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pagevoice: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logging.SetMinLevel(logging.ParseLevel(string(cfg.Server.LogLevel)))
	log, err := logging.NewLogger("main")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Telemetry: OTel metrics with a Prometheus bridge.
	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    cfg.Server.Name,
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Warnf("telemetry shutdown failed: %v", err)
		}
	}()

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	// Browser.
	manager := browser.NewSessionManager(
		browser.WithManagerLogger(log),
		browser.WithManagerMetrics(metrics),
		browser.WithMaxSessions(cfg.Browser.MaxSessions),
		browser.WithIdleTimeout(time.Duration(cfg.Browser.IdleTimeout)*time.Second),
		browser.WithSessionDefaults(browser.SessionOptions{
			Headless: cfg.Browser.Headless,
			Viewport: &browser.Viewport{
				Width:  cfg.Browser.Viewport.Width,
				Height: cfg.Browser.Viewport.Height,
			},
			Timeout: cfg.Browser.Timeout,
		}),
	)
	if err := manager.Initialize(); err != nil {
		return fmt.Errorf("initialize browser: %w", err)
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			log.Warnf("browser shutdown failed: %v", err)
		}
	}()

	speaker, listener := buildSpeech(cfg, manager, log, metrics)

	toolkit := pvmcp.NewToolkit(manager, speaker, listener,
		pvmcp.WithToolkitLogger(log),
		pvmcp.WithToolkitMetrics(metrics),
		pvmcp.WithDefaultLanguage(cfg.Speech.Language),
	)
	server := toolkit.NewServer(cfg.Server.Name, version)

	log.Infof("pagevoice v%s starting (speech=%s headless=%v)", version, cfg.Speech.Provider, cfg.Browser.Headless)

	g, ctx := errgroup.WithContext(ctx)

	// The MCP transport owns stdin/stdout; everything else logs to the
	// session file.
	g.Go(func() error {
		return server.Run(ctx, &mcpsdk.StdioTransport{})
	})

	g.Go(func() error {
		ticker := time.NewTicker(idleSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if !manager.HasSessions() {
					continue
				}
				if err := manager.CleanupIdleSessions(); err != nil {
					log.Warnf("idle session cleanup failed: %v", err)
				}
			}
		}
	})

	if cfg.Server.MetricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.Server.MetricsAddr, log)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Infof("pagevoice stopped")
	return nil
}

// loadConfig loads the config file, or the built-in defaults when no
// path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildSpeech wires the configured speech backend into the speak and
// listen wrappers. Both backends sound and listen through the default
// browser session.
func buildSpeech(cfg *config.Config, manager *browser.SessionManager, log *logging.Logger, metrics *observe.Metrics) (*speech.Speaker, *speech.Listener) {
	var (
		synth speech.Synthesizer
		rec   speech.Recognizer
	)

	switch cfg.Speech.Provider {
	case config.ProviderOpenAI:
		provider := openaivoice.New(
			browser.NewPageAudio(manager, pvmcp.DefaultSession),
			openaivoice.Options{
				APIKey:          cfg.Speech.OpenAI.APIKey,
				Voice:           cfg.Speech.OpenAI.Voice,
				SpeechModel:     cfg.Speech.OpenAI.SpeechModel,
				TranscribeModel: cfg.Speech.OpenAI.TranscribeModel,
				Logger:          log,
			},
		)
		synth, rec = provider, provider
	default:
		ws := browser.NewWebSpeech(manager, pvmcp.DefaultSession, log)
		synth, rec = ws, ws
	}

	speaker := speech.NewSpeaker(synth,
		speech.WithSpeakerLogger(log),
		speech.WithSpeakerMetrics(metrics),
	)
	listener := speech.NewListener(rec,
		speech.WithListenerLogger(log),
		speech.WithListenerMetrics(metrics),
	)
	return speaker, listener
}

// serveMetrics exposes the Prometheus /metrics endpoint until ctx is
// cancelled.
func serveMetrics(ctx context.Context, addr string, log *logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Infof("metrics endpoint listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics endpoint: %w", err)
	}
}
