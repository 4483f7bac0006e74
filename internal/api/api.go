// Package api assembles the HudumaFinder service: session store, geo
// service, provider catalog, conversation engine, and the selected
// delivery channel, plus the HTTP surface (webhook + health).
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/catalog"
	"github.com/hudumahub/HudumaFinder/internal/flow"
	"github.com/hudumahub/HudumaFinder/internal/geo"
	"github.com/hudumahub/HudumaFinder/internal/messaging"
	"github.com/hudumahub/HudumaFinder/internal/store"
	"github.com/hudumahub/HudumaFinder/internal/twiliowhatsapp"
	"github.com/hudumahub/HudumaFinder/internal/whatsapp"
)

// Delivery channel names accepted by WithChannel.
const (
	ChannelConsole  = "console"
	ChannelWhatsApp = "whatsapp"
	ChannelTwilio   = "twilio"
)

// DefaultAddr is the default HTTP listen address.
const DefaultAddr = ":8080"

// DefaultShutdownTimeout bounds graceful HTTP shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Opts holds configuration options for the API server.
type Opts struct {
	Addr    string
	Channel string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the HTTP listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithChannel selects the delivery channel (console, whatsapp, twilio).
func WithChannel(channel string) Option {
	return func(o *Opts) { o.Channel = channel }
}

// Run wires the modules together and serves until a shutdown signal.
func Run(waOpts []whatsapp.Option, storeOpts []store.Option, geoOpts []geo.Option, apiOpts []Option) error {
	cfg := Opts{Addr: DefaultAddr, Channel: ChannelConsole}
	for _, opt := range apiOpts {
		opt(&cfg)
	}

	sessions, err := openStore(storeOpts)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessions.Close()

	geoSvc := geo.NewService(geoOpts...)
	providers, err := catalog.New(catalog.SeedProviders(), catalog.WithDiscoverer(geoSvc))
	if err != nil {
		return fmt.Errorf("failed to load provider catalog: %w", err)
	}
	engine := flow.NewEngine(sessions, providers, geoSvc)

	svc, twilioSvc, err := buildMessagingService(cfg.Channel, waOpts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start messaging service: %w", err)
	}
	defer svc.Stop()

	dispatcher := messaging.NewDispatcher(svc, engine)
	dispatchDone := make(chan error, 1)
	go func() { dispatchDone <- dispatcher.Run(ctx) }()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler(sessions))
	mux.HandleFunc("/webhook", webhookHandler(engine))
	if twilioSvc != nil {
		mux.HandleFunc("/webhook/twilio", twilioSvc.TwilioWebhookHandler)
	}

	server := &http.Server{Addr: cfg.Addr, Handler: mux}
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	slog.Info("HudumaFinder running", "addr", cfg.Addr, "channel", cfg.Channel)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		slog.Info("Shutdown signal received", "signal", s.String())
	case err := <-serverErr:
		slog.Error("HTTP server failed", "error", err)
		cancel()
		return fmt.Errorf("http server failed: %w", err)
	case err := <-dispatchDone:
		// Console EOF or channel closure ends the dispatcher.
		slog.Info("Dispatcher finished", "error", err)
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown incomplete", "error", err)
	}
	slog.Info("HudumaFinder stopped")
	return nil
}

// openStore selects the session store backend from the configured DSN:
// none for in-memory, a PostgreSQL connection string, or a SQLite path.
func openStore(opts []store.Option) (store.Store, error) {
	var cfg store.Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	switch {
	case cfg.DSN == "":
		slog.Debug("No session DSN configured, using in-memory store")
		return store.NewInMemoryStore(), nil
	case store.DetectDSNType(cfg.DSN) == "postgres":
		return store.NewPostgresStore(opts...)
	default:
		return store.NewSQLiteStore(opts...)
	}
}

func buildMessagingService(channel string, waOpts []whatsapp.Option) (messaging.Service, *messaging.TwilioService, error) {
	switch channel {
	case ChannelWhatsApp:
		client, err := whatsapp.NewClient(waOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create WhatsApp client: %w", err)
		}
		return messaging.NewWhatsAppService(client), nil, nil
	case ChannelTwilio:
		client, err := twiliowhatsapp.NewClient()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Twilio client: %w", err)
		}
		svc := messaging.NewTwilioService(client)
		return svc, svc, nil
	case ChannelConsole, "":
		return messaging.NewConsoleService(os.Stdin, os.Stdout), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown delivery channel %q", channel)
	}
}
