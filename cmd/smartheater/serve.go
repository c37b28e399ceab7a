// cmd/smartheater/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/smartheater/internal/api"
	"github.com/tamzrod/smartheater/internal/poller"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the heater over HTTP and poll it periodically",
	Long: `Expose the heater through a JSON HTTP API.

When poll.interval_ms is set, the operating block (temperatures, relay
status, power values, counters) is read on every tick and served at
/snapshot.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "HTTP listen address (default :8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.HTTP.Listen = listenAddr
	}

	s, closeSession, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSession(); err != nil {
			log.Warnf("close: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Poller (optional)
	// --------------------

	var latest *poller.Latest

	p, err := poller.Build(cfg.Poll, s)
	if err != nil {
		return err
	}
	if p != nil {
		latest = &poller.Latest{}
		out := make(chan poller.Snapshot)

		go p.Run(ctx, out)
		go poller.Publish(ctx, out, latest)

		log.WithField("interval", cfg.Poll.Interval()).Info("polling enabled")
	}

	// --------------------
	// HTTP
	// --------------------

	h := &http.Server{
		Addr:              cfg.HTTP.Listen,
		Handler:           api.New(s, latest, buildVersion, buildDate).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- h.ListenAndServe() }()
	log.WithField("listen", cfg.HTTP.Listen).Info("http api up")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped")
	return nil
}
