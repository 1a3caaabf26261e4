// Command siteproxy serves the function endpoints the site calls:
// /.netlify/functions/episodes, /medium and /rb_agent.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jasonroy7dct/site/internal/config"
	"github.com/jasonroy7dct/site/internal/logging"
	"github.com/jasonroy7dct/site/internal/proxy"
)

func main() {
	logging.InitWriter(os.Stderr, log.InfoLevel)

	cfg := config.LoadProxy()
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      proxy.New(cfg).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Info("listening", "addr", srv.Addr, "base", proxy.BasePath, "model", cfg.LLMModel, "mock", cfg.AllowMock)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("shutdown error", "error", err)
	}
	logging.Info("stopped")
}
