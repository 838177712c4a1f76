// stubserver is a local stand-in for the device backend. It speaks the same
// envelope protocol as production, enough to exercise the console end to end:
// login, device update/delete, and threshold read/write.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	backend := newBackend()
	server := &http.Server{Addr: addr, Handler: backend.router()}

	go func() {
		log.Info().Str("addr", addr).Msg("stub backend listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Err(err).Msg("shutdown")
	}
}
