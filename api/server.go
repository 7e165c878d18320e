package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"

	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

// Serve binds a listener and runs the HTTP server. When the configured port
// is taken it walks up one port at a time, giving up after
// cfg.App.PortAttempts tries.
func Serve(ctx context.Context, cfg *config.Config, logg *logger.Logger, handler http.Handler) error {
	listener, port, err := listen(ctx, cfg, logg)
	if err != nil {
		return err
	}

	serveCtx := logg.WithField(ctx, "port", port)
	logg.Info(serveCtx, "api server listening")

	server := &http.Server{Handler: handler}
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

func listen(ctx context.Context, cfg *config.Config, logg *logger.Logger) (net.Listener, int, error) {
	attempts := cfg.App.PortAttempts
	if attempts < 1 {
		attempts = 1
	}

	port := cfg.App.Port
	for attempt := 0; attempt < attempts; attempt++ {
		listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
		if err == nil {
			return listener, port, nil
		}
		if !isAddrInUse(err) {
			return nil, 0, fmt.Errorf("binding port %d: %w", port, err)
		}

		logCtx := logg.WithFields(ctx, map[string]any{"port": port, "next_port": port + 1})
		logg.Warn(logCtx, "port in use, trying next")
		port++
	}

	return nil, 0, fmt.Errorf("no free port in range %d-%d", cfg.App.Port, port-1)
}

func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}
