// Package nats runs an in-process NATS server with JetStream so drafts can
// live in a KeyValue bucket without any external infrastructure.
package nats

import (
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Embedded bundles the in-process server with its client connection.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// StartEmbedded starts a JetStream-enabled server storing data under
// storeDir and connects to it in-process.
func StartEmbedded(storeDir string) (*Embedded, error) {
	ns, err := startServer(storeDir)
	if err != nil {
		return nil, err
	}

	logger.Debug("Connecting to NATS server in-process")
	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	return &Embedded{Server: ns, Conn: nc, JS: js}, nil
}

func startServer(storeDir string) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server with store dir: %s", storeDir)

	opts := &server.Options{
		ServerName: "listwiz",
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: true, // No network ports - in-process only
		NoSigs:     true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("creating NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("nats server not ready within %s", readyTimeout)
	}

	logger.Debug("NATS server ready for connections")
	return ns, nil
}

// Close drains the connection, then shuts the server down. Both steps are
// bounded so a wedged server cannot hang the caller.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}

	if e.Conn != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- e.Conn.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				e.Conn.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			e.Conn.Close()
		}
	}

	if e.Server != nil {
		e.Server.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			e.Server.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			logger.Debug("NATS server shut down cleanly")
		case <-time.After(shutdownTimeout):
			logger.Error("NATS server shutdown timed out after %s", shutdownTimeout)
			return errors.New("NATS server shutdown timed out")
		}
	}
	return nil
}
