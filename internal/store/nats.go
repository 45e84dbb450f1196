package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/caseworks/intake/internal/logger"
	"github.com/caseworks/intake/internal/schema"
)

const (
	bucketName = "intake_application"
	recordKey  = "record"
)

// NATSStore persists the application record in a JetStream key-value
// bucket served by an embedded NATS server. The server runs in-process
// with no network ports.
type NATSStore struct {
	ns *server.Server
	nc *nats.Conn
	kv jetstream.KeyValue
}

// NewNATSStore starts an embedded NATS server rooted at dataDir and
// opens the application bucket.
func NewNATSStore(ctx context.Context, dataDir string) (*NATSStore, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	opts := &server.Options{
		JetStream:  true,
		StoreDir:   filepath.Join(dataDir, "nats"),
		DontListen: true, // In-process only, no network ports
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("creating NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  bucketName,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("opening key-value bucket: %w", err)
	}

	logger.Debug("NATS store ready, bucket %s", bucketName)
	return &NATSStore{ns: ns, nc: nc, kv: kv}, nil
}

// Load reads the saved record from the bucket. A missing key or
// unparseable value yields a default record.
func (s *NATSStore) Load() (*Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer cancel()

	entry, err := s.kv.Get(ctx, recordKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return DefaultRecord(), nil
		}
		logger.Warn("Failed to read application record from NATS: %v", err)
		return DefaultRecord(), nil
	}

	var rec Record
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		logger.Warn("Failed to parse application record from NATS: %v", err)
		return DefaultRecord(), nil
	}

	if rec.Values == nil {
		rec.Values = schema.Values{}
	}
	if rec.Step < 1 {
		rec.Step = 1
	}
	return &rec, nil
}

// Save writes the record to the bucket. Empty records delete the key.
func (s *NATSStore) Save(rec *Record) error {
	if rec.Empty() {
		return s.Clear()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling application record: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer cancel()

	if _, err := s.kv.Put(ctx, recordKey, data); err != nil {
		return fmt.Errorf("writing application record: %w", err)
	}
	return nil
}

// Clear deletes the record key if present.
func (s *NATSStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer cancel()

	if err := s.kv.Delete(ctx, recordKey); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("clearing application record: %w", err)
	}
	return nil
}

// Close drains the connection and shuts down the embedded server.
func (s *NATSStore) Close() error {
	if s.nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- s.nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				s.nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out, forcing close")
			s.nc.Close()
		}
	}

	if s.ns != nil {
		s.ns.Shutdown()

		done := make(chan struct{})
		go func() {
			s.ns.WaitForShutdown()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			return errors.New("nats server shutdown timed out")
		}
	}
	return nil
}
