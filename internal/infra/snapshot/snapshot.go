// Package snapshot persists the in-memory store as a JSON file. A snapshot
// is loaded once on startup if present and written on graceful shutdown;
// it is a process-local convenience, not transactional storage.
package snapshot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"market/config"
	"market/internal/infra/memstore"
	"market/internal/util"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Manager loads and saves store snapshots at a configured path.
type Manager struct {
	path   string
	store  *memstore.Store
	logger *slog.Logger
}

// Params holds dependencies for the snapshot Manager, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Store  *memstore.Store
	Logger *slog.Logger
}

// NewManager creates the snapshot manager, restores an existing snapshot
// immediately and registers a save hook for shutdown. With no configured
// path it stays inert.
func NewManager(params Params) (*Manager, error) {
	path := ""
	if params.Config.Snapshot != nil {
		path = params.Config.Snapshot.Path
	}

	m := &Manager{
		path:   path,
		store:  params.Store,
		logger: params.Logger,
	}

	if path == "" {
		params.Logger.Info("Snapshot persistence not configured")

		return m, nil
	}

	if err := m.Load(); err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return m.Save()
		},
	})

	return m, nil
}

// Load restores the store from the snapshot file if one exists.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Info("No snapshot found, starting empty", slog.String("path", m.path))

			return nil
		}

		return errors.Wrap(err, "failed to read snapshot")
	}

	var dump memstore.Dump
	if err := codec.Unmarshal(data, &dump); err != nil {
		return errors.Wrap(err, "failed to decode snapshot")
	}
	m.store.Load(&dump)

	checksum, err := util.CalculateFileChecksum(m.path)
	if err != nil {
		return err
	}
	m.logger.Info("Snapshot restored",
		slog.String("path", m.path),
		slog.String("size", util.FormatBytes(int64(len(data)))),
		slog.String("sha256", checksum),
	)

	return nil
}

// Save writes the current store contents to the snapshot file. The write
// goes through a temp file and rename so a crash mid-save never leaves a
// truncated snapshot behind.
func (m *Manager) Save() error {
	if m.path == "" {
		return nil
	}

	data, err := codec.Marshal(m.store.Dump())
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	tmp := m.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create snapshot directory")
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write snapshot")
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return errors.Wrap(err, "failed to move snapshot into place")
	}

	m.logger.Info("Snapshot saved",
		slog.String("path", m.path),
		slog.String("size", util.FormatBytes(int64(len(data)))),
	)

	return nil
}
