package backend

import (
	"fmt"
	"log/slog"

	"github.com/zayLatt25/receipt-app/internal/storage"
	"github.com/zayLatt25/receipt-app/internal/store/memory"
)

// Factory creates store backends from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create wires the backend named by backendType. sqlitePath is only
// consulted for the sqlite backend.
func (f *Factory) Create(backendType Type, sqlitePath string) (*Result, error) {
	switch backendType {
	case SQLiteBackend:
		return f.createSQLite(sqlitePath)
	case MemoryBackend:
		return f.createMemory()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}

func (f *Factory) createSQLite(dbPath string) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", dbPath)

	return &Result{
		Stores: Stores{
			Records:  repo,
			Taxonomy: repo,
			Grocery:  repo,
		},
		Cleanup: repo.Close,
	}, nil
}

func (f *Factory) createMemory() (*Result, error) {
	st := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Stores: Stores{
			Records:  st,
			Taxonomy: st,
			Grocery:  st,
		},
		Cleanup: nil,
	}, nil
}
