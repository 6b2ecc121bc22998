package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"socialgraph/backend/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	cfg := config.Defaults()
	cfg.StoreBackend = config.BackendMemory

	store, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.IsType(t, &MemoryStore{}, store)
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.StoreBackend = "sqlite"

	_, err := Open(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown store backend")
}
