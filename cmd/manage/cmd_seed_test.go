package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/storage"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/config"
)

func TestSeedDemo_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: t.TempDir() + "/demo.db",
	})
	require.NoError(t, err)
	defer store.Close()

	var out bytes.Buffer
	require.NoError(t, seedDemo(ctx, store, &out))
	require.NoError(t, seedDemo(ctx, store, &out))
	assert.Contains(t, out.String(), "producto Widget ya existe")

	n, err := store.Products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoProducts), n)

	widget, err := store.Products.ExistsByName(ctx, "widget", "")
	require.NoError(t, err)
	assert.True(t, widget)
}
