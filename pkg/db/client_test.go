package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/tradedir-backend/pkg/config"
	"github.com/angelmondragon/tradedir-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
)

func newSQLiteConfig(t *testing.T) config.DBConfig {
	t.Helper()
	return config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
	}
}

func TestNew_SQLiteAndAutoMigrate(t *testing.T) {
	ctx := context.Background()
	client, err := New(ctx, newSQLiteConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.Equal(t, config.DriverSQLite, client.Driver())
	require.NoError(t, client.Ping(ctx))
	require.NoError(t, client.AutoMigrate(ctx))

	vendor := &models.Vendor{CompanyName: "Acme Traders"}
	require.NoError(t, client.DB().Create(vendor).Error)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", vendor.ID.String())

	var count int64
	require.NoError(t, client.DB().Model(&models.Vendor{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestNew_RejectsMissingDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: config.DriverSQLite}, nil)
	require.Error(t, err)
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: "oracle", DSN: "x"}, nil)
	require.ErrorContains(t, err, "unsupported database driver")
}
