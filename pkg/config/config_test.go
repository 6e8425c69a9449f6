package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "warn", cfg.App.CLILogLevel)
	assert.Equal(t, config.SourceFile, cfg.Catalog.Source)
	assert.Equal(t, "utf-8", cfg.Catalog.Encoding)
	assert.False(t, cfg.Catalog.TraversalProducts)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("CATALOG_PATH", "/tmp/almacen.txt")
	t.Setenv("CATALOG_ENCODING", "ISO-8859-1")
	t.Setenv("CATALOG_TRAVERSAL_PRODUCTS", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PORT", "no-es-numero")
	t.Setenv("CLI_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/almacen.txt", cfg.Catalog.Path)
	assert.Equal(t, "iso-8859-1", cfg.Catalog.Encoding)
	assert.True(t, cfg.Catalog.TraversalProducts)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.App.CLILogLevel)
	assert.Equal(t, 5432, cfg.DB.Port, "un puerto inválido conserva el valor por defecto")
}

func TestLoad_OrigenInvalido(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PostgresRequiereRaiz(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "postgres")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("CATALOG_ROOT_ID", "111")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "111", cfg.Catalog.RootID)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
