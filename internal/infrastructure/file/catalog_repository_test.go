package file_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/file"
)

func arbol(t *testing.T) *catalog.Category {
	t.Helper()
	root := catalog.NewCategory("1", "Línea Blanca")
	require.NoError(t, root.AddNode("", catalog.KindBrand, "10", "Haceb"))
	require.NoError(t, root.AddNode("10", catalog.KindProduct, "100", "Nevera", catalog.WithDescription("Nevera de 300 l, año 2024"),
		catalog.WithUnitPrice(decimal.RequireFromString("1599900.50")), catalog.WithUnitsSold(2)))
	return root
}

func TestLoad_ArchivoInexistente(t *testing.T) {
	repo, err := file.NewCatalogRepository(filepath.Join(t.TempDir(), "no.txt"), "")
	require.NoError(t, err)
	_, err = repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoad_ArchivoDePrueba(t *testing.T) {
	repo, err := file.NewCatalogRepository(filepath.Join("..", "..", "domain", "catalog", "testdata", "categoriaTest.txt"), "utf-8")
	require.NoError(t, err)
	root, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "111", root.ID())
	assert.Len(t, root.Products(), 5)
}

func TestSaveYLoad_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "almacen.txt")
	repo, err := file.NewCatalogRepository(path, "")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, arbol(t)))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Línea Blanca", got.Name())
	p := got.FindProduct("100")
	require.NotNil(t, p)
	assert.Equal(t, "Nevera de 300 l, año 2024", p.Description())
	assert.True(t, decimal.RequireFromString("3199801").Equal(got.SalesValue()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales")
}

func TestSaveYLoad_Latin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almacen.txt")
	repo, err := file.NewCatalogRepository(path, "ISO-8859-1")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, arbol(t)))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(raw, []byte("L\xednea")), "í se escribe como un solo byte")
	assert.False(t, bytes.Contains(raw, []byte("Línea")))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Línea Blanca", got.Name())
}

func TestSave_Latin1RechazaCaracteresSinRepresentacion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almacen.txt")
	repo, err := file.NewCatalogRepository(path, "latin1")
	require.NoError(t, err)

	root := catalog.NewCategory("1", "Precios en €")
	assert.Error(t, repo.Save(context.Background(), root))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "el archivo anterior no se toca")
}

func TestNewCatalogRepository_CodificacionInvalida(t *testing.T) {
	_, err := file.NewCatalogRepository("x.txt", "utf-16")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_ContextoCancelado(t *testing.T) {
	repo, err := file.NewCatalogRepository("x.txt", "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_LineasSobrantesNoSePierden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almacen.txt")
	contenido := "Categoria;111;Televisores;1\nMarca;1111;SAMSUNG;0\nMarca;1112;LG;1\nProducto;31759950;OLED;;2499000;1\n"
	require.NoError(t, os.WriteFile(path, []byte(contenido), 0o644))

	repo, err := file.NewCatalogRepository(path, "")
	require.NoError(t, err)
	_, err = repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
	assert.Contains(t, err.Error(), "líneas sobrantes")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, contenido, string(raw))
}
