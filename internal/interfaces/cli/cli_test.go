package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/interfaces/cli"
)

// catalogoTemporal copia el catálogo de prueba a un directorio temporal.
func catalogoTemporal(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "domain", "catalog", "testdata", "categoriaTest.txt"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "almacen.txt")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// run ejecuta almacen con args sobre path y devuelve la salida estándar.
func run(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runConErrores(t, path, args...)
	return stdout, err
}

// runConErrores como run, pero devuelve también la salida de errores.
func runConErrores(t *testing.T, path string, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(&cli.App{}, cli.Defaults{Path: path, Encoding: "utf-8"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestArbol(t *testing.T) {
	out, err := run(t, catalogoTemporal(t), "arbol")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Categoria 111: Televisores ($6,896,900)", lines[0])
	assert.Contains(t, lines[1], "Marca 1111: SAMSUNG ($4,397,900)")
	assert.Contains(t, out, "└──")
	assert.Contains(t, out, "[$5,999,900 x 0]")
}

func TestVentas(t *testing.T) {
	out, err := run(t, catalogoTemporal(t), "ventas")
	require.NoError(t, err)
	assert.Equal(t, "Valor de ventas: $6,896,900 (5 productos, 2 marcas)\n", out)
}

func TestRecorridos_ConYSinProductos(t *testing.T) {
	path := catalogoTemporal(t)

	out, err := run(t, path, "preorden")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "3 nodos\n"))

	out, err = run(t, path, "posorden", "--con-productos")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "8 nodos\n"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-2], "Categoria 111"), "la raíz va al final")
}

func TestBuscarYPadre(t *testing.T) {
	path := catalogoTemporal(t)

	out, err := run(t, path, "buscar", "1112")
	require.NoError(t, err)
	assert.Contains(t, out, "Marca 1112: LG")

	out, err = run(t, path, "buscar", "3175994", "--prefijo")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "3 nodos\n"))

	_, err = run(t, path, "buscar", "NO")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err = run(t, path, "padre", "31759951")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Marca 1112: LG"))

	_, err = run(t, path, "padre", "111")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMutaciones_SeGuardanEnElArchivo(t *testing.T) {
	path := catalogoTemporal(t)

	_, err := run(t, path, "agregar", "--padre", "1112", "--tipo", "Producto", "--id", "P-1",
		"--nombre", "Barra de sonido", "--precio", "450000", "--unidades", "1")
	require.NoError(t, err)

	_, err = run(t, path, "vender", "P-1", "-u", "2")
	require.NoError(t, err)

	out, err := run(t, path, "ventas")
	require.NoError(t, err)
	assert.Equal(t, "Valor de ventas: $8,246,900 (6 productos, 2 marcas)\n", out)

	_, err = run(t, path, "eliminar", "1111")
	require.NoError(t, err)
	out, err = run(t, path, "marcas")
	require.NoError(t, err)
	assert.NotContains(t, out, "SAMSUNG")

	_, err = run(t, path, "agregar", "--tipo", "Marca", "--id", "1112", "--nombre", "Otra")
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

	_, err = run(t, path, "eliminar", "111")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportar_Formatos(t *testing.T) {
	path := catalogoTemporal(t)

	out, err := run(t, path, "exportar", "-f", "yaml")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "111", tree["id"])
	assert.Equal(t, "6896900", tree["sales_value"])
	assert.Len(t, tree["children"], 2)

	out, err = run(t, path, "exportar", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sales_value": "6896900"`)

	out, err = run(t, path, "exportar", "-f", "xml")
	require.NoError(t, err)
	assert.Contains(t, out, `<almacen version="1">`)

	out, err = run(t, path, "exportar")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# almacen v1\nCategoria;111;Televisores;2\n"))

	_, err = run(t, path, "exportar", "-f", "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidar(t *testing.T) {
	path := catalogoTemporal(t)

	out, err := run(t, path, "validar")
	require.NoError(t, err)
	assert.Contains(t, out, "8 nodos, 2 marcas, 5 productos")

	xmlPath := filepath.Join(t.TempDir(), "almacen.xml")
	_, err = run(t, path, "exportar", "-f", "xml", "-o", xmlPath)
	require.NoError(t, err)
	out, err = run(t, path, "validar", xmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ventas $6,896,900")

	roto := filepath.Join(t.TempDir(), "roto.txt")
	require.NoError(t, os.WriteFile(roto, []byte("Categoria;1;Raiz;2\nMarca;2;X;0\n"), 0o644))
	_, err = run(t, path, "validar", roto)
	assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
}

func TestReporte(t *testing.T) {
	path := catalogoTemporal(t)
	pdfPath := filepath.Join(t.TempDir(), "ventas.pdf")

	_, stderr, err := runConErrores(t, path, "reporte", "-o", pdfPath)
	require.NoError(t, err)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "Reporte escrito en "+pdfPath+"\n", stderr)
}

func TestReporte_SalidaEstandar(t *testing.T) {
	stdout, stderr, err := runConErrores(t, catalogoTemporal(t), "reporte", "-o", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "%PDF"))
	assert.Empty(t, stderr)
}

func TestArchivoInexistente(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "no.txt"), "ventas")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
