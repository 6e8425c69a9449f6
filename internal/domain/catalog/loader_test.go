package catalog_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
)

func cargar(t *testing.T, texto string) (*catalog.Category, error) {
	t.Helper()
	return catalog.Load(catalog.NewReaderSource(strings.NewReader(dedent.Dedent(texto))))
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga correcta
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_ArbolAnidado(t *testing.T) {
	cat, err := cargar(t, `
		Categoria;1;Electrodomesticos;3
		  Categoria;11;Televisores;1
		    Marca;111;SAMSUNG;1
		      Producto;1111;LED 55;UHD;1898900;1
		  Categoria;12;Cocina;2
		    Producto;121;Licuadora;Oster 600W;199900.50;2
		    Marca;122;Haceb;0
		  Producto;13;Garantia extendida;;50000;3
	`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Electrodomesticos", "Televisores", "SAMSUNG", "Cocina", "Haceb"},
		nombres(cat.Preorder()))
	assert.Equal(t, []string{"SAMSUNG", "Televisores", "Haceb", "Cocina", "Electrodomesticos"},
		nombres(cat.Postorder()))

	p := cat.FindProduct("121")
	require.NotNil(t, p)
	assert.Equal(t, "Oster 600W", p.Description())
	assert.True(t, decimal.RequireFromString("199900.5").Equal(p.UnitPrice()))
	assert.Equal(t, "", cat.FindProduct("13").Description())

	esperado := decimal.RequireFromString("1898900").
		Add(decimal.RequireFromString("399801")).
		Add(decimal.NewFromInt(150000))
	assert.True(t, esperado.Equal(cat.SalesValue()))
}

func TestLoadCategory_ConsumeSoloSuSubarbol(t *testing.T) {
	src := catalog.NewSliceSource([]string{
		"Marca;21;LG;1",
		"Producto;211;OLED;;100;1",
		"Categoria;3;Siguiente;0",
	})

	cat, err := catalog.LoadCategory("Categoria;2;Audio y video;1", src)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Count())

	// La línea del hermano sigue disponible para el llamador.
	next, err := src.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "Categoria;3;Siguiente;0", next)
	_, err = src.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLoad_AceptaTildesComentariosYLineasVacias(t *testing.T) {
	cat, err := cargar(t, `
		# almacen v1

		Categoría;1;Hogar;1
		# una marca
		MARCA;2;Imusa;1
		producto ; 3 ; Olla ; Aluminio ; 35000 ; 4
	`)
	require.NoError(t, err)
	p := cat.FindProduct("3")
	require.NotNil(t, p)
	assert.Equal(t, "Olla", p.Name())
	assert.Equal(t, 4, p.UnitsSold())
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos mal formados
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_Malformado(t *testing.T) {
	casos := []struct {
		nombre string
		texto  string
		msg    string
	}{
		{"vacío", "\n# nada\n", "vacío"},
		{"raíz no es categoría", "Marca;1;LG;0", "raíz"},
		{"tipo desconocido", "Categoria;1;X;1\nBodega;2;Y;0", "línea 2"},
		{"faltan hijos", "Categoria;1;X;2\nCategoria;2;Y;0", "declara 2 hijos"},
		{"marca con categoría", "Categoria;1;X;1\nMarca;2;LG;1\nCategoria;3;Z;0", "solo admite productos"},
		{"conteo no numérico", "Categoria;1;X;dos", "número de hijos"},
		{"conteo negativo", "Categoria;1;X;-1", "número de hijos"},
		{"campos de más", "Categoria;1;X;0;extra", "4 campos"},
		{"producto sin precio", "Categoria;1;X;1\nProducto;2;TV;desc;;1", "precio"},
		{"precio negativo", "Categoria;1;X;1\nProducto;2;TV;desc;-5;1", "precio"},
		{"unidades inválidas", "Categoria;1;X;1\nProducto;2;TV;desc;10;uno", "unidades"},
		{"id vacío", "Categoria;;X;0", "identificador vacío"},
		{"id repetido", "Categoria;1;X;1\nMarca;1;LG;0", "repetido"},
		{"líneas sobrantes", "Categoria;1;X;1\nMarca;2;SAMSUNG;0\nMarca;3;LG;1\nProducto;4;OLED;;100;1", "línea 3: líneas sobrantes"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			cat, err := cargar(t, c.texto)
			require.Error(t, err)
			assert.Nil(t, cat, "no se debe devolver un árbol parcial")
			assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

type fuenteRota struct{ n int }

func (f *fuenteRota) ReadLine() (string, error) {
	if f.n == 0 {
		f.n++
		return "Marca;2;LG;0", nil
	}
	return "", errors.New("disco desconectado")
}

func TestLoadCategory_ErrorDeLectura(t *testing.T) {
	_, err := catalog.LoadCategory("Categoria;1;X;2", &fuenteRota{})
	assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
	assert.Contains(t, err.Error(), "disco desconectado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escritura e ida y vuelta
// ──────────────────────────────────────────────────────────────────────────────

func TestWriteCatalog_IdaYVuelta(t *testing.T) {
	original := categoriaConHijos(t)
	require.NoError(t, original.AddNode("", catalog.KindCategory, "113", "Accesorios"))
	require.NoError(t, original.AddNode("113", catalog.KindProduct, "1131", "Soporte de pared",
		catalog.WithUnitPrice(decimal.RequireFromString("89900.9")), catalog.WithUnitsSold(3)))

	var buf bytes.Buffer
	require.NoError(t, catalog.WriteCatalog(&buf, original))
	assert.True(t, strings.HasPrefix(buf.String(), "# almacen v1\nCategoria;111;Televisores;3\n"))

	recargado, err := catalog.Load(catalog.NewReaderSource(&buf))
	require.NoError(t, err)

	assert.Equal(t, ids(original.Preorder(catalog.IncludeProducts())), ids(recargado.Preorder(catalog.IncludeProducts())))
	assert.Equal(t, nombres(original.Postorder()), nombres(recargado.Postorder()))
	assert.True(t, original.SalesValue().Equal(recargado.SalesValue()))
	assert.Equal(t, "Pantalla curva 4K", recargado.FindProduct("31759942").Description())
}

func TestWriteCatalog_RechazaSeparadorEnCampos(t *testing.T) {
	cat := catalog.NewCategory("1", "Audio; video")
	var buf bytes.Buffer
	err := catalog.WriteCatalog(&buf, cat)
	assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
}

func ids(nodes []catalog.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Índice por prefijo
// ──────────────────────────────────────────────────────────────────────────────

func TestIndex_BusquedaPorPrefijo(t *testing.T) {
	idx := catalog.NewIndex(categoriaConHijos(t))
	assert.Equal(t, 8, idx.Len())

	n, ok := idx.Lookup("1112")
	require.True(t, ok)
	assert.Equal(t, "LG", n.Name())

	_, ok = idx.Lookup("999")
	assert.False(t, ok)

	assert.Equal(t, []string{"111", "1111", "1112"}, ids(idx.WithPrefix("111")))
	assert.Equal(t, []string{"31759950", "31759951"}, ids(idx.WithPrefix("3175995", catalog.KindProduct)))
	assert.Empty(t, idx.WithPrefix("3175", catalog.KindBrand))
}
