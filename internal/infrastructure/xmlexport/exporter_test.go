package xmlexport_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xmlexport"
)

func televisores(t *testing.T) *catalog.Category {
	t.Helper()
	root := catalog.NewCategory("111", "Televisores")
	require.NoError(t, root.AddNode("", catalog.KindBrand, "1111", "SAMSUNG"))
	require.NoError(t, root.AddNode("1111", catalog.KindProduct, "31759940", `LED 55"`, catalog.WithDescription("UHD & Smart"),
		catalog.WithUnitPrice(decimal.NewFromInt(1898900)), catalog.WithUnitsSold(1)))
	require.NoError(t, root.AddNode("", catalog.KindCategory, "112", "Accesorios"))
	require.NoError(t, root.AddNode("112", catalog.KindProduct, "500", "Soporte",
		catalog.WithUnitPrice(decimal.RequireFromString("89900.50")), catalog.WithUnitsSold(2)))
	return root
}

func TestExport_Estructura(t *testing.T) {
	doc, err := xmlexport.NewExporter(2).Export(televisores(t))
	require.NoError(t, err)
	s := string(doc)

	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `<almacen version="1">`)
	assert.Contains(t, s, `<categoria id="111" nombre="Televisores" ventas="2078701">`)
	assert.Contains(t, s, `<marca id="1111" nombre="SAMSUNG" ventas="1898900">`)
	assert.Contains(t, s, `<descripcion>UHD &amp; Smart</descripcion>`)
}

func TestParse_IdaYVuelta(t *testing.T) {
	orig := televisores(t)
	doc, err := xmlexport.NewExporter(0).Export(orig)
	require.NoError(t, err)

	got, err := xmlexport.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "Televisores", got.Name())
	assert.True(t, orig.SalesValue().Equal(got.SalesValue()))
	assert.Equal(t, orig.Count(), got.Count())

	p := got.FindProduct("31759940")
	require.NotNil(t, p)
	assert.Equal(t, `LED 55"`, p.Name())
	assert.Equal(t, "UHD & Smart", p.Description())
	assert.Equal(t, "112", got.FindParent("500").ID())
}

func TestDigest_EstableYSensibleAlContenido(t *testing.T) {
	e := xmlexport.NewExporter(0)
	root := televisores(t)

	a, err := e.Export(root)
	require.NoError(t, err)
	b, err := e.Export(root.Clone())
	require.NoError(t, err)

	da, err := e.Digest(a)
	require.NoError(t, err)
	db, err := e.Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 64)

	require.NoError(t, root.FindProduct("500").Sell(1))
	c, err := e.Export(root)
	require.NoError(t, err)
	dc, err := e.Digest(c)
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)
}

func TestDigest_OrdenDeAtributosNoImporta(t *testing.T) {
	e := xmlexport.NewExporter(0)
	d1, err := e.Digest([]byte(`<?xml version="1.0"?><almacen version="1"><categoria id="1" nombre="A"/></almacen>`))
	require.NoError(t, err)
	d2, err := e.Digest([]byte(`<almacen version="1"><categoria nombre="A" id="1"></categoria></almacen>`))
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestParse_DocumentosInvalidos(t *testing.T) {
	cases := map[string]string{
		"xml roto":             `<almacen`,
		"sin almacen":          `<otro/>`,
		"versión":              `<almacen version="9"><categoria id="1" nombre="A"/></almacen>`,
		"sin raíz":             `<almacen version="1"></almacen>`,
		"raíz sin id":          `<almacen version="1"><categoria nombre="A"/></almacen>`,
		"marca con marca":      `<almacen version="1"><categoria id="1" nombre="A"><marca id="2" nombre="B"><marca id="3" nombre="C"/></marca></categoria></almacen>`,
		"precio inválido":      `<almacen version="1"><categoria id="1" nombre="A"><producto id="2" nombre="B" precio="x"/></categoria></almacen>`,
		"id repetido":          `<almacen version="1"><categoria id="1" nombre="A"><marca id="1" nombre="B"/></categoria></almacen>`,
		"elemento desconocido": `<almacen version="1"><categoria id="1" nombre="A"><Marca id="2" nombre="B"><producto id="3" nombre="C" precio="10" unidades="1"/></Marca></categoria></almacen>`,
		"desconocido en marca": `<almacen version="1"><categoria id="1" nombre="A"><marca id="2" nombre="B"><item id="3"/></marca></categoria></almacen>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := xmlexport.Parse([]byte(doc))
			assert.ErrorIs(t, err, domain.ErrMalformedCatalog)
		})
	}
}
