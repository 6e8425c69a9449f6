package catalog

import (
	"context"

	domaincatalog "github.com/jhoicas/Almacen-api/internal/domain/catalog"
)

// SalesReportGenerator genera la representación PDF del reporte de ventas.
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, root *domaincatalog.Category) ([]byte, error)
}

// CatalogExporter exporta el árbol a un documento (XML) con su huella canónica.
type CatalogExporter interface {
	Export(root *domaincatalog.Category) ([]byte, error)
	Digest(doc []byte) (string, error)
}
