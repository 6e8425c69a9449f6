package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
)

// CatalogRepository define el puerto de persistencia del árbol del almacén (DIP).
// Load devuelve domain.ErrNotFound si no hay catálogo guardado.
type CatalogRepository interface {
	Load(ctx context.Context) (*catalog.Category, error)
	Save(ctx context.Context, root *catalog.Category) error
}
