package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL.
// Cada fila de catalog_nodes es un nodo; position conserva el preorden
// (productos incluidos) para reconstruir el orden de los hijos.
type CatalogRepo struct {
	pool   *pgxpool.Pool
	tx     *TxRunner
	rootID string
}

// NewCatalogRepository construye el adaptador para el árbol cuya raíz es rootID.
func NewCatalogRepository(pool *pgxpool.Pool, rootID string) *CatalogRepo {
	return &CatalogRepo{pool: pool, tx: NewTxRunner(pool), rootID: rootID}
}

// nodeRow fila de catalog_nodes.
type nodeRow struct {
	ID          string
	ParentID    *string
	Kind        catalog.Kind
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	UnitsSold   int
	Position    int
}

var nodeColumns = []string{
	"root_id", "id", "parent_id", "kind", "name", "description", "unit_price", "units_sold", "position",
}

// Load lee el árbol completo. domain.ErrNotFound si no hay filas para la raíz.
func (r *CatalogRepo) Load(ctx context.Context) (*catalog.Category, error) {
	query := `
		SELECT id, parent_id, kind, name, description, unit_price, units_sold, position
		FROM catalog_nodes WHERE root_id = $1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, r.rootID)
	if err != nil {
		return nil, fmt.Errorf("list catalog nodes: %w", err)
	}
	defer rows.Close()

	var list []nodeRow
	for rows.Next() {
		var n nodeRow
		var kind int16
		if err := rows.Scan(&n.ID, &n.ParentID, &kind, &n.Name, &n.Description, &n.UnitPrice, &n.UnitsSold, &n.Position); err != nil {
			return nil, fmt.Errorf("scan catalog node: %w", err)
		}
		n.Kind = catalog.Kind(kind)
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalog nodes: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: catálogo %s", domain.ErrNotFound, r.rootID)
	}
	return buildTree(list)
}

// Save reemplaza todas las filas de la raíz en una sola transacción.
func (r *CatalogRepo) Save(ctx context.Context, root *catalog.Category) error {
	if root.ID() != r.rootID {
		return fmt.Errorf("%w: la raíz %s no corresponde al catálogo %s", domain.ErrInvalidInput, root.ID(), r.rootID)
	}
	list := flatten(root)
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_nodes WHERE root_id = $1`, r.rootID); err != nil {
			return fmt.Errorf("delete catalog nodes: %w", err)
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_nodes"}, nodeColumns,
			pgx.CopyFromSlice(len(list), func(i int) ([]any, error) {
				n := list[i]
				return []any{r.rootID, n.ID, n.ParentID, int16(n.Kind), n.Name, n.Description, n.UnitPrice, n.UnitsSold, n.Position}, nil
			}))
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", domain.ErrDuplicateIdentifier, err)
			}
			return fmt.Errorf("insert catalog nodes: %w", err)
		}
		return nil
	})
}

// flatten filas del árbol en preorden, con el padre de cada nodo.
func flatten(root *catalog.Category) []nodeRow {
	var out []nodeRow
	var stack []string
	root.Accept(catalog.VisitorFuncs{
		OnEnter: func(n catalog.Node) {
			row := nodeRow{ID: n.ID(), Kind: n.Kind(), Name: n.Name(), UnitPrice: decimal.Zero, Position: len(out)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				row.ParentID = &parent
			}
			if p, ok := n.(*catalog.Product); ok {
				row.Description = p.Description()
				row.UnitPrice = p.UnitPrice()
				row.UnitsSold = p.UnitsSold()
			}
			out = append(out, row)
			stack = append(stack, n.ID())
		},
		OnLeave: func(catalog.Node) { stack = stack[:len(stack)-1] },
	})
	return out
}

// buildTree reconstruye el árbol desde filas en preorden. La primera fila es la
// raíz; el resto pasa por AddNode, que valida tipos, padres y duplicados.
func buildTree(list []nodeRow) (*catalog.Category, error) {
	first := list[0]
	if first.Kind != catalog.KindCategory || first.ParentID != nil {
		return nil, fmt.Errorf("%w: la primera fila (%s) no es una categoría raíz", domain.ErrMalformedCatalog, first.ID)
	}
	root := catalog.NewCategory(first.ID, first.Name)
	for _, n := range list[1:] {
		if n.ParentID == nil {
			return nil, fmt.Errorf("%w: el nodo %s no tiene padre", domain.ErrMalformedCatalog, n.ID)
		}
		err := root.AddNode(*n.ParentID, n.Kind, n.ID, n.Name,
			catalog.WithDescription(n.Description),
			catalog.WithUnitPrice(n.UnitPrice),
			catalog.WithUnitsSold(n.UnitsSold),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrMalformedCatalog, n.Position, err)
		}
	}
	return root, nil
}
