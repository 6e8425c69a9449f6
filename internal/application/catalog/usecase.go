package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	domaincatalog "github.com/jhoicas/Almacen-api/internal/domain/catalog"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Config opciones del caso de uso.
type Config struct {
	// TraversalProducts política por defecto de preorden/posorden.
	TraversalProducts bool
}

// CatalogUseCase es el dueño del árbol del almacén. Serializa el acceso porque
// los adaptadores (HTTP) son concurrentes; el árbol en sí no lo es.
//
// Las mutaciones trabajan sobre una copia: clonar → mutar → guardar → publicar.
// Si la mutación o el guardado fallan, el árbol publicado no cambia.
type CatalogUseCase struct {
	mu       sync.RWMutex
	root     *domaincatalog.Category
	repo     repository.CatalogRepository
	report   SalesReportGenerator
	exporter CatalogExporter
	log      *logger.Logger
	cfg      Config
}

// NewCatalogUseCase construye el caso de uso sobre root. repo, report y exporter
// pueden ser nil (catálogo solo en memoria, sin reporte o sin exportación).
func NewCatalogUseCase(
	root *domaincatalog.Category,
	repo repository.CatalogRepository,
	report SalesReportGenerator,
	exporter CatalogExporter,
	log *logger.Logger,
	cfg Config,
) *CatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase{root: root, repo: repo, report: report, exporter: exporter, log: log, cfg: cfg}
}

// OpenCatalogUseCase carga el árbol desde repo y construye el caso de uso.
func OpenCatalogUseCase(
	ctx context.Context,
	repo repository.CatalogRepository,
	report SalesReportGenerator,
	exporter CatalogExporter,
	log *logger.Logger,
	cfg Config,
) (*CatalogUseCase, error) {
	root, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar catálogo: %w", err)
	}
	return NewCatalogUseCase(root, repo, report, exporter, log, cfg), nil
}

// Snapshot copia del árbol actual, para adaptadores que necesitan recorrerlo.
func (uc *CatalogUseCase) Snapshot() *domaincatalog.Category {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.root.Clone()
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// Tree árbol completo.
func (uc *CatalogUseCase) Tree() dto.NodeResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return toNodeResponse(uc.root, true)
}

// GetNode nodo con su subárbol; nil si no existe.
func (uc *CatalogUseCase) GetNode(id string) *dto.NodeResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	n := uc.root.FindNode(id)
	if n == nil {
		return nil
	}
	out := toNodeResponse(n, true)
	return &out
}

// GetParent padre directo de id; nil si id no existe o es la raíz.
func (uc *CatalogUseCase) GetParent(id string) *dto.NodeResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	n := uc.root.FindParent(id)
	if n == nil {
		return nil
	}
	out := toNodeResponse(n, false)
	return &out
}

// GetProduct producto por id; nil si no existe o no es un producto.
func (uc *CatalogUseCase) GetProduct(id string) *dto.NodeResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	p := uc.root.FindProduct(id)
	if p == nil {
		return nil
	}
	out := toNodeResponse(p, false)
	return &out
}

// Sales valor de ventas total y conteos.
func (uc *CatalogUseCase) Sales() dto.SalesResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return dto.SalesResponse{
		RootID:     uc.root.ID(),
		SalesValue: uc.root.SalesValue(),
		Products:   len(uc.root.Products()),
		Brands:     len(uc.root.Brands()),
	}
}

// Products todos los productos en orden de recorrido.
func (uc *CatalogUseCase) Products() dto.NodeListResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	ps := uc.root.Products()
	items := make([]domaincatalog.Node, 0, len(ps))
	for _, p := range ps {
		items = append(items, p)
	}
	return toNodeList(items)
}

// Brands todas las marcas en orden de recorrido.
func (uc *CatalogUseCase) Brands() dto.NodeListResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	bs := uc.root.Brands()
	items := make([]domaincatalog.Node, 0, len(bs))
	for _, b := range bs {
		items = append(items, b)
	}
	return toNodeList(items)
}

// Preorder recorrido en preorden. products nil usa la política configurada.
func (uc *CatalogUseCase) Preorder(products *bool) dto.NodeListResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return toNodeList(uc.root.Preorder(uc.traversal(products)))
}

// Postorder recorrido en posorden. products nil usa la política configurada.
func (uc *CatalogUseCase) Postorder(products *bool) dto.NodeListResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return toNodeList(uc.root.Postorder(uc.traversal(products)))
}

func (uc *CatalogUseCase) traversal(products *bool) domaincatalog.TraversalOption {
	include := uc.cfg.TraversalProducts
	if products != nil {
		include = *products
	}
	return domaincatalog.WithProducts(include)
}

// SearchPrefix nodos cuyo id empieza por prefix. kind vacío no filtra.
func (uc *CatalogUseCase) SearchPrefix(prefix, kind string) (dto.NodeListResponse, error) {
	var kinds []domaincatalog.Kind
	if kind != "" {
		k, err := domaincatalog.ParseKind(kind)
		if err != nil {
			return dto.NodeListResponse{}, err
		}
		kinds = append(kinds, k)
	}
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return toNodeList(domaincatalog.NewIndex(uc.root).WithPrefix(prefix, kinds...)), nil
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// AddNode agrega un nodo. Sin id se genera un UUID.
func (uc *CatalogUseCase) AddNode(ctx context.Context, in dto.AddNodeRequest) (*dto.NodeResponse, error) {
	kind, err := domaincatalog.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if in.UnitsSold < 0 {
		return nil, fmt.Errorf("%w: unidades vendidas negativas", domain.ErrInvalidInput)
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	opts := []domaincatalog.NodeOption{
		domaincatalog.WithDescription(in.Description),
		domaincatalog.WithUnitsSold(in.UnitsSold),
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		opts = append(opts, domaincatalog.WithUnitPrice(*in.UnitPrice))
	} else {
		opts = append(opts, domaincatalog.WithUnitPrice(decimal.Zero))
	}

	var out dto.NodeResponse
	err = uc.mutate(ctx, func(root *domaincatalog.Category) error {
		if err := root.AddNode(in.ParentID, kind, id, in.Name, opts...); err != nil {
			return err
		}
		out = toNodeResponse(root.FindNode(id), false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Str("kind", kind.String()).Str("parent_id", in.ParentID).Msg("nodo agregado")
	return &out, nil
}

// RemoveNode elimina el nodo y su subárbol. Devuelve nil, nil si no existe o es la raíz.
func (uc *CatalogUseCase) RemoveNode(ctx context.Context, id string) (*dto.NodeResponse, error) {
	var removed domaincatalog.Node
	err := uc.mutate(ctx, func(root *domaincatalog.Category) error {
		removed = root.RemoveNode(id)
		if removed == nil {
			return errNothingToDo
		}
		return nil
	})
	if errors.Is(err, errNothingToDo) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Str("kind", removed.Kind().String()).Msg("nodo eliminado")
	out := toNodeResponse(removed, true)
	return &out, nil
}

// Sell registra units ventas del producto id. domain.ErrNotFound si no es un producto.
func (uc *CatalogUseCase) Sell(ctx context.Context, id string, units int) (*dto.NodeResponse, error) {
	var out dto.NodeResponse
	err := uc.mutate(ctx, func(root *domaincatalog.Category) error {
		p := root.FindProduct(id)
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		if err := p.Sell(units); err != nil {
			return err
		}
		out = toNodeResponse(p, false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", id).Int("units", units).Msg("venta registrada")
	return &out, nil
}

// Reload vuelve a leer el catálogo del repositorio y lo publica.
func (uc *CatalogUseCase) Reload(ctx context.Context) error {
	if uc.repo == nil {
		return fmt.Errorf("%w: catálogo sin repositorio", domain.ErrInvalidInput)
	}
	root, err := uc.repo.Load(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("recargar catálogo")
		return err
	}
	uc.mu.Lock()
	uc.root = root
	uc.mu.Unlock()
	uc.log.Info().Str("root_id", root.ID()).Int("nodes", root.Count()).Msg("catálogo recargado")
	return nil
}

var errNothingToDo = errors.New("sin cambios")

func (uc *CatalogUseCase) mutate(ctx context.Context, fn func(root *domaincatalog.Category) error) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.root.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if uc.repo != nil {
		if err := uc.repo.Save(ctx, next); err != nil {
			uc.log.Error().Err(err).Msg("guardar catálogo")
			return fmt.Errorf("guardar catálogo: %w", err)
		}
	}
	uc.root = next
	return nil
}

// ── Documentos ────────────────────────────────────────────────────────────────

// SalesReport PDF con el reporte de ventas.
func (uc *CatalogUseCase) SalesReport(ctx context.Context) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("%w: generador de reportes no configurado", domain.ErrInvalidInput)
	}
	return uc.report.GenerateSalesReport(ctx, uc.Snapshot())
}

// Export documento XML del catálogo y su huella (SHA-256 de la forma canónica).
func (uc *CatalogUseCase) Export() ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("%w: exportador no configurado", domain.ErrInvalidInput)
	}
	doc, err := uc.exporter.Export(uc.Snapshot())
	if err != nil {
		return nil, "", err
	}
	digest, err := uc.exporter.Digest(doc)
	if err != nil {
		return nil, "", err
	}
	return doc, digest, nil
}
