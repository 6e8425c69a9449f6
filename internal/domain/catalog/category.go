package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Category nodo interior que puede contener categorías, marcas y productos.
// También es la raíz del almacén.
type Category struct {
	base
	children []Node
}

// NewCategory crea una categoría sin hijos.
func NewCategory(id, name string) *Category {
	return &Category{base: base{id: id, name: name}}
}

func (c *Category) Kind() Kind { return KindCategory }

// Children copia de los hijos directos, en orden de inserción.
func (c *Category) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Category) String() string {
	return fmt.Sprintf("Categoria %s: %s (%d hijos)", c.id, c.name, len(c.children))
}

func (c *Category) Accept(v Visitor) {
	v.Enter(c)
	for _, ch := range c.children {
		ch.Accept(v)
	}
	v.Leave(c)
}

// ── Búsqueda ──────────────────────────────────────────────────────────────────

// FindNode busca en profundidad (primero la propia categoría) el nodo con id.
// Devuelve nil si no existe.
func (c *Category) FindNode(id string) Node {
	return findIn(c, id)
}

func findIn(n Node, id string) Node {
	if n.ID() == id {
		return n
	}
	switch t := n.(type) {
	case *Category:
		for _, ch := range t.children {
			if found := findIn(ch, id); found != nil {
				return found
			}
		}
	case *Brand:
		for _, p := range t.products {
			if p.id == id {
				return p
			}
		}
	}
	return nil
}

// FindProduct como FindNode pero solo acepta productos.
func (c *Category) FindProduct(id string) *Product {
	p, _ := c.FindNode(id).(*Product)
	return p
}

// FindParent devuelve el nodo cuyos hijos directos contienen id.
// La raíz no tiene padre: FindParent(c.ID()) es nil.
func (c *Category) FindParent(id string) Node {
	return parentIn(c, id)
}

func parentIn(n Node, id string) Node {
	switch t := n.(type) {
	case *Category:
		for _, ch := range t.children {
			if ch.ID() == id {
				return t
			}
		}
		for _, ch := range t.children {
			if found := parentIn(ch, id); found != nil {
				return found
			}
		}
	case *Brand:
		for _, p := range t.products {
			if p.id == id {
				return t
			}
		}
	}
	return nil
}

// ── Inserción ─────────────────────────────────────────────────────────────────

// NodeOption datos opcionales de un nodo nuevo (solo aplican a productos).
type NodeOption func(*nodeData)

type nodeData struct {
	description string
	unitPrice   decimal.Decimal
	unitsSold   int
}

// WithDescription descripción del producto.
func WithDescription(s string) NodeOption {
	return func(d *nodeData) { d.description = s }
}

// WithUnitPrice precio unitario del producto.
func WithUnitPrice(p decimal.Decimal) NodeOption {
	return func(d *nodeData) { d.unitPrice = p }
}

// WithUnitsSold unidades vendidas iniciales del producto.
func WithUnitsSold(n int) NodeOption {
	return func(d *nodeData) { d.unitsSold = n }
}

// AddNode crea un nodo de tipo kind y lo agrega al final de los hijos de parentID.
// parentID vacío significa la propia categoría.
//
// Errores:
//   - domain.ErrInvalidInput: id vacío o kind desconocido.
//   - domain.ErrDuplicateIdentifier: id ya existe en el árbol.
//   - domain.ErrParentNotFound: el padre no existe o no admite ese tipo de hijo.
//
// Si falla, el árbol no se modifica.
func (c *Category) AddNode(parentID string, kind Kind, id, name string, opts ...NodeOption) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: identificador vacío", domain.ErrInvalidInput)
	}
	if kind < KindCategory || kind > KindProduct {
		return fmt.Errorf("%w: tipo de nodo desconocido", domain.ErrInvalidInput)
	}
	if c.FindNode(id) != nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentifier, id)
	}

	var parent Node = c
	if parentID != "" {
		parent = c.FindNode(parentID)
	}
	if parent == nil {
		return fmt.Errorf("%w: %s", domain.ErrParentNotFound, parentID)
	}

	var data nodeData
	for _, opt := range opts {
		opt(&data)
	}

	switch p := parent.(type) {
	case *Category:
		p.children = append(p.children, newNode(kind, id, name, data))
		return nil
	case *Brand:
		if kind != KindProduct {
			return fmt.Errorf("%w: la marca %s solo admite productos", domain.ErrParentNotFound, p.id)
		}
		p.addProduct(NewProduct(id, name, data.description, data.unitPrice, data.unitsSold))
		return nil
	default:
		return fmt.Errorf("%w: %s es un producto", domain.ErrParentNotFound, parent.ID())
	}
}

func newNode(kind Kind, id, name string, data nodeData) Node {
	switch kind {
	case KindCategory:
		return NewCategory(id, name)
	case KindBrand:
		return NewBrand(id, name)
	default:
		return NewProduct(id, name, data.description, data.unitPrice, data.unitsSold)
	}
}

// attach agrega un subárbol ya construido. Lo usa el cargador, que valida los ids.
func (c *Category) attach(n Node) {
	c.children = append(c.children, n)
}

// ── Eliminación ───────────────────────────────────────────────────────────────

// RemoveNode desprende el nodo id junto con su subárbol y lo devuelve.
// Devuelve nil si id no existe o es la propia raíz.
func (c *Category) RemoveNode(id string) Node {
	switch p := c.FindParent(id).(type) {
	case *Category:
		for i, ch := range p.children {
			if ch.ID() == id {
				p.children = append(p.children[:i:i], p.children[i+1:]...)
				return ch
			}
		}
	case *Brand:
		if removed := p.removeProduct(id); removed != nil {
			return removed
		}
	}
	return nil
}

// ── Agregados ─────────────────────────────────────────────────────────────────

// SalesValue suma del valor de ventas de todos los productos del subárbol.
func (c *Category) SalesValue() decimal.Decimal {
	total := decimal.Zero
	for _, ch := range c.children {
		total = total.Add(ch.SalesValue())
	}
	return total
}

// Products todos los productos del subárbol en orden de recorrido.
func (c *Category) Products() []*Product {
	out := []*Product{}
	c.Accept(VisitorFuncs{OnEnter: func(n Node) {
		if p, ok := n.(*Product); ok {
			out = append(out, p)
		}
	}})
	return out
}

// Brands todas las marcas del subárbol en orden de recorrido.
func (c *Category) Brands() []*Brand {
	out := []*Brand{}
	c.Accept(VisitorFuncs{OnEnter: func(n Node) {
		if b, ok := n.(*Brand); ok {
			out = append(out, b)
		}
	}})
	return out
}

// Count número de nodos del subárbol, incluida la propia categoría.
func (c *Category) Count() int {
	n := 0
	c.Accept(VisitorFuncs{OnEnter: func(Node) { n++ }})
	return n
}

// ── Recorridos ────────────────────────────────────────────────────────────────

// TraversalOption ajusta la política de los recorridos.
type TraversalOption func(*traversal)

type traversal struct {
	products bool
}

// IncludeProducts incluye las hojas (productos) en el recorrido. Por defecto
// los recorridos solo devuelven categorías y marcas.
func IncludeProducts() TraversalOption {
	return func(t *traversal) { t.products = true }
}

// WithProducts como IncludeProducts pero condicionado a un flag.
func WithProducts(include bool) TraversalOption {
	return func(t *traversal) { t.products = include }
}

func (t traversal) keep(n Node) bool {
	return t.products || n.Kind() != KindProduct
}

// Preorder la categoría y luego, en orden, el preorden de cada hijo.
func (c *Category) Preorder(opts ...TraversalOption) []Node {
	t := newTraversal(opts)
	out := []Node{}
	c.Accept(VisitorFuncs{OnEnter: func(n Node) {
		if t.keep(n) {
			out = append(out, n)
		}
	}})
	return out
}

// Postorder el posorden de cada hijo, en orden, y al final la categoría.
func (c *Category) Postorder(opts ...TraversalOption) []Node {
	t := newTraversal(opts)
	out := []Node{}
	c.Accept(VisitorFuncs{OnLeave: func(n Node) {
		if t.keep(n) {
			out = append(out, n)
		}
	}})
	return out
}

func newTraversal(opts []TraversalOption) traversal {
	var t traversal
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Clone copia profunda del subárbol.
func (c *Category) Clone() *Category {
	out := &Category{base: c.base, children: make([]Node, 0, len(c.children))}
	for _, ch := range c.children {
		out.children = append(out.children, cloneNode(ch))
	}
	return out
}

func cloneNode(n Node) Node {
	switch t := n.(type) {
	case *Category:
		return t.Clone()
	case *Brand:
		return t.clone()
	case *Product:
		return t.clone()
	}
	return n
}
