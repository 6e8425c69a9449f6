// Package catalog modela el almacén como un árbol n-ario de categorías,
// marcas y productos.
//
// Reglas del árbol:
//   - Una Category puede contener categorías, marcas y productos en cualquier orden.
//   - Una Brand solo contiene productos.
//   - Un Product es una hoja.
//   - Los identificadores son únicos en todo el árbol.
//
// Los hijos no guardan referencia a su padre; la relación se recalcula con
// Category.FindParent.
package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Kind tipo de nodo del almacén.
type Kind int

const (
	KindCategory Kind = iota + 1
	KindBrand
	KindProduct
)

// String devuelve la etiqueta usada en el archivo de catálogo.
func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "Categoria"
	case KindBrand:
		return "Marca"
	case KindProduct:
		return "Producto"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind interpreta la etiqueta de un tipo de nodo. Ignora mayúsculas y
// tildes ("Categoría" == "categoria") y acepta también los nombres en inglés.
func ParseKind(s string) (Kind, error) {
	switch foldLabel(s) {
	case "categoria", "category":
		return KindCategory, nil
	case "marca", "brand":
		return KindBrand, nil
	case "producto", "product":
		return KindProduct, nil
	}
	return 0, fmt.Errorf("%w: tipo de nodo desconocido %q", domain.ErrInvalidInput, s)
}

// foldLabel normaliza a minúsculas sin marcas diacríticas.
func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Node capacidades comunes de todo elemento del almacén.
type Node interface {
	ID() string
	Name() string
	Kind() Kind
	// SalesValue valor de ventas acumulado del subárbol.
	SalesValue() decimal.Decimal
	// String describe el nodo en una línea.
	String() string
	// Accept recorre el subárbol: Enter antes de los hijos, Leave después.
	Accept(v Visitor)
}

// Visitor recibe los nodos de un recorrido en profundidad.
type Visitor interface {
	Enter(n Node)
	Leave(n Node)
}

// VisitorFuncs adapta funciones sueltas a Visitor. Cualquiera puede ser nil.
type VisitorFuncs struct {
	OnEnter func(Node)
	OnLeave func(Node)
}

func (f VisitorFuncs) Enter(n Node) {
	if f.OnEnter != nil {
		f.OnEnter(n)
	}
}

func (f VisitorFuncs) Leave(n Node) {
	if f.OnLeave != nil {
		f.OnLeave(n)
	}
}

// base campos de identidad compartidos por los tres tipos.
type base struct {
	id   string
	name string
}

func (b base) ID() string   { return b.id }
func (b base) Name() string { return b.name }
