package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Brand marca: nodo interior cuyos hijos son únicamente productos.
type Brand struct {
	base
	products []*Product
}

// NewBrand construye una marca sin productos.
func NewBrand(id, name string) *Brand {
	return &Brand{base: base{id: id, name: name}}
}

func (b *Brand) Kind() Kind { return KindBrand }

// Products copia de los productos de la marca, en orden de inserción.
func (b *Brand) Products() []*Product {
	out := make([]*Product, len(b.products))
	copy(out, b.products)
	return out
}

// SalesValue suma del valor de ventas de sus productos.
func (b *Brand) SalesValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.products {
		total = total.Add(p.SalesValue())
	}
	return total
}

func (b *Brand) String() string {
	return fmt.Sprintf("Marca %s: %s (%d productos)", b.id, b.name, len(b.products))
}

func (b *Brand) Accept(v Visitor) {
	v.Enter(b)
	for _, p := range b.products {
		p.Accept(v)
	}
	v.Leave(b)
}

func (b *Brand) addProduct(p *Product) {
	b.products = append(b.products, p)
}

func (b *Brand) removeProduct(id string) *Product {
	for i, p := range b.products {
		if p.id == id {
			b.products = append(b.products[:i:i], b.products[i+1:]...)
			return p
		}
	}
	return nil
}

func (b *Brand) clone() *Brand {
	c := &Brand{base: b.base, products: make([]*Product, 0, len(b.products))}
	for _, p := range b.products {
		c.products = append(c.products, p.clone())
	}
	return c
}
