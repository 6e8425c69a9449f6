package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Product hoja del árbol: precio unitario y unidades vendidas.
// El valor de ventas se calcula, nunca se almacena.
type Product struct {
	base
	description string
	unitPrice   decimal.Decimal
	unitsSold   int
}

// NewProduct construye un producto. unitsSold negativo se normaliza a 0.
func NewProduct(id, name, description string, unitPrice decimal.Decimal, unitsSold int) *Product {
	if unitsSold < 0 {
		unitsSold = 0
	}
	return &Product{
		base:        base{id: id, name: name},
		description: description,
		unitPrice:   unitPrice,
		unitsSold:   unitsSold,
	}
}

func (p *Product) Kind() Kind                 { return KindProduct }
func (p *Product) Description() string        { return p.description }
func (p *Product) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p *Product) UnitsSold() int             { return p.unitsSold }

// SalesValue precio unitario × unidades vendidas.
func (p *Product) SalesValue() decimal.Decimal {
	return p.unitPrice.Mul(decimal.NewFromInt(int64(p.unitsSold)))
}

// Sell registra la venta de units unidades.
func (p *Product) Sell(units int) error {
	if units <= 0 {
		return fmt.Errorf("%w: unidades a vender debe ser positivo", domain.ErrInvalidInput)
	}
	p.unitsSold += units
	return nil
}

func (p *Product) String() string {
	return fmt.Sprintf("Producto %s: %s ($%s x %d)", p.id, p.name, p.unitPrice.String(), p.unitsSold)
}

func (p *Product) Accept(v Visitor) {
	v.Enter(p)
	v.Leave(p)
}

func (p *Product) clone() *Product {
	c := *p
	return &c
}
