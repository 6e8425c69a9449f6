package dto

import (
	"github.com/shopspring/decimal"
)

// NodeResponse salida de un nodo del almacén. Children solo se llena en el árbol completo.
type NodeResponse struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Kind        string           `json:"kind" yaml:"kind"`
	SalesValue  decimal.Decimal  `json:"sales_value" yaml:"sales_value"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty" yaml:"unit_price,omitempty"`
	UnitsSold   *int             `json:"units_sold,omitempty" yaml:"units_sold,omitempty"`
	Children    []NodeResponse   `json:"children,omitempty" yaml:"children,omitempty"`
}

// NodeListResponse lista de nodos (productos, marcas, recorridos, búsquedas).
type NodeListResponse struct {
	Items []NodeResponse `json:"items"`
	Total int            `json:"total"`
}

// AddNodeRequest entrada para agregar un nodo. ID vacío genera un UUID.
// ParentID vacío agrega el nodo directamente bajo la raíz.
type AddNodeRequest struct {
	ParentID    string           `json:"parent_id" validate:"omitempty,max=100"`
	Kind        string           `json:"kind" validate:"required"`
	ID          string           `json:"id" validate:"omitempty,max=100,excludesall=;"`
	Name        string           `json:"name" validate:"required,min=1,max=200,excludesall=;"`
	Description string           `json:"description" validate:"max=500,excludesall=;"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	UnitsSold   int              `json:"units_sold" validate:"min=0"`
}

// SellRequest entrada para registrar ventas de un producto.
type SellRequest struct {
	Units int `json:"units" validate:"required,min=1"`
}

// SalesResponse valor de ventas agregado del catálogo.
type SalesResponse struct {
	RootID     string          `json:"root_id"`
	SalesValue decimal.Decimal `json:"sales_value"`
	Products   int             `json:"products"`
	Brands     int             `json:"brands"`
}

// LoginRequest credenciales del administrador.
type LoginRequest struct {
	User     string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
