package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Errores del catálogo (árbol de categorías, marcas y productos).
	ErrDuplicateIdentifier = errors.New("el identificador ya existe en el catálogo")
	ErrParentNotFound      = errors.New("nodo padre no encontrado o incompatible")
	ErrMalformedCatalog    = errors.New("catálogo mal formado")
)
