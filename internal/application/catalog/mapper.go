package catalog

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	domaincatalog "github.com/jhoicas/Almacen-api/internal/domain/catalog"
)

// toNodeResponse convierte un nodo del dominio; deep incluye los descendientes.
func toNodeResponse(n domaincatalog.Node, deep bool) dto.NodeResponse {
	out := dto.NodeResponse{
		ID:         n.ID(),
		Name:       n.Name(),
		Kind:       n.Kind().String(),
		SalesValue: n.SalesValue(),
	}
	switch t := n.(type) {
	case *domaincatalog.Product:
		price := t.UnitPrice()
		units := t.UnitsSold()
		out.Description = t.Description()
		out.UnitPrice = &price
		out.UnitsSold = &units
	case *domaincatalog.Brand:
		if deep {
			for _, p := range t.Products() {
				out.Children = append(out.Children, toNodeResponse(p, true))
			}
		}
	case *domaincatalog.Category:
		if deep {
			for _, ch := range t.Children() {
				out.Children = append(out.Children, toNodeResponse(ch, true))
			}
		}
	}
	return out
}

func toNodeList(nodes []domaincatalog.Node) dto.NodeListResponse {
	items := make([]dto.NodeResponse, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, toNodeResponse(n, false))
	}
	return dto.NodeListResponse{Items: items, Total: len(items)}
}
