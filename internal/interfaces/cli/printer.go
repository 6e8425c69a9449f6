package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// money valor en pesos con separador de miles: 6896900 → "$6,896,900".
func money(d decimal.Decimal) string {
	return "$" + humanize.Comma(d.Round(0).IntPart())
}

// label línea de un nodo: "Marca 1111: SAMSUNG ($4,397,900)".
func label(n dto.NodeResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", n.Kind, n.ID, n.Name)
	if n.UnitPrice != nil && n.UnitsSold != nil {
		fmt.Fprintf(&b, " [%s x %s]", money(*n.UnitPrice), humanize.Comma(int64(*n.UnitsSold)))
	}
	fmt.Fprintf(&b, " (%s)", money(n.SalesValue))
	return b.String()
}

// printTree dibuja el árbol con ramas.
func printTree(w io.Writer, tree dto.NodeResponse) error {
	root := gtree.NewRoot(label(tree))
	addChildren(root, tree.Children)
	return gtree.OutputFromRoot(w, root)
}

func addChildren(parent *gtree.Node, children []dto.NodeResponse) {
	for _, ch := range children {
		addChildren(parent.Add(label(ch)), ch.Children)
	}
}

// printList una línea por nodo y el total al final.
func printList(w io.Writer, list dto.NodeListResponse) {
	for _, n := range list.Items {
		fmt.Fprintln(w, label(n))
	}
	fmt.Fprintf(w, "%s nodos\n", humanize.Comma(int64(list.Total)))
}
