package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// WriteCatalog serializa root con la gramática de GrammarVersion, de modo que
// Load(NewReaderSource(r)) reconstruye el mismo árbol.
func WriteCatalog(w io.Writer, root *Category) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s almacen v%d\n", commentPrefix, GrammarVersion); err != nil {
		return err
	}
	if err := writeNode(bw, root); err != nil {
		return err
	}
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n Node) error {
	var fields []string
	switch t := n.(type) {
	case *Category:
		fields = []string{KindCategory.String(), t.id, t.name, strconv.Itoa(len(t.children))}
	case *Brand:
		fields = []string{KindBrand.String(), t.id, t.name, strconv.Itoa(len(t.products))}
	case *Product:
		fields = []string{KindProduct.String(), t.id, t.name, t.description, t.unitPrice.String(), strconv.Itoa(t.unitsSold)}
	default:
		return fmt.Errorf("%w: nodo %T no soportado", domain.ErrMalformedCatalog, n)
	}
	for _, f := range fields {
		if strings.ContainsAny(f, fieldSep+"\r\n") {
			return fmt.Errorf("%w: el campo %q del nodo %s contiene '%s' o salto de línea", domain.ErrMalformedCatalog, f, n.ID(), fieldSep)
		}
	}
	if _, err := w.WriteString(strings.Join(fields, fieldSep) + "\n"); err != nil {
		return err
	}

	switch t := n.(type) {
	case *Category:
		for _, ch := range t.children {
			if err := writeNode(w, ch); err != nil {
				return err
			}
		}
	case *Brand:
		for _, p := range t.products {
			if err := writeNode(w, p); err != nil {
				return err
			}
		}
	}
	return nil
}
