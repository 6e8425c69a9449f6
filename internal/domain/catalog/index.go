package catalog

import (
	"github.com/armon/go-radix"
)

// Index índice de solo lectura id → nodo sobre un árbol radix.
// Es una foto del árbol: después de mutar el catálogo hay que reconstruirlo.
type Index struct {
	tree *radix.Tree
}

// NewIndex indexa todos los nodos de root, incluida la raíz.
func NewIndex(root *Category) *Index {
	idx := &Index{tree: radix.New()}
	root.Accept(VisitorFuncs{OnEnter: func(n Node) {
		idx.tree.Insert(n.ID(), n)
	}})
	return idx
}

// Len número de nodos indexados.
func (idx *Index) Len() int { return idx.tree.Len() }

// Lookup búsqueda exacta por id.
func (idx *Index) Lookup(id string) (Node, bool) {
	v, ok := idx.tree.Get(id)
	if !ok {
		return nil, false
	}
	return v.(Node), true
}

// WithPrefix nodos cuyo id empieza por prefix, en orden lexicográfico de id.
// Si kinds no está vacío, solo se devuelven nodos de esos tipos.
func (idx *Index) WithPrefix(prefix string, kinds ...Kind) []Node {
	out := []Node{}
	idx.tree.WalkPrefix(prefix, func(_ string, v interface{}) bool {
		n := v.(Node)
		if matchesKind(n, kinds) {
			out = append(out, n)
		}
		return false
	})
	return out
}

func matchesKind(n Node, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if n.Kind() == k {
			return true
		}
	}
	return false
}
