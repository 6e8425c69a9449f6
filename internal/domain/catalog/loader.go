package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// GrammarVersion versión del formato de líneas que leen LoadCategory y WriteCatalog.
//
//	Categoria;<id>;<nombre>;<numHijos>
//	Marca;<id>;<nombre>;<numProductos>
//	Producto;<id>;<nombre>;<descripcion>;<precio>;<unidadesVendidas>
//
// Los hijos van a continuación de la línea del padre, en profundidad.
// Se ignoran las líneas vacías y las que empiezan por '#'.
const GrammarVersion = 1

const (
	fieldSep      = ";"
	commentPrefix = "#"
)

// LineSource entrega líneas de texto de una en una. Devuelve io.EOF al terminar.
type LineSource interface {
	ReadLine() (string, error)
}

// ReaderSource adapta un io.Reader a LineSource.
type ReaderSource struct {
	sc *bufio.Scanner
}

// NewReaderSource lee líneas de r (sin el salto de línea).
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{sc: bufio.NewScanner(r)}
}

func (s *ReaderSource) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SliceSource LineSource en memoria.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource recorre lines en orden.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

func (s *SliceSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// lineCursor posición explícita del cargador sobre la fuente.
type lineCursor struct {
	src  LineSource
	line int
}

// next devuelve la siguiente línea significativa.
func (c *lineCursor) next() (string, error) {
	for {
		raw, err := c.src.ReadLine()
		if err != nil {
			return "", err
		}
		c.line++
		line := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		return line, nil
	}
}

// Load lee la línea de la raíz y el resto del catálogo desde src. A diferencia
// de LoadCategory, src debe terminar con el subárbol de la raíz.
func Load(src LineSource) (*Category, error) {
	l := newLoader(src, 0)
	first, err := l.cur.next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: catálogo vacío", domain.ErrMalformedCatalog)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leer raíz: %v", domain.ErrMalformedCatalog, err)
	}
	root, err := l.root(first)
	if err != nil {
		return nil, err
	}
	// Todo el contenido debe pertenecer al subárbol de la raíz.
	if _, err := l.cur.next(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("%w: leer línea %d: %v", domain.ErrMalformedCatalog, l.cur.line+1, err)
		}
		return nil, l.fail("líneas sobrantes después del subárbol raíz")
	}
	return root, nil
}

// LoadCategory reconstruye una categoría a partir de su línea (firstLine) y de
// las líneas de sus descendientes en src. Consume exactamente las líneas del
// subárbol. Cualquier error de formato, conteo o id repetido se reporta como
// domain.ErrMalformedCatalog y no se devuelve ningún árbol parcial.
func LoadCategory(firstLine string, src LineSource) (*Category, error) {
	return newLoader(src, 1).root(firstLine)
}

func newLoader(src LineSource, line int) *loader {
	return &loader{cur: &lineCursor{src: src, line: line}, seen: make(map[string]struct{})}
}

type loader struct {
	cur  *lineCursor
	seen map[string]struct{}
}

// record línea ya interpretada.
type record struct {
	kind     Kind
	id       string
	name     string
	children int
	product  nodeData
}

func (l *loader) root(line string) (*Category, error) {
	rec, err := l.parse(strings.TrimPrefix(strings.TrimSpace(line), "\ufeff"))
	if err != nil {
		return nil, err
	}
	if rec.kind != KindCategory {
		return nil, l.fail("la raíz debe ser una categoría, se encontró %s", rec.kind)
	}
	return l.category(rec)
}

func (l *loader) fail(format string, args ...any) error {
	return fmt.Errorf("%w: línea %d: %s", domain.ErrMalformedCatalog, l.cur.line, fmt.Sprintf(format, args...))
}

func (l *loader) parse(line string) (record, error) {
	fields := strings.Split(line, fieldSep)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	kind, err := ParseKind(fields[0])
	if err != nil {
		return record{}, l.fail("tipo %q desconocido", fields[0])
	}
	rec := record{kind: kind}

	switch kind {
	case KindCategory, KindBrand:
		if len(fields) != 4 {
			return record{}, l.fail("%s espera 4 campos, tiene %d", kind, len(fields))
		}
		n, err := strconv.Atoi(fields[3])
		if err != nil || n < 0 {
			return record{}, l.fail("número de hijos inválido %q", fields[3])
		}
		rec.children = n
	case KindProduct:
		if len(fields) != 6 {
			return record{}, l.fail("Producto espera 6 campos, tiene %d", len(fields))
		}
		price, err := decimal.NewFromString(fields[4])
		if err != nil || price.IsNegative() {
			return record{}, l.fail("precio inválido %q", fields[4])
		}
		units, err := strconv.Atoi(fields[5])
		if err != nil || units < 0 {
			return record{}, l.fail("unidades vendidas inválidas %q", fields[5])
		}
		rec.product = nodeData{description: fields[3], unitPrice: price, unitsSold: units}
	}

	rec.id, rec.name = fields[1], fields[2]
	if rec.id == "" {
		return record{}, l.fail("identificador vacío")
	}
	if _, dup := l.seen[rec.id]; dup {
		return record{}, l.fail("identificador repetido %q", rec.id)
	}
	l.seen[rec.id] = struct{}{}
	return rec, nil
}

// child lee la siguiente línea esperada como hijo de parent.
func (l *loader) child(parent record, i int) (record, error) {
	line, err := l.cur.next()
	if errors.Is(err, io.EOF) {
		return record{}, l.fail("%s %s declara %d hijos pero solo hay %d", parent.kind, parent.id, parent.children, i)
	}
	if err != nil {
		return record{}, fmt.Errorf("%w: leer línea %d: %v", domain.ErrMalformedCatalog, l.cur.line+1, err)
	}
	return l.parse(line)
}

func (l *loader) category(rec record) (*Category, error) {
	cat := NewCategory(rec.id, rec.name)
	for i := 0; i < rec.children; i++ {
		ch, err := l.child(rec, i)
		if err != nil {
			return nil, err
		}
		switch ch.kind {
		case KindCategory:
			sub, err := l.category(ch)
			if err != nil {
				return nil, err
			}
			cat.attach(sub)
		case KindBrand:
			b, err := l.brand(ch)
			if err != nil {
				return nil, err
			}
			cat.attach(b)
		case KindProduct:
			cat.attach(NewProduct(ch.id, ch.name, ch.product.description, ch.product.unitPrice, ch.product.unitsSold))
		}
	}
	return cat, nil
}

func (l *loader) brand(rec record) (*Brand, error) {
	b := NewBrand(rec.id, rec.name)
	for i := 0; i < rec.children; i++ {
		ch, err := l.child(rec, i)
		if err != nil {
			return nil, err
		}
		if ch.kind != KindProduct {
			return nil, l.fail("la marca %s solo admite productos, se encontró %s", rec.id, ch.kind)
		}
		b.addProduct(NewProduct(ch.id, ch.name, ch.product.description, ch.product.unitPrice, ch.product.unitsSold))
	}
	return b, nil
}
