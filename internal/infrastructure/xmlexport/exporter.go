// Package xmlexport serializa el árbol del almacén a XML y calcula su huella
// sobre la forma canónica (C14N) del elemento raíz.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	appcatalog "github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
)

var _ appcatalog.CatalogExporter = (*Exporter)(nil)

// Nombres de elementos y atributos del documento.
const (
	elemRoot     = "almacen"
	elemCategory = "categoria"
	elemBrand    = "marca"
	elemProduct  = "producto"
	elemDesc     = "descripcion"

	attrVersion = "version"
	attrID      = "id"
	attrName    = "nombre"
	attrPrice   = "precio"
	attrUnits   = "unidades"
	attrSales   = "ventas"
)

// Exporter implementa catalog.CatalogExporter con etree.
type Exporter struct {
	indent int
}

// NewExporter construye el exportador. indent son los espacios de sangría (0 = una línea).
func NewExporter(indent int) *Exporter {
	return &Exporter{indent: indent}
}

// Export documento XML del árbol completo.
func (e *Exporter) Export(root *catalog.Category) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	top := doc.CreateElement(elemRoot)
	top.CreateAttr(attrVersion, strconv.Itoa(catalog.GrammarVersion))
	appendNode(top, root)
	if e.indent > 0 {
		doc.Indent(e.indent)
	}
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

func appendNode(parent *etree.Element, n catalog.Node) {
	var el *etree.Element
	switch t := n.(type) {
	case *catalog.Category:
		el = parent.CreateElement(elemCategory)
		setIdentity(el, n)
		for _, ch := range t.Children() {
			appendNode(el, ch)
		}
	case *catalog.Brand:
		el = parent.CreateElement(elemBrand)
		setIdentity(el, n)
		for _, p := range t.Products() {
			appendNode(el, p)
		}
	case *catalog.Product:
		el = parent.CreateElement(elemProduct)
		setIdentity(el, n)
		el.CreateAttr(attrPrice, t.UnitPrice().String())
		el.CreateAttr(attrUnits, strconv.Itoa(t.UnitsSold()))
		if t.Description() != "" {
			el.CreateElement(elemDesc).SetText(t.Description())
		}
	}
}

func setIdentity(el *etree.Element, n catalog.Node) {
	el.CreateAttr(attrID, n.ID())
	el.CreateAttr(attrName, n.Name())
	el.CreateAttr(attrSales, n.SalesValue().String())
}

// Digest SHA-256 (hex) de la forma canónica de doc.
func (e *Exporter) Digest(doc []byte) (string, error) {
	canonical, err := canonicalizeXML(doc)
	if err != nil {
		return "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	raw := xml.NewDecoder(bytes.NewReader(data))
	raw.Entity = map[string]string{}
	return c14n.Canonicalize(xml.NewTokenDecoder(&rootOnly{dec: raw}))
}

// rootOnly descarta lo que queda fuera del elemento raíz (declaración XML,
// comentarios y espacios del prólogo).
type rootOnly struct {
	dec   *xml.Decoder
	depth int
}

func (r *rootOnly) Token() (xml.Token, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement:
			r.depth++
			return tok, nil
		case xml.EndElement:
			r.depth--
			return tok, nil
		}
		if r.depth > 0 {
			return xml.CopyToken(tok), nil
		}
	}
}

// Parse reconstruye el árbol desde un documento producido por Export. Los
// atributos de ventas se ignoran: se recalculan a partir de los productos.
func Parse(data []byte) (*catalog.Category, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: xml: %v", domain.ErrMalformedCatalog, err)
	}
	top := doc.SelectElement(elemRoot)
	if top == nil {
		return nil, fmt.Errorf("%w: falta el elemento <%s>", domain.ErrMalformedCatalog, elemRoot)
	}
	if v := top.SelectAttrValue(attrVersion, ""); v != strconv.Itoa(catalog.GrammarVersion) {
		return nil, fmt.Errorf("%w: versión %q no soportada", domain.ErrMalformedCatalog, v)
	}
	children := top.ChildElements()
	if len(children) != 1 || children[0].Tag != elemCategory {
		return nil, fmt.Errorf("%w: <%s> debe contener una sola <%s> raíz", domain.ErrMalformedCatalog, elemRoot, elemCategory)
	}
	rootEl := children[0]
	root := catalog.NewCategory(rootEl.SelectAttrValue(attrID, ""), rootEl.SelectAttrValue(attrName, ""))
	if root.ID() == "" {
		return nil, fmt.Errorf("%w: la raíz no tiene id", domain.ErrMalformedCatalog)
	}
	if err := parseChildren(root, rootEl); err != nil {
		return nil, err
	}
	return root, nil
}

func parseChildren(root *catalog.Category, parent *etree.Element) error {
	parentID := parent.SelectAttrValue(attrID, "")
	for _, el := range parent.ChildElements() {
		if el.Tag == elemDesc {
			continue
		}
		kind, ok := kindOf(el.Tag)
		if !ok {
			return fmt.Errorf("%w: elemento <%s> desconocido", domain.ErrMalformedCatalog, el.Tag)
		}
		id := el.SelectAttrValue(attrID, "")
		opts, err := productOptions(el, kind)
		if err != nil {
			return err
		}
		if err := root.AddNode(parentID, kind, id, el.SelectAttrValue(attrName, ""), opts...); err != nil {
			return fmt.Errorf("%w: <%s id=%q>: %v", domain.ErrMalformedCatalog, el.Tag, id, err)
		}
		if kind != catalog.KindProduct {
			if err := parseChildren(root, el); err != nil {
				return err
			}
		}
	}
	return nil
}

func kindOf(tag string) (catalog.Kind, bool) {
	switch tag {
	case elemCategory:
		return catalog.KindCategory, true
	case elemBrand:
		return catalog.KindBrand, true
	case elemProduct:
		return catalog.KindProduct, true
	}
	return 0, false
}

func productOptions(el *etree.Element, kind catalog.Kind) ([]catalog.NodeOption, error) {
	if kind != catalog.KindProduct {
		return nil, nil
	}
	price, err := decimal.NewFromString(el.SelectAttrValue(attrPrice, "0"))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: precio inválido en producto %s", domain.ErrMalformedCatalog, el.SelectAttrValue(attrID, ""))
	}
	units, err := strconv.Atoi(el.SelectAttrValue(attrUnits, "0"))
	if err != nil || units < 0 {
		return nil, fmt.Errorf("%w: unidades inválidas en producto %s", domain.ErrMalformedCatalog, el.SelectAttrValue(attrID, ""))
	}
	opts := []catalog.NodeOption{catalog.WithUnitPrice(price), catalog.WithUnitsSold(units)}
	if d := el.SelectElement(elemDesc); d != nil {
		opts = append(opts, catalog.WithDescription(d.Text()))
	}
	return opts, nil
}
