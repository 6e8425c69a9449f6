package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// Codificaciones soportadas del archivo de líneas.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

// CatalogRepo implementación del puerto CatalogRepository sobre un archivo de líneas.
type CatalogRepo struct {
	path string
	enc  encoding.Encoding
}

// NewCatalogRepository construye el adaptador para path con la codificación indicada
// (utf-8 o iso-8859-1; vacío equivale a utf-8).
func NewCatalogRepository(path, enc string) (*CatalogRepo, error) {
	e, err := ParseEncoding(enc)
	if err != nil {
		return nil, err
	}
	return &CatalogRepo{path: path, enc: e}, nil
}

// ParseEncoding resuelve el nombre de una codificación soportada.
func ParseEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.UTF8, nil
	case EncodingLatin1, "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: codificación no soportada %q", domain.ErrInvalidInput, name)
	}
}

// Path ruta del archivo.
func (r *CatalogRepo) Path() string { return r.path }

// Load lee el árbol completo. domain.ErrNotFound si el archivo no existe.
func (r *CatalogRepo) Load(ctx context.Context) (*catalog.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, r.path)
		}
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()

	root, err := Decode(f, r.enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return root, nil
}

// Save escribe el árbol en un archivo temporal y lo renombra sobre path,
// así un fallo a mitad de escritura no deja el catálogo truncado.
func (r *CatalogRepo) Save(ctx context.Context, root *catalog.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, root, r.enc); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("reemplazar catálogo: %w", err)
	}
	return nil
}

// Decode lee un catálogo desde rd en la codificación enc.
func Decode(rd io.Reader, enc encoding.Encoding) (*catalog.Category, error) {
	if enc == nil {
		enc = unicode.UTF8
	}
	return catalog.Load(catalog.NewReaderSource(transform.NewReader(rd, enc.NewDecoder())))
}

// Encode escribe root en w en la codificación enc. Un carácter sin
// representación en enc es un error.
func Encode(w io.Writer, root *catalog.Category, enc encoding.Encoding) error {
	if enc == nil {
		enc = unicode.UTF8
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	if err := catalog.WriteCatalog(tw, root); err != nil {
		return fmt.Errorf("escribir catálogo: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("codificar catálogo: %w", err)
	}
	return nil
}
