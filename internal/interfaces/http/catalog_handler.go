package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// CatalogHandler maneja las peticiones HTTP del árbol del almacén.
type CatalogHandler struct {
	uc *appcatalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *appcatalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Tree godoc
// @Summary      Árbol completo del almacén
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.NodeResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) Tree(c *fiber.Ctx) error {
	return c.JSON(h.uc.Tree())
}

// GetNode godoc
// @Summary      Nodo por ID con su subárbol
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del nodo"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/nodes/{id} [get]
func (h *CatalogHandler) GetNode(c *fiber.Ctx) error {
	out := h.uc.GetNode(c.Params("id"))
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nodo no encontrado"})
	}
	return c.JSON(out)
}

// GetParent godoc
// @Summary      Padre directo de un nodo
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del nodo"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/nodes/{id}/parent [get]
func (h *CatalogHandler) GetParent(c *fiber.Ctx) error {
	id := c.Params("id")
	out := h.uc.GetParent(id)
	if out != nil {
		return c.JSON(out)
	}
	if h.uc.GetNode(id) == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nodo no encontrado"})
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_PARENT", Message: "la raíz no tiene padre"})
}

// AddNode godoc
// @Summary      Agregar categoría, marca o producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddNodeRequest  true  "Nodo a agregar (parent_id vacío = raíz)"
// @Success      201   {object}  dto.NodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/catalog/nodes [post]
func (h *CatalogHandler) AddNode(c *fiber.Ctx) error {
	var in dto.AddNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddNode(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveNode godoc
// @Summary      Eliminar un nodo y su subárbol
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del nodo"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/nodes/{id} [delete]
func (h *CatalogHandler) RemoveNode(c *fiber.Ctx) error {
	out, err := h.uc.RemoveNode(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nodo no encontrado o es la raíz"})
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Todos los productos
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.NodeListResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	return c.JSON(h.uc.Products())
}

// GetProduct godoc
// @Summary      Producto por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out := h.uc.GetProduct(c.Params("id"))
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Registrar ventas de un producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del producto"
// @Param        body  body  dto.SellRequest  true  "Unidades vendidas"
// @Success      200   {object}  dto.NodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{id}/sell [post]
func (h *CatalogHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Sell(c.UserContext(), c.Params("id"), in.Units)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Brands godoc
// @Summary      Todas las marcas
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.NodeListResponse
// @Router       /api/catalog/brands [get]
func (h *CatalogHandler) Brands(c *fiber.Ctx) error {
	return c.JSON(h.uc.Brands())
}

// Preorder godoc
// @Summary      Recorrido en preorden
// @Tags         catalog
// @Produce      json
// @Param        products  query  bool  false  "Incluir productos (por defecto según configuración)"
// @Success      200  {object}  dto.NodeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/preorder [get]
func (h *CatalogHandler) Preorder(c *fiber.Ctx) error {
	products, err := queryBool(c, "products")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.uc.Preorder(products))
}

// Postorder godoc
// @Summary      Recorrido en posorden
// @Tags         catalog
// @Produce      json
// @Param        products  query  bool  false  "Incluir productos (por defecto según configuración)"
// @Success      200  {object}  dto.NodeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/postorder [get]
func (h *CatalogHandler) Postorder(c *fiber.Ctx) error {
	products, err := queryBool(c, "products")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.uc.Postorder(products))
}

// Sales godoc
// @Summary      Valor de ventas del almacén
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.SalesResponse
// @Router       /api/catalog/sales [get]
func (h *CatalogHandler) Sales(c *fiber.Ctx) error {
	return c.JSON(h.uc.Sales())
}

// Search godoc
// @Summary      Buscar nodos por prefijo de ID
// @Tags         catalog
// @Produce      json
// @Param        prefix  query  string  false  "Prefijo del ID"
// @Param        kind    query  string  false  "Categoria, Marca o Producto"
// @Success      200  {object}  dto.NodeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalog/search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.SearchPrefix(c.Query("prefix"), c.Query("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recargar el catálogo desde su origen
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/catalog/reload [post]
func (h *CatalogHandler) Reload(c *fiber.Ctx) error {
	if err := h.uc.Reload(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.uc.Sales())
}

// Export godoc
// @Summary      Exportar el catálogo en XML
// @Description  ETag = SHA-256 de la forma canónica del documento.
// @Tags         catalog
// @Produce      xml
// @Success      200
// @Success      304
// @Router       /api/catalog/export.xml [get]
func (h *CatalogHandler) Export(c *fiber.Ctx) error {
	doc, digest, err := h.uc.Export()
	if err != nil {
		return respondError(c, err)
	}
	etag := `"` + digest + `"`
	c.Set(fiber.HeaderETag, etag)
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(doc)
}

// Report godoc
// @Summary      Reporte de ventas en PDF
// @Tags         catalog
// @Produce      application/pdf
// @Success      200
// @Router       /api/catalog/report.pdf [get]
func (h *CatalogHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.SalesReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ventas.pdf"`)
	return c.Send(pdf)
}

// queryBool lee un parámetro booleano opcional; ausente devuelve nil.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidQuery(key, raw)
	}
	return &v, nil
}
