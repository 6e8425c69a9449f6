package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	appcatalog "github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *appcatalog.CatalogUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Catálogo: consultas públicas
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	cat := api.Group("/catalog")
	cat.Get("/", catalogHandler.Tree)
	cat.Get("/nodes/:id", catalogHandler.GetNode)
	cat.Get("/nodes/:id/parent", catalogHandler.GetParent)
	cat.Get("/products", catalogHandler.Products)
	cat.Get("/products/:id", catalogHandler.GetProduct)
	cat.Get("/brands", catalogHandler.Brands)
	cat.Get("/preorder", catalogHandler.Preorder)
	cat.Get("/postorder", catalogHandler.Postorder)
	cat.Get("/sales", catalogHandler.Sales)
	cat.Get("/search", catalogHandler.Search)
	cat.Get("/export.xml", catalogHandler.Export)
	cat.Get("/report.pdf", catalogHandler.Report)

	// Mutaciones: Bearer Token + rol admin
	admin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin)}
	cat.Post("/nodes", append(admin, catalogHandler.AddNode)...)
	cat.Delete("/nodes/:id", append(admin, catalogHandler.RemoveNode)...)
	cat.Post("/products/:id/sell", append(admin, catalogHandler.Sell)...)
	cat.Post("/reload", append(admin, catalogHandler.Reload)...)
}
