package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/auth"
	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/application/usecase"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BookUC        *usecase.BookUseCase
	RawMaterialUC *usecase.RawMaterialUseCase
	PointOfSaleUC *usecase.PointOfSaleUseCase
	UserUC        *usecase.UserUseCase
	AdjustUC      *inventory.AdjustmentUseCase
	QueryUC       *inventory.QueryUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Las lecturas son públicas; toda mutación
// exige Bearer Token, y la gestión de usuarios y los borrados exigen rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	anyStaff := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Libros
	bookHandler := NewBookHandler(deps.BookUC)
	libros := api.Group("/libros")
	libros.Get("/", bookHandler.List)
	libros.Get("/:id", bookHandler.GetByID)
	libros.Post("/", authRequired, anyStaff, bookHandler.Create)
	libros.Patch("/:id", authRequired, anyStaff, bookHandler.Update)
	libros.Delete("/:id", authRequired, adminOnly, bookHandler.Delete)

	// Inventario global (bodega central)
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.QueryUC)
	inventario := api.Group("/inventario")
	inventario.Get("/", inventoryHandler.ListGlobal)
	inventario.Get("/libro/:libroId", inventoryHandler.TotalStock)
	inventario.Post("/:id/ajustar", authRequired, anyStaff, inventoryHandler.AdjustEntry)
	inventario.Post("/:id/fijar", authRequired, adminOnly, inventoryHandler.SetEntry)

	// Inventario por punto de venta
	inventarioPV := api.Group("/inventario-pv")
	inventarioPV.Get("/", inventoryHandler.ListLocations)
	inventarioPV.Get("/por-pv/:pvId", inventoryHandler.ListByPointOfSale)
	inventarioPV.Post("/", authRequired, anyStaff, inventoryHandler.CreateLocation)
	inventarioPV.Post("/:id/ajustar", authRequired, anyStaff, inventoryHandler.AdjustEntry)

	// Log de movimientos (solo lectura: el log es inmutable)
	movimientos := api.Group("/movimientos")
	movimientos.Get("/", inventoryHandler.ListMovements)
	movimientos.Get("/libro/:libroId", inventoryHandler.ListMovementsByBook)

	// Materias primas
	rawMaterialHandler := NewRawMaterialHandler(deps.RawMaterialUC, deps.AdjustUC, deps.QueryUC)
	materias := api.Group("/materias_primas")
	materias.Get("/", rawMaterialHandler.List)
	materias.Get("/:id", rawMaterialHandler.GetByID)
	materias.Get("/:id/movimientos", rawMaterialHandler.Movements)
	materias.Post("/", authRequired, anyStaff, rawMaterialHandler.Create)
	materias.Patch("/:id", authRequired, anyStaff, rawMaterialHandler.Update)
	materias.Delete("/:id", authRequired, adminOnly, rawMaterialHandler.Delete)
	materias.Post("/:id/entrada", authRequired, anyStaff, rawMaterialHandler.Receive)
	materias.Post("/:id/ajustar", authRequired, anyStaff, rawMaterialHandler.Adjust)

	// Puntos de venta
	posHandler := NewPointOfSaleHandler(deps.PointOfSaleUC)
	puntos := api.Group("/puntos_venta")
	puntos.Get("/", posHandler.List)
	puntos.Get("/:id", posHandler.GetByID)
	puntos.Post("/", authRequired, adminOnly, posHandler.Create)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	usuarios := api.Group("/usuarios", authRequired, adminOnly)
	usuarios.Get("/", userHandler.List)
	usuarios.Get("/:id", userHandler.GetByID)
	usuarios.Post("/", userHandler.Create)
	usuarios.Patch("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)
}
