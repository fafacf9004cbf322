// Package shoprouter đăng ký route cho domain shop:
// storefront công khai (duyệt catalog, checkout, tra cứu đơn)
// và các route quản trị (catalog CRUD, quản lý đơn hàng).
package shoprouter

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/buggerbugsbunny/kriptopazar/internal/api/base/handler"
	"github.com/buggerbugsbunny/kriptopazar/internal/api/middleware"
	"github.com/buggerbugsbunny/kriptopazar/internal/api/router"
	shophdl "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/handler"
	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
)

// Register trả về hàm đăng ký route cho domain shop.
// OrderService được truyền từ ngoài vì bot và notifier dùng chung một instance.
func Register(orderService *shopsvc.OrderService) router.RegisterFunc {
	return func(v1 fiber.Router, r *router.Router) error {
		storefrontHandler, err := shophdl.NewStorefrontHandler(orderService)
		if err != nil {
			return fmt.Errorf("failed to create storefront handler: %v", err)
		}

		cityHandler, err := shophdl.NewCityHandler()
		if err != nil {
			return fmt.Errorf("failed to create city handler: %v", err)
		}
		shopHandler, err := shophdl.NewShopHandler()
		if err != nil {
			return fmt.Errorf("failed to create shop handler: %v", err)
		}
		productHandler, err := shophdl.NewProductHandler()
		if err != nil {
			return fmt.Errorf("failed to create product handler: %v", err)
		}
		walletHandler, err := shophdl.NewWalletHandler()
		if err != nil {
			return fmt.Errorf("failed to create wallet handler: %v", err)
		}
		orderAdminHandler := shophdl.NewOrderAdminHandler(orderService)
		systemHandler, err := basehdl.NewSystemHandler()
		if err != nil {
			return fmt.Errorf("failed to create system handler: %v", err)
		}

		// Health check (không cần auth)
		v1.Get("/health", systemHandler.HandleHealth)

		// ===== Storefront (khách hàng) =====
		// Duyệt catalog yêu cầu token từ link bot phát; tra cứu đơn thì công khai.
		shopToken := middleware.ShopTokenMiddleware()

		router.RegisterRouteWithMiddleware(v1, "/storefront", "GET", "/cities", []fiber.Handler{shopToken}, storefrontHandler.HandleListCities)
		router.RegisterRouteWithMiddleware(v1, "/storefront", "GET", "/cities/:cityId/shops", []fiber.Handler{shopToken}, storefrontHandler.HandleListShops)
		router.RegisterRouteWithMiddleware(v1, "/storefront", "GET", "/shops/:shopId/products", []fiber.Handler{shopToken}, storefrontHandler.HandleListProducts)
		router.RegisterRouteWithMiddleware(v1, "/storefront", "GET", "/wallets", []fiber.Handler{shopToken}, storefrontHandler.HandleListWallets)
		router.RegisterRouteWithMiddleware(v1, "/storefront", "POST", "/checkout", []fiber.Handler{shopToken}, storefrontHandler.HandleCheckout)

		// Tra cứu đơn theo mã đơn: khách chỉ cần mã, không cần token
		v1.Get("/orders/track/:orderNumber", storefrontHandler.HandleTrackOrder)
		v1.Post("/orders/track/:orderNumber/messages", storefrontHandler.HandleTrackMessage)
		v1.Post("/orders/track/:orderNumber/transaction", storefrontHandler.HandleTrackTransaction)

		// ===== Admin =====
		adminAuth := middleware.AdminAuthMiddleware()
		adminMiddlewares := []fiber.Handler{adminAuth}

		// Catalog CRUD
		r.RegisterCRUDRoutes(v1, "/cities", cityHandler, router.ReadWriteConfig, adminMiddlewares)
		r.RegisterCRUDRoutes(v1, "/shops", shopHandler, router.ReadWriteConfig, adminMiddlewares)
		r.RegisterCRUDRoutes(v1, "/products", productHandler, router.ReadWriteConfig, adminMiddlewares)
		r.RegisterCRUDRoutes(v1, "/wallets", walletHandler, router.ReadWriteConfig, adminMiddlewares)

		// Quản lý đơn hàng
		router.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/list", adminMiddlewares, orderAdminHandler.HandleList)
		router.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/search", adminMiddlewares, orderAdminHandler.HandleSearch)
		router.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/detail/:id", adminMiddlewares, orderAdminHandler.HandleGet)
		router.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/status/:id", adminMiddlewares, orderAdminHandler.HandleSetStatus)
		router.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/archive/:id", adminMiddlewares, orderAdminHandler.HandleSetArchived)
		router.RegisterRouteWithMiddleware(v1, "/orders", "DELETE", "/archived/:id", adminMiddlewares, orderAdminHandler.HandleDeleteArchived)
		router.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/reply/:orderNumber", adminMiddlewares, orderAdminHandler.HandleReply)

		return nil
	}
}
