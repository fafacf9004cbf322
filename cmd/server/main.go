package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/bot"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
	"github.com/buggerbugsbunny/kriptopazar/internal/notify"
	"github.com/buggerbugsbunny/kriptopazar/internal/pricing"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// buildOrderStack lắp ráp chuỗi service cho đơn hàng:
// cache giá (persist trên Mongo) → báo giá → đơn hàng + thông báo Telegram.
// OrderService dùng chung cho HTTP API và bot quản trị.
func buildOrderStack() (*shopsvc.OrderService, *pricing.CacheService, error) {
	cfg := global.MongoDB_ServerConfig

	walletService, err := shopsvc.NewWalletService()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create wallet service: %v", err)
	}
	productService, err := shopsvc.NewProductService()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create product service: %v", err)
	}

	priceCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PriceCache)
	if !exist {
		return nil, nil, fmt.Errorf("price cache collection is not registered")
	}

	fetcher := pricing.NewFetcher(cfg.PriceAPIBaseURL, cfg.PriceVsCurrency)
	priceCache := pricing.NewCacheService(
		pricing.NewMongoStore(priceCollection),
		fetcher.FetchRates,
		walletService.ActiveApiIDs,
		time.Duration(cfg.PriceCacheTTLMinutes)*time.Minute,
	)

	pricingService := shopsvc.NewPricingService(productService, walletService, priceCache)
	notifier := notify.NewTelegramDispatcher(cfg.AdminBotToken, cfg.AdminChatID)

	orderService, err := shopsvc.NewOrderService(pricingService, notifier)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order service: %v", err)
	}

	return orderService, priceCache, nil
}

// startBackground chạy một tác vụ nền trong goroutine riêng với recover
func startBackground(name string, run func()) {
	go func() {
		log := logger.GetAppLogger()
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Errorf("Background task %s panic", name)
			}
		}()
		run()
	}()
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	// Khởi động server với cấu hình listen
	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address

	log := logger.GetAppLogger()
	log.Info("Starting Fiber server...")

	// Helper function để resolve đường dẫn từ thư mục gốc project
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	// Kiểm tra xem có bật TLS không
	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		// Resolve đường dẫn certificate và key
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		// Kiểm tra file certificate và key tồn tại
		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s (resolved from: %s)", certPath, cfg.TLSCertFile)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s (resolved from: %s)", keyPath, cfg.TLSKeyFile)
		}

		// Load certificate và key
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		// Tạo listener với TLS
		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		// Cấu hình TLS
		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}

		// Wrap listener với TLS
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
			"key":     keyPath,
		}).Info("Starting server with HTTPS/TLS")

		// Khởi động server với TLS listener
		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		// Khởi động server HTTP thông thường
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		listenConfig := fiber.ListenConfig{}
		if err := app.Listen(address, listenConfig); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	// Lắp ráp chuỗi service đơn hàng (dùng chung cho HTTP API và bot)
	orderService, priceCache, err := buildOrderStack()
	if err != nil {
		log.Fatalf("Failed to build order stack: %v", err)
	}

	// Context tổng cho các tác vụ nền
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Làm nóng cache giá lúc khởi động (không chặn server)
	startBackground("price-cache-warm", func() {
		priceCache.Warm(ctx)
	})

	// Bot khách hàng: phát link vào shop
	if customerBot := bot.NewCustomerBot(cfg.CustomerBotToken, cfg.JwtSecret, cfg.SiteURL); customerBot != nil {
		startBackground("customer-bot", func() {
			customerBot.Start(ctx)
		})
	}

	// Bot quản trị: quản lý đơn hàng qua Telegram
	if adminBot := bot.NewAdminBot(cfg.AdminBotToken, cfg.AdminChatID, orderService); adminBot != nil {
		startBackground("admin-bot", func() {
			adminBot.Start(ctx)
		})
	}

	// Khởi tạo app với cấu hình và routes
	app, err := InitFiberApp(orderService)
	if err != nil {
		log.Fatalf("Failed to initialize Fiber app: %v", err)
	}

	// Chạy Fiber server trên main thread
	main_thread(app)
}
