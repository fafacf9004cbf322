package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng:
// server, cơ sở dữ liệu, Telegram bot và cấu hình giá.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                // Cổng server
	JwtSecret             string `env:"JWT_SECRET,required"`                      // Bí mật JWT (link vào shop từ bot)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`          // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"kriptopazar"`  // Tên cơ sở dữ liệu
	SiteURL               string `env:"SITE_URL" envDefault:"http://localhost:8080"` // URL công khai của site (dùng trong link bot)
	AdminPassword         string `env:"ADMIN_PASSWORD,required"`                  // Mật khẩu cho các route quản trị

	// Telegram
	CustomerBotToken string `env:"TELEGRAM_BOT_TOKEN"`       // Bot token cho bot khách hàng (optional)
	AdminBotToken    string `env:"ADMIN_TELEGRAM_BOT_TOKEN"` // Bot token cho bot quản trị (optional)
	AdminChatID      string `env:"ADMIN_TELEGRAM_CHAT_ID"`   // Chat ID nhận thông báo quản trị (optional)

	// Giá crypto
	PriceAPIBaseURL      string `env:"PRICE_API_BASE_URL" envDefault:"https://api.coingecko.com/api/v3"` // Base URL API giá
	PriceVsCurrency      string `env:"PRICE_VS_CURRENCY" envDefault:"try"`                               // Mã tiền pháp định quy đổi
	PriceCacheTTLMinutes int    `env:"PRICE_CACHE_TTL_MINUTES" envDefault:"120"`                         // TTL cache giá (phút)

	// CORS / Rate limit
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config/env
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
