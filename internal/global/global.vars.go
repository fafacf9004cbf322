package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buggerbugsbunny/kriptopazar/config"
	"github.com/buggerbugsbunny/kriptopazar/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Cities     string // Tên collection cho thành phố
	Shops      string // Tên collection cho điểm giao hàng
	Products   string // Tên collection cho sản phẩm
	Wallets    string // Tên collection cho ví crypto (loại coin + địa chỉ nhận)
	Orders     string // Tên collection cho đơn hàng
	PriceCache string // Tên collection cho cache tỷ giá (singleton)
}

// Các biến toàn cục
var Validate *validator.Validate                                               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                 // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)     // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
