package shophdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/buggerbugsbunny/kriptopazar/internal/api/base/handler"
	shopdto "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/dto"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/global"
	"github.com/buggerbugsbunny/kriptopazar/internal/utility"
)

// StorefrontHandler phục vụ luồng mua hàng của khách:
// duyệt catalog, checkout và tra cứu đơn theo mã đơn.
type StorefrontHandler struct {
	CityService    *shopsvc.CityService
	ShopService    *shopsvc.ShopService
	ProductService *shopsvc.ProductService
	WalletService  *shopsvc.WalletService
	OrderService   *shopsvc.OrderService
}

// NewStorefrontHandler tạo mới StorefrontHandler
func NewStorefrontHandler(orderService *shopsvc.OrderService) (*StorefrontHandler, error) {
	cityService, err := shopsvc.NewCityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create city service: %v", err)
	}
	shopService, err := shopsvc.NewShopService()
	if err != nil {
		return nil, fmt.Errorf("failed to create shop service: %v", err)
	}
	productService, err := shopsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	walletService, err := shopsvc.NewWalletService()
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet service: %v", err)
	}

	return &StorefrontHandler{
		CityService:    cityService,
		ShopService:    shopService,
		ProductService: productService,
		WalletService:  walletService,
		OrderService:   orderService,
	}, nil
}

// parseBody decode JSON body và validate bằng validator global
func parseBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// HandleListCities trả về danh sách thành phố đang hoạt động
func (h *StorefrontHandler) HandleListCities(c fiber.Ctx) error {
	cities, err := h.CityService.FindActive(c.Context())
	basehdl.WriteResponse(c, cities, err)
	return nil
}

// HandleListShops trả về các shop đang hoạt động của một thành phố
func (h *StorefrontHandler) HandleListShops(c fiber.Ctx) error {
	cityID := utility.String2ObjectID(c.Params("cityId"))
	if cityID.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	shops, err := h.ShopService.FindActiveByCity(c.Context(), cityID)
	basehdl.WriteResponse(c, shops, err)
	return nil
}

// HandleListProducts trả về sản phẩm còn hàng của một shop
func (h *StorefrontHandler) HandleListProducts(c fiber.Ctx) error {
	shopID := utility.String2ObjectID(c.Params("shopId"))
	if shopID.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	products, err := h.ProductService.FindInStockByShop(c.Context(), shopID)
	basehdl.WriteResponse(c, products, err)
	return nil
}

// HandleListWallets trả về các ví thanh toán đang hoạt động
func (h *StorefrontHandler) HandleListWallets(c fiber.Ctx) error {
	wallets, err := h.WalletService.FindActive(c.Context())
	basehdl.WriteResponse(c, wallets, err)
	return nil
}

// HandleCheckout tạo đơn hàng mới từ giỏ của khách.
// chatId lấy từ token shop (nếu đi qua ShopTokenMiddleware) để gắn đơn với khách Telegram.
func (h *StorefrontHandler) HandleCheckout(c fiber.Ctx) error {
	input := new(shopdto.CheckoutInput)
	if err := parseBody(c, input); err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	productID := utility.String2ObjectID(input.ProductID)
	walletID := utility.String2ObjectID(input.WalletID)
	if productID.IsZero() || walletID.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	customerChatID := input.CustomerChatID
	if chatID, ok := c.Locals("chat_id").(int64); ok && chatID != 0 {
		customerChatID = chatID
	}

	order, err := h.OrderService.Checkout(c.Context(), productID, walletID, input.Quantity, customerChatID, input.TransactionID, input.CustomerNote)
	basehdl.WriteResponse(c, order, err)
	return nil
}

// trackOrderResponse là dữ liệu tra cứu đơn trả cho khách:
// đơn hàng kèm cờ còn được nhắn tin hay không.
type trackOrderResponse struct {
	Order      shopmodels.Order `json:"order"`
	CanMessage bool             `json:"canMessage"`
}

// HandleTrackOrder tra cứu đơn hàng theo mã đơn (public, không cần đăng nhập).
// Chỉ hiện tin nhắn trong 15 phút gần nhất.
func (h *StorefrontHandler) HandleTrackOrder(c fiber.Ctx) error {
	order, err := h.OrderService.FindByNumber(c.Context(), c.Params("orderNumber"))
	if err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	now := time.Now()
	canMessage := shopsvc.CanAppendTrackMessage(order.Messages, now)
	order.Messages = shopsvc.RecentTrackMessages(order.Messages, now)

	basehdl.WriteResponse(c, trackOrderResponse{
		Order:      order,
		CanMessage: canMessage,
	}, nil)
	return nil
}

// HandleTrackMessage khách gửi tin nhắn trên trang tra cứu đơn.
// Chỉ cho phép trong cửa sổ 15 phút sau tin nhắn gần nhất của khách.
func (h *StorefrontHandler) HandleTrackMessage(c fiber.Ctx) error {
	input := new(shopdto.OrderMessageInput)
	if err := parseBody(c, input); err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	order, err := h.OrderService.FindByNumber(c.Context(), c.Params("orderNumber"))
	if err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	if !shopsvc.CanAppendTrackMessage(order.Messages, time.Now()) {
		basehdl.WriteResponse(c, nil, common.NewError(
			common.ErrCodeBusinessOperation,
			"Đã quá thời gian nhắn tin cho đơn này, vui lòng liên hệ qua bot",
			common.StatusForbidden,
			nil,
		))
		return nil
	}

	// Tin từ trang tra cứu luôn là tin của khách
	updated, err := h.OrderService.AppendMessage(c.Context(), order.OrderNumber, shopmodels.MessageSenderUser, input.Text)
	basehdl.WriteResponse(c, updated, err)
	return nil
}

// HandleTrackTransaction khách khai báo mã giao dịch đã chuyển coin
func (h *StorefrontHandler) HandleTrackTransaction(c fiber.Ctx) error {
	input := new(shopdto.OrderTransactionInput)
	if err := parseBody(c, input); err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	order, err := h.OrderService.SetTransactionID(c.Context(), c.Params("orderNumber"), input.TransactionID)
	basehdl.WriteResponse(c, order, err)
	return nil
}
