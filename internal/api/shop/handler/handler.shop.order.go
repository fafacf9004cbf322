package shophdl

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/buggerbugsbunny/kriptopazar/internal/api/base/handler"
	shopdto "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/dto"
	shopmodels "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/models"
	shopsvc "github.com/buggerbugsbunny/kriptopazar/internal/api/shop/service"
	"github.com/buggerbugsbunny/kriptopazar/internal/common"
	"github.com/buggerbugsbunny/kriptopazar/internal/logger"
	"github.com/buggerbugsbunny/kriptopazar/internal/utility"
)

// OrderAdminHandler xử lý các thao tác quản trị đơn hàng:
// danh sách, tìm kiếm, đổi trạng thái, lưu trữ, xóa và trả lời khách.
type OrderAdminHandler struct {
	OrderService *shopsvc.OrderService
}

// NewOrderAdminHandler tạo mới OrderAdminHandler
func NewOrderAdminHandler(orderService *shopsvc.OrderService) *OrderAdminHandler {
	return &OrderAdminHandler{
		OrderService: orderService,
	}
}

// HandleList trả về danh sách đơn phân trang, đơn có tin chưa đọc lên đầu.
// Query: status, isArchived, unreadOnly, page, limit.
func (h *OrderAdminHandler) HandleList(c fiber.Ctx) error {
	var isArchived *bool
	if raw := c.Query("isArchived"); raw != "" {
		value := raw == "true"
		isArchived = &value
	}
	unreadOnly := c.Query("unreadOnly") == "true"

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	status := c.Query("status")
	if status != "" && !shopmodels.IsValidOrderStatus(status) {
		basehdl.WriteResponse(c, nil, common.ErrInvalidStatus)
		return nil
	}

	result, err := h.OrderService.List(c.Context(), status, isArchived, unreadOnly, page, limit)
	basehdl.WriteResponse(c, result, err)
	return nil
}

// HandleSearch tìm đơn theo mã đơn / tên sản phẩm / mã giao dịch
func (h *OrderAdminHandler) HandleSearch(c fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	orders, err := h.OrderService.Search(c.Context(), term)
	basehdl.WriteResponse(c, orders, err)
	return nil
}

// HandleGet trả về chi tiết một đơn và tắt cờ tin chưa đọc (admin đã xem)
func (h *OrderAdminHandler) HandleGet(c fiber.Ctx) error {
	id := utility.String2ObjectID(c.Params("id"))
	if id.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	order, err := h.OrderService.MarkMessagesRead(c.Context(), id)
	basehdl.WriteResponse(c, order, err)
	return nil
}

// HandleSetStatus đổi trạng thái đơn (pending | completed | cancelled)
func (h *OrderAdminHandler) HandleSetStatus(c fiber.Ctx) error {
	id := utility.String2ObjectID(c.Params("id"))
	if id.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	input := new(shopdto.OrderStatusInput)
	if err := parseBody(c, input); err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	order, err := h.OrderService.SetStatus(c.Context(), id, input.Status)
	if err == nil {
		logger.LogCRUD("update", "order", id.Hex(), c, map[string]interface{}{
			"orderNumber": order.OrderNumber,
			"status":      input.Status,
		})
	}
	basehdl.WriteResponse(c, order, err)
	return nil
}

// HandleSetArchived bật/tắt lưu trữ đơn
func (h *OrderAdminHandler) HandleSetArchived(c fiber.Ctx) error {
	id := utility.String2ObjectID(c.Params("id"))
	if id.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	input := new(shopdto.OrderArchiveInput)
	if err := parseBody(c, input); err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	order, err := h.OrderService.SetArchived(c.Context(), id, input.IsArchived)
	if err == nil {
		logger.LogCRUD("update", "order", id.Hex(), c, map[string]interface{}{
			"orderNumber": order.OrderNumber,
			"isArchived":  input.IsArchived,
		})
	}
	basehdl.WriteResponse(c, order, err)
	return nil
}

// HandleDeleteArchived xóa vĩnh viễn một đơn đã lưu trữ.
// Đơn chưa lưu trữ không thể xóa bằng endpoint này.
func (h *OrderAdminHandler) HandleDeleteArchived(c fiber.Ctx) error {
	id := utility.String2ObjectID(c.Params("id"))
	if id.IsZero() {
		basehdl.WriteResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}

	deleted, err := h.OrderService.DeleteArchived(c.Context(), id)
	if err == nil {
		logger.LogCRUD("delete", "order", id.Hex(), c, map[string]interface{}{
			"orderNumber": deleted.OrderNumber,
		})
	}
	basehdl.WriteResponse(c, deleted, err)
	return nil
}

// HandleReply admin trả lời khách trên một đơn (tắt luôn cờ chưa đọc)
func (h *OrderAdminHandler) HandleReply(c fiber.Ctx) error {
	input := new(shopdto.OrderMessageInput)
	if err := parseBody(c, input); err != nil {
		basehdl.WriteResponse(c, nil, err)
		return nil
	}

	order, err := h.OrderService.AppendMessage(c.Context(), c.Params("orderNumber"), shopmodels.MessageSenderAdmin, input.Text)
	if err == nil {
		logger.LogAction("order_reply", c, map[string]interface{}{
			"orderNumber": order.OrderNumber,
		})
	}
	basehdl.WriteResponse(c, order, err)
	return nil
}
